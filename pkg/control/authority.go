// Package control implements flight-control arbitration: per-vehicle
// control modes, priority-based authority, manual input shaping, and
// stability assist. The arbiter is the only writer of thruster commands;
// command sources for non-manual modes plug in behind the Source
// interface.
package control

// Mode selects which source drives a vehicle's thrusters.
type Mode int

const (
	Manual Mode = iota
	Assisted
	Scripted
	Autonomous
)

// String returns the mode name for logs and stats.
func (m Mode) String() string {
	switch m {
	case Manual:
		return "manual"
	case Assisted:
		return "assisted"
	case Scripted:
		return "scripted"
	case Autonomous:
		return "autonomous"
	default:
		return "unknown"
	}
}

// Level is a numeric control-authority priority. Higher levels preempt
// lower ones; the gaps leave room for custom tiers.
type Level int

const (
	LevelNone      Level = 0
	LevelAI        Level = 40
	LevelScript    Level = 60
	LevelAssistant Level = 80
	LevelPlayer    Level = 100
)

// NoHolder marks a record with no controlling entity.
const NoHolder uint64 = 0

// Record is a vehicle's control state: the active mode, who holds
// authority at what level, and the assist configuration.
type Record struct {
	Mode   Mode
	Level  Level
	Holder uint64

	Input           InputConfig
	StabilityAssist float64
	FlightAssist    bool
}

// NewRecord returns a manual-mode record with no holder and default
// input configuration.
func NewRecord() *Record {
	return &Record{
		Mode:            Manual,
		Level:           LevelNone,
		Holder:          NoHolder,
		Input:           DefaultInputConfig(),
		StabilityAssist: 0.3,
		FlightAssist:    true,
	}
}

// Request attempts to take control at the given level. It succeeds when
// no strictly higher-priority holder exists, making an equal-priority
// re-request by the current holder idempotent.
func (r *Record) Request(level Level, requester uint64) bool {
	if level < r.Level {
		return false
	}
	r.Level = level
	r.Holder = requester
	return true
}

// Release gives up control. Only the current holder may release; any
// other caller is a no-op.
func (r *Record) Release(releaser uint64) bool {
	if r.Holder != releaser || r.Holder == NoHolder {
		return false
	}
	r.Level = LevelNone
	r.Holder = NoHolder
	return true
}

// HeldBy reports whether the given entity currently holds authority.
func (r *Record) HeldBy(entity uint64) bool {
	return r.Holder == entity && r.Holder != NoHolder
}

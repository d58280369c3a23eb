// pkg/control/arbiter.go
package control

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-sixdof/pkg/physics"
	"github.com/opd-ai/go-sixdof/pkg/thruster"
)

const (
	// boostMultiplier scales linear commands up to 3x at full boost.
	boostMultiplier = 2.0

	// brakeStrength converts local-frame velocity into counter-thrust.
	brakeStrength = 2.0
)

// Source produces steering commands for a vehicle in a non-manual mode.
// Returning ok=false means the source has nothing to say this tick: the
// arbiter then writes nothing, leaving existing commands untouched.
type Source interface {
	Command(entityID uint64, dt float64) (linear, angular mgl64.Vec3, ok bool)
}

// Tick carries one vehicle's control state through an arbitration pass.
type Tick struct {
	EntityID  uint64
	IsPlayer  bool
	Record    *Record
	Profile   *thruster.Profile
	Body      *physics.Body
	Transform *physics.Transform
	Dt        float64
}

// Arbiter dispatches each vehicle to the command source its mode names
// and is the sole writer of thruster commands. Vehicles whose source
// produces nothing this tick keep their previous commands.
type Arbiter struct {
	Input      InputSource
	Scripted   Source
	Autonomous Source
}

// NewArbiter returns an arbiter with no sources attached. Vehicles in
// modes without a source are skipped.
func NewArbiter() *Arbiter {
	return &Arbiter{}
}

// Update arbitrates one vehicle for one tick. The designated player
// entity re-asserts player authority before dispatch, so lower-priority
// holders can never carry control across a tick boundary on the
// player's vehicle.
func (a *Arbiter) Update(tick Tick) {
	if tick.Record == nil || tick.Profile == nil {
		return
	}

	if tick.IsPlayer {
		tick.Record.Request(LevelPlayer, tick.EntityID)
	}

	switch tick.Record.Mode {
	case Manual, Assisted:
		a.updateManual(tick)
	case Scripted:
		a.updateFromSource(tick, a.Scripted)
	case Autonomous:
		a.updateFromSource(tick, a.Autonomous)
	}
}

// updateManual shapes device input into commands. Only the player
// vehicle reads input. A centered stick is still a command: zero thrust
// is written every tick, so assist keeps damping spin and leveling a
// coasting vehicle. The no-write rule applies only to vehicles the
// arbiter does not own this tick.
func (a *Arbiter) updateManual(tick Tick) {
	if !tick.IsPlayer || a.Input == nil {
		return
	}

	frame := ReadFrame(a.Input, tick.Record.Input)

	linear := frame.Linear
	if frame.Boost > 0 {
		linear = linear.Mul(1 + frame.Boost*boostMultiplier)
	}
	if frame.Brake > 0 && tick.Body != nil && tick.Transform != nil {
		linear = brakeCommand(tick.Body, tick.Transform, frame.Brake)
	}

	a.write(tick, linear, frame.Angular)
}

func (a *Arbiter) updateFromSource(tick Tick, source Source) {
	if source == nil {
		return
	}
	linear, angular, ok := source.Command(tick.EntityID, tick.Dt)
	if !ok {
		return
	}
	a.write(tick, linear, angular)
}

// write applies assist and stores the final commands on the profile.
// This is the single point where control output becomes thrust input.
func (a *Arbiter) write(tick Tick, linear, angular mgl64.Vec3) {
	if tick.Record.FlightAssist && tick.Record.StabilityAssist > 0 && tick.Body != nil && tick.Transform != nil {
		angular = ApplyAssist(angular, linear, tick.Body, tick.Transform, tick.Record.StabilityAssist)
	}
	tick.Profile.SetLinearCommand(linear)
	tick.Profile.SetAngularCommand(angular)
}

// brakeCommand produces counter-thrust proportional to the vehicle's
// velocity expressed in its own frame, scaled by brake pressure.
func brakeCommand(body *physics.Body, tr *physics.Transform, intensity float64) mgl64.Vec3 {
	strength := brakeStrength * intensity
	return mgl64.Vec3{
		-body.Velocity.Dot(tr.Right()) * strength,
		-body.Velocity.Dot(tr.Up()) * strength,
		-body.Velocity.Dot(tr.Forward()) * strength,
	}
}

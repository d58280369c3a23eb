// Package nav implements scripted waypoint navigation: flight paths,
// the per-vehicle flight state machine, and the steering strategies that
// turn a target waypoint into normalized thruster commands.
package nav

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
)

// WaypointType controls how a waypoint is treated on arrival.
type WaypointType int

const (
	// PassThrough advances as soon as the vehicle enters tolerance.
	PassThrough WaypointType = iota
	// Position is a precise target, typically with a tight tolerance.
	Position
	// Hover holds inside tolerance for HoverDuration before advancing.
	Hover
)

// Waypoint is a single navigation target.
type Waypoint struct {
	Position      mgl64.Vec3
	Type          WaypointType
	TargetSpeed   float64
	Tolerance     float64
	HoverDuration float64
}

// Strategy selects how the navigator steers toward the active waypoint.
type Strategy int

const (
	// StrategyAlignment turns to face the target and gates thrust on
	// facing alignment. The default.
	StrategyAlignment Strategy = iota
	// StrategyVelocityTracking steers by servoing the velocity vector
	// toward the target, allowing lateral thrust while still turning.
	StrategyVelocityTracking
)

// FlightPath is an ordered sequence of waypoints with shared limits.
// MaxAcceleration and MaxTurnRate bound the steering output when
// positive; zero leaves the axis unconstrained.
type FlightPath struct {
	Waypoints       []Waypoint
	Loop            bool
	DefaultSpeed    float64
	MaxAcceleration float64
	MaxTurnRate     float64
	Strategy        Strategy
}

var (
	ErrEmptyPath        = errors.New("flight path has no waypoints")
	ErrInvalidTolerance = errors.New("waypoint tolerance must be positive")
)

// Validate checks that the path can be flown. An empty path or a
// non-positive tolerance is a configuration error.
func (p *FlightPath) Validate() error {
	if len(p.Waypoints) == 0 {
		return ErrEmptyPath
	}
	for _, wp := range p.Waypoints {
		if wp.Tolerance <= 0 {
			return ErrInvalidTolerance
		}
	}
	return nil
}

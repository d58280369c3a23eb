// pkg/nav/flight.go
package nav

import (
	"context"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-sixdof/pkg/logging"
	"github.com/opd-ai/go-sixdof/pkg/physics"
	"github.com/opd-ai/go-sixdof/pkg/thruster"
)

// ScriptedFlight flies a vehicle along a FlightPath. It produces
// normalized steering commands each tick; it never writes to thrusters
// itself, so control arbitration stays with the caller.
type ScriptedFlight struct {
	path   FlightPath
	cursor int

	active       bool
	paused       bool
	hovering     bool
	hoverElapsed float64

	currentSpeed float64
	logger       *logging.Logger
}

// NewScriptedFlight returns an inactive flight.
func NewScriptedFlight() *ScriptedFlight {
	return &ScriptedFlight{logger: logging.NewLogger()}
}

// Start validates the path, copies it, and activates the flight from its
// first waypoint. A path that fails validation never activates.
func (f *ScriptedFlight) Start(path FlightPath) error {
	if err := path.Validate(); err != nil {
		f.logger.Warn(context.Background(), "rejected flight path",
			"error", err.Error(),
			"waypoints", len(path.Waypoints),
		)
		return fmt.Errorf("start flight: %w", err)
	}

	f.path = FlightPath{
		Waypoints:       append([]Waypoint(nil), path.Waypoints...),
		Loop:            path.Loop,
		DefaultSpeed:    path.DefaultSpeed,
		MaxAcceleration: path.MaxAcceleration,
		MaxTurnRate:     path.MaxTurnRate,
		Strategy:        path.Strategy,
	}
	f.cursor = 0
	f.active = true
	f.paused = false
	f.hovering = false
	f.hoverElapsed = 0
	f.currentSpeed = 0
	return nil
}

// Stop deactivates the flight. The current commands on the vehicle are
// left as they are.
func (f *ScriptedFlight) Stop() {
	f.active = false
	f.paused = false
}

// Pause suspends command production without losing path progress.
func (f *ScriptedFlight) Pause() {
	f.paused = true
}

// Resume continues a paused flight from its current waypoint.
func (f *ScriptedFlight) Resume() {
	f.paused = false
}

// Active reports whether the flight is producing commands.
func (f *ScriptedFlight) Active() bool { return f.active && !f.paused }

// Paused reports whether the flight is suspended.
func (f *ScriptedFlight) Paused() bool { return f.paused }

// Cursor returns the index of the waypoint currently being flown.
func (f *ScriptedFlight) Cursor() int { return f.cursor }

// CurrentSpeed returns the speed observed on the last update.
func (f *ScriptedFlight) CurrentSpeed() float64 { return f.currentSpeed }

// Update advances the waypoint state machine and computes steering
// commands for this tick. ok is false when the flight has nothing to
// command: inactive, paused, or consumed by a waypoint transition.
func (f *ScriptedFlight) Update(body *physics.Body, tr *physics.Transform, profile *thruster.Profile, dt float64) (linear, angular mgl64.Vec3, ok bool) {
	if !f.active || f.paused || body == nil || tr == nil || profile == nil {
		return mgl64.Vec3{}, mgl64.Vec3{}, false
	}

	if f.cursor >= len(f.path.Waypoints) {
		if f.path.Loop {
			f.cursor = 0
		} else {
			f.Stop()
			return mgl64.Vec3{}, mgl64.Vec3{}, false
		}
	}

	wp := f.path.Waypoints[f.cursor]
	distance := tr.Position.Sub(wp.Position).Len()
	f.currentSpeed = body.Speed()

	if distance < wp.Tolerance {
		f.arrive(wp, dt)
		return mgl64.Vec3{}, mgl64.Vec3{}, false
	}

	switch f.path.Strategy {
	case StrategyVelocityTracking:
		linear, angular = steerVelocityTracking(body, tr, profile, wp, f.path, distance)
	default:
		linear, angular = steerAlignment(body, tr, profile, wp, f.path, distance)
	}
	return linear, angular, true
}

// arrive handles the waypoint the vehicle just reached. Hover waypoints
// hold until their duration elapses; everything else advances at once.
func (f *ScriptedFlight) arrive(wp Waypoint, dt float64) {
	if wp.Type != Hover {
		f.cursor++
		return
	}
	if !f.hovering {
		f.hovering = true
		f.hoverElapsed = 0
		return
	}
	f.hoverElapsed += dt
	if f.hoverElapsed >= wp.HoverDuration {
		f.hovering = false
		f.cursor++
	}
}

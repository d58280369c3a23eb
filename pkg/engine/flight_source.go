// pkg/engine/flight_source.go
package engine

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-sixdof/pkg/event"
)

// flightSource adapts scripted flights to the arbiter's command source
// contract and reports waypoint progress on the event bus.
type flightSource struct {
	sim *Simulation
}

func (f *flightSource) Command(entityID uint64, dt float64) (linear, angular mgl64.Vec3, ok bool) {
	v := f.sim.Store.Get(entityID)
	if v == nil || v.Flight == nil {
		return mgl64.Vec3{}, mgl64.Vec3{}, false
	}

	wasActive := v.Flight.Active()
	before := v.Flight.Cursor()

	linear, angular, ok = v.Flight.Update(v.Body, v.Transform, v.Thrusters, dt)

	if !wasActive {
		return linear, angular, ok
	}

	// A loop wrap moves the cursor backward; only a forward advance
	// means a waypoint was actually reached.
	if after := v.Flight.Cursor(); after == before+1 {
		f.sim.EventBus.Publish(event.NewFlightEvent(event.WaypointReached, f.sim, entityID, before))
		f.sim.Collector.IncWaypointsReached()
	}

	if !v.Flight.Active() && !v.Flight.Paused() {
		f.sim.EventBus.Publish(event.NewFlightEvent(event.FlightCompleted, f.sim, entityID, v.Flight.Cursor()))
	}

	return linear, angular, ok
}

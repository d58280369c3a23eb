// pkg/entity/presets.go
package entity

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-sixdof/pkg/control"
)

// Preset names a vehicle configuration tuned for a role.
type Preset string

const (
	PresetFighter   Preset = "fighter"
	PresetRacer     Preset = "racer"
	PresetFreighter Preset = "freighter"
	PresetShuttle   Preset = "shuttle"
)

// Configure applies a preset to the vehicle's physics, thruster, and
// control components. Unknown presets leave the vehicle untouched.
func (v *Vehicle) Configure(preset Preset) {
	if v.Body == nil || v.Thrusters == nil || v.Control == nil {
		return
	}

	v.Body.Set6DOF(true)

	switch preset {
	case PresetFighter:
		v.Body.Mass = 50
		v.Body.DragLinear = 0.01
		v.Body.DragAngular = 0.05
		v.Body.MomentOfInertia = mgl64.Vec3{0.3, 0.3, 0.3}

		v.Thrusters.MaxLinearForce = mgl64.Vec3{500, 500, 1000}
		v.Thrusters.MaxAngularTorque = mgl64.Vec3{100, 100, 100}
		v.Thrusters.ResponseTime = 0.1

		v.Control.Input.ClampSensitivity(1.5, 1.5)
		v.Control.StabilityAssist = 0.3
		v.Control.FlightAssist = true
		v.Control.Mode = control.Assisted

	case PresetRacer:
		// Tuned for stability over agility: heavier, more drag, less torque
		v.Body.Mass = 120
		v.Body.DragLinear = 0.08
		v.Body.DragAngular = 0.25
		v.Body.MomentOfInertia = mgl64.Vec3{0.8, 0.6, 0.8}

		v.Thrusters.MaxLinearForce = mgl64.Vec3{400, 400, 600}
		v.Thrusters.MaxAngularTorque = mgl64.Vec3{80, 90, 60}
		v.Thrusters.ResponseTime = 0.1

		v.Control.Input.ClampSensitivity(0.6, 0.6)
		v.Control.StabilityAssist = 0.9
		v.Control.FlightAssist = true
		v.Control.Mode = control.Assisted

	case PresetFreighter:
		v.Body.Mass = 500
		v.Body.DragLinear = 0.02
		v.Body.DragAngular = 0.1
		v.Body.MomentOfInertia = mgl64.Vec3{2, 2, 2}

		v.Thrusters.MaxLinearForce = mgl64.Vec3{200, 200, 800}
		v.Thrusters.MaxAngularTorque = mgl64.Vec3{50, 50, 30}
		v.Thrusters.ResponseTime = 0.3
		v.Thrusters.VacuumEfficiency = 0.8

		v.Control.Input.ClampSensitivity(0.8, 0.8)
		v.Control.StabilityAssist = 0.8
		v.Control.FlightAssist = true
		v.Control.Mode = control.Assisted

	case PresetShuttle:
		// Lightweight test vehicle with instant response
		v.Body.Mass = 8
		v.Body.DragLinear = 0.005
		v.Body.DragAngular = 0.02
		v.Body.MomentOfInertia = mgl64.Vec3{0.2, 0.15, 0.2}

		v.Thrusters.MaxLinearForce = mgl64.Vec3{400, 400, 600}
		v.Thrusters.MaxAngularTorque = mgl64.Vec3{80, 100, 60}
		v.Thrusters.ResponseTime = 0.02

		v.Control.Input.ClampSensitivity(0.8, 0.8)
		v.Control.StabilityAssist = 0.5
		v.Control.FlightAssist = true
		v.Control.Mode = control.Assisted
	}
}

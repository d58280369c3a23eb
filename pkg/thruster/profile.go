// Package thruster models a vehicle's thruster bank: per-axis force and
// torque capability, environmental efficiency, and the normalized command
// state written by control sources each tick.
package thruster

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-sixdof/pkg/physics"
)

// Profile describes a thruster bank's capability and current commands.
// Commands are normalized per axis in [-1, 1]; the translator converts
// them into forces scaled by capability and efficiency.
type Profile struct {
	MaxLinearForce   mgl64.Vec3
	MaxAngularTorque mgl64.Vec3

	// ResponseTime is the spool-up constant in seconds. Commands are
	// currently applied instantaneously; the field is carried for
	// configuration compatibility.
	ResponseTime float64

	VacuumEfficiency     float64
	AtmosphereEfficiency float64

	Enabled        bool
	LinearCommand  mgl64.Vec3
	AngularCommand mgl64.Vec3
}

// NewProfile returns an enabled profile with the given capabilities and
// full efficiency in both environments.
func NewProfile(maxLinear, maxAngular mgl64.Vec3) *Profile {
	return &Profile{
		MaxLinearForce:       maxLinear,
		MaxAngularTorque:     maxAngular,
		VacuumEfficiency:     1.0,
		AtmosphereEfficiency: 1.0,
		Enabled:              true,
	}
}

// SetLinearCommand stores a normalized linear command, clamping each
// component to [-1, 1].
func (p *Profile) SetLinearCommand(command mgl64.Vec3) {
	p.LinearCommand = physics.ClampVec(command, -1, 1)
}

// SetAngularCommand stores a normalized angular command, clamping each
// component to [-1, 1].
func (p *Profile) SetAngularCommand(command mgl64.Vec3) {
	p.AngularCommand = physics.ClampVec(command, -1, 1)
}

// SetEnabled toggles the thruster bank. Disabling clears any pending
// commands so a re-enable starts from rest.
func (p *Profile) SetEnabled(enabled bool) {
	p.Enabled = enabled
	if !enabled {
		p.LinearCommand = mgl64.Vec3{}
		p.AngularCommand = mgl64.Vec3{}
	}
}

// Efficiency returns the thrust multiplier for the given environment.
func (p *Profile) Efficiency(env physics.Environment) float64 {
	switch env {
	case physics.Vacuum:
		return p.VacuumEfficiency
	case physics.Atmosphere:
		return p.AtmosphereEfficiency
	default:
		return 1.0
	}
}

// pkg/physics/body.go
package physics

import "github.com/go-gl/mathgl/mgl64"

// Environment selects which environmental forces act on a body.
type Environment int

const (
	Vacuum Environment = iota
	Atmosphere
)

// Body holds the dynamic state of a rigid body. Forces and torques are
// accumulated between steps and consumed by the integrator each tick.
type Body struct {
	Mass float64

	Velocity         mgl64.Vec3
	Acceleration     mgl64.Vec3
	ForceAccumulator mgl64.Vec3
	DragLinear       float64

	AngularVelocity     mgl64.Vec3
	AngularAcceleration mgl64.Vec3
	TorqueAccumulator   mgl64.Vec3
	DragAngular         float64

	// MomentOfInertia is diagonal, expressed in the body frame.
	MomentOfInertia mgl64.Vec3

	SixDOF      bool
	Kinematic   bool
	Environment Environment
}

// MaxForceComponent caps each accumulated force component to keep the
// integration numerically stable.
const MaxForceComponent = 100000.0

// AddForce accumulates a world-space force for the next integration step.
// Each component is clamped to MaxForceComponent.
func (b *Body) AddForce(force mgl64.Vec3) {
	b.ForceAccumulator = ClampVec(b.ForceAccumulator.Add(force), -MaxForceComponent, MaxForceComponent)
}

// AddTorque accumulates a torque for the next integration step.
// Ignored unless 6DOF is enabled.
func (b *Body) AddTorque(torque mgl64.Vec3) {
	if !b.SixDOF {
		return
	}
	b.TorqueAccumulator = b.TorqueAccumulator.Add(torque)
}

// AddForceAtPoint accumulates a force applied at a world-space point,
// inducing torque about the center of mass when 6DOF is enabled.
func (b *Body) AddForceAtPoint(force, point, centerOfMass mgl64.Vec3) {
	b.AddForce(force)
	if b.SixDOF {
		lever := point.Sub(centerOfMass)
		b.AddTorque(lever.Cross(force))
	}
}

// Set6DOF toggles full rotational dynamics. Disabling clears all angular
// state so a later re-enable starts from rest.
func (b *Body) Set6DOF(enabled bool) {
	b.SixDOF = enabled
	if !enabled {
		b.AngularVelocity = mgl64.Vec3{}
		b.AngularAcceleration = mgl64.Vec3{}
		b.TorqueAccumulator = mgl64.Vec3{}
	}
}

// ClearAccumulators zeroes pending forces and torques.
func (b *Body) ClearAccumulators() {
	b.ForceAccumulator = mgl64.Vec3{}
	b.TorqueAccumulator = mgl64.Vec3{}
}

// Speed returns the magnitude of the linear velocity.
func (b *Body) Speed() float64 {
	return b.Velocity.Len()
}

// Package physics implements rigid-body dynamics for space vehicles:
// force and torque accumulation, semi-implicit Euler integration with
// quaternion orientation, and an optional external backend with circuit
// breaker protection.
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Limits bound the integrated state to keep the simulation stable when
// commanded forces are extreme. Exceeding values are clamped, never rejected.
type Limits struct {
	MaxAcceleration float64
	MaxSpeed        float64
	MaxAngularSpeed float64
}

// DefaultLimits returns the standard stability clamps.
func DefaultLimits() Limits {
	return Limits{
		MaxAcceleration: 1000.0,
		MaxSpeed:        500.0,
		MaxAngularSpeed: 5.0,
	}
}

// Integrator advances rigid bodies through time using semi-implicit Euler
// integration. Linear and angular dynamics are independent: angular state
// only integrates for bodies with 6DOF enabled.
type Integrator struct {
	Limits      Limits
	Gravity     float64 // downward acceleration applied in atmosphere
	FloorHeight float64
}

// NewIntegrator returns an integrator with default limits, gameplay
// gravity, and the standard floor plane.
func NewIntegrator() *Integrator {
	return &Integrator{
		Limits:      DefaultLimits(),
		Gravity:     3.0,
		FloorHeight: -50.0,
	}
}

// Step advances one body by dt seconds. Kinematic bodies are untouched.
// Accumulated forces and torques are consumed and cleared regardless of
// whether they produced acceleration.
func (in *Integrator) Step(body *Body, tr *Transform, dt float64) {
	if body.Kinematic {
		return
	}

	in.applyEnvironment(body)
	in.applyForces(body)
	in.applyTorques(body)
	body.ClearAccumulators()

	in.integrateLinear(body, tr, dt)
	if body.SixDOF {
		in.integrateAngular(body, tr, dt)
	}

	// Floor clamp is inelastic: downward velocity is absorbed.
	if tr.Position.Y() < in.FloorHeight {
		tr.Position[1] = in.FloorHeight
		body.Velocity[1] = math.Max(0, body.Velocity.Y())
	}
}

// applyEnvironment deposits environmental forces into the accumulator.
// Vacuum contributes nothing.
func (in *Integrator) applyEnvironment(body *Body) {
	if body.Environment == Atmosphere {
		body.AddForce(mgl64.Vec3{0, -in.Gravity * body.Mass, 0})
	}
}

// applyForces converts accumulated force to linear acceleration. A body
// with non-positive mass produces no acceleration.
func (in *Integrator) applyForces(body *Body) {
	if body.Mass <= 0 {
		body.Acceleration = mgl64.Vec3{}
		return
	}
	body.Acceleration = ClampLen(body.ForceAccumulator.Mul(1/body.Mass), in.Limits.MaxAcceleration)
}

// applyTorques converts accumulated torque to angular acceleration
// component-wise against the diagonal moment of inertia. Axes with
// non-positive inertia do not rotate.
func (in *Integrator) applyTorques(body *Body) {
	if !body.SixDOF {
		return
	}
	var accel mgl64.Vec3
	for axis := 0; axis < 3; axis++ {
		if body.MomentOfInertia[axis] > 0 {
			accel[axis] = body.TorqueAccumulator[axis] / body.MomentOfInertia[axis]
		}
	}
	body.AngularAcceleration = accel
}

func (in *Integrator) integrateLinear(body *Body, tr *Transform, dt float64) {
	body.Velocity = body.Velocity.Add(body.Acceleration.Mul(dt))
	body.Velocity = body.Velocity.Mul(1 - body.DragLinear)
	body.Velocity = ClampLen(body.Velocity, in.Limits.MaxSpeed)
	tr.Position = tr.Position.Add(body.Velocity.Mul(dt))
}

func (in *Integrator) integrateAngular(body *Body, tr *Transform, dt float64) {
	body.AngularVelocity = body.AngularVelocity.Add(body.AngularAcceleration.Mul(dt))
	body.AngularVelocity = body.AngularVelocity.Mul(1 - body.DragAngular)
	body.AngularVelocity = ClampLen(body.AngularVelocity, in.Limits.MaxAngularSpeed)

	delta := rotationDelta(body.AngularVelocity, dt)
	tr.Rotation = tr.Rotation.Mul(delta).Normalize()
}

// rotationDelta converts an angular velocity over dt into an incremental
// rotation via the quaternion exponential map. Rotations below the angle
// threshold collapse to identity to avoid normalizing near-zero axes.
func rotationDelta(angularVelocity mgl64.Vec3, dt float64) mgl64.Quat {
	angle := angularVelocity.Len() * dt
	if angle < 1e-4 {
		return mgl64.QuatIdent()
	}
	return mgl64.QuatRotate(angle, angularVelocity.Normalize())
}

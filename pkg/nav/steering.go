// pkg/nav/steering.go
package nav

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-sixdof/pkg/physics"
	"github.com/opd-ai/go-sixdof/pkg/thruster"
)

const (
	// alignmentThreshold is the facing dot product (about cos 37 deg)
	// below which forward thrust is withheld until the turn completes.
	alignmentThreshold = 0.8

	angularKp = 3.0
	angularKd = 0.5
	thrustKp  = 0.5

	// Approach taper: speed scales down inside taperDistance but never
	// below minApproachSpeed, so the vehicle cannot stall short.
	taperDistance    = 20.0
	minApproachSpeed = 2.0

	lateralGain      = 0.2
	lateralLimit     = 0.3
	lateralMinRange  = 5.0
	brakingSpeed     = 5.0
	turnBrakeCommand = -0.2

	// trackingKp converts velocity error into force for the
	// velocity-tracking strategy.
	trackingKp = 2.0
)

// desiredSpeed tapers the waypoint speed as the vehicle closes in.
func desiredSpeed(wp Waypoint, distance, fallback float64) float64 {
	speed := wp.TargetSpeed
	if speed <= 0 {
		speed = fallback
	}
	if distance < taperDistance {
		speed *= distance / taperDistance
		if speed < minApproachSpeed {
			speed = minApproachSpeed
		}
	}
	return speed
}

// attitudeCommand computes damped pitch/yaw commands that turn the
// vehicle's nose onto the target direction. Roll is left alone. A
// positive maxTurnRate withholds torque on any axis already rotating
// that fast in the commanded direction.
func attitudeCommand(body *physics.Body, tr *physics.Transform, direction mgl64.Vec3, maxTurnRate float64) mgl64.Vec3 {
	forward := tr.Forward()
	angularError := forward.Cross(direction)

	yawError := angularError.Dot(tr.Up())
	pitchError := -angularError.Dot(tr.Right())

	cmd := mgl64.Vec3{
		physics.Clamp(pitchError*angularKp-body.AngularVelocity.X()*angularKd, -1, 1),
		physics.Clamp(yawError*angularKp-body.AngularVelocity.Y()*angularKd, -1, 1),
		0,
	}

	if maxTurnRate > 0 {
		for axis := 0; axis < 2; axis++ {
			rate := body.AngularVelocity[axis]
			if rate >= maxTurnRate && cmd[axis] > 0 {
				cmd[axis] = 0
			}
			if rate <= -maxTurnRate && cmd[axis] < 0 {
				cmd[axis] = 0
			}
		}
	}
	return cmd
}

// clampAcceleration bounds a normalized linear command so the resulting
// thrust cannot accelerate the body past the path limit.
func clampAcceleration(linear mgl64.Vec3, body *physics.Body, profile *thruster.Profile, maxAccel float64) mgl64.Vec3 {
	if maxAccel <= 0 || body.Mass <= 0 {
		return linear
	}
	for axis := 0; axis < 3; axis++ {
		capability := profile.MaxLinearForce[axis]
		if capability <= 0 {
			continue
		}
		limit := maxAccel * body.Mass / capability
		linear[axis] = physics.Clamp(linear[axis], -limit, limit)
	}
	return linear
}

// steerAlignment implements turn-then-burn steering: thrust is gated on
// how well the nose points at the target, with light braking while the
// turn develops and small lateral trims at range.
func steerAlignment(body *physics.Body, tr *physics.Transform, profile *thruster.Profile, wp Waypoint, path FlightPath, distance float64) (linear, angular mgl64.Vec3) {
	direction := physics.SafeNormalize(wp.Position.Sub(tr.Position), mgl64.Vec3{0, 0, 1})
	forward := tr.Forward()

	angular = attitudeCommand(body, tr, direction, path.MaxTurnRate)

	alignment := forward.Dot(direction)
	forwardSpeed := body.Velocity.Dot(forward)

	if alignment <= alignmentThreshold {
		// Still turning. Bleed off speed so the turn radius stays tight.
		if forwardSpeed > brakingSpeed {
			linear[2] = turnBrakeCommand
		}
		return linear, angular
	}

	speedError := desiredSpeed(wp, distance, path.DefaultSpeed) - forwardSpeed
	linear[2] = physics.Clamp(speedError*thrustKp, -1, 1)

	if distance > lateralMinRange {
		linear[0] = physics.Clamp(direction.Dot(tr.Right())*lateralGain, -lateralLimit, lateralLimit)
		linear[1] = physics.Clamp(direction.Dot(tr.Up())*lateralGain, -lateralLimit, lateralLimit)
	}
	return clampAcceleration(linear, body, profile, path.MaxAcceleration), angular
}

// steerVelocityTracking servos the velocity vector directly: the desired
// velocity points at the target at the tapered speed, and the error is
// converted into a mass-scaled force request expressed as a normalized
// body-frame command against the thruster capability.
func steerVelocityTracking(body *physics.Body, tr *physics.Transform, profile *thruster.Profile, wp Waypoint, path FlightPath, distance float64) (linear, angular mgl64.Vec3) {
	direction := physics.SafeNormalize(wp.Position.Sub(tr.Position), mgl64.Vec3{0, 0, 1})

	angular = attitudeCommand(body, tr, direction, path.MaxTurnRate)

	desired := direction.Mul(desiredSpeed(wp, distance, path.DefaultSpeed))
	velocityError := desired.Sub(body.Velocity)

	force := velocityError.Mul(body.Mass * trackingKp)
	localForce := tr.Rotation.Inverse().Rotate(force)

	for axis := 0; axis < 3; axis++ {
		capability := profile.MaxLinearForce[axis]
		if capability > 0 {
			linear[axis] = physics.Clamp(localForce[axis]/capability, -1, 1)
		}
	}
	return clampAcceleration(linear, body, profile, path.MaxAcceleration), angular
}

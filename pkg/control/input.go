// pkg/control/input.go
package control

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-sixdof/pkg/physics"
)

// Axis names an analog control channel. Values are expected in [-1, 1].
type Axis int

const (
	AxisThrust Axis = iota
	AxisStrafe
	AxisVertical
	AxisPitch
	AxisYaw
	AxisRoll
)

// Button names a pressure channel. Values are expected in [0, 1].
type Button int

const (
	ButtonBoost Button = iota
	ButtonBrake
)

// InputSource supplies named control channels. Device handling lives
// outside this module; anything that can answer these queries can drive
// a vehicle.
type InputSource interface {
	Axis(axis Axis) float64
	Button(button Button) float64
}

// InputConfig shapes raw input into commands: dead zone, sensitivity,
// response curve, and axis inversion.
type InputConfig struct {
	DeadZone           float64
	LinearSensitivity  float64
	AngularSensitivity float64
	QuadraticCurve     bool
	InvertPitch        bool
	InvertYaw          bool
}

// DefaultInputConfig returns the standard shaping parameters.
func DefaultInputConfig() InputConfig {
	return InputConfig{
		DeadZone:           0.15,
		LinearSensitivity:  1.0,
		AngularSensitivity: 1.0,
	}
}

// ClampSensitivity bounds both sensitivities to the supported range.
func (c *InputConfig) ClampSensitivity(linear, angular float64) {
	c.LinearSensitivity = physics.Clamp(linear, 0.1, 5.0)
	c.AngularSensitivity = physics.Clamp(angular, 0.1, 5.0)
}

// Frame is one tick's worth of shaped input.
type Frame struct {
	Linear  mgl64.Vec3 // strafe, vertical, thrust
	Angular mgl64.Vec3 // pitch, yaw, roll
	Boost   float64
	Brake   float64
}

// ReadFrame samples an input source and shapes it: inversion, then the
// dead zone on the raw value, then sensitivity and the optional
// quadratic curve, with a final clamp to [-1, 1].
func ReadFrame(src InputSource, cfg InputConfig) Frame {
	thrust := src.Axis(AxisThrust)
	strafe := src.Axis(AxisStrafe)
	vertical := src.Axis(AxisVertical)
	pitch := src.Axis(AxisPitch)
	yaw := src.Axis(AxisYaw)
	roll := src.Axis(AxisRoll)

	if cfg.InvertPitch {
		pitch = -pitch
	}
	if cfg.InvertYaw {
		yaw = -yaw
	}

	thrust = shape(thrust, cfg.LinearSensitivity, cfg)
	strafe = shape(strafe, cfg.LinearSensitivity, cfg)
	vertical = shape(vertical, cfg.LinearSensitivity, cfg)
	pitch = shape(pitch, cfg.AngularSensitivity, cfg)
	yaw = shape(yaw, cfg.AngularSensitivity, cfg)
	roll = shape(roll, cfg.AngularSensitivity, cfg)

	return Frame{
		Linear:  mgl64.Vec3{strafe, vertical, thrust},
		Angular: mgl64.Vec3{pitch, yaw, roll},
		Boost:   physics.Clamp(src.Button(ButtonBoost), 0, 1),
		Brake:   physics.Clamp(src.Button(ButtonBrake), 0, 1),
	}
}

// shape dead-zones the raw value before sensitivity is applied, so a
// high sensitivity cannot lift stick drift over the threshold.
func shape(raw, sensitivity float64, cfg InputConfig) float64 {
	if math.Abs(raw) < cfg.DeadZone {
		return 0
	}
	value := raw * sensitivity
	if cfg.QuadraticCurve {
		value = value * math.Abs(value)
	}
	return physics.Clamp(value, -1, 1)
}

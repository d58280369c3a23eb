// Package entity defines the Vehicle aggregate and the Store that owns
// all vehicles in a simulation. A vehicle is a bag of optional
// components; systems skip whatever a vehicle does not carry.
package entity

import (
	"github.com/EngoEngine/ecs"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-sixdof/pkg/control"
	"github.com/opd-ai/go-sixdof/pkg/nav"
	"github.com/opd-ai/go-sixdof/pkg/physics"
	"github.com/opd-ai/go-sixdof/pkg/thruster"
)

// Vehicle is a controllable rigid body. Identity comes from the
// embedded ecs.BasicEntity; every component pointer is optional.
type Vehicle struct {
	ecs.BasicEntity
	Name string

	Transform *physics.Transform
	Body      *physics.Body
	Thrusters *thruster.Profile
	Control   *control.Record
	Flight    *nav.ScriptedFlight
}

// NewVehicle returns a fully equipped 6DOF vehicle at the given
// position with neutral defaults. Callers typically follow up with a
// preset or explicit tuning.
func NewVehicle(name string, position mgl64.Vec3) *Vehicle {
	return &Vehicle{
		BasicEntity: ecs.NewBasic(),
		Name:        name,
		Transform:   physics.NewTransform(position),
		Body: &physics.Body{
			Mass:            100,
			MomentOfInertia: mgl64.Vec3{1, 1, 1},
			SixDOF:          true,
		},
		Thrusters: thruster.NewProfile(mgl64.Vec3{500, 500, 1000}, mgl64.Vec3{100, 100, 100}),
		Control:   control.NewRecord(),
		Flight:    nav.NewScriptedFlight(),
	}
}

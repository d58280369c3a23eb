// pkg/nav/paths.go
package nav

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// CircuitPath returns a looping rectangular circuit at cruising height,
// suitable for patrol flights and navigation testing.
func CircuitPath() FlightPath {
	return FlightPath{
		Loop:            true,
		DefaultSpeed:    25,
		MaxAcceleration: 15,
		MaxTurnRate:     1.5,
		Waypoints: []Waypoint{
			{Position: mgl64.Vec3{50, 10, 0}, Type: PassThrough, TargetSpeed: 25, Tolerance: 5},
			{Position: mgl64.Vec3{0, 10, 50}, Type: PassThrough, TargetSpeed: 25, Tolerance: 5},
			{Position: mgl64.Vec3{-50, 10, 0}, Type: PassThrough, TargetSpeed: 25, Tolerance: 5},
			{Position: mgl64.Vec3{0, 10, -50}, Type: PassThrough, TargetSpeed: 25, Tolerance: 5},
		},
	}
}

// FigureEightPath returns a looping figure-eight: a circle in X with
// doubled frequency in Z.
func FigureEightPath() FlightPath {
	const (
		radius = 30.0
		height = 15.0
	)

	waypoints := make([]Waypoint, 8)
	for i := range waypoints {
		angle := float64(i) * math.Pi / 4
		waypoints[i] = Waypoint{
			Position:    mgl64.Vec3{radius * math.Cos(angle), height, radius * math.Sin(angle * 2)},
			Type:        PassThrough,
			TargetSpeed: 20,
			Tolerance:   4,
		}
	}

	return FlightPath{
		Loop:            true,
		DefaultSpeed:    20,
		MaxAcceleration: 12,
		MaxTurnRate:     2,
		Waypoints:       waypoints,
	}
}

// LandingApproachPath returns a non-looping descent onto landing: high
// approach, final approach, a stabilizing hover, then touchdown.
func LandingApproachPath(landing mgl64.Vec3) FlightPath {
	return FlightPath{
		Loop:            false,
		DefaultSpeed:    15,
		MaxAcceleration: 8,
		MaxTurnRate:     1,
		Waypoints: []Waypoint{
			{
				Position:    landing.Add(mgl64.Vec3{0, 50, -50}),
				Type:        Position,
				TargetSpeed: 15,
				Tolerance:   8,
			},
			{
				Position:    landing.Add(mgl64.Vec3{0, 20, -20}),
				Type:        Position,
				TargetSpeed: 8,
				Tolerance:   5,
			},
			{
				Position:      landing.Add(mgl64.Vec3{0, 10, 0}),
				Type:          Hover,
				TargetSpeed:   2,
				Tolerance:     3,
				HoverDuration: 2,
			},
			{
				Position:    landing,
				Type:        Position,
				TargetSpeed: 1,
				Tolerance:   2,
			},
		},
	}
}

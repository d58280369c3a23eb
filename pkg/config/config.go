// pkg/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/opd-ai/go-sixdof/pkg/nav"
	"github.com/opd-ai/go-sixdof/pkg/physics"
)

// SimConfig contains configuration for a simulation run
type SimConfig struct {
	TickRate    int             `json:"tickRate"`
	MaxSubSteps int             `json:"maxSubSteps"`
	Physics     PhysicsConfig   `json:"physics"`
	Vehicles    []VehicleConfig `json:"vehicles"`
	Paths       []PathConfig    `json:"paths"`
}

// PhysicsConfig contains physics-related configuration
type PhysicsConfig struct {
	Gravity         float64 `json:"gravity"`
	FloorHeight     float64 `json:"floorHeight"`
	MaxAcceleration float64 `json:"maxAcceleration"`
	MaxSpeed        float64 `json:"maxSpeed"`
	MaxAngularSpeed float64 `json:"maxAngularSpeed"`
	Environment     string  `json:"environment"`
}

// VehicleConfig contains configuration for a single vehicle
type VehicleConfig struct {
	Name     string     `json:"name"`
	Preset   string     `json:"preset"`
	Position [3]float64 `json:"position"`
	Player   bool       `json:"player"`
	Path     string     `json:"path,omitempty"`
}

// PathConfig contains configuration for a named flight path
type PathConfig struct {
	Name            string           `json:"name"`
	Loop            bool             `json:"loop"`
	DefaultSpeed    float64          `json:"defaultSpeed"`
	MaxAcceleration float64          `json:"maxAcceleration,omitempty"`
	MaxTurnRate     float64          `json:"maxTurnRate,omitempty"`
	Strategy        string           `json:"strategy,omitempty"`
	Waypoints       []WaypointConfig `json:"waypoints"`
}

// WaypointConfig contains configuration for a single waypoint
type WaypointConfig struct {
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	Z             float64 `json:"z"`
	Type          string  `json:"type,omitempty"`
	TargetSpeed   float64 `json:"targetSpeed,omitempty"`
	Tolerance     float64 `json:"tolerance"`
	HoverDuration float64 `json:"hoverDuration,omitempty"`
}

// LoadConfig loads a configuration from a file
func LoadConfig(path string) (*SimConfig, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config SimConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *SimConfig, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns a default simulation configuration
func DefaultConfig() *SimConfig {
	return &SimConfig{
		TickRate:    60,
		MaxSubSteps: 5,
		Physics: PhysicsConfig{
			Gravity:         3.0,
			FloorHeight:     -50,
			MaxAcceleration: 1000,
			MaxSpeed:        500,
			MaxAngularSpeed: 5,
			Environment:     "vacuum",
		},
		Vehicles: []VehicleConfig{
			{
				Name:     "player",
				Preset:   "fighter",
				Position: [3]float64{0, 10, 0},
				Player:   true,
			},
			{
				Name:     "patrol",
				Preset:   "shuttle",
				Position: [3]float64{-50, 10, -50},
				Path:     "circuit",
			},
		},
		Paths: []PathConfig{
			{
				Name:         "circuit",
				Loop:         true,
				DefaultSpeed: 25,
				Waypoints: []WaypointConfig{
					{X: 50, Y: 10, Z: 50, Tolerance: 5},
					{X: 50, Y: 10, Z: -50, Tolerance: 5},
					{X: -50, Y: 10, Z: -50, Tolerance: 5},
					{X: -50, Y: 10, Z: 50, Tolerance: 5},
				},
			},
		},
	}
}

// Limits converts the physics configuration into integrator limits.
func (p *PhysicsConfig) Limits() physics.Limits {
	limits := physics.DefaultLimits()
	if p.MaxAcceleration > 0 {
		limits.MaxAcceleration = p.MaxAcceleration
	}
	if p.MaxSpeed > 0 {
		limits.MaxSpeed = p.MaxSpeed
	}
	if p.MaxAngularSpeed > 0 {
		limits.MaxAngularSpeed = p.MaxAngularSpeed
	}
	return limits
}

// ParseEnvironment maps the configured environment name onto the physics
// environment, defaulting to vacuum for unknown names.
func (p *PhysicsConfig) ParseEnvironment() physics.Environment {
	if p.Environment == "atmosphere" {
		return physics.Atmosphere
	}
	return physics.Vacuum
}

// FlightPath converts a path configuration into a flyable path.
func (p *PathConfig) FlightPath() (*nav.FlightPath, error) {
	path := &nav.FlightPath{
		Loop:            p.Loop,
		DefaultSpeed:    p.DefaultSpeed,
		MaxAcceleration: p.MaxAcceleration,
		MaxTurnRate:     p.MaxTurnRate,
		Waypoints:       make([]nav.Waypoint, 0, len(p.Waypoints)),
	}

	switch p.Strategy {
	case "", "alignment":
		path.Strategy = nav.StrategyAlignment
	case "velocity_tracking":
		path.Strategy = nav.StrategyVelocityTracking
	default:
		return nil, fmt.Errorf("unknown steering strategy %q in path %q", p.Strategy, p.Name)
	}

	for i, wp := range p.Waypoints {
		waypoint := nav.Waypoint{
			Position:      mgl64.Vec3{wp.X, wp.Y, wp.Z},
			TargetSpeed:   wp.TargetSpeed,
			Tolerance:     wp.Tolerance,
			HoverDuration: wp.HoverDuration,
		}

		switch wp.Type {
		case "", "pass_through":
			waypoint.Type = nav.PassThrough
		case "position":
			waypoint.Type = nav.Position
		case "hover":
			waypoint.Type = nav.Hover
		default:
			return nil, fmt.Errorf("unknown waypoint type %q at index %d in path %q", wp.Type, i, p.Name)
		}

		path.Waypoints = append(path.Waypoints, waypoint)
	}

	if err := path.Validate(); err != nil {
		return nil, fmt.Errorf("path %q: %w", p.Name, err)
	}

	return path, nil
}

// pkg/physics/backend.go
package physics

import (
	"context"
	"fmt"

	"github.com/sony/gobreaker"

	"github.com/opd-ai/go-sixdof/pkg/logging"
)

// Backend is an alternate physics provider that advances some entities
// instead of the internal integrator. Entities it claims via Advances are
// skipped by the internal integration pass; Step advances all claimed
// entities by a fixed timestep.
type Backend interface {
	Advances(entityID uint64) bool
	Step(dt float64) error
}

// GuardedBackend wraps a Backend with a circuit breaker. After repeated
// Step failures the breaker opens, Advances reports false for every
// entity, and the internal integrator takes over until the backend
// recovers.
type GuardedBackend struct {
	backend Backend
	breaker *gobreaker.CircuitBreaker
	logger  *logging.Logger
}

// GuardSettings configures failure thresholds for a GuardedBackend.
type GuardSettings struct {
	Name                string
	MaxConsecutiveFails uint32
}

// NewGuardedBackend wraps backend with a circuit breaker using the given
// settings. A zero MaxConsecutiveFails defaults to 3.
func NewGuardedBackend(backend Backend, settings GuardSettings) *GuardedBackend {
	logger := logging.NewLogger()
	if settings.Name == "" {
		settings.Name = "physics-backend"
	}
	if settings.MaxConsecutiveFails == 0 {
		settings.MaxConsecutiveFails = 3
	}

	breakerSettings := gobreaker.Settings{
		Name: settings.Name,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= settings.MaxConsecutiveFails
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info(context.Background(), "physics backend breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	return &GuardedBackend{
		backend: backend,
		breaker: gobreaker.NewCircuitBreaker(breakerSettings),
		logger:  logger,
	}
}

// Advances reports whether the wrapped backend claims the entity. While
// the breaker is open every entity falls back to internal integration.
func (g *GuardedBackend) Advances(entityID uint64) bool {
	if g.breaker.State() == gobreaker.StateOpen {
		return false
	}
	return g.backend.Advances(entityID)
}

// Step advances the wrapped backend through the circuit breaker.
func (g *GuardedBackend) Step(dt float64) error {
	_, err := g.breaker.Execute(func() (interface{}, error) {
		return nil, g.backend.Step(dt)
	})
	if err != nil {
		return fmt.Errorf("physics backend step: %w", err)
	}
	return nil
}

// State returns the current breaker state for monitoring.
func (g *GuardedBackend) State() gobreaker.State {
	return g.breaker.State()
}

// FixedStepper accumulates variable frame time and emits fixed-size
// sub-steps, carrying any remainder to the next frame. The number of
// sub-steps per frame is capped so a stall cannot trigger a spiral of
// catch-up work.
type FixedStepper struct {
	StepSize    float64
	MaxSubSteps int

	accumulated float64
}

// NewFixedStepper returns a stepper emitting steps of stepSize seconds,
// at most maxSubSteps per frame.
func NewFixedStepper(stepSize float64, maxSubSteps int) *FixedStepper {
	if maxSubSteps <= 0 {
		maxSubSteps = 5
	}
	return &FixedStepper{
		StepSize:    stepSize,
		MaxSubSteps: maxSubSteps,
	}
}

// Advance adds frameTime to the accumulator and returns the number of
// fixed steps to run now. Unconsumed time carries to the next frame;
// the carried backlog itself is bounded so one long stall cannot queue
// catch-up work across many frames.
func (fs *FixedStepper) Advance(frameTime float64) int {
	fs.accumulated += frameTime

	steps := int(fs.accumulated / fs.StepSize)
	if steps > fs.MaxSubSteps {
		steps = fs.MaxSubSteps
	}
	fs.accumulated -= float64(steps) * fs.StepSize

	if limit := float64(fs.MaxSubSteps) * fs.StepSize; fs.accumulated > limit {
		fs.accumulated = limit
	}
	return steps
}

// Pending returns the unconsumed remainder carried to the next frame.
func (fs *FixedStepper) Pending() float64 {
	return fs.accumulated
}

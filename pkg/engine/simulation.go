// Package engine orchestrates the simulation tick: arbitration,
// thruster translation, and integration run in strict order over every
// vehicle in the store, once per fixed step.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-sixdof/pkg/config"
	"github.com/opd-ai/go-sixdof/pkg/control"
	"github.com/opd-ai/go-sixdof/pkg/entity"
	"github.com/opd-ai/go-sixdof/pkg/event"
	"github.com/opd-ai/go-sixdof/pkg/logging"
	"github.com/opd-ai/go-sixdof/pkg/nav"
	"github.com/opd-ai/go-sixdof/pkg/physics"
	"github.com/opd-ai/go-sixdof/pkg/telemetry"
	"github.com/opd-ai/go-sixdof/pkg/thruster"
)

var (
	ErrVehicleNotFound = errors.New("vehicle not found")
	ErrNoThrusters     = errors.New("vehicle has no thruster profile")
	ErrNoFlight        = errors.New("vehicle has no flight component")
	ErrNoControl       = errors.New("vehicle has no control record")
	ErrUnknownPath     = errors.New("unknown flight path")
)

// SimContext carries per-tick simulation context into each system pass.
// The designated player entity travels here rather than in any global.
type SimContext struct {
	PlayerEntity uint64
	DeltaTime    float64
	Tick         uint64
}

// Stats is a read-only snapshot of the most recent tick.
type Stats struct {
	Tick            uint64
	EntitiesUpdated int
	BackendEntities int
	ModeCounts      map[string]int
}

// Simulation owns the vehicle store and drives the fixed-step tick
// pipeline: arbiter, then translator, then integrator.
type Simulation struct {
	Config     *config.SimConfig
	Store      *entity.Store
	Arbiter    *control.Arbiter
	Translator *thruster.Translator
	Integrator *physics.Integrator
	Backend    physics.Backend
	EventBus   *event.Bus
	Collector  *telemetry.Collector

	mu           sync.Mutex
	currentTick  uint64
	playerEntity uint64
	stepper      *physics.FixedStepper
	paths        map[string]*nav.FlightPath
	environment  physics.Environment
	lastStats    Stats
	logger       *logging.Logger
}

// NewSimulation builds a simulation from the given configuration,
// spawning the configured vehicles and wiring scripted flights to their
// named paths. A nil config uses defaults.
func NewSimulation(cfg *config.SimConfig) (*Simulation, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if cfg.TickRate <= 0 {
		return nil, fmt.Errorf("invalid tick rate %d", cfg.TickRate)
	}

	integrator := physics.NewIntegrator()
	integrator.Limits = cfg.Physics.Limits()
	integrator.Gravity = cfg.Physics.Gravity
	integrator.FloorHeight = cfg.Physics.FloorHeight

	sim := &Simulation{
		Config:      cfg,
		Store:       entity.NewStore(),
		Arbiter:     control.NewArbiter(),
		Translator:  thruster.NewTranslator(),
		Integrator:  integrator,
		EventBus:    event.NewEventBus(),
		stepper:     physics.NewFixedStepper(1.0/float64(cfg.TickRate), cfg.MaxSubSteps),
		paths:       make(map[string]*nav.FlightPath),
		environment: cfg.Physics.ParseEnvironment(),
		logger:      logging.NewLogger(),
	}
	sim.Arbiter.Scripted = &flightSource{sim: sim}

	for _, pathCfg := range cfg.Paths {
		path, err := pathCfg.FlightPath()
		if err != nil {
			return nil, err
		}
		sim.paths[pathCfg.Name] = path
	}

	for _, vehicleCfg := range cfg.Vehicles {
		if _, err := sim.spawnVehicle(vehicleCfg); err != nil {
			return nil, err
		}
	}

	return sim, nil
}

// spawnVehicle creates, configures, and registers one vehicle from its
// configuration, starting its scripted flight when a path is named.
func (s *Simulation) spawnVehicle(cfg config.VehicleConfig) (uint64, error) {
	v := entity.NewVehicle(cfg.Name, mgl64.Vec3{cfg.Position[0], cfg.Position[1], cfg.Position[2]})
	if cfg.Preset != "" {
		v.Configure(entity.Preset(cfg.Preset))
	}
	v.Body.Environment = s.environment

	id := s.Store.Add(v)
	s.EventBus.Publish(event.NewVehicleEvent(event.VehicleAdded, s, id))
	s.Collector.SetVehicleCount(s.Store.Len())

	if cfg.Player {
		s.playerEntity = id
	}

	if cfg.Path != "" {
		path, ok := s.paths[cfg.Path]
		if !ok {
			return 0, fmt.Errorf("vehicle %q: %w: %q", cfg.Name, ErrUnknownPath, cfg.Path)
		}
		if err := s.startFlight(v, *path); err != nil {
			return 0, fmt.Errorf("vehicle %q: %w", cfg.Name, err)
		}
	}

	return id, nil
}

// AddVehicle registers an externally built vehicle and returns its ID.
func (s *Simulation) AddVehicle(v *entity.Vehicle) uint64 {
	if v.Body != nil {
		v.Body.Environment = s.environment
	}
	id := s.Store.Add(v)
	s.EventBus.Publish(event.NewVehicleEvent(event.VehicleAdded, s, id))
	s.Collector.SetVehicleCount(s.Store.Len())
	return id
}

// RemoveVehicle deletes a vehicle and its component state.
func (s *Simulation) RemoveVehicle(id uint64) {
	s.Store.Remove(id)
	s.EventBus.Publish(event.NewVehicleEvent(event.VehicleRemoved, s, id))
	s.Collector.SetVehicleCount(s.Store.Len())
}

// Update advances the simulation by frameTime seconds, running as many
// whole fixed steps as the stepper emits. Time past the sub-step cap
// carries as a bounded backlog into later frames.
func (s *Simulation) Update(frameTime float64) {
	steps := s.stepper.Advance(frameTime)
	for i := 0; i < steps; i++ {
		s.step(s.stepper.StepSize)
	}
}

// Step advances exactly one tick of dt seconds, bypassing the
// fixed-step accumulator. Tests and external drivers use this.
func (s *Simulation) Step(dt float64) {
	s.step(dt)
}

func (s *Simulation) step(dt float64) {
	start := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.currentTick++
	ctx := SimContext{
		PlayerEntity: s.playerEntity,
		DeltaTime:    dt,
		Tick:         s.currentTick,
	}

	s.arbitrate(ctx)
	s.translate(ctx)
	s.integrate(ctx)
	s.refreshStats(ctx)

	s.Collector.ObserveTick(time.Since(start))
}

// arbitrate routes every vehicle through the authority arbiter, the
// sole writer of thruster commands.
func (s *Simulation) arbitrate(ctx SimContext) {
	s.Store.Each(func(v *entity.Vehicle) {
		s.Arbiter.Update(control.Tick{
			EntityID:  v.ID(),
			IsPlayer:  v.ID() == ctx.PlayerEntity,
			Record:    v.Control,
			Profile:   v.Thrusters,
			Body:      v.Body,
			Transform: v.Transform,
			Dt:        ctx.DeltaTime,
		})
	})
}

// translate converts thruster commands into accumulated forces.
func (s *Simulation) translate(ctx SimContext) {
	s.Store.Each(func(v *entity.Vehicle) {
		if v.Body == nil || v.Transform == nil {
			return
		}
		s.Translator.Apply(v.Thrusters, v.Body, v.Transform)
	})
}

// integrate advances every body, skipping those an external backend
// claims so nothing integrates twice.
func (s *Simulation) integrate(ctx SimContext) {
	updated := 0
	skipped := 0

	s.Store.Each(func(v *entity.Vehicle) {
		if v.Body == nil || v.Transform == nil {
			return
		}
		if s.Backend != nil && s.Backend.Advances(v.ID()) {
			v.Body.ClearAccumulators()
			skipped++
			s.Collector.IncBackendSkips()
			return
		}
		s.Integrator.Step(v.Body, v.Transform, ctx.DeltaTime)
		updated++
	})

	if s.Backend != nil && skipped > 0 {
		if err := s.Backend.Step(ctx.DeltaTime); err != nil {
			s.logger.Warn(context.Background(), "external physics backend step failed",
				"error", err.Error(), "tick", ctx.Tick)
		}
	}

	s.lastStats.EntitiesUpdated = updated
	s.lastStats.BackendEntities = skipped
}

// refreshStats rebuilds the per-mode counts and drives the telemetry
// gauges from the post-tick state.
func (s *Simulation) refreshStats(ctx SimContext) {
	counts := make(map[string]int)
	s.Store.Each(func(v *entity.Vehicle) {
		if v.Control == nil {
			return
		}
		counts[v.Control.Mode.String()]++
	})

	s.lastStats.Tick = ctx.Tick
	s.lastStats.ModeCounts = counts

	s.Collector.SetVehicleCount(s.Store.Len())
	for mode, count := range counts {
		s.Collector.SetModeCount(mode, count)
	}
}

// Run drives fixed-step ticks from a wall-clock ticker until the
// context is cancelled.
func (s *Simulation) Run(ctx context.Context) error {
	interval := time.Duration(float64(time.Second) * s.stepper.StepSize)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.EventBus.Publish(&event.BaseEvent{EventType: event.SimStarted, Source: s})
	defer s.EventBus.Publish(&event.BaseEvent{EventType: event.SimStopped, Source: s})

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			s.Update(now.Sub(last).Seconds())
			last = now
		}
	}
}

// SetPlayerEntity designates which vehicle re-asserts player authority
// each tick.
func (s *Simulation) SetPlayerEntity(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playerEntity = id
}

// PlayerEntity returns the current player vehicle ID.
func (s *Simulation) PlayerEntity() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playerEntity
}

// SetCommand writes normalized thruster commands for a vehicle.
// Components are clamped to [-1, 1] by the profile.
func (s *Simulation) SetCommand(id uint64, linear, angular mgl64.Vec3) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := s.Store.Get(id)
	if v == nil {
		return ErrVehicleNotFound
	}
	if v.Thrusters == nil {
		return ErrNoThrusters
	}
	v.Thrusters.SetLinearCommand(linear)
	v.Thrusters.SetAngularCommand(angular)
	return nil
}

// RequestAuthority attempts to claim control of a vehicle at the given
// priority level. The result is published on the event bus either way.
func (s *Simulation) RequestAuthority(id uint64, level control.Level, requester uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := s.Store.Get(id)
	if v == nil {
		return false, ErrVehicleNotFound
	}
	if v.Control == nil {
		return false, ErrNoControl
	}

	granted := v.Control.Request(level, requester)
	eventType := event.AuthorityDenied
	if granted {
		eventType = event.AuthorityGranted
	}
	s.EventBus.Publish(event.NewAuthorityEvent(eventType, s, id, requester, int(level)))
	return granted, nil
}

// ReleaseAuthority releases control of a vehicle. Only the current
// holder can release.
func (s *Simulation) ReleaseAuthority(id uint64, releaser uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := s.Store.Get(id)
	if v == nil {
		return false, ErrVehicleNotFound
	}
	if v.Control == nil {
		return false, ErrNoControl
	}

	released := v.Control.Release(releaser)
	if released {
		s.EventBus.Publish(event.NewAuthorityEvent(event.AuthorityReleased, s, id, releaser, int(control.LevelNone)))
	}
	return released, nil
}

// SetControlMode switches a vehicle's control mode.
func (s *Simulation) SetControlMode(id uint64, mode control.Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := s.Store.Get(id)
	if v == nil {
		return ErrVehicleNotFound
	}
	if v.Control == nil {
		return ErrNoControl
	}

	if v.Control.Mode != mode {
		v.Control.Mode = mode
		s.EventBus.Publish(event.NewVehicleEvent(event.ControlModeChanged, s, id))
	}
	return nil
}

// StartFlight begins a scripted flight along the given path, claiming
// script authority and switching the vehicle to scripted mode.
func (s *Simulation) StartFlight(id uint64, path nav.FlightPath) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := s.Store.Get(id)
	if v == nil {
		return ErrVehicleNotFound
	}
	return s.startFlight(v, path)
}

// StartNamedFlight begins a scripted flight along a path from the
// configuration.
func (s *Simulation) StartNamedFlight(id uint64, name string) error {
	path, ok := s.paths[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPath, name)
	}
	return s.StartFlight(id, *path)
}

func (s *Simulation) startFlight(v *entity.Vehicle, path nav.FlightPath) error {
	if v.Flight == nil {
		return ErrNoFlight
	}
	if err := v.Flight.Start(path); err != nil {
		return err
	}
	if v.Control != nil {
		v.Control.Mode = control.Scripted
		v.Control.Request(control.LevelScript, v.ID())
	}
	s.EventBus.Publish(event.NewFlightEvent(event.FlightStarted, s, v.ID(), 0))
	return nil
}

// StopFlight halts a scripted flight. Commands written by the flight so
// far remain on the profile until another source overwrites them.
func (s *Simulation) StopFlight(id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := s.Store.Get(id)
	if v == nil {
		return ErrVehicleNotFound
	}
	if v.Flight == nil {
		return ErrNoFlight
	}
	v.Flight.Stop()
	s.EventBus.Publish(event.NewFlightEvent(event.FlightStopped, s, id, v.Flight.Cursor()))
	return nil
}

// PauseFlight suspends flight updates without losing the cursor.
func (s *Simulation) PauseFlight(id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := s.Store.Get(id)
	if v == nil {
		return ErrVehicleNotFound
	}
	if v.Flight == nil {
		return ErrNoFlight
	}
	v.Flight.Pause()
	return nil
}

// ResumeFlight resumes a paused flight.
func (s *Simulation) ResumeFlight(id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := s.Store.Get(id)
	if v == nil {
		return ErrVehicleNotFound
	}
	if v.Flight == nil {
		return ErrNoFlight
	}
	v.Flight.Resume()
	return nil
}

// Tick returns the number of completed ticks.
func (s *Simulation) Tick() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentTick
}

// Stats returns a snapshot of the most recent tick's counters.
func (s *Simulation) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.lastStats
	snapshot.ModeCounts = make(map[string]int, len(s.lastStats.ModeCounts))
	for mode, count := range s.lastStats.ModeCounts {
		snapshot.ModeCounts[mode] = count
	}
	return snapshot
}

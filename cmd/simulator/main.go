// cmd/simulator/main.go
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/opd-ai/go-sixdof/pkg/config"
	"github.com/opd-ai/go-sixdof/pkg/engine"
	"github.com/opd-ai/go-sixdof/pkg/event"
	"github.com/opd-ai/go-sixdof/pkg/health"
	"github.com/opd-ai/go-sixdof/pkg/logging"
	"github.com/opd-ai/go-sixdof/pkg/telemetry"
)

func main() {
	logger := logging.NewLogger()
	ctx := context.Background()

	configPath := flag.String("config", "config.json", "Path to configuration file")
	createDefault := flag.Bool("default", false, "Create default configuration file")
	flag.Parse()

	// Create default configuration file if requested
	if *createDefault {
		defaultConfig := config.DefaultConfig()
		if err := config.SaveConfig(defaultConfig, *configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file",
			"config_path", *configPath,
		)
		return
	}

	// Load configuration
	var simConfig *config.SimConfig

	if _, err := os.Stat(*configPath); os.IsNotExist(err) {
		logger.Info(ctx, "Configuration file not found, using default configuration",
			"config_path", *configPath,
		)
		simConfig = config.DefaultConfig()
	} else {
		simConfig, err = config.LoadConfig(*configPath)
		if err != nil {
			logger.Error(ctx, "Failed to load configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
	}

	// Runtime settings come from the environment
	envConfig, err := config.LoadConfigFromEnv()
	if err != nil {
		logger.Error(ctx, "Failed to load environment configuration", err)
		os.Exit(1)
	}
	if os.Getenv("SIXDOF_TICK_RATE") != "" {
		simConfig.TickRate = envConfig.TickRate
	}
	if os.Getenv("SIXDOF_MAX_SUB_STEPS") != "" {
		simConfig.MaxSubSteps = envConfig.MaxSubSteps
	}

	// Create simulation
	sim, err := engine.NewSimulation(simConfig)
	if err != nil {
		logger.Error(ctx, "Failed to create simulation", err)
		os.Exit(1)
	}

	collector, err := telemetry.NewCollector(nil)
	if err != nil {
		logger.Error(ctx, "Failed to register metrics", err)
		os.Exit(1)
	}
	sim.Collector = collector

	sim.EventBus.Subscribe(event.WaypointReached, func(e event.Event) {
		if fe, ok := e.(*event.FlightEvent); ok {
			logger.Info(ctx, "Waypoint reached",
				"vehicle_id", fe.VehicleID,
				"waypoint", fe.Waypoint,
			)
		}
	})
	sim.EventBus.Subscribe(event.FlightCompleted, func(e event.Event) {
		if fe, ok := e.(*event.FlightEvent); ok {
			logger.Info(ctx, "Flight completed",
				"vehicle_id", fe.VehicleID,
			)
		}
	})

	// Setup health checks
	healthChecker := health.NewHealthChecker()
	healthChecker.AddCheck(health.NewSimulationHealthCheck(sim.Tick))
	healthChecker.AddCheck(health.NewMemoryHealthCheck(500, func() int64 {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		return int64(m.Alloc / 1024 / 1024)
	}))

	// Serve metrics and probes
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", collector.Handler())
	metricsMux.HandleFunc("/health", healthChecker.LivenessHandler)
	metricsMux.HandleFunc("/ready", healthChecker.ReadinessHandler)

	metricsServer := &http.Server{
		Addr:         envConfig.MetricsAddr,
		Handler:      metricsMux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info(ctx, "Starting metrics server",
			"addr", envConfig.MetricsAddr,
		)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error(ctx, "Metrics server failed", err)
		}
	}()

	// Run the simulation loop until interrupted
	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		logger.Info(ctx, "Starting simulation",
			"tick_rate", simConfig.TickRate,
			"vehicles", sim.Store.Len(),
		)
		if err := sim.Run(runCtx); err != nil && err != context.Canceled {
			logger.Error(ctx, "Simulation loop failed", err)
		}
	}()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	<-sigChan
	logger.Info(ctx, "Shutting down simulator")

	cancel()
	<-done

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), envConfig.ShutdownTimeout)
	defer shutdownCancel()

	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "Metrics server shutdown failed", err)
	}

	stats := sim.Stats()
	logger.Info(ctx, "Simulation stopped",
		"ticks", stats.Tick,
		"entities_updated", stats.EntitiesUpdated,
	)
}

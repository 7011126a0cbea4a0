package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/midwatch/naval-simulator/core"
	"github.com/midwatch/naval-simulator/internal/config"
	"github.com/midwatch/naval-simulator/internal/logging"
	"github.com/midwatch/naval-simulator/internal/observability"
	"github.com/midwatch/naval-simulator/registry"
	"github.com/midwatch/naval-simulator/scenario"
	"github.com/midwatch/naval-simulator/timectrl"
)

// demoScenario runs when no scenario file is configured: two hostile
// destroyer pairs converging off the prime meridian in the morning.
const demoScenario = `{
  "name": "Demo Engagement",
  "start_time": "1942-06-04T06:00:00Z",
  "units": [
    {"name": "Blue One", "hull": "DD", "faction": "BLUE", "x": 0, "y": 0, "destination": {"x": 0, "y": 1}, "speed": 25},
    {"name": "Blue Two", "hull": "DD", "faction": "BLUE", "x": 0.05, "y": 0, "destination": {"x": 0.05, "y": 1}, "speed": 25},
    {"name": "Red One", "hull": "DD", "faction": "RED", "x": 0, "y": 1, "destination": {"x": 0, "y": 0}, "speed": 25},
    {"name": "Red Two", "hull": "DD", "faction": "RED", "x": 0.05, "y": 1, "destination": {"x": 0.05, "y": 0}, "speed": 25}
  ]
}`

func main() {
	configPath := flag.String("config", "", "path to simulator config file")
	scenarioPath := flag.String("scenario", "", "path to scenario JSON (overrides config)")
	flag.Parse()

	if err := run(*configPath, *scenarioPath); err != nil {
		fmt.Fprintf(os.Stderr, "simulator: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, scenarioOverride string) error {
	ctx := context.Background()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if scenarioOverride != "" {
		cfg.ScenarioPath = scenarioOverride
	}

	log := logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer observability.ShutdownWithTimeout(ctx, shutdownTracing, log)

	metrics, err := observability.NewSimCollector(nil)
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		go func() {
			log.Info(ctx, "metrics endpoint listening", logging.String("addr", cfg.MetricsAddr))
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				log.Error(ctx, "metrics server exited", logging.Err(err))
			}
		}()
	}

	battle, err := loadScenario(cfg.ScenarioPath)
	if err != nil {
		return err
	}
	// Scenarios inherit the configured scale factor unless they set their own.
	if battle.ScaleFactor == 1 && cfg.ScaleFactor != 1 {
		battle.ScaleFactor = cfg.ScaleFactor
	}
	log.Info(ctx, "scenario loaded",
		logging.String("name", battle.Name),
		logging.String("start_time", battle.StartTime.String()),
		logging.Int("units", len(battle.Units)))

	scheduler := timectrl.NewScheduler(time.Duration(cfg.TickDelayMs)*time.Millisecond, log)
	clock := timectrl.NewTimeController(battle.StartTime, scheduler)
	if err := clock.SetRateSeconds(cfg.TimeRateSeconds); err != nil {
		return err
	}

	units := registry.NewRegistry(log)
	game := core.NewGame(clock, units,
		core.WithLogger(log),
		core.WithMetrics(metrics),
	)

	seed := cfg.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	built, err := battle.BuildUnits(game, rand.New(rand.NewSource(seed)), log)
	if err != nil {
		return err
	}
	for _, u := range built {
		if _, err := game.RegisterUnit(u); err != nil {
			return err
		}
	}

	if err := game.Start(); err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	statusTicker := time.NewTicker(10 * time.Second)
	defer statusTicker.Stop()

	for {
		select {
		case sig := <-sigCh:
			log.Info(ctx, "signal received, stopping game", logging.String("signal", sig.String()))
			game.Stop()
			return nil
		case <-statusTicker.C:
			status := game.Status()
			log.Info(ctx, "game status",
				logging.String("state", status.State),
				logging.String("game_time", status.CurrentTime),
				logging.String("time_rate", status.TimeRate))
			if status.State == "COMPLETED" {
				return nil
			}
		}
	}
}

func loadScenario(path string) (*scenario.Scenario, error) {
	if path == "" {
		return scenario.Load(strings.NewReader(demoScenario))
	}
	s, err := scenario.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return s, nil
}

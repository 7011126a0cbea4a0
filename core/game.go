package core

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/midwatch/naval-simulator/gametime"
	"github.com/midwatch/naval-simulator/internal/logging"
	"github.com/midwatch/naval-simulator/internal/observability"
	"github.com/midwatch/naval-simulator/registry"
	"github.com/midwatch/naval-simulator/timectrl"
	"github.com/midwatch/naval-simulator/unit"
)

// Game is the simulation orchestrator. It owns the state machine and wires
// the scheduler callback through the clock and the unit registry. A Game is
// constructed once per process (or per test); there is no shared global
// instance.
type Game struct {
	sm      *StateMachine
	clock   *timectrl.TimeController
	units   *registry.Registry
	log     logging.Logger
	metrics *observability.SimCollector
	tracer  trace.Tracer
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the game's logger.
func WithLogger(log logging.Logger) Option {
	return func(g *Game) { g.log = log }
}

// WithMetrics attaches a metrics collector.
func WithMetrics(m *observability.SimCollector) Option {
	return func(g *Game) { g.metrics = m }
}

// NewGame constructs a game around a clock and a unit registry.
func NewGame(clock *timectrl.TimeController, units *registry.Registry, opts ...Option) *Game {
	g := &Game{
		sm:     NewStateMachine(),
		clock:  clock,
		units:  units,
		log:    logging.Noop(),
		tracer: otel.Tracer("core"),
	}
	for _, opt := range opts {
		opt(g)
	}

	units.Subscribe(func(e registry.Event) {
		if e.Type == registry.EventUnitStateChanged && e.To == unit.Sinking {
			g.metrics.IncSinkings()
		}
	})
	g.metrics.SetTimeRate(clock.Rate().Seconds())
	return g
}

// Start transitions the game to RUNNING and launches the scheduler.
func (g *Game) Start() error {
	if err := g.sm.Start(); err != nil {
		return err
	}
	if err := g.clock.StartScheduler(g.tick); err != nil {
		g.sm.Complete()
		return err
	}
	g.log.Info(context.Background(), "game started",
		logging.String("game_time", g.clock.Now().String()),
		logging.Float("rate_seconds", g.clock.Rate().Seconds()),
		logging.Int("units", g.units.Len()))
	return nil
}

// Stop completes the game and joins the scheduler goroutine.
func (g *Game) Stop() {
	g.sm.Complete()
	g.clock.StopScheduler()
	g.log.Info(context.Background(), "game stopped",
		logging.String("game_time", g.clock.Now().String()))
}

// Pause suspends tick processing without stopping the scheduler. No-op
// unless the game is running.
func (g *Game) Pause() {
	g.sm.Pause()
}

// Unpause resumes tick processing.
func (g *Game) Unpause() error {
	return g.sm.Unpause()
}

// Status is the query surface exposed to the transport layer.
type Status struct {
	State       string `json:"state"`
	IsPaused    bool   `json:"is_paused"`
	CurrentTime string `json:"current_time"`
	TimeRate    string `json:"time_rate"`
}

// Status reports the game's current state, time, and rate.
func (g *Game) Status() Status {
	return Status{
		State:       g.sm.State().String(),
		IsPaused:    g.sm.IsPaused(),
		CurrentTime: g.clock.Now().String(),
		TimeRate:    g.clock.Rate().String(),
	}
}

// SetTimeRateSeconds sets the game seconds advanced per tick.
func (g *Game) SetTimeRateSeconds(seconds float64) error {
	if err := g.clock.SetRateSeconds(seconds); err != nil {
		return err
	}
	g.metrics.SetTimeRate(g.clock.Rate().Seconds())
	return nil
}

// SetTimeRateMinutes sets the game minutes advanced per tick.
func (g *Game) SetTimeRateMinutes(minutes float64) error {
	if err := g.clock.SetRateMinutes(minutes); err != nil {
		return err
	}
	g.metrics.SetTimeRate(g.clock.Rate().Seconds())
	return nil
}

// RegisterUnit adds an already-built unit to the game and returns its ID.
func (g *Game) RegisterUnit(u *unit.Unit) (uuid.UUID, error) {
	if err := g.units.Add(u); err != nil {
		return uuid.Nil, err
	}
	g.log.Info(context.Background(), "unit registered",
		logging.String("unit", u.Name()),
		logging.String("id", u.ID().String()),
		logging.String("faction", u.Faction()))
	return u.ID(), nil
}

// Unit returns the registered unit with the given ID, or nil.
func (g *Game) Unit(id uuid.UUID) *unit.Unit {
	return g.units.Get(id)
}

// Units returns all registered units in registration order.
func (g *Game) Units() []*unit.Unit {
	return g.units.List()
}

// AllUnits implements unit.TacticalPicture.
func (g *Game) AllUnits() []*unit.Unit {
	return g.units.List()
}

// CurrentTime implements unit.TacticalPicture.
func (g *Game) CurrentTime() gametime.Time {
	return g.clock.Now()
}

// tick is the scheduler callback: gate on the state machine, advance the
// clock, then fan out to every unit. Runs on the scheduler goroutine.
func (g *Game) tick() {
	if !g.sm.CanTick() {
		return
	}

	ctx, span := g.tracer.Start(context.Background(), "game.tick")
	defer span.End()
	start := time.Now()

	now, err := g.clock.Advance()
	if err != nil {
		if errors.Is(err, gametime.ErrTimeOutOfRange) {
			// Time has run out: the game is over. The scheduler joins on
			// Stop, so the stop must happen off the tick goroutine.
			g.log.Info(ctx, "game time window exhausted, completing game",
				logging.String("game_time", g.clock.Now().String()))
			g.sm.Complete()
			go g.clock.StopScheduler()
			return
		}
		g.log.Error(ctx, "clock advance failed", logging.Err(err))
		return
	}
	span.SetAttributes(attribute.String("game_time", now.String()))

	g.units.Tick(g.clock.Rate())

	g.metrics.ObserveTick(time.Since(start))
	g.updateUnitGauges()
}

func (g *Game) updateUnitGauges() {
	if g.metrics == nil {
		return
	}
	counts := make(map[unit.State]int)
	for _, u := range g.units.List() {
		counts[u.State()]++
	}
	for _, s := range []unit.State{unit.Operating, unit.Sinking, unit.Sunk} {
		g.metrics.SetUnitCount(s.String(), counts[s])
	}
}

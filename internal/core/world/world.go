// Package world owns the agent arena and drives ticks.
//
// Agents live in two parallel buffers indexed by AgentID. A tick captures a
// snapshot of the current buffer, updates every agent into the next buffer in
// parallel, then swaps the buffers. No agent can observe a neighbor's
// same-tick update.
package world

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zeusync/shoalsync/internal/core/models"
	"github.com/zeusync/shoalsync/internal/core/observability/log"
	"github.com/zeusync/shoalsync/internal/core/random"
	"github.com/zeusync/shoalsync/internal/core/systems"
	"github.com/zeusync/shoalsync/internal/core/systems/physics"
	"github.com/zeusync/shoalsync/pkg/concurrent"
	"github.com/zeusync/shoalsync/pkg/generic"
)

// Config holds the world-level settings.
type Config struct {
	Seed    uint64
	Dt      float64
	Area    models.Area
	Workers int
	Origin  physics.Vec2
}

// Stats summarizes the tick history of a world.
type Stats struct {
	RunID        string
	Agents       int
	Ticks        uint64
	LastDuration time.Duration
	TotalTime    time.Duration
	Systems      []systems.Metrics
}

// World is not safe for concurrent use: Tick, Add and Populate must not
// overlap. Readers of Frame after Tick returns see the committed state.
type World struct {
	cfg     Config
	runID   uuid.UUID
	manager *systems.Manager
	logger  log.Log

	current []models.AgentState
	next    []models.AgentState
	streams []*random.Sampler

	snapshots *generic.Pool[*models.Snapshot]

	tick     uint64
	lastTick time.Duration
	total    time.Duration
}

func New(cfg Config, manager *systems.Manager, logger log.Log) (*World, error) {
	if manager == nil {
		return nil, fmt.Errorf("%w: nil system manager", ErrInvalidConfig)
	}
	if cfg.Dt <= 0 {
		return nil, fmt.Errorf("%w: dt must be positive, got %v", ErrInvalidConfig, cfg.Dt)
	}
	if logger == nil {
		logger = log.NewNop()
	}

	pool := generic.NewPool(
		func() *models.Snapshot { return &models.Snapshot{} },
		(*models.Snapshot).Reset,
	)
	w := &World{
		cfg:       cfg,
		runID:     uuid.New(),
		manager:   manager,
		snapshots: pool,
	}
	w.logger = logger.With(log.String("run_id", w.runID.String()))
	return w, nil
}

// RunID identifies this world instance in logs and streamed frames.
func (w *World) RunID() string { return w.runID.String() }

func (w *World) Len() int          { return len(w.current) }
func (w *World) TickCount() uint64 { return w.tick }
func (w *World) Config() Config    { return w.cfg }

// Add appends an agent and gives it its own random stream.
func (w *World) Add(state models.AgentState) models.AgentID {
	id := models.AgentID(len(w.current))
	w.current = append(w.current, state)
	w.next = append(w.next, state)
	w.streams = append(w.streams, random.NewStreamSampler(w.cfg.Seed, uint64(id)))
	return id
}

// Populate adds n agents spread uniformly over the area with a random
// heading, a speed in [10, 100) and the default stress. Placement draws come
// from a stream separate from every agent's stream.
func (w *World) Populate(n int, stress float64) {
	s := random.NewStreamSampler(w.cfg.Seed, populateStream)
	for i := 0; i < n; i++ {
		speed := s.Range(10, 100)
		vel := s.Angle().Vector().Scale(speed)
		w.Add(models.AgentState{
			Position:       physics.V(s.Range(0, w.cfg.Area.Width), s.Range(0, w.cfg.Area.Height)),
			Velocity:       vel,
			Speed:          speed,
			Stress:         stress,
			TargetVelocity: vel,
			TargetSpeed:    speed,
		})
	}
	w.logger.Info("world populated", log.Int("agents", n), log.Int("total", len(w.current)))
}

// populateStream keys the placement stream away from agent ids.
const populateStream = 1<<64 - 1

// Agent returns the committed state of id.
func (w *World) Agent(id models.AgentID) (models.AgentState, error) {
	if int(id) >= len(w.current) {
		return models.AgentState{}, fmt.Errorf("%w: %d", ErrUnknownAgent, id)
	}
	return w.current[id], nil
}

// Agents returns a copy of every committed agent state.
func (w *World) Agents() []models.AgentState {
	out := make([]models.AgentState, len(w.current))
	copy(out, w.current)
	return out
}

// Tick advances the world by one step.
// On error the current state is left untouched.
func (w *World) Tick(ctx context.Context) error {
	if len(w.current) == 0 {
		return ErrNoAgents
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	snapshot := w.snapshots.Get()
	snapshot.Fill(w.current)
	defer w.snapshots.Put(snapshot)
	tick := w.tick + 1
	pipe := w.manager.Snapshot()

	err := concurrent.ParallelRange(ctx, len(w.current), w.cfg.Workers, func(_ context.Context, span concurrent.Span) error {
		for i := span.Lo; i < span.Hi; i++ {
			w.next[i] = w.current[i]
			sc := systems.Context{
				Tick:     tick,
				Dt:       w.cfg.Dt,
				Area:     w.cfg.Area,
				Snapshot: snapshot,
				Rand:     w.streams[i],
			}
			pipe.Apply(&sc, models.AgentID(i), &w.next[i])
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("tick %d: %w", tick, err)
	}

	w.current, w.next = w.next, w.current
	w.tick = tick
	w.lastTick = time.Since(start)
	w.total += w.lastTick

	w.logger.Debug("tick committed",
		log.Uint64("tick", tick),
		log.Duration("took", w.lastTick),
	)
	return nil
}

// Run ticks n times or until ctx is done.
func (w *World) Run(ctx context.Context, n uint64) error {
	for i := uint64(0); i < n; i++ {
		if err := w.Tick(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Frame exports the committed state for rendering.
func (w *World) Frame() models.Frame {
	f := models.Frame{
		Tick:       w.tick,
		Origin:     w.cfg.Origin,
		Positions:  make([]physics.Vec2, len(w.current)),
		Velocities: make([]physics.Vec2, len(w.current)),
		Speeds:     make([]float64, len(w.current)),
	}
	for i, a := range w.current {
		f.Positions[i] = a.Position
		f.Velocities[i] = a.Velocity
		f.Speeds[i] = a.Speed
	}
	return f
}

func (w *World) Stats() Stats {
	return Stats{
		RunID:        w.RunID(),
		Agents:       len(w.current),
		Ticks:        w.tick,
		LastDuration: w.lastTick,
		TotalTime:    w.total,
		Systems:      w.manager.AllMetrics(),
	}
}

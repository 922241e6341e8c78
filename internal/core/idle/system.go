package idle

import (
	"sync/atomic"

	"github.com/zeusync/shoalsync/internal/core/models"
	"github.com/zeusync/shoalsync/internal/core/systems"
)

// SystemName is the registry name of the idle drift system.
const SystemName = "idle"

var _ systems.System = (*System)(nil)

// System applies Drift to every agent and counts fired nudges.
type System struct {
	chances   Chances
	direction atomic.Uint64
	speed     atomic.Uint64
	stress    atomic.Uint64
}

func NewSystem(c Chances) *System {
	return &System{chances: c}
}

func (*System) Name() string               { return SystemName }
func (*System) Priority() systems.Priority { return systems.PriorityNormal }

func (s *System) Chances() Chances { return s.chances }

func (s *System) Update(ctx *systems.Context, _ models.AgentID, agent *models.AgentState) {
	out := Drift(agent, s.chances, ctx.Rand)
	if out.Direction {
		s.direction.Add(1)
	}
	if out.Speed {
		s.speed.Add(1)
	}
	if out.Stress {
		s.stress.Add(1)
	}
}

// Counts returns how many direction, speed and stress nudges fired.
func (s *System) Counts() (direction, speed, stress uint64) {
	return s.direction.Load(), s.speed.Load(), s.stress.Load()
}

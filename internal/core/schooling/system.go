package schooling

import (
	"sync/atomic"

	"github.com/zeusync/shoalsync/internal/core/models"
	"github.com/zeusync/shoalsync/internal/core/systems"
)

// SystemName is the registry name of the schooling system.
const SystemName = "schooling"

var _ systems.System = (*System)(nil)

// System runs Step for every agent and writes velocity and speed into the
// agent's next state. It counts how often each behavior was chosen.
type System struct {
	params Parameters
	counts [behaviorCount]atomic.Uint64
}

func NewSystem(params Parameters) *System {
	return &System{params: params}
}

func (*System) Name() string               { return SystemName }
func (*System) Priority() systems.Priority { return systems.PriorityHigh }

// Parameters returns the parameters the system was built with.
func (s *System) Parameters() Parameters { return s.params }

func (s *System) Update(ctx *systems.Context, id models.AgentID, agent *models.AgentState) {
	res := Step(id, *agent, ctx.Snapshot, s.params, ctx.Rand)
	agent.Velocity = res.Velocity
	agent.Speed = res.Speed
	s.counts[res.Behavior].Add(1)
}

// Counts returns how many updates ended in each behavior since creation.
func (s *System) Counts() map[Behavior]uint64 {
	out := make(map[Behavior]uint64, behaviorCount)
	for b := range s.counts {
		out[Behavior(b)] = s.counts[b].Load()
	}
	return out
}

package systems

import (
	"github.com/zeusync/shoalsync/internal/core/models"
	"github.com/zeusync/shoalsync/internal/core/random"
)

// System is a per-agent processor run once per agent per tick.
// Update must only write to agent, which is that agent's next-state slot, and
// must treat the Context as read-only.
type System interface {
	Name() string
	Priority() Priority
	Update(ctx *Context, id models.AgentID, agent *models.AgentState)
}

// Context is everything a system may read while updating one agent.
type Context struct {
	Tick     uint64
	Dt       float64
	Area     models.Area
	Snapshot *models.Snapshot
	// Rand is the agent's own stream.
	Rand *random.Sampler
}

// Priority defines execution order; higher runs first.
type Priority uint16

// System priorities
const (
	PriorityLowest  Priority = 200
	PriorityLow     Priority = 500
	PriorityNormal  Priority = 600
	PriorityHigh    Priority = 1000
	PriorityHighest Priority = 1300
)

// StateIdentity represents the current state of a registered system.
type StateIdentity uint8

const (
	StateEnabled StateIdentity = iota
	StateDisabled
)

func (s StateIdentity) String() string {
	if s == StateEnabled {
		return "enabled"
	}
	return "disabled"
}

// Metrics provides runtime counters for a system.
type Metrics struct {
	Name              string
	Priority          Priority
	State             StateIdentity
	EntitiesProcessed uint64
}

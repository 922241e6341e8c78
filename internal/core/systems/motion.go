package systems

import "github.com/zeusync/shoalsync/internal/core/models"

// Motion advances positions by the velocity already written this tick and
// wraps them into the area.
type Motion struct{}

func NewMotion() *Motion { return &Motion{} }

func (*Motion) Name() string       { return "motion" }
func (*Motion) Priority() Priority { return PriorityLow }

func (*Motion) Update(ctx *Context, _ models.AgentID, agent *models.AgentState) {
	agent.Position = ctx.Area.Wrap(agent.Position.Add(agent.Velocity.Scale(ctx.Dt)))
}

package models

import "github.com/zeusync/shoalsync/internal/core/systems/physics"

// AgentID is the stable index of an agent inside a world.
type AgentID uint32

// AgentState holds every per-agent component the systems read or write.
// Velocity and Speed are the schooling output; TargetVelocity, TargetSpeed and
// Stress are owned by idle drift.
type AgentState struct {
	Position       physics.Vec2 `json:"position"`
	Velocity       physics.Vec2 `json:"velocity"`
	Speed          float64      `json:"speed"`
	Stress         float64      `json:"stress"`
	TargetVelocity physics.Vec2 `json:"target_velocity"`
	TargetSpeed    float64      `json:"target_speed"`
}

// Heading is the direction of travel derived from the velocity.
func (a AgentState) Heading() physics.Angle {
	return physics.AngleOf(a.Velocity)
}

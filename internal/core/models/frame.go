package models

import "github.com/zeusync/shoalsync/internal/core/systems/physics"

// Frame is what the simulation hands to a renderer after a tick:
// parallel arrays indexed identically, plus the screen origin offset.
type Frame struct {
	Tick       uint64         `json:"tick"`
	Origin     physics.Vec2   `json:"origin"`
	Positions  []physics.Vec2 `json:"positions"`
	Velocities []physics.Vec2 `json:"velocities"`
	Speeds     []float64      `json:"speeds"`
}

// Len returns the number of agents in the frame.
func (f Frame) Len() int { return len(f.Positions) }

package models

import (
	"math"

	"github.com/zeusync/shoalsync/internal/core/systems/physics"
)

// Area is the rectangular domain agents swim in. Both edges are periodic.
// A zero-sized axis is unbounded.
type Area struct {
	Width  float64 `json:"width" yaml:"width" toml:"width"`
	Height float64 `json:"height" yaml:"height" toml:"height"`
}

func NewArea(width, height float64) Area {
	return Area{Width: width, Height: height}
}

// Center returns the middle of the area.
func (a Area) Center() physics.Vec2 {
	return physics.Vec2{X: a.Width / 2, Y: a.Height / 2}
}

// Wrap folds p back into [0, Width) x [0, Height).
func (a Area) Wrap(p physics.Vec2) physics.Vec2 {
	return physics.Vec2{X: wrapAxis(p.X, a.Width), Y: wrapAxis(p.Y, a.Height)}
}

func wrapAxis(x, size float64) float64 {
	if size <= 0 {
		return x
	}
	x = math.Mod(x, size)
	if x < 0 {
		x += size
	}
	if x >= size {
		x = 0
	}
	return x
}

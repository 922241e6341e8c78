// Package render turns frames into draw lists. It owns the shape and color
// rules a viewer needs to draw agents the same way everywhere.
package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/zeusync/shoalsync/internal/core/models"
	"github.com/zeusync/shoalsync/internal/core/systems/physics"
)

const (
	// MovingThreshold is the speed above which an agent is drawn as a triangle.
	MovingThreshold = 0.1

	// Size is the visual size constant the triangle is derived from.
	Size        = 3.0
	NoseLength  = 2 * Size
	TailLength  = Size
	HalfWidth   = Size
	DotRadius   = 2.0
	MaxSpeedRGB = 100.0
)

type Shape uint8

const (
	ShapeDot Shape = iota
	ShapeTriangle
)

func (s Shape) String() string {
	if s == ShapeTriangle {
		return "triangle"
	}
	return "dot"
}

func (s Shape) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Shape) UnmarshalText(b []byte) error {
	switch string(b) {
	case "triangle":
		*s = ShapeTriangle
	case "dot":
		*s = ShapeDot
	default:
		return fmt.Errorf("unknown shape %q", b)
	}
	return nil
}

// Glyph is one agent's shape in screen space.
// Points holds nose, left and right corners for a triangle and is empty for a dot.
type Glyph struct {
	Shape  Shape          `json:"shape"`
	Center physics.Vec2   `json:"center"`
	Points []physics.Vec2 `json:"points,omitempty"`
	Radius float64        `json:"radius,omitempty"`
	Color  color.RGBA     `json:"color"`
}

// Agent builds the glyph of one agent at pos moving with vel.
func Agent(pos, vel physics.Vec2, speed float64) Glyph {
	g := Glyph{Center: pos, Color: SpeedColor(speed)}
	dir := vel.Unit()
	if speed <= MovingThreshold || dir.IsZero() {
		g.Shape = ShapeDot
		g.Radius = DotRadius
		return g
	}

	nose := pos.Add(dir.Scale(NoseLength))
	base := pos.Sub(dir.Scale(TailLength))
	side := dir.Perp().Scale(HalfWidth)

	g.Shape = ShapeTriangle
	g.Points = []physics.Vec2{nose, base.Add(side), base.Sub(side)}
	return g
}

// Glyphs builds the draw list of a frame, shifted by its origin.
func Glyphs(f models.Frame) []Glyph {
	out := make([]Glyph, f.Len())
	for i := range out {
		out[i] = Agent(f.Positions[i].Add(f.Origin), f.Velocities[i], f.Speeds[i])
	}
	return out
}

// SpeedColor maps speed to a color running from blue at rest to red at
// MaxSpeedRGB and above.
func SpeedColor(speed float64) color.RGBA {
	t := speed / MaxSpeedRGB
	switch {
	case t < 0 || math.IsNaN(t):
		t = 0
	case t > 1:
		t = 1
	}
	return color.RGBA{
		R: uint8(255 * t),
		G: uint8(64 * (1 - t)),
		B: uint8(255 * (1 - t)),
		A: 255,
	}
}

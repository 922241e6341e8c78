// Package schooling implements the per-agent schooling update: every tick an
// agent picks one visible neighbor with a rank-weighted draw and steers away
// from it, aligns with it or moves toward it depending on distance.
package schooling

import "github.com/zeusync/shoalsync/internal/core/systems/physics"

// Parameters drive one schooling update. They are immutable for a tick.
// Nothing here is validated; see config.Validate.
type Parameters struct {
	// AvoidanceRadius: a chosen neighbor closer than this is steered away from.
	AvoidanceRadius physics.Radius

	// AlignmentRadius: a chosen neighbor closer than this is aligned with.
	AlignmentRadius physics.Radius

	// AttractionRadius bounds the near pass of neighbor selection.
	AttractionRadius physics.Radius

	// VisualField is the full width of the field of view around the heading.
	VisualField physics.Angle

	// ReferenceFactor is the per-rank weight decay, in (0, 1].
	ReferenceFactor float64

	// GammaK and GammaA are the shape and rate of the speed distribution.
	GammaK float64
	GammaA float64

	// AvoidanceAttractionStd is the heading noise for avoidance and attraction.
	AvoidanceAttractionStd physics.Angle

	// AlignmentStd is the heading noise for alignment.
	AlignmentStd physics.Angle
}

// SpeedScale multiplies every gamma speed sample.
const SpeedScale = 10.0

// DefaultParameters returns the reference configuration.
func DefaultParameters() Parameters {
	std := physics.Degrees(15)
	return Parameters{
		AvoidanceRadius:        50,
		AlignmentRadius:        30,
		AttractionRadius:       15,
		VisualField:            physics.Degrees(150),
		ReferenceFactor:        0.5,
		GammaK:                 4.0,
		GammaA:                 3.3,
		AvoidanceAttractionStd: std,
		AlignmentStd:           std,
	}
}

// HalfField is the largest visible |offset| from the heading (exclusive).
func (p Parameters) HalfField() physics.Angle {
	return p.VisualField / 2
}

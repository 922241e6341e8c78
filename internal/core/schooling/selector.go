package schooling

import (
	"slices"

	"github.com/zeusync/shoalsync/internal/core/models"
	"github.com/zeusync/shoalsync/internal/core/random"
	"github.com/zeusync/shoalsync/internal/core/systems/physics"
)

// coincident is the distance at or below which a neighbor is ignored.
const coincident = 1e-4

// Candidate is a visible neighbor as seen from the acting agent.
type Candidate struct {
	ID       models.AgentID
	Distance float64
	// Offset is the signed bearing of the neighbor relative to the heading.
	Offset   physics.Angle
	Position physics.Vec2
	Velocity physics.Vec2
}

// Observer is the acting agent's point of view.
type Observer struct {
	ID       models.AgentID
	Position physics.Vec2
	Heading  physics.Angle
}

// Visible collects the neighbors whose bearing from o's heading is below
// half, in snapshot order. The observer itself and coincident neighbors are
// skipped.
func Visible(o Observer, snapshot *models.Snapshot, half physics.Angle) []Candidate {
	out := make([]Candidate, 0, snapshot.Len())
	for i := 0; i < snapshot.Len(); i++ {
		id := models.AgentID(i)
		if id == o.ID {
			continue
		}
		n := snapshot.At(id)
		to := n.Position.Sub(o.Position)
		dist := to.Length()
		if dist <= coincident {
			continue
		}
		offset := physics.Diff(o.Heading, physics.AngleOf(to))
		if offset.Abs() >= half {
			continue
		}
		out = append(out, Candidate{
			ID:       id,
			Distance: dist,
			Offset:   offset,
			Position: n.Position,
			Velocity: n.Velocity,
		})
	}
	return out
}

// SelectNeighbor picks the neighbor o reacts to this tick.
//
// Visible neighbors within the attraction radius are ranked by how central
// they are in view. If there are none, every visible neighbor is ranked by
// distance instead. One candidate is then drawn with PickRanked. The second
// result is false when nothing is visible.
func SelectNeighbor(o Observer, snapshot *models.Snapshot, p Parameters, s *random.Sampler) (Candidate, bool) {
	visible := Visible(o, snapshot, p.HalfField())
	if len(visible) == 0 {
		return Candidate{}, false
	}

	near := make([]Candidate, 0, len(visible))
	for _, c := range visible {
		if p.AttractionRadius.Contains(c.Distance) {
			near = append(near, c)
		}
	}

	ranked := near
	if len(near) > 0 {
		slices.SortStableFunc(ranked, byCentrality)
	} else {
		ranked = visible
		slices.SortStableFunc(ranked, byDistance)
	}

	return ranked[PickRanked(len(ranked), p.ReferenceFactor, s)], true
}

// PickRanked draws an index in [0, n) where rank i has weight rf^i.
// n must be positive. A draw landing on the upper boundary returns n-1.
func PickRanked(n int, rf float64, s *random.Sampler) int {
	cumulative := make([]float64, n)
	var sum float64
	w := 1.0
	for i := range cumulative {
		sum += w
		cumulative[i] = sum
		w *= rf
	}

	r := s.Range(0, sum)
	for i, c := range cumulative {
		if r < c {
			return i
		}
	}
	return n - 1
}

func byCentrality(a, b Candidate) int {
	return compareFloat(float64(a.Offset.Abs()), float64(b.Offset.Abs()))
}

func byDistance(a, b Candidate) int {
	return compareFloat(a.Distance, b.Distance)
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

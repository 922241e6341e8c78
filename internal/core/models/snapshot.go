package models

import "github.com/zeusync/shoalsync/internal/core/systems/physics"

// Snapshot is the read-only view of every agent captured at the start of a
// tick. Slices are parallel and indexed by AgentID. Nothing writes to a
// snapshot after Capture returns.
type Snapshot struct {
	Positions  []physics.Vec2
	Velocities []physics.Vec2
	Speeds     []float64
}

// Neighbor is one entry of a snapshot.
type Neighbor struct {
	ID       AgentID
	Position physics.Vec2
	Velocity physics.Vec2
	Speed    float64
}

// Capture copies position, velocity and speed out of agents.
func Capture(agents []AgentState) *Snapshot {
	s := &Snapshot{}
	s.Fill(agents)
	return s
}

// Fill overwrites s with agents, reusing its backing arrays when they are
// large enough.
func (s *Snapshot) Fill(agents []AgentState) {
	n := len(agents)
	s.Positions = resize(s.Positions, n)
	s.Velocities = resize(s.Velocities, n)
	s.Speeds = resize(s.Speeds, n)
	for i := range agents {
		s.Positions[i] = agents[i].Position
		s.Velocities[i] = agents[i].Velocity
		s.Speeds[i] = agents[i].Speed
	}
}

// Reset empties s and keeps its capacity.
func (s *Snapshot) Reset() {
	s.Positions = s.Positions[:0]
	s.Velocities = s.Velocities[:0]
	s.Speeds = s.Speeds[:0]
}

func resize[T any](xs []T, n int) []T {
	if cap(xs) < n {
		return make([]T, n)
	}
	return xs[:n]
}

// Len returns the number of agents in the snapshot. A nil snapshot is empty.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Positions)
}

// At returns the captured state of id.
func (s *Snapshot) At(id AgentID) Neighbor {
	return Neighbor{
		ID:       id,
		Position: s.Positions[id],
		Velocity: s.Velocities[id],
		Speed:    s.Speeds[id],
	}
}

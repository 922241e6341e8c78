package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zeusync/shoalsync/internal/core/systems/physics"
)

func TestCapture_CopiesState(t *testing.T) {
	agents := []AgentState{
		{Position: physics.V(1, 2), Velocity: physics.V(3, 4), Speed: 5},
		{Position: physics.V(6, 7), Velocity: physics.V(8, 9), Speed: 10},
	}
	s := Capture(agents)
	assert.Equal(t, 2, s.Len())

	agents[0].Position = physics.V(100, 100)
	n := s.At(0)
	assert.Equal(t, physics.V(1, 2), n.Position)
	assert.Equal(t, AgentID(0), n.ID)
	assert.Equal(t, 10.0, s.At(1).Speed)

	var empty *Snapshot
	assert.Equal(t, 0, empty.Len())
}

func TestArea_Wrap(t *testing.T) {
	a := NewArea(100, 50)
	assert.Equal(t, physics.V(10, 20), a.Wrap(physics.V(110, -30)))
	assert.Equal(t, physics.V(0, 0), a.Wrap(physics.V(100, 50)))
	assert.Equal(t, physics.V(50, 25), a.Center())

	unbounded := Area{}
	assert.Equal(t, physics.V(-5, 500), unbounded.Wrap(physics.V(-5, 500)))
}

func TestAgentState_Heading(t *testing.T) {
	a := AgentState{Velocity: physics.V(0, 2)}
	assert.InDelta(t, physics.HalfPi, float64(a.Heading()), 1e-12)
}

func TestSnapshot_FillReusesCapacity(t *testing.T) {
	s := Capture([]AgentState{{Speed: 1}, {Speed: 2}, {Speed: 3}})
	backing := &s.Speeds[0]

	s.Reset()
	assert.Equal(t, 0, s.Len())

	s.Fill([]AgentState{{Speed: 7}, {Speed: 8}})
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []float64{7, 8}, s.Speeds)
	assert.Same(t, backing, &s.Speeds[0])

	s.Fill(make([]AgentState, 10))
	assert.Equal(t, 10, s.Len())
}

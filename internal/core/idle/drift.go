// Package idle perturbs each agent's target velocity, target speed and
// stress with independent random nudges. It never looks at other agents.
package idle

import (
	"github.com/zeusync/shoalsync/internal/core/models"
	"github.com/zeusync/shoalsync/internal/core/random"
	"github.com/zeusync/shoalsync/internal/core/systems/physics"
)

// Target speed range for a speed nudge.
const (
	MinTargetSpeed = 10.0
	MaxTargetSpeed = 100.0
)

// Chances are per-tick trigger probabilities.
type Chances struct {
	Direction float64
	Speed     float64
	Stress    float64
}

func DefaultChances() Chances {
	return Chances{
		Direction: 0.10,
		Speed:     0.05,
		Stress:    0.001,
	}
}

// Outcome reports which nudges fired.
type Outcome struct {
	Direction bool
	Speed     bool
	Stress    bool
}

// Drift runs the three trials for one agent, in the order direction, speed,
// stress. A fired trial samples its target first and then a blend factor in
// [0, 1), and moves the current value toward the target by that factor.
func Drift(agent *models.AgentState, c Chances, s *random.Sampler) Outcome {
	var out Outcome

	if s.Bernoulli(c.Direction) {
		to := s.Angle()
		agent.TargetVelocity = turnToward(agent.TargetVelocity, to, s.Uniform())
		out.Direction = true
	}

	if s.Bernoulli(c.Speed) {
		to := s.Range(MinTargetSpeed, MaxTargetSpeed)
		agent.TargetSpeed = lerp(agent.TargetSpeed, to, s.Uniform())
		out.Speed = true
	}

	if s.Bernoulli(c.Stress) {
		to := RandomStress(s)
		agent.Stress = float64(Stress(agent.Stress).Lerp(to, s.Uniform()))
		out.Stress = true
	}

	return out
}

// turnToward rotates v along the shorter arc toward heading to, keeping its
// length. A zero vector is treated as a unit vector heading east.
func turnToward(v physics.Vec2, to physics.Angle, t float64) physics.Vec2 {
	length := v.Length()
	if length == 0 {
		length = 1
	}
	from := physics.AngleOf(v)
	return physics.Lerp(from, to, t).Vector().Scale(length)
}

func lerp(from, to, t float64) float64 {
	return from + (to-from)*t
}

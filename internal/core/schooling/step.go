package schooling

import (
	"github.com/zeusync/shoalsync/internal/core/models"
	"github.com/zeusync/shoalsync/internal/core/random"
	"github.com/zeusync/shoalsync/internal/core/systems/physics"
)

// Behavior is the response an agent chose during one update.
type Behavior uint8

const (
	// BehaviorWander means no neighbor was visible.
	BehaviorWander Behavior = iota
	BehaviorAvoidance
	BehaviorAlignment
	BehaviorAttraction
)

// behaviorCount is the number of Behavior values.
const behaviorCount = 4

func (b Behavior) String() string {
	switch b {
	case BehaviorWander:
		return "wander"
	case BehaviorAvoidance:
		return "avoidance"
	case BehaviorAlignment:
		return "alignment"
	case BehaviorAttraction:
		return "attraction"
	default:
		return "unknown"
	}
}

// Result is the outcome of Step for one agent.
type Result struct {
	Heading  physics.Angle
	Speed    float64
	Velocity physics.Vec2
	Behavior Behavior
	// Neighbor is valid unless Behavior is BehaviorWander.
	Neighbor Candidate
}

// Step computes the next heading and speed of agent id.
//
// Speed is resampled every call from Gamma(GammaK, 1/GammaA) scaled by
// SpeedScale, independent of any neighbor. The heading is drawn around a mean
// that depends on the selected neighbor's distance, checked in order:
// avoidance, alignment, attraction. Without a visible neighbor the heading is
// uniform in [0, 2π). The snapshot is only read.
func Step(id models.AgentID, agent models.AgentState, snapshot *models.Snapshot, p Parameters, s *random.Sampler) Result {
	speed := s.Gamma(p.GammaK, 1/p.GammaA) * SpeedScale

	o := Observer{ID: id, Position: agent.Position, Heading: agent.Heading()}
	res := Result{Speed: speed, Behavior: BehaviorWander}

	c, ok := SelectNeighbor(o, snapshot, p, s)
	if !ok {
		res.Heading = s.Angle()
	} else {
		res.Neighbor = c
		res.Behavior, res.Heading = steer(o, c, p, s)
	}

	res.Velocity = res.Heading.Vector().Scale(speed)
	return res
}

func steer(o Observer, c Candidate, p Parameters, s *random.Sampler) (Behavior, physics.Angle) {
	bearing := physics.AngleOf(c.Position.Sub(o.Position))

	switch {
	case p.AvoidanceRadius.Contains(c.Distance):
		return BehaviorAvoidance, s.NormalAngle(avoidanceMean(bearing, c.Offset), p.AvoidanceAttractionStd)
	case p.AlignmentRadius.Contains(c.Distance):
		return BehaviorAlignment, s.NormalAngle(physics.AngleOf(c.Velocity), p.AlignmentStd)
	default:
		return BehaviorAttraction, s.NormalAngle(bearing, p.AvoidanceAttractionStd)
	}
}

// avoidanceMean returns whichever perpendicular to bearing is closer to the
// current heading. offset is the neighbor's bearing relative to the heading.
// A neighbor dead ahead or dead astern is a tie, resolved to bearing - π/2.
func avoidanceMean(bearing, offset physics.Angle) physics.Angle {
	if offset < 0 {
		return bearing + physics.HalfPi
	}
	return bearing - physics.HalfPi
}

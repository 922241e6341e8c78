package random

import (
	"math"

	"github.com/zeusync/shoalsync/internal/core/systems/physics"
)

// minUniform keeps the Box-Muller logarithm finite.
const minUniform = 1e-10

// Sampler draws from common distributions on top of a Source.
// A Sampler is not safe for concurrent use; give each worker or agent its own.
type Sampler struct {
	src Source
}

func NewSampler(src Source) *Sampler {
	return &Sampler{src: src}
}

// NewStreamSampler is shorthand for NewSampler(NewStream(seed, stream)).
func NewStreamSampler(seed, stream uint64) *Sampler {
	return NewSampler(NewStream(seed, stream))
}

// Uniform returns a value in [0, 1).
func (s *Sampler) Uniform() float64 {
	return s.src.Float64()
}

// Range returns a value in [lo, hi).
func (s *Sampler) Range(lo, hi float64) float64 {
	return lo + (hi-lo)*s.src.Float64()
}

// Bernoulli reports true with probability p.
func (s *Sampler) Bernoulli(p float64) bool {
	return s.src.Float64() < p
}

// Angle returns a heading uniform in [0, 2π).
func (s *Sampler) Angle() physics.Angle {
	return physics.Angle(s.Range(0, physics.Tau))
}

// NormalStandard draws N(0, 1) with the cosine branch of Box-Muller.
// It always consumes exactly two uniforms, u1 then u2.
func (s *Sampler) NormalStandard() float64 {
	u1 := s.src.Float64()
	u2 := s.src.Float64()
	if u1 < minUniform {
		u1 = minUniform
	}
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(physics.Tau*u2)
}

// Normal draws N(mean, std²).
func (s *Sampler) Normal(mean, std float64) float64 {
	return mean + std*s.NormalStandard()
}

// NormalAngle draws a heading around mean with angular deviation std.
func (s *Sampler) NormalAngle(mean, std physics.Angle) physics.Angle {
	return physics.Angle(s.Normal(float64(mean), float64(std)))
}

// Gamma draws from Gamma(k, theta) (shape k, scale theta) using the
// Marsaglia-Tsang rejection method. Shapes below one are boosted to k+1 and
// scaled back by u^(1/k). The loop has no cap: acceptance is almost sure.
func (s *Sampler) Gamma(k, theta float64) float64 {
	if k < 1 {
		g := s.Gamma(k+1, theta)
		return g * math.Pow(s.src.Float64(), 1/k)
	}

	d := k - 1.0/3.0
	c := 1 / math.Sqrt(9*d)

	for {
		x := s.NormalStandard()
		t := 1 + c*x
		if t <= 0 {
			continue
		}

		v := t * t * t
		u := s.src.Float64()

		x2 := x * x
		if u < 1-0.0331*x2*x2 {
			return d * v * theta
		}
		if math.Log(u) < 0.5*x2+d*(1-v+math.Log(v)) {
			return d * v * theta
		}
	}
}

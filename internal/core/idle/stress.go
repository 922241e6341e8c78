package idle

import "github.com/zeusync/shoalsync/internal/core/random"

// Stress is an agent's stress factor. It only ever changes by interpolation.
type Stress float64

// Reference stress band.
const (
	DefaultStress Stress = 0.1
	StressMin     Stress = 0.1
	StressMax     Stress = 0.5
)

// RandomStress draws a stress target in [StressMin, StressMax).
func RandomStress(s *random.Sampler) Stress {
	return Stress(s.Range(float64(StressMin), float64(StressMax)))
}

// Lerp moves s toward to by factor t.
func (s Stress) Lerp(to Stress, t float64) Stress {
	return s + (to-s)*Stress(t)
}

package physics

// Radius is a non-negative interaction distance.
type Radius float64

func (r Radius) Value() float64 { return float64(r) }

// Contains reports whether distance d lies strictly inside the radius.
func (r Radius) Contains(d float64) bool { return d < float64(r) }

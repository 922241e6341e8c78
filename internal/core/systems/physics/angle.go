package physics

import "math"

const (
	// Tau is a full turn in radians.
	Tau = 2 * math.Pi
	// HalfPi is a quarter turn in radians.
	HalfPi = math.Pi / 2
)

// Angle is a heading in radians.
// Add, Sub and Scale are raw and may leave the canonical range (-π, π];
// callers normalize when the result has to be canonical.
type Angle float64

// Radians returns the angle as a plain float64.
func (a Angle) Radians() float64 { return float64(a) }

// Degrees builds an angle from degrees.
func Degrees(d float64) Angle { return Angle(d * math.Pi / 180) }

// ToDegrees returns the angle in degrees.
func (a Angle) ToDegrees() float64 { return float64(a) * 180 / math.Pi }

func (a Angle) Add(b Angle) Angle     { return a + b }
func (a Angle) Sub(b Angle) Angle     { return a - b }
func (a Angle) Scale(f float64) Angle { return Angle(float64(a) * f) }
func (a Angle) Abs() Angle            { return Angle(math.Abs(float64(a))) }
func (a Angle) Sin() float64          { return math.Sin(float64(a)) }
func (a Angle) Cos() float64          { return math.Cos(float64(a)) }
func (a Angle) IsFinite() bool        { return !math.IsNaN(float64(a)) && !math.IsInf(float64(a), 0) }

// Normalize maps a into (-π, π].
func (a Angle) Normalize() Angle { return Angle(wrap(float64(a))) }

// Vector returns the unit vector pointing along a.
func (a Angle) Vector() Vec2 {
	sin, cos := math.Sincos(float64(a))
	return Vec2{X: cos, Y: sin}
}

// AngleOf returns the heading of v via atan2.
func AngleOf(v Vec2) Angle { return Angle(math.Atan2(v.Y, v.X)) }

// Diff returns the signed shortest rotation from -> to, in (-π, π].
func Diff(from, to Angle) Angle { return Angle(wrap(float64(to - from))) }

// Lerp interpolates from -> to along the shorter arc. t is clamped to [0, 1].
// The result is not normalized.
func Lerp(from, to Angle, t float64) Angle {
	return from + Diff(from, to).Scale(clamp01(t))
}

// wrap computes ((x + π) mod 2π) − π with a floored modulo and folds −π onto π.
func wrap(x float64) float64 {
	r := math.Mod(x+math.Pi, Tau)
	if r < 0 {
		r += Tau
	}
	r -= math.Pi
	if r <= -math.Pi {
		r = math.Pi
	}
	return r
}

package physics

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAngle_NormalizeRange(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 100_000; i++ {
		a := Angle((r.Float64() - 0.5) * 200)
		n := a.Normalize()
		assert.Greater(t, float64(n), -math.Pi)
		assert.LessOrEqual(t, float64(n), math.Pi)
		// same direction after wrapping
		assert.InDelta(t, a.Cos(), n.Cos(), 1e-9)
		assert.InDelta(t, a.Sin(), n.Sin(), 1e-9)
	}
}

func TestAngle_NormalizeEdges(t *testing.T) {
	tests := []struct {
		name string
		in   Angle
		want Angle
	}{
		{name: "zero", in: 0, want: 0},
		{name: "pi stays", in: math.Pi, want: math.Pi},
		{name: "minus pi folds", in: -math.Pi, want: math.Pi},
		{name: "full turn", in: Tau, want: 0},
		{name: "negative beyond", in: -3 * HalfPi, want: HalfPi},
		{name: "several turns", in: 5*Tau + 0.25, want: 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, float64(tt.want), float64(tt.in.Normalize()), 1e-9)
		})
	}
}

func TestLerp_ShortestPathThroughZero(t *testing.T) {
	got := Lerp(0.1, Tau-0.1, 0.5)
	assert.InDelta(t, 0, float64(got), 1e-9)
}

func TestLerp_StraddlingBoundaryDoesNotJump(t *testing.T) {
	from := Angle(math.Pi - 0.01)
	to := Angle(-math.Pi + 0.01)
	for _, tt := range []float64{0, 0.25, 0.5, 0.75, 1} {
		got := Lerp(from, to, tt)
		assert.Less(t, math.Abs(float64(Diff(from, got))), 0.03)
	}
}

func TestLerp_ClampsFactor(t *testing.T) {
	assert.InDelta(t, 1.0, float64(Lerp(0, 1, 5)), 1e-12)
	assert.InDelta(t, 0.0, float64(Lerp(0, 1, -5)), 1e-12)
}

func TestDiff_Signed(t *testing.T) {
	assert.InDelta(t, HalfPi, float64(Diff(0, HalfPi)), 1e-12)
	assert.InDelta(t, -HalfPi, float64(Diff(0, -HalfPi)), 1e-12)
	assert.InDelta(t, 0.2, float64(Diff(math.Pi-0.1, -math.Pi+0.1)), 1e-9)
}

func TestAngle_VectorRoundTrip(t *testing.T) {
	for _, a := range []Angle{0, 0.5, HalfPi, 2.5, -1, -2.9} {
		v := a.Vector()
		assert.InDelta(t, 1, v.Length(), 1e-12)
		assert.InDelta(t, float64(a), float64(AngleOf(v)), 1e-12)
	}
	assert.InDelta(t, 45, Degrees(45).ToDegrees(), 1e-12)
}

func TestRadius(t *testing.T) {
	r := Radius(5)
	assert.True(t, r.Contains(4.99))
	assert.False(t, r.Contains(5))
	assert.Equal(t, 5.0, r.Value())
}

func TestVec2(t *testing.T) {
	v := V(3, 4)
	assert.Equal(t, 5.0, v.Length())
	assert.InDelta(t, 1, v.Unit().Length(), 1e-12)
	assert.Equal(t, Zero, Zero.Unit())
	assert.Equal(t, V(4, -3), v.Perp())
	assert.True(t, v.Sub(v).IsZero())
	assert.Equal(t, V(4, 6), v.Add(V(1, 2)))
}

package domain

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestVecBasics(t *testing.T) {
	v := Vec2{X: 3, Y: 4}

	if v.Len() != 5 {
		t.Errorf("expected length 5, got %f", v.Len())
	}
	if d := v.DistanceTo(Vec2{X: 3, Y: 0}); d != 4 {
		t.Errorf("expected distance 4, got %f", d)
	}
	if dot := v.Dot(Vec2{X: 1, Y: 0}); dot != 3 {
		t.Errorf("expected dot 3, got %f", dot)
	}
}

func TestNormalizeOr(t *testing.T) {
	n := Vec2{X: 10, Y: 0}.NormalizeOr(Vec2{})
	if n != (Vec2{X: 1, Y: 0}) {
		t.Errorf("expected unit x, got %+v", n)
	}

	fallback := Vec2{X: 0, Y: -1}
	if got := (Vec2{}).NormalizeOr(fallback); got != fallback {
		t.Errorf("zero vector must yield the fallback, got %+v", got)
	}
}

func TestAngleRoundtrip(t *testing.T) {
	for _, a := range []float64{0, 0.5, math.Pi / 2, -math.Pi / 2, 3.0, -3.0} {
		v := VecFromAngle(a)
		if !almostEqual(v.Len(), 1) {
			t.Errorf("angle %f: expected unit vector, got length %f", a, v.Len())
		}
		if !almostEqual(NormalizeAngle(v.Angle()-a), 0) {
			t.Errorf("angle %f: roundtrip gave %f", a, v.Angle())
		}
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi / 2, math.Pi / 2},
		{2 * math.Pi, 0},
		{3 * math.Pi, math.Pi},
		{-3 * math.Pi, math.Pi},
	}
	for _, tt := range tests {
		got := NormalizeAngle(tt.in)
		if !almostEqual(math.Abs(got), math.Abs(tt.want)) {
			t.Errorf("NormalizeAngle(%f) = %f, want %f", tt.in, got, tt.want)
		}
		if got < -math.Pi-1e-9 || got > math.Pi+1e-9 {
			t.Errorf("NormalizeAngle(%f) = %f outside [-pi, pi]", tt.in, got)
		}
	}
}

func TestPerpIsOrthogonal(t *testing.T) {
	v := VecFromAngle(0.7)
	if !almostEqual(v.Dot(v.Perp()), 0) {
		t.Errorf("perpendicular must be orthogonal, dot = %f", v.Dot(v.Perp()))
	}
}

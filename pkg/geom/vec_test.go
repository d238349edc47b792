package geom

import (
	"math"
	"testing"
)

func TestVec3Arithmetic(t *testing.T) {
	a := Vec3{X: 1, Y: 2, Z: 3}
	b := Vec3{X: 4, Y: -2, Z: 0.5}

	if got := a.Add(b); got != (Vec3{X: 5, Y: 0, Z: 3.5}) {
		t.Errorf("Add = %v", got)
	}
	if got := b.Sub(a); got != (Vec3{X: 3, Y: -4, Z: -2.5}) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Scale(2); got != (Vec3{X: 2, Y: 4, Z: 6}) {
		t.Errorf("Scale = %v", got)
	}
}

func TestVec3Length(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
		want float64
	}{
		{"zero", Vec3{}, 0},
		{"unit x", Vec3{X: 1}, 1},
		{"pythagorean", Vec3{X: 3, Y: 4}, 5},
		{"diagonal", Vec3{X: 1, Y: 1, Z: 1}, math.Sqrt(3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Length(); got != tt.want {
				t.Errorf("Length() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{X: 0, Y: 3, Z: 4}.Normalize()
	if math.Abs(v.Length()-1) > 1e-12 {
		t.Errorf("normalized length = %v, want 1", v.Length())
	}

	// The zero vector must stay zero: this is what makes coincident nodes
	// unresolvable by the overlap pass.
	if got := Zero.Normalize(); got != Zero {
		t.Errorf("Normalize(zero) = %v, want zero", got)
	}
}

func TestVec3Distance(t *testing.T) {
	a := Vec3{X: 1, Y: 0, Z: 0.5}
	b := Vec3{X: 1.02, Y: 0, Z: 0.5}
	if got := a.Distance(b); math.Abs(got-0.02) > 1e-12 {
		t.Errorf("Distance = %v, want 0.02", got)
	}
}

func TestVec3Lerp(t *testing.T) {
	a := Vec3{}
	b := Vec3{X: 10, Y: -10, Z: 2}

	if got := a.Lerp(b, 0); got != a {
		t.Errorf("Lerp(0) = %v", got)
	}
	if got := a.Lerp(b, 1); got != b {
		t.Errorf("Lerp(1) = %v", got)
	}
	if got := a.Lerp(b, 0.3); got != (Vec3{X: 3, Y: -3, Z: 0.6}) {
		t.Errorf("Lerp(0.3) = %v", got)
	}
}

func TestVec3IsFinite(t *testing.T) {
	if !(Vec3{X: 1, Y: 2, Z: 3}).IsFinite() {
		t.Error("finite vector reported non-finite")
	}
	if (Vec3{X: math.NaN()}).IsFinite() {
		t.Error("NaN component reported finite")
	}
	if (Vec3{Z: math.Inf(1)}).IsFinite() {
		t.Error("Inf component reported finite")
	}
}

func TestCubicBezierEndpoints(t *testing.T) {
	p0 := Vec3{X: 0, Y: 0, Z: 0}
	p1 := Vec3{X: 1, Y: 2, Z: 0}
	p2 := Vec3{X: 2, Y: 2, Z: 1}
	p3 := Vec3{X: 3, Y: 0, Z: 1}

	if got := CubicBezier(p0, p1, p2, p3, 0); got != p0 {
		t.Errorf("B(0) = %v, want %v", got, p0)
	}
	if got := CubicBezier(p0, p1, p2, p3, 1); got != p3 {
		t.Errorf("B(1) = %v, want %v", got, p3)
	}

	// Midpoint of a cubic with symmetric controls: blend weights 1/8,3/8,3/8,1/8.
	mid := CubicBezier(p0, p1, p2, p3, 0.5)
	want := p0.Scale(0.125).Add(p1.Scale(0.375)).Add(p2.Scale(0.375)).Add(p3.Scale(0.125))
	if mid.Distance(want) > 1e-12 {
		t.Errorf("B(0.5) = %v, want %v", mid, want)
	}
}

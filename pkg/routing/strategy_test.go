package routing

import (
	"testing"

	"github.com/harnesslab/loom/pkg/geom"
)

func TestSelectStrategy(t *testing.T) {
	tests := []struct {
		name string
		from geom.Vec3
		to   geom.Vec3
		want Strategy
	}{
		{
			name: "short wire is direct",
			from: geom.Vec3{X: 0},
			to:   geom.Vec3{X: 0.2},
			want: StrategyDirect,
		},
		{
			name: "short but steep wire is still direct",
			from: geom.Vec3{Z: 0},
			to:   geom.Vec3{Z: 0.25},
			want: StrategyDirect,
		},
		{
			name: "long steep wire is corner",
			from: geom.Vec3{X: 0, Y: 0, Z: 0},
			to:   geom.Vec3{X: 1, Y: 1, Z: 1},
			want: StrategyCorner,
		},
		{
			name: "long flat wire is spline",
			from: geom.Vec3{X: 0, Z: 0},
			to:   geom.Vec3{X: 1, Z: 0.1},
			want: StrategySpline,
		},
		{
			name: "height diff exactly at threshold is spline",
			from: geom.Vec3{X: 0, Z: 0},
			to:   geom.Vec3{X: 1, Z: 0.2},
			want: StrategySpline,
		},
		{
			name: "distance exactly at threshold is not direct",
			from: geom.Vec3{X: 0},
			to:   geom.Vec3{X: 0.3},
			want: StrategySpline,
		},
		{
			name: "negative height diff still corner",
			from: geom.Vec3{X: 0, Z: 1},
			to:   geom.Vec3{X: 1, Z: 0},
			want: StrategyCorner,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SelectStrategy(tt.from, tt.to); got != tt.want {
				t.Errorf("SelectStrategy(%v, %v) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestSelectStrategyIsSymmetricEnough(t *testing.T) {
	// Strategy depends on distance and |Δz| only, so swapping endpoints
	// never changes the selection.
	pairs := [][2]geom.Vec3{
		{{X: 0}, {X: 0.2}},
		{{X: 0, Z: 0}, {X: 1, Z: 1}},
		{{X: 0, Z: 0}, {X: 1, Z: 0.1}},
	}
	for _, p := range pairs {
		a := SelectStrategy(p[0], p[1])
		b := SelectStrategy(p[1], p[0])
		if a != b {
			t.Errorf("selection not symmetric for %v/%v: %v vs %v", p[0], p[1], a, b)
		}
	}
}

package routing

import (
	"testing"

	"github.com/harnesslab/loom/pkg/scene"
)

func edgeWith(color, gauge string) scene.Edge {
	return scene.Edge{
		ID:   "w1",
		From: "a",
		To:   "b",
		Properties: scene.WireProperties{
			Color: color,
			Gauge: gauge,
		},
	}
}

func TestResolveStyle(t *testing.T) {
	tests := []struct {
		name       string
		color      string
		gauge      string
		wantColor  string
		wantRadius float64
	}{
		{"red 6mm", "red", "6mm²", "#FF0000", 0.002},
		{"black 1mm", "black", "1mm²", "#000000", 0.0008},
		{"blue 2.5mm", "blue", "2.5mm²", "#0000FF", 0.001},
		{"green 4mm", "green", "4mm²", "#00FF00", 0.0015},
		{"yellow 10mm", "yellow", "10mm²", "#FFFF00", 0.0025},
		{"brown", "brown", "", "#8B4513", DefaultRadius},
		{"orange", "orange", "", "#FFA500", DefaultRadius},
		{"white", "white", "", "#FFFFFF", DefaultRadius},
		{"unknown color", "magenta", "6mm²", DefaultColor, 0.002},
		{"missing everything", "", "", DefaultColor, DefaultRadius},
		{"unknown gauge", "red", "35mm²", "#FF0000", DefaultRadius},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveStyle(edgeWith(tt.color, tt.gauge))
			if got.Color != tt.wantColor {
				t.Errorf("color = %q, want %q", got.Color, tt.wantColor)
			}
			if got.Radius != tt.wantRadius {
				t.Errorf("radius = %v, want %v", got.Radius, tt.wantRadius)
			}
		})
	}
}

func TestColorLookupCaseInsensitive(t *testing.T) {
	for _, name := range []string{"RED", "Red", "rEd"} {
		got := ResolveStyle(edgeWith(name, ""))
		if got.Color != "#FF0000" {
			t.Errorf("color %q = %q, want #FF0000", name, got.Color)
		}
	}
}

func TestCanonicalGauge(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"6mm²", "6mm2"},
		{"6mm2", "6mm2"},
		{"6mm^2", "6mm2"},
		{"  6mm² ", "6mm2"},
		{"6 MM²", "6mm2"},
		{"2.5mm²", "2.5mm2"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := canonicalGauge(tt.in); got != tt.want {
			t.Errorf("canonicalGauge(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGaugeDriftVariantsResolveEqually(t *testing.T) {
	// The superscript fix: every observed producer spelling of 6mm² maps to
	// the same radius instead of silently hitting the default.
	variants := []string{"6mm²", "6mm2", "6MM²", "6mm^2", " 6mm² "}
	for _, v := range variants {
		got := ResolveStyle(edgeWith("", v))
		if got.Radius != 0.002 {
			t.Errorf("gauge %q radius = %v, want 0.002", v, got.Radius)
		}
	}
}

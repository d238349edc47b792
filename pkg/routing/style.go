package routing

import (
	"strings"

	"github.com/harnesslab/loom/pkg/scene"
)

// Style is the rendering attributes derived from a wire's properties.
type Style struct {
	Color  string
	Radius float64
}

const (
	// DefaultColor is used for unmapped or missing wire colors.
	DefaultColor = "#000000"

	// DefaultRadius is used for unmapped or missing wire gauges.
	DefaultRadius = 0.002
)

// wireColors maps lowercase color names to render hex colors.
var wireColors = map[string]string{
	"red":    "#FF0000",
	"black":  "#000000",
	"blue":   "#0000FF",
	"green":  "#00FF00",
	"yellow": "#FFFF00",
	"white":  "#FFFFFF",
	"brown":  "#8B4513",
	"orange": "#FFA500",
}

// wireRadii maps canonical gauge strings to tube radii in scene units.
// Keys are the ASCII form produced by canonicalGauge.
var wireRadii = map[string]float64{
	"1mm2":   0.0008,
	"2.5mm2": 0.001,
	"4mm2":   0.0015,
	"6mm2":   0.002,
	"10mm2":  0.0025,
}

// ResolveStyle maps an edge's wire properties to rendering attributes.
// Color lookup is case-insensitive; gauge lookup canonicalizes the string
// first so encoding drift in the superscript "²" cannot miss the table.
func ResolveStyle(edge scene.Edge) Style {
	return Style{
		Color:  colorFor(edge.Properties.Color),
		Radius: radiusFor(edge.Properties.Gauge),
	}
}

func colorFor(name string) string {
	if hex, ok := wireColors[strings.ToLower(name)]; ok {
		return hex
	}
	return DefaultColor
}

func radiusFor(gauge string) float64 {
	if r, ok := wireRadii[canonicalGauge(gauge)]; ok {
		return r
	}
	return DefaultRadius
}

// canonicalGauge normalizes a gauge string to its ASCII table form:
// trimmed, lowercased, with every superscript-two variant collapsed to "2".
// Producers have been observed emitting "6mm²" with differing byte
// sequences as well as "6mm^2" and "6 mm2"; all map to "6mm2".
func canonicalGauge(gauge string) string {
	s := strings.ToLower(strings.TrimSpace(gauge))
	s = strings.ReplaceAll(s, "²", "2") // superscript two
	s = strings.ReplaceAll(s, "^2", "2")
	s = strings.ReplaceAll(s, " ", "")
	return s
}

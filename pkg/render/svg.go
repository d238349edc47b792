// Package render produces a top-down SVG preview of a positioned scene.
//
// The preview projects the scene onto the X/Y plane: zones as outlined
// boxes, nodes as dots, routes as polylines in their resolved wire color.
// It exists for eyeballing layouts without the 3D front end and is not part
// of the engine contract.
package render

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/harnesslab/loom/pkg/scene"
)

// Options configures the SVG preview.
type Options struct {
	// Width and Height are the SVG frame size in pixels.
	Width  float64
	Height float64

	// ShowZones draws zone outlines and labels.
	ShowZones bool
}

// DefaultOptions returns the standard preview configuration.
func DefaultOptions() Options {
	return Options{Width: 800, Height: 600, ShowZones: true}
}

const (
	frameMargin  = 40.0
	nodeDotR     = 4.0
	minWireWidth = 1.0
	// wireScale converts wire radius (scene units) to stroke width (px).
	wireScale = 1500.0
)

// SVG renders the preview. Scene X maps to SVG x, scene Y to SVG y
// (flipped, so +Y/left appears at the top). Z is dropped.
func SVG(positioned scene.PositionedScene, routes []scene.Route, opts Options) []byte {
	if opts.Width <= 0 || opts.Height <= 0 {
		def := DefaultOptions()
		opts.Width, opts.Height = def.Width, def.Height
	}

	bounds := sceneBounds(positioned, opts.ShowZones)
	proj := newProjection(bounds, opts)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		opts.Width, opts.Height, opts.Width, opts.Height)
	buf.WriteString(`  <rect width="100%" height="100%" fill="#fafafa"/>` + "\n")

	if opts.ShowZones {
		renderZones(&buf, positioned.CoordinateSystem, proj)
	}
	renderRoutes(&buf, routes, proj)
	renderNodes(&buf, positioned.Nodes, proj)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// bounds is the scene-space rectangle covered by the preview.
type bounds struct {
	minX, minY, maxX, maxY float64
}

func sceneBounds(positioned scene.PositionedScene, includeZones bool) bounds {
	b := bounds{minX: -1, minY: -1, maxX: 1, maxY: 1}
	grow := func(x, y float64) {
		b.minX = min(b.minX, x)
		b.minY = min(b.minY, y)
		b.maxX = max(b.maxX, x)
		b.maxY = max(b.maxY, y)
	}
	for _, n := range positioned.Nodes {
		grow(n.Position.X, n.Position.Y)
	}
	if includeZones {
		for _, z := range positioned.CoordinateSystem.Zones {
			grow(z.Center.X-z.Size.X/2, z.Center.Y-z.Size.Y/2)
			grow(z.Center.X+z.Size.X/2, z.Center.Y+z.Size.Y/2)
		}
	}
	return b
}

// projection maps scene X/Y to SVG pixels, preserving aspect ratio.
type projection struct {
	scale        float64
	offX, offY   float64
	frameH       float64
}

func newProjection(b bounds, opts Options) projection {
	spanX := b.maxX - b.minX
	spanY := b.maxY - b.minY
	if spanX <= 0 {
		spanX = 1
	}
	if spanY <= 0 {
		spanY = 1
	}
	scale := min((opts.Width-2*frameMargin)/spanX, (opts.Height-2*frameMargin)/spanY)
	return projection{
		scale:  scale,
		offX:   frameMargin - b.minX*scale,
		offY:   frameMargin - b.minY*scale,
		frameH: opts.Height,
	}
}

func (p projection) x(sceneX float64) float64 { return sceneX*p.scale + p.offX }

// y flips the axis so +Y in scene space points up in the image.
func (p projection) y(sceneY float64) float64 { return p.frameH - (sceneY*p.scale + p.offY) }

func renderZones(buf *bytes.Buffer, cs scene.CoordinateSystem, proj projection) {
	names := make([]string, 0, len(cs.Zones))
	for name := range cs.Zones {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		z := cs.Zones[name]
		left := proj.x(z.Center.X - z.Size.X/2)
		top := proj.y(z.Center.Y + z.Size.Y/2)
		w := z.Size.X * proj.scale
		h := z.Size.Y * proj.scale
		fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="#bbbbbb" stroke-dasharray="4 3"/>`+"\n",
			left, top, w, h)
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="11" fill="#999999">%s</text>`+"\n",
			left+4, top+13, name)
	}
}

func renderRoutes(buf *bytes.Buffer, routes []scene.Route, proj projection) {
	for _, r := range routes {
		if len(r.Path) < 2 {
			continue
		}
		var pts bytes.Buffer
		for i, p := range r.Path {
			if i > 0 {
				pts.WriteByte(' ')
			}
			fmt.Fprintf(&pts, "%.1f,%.1f", proj.x(p.X), proj.y(p.Y))
		}
		width := max(r.Radius*wireScale, minWireWidth)
		fmt.Fprintf(buf, `  <polyline points="%s" fill="none" stroke="%s" stroke-width="%.1f" stroke-linecap="round" opacity="0.8"/>`+"\n",
			pts.String(), r.Color, width)
	}
}

func renderNodes(buf *bytes.Buffer, nodes []scene.PositionedNode, proj projection) {
	for _, n := range nodes {
		cx := proj.x(n.Position.X)
		cy := proj.y(n.Position.Y)
		fmt.Fprintf(buf, `  <circle cx="%.1f" cy="%.1f" r="%.1f" fill="#333333"/>`+"\n", cx, cy, nodeDotR)
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="10" fill="#333333">%s</text>`+"\n",
			cx+6, cy-6, n.DisplayLabel())
	}
}

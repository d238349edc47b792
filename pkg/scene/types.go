package scene

import (
	"github.com/harnesslab/loom/pkg/geom"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// DefaultZone is the zone assigned to nodes without an explicit zone tag.
const DefaultZone = "interior"

// MaterialCopper is the material constant attached to every route.
const MaterialCopper = "copper"

// =============================================================================
// Zone - Spatial Bounds
// =============================================================================

// Zone is a named axis-aligned box bounding where nodes may be placed.
// Size is the full extent; the half-extent on each axis is Size/2 from Center.
type Zone struct {
	Name   string    `json:"name"`
	Center geom.Vec3 `json:"center"`
	Size   geom.Vec3 `json:"size"`
}

// CoordinateSystem maps zone names to their spatial bounds.
// It is supplied by the caller per request; the engine keeps no copy.
type CoordinateSystem struct {
	Zones map[string]Zone `json:"zones"`
}

// Zone looks up a zone by name.
func (cs CoordinateSystem) Zone(name string) (Zone, bool) {
	z, ok := cs.Zones[name]
	return z, ok
}

// =============================================================================
// Node - Electrical Component
// =============================================================================

// Node is a graph vertex representing an electrical component.
// Meta carries caller-defined fields that pass through layout untouched.
type Node struct {
	ID    string         `json:"id"`
	Zone  string         `json:"zone,omitempty"` // defaults to DefaultZone
	Label string         `json:"label,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
}

// ZoneOrDefault returns the node's zone, falling back to DefaultZone.
func (n *Node) ZoneOrDefault() string {
	if n.Zone == "" {
		return DefaultZone
	}
	return n.Zone
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// PositionedNode is a Node augmented with a computed transform.
// Rotation is in radians per axis.
type PositionedNode struct {
	Node
	Position geom.Vec3 `json:"position"`
	Rotation geom.Vec3 `json:"rotation"`
	Scale    geom.Vec3 `json:"scale"`
}

// =============================================================================
// Edge - Wire Connection
// =============================================================================

// WireProperties carries the physical wire attributes used for styling.
type WireProperties struct {
	Color string `json:"wireColor,omitempty"`
	Gauge string `json:"wireGauge,omitempty"`
}

// Edge represents a wire connecting two nodes.
type Edge struct {
	ID         string         `json:"id"`
	From       string         `json:"from"`
	To         string         `json:"to"`
	Properties WireProperties `json:"properties,omitempty"`
}

// =============================================================================
// Route - Computed Wire Path
// =============================================================================

// Route is the computed 3D polyline and rendering style for one edge.
// The first and last path points equal the from/to node positions exactly.
type Route struct {
	EdgeID   string      `json:"edgeId"`
	Path     []geom.Vec3 `json:"path"` // at least 2 points
	Color    string      `json:"color"`
	Radius   float64     `json:"radius"`
	Segments int         `json:"segments"` // len(Path)-1
	Material string      `json:"material"`
}

// =============================================================================
// Internal Helpers
// =============================================================================

// CopyMeta creates a shallow copy of metadata to avoid mutating caller data.
func CopyMeta(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	result := make(map[string]any, len(m))
	for k, v := range m {
		result[k] = v
	}
	return result
}

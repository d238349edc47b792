// Package pipeline provides the core layout pipeline for Loom.
//
// This package implements the position → route → preview pipeline that can
// be used by CLI and API components. By centralizing this logic, we ensure
// consistent behavior across all entry points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Position: Place nodes inside their vehicle zones and relax overlaps
//  2. Route: Generate 3D wire paths and styles for every edge
//  3. Preview: Render a top-down SVG of the positioned scene (optional)
//
// Each stage can be run independently or as part of the complete pipeline.
// Position and Route are pure functions of their payload plus options, so
// both are cached under a content hash of the input.
//
// # Usage
//
// Create a Runner and execute a stage:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{Seed: 42}
//	result, err := runner.Position(ctx, sc, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	positioned := result.Nodes
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/harnesslab/loom/pkg/cache"
	apperrors "github.com/harnesslab/loom/pkg/errors"
	"github.com/harnesslab/loom/pkg/layout"
	"github.com/harnesslab/loom/pkg/scene"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultSeed is the default jitter seed for reproducibility.
	DefaultSeed = layout.DefaultSeed

	// DefaultMinDistance is the default minimum node separation in scene units.
	DefaultMinDistance = layout.DefaultMinDistance

	// DefaultWidth is the default preview frame width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default preview frame height in pixels.
	DefaultHeight = 600.0
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the layout pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Position options
	Seed        uint64  `json:"seed,omitempty"`
	MinDistance float64 `json:"min_distance,omitempty"`

	// Preview options
	Width     float64 `json:"width,omitempty"`
	Height    float64 `json:"height,omitempty"`
	ShowZones bool    `json:"show_zones,omitempty"`

	// Refresh bypasses cache reads and recomputes the stage.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// SetPositionDefaults sets default values for the positioning stage.
func (o *Options) SetPositionDefaults() {
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.MinDistance == 0 {
		o.MinDistance = DefaultMinDistance
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetPreviewDefaults sets default values for preview rendering.
func (o *Options) SetPreviewDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// PositionKeyOpts returns cache key options for the positioning stage.
func (o *Options) PositionKeyOpts() cache.PositionKeyOpts {
	return cache.PositionKeyOpts{
		Seed:        o.Seed,
		MinDistance: o.MinDistance,
	}
}

// PreviewKeyOpts returns cache key options for preview rendering.
func (o *Options) PreviewKeyOpts() cache.PreviewKeyOpts {
	return cache.PreviewKeyOpts{
		Width:     o.Width,
		Height:    o.Height,
		ShowZones: o.ShowZones,
	}
}

// =============================================================================
// Results
// =============================================================================

// PositionMetadata describes a positioning run for API responses.
type PositionMetadata struct {
	VehicleSignature string    `json:"vehicleSignature,omitempty"`
	NodeCount        int       `json:"nodeCount"`
	Zones            []string  `json:"zones"`
	Timestamp        time.Time `json:"timestamp"`
}

// PositionResult contains the outputs of the positioning stage.
type PositionResult struct {
	// Nodes are the placed nodes, in deterministic zone-then-input order.
	Nodes []scene.PositionedNode `json:"nodes"`

	// DroppedZones lists zones referenced by nodes but absent from the
	// coordinate system. Their nodes are omitted from Nodes.
	DroppedZones []string `json:"droppedZones,omitempty"`

	// Metadata describes the run. Timestamp is always fresh, even on a
	// cache hit.
	Metadata PositionMetadata `json:"metadata"`

	// CacheHit reports whether the result came from the cache.
	CacheHit bool `json:"-"`
}

// RouteMetadata describes a routing run for API responses.
type RouteMetadata struct {
	NodeCount  int       `json:"nodeCount"`
	EdgeCount  int       `json:"edgeCount"`
	RouteCount int       `json:"routeCount"`
	Timestamp  time.Time `json:"timestamp"`
}

// RouteResult contains the outputs of the routing stage.
type RouteResult struct {
	// Routes holds one routed wire per edge, in input edge order.
	Routes []scene.Route `json:"routes"`

	// SkippedEdges lists edge IDs whose endpoints were not present in the
	// positioned scene.
	SkippedEdges []string `json:"skippedEdges,omitempty"`

	// Metadata describes the run.
	Metadata RouteMetadata `json:"metadata"`

	// CacheHit reports whether the result came from the cache.
	CacheHit bool `json:"-"`
}

// =============================================================================
// Payload Validation
// =============================================================================

// ValidateScene checks a positioning payload and returns the complete list
// of field violations, so callers can fix everything in one round trip.
func ValidateScene(s scene.Scene) error {
	ve := &apperrors.ValidationError{}

	if len(s.Nodes) == 0 {
		ve.Add("nodes", "at least one node is required")
	}
	validateNodeIDs(ve, nodeIDs(s.Nodes))

	if len(s.CoordinateSystem.Zones) == 0 {
		ve.Add("coordinateSystem.zones", "at least one zone is required")
	}
	names := make([]string, 0, len(s.CoordinateSystem.Zones))
	for name := range s.CoordinateSystem.Zones {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		z := s.CoordinateSystem.Zones[name]
		field := fmt.Sprintf("coordinateSystem.zones[%s]", name)
		if err := apperrors.ValidateZoneName(name); err != nil {
			ve.Add(field, "%s", apperrors.UserMessage(err))
		}
		if !z.Center.IsFinite() || !z.Size.IsFinite() {
			ve.Add(field, "center and size must be finite")
		} else if z.Size.X <= 0 || z.Size.Y <= 0 || z.Size.Z <= 0 {
			ve.Add(field+".size", "all size components must be positive")
		}
	}

	return ve.ErrOrNil()
}

// ValidatePositionedScene checks a routing payload.
func ValidatePositionedScene(s scene.PositionedScene) error {
	ve := &apperrors.ValidationError{}

	if len(s.Nodes) == 0 {
		ve.Add("nodes", "at least one positioned node is required")
	}
	ids := make([]string, len(s.Nodes))
	for i, n := range s.Nodes {
		ids[i] = n.ID
		if !n.Position.IsFinite() {
			ve.Add(fmt.Sprintf("nodes[%d].position", i), "position must be finite")
		}
	}
	validateNodeIDs(ve, ids)

	for i, e := range s.Edges {
		if e.ID == "" {
			ve.Add(fmt.Sprintf("edges[%d].id", i), "edge id cannot be empty")
		}
		// Unknown endpoint IDs are not violations: routing skips those
		// edges with a warning. Empty endpoints are malformed input.
		if e.From == "" {
			ve.Add(fmt.Sprintf("edges[%d].from", i), "edge endpoint cannot be empty")
		}
		if e.To == "" {
			ve.Add(fmt.Sprintf("edges[%d].to", i), "edge endpoint cannot be empty")
		}
	}

	return ve.ErrOrNil()
}

func nodeIDs(nodes []scene.Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}

func validateNodeIDs(ve *apperrors.ValidationError, ids []string) {
	seen := make(map[string]bool, len(ids))
	for i, id := range ids {
		field := fmt.Sprintf("nodes[%d].id", i)
		if err := apperrors.ValidateNodeID(id); err != nil {
			ve.Add(field, "%s", apperrors.UserMessage(err))
			continue
		}
		if seen[id] {
			ve.Add(field, "duplicate node id %q", id)
		}
		seen[id] = true
	}
}

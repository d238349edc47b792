package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/harnesslab/loom/pkg/cache"
	"github.com/harnesslab/loom/pkg/layout"
	"github.com/harnesslab/loom/pkg/observability"
	"github.com/harnesslab/loom/pkg/render"
	"github.com/harnesslab/loom/pkg/routing"
	"github.com/harnesslab/loom/pkg/scene"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// cachedPosition is the cache payload for the positioning stage. Metadata
// is rebuilt per request so timestamps stay fresh.
type cachedPosition struct {
	Nodes        []scene.PositionedNode `json:"nodes"`
	DroppedZones []string               `json:"dropped_zones,omitempty"`
}

// cachedRoute is the cache payload for the routing stage.
type cachedRoute struct {
	Routes       []scene.Route `json:"routes"`
	SkippedEdges []string      `json:"skipped_edges,omitempty"`
}

// PositionWithCacheInfo places nodes with caching and returns cache hit info.
func (r *Runner) PositionWithCacheInfo(ctx context.Context, s scene.Scene, opts Options) (*PositionResult, bool, error) {
	if err := ValidateScene(s); err != nil {
		return nil, false, err
	}
	opts.SetPositionDefaults()
	r.applyLogger(&opts)

	start := time.Now()
	observability.Layout().OnPositionStart(ctx, s.VehicleSignature, len(s.Nodes))

	payload, err := json.Marshal(s)
	if err != nil {
		return nil, false, fmt.Errorf("serialize scene for cache key: %w", err)
	}
	cacheKey := r.Keyer.PositionKey(cache.Hash(payload), opts.PositionKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached cachedPosition
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "position")
				result := positionResult(s, cached, true)
				observability.Layout().OnPositionComplete(ctx, s.VehicleSignature, len(result.Nodes), time.Since(start), nil)
				return result, true, nil
			}
			// Corrupt entry - fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "position")
	}

	res := layout.Position(s.Nodes, s.CoordinateSystem, opts.Seed)
	for _, zone := range res.DroppedZones {
		count := zoneNodeCount(s.Nodes, zone)
		observability.Layout().OnZoneSkipped(ctx, zone, count)
		opts.Logger.Warn("dropped zone not in coordinate system", "zone", zone, "nodes", count)
	}

	resolved, passes := layout.Resolve(res.Nodes, opts.MinDistance)
	if residual := layout.Violations(resolved, opts.MinDistance); len(residual) > 0 {
		observability.Layout().OnResidualOverlap(ctx, len(residual))
		opts.Logger.Warn("overlap relaxation left residual violations",
			"pairs", len(residual), "passes", passes)
	}

	cached := cachedPosition{Nodes: resolved, DroppedZones: res.DroppedZones}
	if data, err := json.Marshal(cached); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLPosition); err == nil {
			observability.Cache().OnCacheSet(ctx, "position", len(data))
		}
	}

	result := positionResult(s, cached, false)
	observability.Layout().OnPositionComplete(ctx, s.VehicleSignature, len(result.Nodes), time.Since(start), nil)
	return result, false, nil
}

// Position is a convenience wrapper that calls PositionWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Position(ctx context.Context, s scene.Scene, opts Options) (*PositionResult, error) {
	result, _, err := r.PositionWithCacheInfo(ctx, s, opts)
	return result, err
}

// positionResult assembles a PositionResult with fresh metadata.
func positionResult(s scene.Scene, cached cachedPosition, hit bool) *PositionResult {
	return &PositionResult{
		Nodes:        cached.Nodes,
		DroppedZones: cached.DroppedZones,
		Metadata: PositionMetadata{
			VehicleSignature: s.VehicleSignature,
			NodeCount:        len(cached.Nodes),
			Zones:            placedZones(cached.Nodes),
			Timestamp:        time.Now().UTC(),
		},
		CacheHit: hit,
	}
}

// RouteWithCacheInfo routes edges with caching and returns cache hit info.
func (r *Runner) RouteWithCacheInfo(ctx context.Context, s scene.PositionedScene, opts Options) (*RouteResult, bool, error) {
	if err := ValidatePositionedScene(s); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	start := time.Now()
	observability.Layout().OnRouteStart(ctx, len(s.Nodes), len(s.Edges))

	payload, err := json.Marshal(s)
	if err != nil {
		return nil, false, fmt.Errorf("serialize positioned scene for cache key: %w", err)
	}
	cacheKey := r.Keyer.RouteKey(cache.Hash(payload), cache.RouteKeyOpts{})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached cachedRoute
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "route")
				result := routeResult(s, cached, true)
				observability.Layout().OnRouteComplete(ctx, len(result.Routes), time.Since(start), nil)
				return result, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "route")
	}

	res := routing.RouteEdges(s.Nodes, s.Edges)
	for _, id := range res.SkippedEdges {
		observability.Layout().OnEdgeSkipped(ctx, id)
		opts.Logger.Warn("skipped edge with missing endpoint", "edge", id)
	}

	cached := cachedRoute{Routes: res.Routes, SkippedEdges: res.SkippedEdges}
	if data, err := json.Marshal(cached); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLRoute); err == nil {
			observability.Cache().OnCacheSet(ctx, "route", len(data))
		}
	}

	result := routeResult(s, cached, false)
	observability.Layout().OnRouteComplete(ctx, len(result.Routes), time.Since(start), nil)
	return result, false, nil
}

// Route is a convenience wrapper that calls RouteWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Route(ctx context.Context, s scene.PositionedScene, opts Options) (*RouteResult, error) {
	result, _, err := r.RouteWithCacheInfo(ctx, s, opts)
	return result, err
}

func routeResult(s scene.PositionedScene, cached cachedRoute, hit bool) *RouteResult {
	return &RouteResult{
		Routes:       cached.Routes,
		SkippedEdges: cached.SkippedEdges,
		Metadata: RouteMetadata{
			NodeCount:  len(s.Nodes),
			EdgeCount:  len(s.Edges),
			RouteCount: len(cached.Routes),
			Timestamp:  time.Now().UTC(),
		},
		CacheHit: hit,
	}
}

// PreviewWithCacheInfo renders a top-down SVG preview with caching.
func (r *Runner) PreviewWithCacheInfo(ctx context.Context, s scene.PositionedScene, routes []scene.Route, opts Options) ([]byte, bool, error) {
	opts.SetPreviewDefaults()
	r.applyLogger(&opts)

	payload, err := json.Marshal(struct {
		Scene  scene.PositionedScene `json:"scene"`
		Routes []scene.Route         `json:"routes"`
	}{s, routes})
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	cacheKey := r.Keyer.PreviewKey(cache.Hash(payload), opts.PreviewKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "preview")
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "preview")
	}

	svg := render.SVG(s, routes, render.Options{
		Width:     opts.Width,
		Height:    opts.Height,
		ShowZones: opts.ShowZones,
	})

	if err := r.Cache.Set(ctx, cacheKey, svg, cache.TTLPreview); err == nil {
		observability.Cache().OnCacheSet(ctx, "preview", len(svg))
	}

	return svg, false, nil
}

// Preview is a convenience wrapper that calls PreviewWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Preview(ctx context.Context, s scene.PositionedScene, routes []scene.Route, opts Options) ([]byte, error) {
	svg, _, err := r.PreviewWithCacheInfo(ctx, s, routes, opts)
	return svg, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// placedZones returns the sorted distinct zone names of placed nodes.
func placedZones(nodes []scene.PositionedNode) []string {
	seen := make(map[string]bool)
	for _, n := range nodes {
		seen[n.ZoneOrDefault()] = true
	}
	zones := make([]string, 0, len(seen))
	for z := range seen {
		zones = append(zones, z)
	}
	slices.Sort(zones)
	return zones
}

// zoneNodeCount counts input nodes assigned to a zone.
func zoneNodeCount(nodes []scene.Node, zone string) int {
	count := 0
	for _, n := range nodes {
		if n.ZoneOrDefault() == zone {
			count++
		}
	}
	return count
}

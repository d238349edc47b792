// Package cache provides request-level caching for the layout pipeline.
//
// The engine's two operations are pure functions of their payloads (jitter
// is seeded), so results can be cached safely under a content hash of the
// payload plus options. Backends:
//   - file: XDG cache directory, for CLI usage
//   - redis: shared cache for multi-instance server deployments
//   - null: caching disabled
//
// Keys are generated through the Keyer interface so server deployments can
// prefix them per tenant (see ScopedKeyer).
package cache

import (
	"context"
	"time"
)

// TTLs per cached artifact kind.
const (
	// TTLPosition is how long positioned-scene results are kept.
	TTLPosition = 24 * time.Hour

	// TTLRoute is how long routed-wire results are kept.
	TTLRoute = 24 * time.Hour

	// TTLPreview is how long rendered SVG previews are kept. Previews are
	// derived from cached layouts, so they can outlive them harmlessly.
	TTLPreview = 7 * 24 * time.Hour
)

// Cache stores opaque byte values under string keys with a TTL.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// PositionKeyOpts are the options that change positioning output and must
// therefore be part of the cache key.
type PositionKeyOpts struct {
	Seed        uint64  `json:"seed"`
	MinDistance float64 `json:"min_distance"`
}

// RouteKeyOpts are the options that change routing output. Routing has no
// tunables today; the struct keeps the key format stable if any appear.
type RouteKeyOpts struct{}

// PreviewKeyOpts are the options that change preview rendering.
type PreviewKeyOpts struct {
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	ShowZones bool    `json:"show_zones"`
}

// Keyer generates cache keys for each pipeline stage.
type Keyer interface {
	// PositionKey keys a positioning result by scene content hash and options.
	PositionKey(sceneHash string, opts PositionKeyOpts) string

	// RouteKey keys a routing result by positioned-scene content hash.
	RouteKey(sceneHash string, opts RouteKeyOpts) string

	// PreviewKey keys a rendered preview by layout content hash and options.
	PreviewKey(layoutHash string, opts PreviewKeyOpts) string
}

// DefaultKeyer generates globally-scoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// PositionKey generates a key for positioning results.
func (k *DefaultKeyer) PositionKey(sceneHash string, opts PositionKeyOpts) string {
	return hashKey("position", sceneHash, opts)
}

// RouteKey generates a key for routing results.
func (k *DefaultKeyer) RouteKey(sceneHash string, opts RouteKeyOpts) string {
	return hashKey("route", sceneHash, opts)
}

// PreviewKey generates a key for rendered previews.
func (k *DefaultKeyer) PreviewKey(layoutHash string, opts PreviewKeyOpts) string {
	return hashKey("preview", layoutHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)

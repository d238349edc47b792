// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about layout operations, routing operations,
// and cache activity.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetLayoutHooks(&myLayoutHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Layout().OnPositionStart(ctx, signature, nodeCount)
//	// ... position nodes ...
//	observability.Layout().OnPositionComplete(ctx, signature, placed, duration, err)
//
// The zone-skip and edge-skip events are the warning channel for the
// engine's silent-drop contract: dropped zones and skipped edges never fail
// an operation, but every drop is observable here.
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Layout Hooks
// =============================================================================

// LayoutHooks receives events from the positioning and routing operations.
type LayoutHooks interface {
	// Position events
	OnPositionStart(ctx context.Context, vehicleSignature string, nodeCount int)
	OnPositionComplete(ctx context.Context, vehicleSignature string, placedCount int, duration time.Duration, err error)

	// Route events
	OnRouteStart(ctx context.Context, nodeCount, edgeCount int)
	OnRouteComplete(ctx context.Context, routeCount int, duration time.Duration, err error)

	// Warning-level side effects
	OnZoneSkipped(ctx context.Context, zone string, nodeCount int)
	OnEdgeSkipped(ctx context.Context, edgeID string)
	OnResidualOverlap(ctx context.Context, pairCount int)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnPositionStart(context.Context, string, int) {}
func (NoopLayoutHooks) OnPositionComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopLayoutHooks) OnRouteStart(context.Context, int, int)                      {}
func (NoopLayoutHooks) OnRouteComplete(context.Context, int, time.Duration, error)  {}
func (NoopLayoutHooks) OnZoneSkipped(context.Context, string, int)                  {}
func (NoopLayoutHooks) OnEdgeSkipped(context.Context, string)                       {}
func (NoopLayoutHooks) OnResidualOverlap(context.Context, int)                      {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	layoutHooks LayoutHooks = NoopLayoutHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	hooksMu     sync.RWMutex
)

// SetLayoutHooks registers custom layout hooks.
// This should be called once at application startup before any operations.
func SetLayoutHooks(h LayoutHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		layoutHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Layout returns the registered layout hooks.
func Layout() LayoutHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return layoutHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	layoutHooks = NoopLayoutHooks{}
	cacheHooks = NoopCacheHooks{}
}

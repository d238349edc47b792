package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// Server deployments use this to separate cache entries per vehicle
// program or per tenant without touching backend configuration.
//
// Example usage:
//
//	// Program-specific keys
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "program:gx-2027:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// PositionKey generates a prefixed key for positioning results.
func (k *ScopedKeyer) PositionKey(sceneHash string, opts PositionKeyOpts) string {
	return k.prefix + k.inner.PositionKey(sceneHash, opts)
}

// RouteKey generates a prefixed key for routing results.
func (k *ScopedKeyer) RouteKey(sceneHash string, opts RouteKeyOpts) string {
	return k.prefix + k.inner.RouteKey(sceneHash, opts)
}

// PreviewKey generates a prefixed key for rendered previews.
func (k *ScopedKeyer) PreviewKey(layoutHash string, opts PreviewKeyOpts) string {
	return k.prefix + k.inner.PreviewKey(layoutHash, opts)
}

// Ensure ScopedKeyer implements Keyer.
var _ Keyer = (*ScopedKeyer)(nil)

package observability

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type countingLayoutHooks struct {
	NoopLayoutHooks
	zoneSkips int64
	positions int64
}

func (h *countingLayoutHooks) OnZoneSkipped(ctx context.Context, zone string, nodeCount int) {
	atomic.AddInt64(&h.zoneSkips, 1)
}

func (h *countingLayoutHooks) OnPositionComplete(ctx context.Context, sig string, placed int, d time.Duration, err error) {
	atomic.AddInt64(&h.positions, 1)
}

func TestLayoutHooksRegistration(t *testing.T) {
	t.Cleanup(Reset)

	h := &countingLayoutHooks{}
	SetLayoutHooks(h)

	ctx := context.Background()
	Layout().OnZoneSkipped(ctx, "trunk", 2)
	Layout().OnPositionComplete(ctx, "vin:x", 5, time.Millisecond, nil)

	if h.zoneSkips != 1 || h.positions != 1 {
		t.Errorf("hooks not invoked: skips=%d positions=%d", h.zoneSkips, h.positions)
	}
}

func TestSetNilHooksKeepsCurrent(t *testing.T) {
	t.Cleanup(Reset)

	h := &countingLayoutHooks{}
	SetLayoutHooks(h)
	SetLayoutHooks(nil)

	Layout().OnZoneSkipped(context.Background(), "trunk", 1)
	if h.zoneSkips != 1 {
		t.Error("nil registration should not replace the current hooks")
	}
}

func TestResetRestoresNoops(t *testing.T) {
	h := &countingLayoutHooks{}
	SetLayoutHooks(h)
	Reset()

	if _, ok := Layout().(NoopLayoutHooks); !ok {
		t.Error("Reset should restore NoopLayoutHooks")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Reset should restore NoopCacheHooks")
	}
}

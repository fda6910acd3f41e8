package domain

import (
	"context"
	"sync"
)

type degradationKey struct{}

// Degradation collects soft failures for a single HTTP request.
// The handler puts a pointer into the context before calling a service;
// services record what they swallowed; the handler reads it for response headers.
// End users still get a normal response either way.
type Degradation struct {
	mu      sync.Mutex
	reasons []string
}

// NewContextWithDegradation returns a context carrying a fresh collector.
func NewContextWithDegradation(ctx context.Context) (context.Context, *Degradation) {
	d := &Degradation{}
	return context.WithValue(ctx, degradationKey{}, d), d
}

// DegradationFromContext returns the collector, or nil if none was installed.
func DegradationFromContext(ctx context.Context) *Degradation {
	d, _ := ctx.Value(degradationKey{}).(*Degradation)
	return d
}

// Mark records a degradation reason. Safe on a nil receiver.
func (d *Degradation) Mark(reason string) {
	if d == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, r := range d.reasons {
		if r == reason {
			return
		}
	}
	d.reasons = append(d.reasons, reason)
}

// Reasons returns the recorded reasons in first-seen order.
func (d *Degradation) Reasons() []string {
	if d == nil {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.reasons))
	copy(out, d.reasons)
	return out
}

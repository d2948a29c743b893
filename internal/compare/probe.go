package compare

import (
	"context"
	"time"
)

// Probe is the "try-improve-timing" capability: an external solver sampled on
// a placeholder objective. Its answer is never used; only the time it takes
// counts toward the optimized strategy.
//
// Sample must return once ctx is done. Run stops waiting at the probe
// timeout, but a Sample that ignores ctx keeps its goroutine alive until it
// returns on its own.
type Probe interface {
	Sample(ctx context.Context, size int) error
}

// ProbeFunc adapts a function to Probe.
type ProbeFunc func(ctx context.Context, size int) error

func (f ProbeFunc) Sample(ctx context.Context, size int) error { return f(ctx, size) }

func tryProbe(ctx context.Context, p Probe, timeout time.Duration, size int) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer func() { _ = recover() }()
		_ = p.Sample(ctx, size)
	}()

	select {
	case <-done:
	case <-ctx.Done():
	}
}

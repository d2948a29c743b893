package poolsource

import (
	"context"
	"time"
)

// backoff retries a refresh with doubling waits capped at Max.
type backoff struct {
	Retries int
	Base    time.Duration
	Max     time.Duration
	// OnRetry, if set, is called before each wait.
	OnRetry func(attempt int, wait time.Duration, err error)
}

func (b backoff) do(ctx context.Context, fn func(context.Context) error) error {
	wait := b.Base
	if wait <= 0 {
		wait = 100 * time.Millisecond
	}

	for attempt := 1; ; attempt++ {
		err := fn(ctx)
		if err == nil || attempt > b.Retries {
			return err
		}
		if b.Max > 0 && wait > b.Max {
			wait = b.Max
		}
		if b.OnRetry != nil {
			b.OnRetry(attempt, wait, err)
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		wait *= 2
	}
}

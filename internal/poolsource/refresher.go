package poolsource

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RefresherConfig tunes the background refresh loop.
type RefresherConfig struct {
	Interval   time.Duration
	MaxRetries int
	Backoff    time.Duration
}

// Refresher keeps a CachedProvider warm so requests rarely hit the upstream.
type Refresher struct {
	provider *CachedProvider
	cfg      RefresherConfig
	logger   *zap.Logger
}

func NewRefresher(provider *CachedProvider, cfg RefresherConfig, logger *zap.Logger) *Refresher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultTTL
	}
	return &Refresher{provider: provider, cfg: cfg, logger: logger}
}

// Run refreshes immediately and then every interval until ctx is done.
// Failed refreshes are logged; Run itself only returns on cancellation.
func (r *Refresher) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	for {
		r.refreshOnce(ctx)
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (r *Refresher) refreshOnce(ctx context.Context) {
	start := time.Now()
	var count int
	policy := backoff{
		Retries: r.cfg.MaxRetries,
		Base:    r.cfg.Backoff,
		Max:     r.cfg.Interval,
		OnRetry: func(attempt int, wait time.Duration, err error) {
			r.logger.Debug("retrying pool refresh",
				zap.Int("attempt", attempt),
				zap.Duration("wait", wait),
				zap.Error(err),
			)
		},
	}
	err := policy.do(ctx, func(ctx context.Context) error {
		pools, err := r.provider.Refresh(ctx)
		count = len(pools)
		return err
	})
	if err != nil {
		if ctx.Err() == nil {
			r.logger.Warn("pool refresh failed", zap.String("source", r.provider.Source()), zap.Error(err))
		}
		return
	}
	r.logger.Debug("pool refresh done",
		zap.String("source", r.provider.Source()),
		zap.Int("pools", count),
		zap.Duration("elapsed", time.Since(start)),
	)
}

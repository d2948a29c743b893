package poolsource

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"dexAccel/internal/metrics"
	"dexAccel/internal/model"
)

// DefaultTTL is how long a refreshed snapshot is served.
const DefaultTTL = 30 * time.Second

const keyPrefix = "dexaccel:pools:"

// CachedProvider serves snapshots from a Cache and refreshes them from an
// upstream provider on a miss. When the upstream fails it serves the
// fallback dataset and never returns an error.
type CachedProvider struct {
	upstream Provider
	cache    Cache
	source   string
	ttl      time.Duration
	fallback []model.Pool
	logger   *zap.Logger
	group    singleflight.Group
}

// CachedOption configures a CachedProvider.
type CachedOption func(*CachedProvider)

// WithFallback replaces the demo dataset served on upstream failure.
func WithFallback(pools []model.Pool) CachedOption {
	return func(p *CachedProvider) { p.fallback = pools }
}

func NewCachedProvider(upstream Provider, cache Cache, source string, ttl time.Duration, logger *zap.Logger, opts ...CachedOption) *CachedProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	p := &CachedProvider{
		upstream: upstream,
		cache:    cache,
		source:   source,
		ttl:      ttl,
		fallback: DemoPools(),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Source names the upstream.
func (p *CachedProvider) Source() string { return p.source }

func (p *CachedProvider) Pools(ctx context.Context) ([]model.Pool, error) {
	pools, ok, err := p.cache.Get(ctx, p.key())
	if err != nil {
		p.logger.Debug("pool cache read failed", zap.String("source", p.source), zap.Error(err))
	}
	if ok {
		return pools, nil
	}

	pools, err = p.Refresh(ctx)
	if err != nil {
		p.logger.Warn("pool source unavailable, serving fallback", zap.String("source", p.source), zap.Error(err))
		metrics.PoolFallbackTotal.Inc()
		return clonePools(p.fallback), nil
	}
	return pools, nil
}

// Refresh loads a fresh snapshot from upstream and caches it. Concurrent
// calls share one upstream read.
func (p *CachedProvider) Refresh(ctx context.Context) ([]model.Pool, error) {
	v, err, _ := p.group.Do(p.key(), func() (interface{}, error) {
		pools, err := p.upstream.Pools(ctx)
		if err != nil {
			metrics.PoolRefreshTotal.WithLabelValues(p.source, "error").Inc()
			return nil, err
		}
		metrics.PoolRefreshTotal.WithLabelValues(p.source, "ok").Inc()
		metrics.PoolCount.Set(float64(len(pools)))
		if err := p.cache.Set(ctx, p.key(), pools, p.ttl); err != nil {
			p.logger.Warn("pool cache write failed", zap.String("source", p.source), zap.Error(err))
		}
		return pools, nil
	})
	if err != nil {
		return nil, err
	}
	return clonePools(v.([]model.Pool)), nil
}

func (p *CachedProvider) key() string {
	return keyPrefix + p.source
}

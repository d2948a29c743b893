package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"dexAccel/internal/chain"
	"dexAccel/internal/config"
	"dexAccel/internal/poolsource"
	"dexAccel/internal/storage"
	"dexAccel/internal/storage/postgres"
)

// poolSource is an opened upstream provider plus whatever it holds open.
type poolSource struct {
	provider poolsource.Provider
	chain    *chain.Client
	closers  []func()
}

func (s *poolSource) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

func openPoolSource(ctx context.Context, cfg config.PoolSourceConfig, logger *zap.Logger) (*poolSource, error) {
	src := &poolSource{}

	if cfg.RPCURL != "" {
		client, err := chain.NewClient(ctx, cfg.RPCURL)
		if err != nil {
			return nil, fmt.Errorf("connect rpc: %w", err)
		}
		src.chain = client
		src.closers = append(src.closers, client.Close)
	}

	switch cfg.Kind {
	case config.PoolSourceStatic:
		src.provider = poolsource.NewStaticProvider(nil)
	case config.PoolSourceFile:
		src.provider = poolsource.NewFileProvider(storage.NewJsonlStorage(cfg.File))
	case config.PoolSourceChain:
		if src.chain == nil {
			src.Close()
			return nil, fmt.Errorf("pool-source chain requires rpc")
		}
		registry, err := openRegistry(ctx, cfg, src)
		if err != nil {
			src.Close()
			return nil, err
		}
		src.provider = poolsource.NewChainProvider(src.chain, registry, logger)
	default:
		src.Close()
		return nil, fmt.Errorf("unknown pool-source %q", cfg.Kind)
	}
	return src, nil
}

func openRegistry(ctx context.Context, cfg config.PoolSourceConfig, src *poolSource) (poolsource.Registry, error) {
	if cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		src.closers = append(src.closers, store.Close)
		if err := store.Ping(ctx); err != nil {
			return nil, fmt.Errorf("ping postgres: %w", err)
		}
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return store, nil
	}

	registry, err := poolsource.ParsePairs(cfg.Pairs, cfg.PairFeeBps)
	if err != nil {
		return nil, err
	}
	for i := range registry {
		registry[i].FeeBps = cfg.FeeFor(registry[i].Address)
	}
	return registry, nil
}

func openCache(ctx context.Context, cfg config.PoolSourceConfig, logger *zap.Logger) (poolsource.Cache, func()) {
	if cfg.RedisURL == "" {
		return poolsource.NewMemoryCache(0), func() {}
	}
	redisCache, err := poolsource.NewRedisCache(cfg.RedisURL)
	if err == nil {
		err = redisCache.Ping(ctx)
		if err != nil {
			_ = redisCache.Close()
		}
	}
	if err != nil {
		logger.Warn("redis unavailable, using in-process pool cache", zap.Error(err))
		return poolsource.NewMemoryCache(0), func() {}
	}
	return redisCache, func() { _ = redisCache.Close() }
}

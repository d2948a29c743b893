package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"dexAccel/internal/annealer"
	"dexAccel/internal/config"
	"dexAccel/internal/httpapi"
	"dexAccel/internal/metrics"
	"dexAccel/internal/network"
	"dexAccel/internal/poolsource"
)

func runServe(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadServe(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := metrics.Init(logger)

	src, err := openPoolSource(ctx, cfg.Pools, logger)
	if err != nil {
		return err
	}
	defer src.Close()

	cache, closeCache := openCache(ctx, cfg.Pools, logger)
	defer closeCache()

	pools := poolsource.NewCachedProvider(src.provider, cache, cfg.Pools.Kind, cfg.Pools.CacheTTL, logger)
	refresher := poolsource.NewRefresher(pools, poolsource.RefresherConfig{
		Interval:   cfg.Pools.CacheTTL,
		MaxRetries: cfg.RefreshRetries,
		Backoff:    cfg.RefreshBackoff,
	}, logger)

	var reader network.ChainReader
	if src.chain != nil {
		reader = src.chain
	}
	status := network.NewStatusProvider(reader, 0, logger)

	apiCfg := httpapi.Config{
		Pools:        pools,
		Network:      status,
		ProbeTimeout: cfg.AnnealerTimeout,
		Registry:     reg,
		CORSOrigins:  cfg.CORSOrigins,
		Version:      version,
		Logger:       logger,
	}
	if cfg.AnnealerURL != "" {
		probe, err := annealer.Dial(ctx, cfg.AnnealerURL, logger)
		if err != nil {
			logger.Warn("annealer unavailable, probe disabled", zap.Error(err))
		} else {
			defer probe.Close()
			apiCfg.Probe = probe
		}
	}
	api := httpapi.New(apiCfg)

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Addr, err)
	}

	srv := &http.Server{
		Handler:      api.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	logger.Info("serving",
		zap.String("addr", ln.Addr().String()),
		zap.String("pool_source", cfg.Pools.Kind),
		zap.Bool("probe", apiCfg.Probe != nil),
		zap.String("version", version),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		api.SetReady(true)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return refresher.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		api.SetReady(false)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

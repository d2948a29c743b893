package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dexAccel/internal/config"
	"dexAccel/internal/model"
	"dexAccel/internal/storage"
	"dexAccel/internal/storage/postgres"
)

func newPoolsCmd() *cobra.Command {
	poolsCmd := &cobra.Command{
		Use:   "pools",
		Short: "Inspect pool sources and manage the pair registry",
	}
	poolsCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Print the pools the configured source returns",
		Args:  cobra.NoArgs,
		RunE:  runPoolsList,
	}
	addPoolSourceFlags(listCmd)
	listCmd.Flags().String("out", "", "output file (default stdout)")
	poolsCmd.AddCommand(listCmd)

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Append the current pools to a JSONL snapshot file",
		Args:  cobra.NoArgs,
		RunE:  runPoolsSnapshot,
	}
	addPoolSourceFlags(snapshotCmd)
	snapshotCmd.Flags().String("out", "pools.jsonl", "snapshot file")
	poolsCmd.AddCommand(snapshotCmd)

	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Upsert pair references into the Postgres registry",
		Args:  cobra.NoArgs,
		RunE:  runPoolsImport,
	}
	importCmd.Flags().String("in", "-", "pair JSON array or JSONL (- for stdin)")
	importCmd.Flags().String("pg-dsn", "", "Postgres DSN")
	poolsCmd.AddCommand(importCmd)

	disableCmd := &cobra.Command{
		Use:   "disable <address>",
		Short: "Stop polling a registered pair",
		Args:  cobra.ExactArgs(1),
		RunE:  runPoolsDisable,
	}
	disableCmd.Flags().String("pg-dsn", "", "Postgres DSN")
	poolsCmd.AddCommand(disableCmd)

	return poolsCmd
}

func loadPoolsCmd(cmd *cobra.Command) (config.PoolsConfig, *zap.Logger, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadPools(cfgFile, cmd.Flags())
	if err != nil {
		return config.PoolsConfig{}, nil, err
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return config.PoolsConfig{}, nil, err
	}
	return cfg, logger, nil
}

func fetchPools(ctx context.Context, cfg config.PoolSourceConfig, logger *zap.Logger) ([]model.Pool, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	src, err := openPoolSource(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	pools, err := src.provider.Pools(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch pools: %w", err)
	}
	return pools, nil
}

func runPoolsList(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadPoolsCmd(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pools, err := fetchPools(ctx, cfg.Pools, logger)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), cfg.Out, pools)
}

func runPoolsSnapshot(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadPoolsCmd(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pools, err := fetchPools(ctx, cfg.Pools, logger)
	if err != nil {
		return err
	}

	snapshot := storage.NewJsonlStorage(cfg.Out)
	var sink storage.PoolSink = snapshot
	if err := sink.PutPools(ctx, pools); err != nil {
		return err
	}
	logger.Info("snapshot written", zap.String("path", snapshot.Path()), zap.Int("pools", len(pools)))
	return nil
}

func runPoolsImport(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadPoolsCmd(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if cfg.Pools.PGDSN == "" {
		return fmt.Errorf("pg-dsn is required")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	data, err := readInput(cmd.InOrStdin(), cfg.In)
	if err != nil {
		return err
	}
	pairs, err := decodePairs(data)
	if err != nil {
		return err
	}

	store, err := postgres.NewStore(ctx, cfg.Pools.PGDSN)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Ping(ctx); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}
	if err := store.EnsureSchema(ctx); err != nil {
		return err
	}
	if err := store.UpsertPairs(ctx, pairs); err != nil {
		return err
	}
	logger.Info("pairs imported", zap.Int("pairs", len(pairs)))
	return nil
}

func runPoolsDisable(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadPoolsCmd(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if cfg.Pools.PGDSN == "" {
		return fmt.Errorf("pg-dsn is required")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := postgres.NewStore(ctx, cfg.Pools.PGDSN)
	if err != nil {
		return err
	}
	defer store.Close()

	found, err := store.DisablePair(ctx, args[0])
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("pair %s is not registered", args[0])
	}
	logger.Info("pair disabled", zap.String("address", args[0]))
	return nil
}

// decodePairs accepts a JSON array or one pair per line.
func decodePairs(data []byte) ([]model.PairRef, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil, fmt.Errorf("no pairs in input")
	}

	var pairs []model.PairRef
	if strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal([]byte(trimmed), &pairs); err != nil {
			return nil, fmt.Errorf("decode pairs: %w", err)
		}
	} else {
		for i, line := range strings.Split(trimmed, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			var pair model.PairRef
			if err := json.Unmarshal([]byte(line), &pair); err != nil {
				return nil, fmt.Errorf("decode pair line %d: %w", i+1, err)
			}
			pairs = append(pairs, pair)
		}
	}

	for _, pair := range pairs {
		if err := pair.Validate(); err != nil {
			return nil, err
		}
	}
	return pairs, nil
}

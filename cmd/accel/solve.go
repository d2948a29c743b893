package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dexAccel/internal/annealer"
	"dexAccel/internal/arbitrage"
	"dexAccel/internal/compare"
	"dexAccel/internal/config"
	"dexAccel/internal/liquidation"
	"dexAccel/internal/model"
	"dexAccel/internal/poolsource"
	"dexAccel/internal/schedule"
)

func newSolveCmd() *cobra.Command {
	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "Run one solver on a JSON request and print the comparison",
	}
	solveCmd.PersistentFlags().String("in", "-", "request JSON file (- for stdin)")
	solveCmd.PersistentFlags().String("out", "", "response file (default stdout)")
	solveCmd.PersistentFlags().String("annealer-url", "", "JSON-RPC annealer endpoint (arbitrage only)")
	solveCmd.PersistentFlags().Duration("annealer-timeout", 250*time.Millisecond, "annealer call timeout")
	solveCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	solveCmd.AddCommand(&cobra.Command{
		Use:   "arbitrage",
		Short: "Find the best multi-hop route",
		Args:  cobra.NoArgs,
		RunE: solveRunner(func(ctx context.Context, data []byte, opts []compare.Option) (any, error) {
			var req model.ArbitrageRequest
			if err := json.Unmarshal(data, &req); err != nil {
				return nil, fmt.Errorf("decode arbitrage request: %w", err)
			}
			if len(req.Pools) == 0 {
				req.Pools = poolsource.DemoPools()
			}
			if err := req.Validate(); err != nil {
				return nil, err
			}
			return arbitrage.Solve(ctx, req, opts...), nil
		}),
	})
	solveCmd.AddCommand(&cobra.Command{
		Use:   "scheduler",
		Short: "Pack orders into conflict-free slots",
		Args:  cobra.NoArgs,
		RunE: solveRunner(func(ctx context.Context, data []byte, _ []compare.Option) (any, error) {
			var req model.SchedulerRequest
			if err := json.Unmarshal(data, &req); err != nil {
				return nil, fmt.Errorf("decode scheduler request: %w", err)
			}
			if err := req.Validate(); err != nil {
				return nil, err
			}
			return schedule.Solve(ctx, req), nil
		}),
	})
	solveCmd.AddCommand(&cobra.Command{
		Use:   "liquidation",
		Short: "Rank positions for liquidation",
		Args:  cobra.NoArgs,
		RunE: solveRunner(func(ctx context.Context, data []byte, _ []compare.Option) (any, error) {
			var req model.LiquidationRequest
			if err := json.Unmarshal(data, &req); err != nil {
				return nil, fmt.Errorf("decode liquidation request: %w", err)
			}
			if err := req.Validate(); err != nil {
				return nil, err
			}
			return liquidation.Solve(ctx, req), nil
		}),
	})

	return solveCmd
}

type solveFunc func(ctx context.Context, data []byte, opts []compare.Option) (any, error)

func solveRunner(fn solveFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		cfgFile, _ := cmd.Flags().GetString("config")
		cfg, err := config.LoadSolve(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}

		logger, err := newLogger(cfg.LogLevel)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		data, err := readInput(cmd.InOrStdin(), cfg.In)
		if err != nil {
			return err
		}

		var opts []compare.Option
		if cfg.AnnealerURL != "" {
			probe, err := annealer.Dial(ctx, cfg.AnnealerURL, logger)
			if err != nil {
				logger.Warn("annealer unavailable, probe disabled", zap.Error(err))
			} else {
				defer probe.Close()
				opts = append(opts, compare.WithProbe(probe, cfg.AnnealerTimeout))
			}
		}

		resp, err := fn(ctx, data, opts)
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), cfg.Out, resp)
	}
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func writeOutput(stdout io.Writer, path string, v any) error {
	w := stdout
	if path != "" && path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		defer f.Close()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

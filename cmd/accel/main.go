package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "accel",
		Short:        "DEX decision-support solvers with baseline comparison",
		SilenceUsage: true,
		Version:      version,
	}

	root.PersistentFlags().String("config", "", "config file path")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the solver HTTP API",
		RunE:  runServe,
	}
	serveCmd.Flags().String("addr", ":8000", "listen address")
	serveCmd.Flags().StringSlice("cors-origins", nil, "allowed CORS origins (comma-separated)")
	addPoolSourceFlags(serveCmd)
	serveCmd.Flags().Int("refresh-retries", 2, "retries per background pool refresh")
	serveCmd.Flags().Duration("refresh-backoff", 500*time.Millisecond, "initial refresh retry backoff")
	serveCmd.Flags().String("annealer-url", "", "JSON-RPC annealer endpoint (optional)")
	serveCmd.Flags().Duration("annealer-timeout", 250*time.Millisecond, "annealer call timeout")
	serveCmd.Flags().Duration("read-timeout", 10*time.Second, "HTTP read timeout")
	serveCmd.Flags().Duration("write-timeout", 30*time.Second, "HTTP write timeout")
	serveCmd.Flags().Duration("idle-timeout", 60*time.Second, "HTTP idle timeout")
	serveCmd.Flags().Duration("shutdown-timeout", 10*time.Second, "graceful shutdown timeout")
	serveCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")
	root.AddCommand(serveCmd)

	root.AddCommand(newSolveCmd())
	root.AddCommand(newPoolsCmd())

	networkCmd := &cobra.Command{
		Use:   "network",
		Short: "Print RPC network status",
		RunE:  runNetwork,
	}
	networkCmd.Flags().String("rpc", "", "RPC URL")
	networkCmd.Flags().Duration("timeout", 5*time.Second, "status query timeout")
	networkCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")
	root.AddCommand(networkCmd)

	return root
}

func addPoolSourceFlags(cmd *cobra.Command) {
	cmd.Flags().String("pool-source", "static", "pool source: static, file or chain")
	cmd.Flags().String("pool-file", "", "pool snapshot file (JSON array or JSONL)")
	cmd.Flags().String("rpc", "", "RPC URL for chain pools and network status")
	cmd.Flags().StringSlice("pairs", nil, "pair addresses to poll (comma-separated)")
	cmd.Flags().Int("pair-fee-bps", 30, "fee in basis points for polled pairs")
	cmd.Flags().String("pair-fees", "", "per-pair fee overrides (comma-separated address=bps)")
	cmd.Flags().String("pg-dsn", "", "Postgres DSN of the pair registry")
	cmd.Flags().String("redis-url", "", "Redis URL for a shared pool cache (optional)")
	cmd.Flags().Duration("pool-cache-ttl", 30*time.Second, "pool cache TTL and refresh interval")
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

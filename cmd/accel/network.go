package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"dexAccel/internal/chain"
	"dexAccel/internal/config"
	"dexAccel/internal/network"
)

func runNetwork(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadNetwork(cfgFile, cmd.Flags())
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

	var reader network.ChainReader
	if cfg.RPCURL != "" {
		client, err := chain.NewClient(ctx, cfg.RPCURL)
		if err != nil {
			return err
		}
		defer client.Close()
		reader = client
	}

	status := network.NewStatusProvider(reader, cfg.Timeout, logger).Status(ctx)
	return writeOutput(cmd.OutOrStdout(), "", status)
}

package main

import (
	"context"
	"os/signal"
	"syscall"

	"autoban/internal/config"
	"autoban/internal/roster"
	"autoban/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func dedupeCommand(cfg *config.Config) *cobra.Command {
	var dumpPath string

	cmd := &cobra.Command{
		Use:   "dedupe",
		Short: "Normalizes the comma-separated ID dump file in place",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			stats, err := roster.RewriteIDDump(ctx, dumpPath)
			if err != nil {
				logger.Fatal(ctx, "could not deduplicate ID dump", zap.Error(err))
			}

			logger.Info(ctx, "deduplication finished",
				zap.Int("original", stats.Original),
				zap.Int("unique", stats.Unique),
				zap.Bool("rewritten", stats.Rewritten))
		},
	}

	cmd.Flags().StringVar(&dumpPath, "id-dump", cfg.Files.IDDump, "Comma-separated user ID dump file")

	return cmd
}

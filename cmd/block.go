package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"autoban/internal/config"
	"autoban/internal/moderation"
	"autoban/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func blockCommand(cfg *config.Config) *cobra.Command {
	var (
		exportPath    string
		dumpPath      string
		processedPath string
		sessionPath   string
	)

	cmd := &cobra.Command{
		Use:   "block",
		Short: "Blocks every loaded user at the account level",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			users, processed := loadRoster(ctx, exportPath, dumpPath, processedPath)

			client := getClient(ctx, cfg)
			authenticate(ctx, client, sessionPath)

			start := time.Now()
			summary, err := moderation.New(client, moderation.NewOptions(cfg)).BlockAll(ctx, users, processed)
			logSummary(ctx, "block", summary, time.Since(start))
			if err != nil {
				logger.Fatal(ctx, "block pass did not finish, run again to resume", zap.Error(err))
			}
		},
	}

	cmd.Flags().StringVar(&exportPath, "export", cfg.Files.Export, "Group export JSON file")
	cmd.Flags().StringVar(&dumpPath, "id-dump", cfg.Files.IDDump, "Comma-separated user ID dump file")
	cmd.Flags().StringVar(&processedPath, "processed", cfg.Files.ProcessedBlocks, "Processed user IDs file")
	cmd.Flags().StringVar(&sessionPath, "session", cfg.Files.Session, "Session cookie file")

	return cmd
}

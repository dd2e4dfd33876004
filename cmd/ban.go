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

// logSummary reports the outcome counts of one moderation pass.
func logSummary(ctx context.Context, action string, summary moderation.Summary, elapsed time.Duration) {
	logger.Info(ctx, action+" pass finished",
		zap.Int("total", summary.Total),
		zap.Int("done", summary.Done),
		zap.Int("already", summary.Already),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed),
		zap.Duration("elapsed", elapsed))
}

func banCommand(cfg *config.Config) *cobra.Command {
	var (
		exportPath    string
		dumpPath      string
		processedPath string
		sessionPath   string
	)

	cmd := &cobra.Command{
		Use:   "ban",
		Short: "Bans every loaded user from the configured group",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if cfg.Group.ID == "" {
				logger.Fatal(ctx, "no group configured, set VRC_GROUP_ID or group.id")
			}

			users, processed := loadRoster(ctx, exportPath, dumpPath, processedPath)

			client := getClient(ctx, cfg)
			authenticate(ctx, client, sessionPath)

			start := time.Now()
			summary, err := moderation.New(client, moderation.NewOptions(cfg)).BanAll(ctx, users, processed)
			logSummary(ctx, "ban", summary, time.Since(start))
			if err != nil {
				logger.Fatal(ctx, "ban pass did not finish, run again to resume", zap.Error(err))
			}
		},
	}

	cmd.Flags().StringVar(&exportPath, "export", cfg.Files.Export, "Group export JSON file")
	cmd.Flags().StringVar(&dumpPath, "id-dump", cfg.Files.IDDump, "Comma-separated user ID dump file")
	cmd.Flags().StringVar(&processedPath, "processed", cfg.Files.ProcessedBans, "Processed user IDs file")
	cmd.Flags().StringVar(&sessionPath, "session", cfg.Files.Session, "Session cookie file")

	return cmd
}

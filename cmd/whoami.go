package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"autoban/internal/config"

	"github.com/spf13/cobra"
)

func whoamiCommand(cfg *config.Config) *cobra.Command {
	var sessionPath string

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Authenticates and prints the logged-in account",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			client := getClient(ctx, cfg)
			account := authenticate(ctx, client, sessionPath)

			fmt.Printf("%s (%s)\n", account.DisplayName, account.ID)
		},
	}

	cmd.Flags().StringVar(&sessionPath, "session", cfg.Files.Session, "Session cookie file")

	return cmd
}

// Package main provides the CLI entrypoint for the VRChat moderation tool.
// It wires subcommands (ban, block, dedupe, whoami), loads configuration, and
// initializes logging.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"

	"autoban/internal/auth"
	"autoban/internal/config"
	"autoban/internal/roster"
	"autoban/pkg/domain"
	"autoban/pkg/logger"
	"autoban/pkg/store/jsonfile"
	"autoban/pkg/vrc"
	"autoban/pkg/vrc/vrcapi"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// getClient creates the VRChat API client using configuration values. When
// the password is absent from configuration it is prompted for interactively,
// so credentials never have to live on disk.
func getClient(ctx context.Context, cfg *config.Config) vrc.Client {
	password := cfg.Credentials.Password
	if password == "" {
		var err error
		password, err = auth.ReadPassword("Password: ")
		if err != nil {
			logger.Fatal(ctx, "could not read password", zap.Error(err))
		}
	}

	return vrcapi.New(&http.Client{Timeout: cfg.API.Timeout}, vrcapi.Options{
		Username:  cfg.Credentials.Username,
		Password:  password,
		UserAgent: cfg.API.UserAgent,
	})
}

// authenticate runs the login flow against the session store at sessionPath
// and returns the authenticated account.
func authenticate(ctx context.Context, client vrc.Client, sessionPath string) *domain.Account {
	sessions := jsonfile.NewSessionStore(sessionPath)

	account, err := auth.New(client, sessions, auth.NewTerminalPrompter()).Authenticate(ctx)
	if err != nil {
		logger.Fatal(ctx, "authentication failed", zap.Error(err))
	}

	return account
}

// loadRoster loads the users to moderate and the processed set tracking which
// of them are already handled.
func loadRoster(ctx context.Context, exportPath string, dumpPath string, processedPath string) ([]domain.User, *jsonfile.ProcessedSet) {
	users, err := roster.Load(ctx, exportPath, dumpPath)
	if err != nil {
		logger.Fatal(ctx, "could not load users", zap.Error(err))
	}
	if len(users) == 0 {
		logger.Fatal(ctx, "no users to process, check the input files",
			zap.String("export", exportPath), zap.String("idDump", dumpPath))
	}

	processed := jsonfile.NewProcessedSet(processedPath)
	if err := processed.Load(ctx); err != nil {
		logger.Fatal(ctx, "could not load processed set", zap.Error(err))
	}

	logger.Info(ctx, "roster loaded",
		zap.Int("users", len(users)), zap.Int("alreadyProcessed", processed.Len()))

	return users, processed
}

// main sets up the root Cobra command, loads configuration and logging, and
// registers subcommands before executing the CLI.
func main() {
	rootCmd := &cobra.Command{
		Use: "autoban",
	}

	// there is no way to access flags before command execution in cobra.
	// configPath here is parsed using the standard flags package.
	// following line is just added to prevent errors when Cobra is parsing the flags.
	rootCmd.PersistentFlags().StringP("config", "c", "config.yml", "Config File Path")

	configPath := flag.String("c", "config.yml", "The config file path")
	flag.Parse()

	log.Println("loading config ...")
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("could not load config file", err)
	}

	if err := logger.SetupWithFile(cfg.Environment, cfg.Files.Log); err != nil {
		log.Fatal("could not set up logging", err)
	}

	ctx := context.Background()

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			_ = logger.Get(ctx).Sync()

			panic(p)
		}
	}()

	rootCmd.AddCommand(
		banCommand(cfg),
		blockCommand(cfg),
		dedupeCommand(cfg),
		whoamiCommand(cfg),
	)

	err = rootCmd.Execute()
	_ = logger.Get(ctx).Sync()
	if err != nil {
		os.Exit(1) //nolint: gocritic
	}
}

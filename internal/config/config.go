package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents the application configuration structure.
// It contains the VRChat credentials, the moderation target, API client
// behavior and the default locations of the state files.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	// Credentials are the VRChat account credentials used for login when no
	// stored session is usable. An empty password triggers an interactive prompt.
	Credentials struct {
		// Username is the VRChat account name or email
		Username string `env:"VRC_USERNAME" yaml:"username"`
		// Password for the account; leave empty to be prompted
		Password string `env:"VRC_PASSWORD" yaml:"password"`
	} `yaml:"credentials"`

	// Group identifies the VRChat group that ban actions target
	Group struct {
		// ID is the group identifier (grp_...)
		ID string `env:"VRC_GROUP_ID" yaml:"id"`
	} `yaml:"group"`

	// API contains settings for the VRChat API client
	API struct {
		// UserAgent is sent on every request; the API rejects anonymous agents
		UserAgent string `env:"API_USER_AGENT" env-default:"VRChatGroupModerationScript/1.0" yaml:"userAgent"`
		// Timeout is the per-request HTTP timeout
		Timeout time.Duration `env:"API_TIMEOUT" env-default:"30s" yaml:"timeout"`
		// ActionDelay is the fixed pause after every moderation call to stay under the API rate limit
		ActionDelay time.Duration `env:"API_ACTION_DELAY" env-default:"60s" yaml:"actionDelay"`
	} `yaml:"api"`

	// Files holds the default paths of the input and state files. Each can be
	// overridden by a CLI flag.
	Files struct {
		// Export is the VRCX group-export JSON file with membership records
		Export string `env:"FILES_EXPORT" env-default:"crashers.json" yaml:"export"`
		// IDDump is the comma-separated text file of user IDs
		IDDump string `env:"FILES_ID_DUMP" env-default:"crasher_id_dump.txt" yaml:"idDump"`
		// ProcessedBans tracks user IDs already group-banned
		ProcessedBans string `env:"FILES_PROCESSED_BANS" env-default:"processed_users.json" yaml:"processedBans"`
		// ProcessedBlocks tracks user IDs already account-blocked
		ProcessedBlocks string `env:"FILES_PROCESSED_BLOCKS" env-default:"processed_blocks.json" yaml:"processedBlocks"`
		// Session stores the authentication cookies between invocations
		Session string `env:"FILES_SESSION" env-default:"vrchat_session.json" yaml:"session"`
		// Log is the log file path; empty disables the file sink
		Log string `env:"FILES_LOG" env-default:"vrchat_moderation.log" yaml:"log"`
	} `yaml:"files"`
}

// Load receives the path for yaml config file and returns a filled Config
// struct. When the file does not exist, configuration is read from the
// environment alone.
func Load(configPath string) (*Config, error) {
	var cfg Config

	if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("could not read config from environment: %w", err)
		}

		return &cfg, nil
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	return &cfg, nil
}

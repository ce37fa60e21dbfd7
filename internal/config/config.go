// Package config loads the settings shared by the command-line tools from
// the environment, with an optional .env file in the working directory.
package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config stores the configuration for the command-line tools.
type Config struct {
	// FioToken is the transaction-export access token. Required.
	FioToken string `mapstructure:"FIOBANK_TOKEN"`

	// FioBaseURL overrides the API root. Empty means the public endpoint.
	FioBaseURL string `mapstructure:"FIOBANK_BASE_URL"`

	// NotionToken and NotionDatabaseID are only needed by sync-notion.
	NotionToken      string `mapstructure:"NOTION_TOKEN"`
	NotionDatabaseID string `mapstructure:"NOTION_DB_ID"`
}

// Load reads configuration from environment variables, merging in a .env
// file when one exists.
func Load() (*Config, error) {
	// A missing .env is fine; the environment may carry everything.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	// Bind envs explicitly so they are picked up without a config file.
	for _, key := range []string{"FIOBANK_TOKEN", "FIOBANK_BASE_URL", "NOTION_TOKEN", "NOTION_DB_ID"} {
		_ = v.BindEnv(key)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.FioToken == "" {
		return nil, fmt.Errorf("config: FIOBANK_TOKEN is required")
	}
	return &cfg, nil
}

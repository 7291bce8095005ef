package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".fundme"
	envPrefix  = "FM"

	feedKindMock = "mock"
	feedKindHTTP = "http"

	journalOff = "off"
)

// loadConfig reads ~/.fundme/config.toml when present. Every key can be
// overridden from the environment, e.g. feed.kind as FM_FEED_KIND.
func loadConfig() (*viper.Viper, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	dataDir := filepath.Join(homeDir, configDir)

	cfg := viper.New()
	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(dataDir)

	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	cfg.SetDefault("ledger.path", filepath.Join(dataDir, "ledger.toml"))
	cfg.SetDefault("ledger.minimum_usd", "50")
	cfg.SetDefault("wallets.path", filepath.Join(dataDir, "wallets.toml"))
	cfg.SetDefault("feed.kind", feedKindMock)
	cfg.SetDefault("feed.path", filepath.Join(dataDir, "price_feed.toml"))
	cfg.SetDefault("feed.url", "")
	cfg.SetDefault("feed.address", "")
	cfg.SetDefault("feed.api_key_ref", "feeds/http/api_key")
	cfg.SetDefault("feed.max_age", "0s")
	cfg.SetDefault("journal.path", filepath.Join(dataDir, "journal.db"))
	cfg.SetDefault("secrets.path", filepath.Join(dataDir, "secrets.toml"))
	cfg.SetDefault("log.level", "warn")

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return cfg, nil
}

func parseLogLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

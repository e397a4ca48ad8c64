package config

import (
	"os"
	"strconv"

	"coarank/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Ranking  RankingConfig
	Paths    PathConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL     string
	Enabled bool
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// RankingConfig holds the ranking-engine defaults. All values can be
// overridden per request through Options.
type RankingConfig struct {
	TopK          int
	PassTwoWidth  int
	PassTwoWork   int // worker-pool cap for Pass 2
	UseMETTCGate  bool
	ChainMaxDepth int
}

// PathConfig holds file system paths
type PathConfig struct {
	DataWorkbook string // optional Excel workbook with tabular inputs
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database: DatabaseConfig{
			URL:     os.Getenv("DATABASE_URL"),
			Enabled: os.Getenv("DATABASE_URL") != "",
		},
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
		Ranking: RankingConfig{
			TopK:          getEnvIntOrDefault("RANK_TOP_K", 3),
			PassTwoWidth:  getEnvIntOrDefault("RANK_PASS_TWO_WIDTH", 5),
			PassTwoWork:   getEnvIntOrDefault("RANK_PASS_TWO_WORKERS", 5),
			UseMETTCGate:  getEnvBoolOrDefault("RANK_USE_METTC_GATE", true),
			ChainMaxDepth: getEnvIntOrDefault("RANK_CHAIN_MAX_DEPTH", 4),
		},
		Paths: PathConfig{
			DataWorkbook: os.Getenv("DATA_WORKBOOK"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(c *Config) error {
	if c.Ranking.TopK < 1 {
		return errors.ConfigInvalid("RANK_TOP_K must be >= 1")
	}
	if c.Ranking.PassTwoWidth < 1 {
		return errors.ConfigInvalid("RANK_PASS_TWO_WIDTH must be >= 1")
	}
	if c.Ranking.ChainMaxDepth < 1 {
		return errors.ConfigInvalid("RANK_CHAIN_MAX_DEPTH must be >= 1")
	}
	return nil
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvIntOrDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBoolOrDefault(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

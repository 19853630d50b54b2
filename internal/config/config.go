// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// DefaultConfigFile is the default configuration filename, looked up
// in the working directory
const DefaultConfigFile = "config.json"

// Load reads configuration from ./config.json, falling back to
// defaults when no config file exists
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")

	// Set defaults
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found, use defaults
			return loadFromDefaults(v)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// LoadFromPath loads configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Database defaults
	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.sqlite_path", "data/bazaar.db")

	// Recommender defaults
	v.SetDefault("recommender.interactions_path", "data/interactions.csv")
	v.SetDefault("recommender.model_path", "data/reco_model.yaml")
	v.SetDefault("recommender.min_cooccurrence", 1)
	v.SetDefault("recommender.top_k", 10)
	v.SetDefault("recommender.default_limit", 6)
	v.SetDefault("recommender.reload_interval_minutes", 60)

	// Log defaults
	v.SetDefault("log.debug", false)
}

// loadFromDefaults creates a config from default values
func loadFromDefaults(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal default config: %w", err)
	}
	return &cfg, nil
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	// Validate database type
	if cfg.Database.Type != "sqlite" && cfg.Database.Type != "postgres" {
		return fmt.Errorf("database.type must be 'sqlite' or 'postgres', got '%s'", cfg.Database.Type)
	}

	// Validate database connection info
	if cfg.Database.Type == "sqlite" && cfg.Database.SQLitePath == "" {
		return fmt.Errorf("database.sqlite_path is required when type is 'sqlite'")
	}
	if cfg.Database.Type == "postgres" && cfg.Database.PostgresDSN == "" {
		return fmt.Errorf("database.postgres_dsn is required when type is 'postgres'")
	}

	// Validate recommender settings
	if cfg.Recommender.InteractionsPath == "" {
		return fmt.Errorf("recommender.interactions_path is required")
	}
	if cfg.Recommender.ModelPath == "" {
		return fmt.Errorf("recommender.model_path is required")
	}
	if cfg.Recommender.MinCooccurrence < 1 {
		return fmt.Errorf("recommender.min_cooccurrence must be at least 1, got %d", cfg.Recommender.MinCooccurrence)
	}
	if cfg.Recommender.TopK < 1 {
		return fmt.Errorf("recommender.top_k must be at least 1, got %d", cfg.Recommender.TopK)
	}
	if cfg.Recommender.DefaultLimit < 1 {
		return fmt.Errorf("recommender.default_limit must be at least 1, got %d", cfg.Recommender.DefaultLimit)
	}
	if cfg.Recommender.ReloadInterval < 1 {
		return fmt.Errorf("recommender.reload_interval_minutes must be at least 1, got %d", cfg.Recommender.ReloadInterval)
	}

	return nil
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Type:       "sqlite",
			SQLitePath: "data/bazaar.db",
		},
		Recommender: RecommenderConfig{
			InteractionsPath: "data/interactions.csv",
			ModelPath:        "data/reco_model.yaml",
			MinCooccurrence:  1,
			TopK:             10,
			DefaultLimit:     6,
			ReloadInterval:   60,
		},
		Log: LogConfig{
			Debug: false,
		},
	}
}

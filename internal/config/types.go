// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

// Config represents the complete application configuration
type Config struct {
	Database    DatabaseConfig    `mapstructure:"database"`
	Recommender RecommenderConfig `mapstructure:"recommender"`
	Log         LogConfig         `mapstructure:"log"`
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Type        string `mapstructure:"type"` // "sqlite" or "postgres"
	SQLitePath  string `mapstructure:"sqlite_path"`
	PostgresDSN string `mapstructure:"postgres_dsn"`
}

// RecommenderConfig holds the recommendation pipeline settings
type RecommenderConfig struct {
	InteractionsPath string `mapstructure:"interactions_path"`
	ModelPath        string `mapstructure:"model_path"`
	MinCooccurrence  int    `mapstructure:"min_cooccurrence"`
	TopK             int    `mapstructure:"top_k"`
	DefaultLimit     int    `mapstructure:"default_limit"`
	ReloadInterval   int    `mapstructure:"reload_interval_minutes"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Debug bool `mapstructure:"debug"`
}

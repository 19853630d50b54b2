// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// Run from an empty directory so no config file is found
	tempDir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tempDir))
	defer func() { _ = os.Chdir(wd) }()

	cfg, err := Load()
	require.NoError(t, err)
	assert.NotNil(t, cfg)

	// Check defaults
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "data/bazaar.db", cfg.Database.SQLitePath)
	assert.Equal(t, "data/interactions.csv", cfg.Recommender.InteractionsPath)
	assert.Equal(t, "data/reco_model.yaml", cfg.Recommender.ModelPath)
	assert.Equal(t, 1, cfg.Recommender.MinCooccurrence)
	assert.Equal(t, 10, cfg.Recommender.TopK)
	assert.Equal(t, 6, cfg.Recommender.DefaultLimit)
	assert.Equal(t, 60, cfg.Recommender.ReloadInterval)
	assert.False(t, cfg.Log.Debug)
}

func TestLoadFromPath(t *testing.T) {
	tests := []struct {
		name        string
		configJSON  string
		expectError bool
		validate    func(*testing.T, *Config)
	}{
		{
			name: "valid sqlite config",
			configJSON: `{
				"database": {
					"type": "sqlite",
					"sqlite_path": "/tmp/test.db"
				},
				"recommender": {
					"min_cooccurrence": 2,
					"top_k": 5
				}
			}`,
			expectError: false,
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "sqlite", cfg.Database.Type)
				assert.Equal(t, "/tmp/test.db", cfg.Database.SQLitePath)
				assert.Equal(t, 2, cfg.Recommender.MinCooccurrence)
				assert.Equal(t, 5, cfg.Recommender.TopK)
				// Untouched sections keep defaults
				assert.Equal(t, 6, cfg.Recommender.DefaultLimit)
			},
		},
		{
			name: "valid postgres config",
			configJSON: `{
				"database": {
					"type": "postgres",
					"postgres_dsn": "host=localhost user=bazaar dbname=bazaar"
				}
			}`,
			expectError: false,
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "postgres", cfg.Database.Type)
			},
		},
		{
			name: "invalid database type",
			configJSON: `{
				"database": {
					"type": "mysql"
				}
			}`,
			expectError: true,
		},
		{
			name: "postgres without dsn",
			configJSON: `{
				"database": {
					"type": "postgres"
				}
			}`,
			expectError: true,
		},
		{
			name: "zero top_k",
			configJSON: `{
				"recommender": {
					"top_k": 0
				}
			}`,
			expectError: true,
		},
		{
			name: "negative min_cooccurrence",
			configJSON: `{
				"recommender": {
					"min_cooccurrence": -1
				}
			}`,
			expectError: true,
		},
		{
			name: "zero reload interval",
			configJSON: `{
				"recommender": {
					"reload_interval_minutes": 0
				}
			}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.configJSON), 0644))

			cfg, err := LoadFromPath(path)
			if tt.expectError {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestLoadFromPath_MissingFile(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NotNil(t, cfg)
	assert.NoError(t, validate(cfg))
}

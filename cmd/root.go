// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bazaarlabs/bazaar/internal/config"
	"github.com/bazaarlabs/bazaar/internal/database"
)

// Execute runs the bazaar CLI
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "bazaar",
		Short:         "Marketplace co-purchase recommender pipeline",
		Long:          "bazaar manages the marketplace recommendation pipeline: initialize the store, export purchase interactions, build the co-occurrence model and query recommendations.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default ./config.json)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newInitDBCmd(&configPath),
		newExtractCmd(&configPath),
		newTrainCmd(&configPath),
		newRecommendCmd(&configPath),
		newWatchCmd(&configPath),
	)

	return rootCmd
}

// app bundles the pieces every command needs
type app struct {
	cfg *config.Config
	log *zap.Logger
}

func loadApp(configPath string) (*app, error) {
	var cfg *config.Config
	var err error

	if configPath != "" {
		cfg, err = config.LoadFromPath(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	var log *zap.Logger
	if cfg.Log.Debug {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return &app{cfg: cfg, log: log}, nil
}

func (a *app) openDB() (*gorm.DB, error) {
	logLevel := logger.Silent
	if a.cfg.Log.Debug {
		logLevel = logger.Warn
	}

	return database.Connect(&database.Config{
		Type:        a.cfg.Database.Type,
		SQLitePath:  a.cfg.Database.SQLitePath,
		PostgresDSN: a.cfg.Database.PostgresDSN,
		LogLevel:    logLevel,
	})
}

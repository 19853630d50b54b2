// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bazaarlabs/bazaar/internal/database"
)

func newInitDBCmd(configPath *string) *cobra.Command {
	var seed bool
	var force bool

	cmd := &cobra.Command{
		Use:   "initdb",
		Short: "Create or migrate the marketplace database schema",
		Long:  "initdb migrates the users/products/orders schema in place. With --seed it resets all tables and inserts a demo marketplace (accounts, catalog, overlapping orders); --force is required to reseed over existing data.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(*configPath)
			if err != nil {
				return err
			}
			defer func() { _ = a.log.Sync() }()

			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer func() { _ = database.Close(db) }()

			if seed {
				if !force {
					if err := checkExistingData(db); err != nil {
						return err
					}
				}
				if err := database.Seed(db); err != nil {
					return err
				}
				a.log.Info("database reset and seeded with demo data")
				return nil
			}

			if err := database.Migrate(db); err != nil {
				return err
			}
			if err := database.CreateIndexes(db); err != nil {
				return err
			}
			a.log.Info("database migrated", zap.String("type", a.cfg.Database.Type))
			return nil
		},
	}

	cmd.Flags().BoolVar(&seed, "seed", false, "drop all tables and insert demo data")
	cmd.Flags().BoolVar(&force, "force", false, "allow --seed to wipe a store that already holds data")

	return cmd
}

// checkExistingData refuses a destructive reseed when the store already
// holds products
func checkExistingData(db *gorm.DB) error {
	if !db.Migrator().HasTable(&database.Product{}) {
		return nil
	}

	var count int64
	if err := db.Model(&database.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count existing products: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("database already holds %d products; use --force to wipe and reseed", count)
	}
	return nil
}

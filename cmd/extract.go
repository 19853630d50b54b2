// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bazaarlabs/bazaar/internal/database"
	"github.com/bazaarlabs/bazaar/internal/interactions"
)

func newExtractCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "extract",
		Short: "Export historical order lines to the interaction CSV",
		Long:  "extract reads every historical order line from the store and fully rewrites the interaction export consumed by 'bazaar train'.",
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

			extractor := interactions.NewExtractor(database.NewCatalog(db), a.log)
			rows, err := extractor.Export(a.cfg.Recommender.InteractionsPath)
			if err != nil {
				return err
			}

			a.log.Info("extraction complete",
				zap.Int("rows", rows),
				zap.String("path", a.cfg.Recommender.InteractionsPath))
			return nil
		},
	}
}

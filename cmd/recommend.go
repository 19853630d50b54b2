// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bazaarlabs/bazaar/internal/artifact"
	"github.com/bazaarlabs/bazaar/internal/database"
	"github.com/bazaarlabs/bazaar/internal/recommend"
)

func newRecommendCmd(configPath *string) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recommend <product-id>",
		Short: "Query recommendations for a product",
		Long:  "recommend loads the persisted model and prints the products the recommender would show next to the given product, falling back to category and trending tiers when the model cannot serve it.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			productID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}

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

			catalog := database.NewCatalog(db)
			store := artifact.NewStore(a.cfg.Recommender.ModelPath)

			recommender := recommend.New(catalog, store, a.log)
			if err := recommender.Reload(); err != nil {
				// Corrupt artifact: keep going in degraded mode, the
				// fallback tiers still work
				a.log.Warn("continuing without model")
			}

			target, err := catalog.ProductByID(uint(productID))
			if err != nil {
				return err
			}
			if target == nil {
				return fmt.Errorf("product %d not found", productID)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "mode: %s\n", recommender.Mode())

			if !cmd.Flags().Changed("limit") {
				limit = a.cfg.Recommender.DefaultLimit
			}
			recos := recommender.Recommend(target, limit)
			if len(recos) == 0 {
				fmt.Fprintln(out, "no recommendations available")
				return nil
			}

			for i, p := range recos {
				fmt.Fprintf(out, "%2d. [%d] %s (%s) ₹%.2f\n", i+1, p.ID, p.Name, p.Category, p.Price)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", recommend.DefaultLimit, "maximum number of recommendations")

	return cmd
}

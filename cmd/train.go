// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/bazaarlabs/bazaar/internal/artifact"
	"github.com/bazaarlabs/bazaar/internal/cooccur"
)

func newTrainCmd(configPath *string) *cobra.Command {
	var minCooccurrence int
	var topK int

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Build the co-occurrence model from the interaction export",
		Long:  "train reads the interaction export written by 'bazaar extract', computes per-product ranked neighbor lists and atomically replaces the persisted model. An empty export leaves any prior model untouched.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(*configPath)
			if err != nil {
				return err
			}
			defer func() { _ = a.log.Sync() }()

			opts := cooccur.Options{
				MinCooccurrence: a.cfg.Recommender.MinCooccurrence,
				TopK:            a.cfg.Recommender.TopK,
			}
			if cmd.Flags().Changed("min-cooccurrence") {
				opts.MinCooccurrence = minCooccurrence
			}
			if cmd.Flags().Changed("top-k") {
				opts.TopK = topK
			}

			store := artifact.NewStore(a.cfg.Recommender.ModelPath)
			_, err = cooccur.Train(a.cfg.Recommender.InteractionsPath, store, opts, a.log)
			if errors.Is(err, cooccur.ErrEmptyInput) {
				// Nothing to train on yet; not a failure
				return nil
			}
			return err
		},
	}

	cmd.Flags().IntVar(&minCooccurrence, "min-cooccurrence", cooccur.DefaultMinCooccurrence, "minimum customer co-occurrence count for a neighbor to be kept")
	cmd.Flags().IntVar(&topK, "top-k", cooccur.DefaultTopK, "maximum neighbors kept per product")

	return cmd
}

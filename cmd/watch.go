// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bazaarlabs/bazaar/internal/artifact"
	"github.com/bazaarlabs/bazaar/internal/database"
	"github.com/bazaarlabs/bazaar/internal/recommend"
	"github.com/bazaarlabs/bazaar/pkg/scheduler"
)

func newWatchCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Run the recommender and keep the model fresh",
		Long:  "watch loads the recommendation model and re-reads the persisted artifact every recommender.reload_interval_minutes, so retrained models are picked up without a restart. Runs until interrupted.",
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

			store := artifact.NewStore(a.cfg.Recommender.ModelPath)
			recommender := recommend.New(database.NewCatalog(db), store, a.log)
			if err := recommender.Reload(); err != nil {
				// Corrupt artifact: serve fallback tiers until the next
				// successful reload
				a.log.Warn("starting without model")
			}

			interval := time.Duration(a.cfg.Recommender.ReloadInterval) * time.Minute
			sched := scheduler.NewScheduler(recommender, interval, a.log)
			sched.Start()
			defer sched.Stop()

			a.log.Info("recommender serving",
				zap.String("mode", string(recommender.Mode())),
				zap.String("model_version", recommender.ModelVersion()),
				zap.Duration("reload_interval", interval))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			<-ctx.Done()

			a.log.Info("shutting down")
			return nil
		},
	}
}

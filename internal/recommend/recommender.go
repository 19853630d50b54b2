// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package recommend serves ranked product recommendations for the
// product-details page, backed by the co-occurrence model with
// category and trending fallbacks.
package recommend

import (
	"errors"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/bazaarlabs/bazaar/internal/artifact"
	"github.com/bazaarlabs/bazaar/internal/database"
)

const (
	// DefaultLimit is the number of recommendations shown on the
	// product-details page
	DefaultLimit = 6

	// MinModelResults is the minimum number of active products the
	// model tier must yield to be used. Shorter lists look sparse in
	// the UI, so the denser category fallback wins instead.
	MinModelResults = 3
)

// Mode is the recommender's operating state with respect to the model
type Mode string

// Operating modes. The mode only changes via Reload.
const (
	ModeLoaded Mode = "model-loaded"
	ModeAbsent Mode = "model-absent"
)

// Catalog is the persistence surface the recommender consults. It is
// satisfied by *database.Catalog.
type Catalog interface {
	ProductsByIDs(ids []uint, activeOnly bool) ([]database.Product, error)
	ProductsByCategory(category string, excludeID uint, limit int) ([]database.Product, error)
	RecentActiveProducts(limit int) ([]database.Product, error)
}

// Recommender answers recommendation queries against an immutable
// in-memory model snapshot. Safe for concurrent use: Reload swaps the
// snapshot atomically, so in-flight requests see either the old or the
// new model, never a mix.
type Recommender struct {
	catalog Catalog
	store   *artifact.Store
	log     *zap.Logger
	model   atomic.Pointer[artifact.Artifact]
}

// New creates a recommender. No model is loaded yet; call Reload.
func New(catalog Catalog, store *artifact.Store, log *zap.Logger) *Recommender {
	return &Recommender{
		catalog: catalog,
		store:   store,
		log:     log,
	}
}

// Reload re-reads the model store and swaps in the result. A missing
// artifact switches the recommender to model-absent mode (logged here,
// once, not per request). Any other load failure keeps the current
// model in place and is returned to the caller.
func (r *Recommender) Reload() error {
	a, err := r.store.Load()
	if errors.Is(err, artifact.ErrNotPresent) {
		r.model.Store(nil)
		r.log.Warn("recommendation model not present, serving fallback tiers only",
			zap.String("path", r.store.Path()))
		return nil
	}
	if err != nil {
		r.log.Error("failed to load recommendation model", zap.Error(err))
		return err
	}

	r.model.Store(a)
	r.log.Info("loaded recommendation model",
		zap.String("version", a.Version),
		zap.Int("products", len(a.Neighbors)))
	return nil
}

// Mode reports the current operating mode
func (r *Recommender) Mode() Mode {
	if r.model.Load() == nil {
		return ModeAbsent
	}
	return ModeLoaded
}

// ModelVersion returns the loaded artifact version, or "" in
// model-absent mode
func (r *Recommender) ModelVersion() string {
	a := r.model.Load()
	if a == nil {
		return ""
	}
	return a.Version
}

// Recommend returns up to limit products to show next to target,
// trying the model tier, then same-category products, then globally
// trending ones. It never returns an error: every failure inside a
// tier counts as a miss for that tier only, and the worst case is an
// empty list. A nil target short-circuits to empty. limit <= 0 uses
// DefaultLimit.
func (r *Recommender) Recommend(target *database.Product, limit int) []database.Product {
	if target == nil {
		return nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	if products, ok := r.modelTier(target, limit); ok {
		return products
	}

	if products := r.categoryTier(target, limit); len(products) > 0 {
		return products
	}

	return r.trendingTier(limit)
}

// modelTier resolves the target's model neighbors to active products,
// preserving the model's ranked order. ok is false when the model is
// absent, has no entry for the target, errors out, or yields fewer
// than MinModelResults active products.
func (r *Recommender) modelTier(target *database.Product, limit int) ([]database.Product, bool) {
	model := r.model.Load()
	if model == nil {
		return nil, false
	}

	neighborIDs := model.NeighborsOf(target.ID)
	if len(neighborIDs) == 0 {
		return nil, false
	}

	products, err := r.catalog.ProductsByIDs(neighborIDs, true)
	if err != nil {
		r.log.Warn("model tier lookup failed",
			zap.Uint("product_id", target.ID),
			zap.Error(err))
		return nil, false
	}

	// The store returns products in arbitrary order; restore the
	// model's ranking
	byID := make(map[uint]database.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	ranked := make([]database.Product, 0, len(products))
	for _, id := range neighborIDs {
		if p, ok := byID[id]; ok {
			ranked = append(ranked, p)
		}
	}

	if len(ranked) < MinModelResults {
		return nil, false
	}

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, true
}

// categoryTier returns recent active products from the target's
// category, excluding the target itself
func (r *Recommender) categoryTier(target *database.Product, limit int) []database.Product {
	products, err := r.catalog.ProductsByCategory(target.Category, target.ID, limit)
	if err != nil {
		r.log.Warn("category tier lookup failed",
			zap.String("category", target.Category),
			zap.Error(err))
		return nil
	}
	return products
}

// trendingTier returns the most recently created active products
// across the whole catalog
func (r *Recommender) trendingTier(limit int) []database.Product {
	products, err := r.catalog.RecentActiveProducts(limit)
	if err != nil {
		r.log.Warn("trending tier lookup failed", zap.Error(err))
		return nil
	}
	return products
}

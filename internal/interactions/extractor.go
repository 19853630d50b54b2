// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package interactions exports historical (customer, product) purchase
// pairs from the order store into a flat CSV consumed by the
// co-occurrence model builder.
package interactions

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"github.com/bazaarlabs/bazaar/internal/database"
)

// ErrDataSourceMissing indicates the order store is unreachable or was
// never migrated. Extraction aborts without touching the export file.
var ErrDataSourceMissing = errors.New("order store missing or not migrated")

// Header columns of the interaction export
var header = []string{"customer_id", "product_id"}

// Extractor reads historical orders and writes the interaction export
type Extractor struct {
	catalog *database.Catalog
	log     *zap.Logger
}

// NewExtractor creates a new extractor over an open catalog
func NewExtractor(catalog *database.Catalog, log *zap.Logger) *Extractor {
	return &Extractor{catalog: catalog, log: log}
}

// Export writes one CSV row per historical order line to path,
// replacing any previous export in full. The file is written to a temp
// file first and renamed into place, so a failed run never leaves a
// partial export behind. Returns the number of rows written.
func (e *Extractor) Export(path string) (int, error) {
	if !e.catalog.HasOrders() {
		return 0, ErrDataSourceMissing
	}

	lines, err := e.catalog.AllOrderLines()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDataSourceMissing, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return 0, fmt.Errorf("failed to create export directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".interactions-*.csv")
	if err != nil {
		return 0, fmt.Errorf("failed to create temp export: %w", err)
	}
	defer func() {
		// No-op after a successful rename
		_ = os.Remove(tmp.Name())
	}()

	w := csv.NewWriter(tmp)
	if err := w.Write(header); err != nil {
		tmp.Close()
		return 0, fmt.Errorf("failed to write export header: %w", err)
	}
	for _, line := range lines {
		record := []string{
			strconv.FormatUint(uint64(line.CustomerID), 10),
			strconv.FormatUint(uint64(line.ProductID), 10),
		}
		if err := w.Write(record); err != nil {
			tmp.Close()
			return 0, fmt.Errorf("failed to write export row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return 0, fmt.Errorf("failed to flush export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("failed to close temp export: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return 0, fmt.Errorf("failed to replace export: %w", err)
	}

	e.log.Info("exported interactions",
		zap.String("path", path),
		zap.Int("rows", len(lines)))

	return len(lines), nil
}

// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cooccur

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bazaarlabs/bazaar/internal/artifact"
)

// Build errors
var (
	// ErrInputMissing indicates the interaction export does not exist;
	// run the extractor first
	ErrInputMissing = errors.New("interaction export not found")

	// ErrEmptyInput indicates the export contains no rows. The build
	// exits early and any previously persisted model stays in place.
	ErrEmptyInput = errors.New("interaction export is empty")
)

// Build parameter defaults
const (
	DefaultMinCooccurrence = 1
	DefaultTopK            = 10
)

// Interaction is one (customer, product) purchase pair from the export
type Interaction struct {
	CustomerID uint
	ProductID  uint
}

// Options configures a model build
type Options struct {
	MinCooccurrence int
	TopK            int
}

// Model maps a product id to its ranked neighbor product ids
type Model map[uint][]uint

// ReadInteractions decodes the interaction export CSV written by the
// extractor. A header row is expected and skipped.
func ReadInteractions(path string) ([]Interaction, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrInputMissing, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open interaction export: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 2

	// Header
	if _, err := r.Read(); err == io.EOF {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read export header: %w", err)
	}

	var interactions []Interaction
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read export row: %w", err)
		}

		customerID, err := strconv.ParseUint(record[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid customer id %q: %w", record[0], err)
		}
		productID, err := strconv.ParseUint(record[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid product id %q: %w", record[1], err)
		}

		interactions = append(interactions, Interaction{
			CustomerID: uint(customerID),
			ProductID:  uint(productID),
		})
	}

	return interactions, nil
}

// Build computes the co-occurrence model from raw interaction pairs.
// Deterministic: the same interactions and options always produce an
// identical model.
func Build(interactions []Interaction, opts Options) Model {
	if opts.MinCooccurrence <= 0 {
		opts.MinCooccurrence = DefaultMinCooccurrence
	}
	if opts.TopK <= 0 {
		opts.TopK = DefaultTopK
	}

	baskets := make(map[uint][]uint)
	for _, in := range interactions {
		baskets[in.CustomerID] = append(baskets[in.CustomerID], in.ProductID)
	}

	graph := NewGraph()
	for _, basket := range baskets {
		graph.AddBasket(basket)
	}

	model := make(Model)
	for _, productID := range graph.Products() {
		neighbors := graph.RankedNeighbors(productID, opts.MinCooccurrence, opts.TopK)
		if len(neighbors) > 0 {
			model[productID] = neighbors
		}
	}

	return model
}

// Train runs the full offline build: read the interaction export,
// compute the model and atomically persist it to the store. On
// ErrEmptyInput nothing is written and any prior artifact survives.
func Train(exportPath string, store *artifact.Store, opts Options, log *zap.Logger) (*artifact.Artifact, error) {
	interactions, err := ReadInteractions(exportPath)
	if err != nil {
		return nil, err
	}

	if len(interactions) == 0 {
		log.Warn("no interactions found, train after some orders are placed",
			zap.String("export", exportPath))
		return nil, ErrEmptyInput
	}

	if opts.MinCooccurrence <= 0 {
		opts.MinCooccurrence = DefaultMinCooccurrence
	}
	if opts.TopK <= 0 {
		opts.TopK = DefaultTopK
	}

	model := Build(interactions, opts)

	a := &artifact.Artifact{
		Version:         uuid.NewString(),
		BuiltAt:         time.Now().UTC(),
		MinCooccurrence: opts.MinCooccurrence,
		TopK:            opts.TopK,
		Neighbors:       model,
	}

	if err := store.Save(a); err != nil {
		return nil, err
	}

	log.Info("saved recommendation model",
		zap.String("path", store.Path()),
		zap.String("version", a.Version),
		zap.Int("products", len(model)),
		zap.Int("interactions", len(interactions)))

	return a, nil
}

// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package artifact persists the co-occurrence model as a single
// versioned YAML blob. Writes always replace the whole artifact;
// reads return either a complete artifact or an error, never a
// partial structure.
package artifact

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrNotPresent indicates no model artifact exists at the store path
var ErrNotPresent = errors.New("model artifact not present")

// Artifact is the durable recommendation model: a mapping from product
// id to its ranked neighbor ids, plus the build parameters that
// produced it
type Artifact struct {
	Version         string          `yaml:"version"`
	BuiltAt         time.Time       `yaml:"built_at"`
	MinCooccurrence int             `yaml:"min_cooccurrence"`
	TopK            int             `yaml:"top_k"`
	Neighbors       map[uint][]uint `yaml:"neighbors"`
}

// NeighborsOf returns the ranked neighbor list for a product, or nil
// when the product has no entry
func (a *Artifact) NeighborsOf(productID uint) []uint {
	if a == nil || a.Neighbors == nil {
		return nil
	}
	return a.Neighbors[productID]
}

// Store reads and writes model artifacts at a fixed path
type Store struct {
	path string
}

// NewStore creates a store for the artifact at path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the artifact location
func (s *Store) Path() string {
	return s.path
}

// Save atomically replaces the persisted artifact. The blob is written
// to a temp file in the same directory and renamed over the old one.
func (s *Store) Save(a *Artifact) error {
	data, err := yaml.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to marshal model artifact: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create artifact directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".model-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temp artifact: %w", err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp artifact: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace artifact: %w", err)
	}

	return nil
}

// Load reads the persisted artifact. Returns ErrNotPresent when no
// artifact has been built yet.
func (s *Store) Load() (*Artifact, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, ErrNotPresent
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read model artifact: %w", err)
	}

	var a Artifact
	if err := yaml.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("failed to decode model artifact: %w", err)
	}

	return &a, nil
}

// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package artifact

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testArtifact() *Artifact {
	return &Artifact{
		Version:         "test-version",
		BuiltAt:         time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		MinCooccurrence: 1,
		TopK:            10,
		Neighbors: map[uint][]uint{
			1: {2, 3},
			2: {1, 3},
			3: {1, 2},
		},
	}
}

func TestStore_RoundTrip(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "model.yaml"))

	saved := testArtifact()
	require.NoError(t, store.Save(saved))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, saved.Version, loaded.Version)
	assert.Equal(t, saved.MinCooccurrence, loaded.MinCooccurrence)
	assert.Equal(t, saved.TopK, loaded.TopK)
	assert.Equal(t, saved.Neighbors, loaded.Neighbors)
	assert.True(t, saved.BuiltAt.Equal(loaded.BuiltAt))
}

func TestStore_LoadNotPresent(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "model.yaml"))

	a, err := store.Load()
	require.ErrorIs(t, err, ErrNotPresent)
	assert.Nil(t, a)
}

func TestStore_SaveReplacesWhole(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "model.yaml"))

	first := testArtifact()
	require.NoError(t, store.Save(first))

	second := testArtifact()
	second.Version = "second"
	second.Neighbors = map[uint][]uint{7: {8}}
	require.NoError(t, store.Save(second))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "second", loaded.Version)
	assert.Equal(t, map[uint][]uint{7: {8}}, loaded.Neighbors)
	// Nothing from the first artifact survives the replace
	assert.NotContains(t, loaded.Neighbors, uint(1))
}

func TestStore_SaveCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "model.yaml")
	store := NewStore(path)

	require.NoError(t, store.Save(testArtifact()))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestStore_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not: [valid: yaml"), 0644))

	store := NewStore(path)
	a, err := store.Load()
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotPresent)
	assert.Nil(t, a)
}

func TestArtifact_NeighborsOf(t *testing.T) {
	a := testArtifact()
	assert.Equal(t, []uint{2, 3}, a.NeighborsOf(1))
	assert.Nil(t, a.NeighborsOf(99))

	var nilArtifact *Artifact
	assert.Nil(t, nilArtifact.NeighborsOf(1))
}

// SPDX-FileCopyrightText: Copyright 2026 Personify Authors
// SPDX-License-Identifier: Apache-2.0

package state

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testRecord(name, version, digest string) *Record {
	return &Record{
		Name:          name,
		Version:       version,
		ContentDigest: digest,
		Source:        SourceRegistry,
		Trust:         TrustCommunity,
		Specifier:     name + "@" + version,
		InstalledAt:   time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestReadMaterializesDefaultDocument(t *testing.T) {
	t.Parallel()

	store := NewStore(filepath.Join(t.TempDir(), "scope"))

	doc, err := store.Read()
	require.NoError(t, err)
	require.Equal(t, SchemaVersion, doc.SchemaVersion)
	require.Empty(t, doc.Personas)

	// The default document is persisted so subsequent reads are stable.
	_, err = os.Stat(store.Path())
	require.NoError(t, err)

	again, err := store.Read()
	require.NoError(t, err)
	require.Equal(t, doc, again)
}

func TestUpsertAndGet(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())

	rec := testRecord("alaric", "1.0.0", "abc123")
	require.NoError(t, store.Upsert("alaric", rec))

	got, err := store.Get("alaric")
	require.NoError(t, err)
	require.Equal(t, rec, got)

	// Upsert replaces.
	rec2 := testRecord("alaric", "2.0.0", "def456")
	require.NoError(t, store.Upsert("alaric", rec2))

	got, err = store.Get("alaric")
	require.NoError(t, err)
	require.Equal(t, "2.0.0", got.Version)
}

func TestRemove(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	require.NoError(t, store.Upsert("alaric", testRecord("alaric", "1.0.0", "abc")))

	removed, err := store.Remove("alaric")
	require.NoError(t, err)
	require.True(t, removed)

	removed, err = store.Remove("alaric")
	require.NoError(t, err)
	require.False(t, removed)
}

func TestListSortedByName(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	require.NoError(t, store.Upsert("zephyr", testRecord("zephyr", "1.0.0", "a")))
	require.NoError(t, store.Upsert("alaric", testRecord("alaric", "1.0.0", "b")))
	require.NoError(t, store.Upsert("morrow", testRecord("morrow", "1.0.0", "c")))

	records, err := store.List()
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, "alaric", records[0].Name)
	require.Equal(t, "morrow", records[1].Name)
	require.Equal(t, "zephyr", records[2].Name)
}

func TestReadRejectsCorruptDocument(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := NewStore(dir)
	require.NoError(t, os.WriteFile(store.Path(), []byte("{broken"), 0o644))

	_, err := store.Read()
	require.Error(t, err)
}

func TestArtifactDir(t *testing.T) {
	t.Parallel()

	store := NewStore("/scope")
	require.Equal(t, filepath.Join("/scope", "personas", "alaric"), store.ArtifactDir("alaric"))
}

package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurihiro0119/course-site/internal/storage"
)

func TestLoad_MissingFileReturnsEmpty(t *testing.T) {
	store := NewJSONStorage(filepath.Join(t.TempDir(), "cache"))

	entries, err := store.Load(context.Background(), storage.NamespaceForem)
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestSaveThenLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewJSONStorage(filepath.Join(t.TempDir(), "cache"))

	want := storage.Entries{
		"alice": json.RawMessage(`{"login":"alice","followers":3}`),
		"https://dev.to/bob/post": json.RawMessage(`{"title":"Post","tags":["go","web"]}`),
		"empty": json.RawMessage(`{}`),
	}
	require.NoError(t, store.Save(ctx, storage.NamespaceGitHubPeople, want))

	got, err := store.Load(ctx, storage.NamespaceGitHubPeople)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSave_OverwritesWholesale(t *testing.T) {
	ctx := context.Background()
	store := NewJSONStorage(t.TempDir())

	require.NoError(t, store.Save(ctx, "ns", storage.Entries{"a": json.RawMessage(`1`)}))
	require.NoError(t, store.Save(ctx, "ns", storage.Entries{"b": json.RawMessage(`2`)}))

	got, err := store.Load(ctx, "ns")
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Contains(t, got, "b")
}

func TestNamespacesAreIndependent(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := NewJSONStorage(dir)

	require.NoError(t, store.Save(ctx, storage.NamespaceForem, storage.Entries{"x": json.RawMessage(`true`)}))

	other, err := store.Load(ctx, storage.NamespaceGitHubPeople)
	require.NoError(t, err)
	assert.Empty(t, other)

	_, err = os.Stat(filepath.Join(dir, "forem.json"))
	assert.NoError(t, err)
}

func TestLoad_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "forem.json"), []byte("{not json"), 0o644))

	_, err := NewJSONStorage(dir).Load(context.Background(), "forem")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse cache forem")
}

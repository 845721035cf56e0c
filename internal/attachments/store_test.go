package attachments_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weekplanner/internal/attachments"
)

func writeSource(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

// TestStore_SaveRoundTrip checks the managed copy is byte-identical to the
// user's original.
func TestStore_SaveRoundTrip(t *testing.T) {
	store, err := attachments.New(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)

	content := []byte("quarterly numbers\n\x00\x01binary tail")
	src := writeSource(t, "report.pdf", content)

	stored, err := store.Save(src, 12)
	require.NoError(t, err)
	assert.Equal(t, "report_12.pdf", filepath.Base(stored))
	assert.Equal(t, store.Dir(), filepath.Dir(stored))

	got, err := os.ReadFile(stored)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

// TestStore_SaveNeverOverwrites attaches the same file twice; the second
// copy gets a fresh name and the first stays intact.
func TestStore_SaveNeverOverwrites(t *testing.T) {
	store, err := attachments.New(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)

	first := writeSource(t, "report.pdf", []byte("first"))
	second := writeSource(t, "report.pdf", []byte("second"))

	firstStored, err := store.Save(first, 12)
	require.NoError(t, err)
	secondStored, err := store.Save(second, 12)
	require.NoError(t, err)

	assert.NotEqual(t, firstStored, secondStored)

	got, err := os.ReadFile(firstStored)
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), got)

	got, err = os.ReadFile(secondStored)
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), got)
}

func TestStore_SaveWithoutTaskID(t *testing.T) {
	store, err := attachments.New(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)

	src := writeSource(t, "photo.jpg", []byte("jpg"))
	stored, err := store.Save(src, 0)
	require.NoError(t, err)

	base := filepath.Base(stored)
	assert.NotEqual(t, "photo.jpg", base)
	assert.Equal(t, ".jpg", filepath.Ext(base))
}

func TestStore_SaveMissingSource(t *testing.T) {
	store, err := attachments.New(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)

	_, err = store.Save(filepath.Join(t.TempDir(), "nope.txt"), 1)
	assert.Error(t, err)

	// Nothing half-written may appear in the managed dir.
	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStore_Remove(t *testing.T) {
	store, err := attachments.New(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)

	src := writeSource(t, "note.txt", []byte("bye"))
	stored, err := store.Save(src, 3)
	require.NoError(t, err)

	require.NoError(t, store.Remove(stored))
	_, err = os.Stat(stored)
	assert.True(t, os.IsNotExist(err))

	// Removing nothing is fine, removing twice is not.
	assert.NoError(t, store.Remove(""))
	assert.Error(t, store.Remove(stored))
}

package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/tui-diff/internal/session"
)

func TestNewStoreForDispatch(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"session.tdiff", "*storage.TextStore"},
		{"session.json", "*storage.JSONStore"},
		{"SESSION.JSON", "*storage.JSONStore"},
		{"noextension", "*storage.TextStore"},
		{"dir.json/session.tdiff", "*storage.TextStore"},
	}

	for _, tt := range tests {
		store := NewStoreFor(tt.path)
		assert.Equalf(t, tt.want, fmt.Sprintf("%T", store), "NewStoreFor(%q)", tt.path)
		assert.Equal(t, tt.path, store.Path())
	}
}

func TestTextStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.tdiff")

	sess := session.NewSession()
	sess.SetFile(session.SideOld, "/tmp/a.txt", "a.txt", "one\ntwo\n")
	sess.SetText(session.SideNew, "one\nthree\n")

	store := NewTextStore(path)
	require.NoError(t, store.Save(sess))
	require.True(t, store.FileExists())

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, sess.ID, loaded.ID)
	assert.Equal(t, "one\ntwo\n", loaded.Old.Text)
	assert.Equal(t, "one\nthree\n", loaded.New.Text)
	assert.Equal(t, "a.txt", loaded.Old.Name)
	assert.False(t, loaded.Dirty(), "panes should load clean")
}

func TestJSONStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	sess := session.NewSession()
	sess.SetText(session.SideOld, "alpha\n")
	sess.SetText(session.SideNew, "beta\n")

	store := NewJSONStore(path)
	require.NoError(t, store.Save(sess))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "\n  \"id\""), "output should be indented with two spaces")

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, sess.ID, loaded.ID)
	assert.Equal(t, "alpha\n", loaded.Old.Text)
	assert.Equal(t, "beta\n", loaded.New.Text)
	assert.False(t, loaded.Dirty(), "dirty flags are not persisted")
}

func TestJSONStoreRestoresMissingPanes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"id":"sess_x"}`), 0644))

	loaded, err := NewJSONStore(path).Load()
	require.NoError(t, err)
	require.NotNil(t, loaded.Old)
	require.NotNil(t, loaded.New)
	assert.Equal(t, "old", loaded.Old.Name)
	assert.Equal(t, "new", loaded.New.Name)
}

func TestStoreLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.tdiff")

	store := NewStoreFor(path)
	assert.False(t, store.FileExists())

	_, err := store.Load()
	assert.Error(t, err)
}

func TestStoreLoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := NewJSONStore(path).Load()
	assert.Error(t, err)
}

func TestReadOnlyByFileMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locked.tdiff")

	sess := session.NewSession()
	sess.SetText(session.SideOld, "alpha\n")
	require.NoError(t, NewTextStore(path).Save(sess))
	require.NoError(t, os.Chmod(path, 0400))

	store := NewTextStore(path)
	assert.True(t, store.ReadOnly())

	err := store.Save(sess)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read-only")

	// Loading still works and the flag survives
	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "alpha\n", loaded.Old.Text)
	assert.True(t, store.ReadOnly())
}

func TestReadOnlySnapshotPath(t *testing.T) {
	// Snapshot copies are read-only wherever they sit, even before the
	// file exists
	store := NewStoreFor("/tmp/notes.snap-a1b2c3d4-1724371200.tdiff")
	assert.True(t, store.ReadOnly())

	assert.False(t, NewStoreFor("/tmp/notes.tdiff").ReadOnly())
	assert.False(t, NewStoreFor("").ReadOnly())
}

package database

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillswap/models"
)

func TestFileStoreLoadMissing(t *testing.T) {
	fs := NewFileStore(t.TempDir())
	assert.Nil(t, fs.Load())
}

func TestFileStoreLoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "storage.json"), []byte("{not json"), 0o644))

	fs := NewFileStore(dir)
	assert.Nil(t, fs.Load())
}

func TestFileStoreSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	fs := NewFileStore(dir)

	fs.Save(Snapshot{Courses: []models.Course{{ID: "seed-1", SkillName: "Guitar"}}})
	fs.Flush()

	loaded := NewFileStore(dir).Load()
	require.NotNil(t, loaded)
	require.Len(t, loaded.Courses, 1)
	assert.Equal(t, "seed-1", loaded.Courses[0].ID)
	assert.Equal(t, "Guitar", loaded.Courses[0].SkillName)
}

// Rapid saves within the debounce window coalesce: only the final state
// reaches disk.
func TestFileStoreDebounceCoalesces(t *testing.T) {
	dir := t.TempDir()
	fs := NewFileStore(dir)

	fs.Save(Snapshot{Courses: []models.Course{{ID: "a"}}})
	fs.Save(Snapshot{Courses: []models.Course{{ID: "b"}}})
	fs.Save(Snapshot{Courses: []models.Course{{ID: "c"}, {ID: "d"}}})

	path := filepath.Join(dir, "storage.json")
	require.Eventually(t, func() bool {
		_, err := os.Stat(path)
		return err == nil
	}, time.Second, 10*time.Millisecond)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var snap Snapshot
	require.NoError(t, json.Unmarshal(raw, &snap))
	require.Len(t, snap.Courses, 2)
	assert.Equal(t, "c", snap.Courses[0].ID)
}

func TestFileStoreFlushWithoutPending(t *testing.T) {
	fs := NewFileStore(t.TempDir())
	fs.Flush() // nothing pending, nothing written
	assert.Nil(t, fs.Load())
}

func TestFileStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	fs := NewFileStore(dir)

	fs.Save(Snapshot{})
	fs.Flush()

	_, err := os.Stat(filepath.Join(dir, "storage.json"))
	assert.NoError(t, err)
}

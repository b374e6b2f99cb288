package database

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"skillswap/models"
)

// debounceDelay is the quiet period before a scheduled snapshot hits disk.
// Bursts of mutations within the window coalesce into one write.
const debounceDelay = 150 * time.Millisecond

// Snapshot is the persisted form of the in-memory dataset.
type Snapshot struct {
	Courses     []models.Course     `json:"courses"`
	Enrollments []models.Enrollment `json:"enrollments"`
	Users       []models.User       `json:"users"`
}

// FileStore persists snapshots as a single JSON file. I/O failures are
// logged and swallowed; callers never observe them.
type FileStore struct {
	dir  string
	path string

	mu      sync.Mutex
	timer   *time.Timer
	pending *Snapshot
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{
		dir:  dir,
		path: filepath.Join(dir, "storage.json"),
	}
}

// Load reads the last persisted snapshot. A missing or corrupt file is
// treated as no snapshot.
func (fs *FileStore) Load() *Snapshot {
	raw, err := os.ReadFile(fs.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[SNAPSHOT] load error: %v", err)
		}
		return nil
	}
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		log.Printf("[SNAPSHOT] corrupt snapshot ignored: %v", err)
		return nil
	}
	return &snap
}

// Save schedules a debounced write. A later call within the window
// replaces the pending state, so only the final state is persisted.
func (fs *FileStore) Save(snap Snapshot) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.pending = &snap
	if fs.timer != nil {
		fs.timer.Stop()
	}
	fs.timer = time.AfterFunc(debounceDelay, func() {
		fs.mu.Lock()
		defer fs.mu.Unlock()
		fs.writeLocked()
	})
}

// Flush writes any pending snapshot immediately.
func (fs *FileStore) Flush() {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if fs.timer != nil {
		fs.timer.Stop()
		fs.timer = nil
	}
	fs.writeLocked()
}

func (fs *FileStore) writeLocked() {
	if fs.pending == nil {
		return
	}
	snap := fs.pending
	fs.pending = nil

	if err := os.MkdirAll(fs.dir, 0o755); err != nil {
		log.Printf("[SNAPSHOT] mkdir error: %v", err)
		return
	}
	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		log.Printf("[SNAPSHOT] encode error: %v", err)
		return
	}
	if err := os.WriteFile(fs.path, raw, 0o644); err != nil {
		log.Printf("[SNAPSHOT] save error: %v", err)
	}
}

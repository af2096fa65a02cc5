package export

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no artifact exists for an ID.
var ErrNotFound = fmt.Errorf("artifact not found")

// ErrInvalidID is returned for IDs that are malformed or contain path
// traversal sequences. Checked before any filesystem or database use.
var ErrInvalidID = fmt.Errorf("invalid artifact id")

// Store persists CSV artifacts under collision-resistant IDs so download
// endpoints can retrieve them after the scrape response is sent.
type Store interface {
	Save(ctx context.Context, csvText string) (id string, err error)
	Load(ctx context.Context, id string) (csvText string, err error)
}

// idPattern constrains artifact IDs to filename-safe characters.
var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+\.csv$`)

// NewID generates a timestamp-derived artifact ID with a random suffix for
// collision resistance.
func NewID() string {
	return fmt.Sprintf("results_%d_%s.csv", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// ValidID reports whether an externally-supplied artifact ID is safe to use
// as a filename or path component.
func ValidID(id string) bool {
	if strings.Contains(id, "..") || strings.ContainsAny(id, `/\`) {
		return false
	}
	return idPattern.MatchString(id)
}

// FileStore persists artifacts as files in a single directory, with
// time-based cleanup of expired artifacts.
type FileStore struct {
	dir string
	ttl time.Duration
}

// NewFileStore creates a file-backed store rooted at dir. Artifacts older
// than ttl are removed by Sweep; ttl <= 0 disables expiry.
func NewFileStore(dir string, ttl time.Duration) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create artifact dir: %w", err)
	}
	return &FileStore{dir: dir, ttl: ttl}, nil
}

// Save writes the CSV under a fresh ID and returns it.
func (s *FileStore) Save(_ context.Context, csvText string) (string, error) {
	id := NewID()
	if err := os.WriteFile(filepath.Join(s.dir, id), []byte(csvText), 0o644); err != nil {
		return "", fmt.Errorf("failed to write artifact: %w", err)
	}
	return id, nil
}

// Load reads a stored artifact by ID.
func (s *FileStore) Load(_ context.Context, id string) (string, error) {
	if !ValidID(id) {
		return "", ErrInvalidID
	}
	data, err := os.ReadFile(filepath.Join(s.dir, id))
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to read artifact: %w", err)
	}
	return string(data), nil
}

// Sweep deletes artifacts older than the store TTL.
func (s *FileStore) Sweep() {
	if s.ttl <= 0 {
		return
	}
	cutoff := time.Now().Add(-s.ttl)
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		log.Printf("[store] sweep failed: %v", err)
		return
	}
	for _, entry := range entries {
		if entry.IsDir() || !ValidID(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil {
			log.Printf("[store] failed to remove %s: %v", entry.Name(), err)
		}
	}
}

// StartSweeper runs Sweep on the given interval until ctx is done.
func (s *FileStore) StartSweeper(ctx context.Context, interval time.Duration) {
	if s.ttl <= 0 || interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.Sweep()
			case <-ctx.Done():
				return
			}
		}
	}()
}

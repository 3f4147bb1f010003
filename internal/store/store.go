// Package store caches downloaded thumbnail bytes in BoltDB, fronted by
// an in-memory map. An empty cache dir selects memory-only mode.
package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketThumbnails = []byte("thumbnails")
)

// thumbEntry is the persisted form of one cached image
type thumbEntry struct {
	Data      []byte `json:"data"`
	FetchedAt int64  `json:"fetched_at"`
}

// ThumbnailStore is a byte cache keyed by image URL. Safe for concurrent use.
type ThumbnailStore struct {
	db  *bolt.DB
	now func() time.Time

	mu    sync.RWMutex // Protects memory cache
	cache map[string][]byte
}

// NewThumbnailStore opens the cache for one instance URL.
// Each instance gets its own subdirectory.
func NewThumbnailStore(baseCacheDir, instanceURL string) (*ThumbnailStore, error) {
	if baseCacheDir == "" {
		return &ThumbnailStore{cache: make(map[string][]byte), now: time.Now}, nil
	}

	dir := baseCacheDir
	if instanceURL != "" {
		dir = filepath.Join(baseCacheDir, hashInstanceURL(instanceURL))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "thumbnails.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketThumbnails)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &ThumbnailStore{db: db, cache: make(map[string][]byte), now: time.Now}, nil
}

func hashInstanceURL(instanceURL string) string {
	normalized := strings.TrimRight(strings.ToLower(instanceURL), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

// Persistent reports whether entries survive a restart
func (s *ThumbnailStore) Persistent() bool {
	return s.db != nil
}

func (s *ThumbnailStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get returns cached bytes for url
func (s *ThumbnailStore) Get(url string) ([]byte, bool) {
	s.mu.RLock()
	if data, ok := s.cache[url]; ok {
		s.mu.RUnlock()
		return data, true
	}
	s.mu.RUnlock()

	if s.db == nil {
		return nil, false
	}

	var raw []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketThumbnails)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(url)); v != nil {
			raw = make([]byte, len(v))
			copy(raw, v)
		}
		return nil
	})
	if raw == nil {
		return nil, false
	}

	var entry thumbEntry
	if err := json.Unmarshal(raw, &entry); err != nil || len(entry.Data) == 0 {
		return nil, false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[url] = entry.Data
	s.mu.Unlock()

	return entry.Data, true
}

// Put stores bytes for url
func (s *ThumbnailStore) Put(url string, data []byte) error {
	if url == "" || len(data) == 0 {
		return nil
	}

	s.mu.Lock()
	s.cache[url] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	raw, err := json.Marshal(thumbEntry{Data: data, FetchedAt: s.now().Unix()})
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketThumbnails).Put([]byte(url), raw)
	})
}

// Delete removes one entry
func (s *ThumbnailStore) Delete(url string) {
	s.mu.Lock()
	delete(s.cache, url)
	s.mu.Unlock()

	if s.db == nil {
		return
	}
	s.db.Update(func(tx *bolt.Tx) error {
		if b := tx.Bucket(bucketThumbnails); b != nil {
			b.Delete([]byte(url))
		}
		return nil
	})
}

// Prune drops persisted entries older than maxAge and returns how many went.
// The memory cache only lives for one session and is left alone.
func (s *ThumbnailStore) Prune(maxAge time.Duration) (int, error) {
	if s.db == nil || maxAge <= 0 {
		return 0, nil
	}
	cutoff := s.now().Add(-maxAge).Unix()

	removed := 0
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketThumbnails)
		if b == nil {
			return nil
		}
		var stale [][]byte
		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var entry thumbEntry
			if err := json.Unmarshal(v, &entry); err != nil || entry.FetchedAt < cutoff {
				stale = append(stale, append([]byte(nil), k...))
			}
		}
		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		removed = len(stale)
		return nil
	})
	return removed, err
}

// Clear removes every entry
func (s *ThumbnailStore) Clear() error {
	s.mu.Lock()
	s.cache = make(map[string][]byte)
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketThumbnails); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
			return err
		}
		_, err := tx.CreateBucket(bucketThumbnails)
		return err
	})
}

package internal

import (
	"crypto/md5"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	tt "github.com/gnolang/jsmatch/internal/types"
)

const (
	cacheFileName = "jsmatch_cache.gob"
	defaultMaxAge = 24 * time.Hour
)

type fileMetadata struct {
	Hash         string
	LastModified time.Time
}

type CacheEntry struct {
	Metadata     fileMetadata
	Issues       []tt.Issue
	CreatedAt    time.Time
	LastAccessed time.Time
}

// cacheFile is the on-disk layout of the cache.
type cacheFile struct {
	Entries      map[string]CacheEntry
	Dependencies map[string]string
	Fingerprint  string
}

// Cache stores lint results per file. An entry is valid while the file
// content is unchanged, it is younger than the maximum age, and none of the
// dependency files (typically the configuration) changed.
type Cache struct {
	CacheDir         string
	entries          map[string]CacheEntry
	mutex            sync.RWMutex
	maxAge           time.Duration
	dependencyFiles  []string
	dependencyHashes map[string]string
	fingerprint      string
}

// NewCache opens the cache stored in cacheDir, creating the directory when
// needed. Stored entries are dropped when a dependency changed since they
// were written.
func NewCache(cacheDir string, dependencies ...string) (*Cache, error) {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	cache := &Cache{
		CacheDir:         cacheDir,
		entries:          make(map[string]CacheEntry),
		maxAge:           defaultMaxAge,
		dependencyFiles:  dependencies,
		dependencyHashes: make(map[string]string, len(dependencies)),
	}

	stored, err := cache.load()
	if err != nil {
		return nil, fmt.Errorf("failed to load cache: %w", err)
	}
	if err := cache.updateDependencyHashes(); err != nil {
		return nil, err
	}
	if !cache.sameDependencies(stored) {
		cache.entries = make(map[string]CacheEntry)
	}

	return cache, nil
}

func (c *Cache) path() string {
	return filepath.Join(c.CacheDir, cacheFileName)
}

// load reads the cache file and returns the dependency hashes it was
// written with.
func (c *Cache) load() (map[string]string, error) {
	file, err := os.Open(c.path())
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open cache file: %w", err)
	}
	defer file.Close()

	var stored cacheFile
	if err := gob.NewDecoder(file).Decode(&stored); err != nil {
		return nil, fmt.Errorf("failed to decode cache file: %w", err)
	}
	if stored.Entries != nil {
		c.entries = stored.Entries
	}
	c.fingerprint = stored.Fingerprint
	return stored.Dependencies, nil
}

func (c *Cache) save() error {
	file, err := os.Create(c.path())
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	defer file.Close()

	stored := cacheFile{
		Entries:      c.entries,
		Dependencies: c.dependencyHashes,
		Fingerprint:  c.fingerprint,
	}
	if err := gob.NewEncoder(file).Encode(stored); err != nil {
		return fmt.Errorf("failed to encode cache file: %w", err)
	}
	return nil
}

func (c *Cache) Set(filename string, issues []tt.Issue) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	metadata, err := getFileMetadata(filename)
	if err != nil {
		return fmt.Errorf("failed to get file metadata: %w", err)
	}

	now := time.Now()
	c.entries[filename] = CacheEntry{
		Metadata:     metadata,
		Issues:       issues,
		CreatedAt:    now,
		LastAccessed: now,
	}

	return c.save()
}

func (c *Cache) Get(filename string) ([]tt.Issue, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, exists := c.entries[filename]
	if !exists {
		return nil, false
	}

	if c.isEntryInvalid(filename, entry) {
		delete(c.entries, filename)
		return nil, false
	}

	entry.LastAccessed = time.Now()
	c.entries[filename] = entry

	return entry.Issues, true
}

func (c *Cache) isEntryInvalid(filename string, entry CacheEntry) bool {
	if time.Since(entry.CreatedAt) > c.maxAge {
		return true
	}

	currentMetadata, err := getFileMetadata(filename)
	if err != nil || currentMetadata.Hash != entry.Metadata.Hash {
		return true
	}

	return c.haveDependenciesChanged()
}

func (c *Cache) haveDependenciesChanged() bool {
	for _, file := range c.dependencyFiles {
		hash, err := getFileHash(file)
		if err != nil || hash != c.dependencyHashes[file] {
			return true
		}
	}
	return false
}

func (c *Cache) sameDependencies(stored map[string]string) bool {
	if len(stored) != len(c.dependencyHashes) {
		return false
	}
	for file, hash := range c.dependencyHashes {
		if stored[file] != hash {
			return false
		}
	}
	return true
}

func (c *Cache) updateDependencyHashes() error {
	for _, file := range c.dependencyFiles {
		hash, err := getFileHash(file)
		if err != nil {
			return fmt.Errorf("failed to get hash for %s: %w", file, err)
		}
		c.dependencyHashes[file] = hash
	}
	return nil
}

// SetFingerprint records the rule set the cached results belong to.
// Entries stored under a different fingerprint are dropped.
func (c *Cache) SetFingerprint(fingerprint string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.fingerprint == fingerprint {
		return
	}
	c.fingerprint = fingerprint
	c.entries = make(map[string]CacheEntry)
}

func (c *Cache) SetMaxAge(duration time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.maxAge = duration
}

func (c *Cache) InvalidateAll() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = make(map[string]CacheEntry)
	_ = c.save() // a failed save only costs a recomputation
}

func getFileMetadata(filename string) (fileMetadata, error) {
	file, err := os.Open(filename)
	if err != nil {
		return fileMetadata{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		return fileMetadata{}, fmt.Errorf("failed to calculate hash: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		return fileMetadata{}, fmt.Errorf("failed to get file info: %w", err)
	}

	return fileMetadata{
		Hash:         fmt.Sprintf("%x", hash.Sum(nil)),
		LastModified: info.ModTime(),
	}, nil
}

func getFileHash(filename string) (string, error) {
	metadata, err := getFileMetadata(filename)
	if err != nil {
		return "", err
	}
	return metadata.Hash, nil
}

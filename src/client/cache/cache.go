// Package cache provides an optional response cache for the CLI.
// Entries live in memory and in files under the cache directory so that
// later invocations can reuse them until they expire.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

const fileExt = ".cache"

// Config holds cache configuration
type Config struct {
	Enabled bool
	TTL     time.Duration
	MaxSize int64 // bytes, bounds memory and disk separately
	Dir     string
}

// Entry represents a cached item
type Entry struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Stats describes what is stored on disk
type Stats struct {
	Entries int
	Bytes   int64
}

// Cache is a TTL'd, size-bounded store of response bodies
type Cache struct {
	mu        sync.RWMutex
	memory    map[string]Entry
	ttl       time.Duration
	maxSize   int64
	dir       string
	enabled   bool
	totalSize int64
}

// New creates a cache and its directory, then drops expired files and trims
// the directory to MaxSize
func New(cfg Config) (*Cache, error) {
	c := &Cache{
		memory:  make(map[string]Entry),
		ttl:     cfg.TTL,
		maxSize: cfg.MaxSize,
		dir:     cfg.Dir,
		enabled: cfg.Enabled,
	}
	if c.enabled && c.dir != "" {
		if err := os.MkdirAll(c.dir, 0700); err != nil {
			return nil, err
		}
		c.Cleanup()
	}
	return c, nil
}

// Get retrieves a cached value
func (c *Cache) Get(key string) ([]byte, bool) {
	if !c.enabled {
		return nil, false
	}

	c.mu.RLock()
	entry, ok := c.memory[key]
	c.mu.RUnlock()

	if ok {
		if time.Now().Before(entry.ExpiresAt) {
			return entry.Data, true
		}
		c.Delete(key)
		return nil, false
	}

	return c.getFromFile(key)
}

// Set stores a value in memory and, when a directory is configured, on disk
func (c *Cache) Set(key string, data []byte) {
	if !c.enabled {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	dataSize := int64(len(data))
	if c.maxSize > 0 && dataSize > c.maxSize {
		return
	}

	if old, ok := c.memory[key]; ok {
		c.totalSize -= int64(len(old.Data))
		delete(c.memory, key)
	}

	if c.maxSize > 0 && c.totalSize+dataSize > c.maxSize {
		c.evictOldest(dataSize)
	}

	entry := Entry{
		Data:      data,
		ExpiresAt: time.Now().Add(c.ttl),
	}
	c.memory[key] = entry
	c.totalSize += dataSize
	c.saveToFile(key, entry)
}

// Delete removes a cached value
func (c *Cache) Delete(key string) {
	if !c.enabled {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.memory[key]; ok {
		c.totalSize -= int64(len(entry.Data))
		delete(c.memory, key)
	}
	c.deleteFile(key)
}

// Clear removes all cached values, leaving unrelated files in the directory
func (c *Cache) Clear() error {
	if !c.enabled {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.memory = make(map[string]Entry)
	c.totalSize = 0

	files, err := c.listFiles()
	if err != nil {
		return err
	}
	for _, f := range files {
		if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// Cleanup removes expired and unreadable entries, then evicts the files
// closest to expiry until the directory fits in MaxSize
func (c *Cache) Cleanup() {
	if !c.enabled {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, entry := range c.memory {
		if now.After(entry.ExpiresAt) {
			c.totalSize -= int64(len(entry.Data))
			delete(c.memory, key)
			c.deleteFile(key)
		}
	}

	files, err := c.listFiles()
	if err != nil {
		return
	}

	live := files[:0]
	var diskSize int64
	for _, f := range files {
		if f.invalid || now.After(f.expiresAt) {
			os.Remove(f.path)
			continue
		}
		live = append(live, f)
		diskSize += f.size
	}

	if c.maxSize <= 0 || diskSize <= c.maxSize {
		return
	}
	sort.Slice(live, func(i, j int) bool {
		return live[i].expiresAt.Before(live[j].expiresAt)
	})
	for _, f := range live {
		if diskSize <= c.maxSize {
			break
		}
		if os.Remove(f.path) == nil {
			diskSize -= f.size
		}
	}
}

// Stats reports the entries currently stored on disk
func (c *Cache) Stats() (Stats, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	files, err := c.listFiles()
	if err != nil {
		return Stats{}, err
	}
	var s Stats
	for _, f := range files {
		s.Entries++
		s.Bytes += f.size
	}
	return s, nil
}

// evictOldest removes entries closest to expiry until needed bytes fit.
// Caller holds c.mu.
func (c *Cache) evictOldest(needed int64) {
	for c.totalSize+needed > c.maxSize && len(c.memory) > 0 {
		var oldestKey string
		var oldestTime time.Time
		first := true

		for key, entry := range c.memory {
			if first || entry.ExpiresAt.Before(oldestTime) {
				oldestKey = key
				oldestTime = entry.ExpiresAt
				first = false
			}
		}

		entry := c.memory[oldestKey]
		c.totalSize -= int64(len(entry.Data))
		delete(c.memory, oldestKey)
		c.deleteFile(oldestKey)
	}
}

type cacheFile struct {
	path      string
	size      int64
	expiresAt time.Time
	invalid   bool
}

// listFiles reads every cache file in the directory. Caller holds c.mu.
func (c *Cache) listFiles() ([]cacheFile, error) {
	if c.dir == "" {
		return nil, nil
	}

	dirEntries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var files []cacheFile
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), fileExt) {
			continue
		}
		path := filepath.Join(c.dir, de.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		f := cacheFile{path: path, size: int64(len(data))}
		var entry Entry
		if err := json.Unmarshal(data, &entry); err != nil {
			f.invalid = true
		}
		f.expiresAt = entry.ExpiresAt
		files = append(files, f)
	}
	return files, nil
}

func (c *Cache) getFromFile(key string) ([]byte, bool) {
	if c.dir == "" {
		return nil, false
	}

	filePath := c.filePath(key)
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}

	if time.Now().After(entry.ExpiresAt) {
		os.Remove(filePath)
		return nil, false
	}

	return entry.Data, true
}

func (c *Cache) saveToFile(key string, entry Entry) {
	if c.dir == "" {
		return
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	os.WriteFile(c.filePath(key), data, 0600)
}

func (c *Cache) deleteFile(key string) {
	if c.dir == "" {
		return
	}
	os.Remove(c.filePath(key))
}

// filePath returns the file path for a cache key
func (c *Cache) filePath(key string) string {
	return filepath.Join(c.dir, hashKey(key)+fileExt)
}

// hashKey keeps URLs out of file names
func hashKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

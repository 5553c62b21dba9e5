package fixer

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/yaklabco/phpfix/pkg/fsutil"
)

// CacheEntry is one cached file read: the content bytes plus the
// modification fingerprint taken at read time.
type CacheEntry struct {
	Content []byte
	Info    *fsutil.FileInfo
}

// ContentCache is an LRU cache of file contents keyed by absolute path.
// Entries are immutable once stored; the fixer validates the fingerprint
// before writing back.
type ContentCache struct {
	entries *lru.Cache[string, *CacheEntry]
}

// NewContentCache creates a cache holding up to size entries.
func NewContentCache(size int) (*ContentCache, error) {
	entries, err := lru.New[string, *CacheEntry](size)
	if err != nil {
		return nil, err
	}
	return &ContentCache{entries: entries}, nil
}

// GetOrRead returns the cached entry for path, reading the file on a miss.
func (c *ContentCache) GetOrRead(ctx context.Context, path string) (*CacheEntry, error) {
	if entry, ok := c.entries.Get(path); ok {
		return entry, nil
	}

	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	entry := &CacheEntry{Content: content, Info: info}
	c.entries.Add(path, entry)
	return entry, nil
}

// Invalidate drops the entry for path, if present.
// Called after a successful rewrite so a later read sees the new content.
func (c *ContentCache) Invalidate(path string) {
	c.entries.Remove(path)
}

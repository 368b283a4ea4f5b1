package store

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/siteforge/internal/schema"
)

// FileCache is a Cache backed by a directory of JSON files, one per key.
// An in-memory layer fronts the files; a filesystem watcher drops memory
// entries whose files change externally so a stale copy is never served
// past the next Get.
//
// Every failure path is logged and swallowed: the cache accelerates loads,
// it never blocks them.
type FileCache struct {
	mu      sync.RWMutex
	dir     string
	mem     map[string]*schema.SiteDocument
	watcher *fsnotify.Watcher
	log     logrus.FieldLogger
	done    chan struct{}
}

// FileCacheOption configures a FileCache.
type FileCacheOption func(*FileCache)

// WithCacheLogger sets the diagnostics logger.
func WithCacheLogger(log logrus.FieldLogger) FileCacheOption {
	return func(c *FileCache) {
		c.log = log
	}
}

// NewFileCache creates a cache rooted at dir, creating it if needed.
// The watcher is best-effort: if it cannot start, the cache still works,
// it just re-reads files on every miss.
func NewFileCache(dir string, opts ...FileCacheOption) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	discard := logrus.New()
	discard.SetOutput(io.Discard)

	c := &FileCache{
		dir:  dir,
		mem:  make(map[string]*schema.SiteDocument),
		log:  discard,
		done: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		c.log.WithError(err).Warn("cache watcher unavailable, running unwatched")
		return c, nil
	}
	if err := w.Add(dir); err != nil {
		c.log.WithError(err).Warn("cache watcher cannot watch dir, running unwatched")
		w.Close()
		return c, nil
	}
	c.watcher = w
	go c.watch(w)
	return c, nil
}

// Close stops the watcher. The cache remains usable unwatched.
func (c *FileCache) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.watcher != nil {
		close(c.done)
		c.watcher.Close()
		c.watcher = nil
	}
}

// Get returns the cached document for key, consulting memory first and the
// backing file second.
func (c *FileCache) Get(key string) (*schema.SiteDocument, bool) {
	c.mu.RLock()
	doc, ok := c.mem[key]
	c.mu.RUnlock()
	if ok {
		return doc.Clone(), true
	}

	data, err := os.ReadFile(c.path(key))
	if err != nil {
		if !os.IsNotExist(err) {
			c.log.WithError(err).WithField("key", key).Debug("cache read failed")
		}
		return nil, false
	}

	raw := gjson.GetBytes(data, "document")
	if !raw.Exists() || !schema.ValidateRawDocument([]byte(raw.Raw)) {
		c.log.WithField("key", key).Debug("cache entry malformed, ignoring")
		return nil, false
	}

	doc, err = schema.ParseDocument([]byte(raw.Raw))
	if err != nil {
		c.log.WithError(err).WithField("key", key).Debug("cache entry unparseable, ignoring")
		return nil, false
	}

	c.mu.Lock()
	c.mem[key] = doc
	c.mu.Unlock()
	return doc.Clone(), true
}

// Set stores a document under key. Unrelated fields already present in the
// entry file (annotations written by other tools) survive the write.
func (c *FileCache) Set(key string, doc *schema.SiteDocument) {
	if doc == nil {
		return
	}

	encoded, err := doc.Encode()
	if err != nil {
		c.log.WithError(err).WithField("key", key).Debug("cache encode failed")
		return
	}

	entry, err := os.ReadFile(c.path(key))
	if err != nil {
		entry = []byte("{}")
	}
	entry, err = sjson.SetRawBytes(entry, "document", encoded)
	if err == nil {
		entry, err = sjson.SetBytes(entry, "cached_at", time.Now().UTC().Format(time.RFC3339))
	}
	if err != nil {
		c.log.WithError(err).WithField("key", key).Debug("cache entry build failed")
		return
	}

	if err := os.WriteFile(c.path(key), entry, 0o644); err != nil {
		c.log.WithError(err).WithField("key", key).Debug("cache write failed")
		return
	}

	c.mu.Lock()
	c.mem[key] = doc.Clone()
	c.mu.Unlock()
}

// Invalidate drops the memory entry for key. The backing file is left
// alone.
func (c *FileCache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.mem, key)
	c.mu.Unlock()
}

func (c *FileCache) path(key string) string {
	// Keys are opaque identifiers; flatten anything path-like.
	safe := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(key)
	return filepath.Join(c.dir, safe+".json")
}

// watch invalidates memory entries when their backing files change
// underneath us (another process, manual edits).
func (c *FileCache) watch(w *fsnotify.Watcher) {
	for {
		select {
		case <-c.done:
			return
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			key := strings.TrimSuffix(filepath.Base(ev.Name), ".json")
			c.Invalidate(key)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			c.log.WithError(err).Debug("cache watcher error")
		}
	}
}

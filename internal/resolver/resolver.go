// Package resolver parses FUSE paths of the form "/[device[/album[/photo]]]"
// against a registry, dispatches depth-specific callbacks, and keeps a
// bounded, uniformly-random-eviction cache of previously resolved paths.
package resolver

import (
	"errors"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/zbierak/ipa/internal/catalog"
	"github.com/zbierak/ipa/internal/model"
	"github.com/zbierak/ipa/internal/registry"
)

// MaxCacheSize bounds the number of entries the resolver's path cache may
// hold before it starts evicting.
const MaxCacheSize = 10000

var (
	// ErrInvalidArgument is returned when the path does not start with '/'.
	ErrInvalidArgument = errors.New("resolver: path must be absolute")
	// ErrNotFound is returned when some component of the path does not
	// resolve against the registry.
	ErrNotFound = errors.New("resolver: path component not found")
)

// Callbacks holds the depth-specific handlers invoked by Resolve. Exactly
// one is invoked per successful call, matching the deepest path component
// present. Any field may be left nil.
type Callbacks struct {
	OnRoot   func()
	OnDevice func(cat *catalog.Catalog)
	OnAlbum  func(cat *catalog.Catalog, album *model.Album)
	OnPhoto  func(cat *catalog.Catalog, album *model.Album, photo *model.Photo)
}

type entryKind int

const (
	kindDevice entryKind = iota
	kindAlbum
	kindPhoto
)

type cacheEntry struct {
	kind  entryKind
	cat   *catalog.Catalog
	album *model.Album
	photo *model.Photo
}

// Resolver resolves FUSE paths against a registry, caching prior
// resolutions.
type Resolver struct {
	reg *registry.Registry

	mu    sync.Mutex
	cache map[string]cacheEntry
	keys  []string
}

// New creates a Resolver backed by reg.
func New(reg *registry.Registry) *Resolver {
	return &Resolver{
		reg:   reg,
		cache: make(map[string]cacheEntry),
	}
}

// Resolve parses path and invokes the matching callback in cb. It returns
// ErrInvalidArgument if path does not start with '/', and ErrNotFound if
// some component along the way does not exist.
func (r *Resolver) Resolve(path string, cb Callbacks) error {
	if path == "" || path[0] != '/' {
		return ErrInvalidArgument
	}

	if path == "/" {
		if cb.OnRoot != nil {
			cb.OnRoot()
		}
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, ok := r.cache[path]; ok {
		dispatch(entry, cb)
		return nil
	}

	components := strings.SplitN(path[1:], "/", 3)

	cat, err := r.reg.GetByFSName(components[0])
	if err != nil {
		return ErrNotFound
	}
	if len(components) == 1 {
		if cb.OnDevice != nil {
			cb.OnDevice(cat)
		}
		r.insertLocked(path, cacheEntry{kind: kindDevice, cat: cat})
		return nil
	}

	album, err := cat.GetAlbumByName(components[1])
	if err != nil {
		return ErrNotFound
	}
	if len(components) == 2 {
		if cb.OnAlbum != nil {
			cb.OnAlbum(cat, album)
		}
		r.insertLocked(path, cacheEntry{kind: kindAlbum, cat: cat, album: album})
		return nil
	}

	photo, err := album.GetByFileName(components[2])
	if err != nil {
		return ErrNotFound
	}
	if cb.OnPhoto != nil {
		cb.OnPhoto(cat, album, photo)
	}
	r.insertLocked(path, cacheEntry{kind: kindPhoto, cat: cat, album: album, photo: photo})
	return nil
}

func dispatch(entry cacheEntry, cb Callbacks) {
	switch entry.kind {
	case kindDevice:
		if cb.OnDevice != nil {
			cb.OnDevice(entry.cat)
		}
	case kindAlbum:
		if cb.OnAlbum != nil {
			cb.OnAlbum(entry.cat, entry.album)
		}
	case kindPhoto:
		if cb.OnPhoto != nil {
			cb.OnPhoto(entry.cat, entry.album, entry.photo)
		}
	}
}

// insertLocked inserts entry under key, evicting a uniformly random existing
// entry first if the cache is already at capacity. Callers must hold r.mu.
func (r *Resolver) insertLocked(key string, entry cacheEntry) {
	if _, exists := r.cache[key]; exists {
		r.cache[key] = entry
		return
	}

	if len(r.keys) >= MaxCacheSize {
		victim := rand.IntN(len(r.keys))
		evictKey := r.keys[victim]
		r.keys[victim] = r.keys[len(r.keys)-1]
		r.keys = r.keys[:len(r.keys)-1]
		delete(r.cache, evictKey)
	}

	r.cache[key] = entry
	r.keys = append(r.keys, key)
}

// CacheLen reports the current number of cached entries (used by tests).
func (r *Resolver) CacheLen() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.keys)
}

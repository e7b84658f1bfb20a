package model

import (
	"log"
	"sync"
)

// Album is a named collection of Photos, keyed by file name. Photos are only
// ever added during catalog load; after that an Album is read-only.
type Album struct {
	name string

	mu     sync.RWMutex
	photos map[string]*Photo
}

// NewAlbum creates an empty album. name must be non-empty.
func NewAlbum(name string) (*Album, error) {
	if name == "" {
		return nil, ErrInvalidArgument
	}
	return &Album{name: name, photos: make(map[string]*Photo)}, nil
}

// Name is the album's display name.
func (a *Album) Name() string {
	return a.name
}

// Add inserts photo under its file name. A colliding file name overwrites
// the previous entry and logs a warning, mirroring the original
// implementation's tolerance of duplicate file names within one album.
func (a *Album) Add(photo *Photo) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, exists := a.photos[photo.FileName()]; exists {
		log.Printf("ipa: album %q: overwriting duplicate photo %q", a.name, photo.FileName())
	}
	a.photos[photo.FileName()] = photo
}

// GetByFileName looks up a photo by its file name.
func (a *Album) GetByFileName(name string) (*Photo, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	photo, ok := a.photos[name]
	if !ok {
		return nil, ErrNotFound
	}
	return photo, nil
}

// ForEach invokes cb for each photo in the album until cb returns false.
// Iteration order is unspecified.
func (a *Album) ForEach(cb func(*Photo) bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for _, photo := range a.photos {
		if !cb(photo) {
			return
		}
	}
}

// Len reports the number of photos currently in the album.
func (a *Album) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.photos)
}

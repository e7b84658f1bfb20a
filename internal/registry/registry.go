// Package registry holds the set of loaded device catalogs under unique
// display names, for lookup by the path resolver and the top-level
// directory listing.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/zbierak/ipa/internal/catalog"
)

// ErrNotFound is returned by GetByFSName when no device is registered under
// the given name.
var ErrNotFound = errors.New("registry: device not found")

// Registry maps unique display names to device catalogs.
//
// Display-name uniqueness is enforced at insertion time (AddDatabase): when
// a catalog's own device name collides with one already present, a numeric
// suffix is appended following the "<name> (<n>)" convention, n starting at
// 2 and incrementing past any further collision on the suffixed name too.
type Registry struct {
	mu      sync.RWMutex
	devices map[string]*catalog.Catalog
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{devices: make(map[string]*catalog.Catalog)}
}

// AddDatabase admits cat into the registry and returns the display name it
// was assigned.
func (r *Registry) AddDatabase(cat *catalog.Catalog) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := cat.DeviceName()
	if _, taken := r.devices[name]; !taken {
		r.devices[name] = cat
		return name
	}

	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s (%d)", name, n)
		if _, taken := r.devices[candidate]; !taken {
			r.devices[candidate] = cat
			return candidate
		}
	}
}

// GetByFSName looks up a catalog by its registry display name.
func (r *Registry) GetByFSName(name string) (*catalog.Catalog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cat, ok := r.devices[name]
	if !ok {
		return nil, ErrNotFound
	}
	return cat, nil
}

// ForEach invokes cb for every registered device until cb returns false.
// Iteration order is unspecified.
func (r *Registry) ForEach(cb func(name string, cat *catalog.Catalog) bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for name, cat := range r.devices {
		if !cb(name, cat) {
			return
		}
	}
}

// Names returns the registered display names in sorted order, for stable
// directory listings.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.devices))
	for name := range r.devices {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

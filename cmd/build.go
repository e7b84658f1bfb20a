package cmd

import (
	"log"

	"github.com/zbierak/ipa/internal/catalog"
	"github.com/zbierak/ipa/internal/devsource"
	"github.com/zbierak/ipa/internal/registry"
)

// resolveGVFSDir returns the effective GVFS directory to scan: the
// --gvfs-dir override if set, otherwise the current user's default.
func resolveGVFSDir() string {
	if gvfsDir != "" {
		return gvfsDir
	}
	return devsource.DefaultGVFSDir()
}

// buildRegistry enumerates attached devices and constructs a catalog for
// each. A device whose database cannot be opened or whose schema cannot be
// determined is logged and skipped; it never aborts the whole run.
func buildRegistry() (*registry.Registry, error) {
	devices, err := devsource.Enumerate(resolveGVFSDir())
	if err != nil {
		return nil, err
	}

	reg := registry.New()
	for _, dev := range devices {
		cat, err := catalog.Open(dev.DBPath, dev.DisplayName, dev.RootPath)
		if err != nil {
			log.Printf("ipa: skipping device %q: %v", dev.DisplayName, err)
			continue
		}
		name := reg.AddDatabase(cat)
		log.Printf("ipa: loaded device %q as %q (%d albums)", dev.DisplayName, name, cat.AlbumCount())
	}
	return reg, nil
}

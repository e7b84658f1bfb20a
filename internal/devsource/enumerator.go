// Package devsource enumerates mobile devices attached to the current
// session by scanning the user's GVFS mount namespace. Enumerating devices
// and discovering their unique IDs and human-readable names is outside the
// core's scope; this package provides the minimal real implementation the
// CLI needs to have something concrete to mount.
package devsource

import (
	"os"
	"path/filepath"
	"strings"
)

// Device describes one attached device as discovered under the user's GVFS
// mount namespace.
type Device struct {
	// UID is the device identifier GVFS assigns it (the "host=" suffix of
	// the afc mount directory).
	UID string
	// DisplayName is the human-readable name to show in the filesystem,
	// falling back to UID when no friendlier name is available.
	DisplayName string
	// DBPath is the absolute path to the device's photo-metadata SQLite
	// file.
	DBPath string
	// RootPath is the device's GVFS mount root, under which backing photo
	// files are reachable.
	RootPath string
}

const afcPrefix = "afc:host="

// Enumerate scans gvfsDir (normally
// "/run/user/<uid>/gvfs") for attached Apple devices and
// returns one Device per mount found with a readable photo database.
func Enumerate(gvfsDir string) ([]Device, error) {
	entries, err := os.ReadDir(gvfsDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var devices []Device
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), afcPrefix) {
			continue
		}

		uid := strings.TrimPrefix(entry.Name(), afcPrefix)
		root := filepath.Join(gvfsDir, entry.Name())
		dbRelPath := filepath.Join("PhotoData", "Photos.sqlite")

		dev := Device{
			UID:         uid,
			DisplayName: displayName(uid),
			DBPath:      filepath.Join(root, dbRelPath),
			RootPath:    root,
		}

		// A device's root is only reachable through its billy.Filesystem once
		// GVFS has actually mounted it; stat the photo database through that
		// same abstraction rather than assuming the raw path is already live.
		if _, err := dev.Filesystem().Stat(dbRelPath); err != nil {
			continue
		}

		devices = append(devices, dev)
	}
	return devices, nil
}

// displayName derives a human-readable name for a device uid. Resolving the
// device's actual friendly name requires pairing-record access
// (libimobiledevice/usbmuxd) that is out of this system's scope; the uid
// itself is used as a stable, always-available fallback.
func displayName(uid string) string {
	return uid
}

// DefaultGVFSDir returns the conventional GVFS mount directory for the
// current user, "/run/user/<uid>/gvfs".
func DefaultGVFSDir() string {
	return filepath.Join("/run/user", uidString(), "gvfs")
}

package devsource

import (
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// Filesystem roots d.RootPath as an OS-backed billy.Filesystem. Enumerate
// uses it to check that a device's photo database is reachable.
func (d Device) Filesystem() billy.Filesystem {
	return osfs.New(d.RootPath)
}

// Package fs implements the read-only FUSE adapter: it translates cgofuse
// calls into resolver.Resolve dispatches against a registry.Registry, and
// serves photo bytes straight from each device's backing files.
package fs

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/go-git/go-billy/v5/osfs"
	"golang.org/x/sys/unix"

	"github.com/winfsp/cgofuse/fuse"

	"github.com/zbierak/ipa/internal/catalog"
	"github.com/zbierak/ipa/internal/model"
	"github.com/zbierak/ipa/internal/registry"
	"github.com/zbierak/ipa/internal/resolver"
)

var mounted sync.Once

// PhotoFS implements fuse.FileSystemInterface over a registry of device
// catalogs. At most one PhotoFS may be constructed per process; a second
// call to NewPhotoFS panics, mirroring the original implementation's
// process-wide filesystem singleton.
type PhotoFS struct {
	fuse.FileSystemBase

	reg *registry.Registry
	res *resolver.Resolver

	uid uint32
	gid uint32
}

// NewPhotoFS builds a PhotoFS backed by reg.
func NewPhotoFS(reg *registry.Registry) *PhotoFS {
	bound := true
	mounted.Do(func() { bound = false })
	if bound {
		panic("fs: NewPhotoFS called more than once in this process")
	}

	return &PhotoFS{
		reg: reg,
		res: resolver.New(reg),
		uid: uint32(os.Getuid()),
		gid: uint32(os.Getgid()),
	}
}

// Getattr fills stat for path, returning 0 on success or a negative errno.
func (p *PhotoFS) Getattr(path string, stat *fuse.Stat_t, fh uint64) int {
	*stat = fuse.Stat_t{}

	errCode := -fuse.ENOENT
	err := p.res.Resolve(path, resolver.Callbacks{
		OnRoot: func() {
			p.fillDirStat(stat)
			errCode = 0
		},
		OnDevice: func(cat *catalog.Catalog) {
			errCode = p.statHostPath(stat, cat.RootPath(), ".", true)
		},
		OnAlbum: func(cat *catalog.Catalog, album *model.Album) {
			errCode = p.statHostPath(stat, cat.RootPath(), ".", true)
		},
		OnPhoto: func(cat *catalog.Catalog, album *model.Album, photo *model.Photo) {
			errCode = p.statHostPath(stat, cat.RootPath(), photoRelPath(photo), false)
		},
	})
	if err != nil {
		return -fuse.ENOENT
	}
	return errCode
}

// Opendir validates that path resolves to root, a device, or an album.
func (p *PhotoFS) Opendir(path string) (int, uint64) {
	isDir := false
	err := p.res.Resolve(path, resolver.Callbacks{
		OnRoot:   func() { isDir = true },
		OnDevice: func(*catalog.Catalog) { isDir = true },
		OnAlbum:  func(*catalog.Catalog, *model.Album) { isDir = true },
		OnPhoto:  func(*catalog.Catalog, *model.Album, *model.Photo) { isDir = false },
	})
	if err != nil {
		return -fuse.ENOENT, 0
	}
	if !isDir {
		return -fuse.ENOTDIR, 0
	}
	return 0, 0
}

// Releasedir is a no-op: directories carry no handle state.
func (p *PhotoFS) Releasedir(path string, fh uint64) int {
	return 0
}

// Readdir lists the entries immediately beneath path.
func (p *PhotoFS) Readdir(path string, fill func(name string, stat *fuse.Stat_t, ofst int64) bool, ofst int64, fh uint64) int {
	errCode := -fuse.ENOENT
	notDir := false

	err := p.res.Resolve(path, resolver.Callbacks{
		OnRoot: func() {
			errCode = 0
			emitDirEntries(fill, p.reg.Names())
		},
		OnDevice: func(cat *catalog.Catalog) {
			errCode = 0
			var names []string
			cat.ForEachAlbum(func(a *model.Album) bool {
				names = append(names, a.Name())
				return true
			})
			emitDirEntries(fill, names)
		},
		OnAlbum: func(cat *catalog.Catalog, album *model.Album) {
			errCode = 0
			var names []string
			album.ForEach(func(ph *model.Photo) bool {
				names = append(names, ph.FileName())
				return true
			})
			emitDirEntries(fill, names)
		},
		OnPhoto: func(*catalog.Catalog, *model.Album, *model.Photo) {
			notDir = true
		},
	})
	if err != nil {
		return -fuse.ENOENT
	}
	if notDir {
		return -fuse.ENOTDIR
	}
	return errCode
}

// emitDirEntries feeds "." and ".." followed by names into fill, stopping
// as soon as fill reports the buffer is full (returns false).
func emitDirEntries(fill func(name string, stat *fuse.Stat_t, ofst int64) bool, names []string) {
	if !fill(".", nil, 0) {
		return
	}
	if !fill("..", nil, 0) {
		return
	}
	for _, name := range names {
		if !fill(name, nil, 0) {
			return
		}
	}
}

// Open opens a photo's backing file read-only via a raw host file
// descriptor, returned as fh = fd+1 (0 means "no handle").
func (p *PhotoFS) Open(path string, flags int) (int, uint64) {
	errCode := -fuse.ENOENT
	var fd uint64

	err := p.res.Resolve(path, resolver.Callbacks{
		OnRoot:   func() { errCode = -fuse.EISDIR },
		OnDevice: func(*catalog.Catalog) { errCode = -fuse.EISDIR },
		OnAlbum:  func(*catalog.Catalog, *model.Album) { errCode = -fuse.EISDIR },
		OnPhoto: func(cat *catalog.Catalog, album *model.Album, photo *model.Photo) {
			hostFd, oerr := unix.Open(photoHostPath(cat, photo), unix.O_RDONLY, 0)
			if oerr != nil {
				errCode = -int(oerr.(unix.Errno))
				return
			}
			fd = uint64(hostFd) + 1
			errCode = 0
		},
	})
	if err != nil {
		return -fuse.ENOENT, 0
	}
	return errCode, fd
}

// Read pulls bytes from the host file descriptor stored in fh.
func (p *PhotoFS) Read(path string, buff []byte, ofst int64, fh uint64) int {
	if fh == 0 {
		return -fuse.EISDIR
	}
	fd := int(fh - 1)
	n, err := unix.Pread(fd, buff, ofst)
	if err != nil {
		return -int(err.(unix.Errno))
	}
	return n
}

// Release closes the host file descriptor stored in fh.
func (p *PhotoFS) Release(path string, fh uint64) int {
	if fh == 0 {
		return 0
	}
	fd := int(fh - 1)
	if err := unix.Close(fd); err != nil {
		return -int(err.(unix.Errno))
	}
	return 0
}

func photoHostPath(cat *catalog.Catalog, photo *model.Photo) string {
	return filepath.Join(cat.RootPath(), photo.Location(), photo.FileName())
}

// photoRelPath is photo's path relative to its device root, the form
// billy.Filesystem.Stat expects once rooted at that device's RootPath.
func photoRelPath(photo *model.Photo) string {
	return filepath.Join(photo.Location(), photo.FileName())
}

func (p *PhotoFS) fillDirStat(stat *fuse.Stat_t) {
	stat.Mode = fuse.S_IFDIR | 0500
	stat.Nlink = 2
	stat.Uid = p.uid
	stat.Gid = p.gid
}

// statHostPath stats relPath against the billy.Filesystem rooted at
// rootPath, copies the host file's modification time into stat's access,
// modification and change times unconditionally and
// then overwrites the mode (and, for files, size) to reflect the read-only
// view this filesystem presents (directories 0500, files 0400) regardless
// of the underlying file's actual permission bits.
func (p *PhotoFS) statHostPath(stat *fuse.Stat_t, rootPath, relPath string, isDir bool) int {
	info, err := osfs.New(rootPath).Stat(relPath)
	if err != nil {
		return -fuse.ENOENT
	}

	ts := fuse.NewTimespec(info.ModTime())
	stat.Atim, stat.Mtim, stat.Ctim = ts, ts, ts

	if isDir {
		p.fillDirStat(stat)
		return 0
	}

	stat.Mode = fuse.S_IFREG | 0400
	stat.Nlink = 1
	stat.Size = info.Size()
	stat.Uid = p.uid
	stat.Gid = p.gid
	return 0
}

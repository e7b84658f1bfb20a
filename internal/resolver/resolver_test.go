package resolver

import (
	"database/sql"
	"path/filepath"
	"strconv"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zbierak/ipa/internal/catalog"
	"github.com/zbierak/ipa/internal/model"
	"github.com/zbierak/ipa/internal/registry"
)

func newTestRegistry(t *testing.T) *registry.Registry {
	t.Helper()

	dir := t.TempDir()
	dbPath := filepath.Join(dir, "Photos.sqlite")

	db, err := sql.Open("sqlite", "file:"+dbPath)
	require.NoError(t, err)
	stmts := []string{
		`create table ZGENERICASSET (Z_PK integer primary key, ZFILENAME text, ZDIRECTORY text)`,
		`create table ZGENERICALBUM (Z_PK integer primary key, ZTITLE text, ZKIND integer)`,
		`create table Z_ASSETS (Z_ALBUMS integer, Z_ASSETSFOK integer, Z_ASSETS1 integer)`,
		`insert into ZGENERICALBUM (Z_PK, ZTITLE, ZKIND) values (1, 'Vacation', 2)`,
		`insert into ZGENERICASSET (Z_PK, ZFILENAME, ZDIRECTORY) values (10, 'IMG_0001.JPG', 'DCIM/100APPLE')`,
		`insert into Z_ASSETS (Z_ALBUMS, Z_ASSETSFOK, Z_ASSETS1) values (1, 99, 10)`,
	}
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
	db.Close()

	cat, err := catalog.Open(dbPath, "iPhone", "/run/user/1000/gvfs/afc:host=x")
	require.NoError(t, err)

	reg := registry.New()
	reg.AddDatabase(cat)
	return reg
}

func TestResolve_Root(t *testing.T) {
	r := New(newTestRegistry(t))

	called := false
	err := r.Resolve("/", Callbacks{OnRoot: func() { called = true }})
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, 0, r.CacheLen())
}

func TestResolve_InvalidArgument(t *testing.T) {
	r := New(newTestRegistry(t))
	err := r.Resolve("relative/path", Callbacks{})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestResolve_Device(t *testing.T) {
	r := New(newTestRegistry(t))

	var gotName string
	err := r.Resolve("/iPhone", Callbacks{OnDevice: func(cat *catalog.Catalog) {
		gotName = cat.DeviceName()
	}})
	require.NoError(t, err)
	assert.Equal(t, "iPhone", gotName)
	assert.Equal(t, 1, r.CacheLen())
}

func TestResolve_DeviceNotFound(t *testing.T) {
	r := New(newTestRegistry(t))
	err := r.Resolve("/Android", Callbacks{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolve_Album(t *testing.T) {
	r := New(newTestRegistry(t))

	var gotAlbum string
	err := r.Resolve("/iPhone/Vacation", Callbacks{OnAlbum: func(cat *catalog.Catalog, album *model.Album) {
		gotAlbum = album.Name()
	}})
	require.NoError(t, err)
	assert.Equal(t, "Vacation", gotAlbum)
}

func TestResolve_AlbumNotFound(t *testing.T) {
	r := New(newTestRegistry(t))
	err := r.Resolve("/iPhone/Missing", Callbacks{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolve_Photo(t *testing.T) {
	r := New(newTestRegistry(t))

	var gotFile string
	err := r.Resolve("/iPhone/Vacation/IMG_0001.JPG", Callbacks{OnPhoto: func(cat *catalog.Catalog, album *model.Album, photo *model.Photo) {
		gotFile = photo.FileName()
	}})
	require.NoError(t, err)
	assert.Equal(t, "IMG_0001.JPG", gotFile)
}

func TestResolve_PhotoNotFound(t *testing.T) {
	r := New(newTestRegistry(t))
	err := r.Resolve("/iPhone/Vacation/missing.jpg", Callbacks{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolve_CacheHitBypassesWalk(t *testing.T) {
	r := New(newTestRegistry(t))

	require.NoError(t, r.Resolve("/iPhone/Vacation", Callbacks{}))
	assert.Equal(t, 1, r.CacheLen())

	calls := 0
	require.NoError(t, r.Resolve("/iPhone/Vacation", Callbacks{OnAlbum: func(*catalog.Catalog, *model.Album) {
		calls++
	}}))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, r.CacheLen())
}

func TestCache_EvictionBoundsSize(t *testing.T) {
	r := New(newTestRegistry(t))

	r.mu.Lock()
	for i := 0; i < MaxCacheSize+50; i++ {
		key := "/synthetic/" + strconv.Itoa(i)
		r.insertLocked(key, cacheEntry{kind: kindDevice})
	}
	r.mu.Unlock()

	assert.Equal(t, MaxCacheSize, r.CacheLen())
}

package devsource

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumerate_FindsDeviceWithDatabase(t *testing.T) {
	dir := t.TempDir()
	afcDir := filepath.Join(dir, "afc:host=deadbeef1234")
	photoDataDir := filepath.Join(afcDir, "PhotoData")
	require.NoError(t, os.MkdirAll(photoDataDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(photoDataDir, "Photos.sqlite"), []byte("x"), 0o644))

	// an afc mount with no database must be skipped
	otherDir := filepath.Join(dir, "afc:host=nocamera")
	require.NoError(t, os.MkdirAll(otherDir, 0o755))

	// a non-afc entry must be ignored entirely
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "smb-share"), 0o755))

	devices, err := Enumerate(dir)
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.Equal(t, "deadbeef1234", devices[0].UID)
	assert.Equal(t, "deadbeef1234", devices[0].DisplayName)
	assert.Equal(t, afcDir, devices[0].RootPath)
}

func TestEnumerate_MissingGVFSDir(t *testing.T) {
	devices, err := Enumerate(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Empty(t, devices)
}

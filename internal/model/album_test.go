package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAlbum_InvalidArgument(t *testing.T) {
	_, err := NewAlbum("")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestAlbum_AddAndGet(t *testing.T) {
	album, err := NewAlbum("Vacation")
	require.NoError(t, err)

	photo, err := NewPhoto("IMG_0001.JPG", "DCIM/100APPLE")
	require.NoError(t, err)
	album.Add(photo)

	got, err := album.GetByFileName("IMG_0001.JPG")
	require.NoError(t, err)
	assert.Same(t, photo, got)
	assert.Equal(t, 1, album.Len())
}

func TestAlbum_GetByFileName_NotFound(t *testing.T) {
	album, err := NewAlbum("Vacation")
	require.NoError(t, err)

	_, err = album.GetByFileName("missing.jpg")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAlbum_Add_DuplicateOverwrites(t *testing.T) {
	album, err := NewAlbum("Vacation")
	require.NoError(t, err)

	p1, _ := NewPhoto("IMG_0001.JPG", "DCIM/100APPLE")
	p2, _ := NewPhoto("IMG_0001.JPG", "DCIM/101APPLE")
	album.Add(p1)
	album.Add(p2)

	got, err := album.GetByFileName("IMG_0001.JPG")
	require.NoError(t, err)
	assert.Same(t, p2, got)
	assert.Equal(t, 1, album.Len())
}

func TestAlbum_ForEach_StopsOnFalse(t *testing.T) {
	album, err := NewAlbum("Vacation")
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		p, _ := NewPhoto(string(rune('a'+i))+".jpg", "DCIM")
		album.Add(p)
	}

	seen := 0
	album.ForEach(func(*Photo) bool {
		seen++
		return seen < 2
	})
	assert.Equal(t, 2, seen)
}

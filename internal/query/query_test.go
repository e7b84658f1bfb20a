package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zbierak/ipa/internal/model"
)

func TestBuildAlbum(t *testing.T) {
	album, err := model.NewAlbum("Vacation")
	require.NoError(t, err)
	photo, err := model.NewPhoto("IMG_0001.JPG", "DCIM/100APPLE")
	require.NoError(t, err)
	album.Add(photo)

	node := buildAlbum(album)
	assert.Equal(t, "Vacation", node.Name)
	assert.Equal(t, []string{"IMG_0001.JPG"}, node.Photos)
}

func TestEval_DeviceNames(t *testing.T) {
	tree := Tree{Devices: []DeviceNode{
		{Name: "iPhone", Root: "/root1", Albums: []AlbumNode{{Name: "Vacation", Photos: []string{"a.jpg"}}}},
		{Name: "iPad", Root: "/root2"},
	}}

	results, err := Eval(tree, "$.devices[*].name")
	require.NoError(t, err)
	assert.ElementsMatch(t, []any{"iPhone", "iPad"}, results)
}

func TestEval_PhotosInFirstAlbum(t *testing.T) {
	tree := Tree{Devices: []DeviceNode{
		{Name: "iPhone", Albums: []AlbumNode{{Name: "Vacation", Photos: []string{"a.jpg", "b.jpg"}}}},
	}}

	results, err := Eval(tree, "$.devices[0].albums[0].photos")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.ElementsMatch(t, []any{"a.jpg", "b.jpg"}, results[0])
}

// Package query renders a registry into a plain JSON tree (devices ->
// albums -> photo file names) and evaluates JSON path expressions against
// it, for read-only introspection without mounting a filesystem.
package query

import (
	"github.com/ohler55/ojg/jp"

	"github.com/zbierak/ipa/internal/catalog"
	"github.com/zbierak/ipa/internal/model"
	"github.com/zbierak/ipa/internal/registry"
)

// Tree is the JSON-serialisable shape of a registry snapshot.
type Tree struct {
	Devices []DeviceNode `json:"devices"`
}

// DeviceNode is one device's display name, root path and albums.
type DeviceNode struct {
	Name   string      `json:"name"`
	Root   string      `json:"root"`
	Albums []AlbumNode `json:"albums"`
}

// AlbumNode is one album's name and photo file names.
type AlbumNode struct {
	Name   string   `json:"name"`
	Photos []string `json:"photos"`
}

// Build renders reg into a Tree. Iteration order is display-name sorted
// for devices (via registry.Names) but otherwise follows map order for
// albums/photos, matching the rest of this system's "order unspecified"
// stance.
func Build(reg *registry.Registry) Tree {
	tree := Tree{}
	for _, name := range reg.Names() {
		cat, err := reg.GetByFSName(name)
		if err != nil {
			continue
		}
		tree.Devices = append(tree.Devices, buildDevice(name, cat))
	}
	return tree
}

func buildDevice(name string, cat *catalog.Catalog) DeviceNode {
	node := DeviceNode{Name: name, Root: cat.RootPath()}
	cat.ForEachAlbum(func(a *model.Album) bool {
		node.Albums = append(node.Albums, buildAlbum(a))
		return true
	})
	return node
}

func buildAlbum(a *model.Album) AlbumNode {
	node := AlbumNode{Name: a.Name()}
	a.ForEach(func(p *model.Photo) bool {
		node.Photos = append(node.Photos, p.FileName())
		return true
	})
	return node
}

// Eval parses and evaluates a JSON path expression against tree, returning
// the matched values. tree is first converted to its generic any
// representation (maps/slices) via toAny, since ojg's jp package operates
// on that representation rather than typed structs.
func Eval(tree Tree, path string) ([]any, error) {
	expr, err := jp.ParseString(path)
	if err != nil {
		return nil, err
	}
	return expr.Get(toAny(tree)), nil
}

func toAny(tree Tree) any {
	devices := make([]any, 0, len(tree.Devices))
	for _, d := range tree.Devices {
		albums := make([]any, 0, len(d.Albums))
		for _, a := range d.Albums {
			photos := make([]any, 0, len(a.Photos))
			for _, p := range a.Photos {
				photos = append(photos, p)
			}
			albums = append(albums, map[string]any{
				"name":   a.Name,
				"photos": photos,
			})
		}
		devices = append(devices, map[string]any{
			"name":   d.Name,
			"root":   d.Root,
			"albums": albums,
		})
	}
	return map[string]any{"devices": devices}
}

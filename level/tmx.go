package level

import (
	"fmt"
	"io/fs"
	"math"
	"path"
	"strings"

	"github.com/lafriks/go-tiled"

	"github.com/milk9111/pixelplatformer/common"
	"github.com/milk9111/pixelplatformer/grid"
)

const (
	tmxTileLayer   = "tiles"
	tmxStartGroup  = "PlayerStart"
	tmxTileIDProp  = "tile_id"
	tmxOrderProp   = "order"
	tmxDefaultName = "Tiled Level"
)

// LoadTMX converts a Tiled map into a level. The tile layer named "tiles" is
// used, or the first layer if none has that name. Each tile maps to the
// catalog id in its tile_id property, or to its global id when the property
// is absent. An object in the PlayerStart group sets the start.
func LoadTMX(fsys fs.FS, p string) (Level, error) {
	m, err := tiled.LoadFile(p, tiled.WithFileSystem(fsys))
	if err != nil {
		return Level{}, fmt.Errorf("level: load TMX %s: %w", p, err)
	}
	if len(m.Layers) == 0 {
		return Level{}, fmt.Errorf("level: load TMX %s: no tile layers", p)
	}

	layer := m.Layers[0]
	for _, l := range m.Layers {
		if l.Name == tmxTileLayer {
			layer = l
			break
		}
	}

	rows := make([][]int, m.Height)
	for y := range rows {
		rows[y] = make([]int, m.Width)
		for x := range rows[y] {
			i := y*m.Width + x
			if i >= len(layer.Tiles) {
				continue
			}
			t := layer.Tiles[i]
			if t.IsNil() {
				continue
			}
			id := int(t.Tileset.FirstGID + t.ID)
			if ts, err := t.Tileset.GetTilesetTile(t.ID); err == nil {
				if v := ts.Properties.GetInt(tmxTileIDProp); v != 0 {
					id = v
				}
			}
			rows[y][x] = id
		}
	}
	g, err := grid.FromRows(rows)
	if err != nil {
		return Level{}, fmt.Errorf("level: load TMX %s: %w", p, err)
	}

	stem := strings.TrimSuffix(path.Base(p), path.Ext(p))
	l := Level{
		ID:    stem,
		Name:  stem,
		Grid:  g,
		Start: DefaultStart,
	}
	if l.Name == "" {
		l.Name = tmxDefaultName
	}

	for _, og := range m.ObjectGroups {
		if og.Name != tmxStartGroup {
			continue
		}
		for _, o := range og.Objects {
			l.Start = common.Point{
				X: int(math.Floor(o.X / float64(m.TileWidth))),
				Y: int(math.Floor(o.Y / float64(m.TileHeight))),
			}
			if v := o.Properties.GetInt(tmxOrderProp); v != 0 {
				l.Order = v
			}
			break
		}
	}
	return l, nil
}

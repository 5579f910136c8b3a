// Package grid implements the fixed-size tile grid a level is played on.
//
// A Grid is immutable once built. Editing operations return a new Grid so a
// level in play is never changed underneath the simulation.
package grid

import (
	"errors"
	"fmt"
	"math"

	"github.com/milk9111/pixelplatformer/common"
	"github.com/milk9111/pixelplatformer/tile"
)

// MaxWidth and MaxHeight bound the size of any grid.
const (
	MaxWidth  = 256
	MaxHeight = 256
)

// ErrInvalidDimensions is returned when a grid would have no cells or more
// than MaxWidth by MaxHeight.
var ErrInvalidDimensions = errors.New("grid: invalid dimensions")

// Cell is a tile coordinate.
type Cell struct {
	X, Y int
}

// Grid is a row-major array of tile ids. (0,0) is the top-left cell.
type Grid struct {
	width  int
	height int
	tiles  []tile.ID
}

// New returns an empty grid of the given size.
func New(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 || width > MaxWidth || height > MaxHeight {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return &Grid{
		width:  width,
		height: height,
		tiles:  make([]tile.ID, width*height),
	}, nil
}

// FromRows builds a grid from rows of tile ids. The width is the longest row;
// shorter rows are padded with empty cells. The size is checked before any
// cells are allocated.
func FromRows(rows [][]int) (*Grid, error) {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	g, err := New(width, len(rows))
	if err != nil {
		return nil, err
	}
	for y, row := range rows {
		for x, v := range row {
			g.tiles[y*width+x] = tile.ID(v)
		}
	}
	return g, nil
}

// MustFromRows is FromRows for literal grids in tests and built-in levels.
func MustFromRows(rows [][]int) *Grid {
	g, err := FromRows(rows)
	if err != nil {
		panic(err)
	}
	return g
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

func (g *Grid) PixelWidth() float64  { return float64(g.width * common.TileSize) }
func (g *Grid) PixelHeight() float64 { return float64(g.height * common.TileSize) }

// InBounds reports whether (tx, ty) is a cell of the grid.
func (g *Grid) InBounds(tx, ty int) bool {
	return tx >= 0 && ty >= 0 && tx < g.width && ty < g.height
}

// TileAt returns the id at (tx, ty). Cells outside the grid read as empty so
// that a malformed edge never traps the player.
func (g *Grid) TileAt(tx, ty int) tile.ID {
	if g == nil || !g.InBounds(tx, ty) {
		return tile.Empty
	}
	return g.tiles[ty*g.width+tx]
}

// Describe returns the descriptor of the tile at (tx, ty).
func (g *Grid) Describe(tx, ty int) tile.Descriptor {
	return tile.Describe(g.TileAt(tx, ty))
}

// Solid reports whether the tile at (tx, ty) blocks movement.
func (g *Grid) Solid(tx, ty int) bool {
	return g.Describe(tx, ty).Solid
}

// WorldToTile converts a pixel position into the cell containing it.
func WorldToTile(px, py float64) (int, int) {
	return int(math.Floor(px / common.TileSize)), int(math.Floor(py / common.TileSize))
}

// Span returns the first and last cell index covered by the interval
// [start, start+length). An interval ending exactly on a cell boundary does
// not cover the next cell.
func Span(start, length float64) (int, int) {
	first := int(math.Floor(start / common.TileSize))
	last := int(math.Ceil((start+length)/common.TileSize)) - 1
	if last < first {
		last = first
	}
	return first, last
}

// TilesOverlapping returns every cell whose square intersects r. Cells
// outside the grid are included; they read as empty through TileAt.
func (g *Grid) TilesOverlapping(r common.Rect) []Cell {
	if r.W <= 0 || r.H <= 0 {
		return nil
	}
	x0, x1 := Span(r.X, r.W)
	y0, y1 := Span(r.Y, r.H)
	cells := make([]Cell, 0, (x1-x0+1)*(y1-y0+1))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			cells = append(cells, Cell{X: x, Y: y})
		}
	}
	return cells
}

// Rows returns a copy of the grid as rows of ints.
func (g *Grid) Rows() [][]int {
	rows := make([][]int, g.height)
	for y := range rows {
		row := make([]int, g.width)
		for x := range row {
			row[x] = int(g.tiles[y*g.width+x])
		}
		rows[y] = row
	}
	return rows
}

// With returns a copy of the grid with (tx, ty) set to id. Out of bounds
// writes return an unchanged copy.
func (g *Grid) With(tx, ty int, id tile.ID) *Grid {
	next := &Grid{width: g.width, height: g.height, tiles: make([]tile.ID, len(g.tiles))}
	copy(next.tiles, g.tiles)
	if g.InBounds(tx, ty) {
		next.tiles[ty*g.width+tx] = id
	}
	return next
}

// Find returns the first cell holding id in row-major order.
func (g *Grid) Find(id tile.ID) (common.Point, bool) {
	for i, v := range g.tiles {
		if v == id {
			return common.Point{X: i % g.width, Y: i / g.width}, true
		}
	}
	return common.Point{}, false
}

// Unknown returns the cells holding ids outside the tile catalog.
func (g *Grid) Unknown() []Cell {
	var cells []Cell
	for i, v := range g.tiles {
		if !tile.Known(v) {
			cells = append(cells, Cell{X: i % g.width, Y: i / g.width})
		}
	}
	return cells
}

// Package level holds level data, its JSON interchange format, the level
// sources and the play session that tracks the current level and progress.
package level

import (
	"errors"
	"fmt"

	"github.com/milk9111/pixelplatformer/common"
	"github.com/milk9111/pixelplatformer/grid"
	"github.com/milk9111/pixelplatformer/tile"
)

// ErrNotFound is returned when a level id does not exist.
var ErrNotFound = errors.New("level: not found")

// DefaultStart is used when a level does not store a start position.
var DefaultStart = common.Point{X: 1, Y: 12}

// Level is one playable grid with its metadata.
type Level struct {
	ID    string
	Name  string
	Order int
	Grid  *grid.Grid
	Start common.Point

	// Warnings collects non-fatal problems found while decoding.
	Warnings []string
}

// Fallback is the built-in level used when no level source yields anything.
func Fallback() Level {
	rows := make([][]int, common.GridHeight)
	for y := range rows {
		rows[y] = make([]int, common.GridWidth)
	}
	for x := 0; x < common.GridWidth; x++ {
		rows[15][x] = int(tile.Platform)
	}
	rows[13][20] = int(tile.Goal)
	return Level{
		ID:    "fallback",
		Name:  "Fallback Level",
		Grid:  grid.MustFromRows(rows),
		Start: common.Point{X: 1, Y: 14},
	}
}

// StartTile returns the start position in tile units. A player start marker
// in the grid wins over the stored start.
func (l Level) StartTile() common.Point {
	if l.Grid != nil {
		if marker, ok := l.Grid.Find(tile.PlayerStart); ok {
			return marker
		}
	}
	return l.Start
}

// Validate reports problems that do not stop the level from being played.
func Validate(l Level) []string {
	warnings := append([]string(nil), l.Warnings...)
	if l.Grid == nil {
		return append(warnings, "level has no grid")
	}
	for _, c := range l.Grid.Unknown() {
		warnings = append(warnings, fmt.Sprintf("unknown tile id %d at (%d,%d)", l.Grid.TileAt(c.X, c.Y), c.X, c.Y))
	}
	if !l.Grid.InBounds(l.Start.X, l.Start.Y) {
		warnings = append(warnings, fmt.Sprintf("start (%d,%d) is outside the %dx%d grid", l.Start.X, l.Start.Y, l.Grid.Width(), l.Grid.Height()))
	} else if l.Grid.Solid(l.Start.X, l.Start.Y) {
		warnings = append(warnings, fmt.Sprintf("start (%d,%d) is inside a solid tile", l.Start.X, l.Start.Y))
	}
	if _, ok := l.Grid.Find(tile.Goal); !ok {
		warnings = append(warnings, "level has no goal tile")
	}
	return warnings
}

// Package common holds the geometry and dimensions shared by the simulation,
// the renderer and the tools.
package common

const (
	// TileSize is the edge length of one grid cell in pixels.
	TileSize = 32

	// GridWidth and GridHeight are the dimensions of a standard level in tiles.
	GridWidth  = 25
	GridHeight = 16

	CanvasWidth  = 800
	CanvasHeight = 600

	// IdealFrameMs is the duration of one simulation tick at 60 ticks per second.
	IdealFrameMs = 1000.0 / 60.0
)

// Point is a cell coordinate in tile units.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

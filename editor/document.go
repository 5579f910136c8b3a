// Package editor is the level authoring model behind cmd/editor. It has no
// ebiten dependency so every tool can be tested headless.
package editor

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/milk9111/pixelplatformer/common"
	"github.com/milk9111/pixelplatformer/grid"
	"github.com/milk9111/pixelplatformer/level"
	"github.com/milk9111/pixelplatformer/tile"
)

const maxUndo = 100

// delta stores the previous values of the cells one edit changed.
type delta struct {
	cells map[int]tile.ID
	start *common.Point
}

func (d *delta) empty() bool {
	return len(d.cells) == 0 && d.start == nil
}

// Document is an editable level.
type Document struct {
	ID    string
	Name  string
	Order int

	width, height int
	cells         []tile.ID
	start         common.Point

	undo    []delta
	pending *delta
	dirty   bool
}

// NewDocument returns an empty w×h level with a floor of platforms.
func NewDocument(w, h int) (*Document, error) {
	if w <= 0 || h <= 0 {
		return nil, grid.ErrInvalidDimensions
	}
	d := &Document{Name: "New Level", width: w, height: h, start: level.DefaultStart}
	d.cells = emptyCells(w, h)
	return d, nil
}

func emptyCells(w, h int) []tile.ID {
	cells := make([]tile.ID, w*h)
	for x := 0; x < w; x++ {
		cells[(h-1)*w+x] = tile.Platform
	}
	return cells
}

// FromLevel copies a level into a document.
func FromLevel(l level.Level) (*Document, error) {
	if l.Grid == nil {
		return nil, fmt.Errorf("editor: level %q has no grid", l.Name)
	}
	d := &Document{
		ID:     l.ID,
		Name:   l.Name,
		Order:  l.Order,
		width:  l.Grid.Width(),
		height: l.Grid.Height(),
		start:  l.Start,
	}
	d.cells = make([]tile.ID, d.width*d.height)
	for y := 0; y < d.height; y++ {
		for x := 0; x < d.width; x++ {
			d.cells[y*d.width+x] = l.Grid.TileAt(x, y)
		}
	}
	return d, nil
}

func (d *Document) Width() int          { return d.width }
func (d *Document) Height() int         { return d.height }
func (d *Document) Start() common.Point { return d.start }
func (d *Document) Dirty() bool         { return d.dirty }
func (d *Document) CanUndo() bool       { return len(d.undo) > 0 }

// MarkSaved clears the dirty flag.
func (d *Document) MarkSaved() { d.dirty = false }

func (d *Document) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < d.width && y < d.height
}

// At returns the tile at (x, y), or Empty outside the document.
func (d *Document) At(x, y int) tile.ID {
	if !d.inBounds(x, y) {
		return tile.Empty
	}
	return d.cells[y*d.width+x]
}

// Begin groups the following edits into one undo step until End. A mouse
// drag is one stroke.
func (d *Document) Begin() {
	if d.pending == nil {
		d.pending = &delta{cells: make(map[int]tile.ID)}
	}
}

func (d *Document) End() {
	if d.pending == nil {
		return
	}
	p := d.pending
	d.pending = nil
	if p.empty() {
		return
	}
	d.undo = append(d.undo, *p)
	if len(d.undo) > maxUndo {
		// drop oldest
		d.undo = d.undo[1:]
	}
}

// edit runs f inside the open stroke, or inside its own step if none is open.
func (d *Document) edit(f func()) {
	if d.pending != nil {
		f()
		return
	}
	d.Begin()
	f()
	d.End()
}

func (d *Document) set(x, y int, id tile.ID) bool {
	i := y*d.width + x
	if d.cells[i] == id {
		return false
	}
	if _, seen := d.pending.cells[i]; !seen {
		d.pending.cells[i] = d.cells[i]
	}
	d.cells[i] = id
	d.dirty = true
	return true
}

// Brush paints one cell. It reports whether the cell changed.
func (d *Document) Brush(x, y int, id tile.ID) bool {
	if !d.inBounds(x, y) {
		return false
	}
	var changed bool
	d.edit(func() { changed = d.set(x, y, id) })
	return changed
}

func (d *Document) Erase(x, y int) bool {
	return d.Brush(x, y, tile.Empty)
}

// Fill flood-fills the 4-connected region of the tile at (x, y) with id and
// returns the number of changed cells.
func (d *Document) Fill(x, y int, id tile.ID) int {
	if !d.inBounds(x, y) {
		return 0
	}
	target := d.At(x, y)
	if target == id {
		return 0
	}
	var n int
	d.edit(func() {
		stack := []common.Point{{X: x, Y: y}}
		for len(stack) > 0 {
			p := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !d.inBounds(p.X, p.Y) || d.At(p.X, p.Y) != target {
				continue
			}
			d.set(p.X, p.Y, id)
			n++
			stack = append(stack,
				common.Point{X: p.X + 1, Y: p.Y},
				common.Point{X: p.X - 1, Y: p.Y},
				common.Point{X: p.X, Y: p.Y + 1},
				common.Point{X: p.X, Y: p.Y - 1},
			)
		}
	})
	return n
}

// Line paints a Bresenham line from (x0, y0) to (x1, y1) inclusive and
// returns the number of changed cells. Points outside the document are
// skipped.
func (d *Document) Line(x0, y0, x1, y1 int, id tile.ID) int {
	var n int
	d.edit(func() {
		for _, p := range Bresenham(x0, y0, x1, y1) {
			if d.inBounds(p.X, p.Y) && d.set(p.X, p.Y, id) {
				n++
			}
		}
	})
	return n
}

// Bresenham returns the cells on the line from (x0, y0) to (x1, y1).
func Bresenham(x0, y0, x1, y1 int) []common.Point {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	var out []common.Point
	for {
		out = append(out, common.Point{X: x0, Y: y0})
		if x0 == x1 && y0 == y1 {
			return out
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// SetStart moves the player start. It reports false outside the document.
func (d *Document) SetStart(x, y int) bool {
	if !d.inBounds(x, y) {
		return false
	}
	p := common.Point{X: x, Y: y}
	if p == d.start {
		return true
	}
	d.edit(func() {
		if d.pending.start == nil {
			prev := d.start
			d.pending.start = &prev
		}
		d.start = p
		d.dirty = true
	})
	return true
}

// Clear resets the document to an empty level with a floor. It is undoable.
func (d *Document) Clear() {
	d.edit(func() {
		fresh := emptyCells(d.width, d.height)
		for i := range fresh {
			d.set(i%d.width, i/d.width, fresh[i])
		}
		if d.start != level.DefaultStart {
			prev := d.start
			if d.pending.start == nil {
				d.pending.start = &prev
			}
			d.start = level.DefaultStart
			d.dirty = true
		}
	})
}

// Undo reverts the last edit step.
func (d *Document) Undo() bool {
	d.End()
	n := len(d.undo)
	if n == 0 {
		return false
	}
	step := d.undo[n-1]
	d.undo = d.undo[:n-1]
	for i, id := range step.cells {
		d.cells[i] = id
	}
	if step.start != nil {
		d.start = *step.start
	}
	d.dirty = true
	return true
}

// Rows returns the tiles as rows of ids.
func (d *Document) Rows() [][]int {
	rows := make([][]int, d.height)
	for y := range rows {
		rows[y] = make([]int, d.width)
		for x := range rows[y] {
			rows[y][x] = int(d.cells[y*d.width+x])
		}
	}
	return rows
}

// Level builds a level with a fresh grid.
func (d *Document) Level() level.Level {
	return level.Level{
		ID:    d.ID,
		Name:  d.Name,
		Order: d.Order,
		Grid:  grid.MustFromRows(d.Rows()),
		Start: d.start,
	}
}

// CopyMatrix formats the tiles as an array literal, one row per line.
func (d *Document) CopyMatrix() string {
	var b strings.Builder
	b.WriteString("[\n")
	for _, row := range d.Rows() {
		b.WriteString("    [")
		for x, id := range row {
			if x > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Itoa(id))
		}
		b.WriteString("],\n")
	}
	b.WriteString("]")
	return b.String()
}

// Save writes the document as level JSON.
func (d *Document) Save(w io.Writer) error {
	b, err := level.Encode(d.Level())
	if err != nil {
		return err
	}
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("editor: save %q: %w", d.Name, err)
	}
	d.dirty = false
	return nil
}

// Load reads a level JSON document.
func Load(r io.Reader) (*Document, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("editor: load: %w", err)
	}
	l, err := level.Decode(b)
	if err != nil {
		return nil, err
	}
	return FromLevel(l)
}

// NextSpike cycles a spike through its four rotations. Other ids are
// returned unchanged.
func NextSpike(id tile.ID) tile.ID {
	switch id {
	case tile.LegacySpike, tile.SpikeUp:
		return tile.SpikeRight
	case tile.SpikeRight:
		return tile.SpikeDown
	case tile.SpikeDown:
		return tile.SpikeLeft
	case tile.SpikeLeft:
		return tile.SpikeUp
	}
	return id
}

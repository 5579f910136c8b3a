package editor

import (
	"bytes"
	"strings"
	"testing"

	"github.com/milk9111/pixelplatformer/common"
	"github.com/milk9111/pixelplatformer/level"
	"github.com/milk9111/pixelplatformer/tile"
)

func newDoc(t *testing.T, w, h int) *Document {
	t.Helper()
	d, err := NewDocument(w, h)
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}
	return d
}

func TestNewDocumentHasFloor(t *testing.T) {
	d := newDoc(t, common.GridWidth, common.GridHeight)
	for x := 0; x < d.Width(); x++ {
		if d.At(x, d.Height()-1) != tile.Platform || d.At(x, 0) != tile.Empty {
			t.Fatalf("column %d is not an empty column over a floor", x)
		}
	}
	if d.Start() != level.DefaultStart || d.Dirty() {
		t.Fatalf("fresh document start %v dirty %v", d.Start(), d.Dirty())
	}
	if _, err := NewDocument(0, 3); err == nil {
		t.Fatalf("expected an error for a zero width")
	}
}

func TestBrushEraseUndo(t *testing.T) {
	d := newDoc(t, 5, 4)
	if !d.Brush(1, 1, tile.Ice) || d.At(1, 1) != tile.Ice {
		t.Fatalf("brush failed")
	}
	if d.Brush(1, 1, tile.Ice) {
		t.Fatalf("painting the same tile should not count as a change")
	}
	if d.Brush(-1, 0, tile.Ice) || d.Brush(5, 0, tile.Ice) {
		t.Fatalf("painting outside should fail")
	}
	d.Erase(1, 1)
	if d.At(1, 1) != tile.Empty {
		t.Fatalf("erase failed")
	}
	d.Undo()
	if d.At(1, 1) != tile.Ice {
		t.Fatalf("undo of erase should restore ice")
	}
	d.Undo()
	if d.At(1, 1) != tile.Empty || d.CanUndo() {
		t.Fatalf("undo of brush should restore empty")
	}
	if d.Undo() {
		t.Fatalf("undo with no history should fail")
	}
}

func TestStrokeIsOneUndoStep(t *testing.T) {
	d := newDoc(t, 5, 4)
	d.Begin()
	for x := 0; x < 4; x++ {
		d.Brush(x, 0, tile.Stone)
	}
	d.Brush(0, 0, tile.Wood)
	d.End()
	d.Undo()
	for x := 0; x < 4; x++ {
		if d.At(x, 0) != tile.Empty {
			t.Fatalf("stroke not fully undone at %d", x)
		}
	}
}

func TestUndoIsBounded(t *testing.T) {
	d := newDoc(t, 20, 20)
	for i := 0; i < maxUndo+20; i++ {
		d.Brush(i%20, i/20, tile.Dirt)
	}
	n := 0
	for d.Undo() {
		n++
	}
	if n != maxUndo {
		t.Fatalf("undo depth %d, want %d", n, maxUndo)
	}
}

func TestFill(t *testing.T) {
	d := newDoc(t, 4, 3)
	// wall splits the empty area
	d.Line(2, 0, 2, 1, tile.Stone)
	n := d.Fill(0, 0, tile.Ice)
	if n != 4 {
		t.Fatalf("filled %d cells, want 4", n)
	}
	if d.At(3, 0) != tile.Empty || d.At(2, 2) != tile.Platform {
		t.Fatalf("fill leaked through the wall or floor")
	}
	if d.Fill(0, 0, tile.Ice) != 0 {
		t.Fatalf("filling with the same id should change nothing")
	}
	d.Undo()
	if d.At(0, 0) != tile.Empty || d.At(1, 1) != tile.Empty {
		t.Fatalf("fill undo failed")
	}
}

func TestBresenham(t *testing.T) {
	cases := []struct {
		name           string
		x0, y0, x1, y1 int
		want           []common.Point
	}{
		{"point", 2, 2, 2, 2, []common.Point{{X: 2, Y: 2}}},
		{"horizontal", 0, 0, 3, 0, []common.Point{{X: 0}, {X: 1}, {X: 2}, {X: 3}}},
		{"diagonal_back", 2, 2, 0, 0, []common.Point{{X: 2, Y: 2}, {X: 1, Y: 1}, {X: 0, Y: 0}}},
		{"shallow", 0, 0, 4, 2, []common.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 2}, {X: 4, Y: 2}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Bresenham(c.x0, c.y0, c.x1, c.y1)
			if len(got) != len(c.want) {
				t.Fatalf("got %v, want %v", got, c.want)
			}
			for i := range got {
				if got[i] != c.want[i] {
					t.Fatalf("got %v, want %v", got, c.want)
				}
			}
		})
	}
}

func TestSetStartAndClear(t *testing.T) {
	d := newDoc(t, 6, 6)
	if d.SetStart(9, 9) {
		t.Fatalf("start outside the document should fail")
	}
	d.SetStart(3, 2)
	d.Brush(0, 0, tile.Goal)
	d.Clear()
	if d.At(0, 0) != tile.Empty || d.Start() != level.DefaultStart {
		t.Fatalf("clear did not reset the document")
	}
	d.Undo()
	if d.At(0, 0) != tile.Goal || d.Start() != (common.Point{X: 3, Y: 2}) {
		t.Fatalf("clear undo failed: start %v", d.Start())
	}
	d.Undo()
	d.Undo()
	if d.Start() != level.DefaultStart {
		t.Fatalf("start undo failed: %v", d.Start())
	}
}

func TestCopyMatrix(t *testing.T) {
	d := newDoc(t, 3, 2)
	d.Brush(1, 0, tile.SpikeUp)
	want := "[\n    [0,10,0],\n    [1,1,1],\n]"
	if got := d.CopyMatrix(); got != want {
		t.Fatalf("CopyMatrix = %q, want %q", got, want)
	}
}

func TestSaveLoad(t *testing.T) {
	d := newDoc(t, common.GridWidth, common.GridHeight)
	d.Name = "Saved"
	d.Order = 4
	d.Brush(20, 13, tile.Goal)
	d.SetStart(2, 13)

	var buf bytes.Buffer
	if err := d.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if d.Dirty() {
		t.Fatalf("save should clear the dirty flag")
	}
	out, err := Load(&buf)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if out.Name != "Saved" || out.Order != 4 || out.Start() != d.Start() || out.At(20, 13) != tile.Goal {
		t.Fatalf("round trip lost data: %+v", out)
	}
	if ws := level.Validate(out.Level()); len(ws) != 0 {
		t.Fatalf("saved level has warnings %v", ws)
	}
	if _, err := Load(strings.NewReader("{")); err == nil {
		t.Fatalf("expected an error for bad JSON")
	}
}

func TestNextSpike(t *testing.T) {
	id := tile.LegacySpike
	seen := map[tile.ID]bool{}
	for i := 0; i < 4; i++ {
		id = NextSpike(id)
		seen[id] = true
	}
	if len(seen) != 4 || id != tile.SpikeUp {
		t.Fatalf("spike rotation cycle broken, ended at %d", id)
	}
	if NextSpike(tile.Ice) != tile.Ice {
		t.Fatalf("non-spike should be unchanged")
	}
}

package main

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.design/x/clipboard"

	"github.com/milk9111/pixelplatformer/common"
	"github.com/milk9111/pixelplatformer/editor"
	"github.com/milk9111/pixelplatformer/level"
	"github.com/milk9111/pixelplatformer/render"
	"github.com/milk9111/pixelplatformer/tile"
)

const (
	panelWidth   = 180
	swatchSize   = 28
	statusHeight = 20
)

type Tool int

const (
	ToolBrush Tool = iota
	ToolErase
	ToolFill
	ToolLine
	ToolStart
)

func (t Tool) String() string {
	switch t {
	case ToolBrush:
		return "Brush"
	case ToolErase:
		return "Erase"
	case ToolFill:
		return "Fill"
	case ToolLine:
		return "Line"
	case ToolStart:
		return "Start"
	default:
		return "Unknown"
	}
}

var toolKeys = map[ebiten.Key]Tool{
	ebiten.KeyB: ToolBrush,
	ebiten.KeyE: ToolErase,
	ebiten.KeyF: ToolFill,
	ebiten.KeyL: ToolLine,
	ebiten.KeyP: ToolStart,
}

// paletteIDs are the paintable tiles in palette order.
var paletteIDs = []tile.ID{
	tile.Platform, tile.Dirt, tile.Wood, tile.Stone, tile.Ice, tile.Bounce,
	tile.Goal, tile.SpikeUp, tile.SpikeRight, tile.SpikeDown, tile.SpikeLeft,
}

type Editor struct {
	store   *level.DirStore
	doc     *editor.Document
	palette *render.Palette
	prompt  *Prompt

	tool     Tool
	selected tile.ID
	dragging bool
	lineFrom *common.Point

	clipboardOK bool
	status      string
	statusUntil time.Time
}

func NewEditor(store *level.DirStore, id string) (*Editor, error) {
	e := &Editor{
		store:    store,
		palette:  render.NewPalette(),
		prompt:   &Prompt{},
		selected: tile.Platform,
	}
	if err := clipboard.Init(); err != nil {
		log.Printf("Editor: clipboard unavailable: %v", err)
	} else {
		e.clipboardOK = true
	}

	if id == "" {
		doc, err := editor.NewDocument(common.GridWidth, common.GridHeight)
		if err != nil {
			return nil, err
		}
		e.doc = doc
		return e, nil
	}
	l, err := store.Get(id)
	if errors.Is(err, level.ErrNotFound) {
		doc, err := editor.NewDocument(common.GridWidth, common.GridHeight)
		if err != nil {
			return nil, err
		}
		doc.ID, doc.Name = id, id
		e.doc = doc
		return e, nil
	}
	if err != nil {
		return nil, err
	}
	doc, err := editor.FromLevel(l)
	if err != nil {
		return nil, err
	}
	e.doc = doc
	return e, nil
}

func (e *Editor) flash(format string, args ...any) {
	e.status = fmt.Sprintf(format, args...)
	e.statusUntil = time.Now().Add(3 * time.Second)
	log.Printf("Editor: %s", e.status)
}

func (e *Editor) Update() error {
	if e.prompt.Update() {
		return nil
	}

	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	switch {
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyS):
		e.save()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyZ):
		if e.doc.Undo() {
			e.flash("undo")
		}
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyC):
		e.copyMatrix()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyN):
		e.doc.Clear()
		e.flash("cleared")
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		e.selected = editor.NextSpike(e.selected)
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		e.prompt.Open(editor.NameField(e.doc.Name), func(s string) {
			e.doc.Name = s
		})
		return nil
	default:
		for k, t := range toolKeys {
			if inpututil.IsKeyJustPressed(k) {
				e.tool = t
				e.lineFrom = nil
			}
		}
		for i := 0; i < 9 && i < len(paletteIDs); i++ {
			if inpututil.IsKeyJustPressed(ebiten.Key1 + ebiten.Key(i)) {
				e.selected = paletteIDs[i]
			}
		}
	}

	e.updateMouse()
	return nil
}

func (e *Editor) cellUnderCursor() (int, int, bool) {
	mx, my := ebiten.CursorPosition()
	x := int(math.Floor(float64(mx) / common.TileSize))
	y := int(math.Floor(float64(my) / common.TileSize))
	if x < 0 || y < 0 || x >= e.doc.Width() || y >= e.doc.Height() {
		return 0, 0, false
	}
	return x, y, true
}

func (e *Editor) updateMouse() {
	mx, my := ebiten.CursorPosition()
	canvasW := e.doc.Width() * common.TileSize
	if mx >= canvasW && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		i := (my - 8) / (swatchSize + 4)
		if i >= 0 && i < len(paletteIDs) {
			e.selected = paletteIDs[i]
			if e.tool == ToolErase || e.tool == ToolStart {
				e.tool = ToolBrush
			}
		}
		return
	}

	x, y, ok := e.cellUnderCursor()
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)

	if !left && !right {
		if e.dragging {
			e.doc.End()
			e.dragging = false
		}
		return
	}
	if !ok {
		return
	}

	if right {
		e.beginStroke()
		e.doc.Erase(x, y)
		return
	}

	switch e.tool {
	case ToolBrush:
		e.beginStroke()
		e.doc.Brush(x, y, e.selected)
	case ToolErase:
		e.beginStroke()
		e.doc.Erase(x, y)
	case ToolFill:
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			e.flash("filled %d cells", e.doc.Fill(x, y, e.selected))
		}
	case ToolLine:
		if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			return
		}
		if e.lineFrom == nil {
			e.lineFrom = &common.Point{X: x, Y: y}
			return
		}
		e.doc.Line(e.lineFrom.X, e.lineFrom.Y, x, y, e.selected)
		e.lineFrom = nil
	case ToolStart:
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			e.doc.SetStart(x, y)
		}
	}
}

func (e *Editor) beginStroke() {
	if !e.dragging {
		e.doc.Begin()
		e.dragging = true
	}
}

func (e *Editor) save() {
	if e.doc.ID == "" {
		e.prompt.Open(editor.IDField(""), func(id string) {
			e.doc.ID = id
			e.save()
		})
		return
	}
	l := e.doc.Level()
	for _, w := range level.Validate(l) {
		e.flash("warning: %s", w)
	}
	if err := e.store.Put(e.doc.ID, l); err != nil {
		e.doc.ID = ""
		e.flash("save failed: %v", err)
		return
	}
	e.doc.MarkSaved()
	e.flash("saved %s", e.doc.ID)
}

func (e *Editor) copyMatrix() {
	if !e.clipboardOK {
		e.flash("clipboard unavailable")
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(e.doc.CopyMatrix()))
	e.flash("level matrix copied to clipboard")
}

func (e *Editor) Draw(screen *ebiten.Image) {
	screen.Fill(render.Background)
	ts := float32(common.TileSize)

	for y := 0; y < e.doc.Height(); y++ {
		for x := 0; x < e.doc.Width(); x++ {
			px, py := float32(x)*ts, float32(y)*ts
			vector.StrokeRect(screen, px, py, ts, ts, 1, color.NRGBA{R: 0x33, G: 0x33, B: 0x4a, A: 0xff}, false)
			render.DrawTile(screen, e.palette, e.doc.At(x, y), px, py, ts)
		}
	}

	s := e.doc.Start()
	vector.StrokeRect(screen, float32(s.X)*ts+4, float32(s.Y)*ts, ts-8, ts, 2, render.PlayerColor, false)

	if x, y, ok := e.cellUnderCursor(); ok {
		vector.StrokeRect(screen, float32(x)*ts, float32(y)*ts, ts, ts, 2, color.White, false)
	}
	if e.lineFrom != nil {
		vector.StrokeRect(screen, float32(e.lineFrom.X)*ts, float32(e.lineFrom.Y)*ts, ts, ts, 2, color.NRGBA{G: 0xff, A: 0xff}, false)
	}

	e.drawPanel(screen)
	e.prompt.Draw(screen)
}

func (e *Editor) drawPanel(screen *ebiten.Image) {
	x0 := float32(e.doc.Width() * common.TileSize)
	vector.FillRect(screen, x0, 0, panelWidth, float32(screen.Bounds().Dy()), color.NRGBA{R: 0x11, G: 0x11, B: 0x1f, A: 0xff}, false)

	for i, id := range paletteIDs {
		y := float32(8 + i*(swatchSize+4))
		render.DrawTile(screen, e.palette, id, x0+8, y, swatchSize)
		if id == e.selected {
			vector.StrokeRect(screen, x0+6, y-2, swatchSize+4, swatchSize+4, 2, color.White, false)
		}
		label := tile.Describe(id).Name
		if i < 9 {
			label = fmt.Sprintf("%d %s", i+1, label)
		}
		ebitenutil.DebugPrintAt(screen, label, int(x0)+8+swatchSize+6, int(y)+8)
	}

	dirty := ""
	if e.doc.Dirty() {
		dirty = "*"
	}
	info := fmt.Sprintf("%s%s  tool: %s [B/E/F/L/P]  R rotate spike  N rename  Ctrl+S/Z/C/N", e.doc.Name, dirty, e.tool)
	sh := screen.Bounds().Dy()
	ebitenutil.DebugPrintAt(screen, info, 4, sh-statusHeight+2)
	if time.Now().Before(e.statusUntil) {
		ebitenutil.DebugPrintAt(screen, e.status, 4, sh-2*statusHeight+2)
	}
}

func (e *Editor) Layout(outsideWidth, outsideHeight int) (int, int) {
	w := e.doc.Width()*common.TileSize + panelWidth
	h := e.doc.Height()*common.TileSize + 2*statusHeight
	return w, h
}

package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/milk9111/pixelplatformer/editor"
)

var (
	promptBackground = color.RGBA{A: 0xcc}
	promptInvalid    = color.RGBA{R: 0x60, A: 0xcc}
)

// Prompt edits a field modally. Enter submits only valid text; Escape
// cancels.
type Prompt struct {
	field    *editor.Field
	onSubmit func(string)
	chars    []rune
	shake    int
}

func (p *Prompt) IsOpen() bool { return p.field != nil }

func (p *Prompt) Open(f *editor.Field, onSubmit func(string)) {
	p.field = f
	p.onSubmit = onSubmit
	p.shake = 0
}

func (p *Prompt) Close() {
	p.field = nil
	p.onSubmit = nil
}

// Update reports whether the prompt consumed this frame's input.
func (p *Prompt) Update() bool {
	if p.field == nil {
		return false
	}
	if p.shake > 0 {
		p.shake--
	}
	p.chars = ebiten.AppendInputChars(p.chars[:0])
	p.field.Insert(p.chars)
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) || inpututil.KeyPressDuration(ebiten.KeyBackspace) > 30 {
		p.field.Backspace()
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		p.Close()
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		text, err := p.field.Submit()
		if err != nil {
			p.shake = 20
			return true
		}
		cb := p.onSubmit
		p.Close()
		if cb != nil {
			cb(text)
		}
	}
	return true
}

func (p *Prompt) Draw(screen *ebiten.Image) {
	if p.field == nil {
		return
	}
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	bg := promptBackground
	if p.shake > 0 {
		bg = promptInvalid
	}
	y := float32(sh/2 - 24)
	vector.FillRect(screen, 0, y, float32(sw), 48, bg, false)

	x := 16
	if p.shake > 0 {
		x += (p.shake % 4) - 2
	}
	ebitenutil.DebugPrintAt(screen, p.field.Label+" "+p.field.Text+"_", x, sh/2-16)
	if err := p.field.Err(); err != nil {
		ebitenutil.DebugPrintAt(screen, err.Error(), x, sh/2)
	}
}

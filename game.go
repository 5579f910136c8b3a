package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/pixelplatformer/common"
	"github.com/milk9111/pixelplatformer/config"
	"github.com/milk9111/pixelplatformer/game"
	"github.com/milk9111/pixelplatformer/level"
	"github.com/milk9111/pixelplatformer/render"
	"github.com/milk9111/pixelplatformer/ui"
)

// Game adapts the game manager to ebiten. It forwards menu actions to the
// manager and feeds it keyboard state once per ebiten update.
type Game struct {
	manager  *game.Manager
	session  *level.Session
	menus    *ui.Menus
	renderer *render.Renderer

	tuning  chan config.Tuning
	focused bool
}

func (g *Game) Update() error {
	select {
	case t := <-g.tuning:
		if err := g.manager.SetTuning(t.Player, t.Effects()); err != nil {
			log.Printf("Game: reload tuning: %v", err)
		} else {
			log.Printf("Game: tuning reloaded, applies at next level start")
		}
	default:
	}

	focused := ebiten.IsFocused()
	if g.focused && !focused {
		g.manager.Blur()
	}
	g.focused = focused

	ev := pollInput(g.manager.Keys())
	if ev.Escape {
		g.escape()
	}
	if ev.Restart {
		g.manager.HandleKeyDown("r")
		g.manager.HandleKeyUp("r")
	}

	g.menus.Update()
	g.manager.Frame()
	if !g.manager.Loop().Running() {
		g.renderer.Render(g.manager.Snapshot())
	}
	g.renderer.Update(1 / float64(ebiten.TPS()))
	return nil
}

func (g *Game) escape() {
	switch g.manager.State() {
	case game.StateLevelSelect, game.StateSettings:
		g.manager.ExitToMenu()
	default:
		g.manager.HandleKeyDown("Escape")
		g.manager.HandleKeyUp("Escape")
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen)
	g.menus.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.CanvasWidth, common.CanvasHeight
}

// ui.Actions

func (g *Game) StartGame() bool       { return g.manager.StartGame() }
func (g *Game) StartLevel(i int) bool { return g.manager.StartLevel(i) }
func (g *Game) RestartLevel() bool    { return g.manager.RestartLevel() }
func (g *Game) NextLevel() bool       { return g.manager.NextLevel() }
func (g *Game) Resume()               { g.manager.Resume() }
func (g *Game) ExitToMenu()           { g.manager.ExitToMenu() }
func (g *Game) ShowLevelSelect()      { g.manager.ShowLevelSelect() }
func (g *Game) ShowSettings()         { g.manager.ShowSettings() }

package game

import (
	"testing"
	"time"

	"github.com/milk9111/pixelplatformer/common"
	"github.com/milk9111/pixelplatformer/level"
)

func sessionLevel(id string, startX int) level.Level {
	return level.Level{
		ID:    id,
		Name:  id,
		Grid:  rowsOf(emptyRow, plainRow, emptyRow, emptyRow),
		Start: common.Point{X: startX, Y: 11},
	}
}

func TestHotReloadKeepsLevelAcrossRestartAndNext(t *testing.T) {
	tests := []struct {
		name   string
		action func(m *Manager) bool
		wantID string
		wantX  float64
	}{
		{"restart", (*Manager).RestartLevel, "b", 2 * common.TileSize},
		{"next", (*Manager).NextLevel, "c", 3 * common.TileSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := level.NewSession([]level.Level{
				sessionLevel("a", 1), sessionLevel("b", 2), sessionLevel("c", 3),
			}, nil)
			m, err := NewManager(Deps{
				Levels:    session,
				Clock:     NewManualClock(time.Unix(0, 0)),
				Seed:      1,
				TestLevel: -1,
			})
			if err != nil {
				t.Fatalf("NewManager: %v", err)
			}
			if !m.StartLevel(1) {
				t.Fatalf("StartLevel(1) failed")
			}

			session.Replace([]level.Level{
				sessionLevel("new", 4), sessionLevel("a", 1), sessionLevel("b", 2), sessionLevel("c", 3),
			})
			if !tt.action(m) {
				t.Fatalf("%s did not start a level", tt.name)
			}
			if got := session.Current().ID; got != tt.wantID {
				t.Fatalf("playing %q, want %q", got, tt.wantID)
			}
			if session.Count() != 4 {
				t.Fatalf("reload not applied, %d levels", session.Count())
			}
			if b := m.Player(); b.X != tt.wantX || b.Y != 11*common.TileSize {
				t.Fatalf("body at (%v,%v), want start of %q", b.X, b.Y, tt.wantID)
			}
		})
	}
}

func TestStartPositionUsesMarkerTile(t *testing.T) {
	g := rowsOf("..S"+emptyRow[3:], plainRow, emptyRow, emptyRow)
	session := level.NewSession([]level.Level{{ID: "m", Grid: g, Start: common.Point{X: 1, Y: 1}}}, nil)
	m, err := NewManager(Deps{Levels: session, Seed: 1, TestLevel: -1})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	m.StartLevel(0)
	if b := m.Player(); b.X != 2*common.TileSize || b.Y != 12*common.TileSize {
		t.Fatalf("body at (%v,%v), want the marker tile (2,12)", b.X, b.Y)
	}
}

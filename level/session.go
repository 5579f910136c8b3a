package level

import (
	"fmt"
	"log"
	"sync"

	"github.com/milk9111/pixelplatformer/common"
	"github.com/milk9111/pixelplatformer/grid"
)

// ProgressStore persists how many levels are unlocked.
type ProgressStore interface {
	LoadUnlocked() int
	SaveUnlocked(n int)
}

// Session tracks the level list, the current level and unlock progress.
//
// Replace may be called from another goroutine; the new list takes effect
// at the next SetCurrent so a level in play is never swapped out.
type Session struct {
	levels   []Level
	current  int
	unlocked int
	progress ProgressStore

	mu      sync.Mutex
	pending []Level
}

// NewSession starts at the first level. An empty list is replaced with the
// fallback level. progress may be nil.
func NewSession(levels []Level, progress ProgressStore) *Session {
	if len(levels) == 0 {
		levels = []Level{Fallback()}
	}
	s := &Session{levels: levels, unlocked: 1, progress: progress}
	if progress != nil {
		s.unlocked = s.clampUnlocked(progress.LoadUnlocked())
	}
	return s
}

func (s *Session) clampUnlocked(n int) int {
	return int(common.Clamp(float64(n), 1, float64(len(s.levels))))
}

func (s *Session) Count() int        { return len(s.levels) }
func (s *Session) CurrentIndex() int { return s.current }
func (s *Session) Unlocked() int     { return s.unlocked }
func (s *Session) Current() Level    { return s.levels[s.current] }

func (s *Session) Levels() []Level {
	return append([]Level(nil), s.levels...)
}

func (s *Session) CurrentGrid() *grid.Grid {
	return s.levels[s.current].Grid
}

// StartPosition is the start of the current level in tile units, with a
// player start marker taking precedence.
func (s *Session) StartPosition() common.Point {
	return s.levels[s.current].StartTile()
}

// Name returns the display name of level i.
func (s *Session) Name(i int) string {
	if i >= 0 && i < len(s.levels) && s.levels[i].Name != "" {
		return s.levels[i].Name
	}
	return fmt.Sprintf("Level %d", i+1)
}

// SetCurrent selects level i of the list the caller saw. A pending Replace
// is applied first and i is carried over to the new list by level ID. It
// reports false, changing nothing else, for an invalid index.
func (s *Session) SetCurrent(i int) bool {
	var id string
	if i >= 0 && i < len(s.levels) {
		id = s.levels[i].ID
	}
	if s.applyPending() && id != "" {
		if j, ok := s.indexOf(id); ok {
			i = j
		}
	}
	if i < 0 || i >= len(s.levels) {
		return false
	}
	s.current = i
	return true
}

func (s *Session) indexOf(id string) (int, bool) {
	for i, l := range s.levels {
		if l.ID == id {
			return i, true
		}
	}
	return 0, false
}

// Next advances to the following level and unlocks it. A pending Replace
// is applied first.
func (s *Session) Next() bool {
	s.applyPending()
	if s.current >= len(s.levels)-1 {
		return false
	}
	s.current++
	s.Unlock(s.current)
	return true
}

// Unlock makes every level up to and including i playable.
func (s *Session) Unlock(i int) {
	n := s.clampUnlocked(i + 1)
	if n <= s.unlocked {
		return
	}
	s.unlocked = n
	if s.progress != nil {
		s.progress.SaveUnlocked(n)
	}
}

func (s *Session) IsUnlocked(i int) bool {
	return i >= 0 && i < s.unlocked
}

// Replace stages a new level list, e.g. after the level files changed.
func (s *Session) Replace(levels []Level) {
	if len(levels) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = levels
}

func (s *Session) applyPending() bool {
	s.mu.Lock()
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()
	if pending == nil {
		return false
	}

	id := s.levels[s.current].ID
	s.levels = pending
	s.current, _ = s.indexOf(id)
	s.unlocked = s.clampUnlocked(s.unlocked)
	log.Printf("LevelSession: reloaded %d levels", len(s.levels))
	return true
}

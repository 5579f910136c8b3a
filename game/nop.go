package game

import "errors"

var errNoLevels = errors.New("game: a level session is required")

type nopAudio struct{}

func (nopAudio) Play(string) {}
func (nopAudio) PlayMusic()  {}
func (nopAudio) PauseMusic() {}

type nopPersistence struct{}

func (nopPersistence) RecordDeath()                     {}
func (nopPersistence) RecordLevelComplete(int, float64) {}

// NopNotifier ignores every UI transition.
type NopNotifier struct{}

func (NopNotifier) ShowMenu(State)                 {}
func (NopNotifier) HideMenus()                     {}
func (NopNotifier) UpdateHUD(int, int)             {}
func (NopNotifier) ShowLevelComplete(int, float64) {}

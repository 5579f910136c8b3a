package game

// State is the top-level game state.
type State int

const (
	StateMenu State = iota
	StateLevelSelect
	StatePlaying
	StatePaused
	StateGameOver
	StateLevelComplete
	StateSettings
)

var stateNames = [...]string{
	StateMenu:          "menu",
	StateLevelSelect:   "levelSelect",
	StatePlaying:       "playing",
	StatePaused:        "paused",
	StateGameOver:      "gameOver",
	StateLevelComplete: "levelComplete",
	StateSettings:      "settings",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

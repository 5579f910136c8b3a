package config

// Settings are the player preferences persisted between runs.
type Settings struct {
	MusicVolume  int  `json:"musicVolume"`
	SFXVolume    int  `json:"sfxVolume"`
	ShowFPS      bool `json:"showFPS"`
	PixelPerfect bool `json:"pixelPerfect"`
}

func DefaultSettings() Settings {
	return Settings{
		MusicVolume:  50,
		SFXVolume:    70,
		ShowFPS:      true,
		PixelPerfect: true,
	}
}

// Clamp limits the volumes to [0, 100].
func (s Settings) Clamp() Settings {
	s.MusicVolume = clampVolume(s.MusicVolume)
	s.SFXVolume = clampVolume(s.SFXVolume)
	return s
}

func clampVolume(v int) int {
	return max(0, min(100, v))
}

package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/pixelplatformer/game"
	"github.com/milk9111/pixelplatformer/particle"
	"github.com/milk9111/pixelplatformer/player"
)

//go:embed tuning.yaml
var defaultTuning []byte

// Loop holds the loop timing and the delayed transitions.
type Loop struct {
	TickMs          float64 `yaml:"tick_ms"`
	MaxUpdates      int     `yaml:"max_updates"`
	DeathDelayMs    float64 `yaml:"death_delay_ms"`
	CompleteDelayMs float64 `yaml:"complete_delay_ms"`
}

// Tuning is the tuning file: player physics, the burst table and loop timing.
type Tuning struct {
	Player player.Tuning                 `yaml:"player"`
	Bursts map[string]particle.BurstSpec `yaml:"bursts"`
	Loop   Loop                          `yaml:"loop"`
}

// Defaults returns the embedded tuning.
func Defaults() Tuning {
	var t Tuning
	if err := yaml.Unmarshal(defaultTuning, &t); err != nil {
		panic(fmt.Sprintf("config: embedded tuning.yaml: %v", err))
	}
	t.nameBursts()
	return t
}

// LoadTuning reads a tuning file over the embedded defaults. Fields the file
// leaves out keep their default; a burst listed in the file replaces the
// built-in burst of that name. An empty path returns the defaults.
func LoadTuning(path string) (Tuning, error) {
	t := Defaults()
	if path == "" {
		return t, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tuning{}, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	t.nameBursts()
	if err := t.Validate(); err != nil {
		return Tuning{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return t, nil
}

func (t *Tuning) nameBursts() {
	for name, b := range t.Bursts {
		b.Name = name
		t.Bursts[name] = b
	}
}

func (t Tuning) Validate() error {
	if err := t.Player.Validate(); err != nil {
		return err
	}
	if t.Loop.TickMs <= 0 {
		return fmt.Errorf("loop tick_ms must be positive")
	}
	if t.Loop.MaxUpdates < 1 {
		return fmt.Errorf("loop max_updates must be at least 1")
	}
	if t.Loop.DeathDelayMs < 0 || t.Loop.CompleteDelayMs < 0 {
		return fmt.Errorf("loop delays must not be negative")
	}
	for name, b := range t.Bursts {
		if b.Count < 0 {
			return fmt.Errorf("burst %s: negative count", name)
		}
		if b.Lifetime.Max < b.Lifetime.Min || b.Size.Max < b.Size.Min {
			return fmt.Errorf("burst %s: range max below min", name)
		}
	}
	return nil
}

// Effects returns the controller bursts.
func (t Tuning) Effects() player.Effects {
	return player.EffectsFrom(t.Bursts)
}

// IceSlide returns the ice slide burst.
func (t Tuning) IceSlide() particle.BurstSpec {
	if b, ok := t.Bursts[particle.IceSlide.Name]; ok {
		return b
	}
	return particle.IceSlide
}

// Apply copies the tuning into manager dependencies. Loop.Metrics is kept.
func (t Tuning) Apply(d *game.Deps) {
	d.Tuning = t.Player
	d.Effects = t.Effects()
	d.IceSlide = t.IceSlide()
	d.Loop.TickMs = t.Loop.TickMs
	d.Loop.MaxUpdates = t.Loop.MaxUpdates
	d.DeathDelay = msDuration(t.Loop.DeathDelayMs)
	d.CompleteDelay = msDuration(t.Loop.CompleteDelayMs)
}

func msDuration(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}

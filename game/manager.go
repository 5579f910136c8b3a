package game

import (
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/milk9111/pixelplatformer/common"
	"github.com/milk9111/pixelplatformer/grid"
	"github.com/milk9111/pixelplatformer/input"
	"github.com/milk9111/pixelplatformer/particle"
	"github.com/milk9111/pixelplatformer/player"
)

// LevelSession is the manager's view of the level list and progress.
type LevelSession interface {
	CurrentGrid() *grid.Grid
	// StartPosition returns the start of the current level in tile units.
	StartPosition() common.Point
	SetCurrent(i int) bool
	CurrentIndex() int
	Count() int
	Next() bool
	Unlock(i int)
	Name(i int) string
}

// AudioSink plays named effects. Calls must not block.
type AudioSink interface {
	Play(name string)
	PlayMusic()
	PauseMusic()
}

// PersistenceSink receives gameplay counters. It is never consulted for logic.
type PersistenceSink interface {
	RecordDeath()
	RecordLevelComplete(level int, elapsedMs float64)
}

// Notifier receives the UI transitions.
type Notifier interface {
	ShowMenu(State)
	HideMenus()
	UpdateHUD(level, deaths int)
	ShowLevelComplete(deaths int, seconds float64)
}

// Renderer draws a snapshot. It is called once per loop frame.
type Renderer interface {
	Render(Snapshot)
}

// Deps are the collaborators and tuning of a Manager. Nil collaborators are
// replaced with no-ops except Levels, which is required.
type Deps struct {
	Levels      LevelSession
	Audio       AudioSink
	Persistence PersistenceSink
	Notifier    Notifier
	Renderer    Renderer
	Metrics     Metrics
	Clock       Clock

	Tuning   player.Tuning
	Effects  player.Effects
	IceSlide particle.BurstSpec
	Loop     LoopOptions

	DeathDelay    time.Duration
	CompleteDelay time.Duration

	Seed int64
	// TestLevel is started by StartGame instead of the first level when
	// non-negative.
	TestLevel int
}

// Snapshot is a read-only view of the game for renderers.
type Snapshot struct {
	State     State
	Level     int
	LevelName string
	Deaths    int
	Elapsed   float64
	Grid      *grid.Grid
	Body      player.Body
	Particles []particle.Particle
}

// Manager owns the game state machine and the fixed-step simulation.
type Manager struct {
	deps      Deps
	clock     Clock
	timers    *Timers
	loop      *Loop
	keys      *input.KeyState
	rng       *rand.Rand
	particles *particle.System
	player    *player.Controller

	state      State
	deaths     int
	levelStart time.Time
	levelTime  float64

	pendingTuning  *player.Tuning
	pendingEffects *player.Effects
}

func NewManager(deps Deps) (*Manager, error) {
	if deps.Levels == nil {
		return nil, errNoLevels
	}
	if deps.Audio == nil {
		deps.Audio = nopAudio{}
	}
	if deps.Persistence == nil {
		deps.Persistence = nopPersistence{}
	}
	if deps.Notifier == nil {
		deps.Notifier = NopNotifier{}
	}
	if deps.Clock == nil {
		deps.Clock = SystemClock{}
	}
	if deps.Tuning == (player.Tuning{}) {
		deps.Tuning = player.DefaultTuning()
	}
	if deps.Effects == (player.Effects{}) {
		deps.Effects = player.DefaultEffects()
	}
	if deps.IceSlide.Count == 0 {
		deps.IceSlide = particle.IceSlide
	}
	if deps.DeathDelay <= 0 {
		deps.DeathDelay = time.Second
	}
	if deps.CompleteDelay <= 0 {
		deps.CompleteDelay = time.Second
	}

	ctrl, err := player.NewController(deps.Tuning)
	if err != nil {
		return nil, err
	}
	ctrl.Effects = deps.Effects

	rng := rand.New(rand.NewSource(deps.Seed))
	m := &Manager{
		deps:      deps,
		clock:     deps.Clock,
		timers:    NewTimers(deps.Clock),
		keys:      input.NewKeyState(),
		rng:       rng,
		particles: particle.NewSystem(rand.New(rand.NewSource(rng.Int63()))),
		player:    ctrl,
		state:     StateMenu,
	}
	opts := deps.Loop
	opts.Metrics = deps.Metrics
	m.loop = NewLoop(deps.Clock, m, m, opts)
	return m, nil
}

func (m *Manager) State() State                { return m.state }
func (m *Manager) Deaths() int                 { return m.deaths }
func (m *Manager) Keys() *input.KeyState       { return m.keys }
func (m *Manager) Loop() *Loop                 { return m.loop }
func (m *Manager) Timers() *Timers             { return m.timers }
func (m *Manager) Player() player.Body         { return m.player.Body() }
func (m *Manager) Particles() *particle.System { return m.particles }

// LevelTime is the completion time of the last finished level in seconds.
func (m *Manager) LevelTime() float64 { return m.levelTime }

// SetTuning stages new physics for the next level start.
func (m *Manager) SetTuning(t player.Tuning, e player.Effects) error {
	if err := t.Validate(); err != nil {
		return err
	}
	m.pendingTuning = &t
	m.pendingEffects = &e
	return nil
}

// StartGame starts the configured test level, or the first level.
func (m *Manager) StartGame() bool {
	if m.deps.TestLevel >= 0 {
		i := m.deps.TestLevel
		m.deps.TestLevel = -1
		return m.StartLevel(i)
	}
	return m.StartLevel(0)
}

// StartLevel enters level i. An invalid index leaves the state untouched.
func (m *Manager) StartLevel(i int) bool {
	if !m.deps.Levels.SetCurrent(i) {
		log.Printf("GameManager: invalid level index %d", i)
		return false
	}
	log.Printf("GameManager: start level %d (%s)", i, m.deps.Levels.Name(i))

	if m.state != StatePlaying {
		m.deaths = 0
	}
	m.timers.CancelAll()
	m.applyPendingTuning()
	m.resetLevelState()
	m.deps.Notifier.HideMenus()

	m.state = StatePlaying
	m.loop.Start()
	m.deps.Audio.PlayMusic()
	return true
}

func (m *Manager) applyPendingTuning() {
	if m.pendingTuning == nil {
		return
	}
	ctrl, err := player.NewController(*m.pendingTuning)
	if err != nil {
		log.Printf("GameManager: reload tuning: %v", err)
	} else {
		if m.pendingEffects != nil {
			ctrl.Effects = *m.pendingEffects
		}
		m.player = ctrl
	}
	m.pendingTuning = nil
	m.pendingEffects = nil
}

func (m *Manager) resetLevelState() {
	start := m.deps.Levels.StartPosition()
	m.player.Reset(start.X, start.Y)
	m.particles.Clear()
	m.levelStart = m.clock.Now()
	m.levelTime = 0
	m.deps.Notifier.UpdateHUD(m.deps.Levels.CurrentIndex(), m.deaths)
}

func (m *Manager) RestartLevel() bool {
	return m.StartLevel(m.deps.Levels.CurrentIndex())
}

// NextLevel advances to the next level, or returns to the menu after the
// last one. It reports whether a level was started.
func (m *Manager) NextLevel() bool {
	m.deaths = 0
	if m.deps.Levels.CurrentIndex() >= m.deps.Levels.Count()-1 {
		m.ExitToMenu()
		return false
	}
	m.deps.Levels.Next()
	return m.StartLevel(m.deps.Levels.CurrentIndex())
}

func (m *Manager) Pause() {
	if m.state != StatePlaying {
		return
	}
	m.state = StatePaused
	m.deps.Notifier.ShowMenu(StatePaused)
	m.deps.Audio.PauseMusic()
	m.loop.Stop()
}

func (m *Manager) Resume() {
	if m.state != StatePaused {
		return
	}
	m.state = StatePlaying
	m.deps.Notifier.HideMenus()
	m.deps.Audio.PlayMusic()
	m.loop.Start()
}

// Blur pauses a running game and releases held keys.
func (m *Manager) Blur() {
	m.keys.Clear()
	m.Pause()
}

func (m *Manager) ExitToMenu() {
	m.timers.CancelAll()
	m.loop.Stop()
	m.state = StateMenu
	m.deps.Notifier.ShowMenu(StateMenu)
	m.deps.Audio.PauseMusic()
}

func (m *Manager) ShowLevelSelect() {
	m.state = StateLevelSelect
	m.deps.Notifier.ShowMenu(StateLevelSelect)
}

func (m *Manager) ShowSettings() {
	m.state = StateSettings
	m.deps.Notifier.ShowMenu(StateSettings)
}

// HandleKeyDown records a key press and handles the control keys.
func (m *Manager) HandleKeyDown(key string) {
	m.keys.Set(key, true)
	switch key {
	case "Escape":
		if m.state == StatePlaying {
			m.Pause()
		} else if m.state == StatePaused {
			m.Resume()
		}
	case "r":
		if m.state == StatePlaying {
			m.RestartLevel()
		}
	}
}

func (m *Manager) HandleKeyUp(key string) {
	m.keys.Set(key, false)
}

// Frame fires due timers and then runs one loop frame if playing.
func (m *Manager) Frame() FrameStats {
	m.timers.Fire()
	if !m.loop.Running() {
		return FrameStats{}
	}
	stats := m.loop.Frame()
	if m.deps.Metrics != nil {
		m.deps.Metrics.ObserveParticles(m.particles.Len())
	}
	return stats
}

// Step implements Stepper.
func (m *Manager) Step(dtMs float64) { m.Update(dtMs) }

// Playing implements Stepper.
func (m *Manager) Playing() bool { return m.state == StatePlaying }

// Present implements Presenter.
func (m *Manager) Present() {
	if m.deps.Renderer != nil {
		m.deps.Renderer.Render(m.Snapshot())
	}
}

// Update runs one fixed tick.
func (m *Manager) Update(dtMs float64) {
	if m.state != StatePlaying {
		return
	}
	g := m.deps.Levels.CurrentGrid()
	res := m.player.Update(g, m.keys.Snapshot(), m.particles, dtMs)
	m.particles.Tick(dtMs)

	if res.Jumped {
		m.deps.Audio.Play("jump")
	}
	if res.Bounced {
		m.deps.Audio.Play("bounce")
	}
	if res.Died {
		m.handleDeath()
	}
	if res.CompletedGoal {
		m.handleLevelComplete()
	}

	b := m.player.Body()
	if b.Alive() && b.OnIce && b.Grounded && math.Abs(b.VX) > 5 {
		if m.rng.Float64() < 0.2 {
			m.particles.Spawn(m.deps.IceSlide, b.Rect())
		}
	}
}

func (m *Manager) handleDeath() {
	m.deaths++
	log.Printf("GameManager: player died level=%d deaths=%d", m.deps.Levels.CurrentIndex(), m.deaths)
	m.deps.Notifier.UpdateHUD(m.deps.Levels.CurrentIndex(), m.deaths)
	m.deps.Audio.Play("death")
	m.deps.Persistence.RecordDeath()
	m.timers.After(m.deps.DeathDelay, m.resetLevelState)
}

func (m *Manager) handleLevelComplete() {
	if m.state == StateLevelComplete {
		return
	}
	elapsedMs := sinceMs(m.levelStart, m.clock.Now())
	m.levelTime = elapsedMs / 1000
	m.state = StateLevelComplete
	m.player.StartCelebration()

	level := m.deps.Levels.CurrentIndex()
	log.Printf("GameManager: level %d complete in %.2fs", level, m.levelTime)
	m.deps.Audio.Play("levelComplete")
	m.deps.Persistence.RecordLevelComplete(level, elapsedMs)
	m.deps.Levels.Unlock(level + 1)

	deaths, seconds := m.deaths, m.levelTime
	m.timers.After(m.deps.CompleteDelay, func() {
		m.deps.Notifier.ShowLevelComplete(deaths, seconds)
	})
}

// Snapshot returns the current game view. Particles are copied.
func (m *Manager) Snapshot() Snapshot {
	s := Snapshot{
		State:     m.state,
		Level:     m.deps.Levels.CurrentIndex(),
		Deaths:    m.deaths,
		Grid:      m.deps.Levels.CurrentGrid(),
		Body:      m.player.Body(),
		Particles: append([]particle.Particle(nil), m.particles.Particles()...),
	}
	s.LevelName = m.deps.Levels.Name(s.Level)
	switch m.state {
	case StateLevelComplete:
		s.Elapsed = m.levelTime
	case StatePlaying, StatePaused:
		s.Elapsed = sinceMs(m.levelStart, m.clock.Now()) / 1000
	}
	return s
}

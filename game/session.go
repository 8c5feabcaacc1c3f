// Package game runs one playable session: it ticks the engine at a fixed frame rate, feeds it
// the player's keys, draws the board and the next-piece preview, and routes the engine's cues
// to the audio player.
//
// A Session is driven by calling Tick once per frame from a single goroutine.
package game

import (
	"math/rand/v2"
	"time"

	"github.com/plus3/cubetris/audio"
	"github.com/plus3/cubetris/engine"
	"github.com/plus3/cubetris/highscore"
	"github.com/plus3/cubetris/input"
	"github.com/plus3/cubetris/palette"
	"github.com/plus3/cubetris/render"
	"github.com/plus3/cubetris/settings"
	"github.com/plus3/cubetris/tick"
)

// Audio plays sound effects and the music bed.
type Audio interface {
	Play(s audio.Sound)
	MusicOn(fade time.Duration)
	MusicOff(fade time.Duration)
	MusicPause(fade time.Duration)
	SetEnabled(sound, music bool)
}

type options struct {
	scores highscore.Store
	store  settings.Store
	audio  Audio
	rng    *rand.Rand
}

// Option configures a Session.
type Option func(*options)

// WithHighScores persists the best score in store. Sessions keep it in memory otherwise.
func WithHighScores(store highscore.Store) Option {
	return func(o *options) {
		o.scores = store
	}
}

// WithSettingsStore loads and saves the player's settings through store.
func WithSettingsStore(store settings.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithAudio routes cues and music to a. Sessions are silent otherwise.
func WithAudio(a Audio) Option {
	return func(o *options) {
		o.audio = a
	}
}

// WithRand sets the random source for piece selection.
func WithRand(r *rand.Rand) Option {
	return func(o *options) {
		o.rng = r
	}
}

// Session ties the engine to its two views, the input tracker and the collaborators.
type Session struct {
	cfg       Config
	engine    *engine.Engine
	board     *render.Renderer
	preview   *render.Renderer
	input     *input.Tracker
	settings  *settings.Set
	scores    highscore.Store
	audio     Audio
	bonuses   *Bonuses
	scheduler *tick.Scheduler

	frame       int
	stepFrames  int
	inputFrames int
	force       bool
	clearing    bool
	running     bool
	congrats    bool
	highScore   int
}

// New builds a session that draws the board on boardSurface and the next piece on
// previewSurface. Nothing is drawn until Resize and nothing moves until Start.
func New(cfg Config, boardSurface, previewSurface render.Surface, opts ...Option) (*Session, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	o := options{
		scores: &highscore.MemoryStore{},
		audio:  audio.Nop{},
	}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Session{
		cfg:         cfg,
		input:       input.NewTracker(),
		scores:      o.scores,
		audio:       o.audio,
		bonuses:     NewBonuses(cfg.BonusLines),
		inputFrames: cfg.inputFrames(),
	}

	setOpts := []settings.Option{settings.OnChange(s.applySettings)}
	if o.store != nil {
		setOpts = append(setOpts, settings.WithStore(o.store))
	}
	set, err := settings.New(cfg.Settings, setOpts...)
	if err != nil {
		return nil, err
	}
	s.settings = set

	var engineOpts []engine.Option
	if o.rng != nil {
		engineOpts = append(engineOpts, engine.WithRand(o.rng))
	}
	s.engine, err = engine.New(cfg.Engine, set, engineOpts...)
	if err != nil {
		return nil, err
	}

	colors, err := palette.New(cfg.Palette)
	if err != nil {
		return nil, err
	}
	boardCfg := render.BoardConfig(cfg.Engine.Width, cfg.Engine.Height, cfg.Engine.PieceSize, cfg.FramesPerSecond)
	boardCfg.Theme = cfg.Theme
	s.board, err = render.New(s.engine, boardSurface, colors, boardCfg, render.OnClearDone(s.clearDone))
	if err != nil {
		return nil, err
	}
	previewCfg := render.PreviewConfig(cfg.Engine.PieceSize, cfg.FramesPerSecond)
	previewCfg.Theme = cfg.Theme
	s.preview, err = render.New(s.engine, previewSurface, colors, previewCfg)
	if err != nil {
		return nil, err
	}

	s.highScore, err = s.scores.Load()
	if err != nil {
		Logger().Warn("high score unavailable", "err", err)
	}
	s.stepFrames = cfg.stepFrames(set.Difficulty())
	s.applySettings()

	s.scheduler = tick.NewScheduler()
	s.scheduler.Register(tick.Func("input", s.readInput))
	s.scheduler.Register(tick.Func("step", s.step))
	s.scheduler.Register(tick.Func("render", s.render))
	s.scheduler.Register(tick.Func("bonuses", s.ageBonuses))
	s.scheduler.Register(tick.Func("clock", s.advanceClock))
	return s, nil
}

// Tick runs one frame. dt is the frame duration in seconds.
func (s *Session) Tick(dt float64) {
	s.scheduler.Once(dt)
}

// Start resets the engine and begins a new game. It does nothing while a game is running.
func (s *Session) Start() error {
	if s.running {
		return nil
	}
	if err := s.engine.Reset(); err != nil {
		return err
	}
	s.engine.Events()
	s.board.CancelAnimation()
	s.input.Reset()
	s.clearing = false
	s.congrats = false

	s.stepFrames = s.cfg.stepFrames(s.settings.Difficulty())
	s.board.SetStepFrames(s.stepFrames)
	s.preview.SetStepFrames(s.stepFrames)
	s.board.Update(true)
	s.preview.Update(true)

	s.frame = 0
	s.running = true
	s.audio.MusicOn(s.cfg.MusicFadeIn)
	Logger().Info("game started", "stepFrames", s.stepFrames, "bricks", s.settings.BrickSetSize())
	return nil
}

// Stop ends the running game. An aborted game fades the music out more slowly and never
// shows the congratulation, though a new best score is still recorded.
func (s *Session) Stop(abort bool) {
	if !s.running {
		return
	}
	s.running = false
	s.clearing = false
	s.engine.End()
	s.board.CancelAnimation()
	s.board.Update(true)

	fade := s.cfg.MusicFadeOut
	if abort {
		fade = s.cfg.MusicAbortFade
	}
	s.audio.MusicOff(fade)

	score := s.engine.Score()
	Logger().Info("game stopped", "score", score, "abort", abort)
	if score <= s.highScore {
		return
	}
	s.highScore = score
	if err := s.scores.Save(score); err != nil {
		Logger().Warn("high score not saved", "score", score, "err", err)
	}
	Logger().Info("new high score", "score", score)
	if !abort {
		s.congrats = true
		s.audio.Play(audio.SoundCongrats)
	}
}

// Abort stops the game and hides any congratulation.
func (s *Session) Abort() {
	s.Stop(true)
	s.congrats = false
}

// TogglePause pauses or resumes the running game.
func (s *Session) TogglePause() {
	if !s.running {
		return
	}
	paused := !s.engine.Paused()
	s.engine.SetPaused(paused)
	s.board.Update(true)
	s.audio.MusicPause(s.cfg.PauseFade)
	Logger().Info("pause", "paused", paused)
}

// Resize fits the board and the preview into their pixel areas. A stopped or paused game is
// redrawn at once.
func (s *Session) Resize(boardW, boardH, previewW, previewH int) {
	s.board.Resize(boardW, boardH)
	s.preview.Resize(previewW, previewH)
	if !s.running || s.engine.Paused() {
		s.board.Update(true)
		s.preview.Update(true)
	}
}

// DismissCongrats hides the new-high-score congratulation.
func (s *Session) DismissCongrats() { s.congrats = false }

func (s *Session) Score() int                 { return s.engine.Score() }
func (s *Session) HighScore() int             { return s.highScore }
func (s *Session) Running() bool              { return s.running }
func (s *Session) Paused() bool               { return s.engine.Paused() }
func (s *Session) Congrats() bool             { return s.congrats }
func (s *Session) Clearing() bool             { return s.clearing }
func (s *Session) Frame() int                 { return s.frame }
func (s *Session) StepFrames() int            { return s.stepFrames }
func (s *Session) Engine() *engine.Engine     { return s.engine }
func (s *Session) Settings() *settings.Set    { return s.settings }
func (s *Session) Input() *input.Tracker      { return s.input }
func (s *Session) Scheduler() *tick.Scheduler { return s.scheduler }
func (s *Session) Board() *render.Renderer    { return s.board }
func (s *Session) Preview() *render.Renderer  { return s.preview }
func (s *Session) Bonuses() []Bonus           { return s.bonuses.Lines() }
func (s *Session) Config() Config             { return s.cfg }

func (s *Session) applySettings() {
	sound := s.settings.Enabled(settings.NameSound)
	music := s.settings.Enabled(settings.NameMusic)
	s.audio.SetEnabled(sound, music)
	Logger().Debug("settings applied", "sound", sound, "music", music, "difficulty", s.settings.Difficulty())
}

// clearDone runs after the board's clear animation has drawn its last frame. The step
// counter restarts from zero.
func (s *Session) clearDone() {
	s.engine.CompactClearedRows()
	s.clearing = false
	s.frame = -1
	s.dispatch()
}

// dispatch drains the engine's events. It must run right after every engine call so that a
// clear started by input stops stepping in the same frame.
func (s *Session) dispatch() {
	for _, ev := range s.engine.Events() {
		switch ev.Kind {
		case engine.EventCue:
			if ev.Cue == engine.CueGameOver {
				s.Stop(false)
			}
			if snd, ok := audio.ForCue(ev.Cue); ok {
				s.audio.Play(snd)
			}
		case engine.EventAchievement:
			s.bonuses.Add(ev.Label, ev.Points)
			Logger().Debug("achievement", "label", ev.Label, "points", ev.Points, "score", s.engine.Score())
		case engine.EventTouchdown:
			if ev.Clearing {
				s.clearing = true
				Logger().Debug("rows clearing", "rows", s.engine.ClearRows())
			}
		}
	}
}

// Command cubetris is the playable game window.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/cubetris/audio"
	"github.com/plus3/cubetris/game"
	"github.com/plus3/cubetris/highscore"
	"github.com/plus3/cubetris/inspect"
	"github.com/plus3/cubetris/render/screen"
	"github.com/plus3/cubetris/settings"
)

func configPath(name string) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return name
	}
	return filepath.Join(dir, "cubetris", name)
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	width := flag.Int("width", 720, "Window width in pixels.")
	height := flag.Int("height", 800, "Window height in pixels.")
	difficulty := flag.String("difficulty", "", "Use this difficulty for this run without saving it: Easy, Normal or Hard.")
	bricks := flag.String("bricks", "", "Use this brick set for this run without saving it: Standard or Extended.")
	sound := flag.String("sound", "", "Use this sound setting for this run without saving it: On or Off.")
	music := flag.String("music", "", "Use this music setting for this run without saving it: On or Off.")
	inspector := flag.Bool("inspect", false, "Show the debug inspector windows.")
	highscorePath := flag.String("highscore", configPath("highscore.toml"), "File holding the best score.")
	settingsPath := flag.String("settings", configPath("settings.toml"), "File holding the saved settings.")
	seed := flag.Uint64("seed", 0, "Piece selection seed. Zero picks a random one.")
	verbose := flag.Bool("v", false, "Log game events to stderr.")
	flag.Parse()

	if *verbose {
		game.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	for _, p := range []string{*highscorePath, *settingsPath} {
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return fmt.Errorf("create %s: %w", filepath.Dir(p), err)
		}
	}
	store, err := settings.OpenFileStore(*settingsPath)
	if err != nil {
		return fmt.Errorf("open settings: %w", err)
	}

	var player game.Audio = audio.Nop{}
	p := audio.NewPlayer(audio.SampleRate)
	if err := p.Open(); err != nil {
		log.Printf("Audio disabled: %v", err)
	} else {
		defer p.Close()
		player = p
	}

	board, err := screen.New(nil)
	if err != nil {
		return err
	}
	preview, err := screen.New(nil)
	if err != nil {
		return err
	}

	opts := []game.Option{
		game.WithSettingsStore(store),
		game.WithHighScores(highscore.FileStore{Path: *highscorePath}),
		game.WithAudio(player),
	}
	if *seed != 0 {
		opts = append(opts, game.WithRand(rand.New(rand.NewPCG(*seed, *seed))))
	}
	cfg := game.DefaultConfig()
	session, err := game.New(cfg, board, preview, opts...)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	err = applyOverrides(session.Settings(), map[string]string{
		settings.NameDifficulty: *difficulty,
		settings.NameBrickSet:   *bricks,
		settings.NameSound:      *sound,
		settings.NameMusic:      *music,
	})
	if err != nil {
		return err
	}

	h, err := newHUD()
	if err != nil {
		return fmt.Errorf("load fonts: %w", err)
	}

	a := &app{
		session: session,
		board:   board,
		preview: preview,
		hud:     h,
		dt:      1.0 / float64(cfg.FramesPerSecond),
	}

	if *inspector {
		a.imgui = ebitenbackend.NewEbitenBackend()
		a.imgui.CreateWindow("cubetris", *width, *height)
		imgui.CurrentIO().SetIniFilename("")
		inspect.New(session).Register()
	} else {
		ebiten.SetWindowSize(*width, *height)
		ebiten.SetWindowTitle("cubetris")
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.FramesPerSecond)

	return ebiten.RunGame(a)
}

// applyOverrides selects the given items for this run only. Empty items are skipped and
// nothing is written to the settings store.
func applyOverrides(set *settings.Set, overrides map[string]string) error {
	for name, item := range overrides {
		if item == "" {
			continue
		}
		if err := set.Stage(name, item); err != nil {
			set.Cancel()
			return fmt.Errorf("invalid %s override: %w", name, err)
		}
	}
	set.Apply()
	return nil
}

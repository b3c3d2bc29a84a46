package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/brick-breaker/internal/audio"
	"github.com/vovakirdan/brick-breaker/internal/core"
	"github.com/vovakirdan/brick-breaker/internal/game"
	"github.com/vovakirdan/brick-breaker/internal/platform/tui"
	"github.com/vovakirdan/brick-breaker/internal/storage"
)

var (
	flagFPS    int
	flagSound  bool
	flagVolume float64
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start playing in the terminal. Without --level a layout picker is shown
first.

Controls:
  Left/A, Right/D - Move the paddle
  P               - Pause
  Enter/R         - Restart (after the round ended)
  Tab             - Runs of this session
  Q/Ctrl+C        - Quit

Examples:
  breaker play
  breaker play --level wall --difficulty hard
  breaker play --sound --volume 0.3 --log-file breaker.log`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagFPS, "fps", 60, "Presentation frame rate")
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound effects")
	playCmd.Flags().Float64Var(&flagVolume, "volume", 0.5, "Sound volume between 0 and 1")
}

func runPlay(cmd *cobra.Command, args []string) error {
	// The alternate screen owns the terminal, so logs only go to a file.
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, source, err := loadConfig()
	if err != nil {
		return err
	}
	logger.Info("config loaded", "source", source, "level", cfg.Level)

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rt := core.DefaultConfig()
	rt.ScreenW = width
	rt.ScreenH = height
	rt.FrameRate = flagFPS
	rt.Seed = seed()

	if flagLevel == "" && cfg.Layout == nil {
		result, err := tui.RunMenu(rt, cfg.Level)
		if err != nil {
			return fmt.Errorf("menu: %w", err)
		}
		if result.Quit {
			return nil
		}
		cfg.Level = result.Layout
		rt = result.Config
	}

	eng, err := game.New(cfg, rt.Seed, game.WithLogger(logger))
	if err != nil {
		return err
	}

	store, err := storage.Open()
	if err != nil {
		// The game works without the ledger
		logger.Warn("session ledger unavailable", "err", err)
		store = nil
	} else {
		defer store.Close()
	}

	sinks := []game.EventSink{game.LogSink{Logger: logger}}
	if flagSound {
		player := audio.NewPlayer(flagVolume, logger)
		if err := player.Init(); err != nil {
			logger.Warn("sound disabled", "err", err)
		} else {
			defer player.Close()
			sinks = append(sinks, player)
		}
	}

	logger.Info("starting", "layout", layoutName(eng), "seed", rt.Seed)
	if err := tui.Run(tui.Options{
		Engine:  eng,
		Layout:  layoutName(eng),
		Store:   store,
		Sinks:   sinks,
		Logger:  logger,
		Runtime: rt,
	}); err != nil {
		return fmt.Errorf("running game: %w", err)
	}

	st := eng.State()
	logger.Info("finished", "best", st.BestScore(), "scores", st.HighScores())
	return nil
}

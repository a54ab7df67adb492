package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gridsnake/internal/config"
	"github.com/vovakirdan/gridsnake/internal/games/snake"
	"github.com/vovakirdan/gridsnake/internal/i18n"
	"github.com/vovakirdan/gridsnake/internal/platform/tui"
	"github.com/vovakirdan/gridsnake/internal/registry"
	"github.com/vovakirdan/gridsnake/internal/storage"
)

var (
	flagDifficulty string
	flagTheme      string
	flagLang       string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Snake in this terminal",
	Long: `Start a game of Snake.

Controls:
  Arrows/WASD  - Steer (the first key starts the game)
  Space/Enter  - Play again after game over
  P/Esc        - Pause
  T            - Toggle light/dark theme
  L            - Toggle language (English/Arabic)
  ?            - Help
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - 200ms per move
  normal - 150ms per move
  hard   - 100ms per move
  fixed  - Keep game.tick_interval from the config

Theme and language chosen with --theme/--lang (or the T/L keys) are
remembered in the scores database.

Examples:
  gridsnake play
  gridsnake play --difficulty hard
  gridsnake play --theme light --lang ar
  gridsnake play --config ./my-snake.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagTheme, "theme", "", "Theme: light or dark")
	playCmd.Flags().StringVar(&flagLang, "lang", "", "Language: en or ar")
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg := appConfig

	if flagDifficulty != "" {
		preset := config.DifficultyPreset(flagDifficulty)
		if !preset.Valid() {
			return fmt.Errorf("unknown difficulty %q: want easy, normal, hard or fixed", flagDifficulty)
		}
		config.ApplyPreset(&cfg, preset)
	}
	if flagTheme != "" && flagTheme != config.ThemeLight && flagTheme != config.ThemeDark {
		return fmt.Errorf("unknown theme %q: want light or dark", flagTheme)
	}
	if flagLang != "" {
		if _, err := i18n.Parse(flagLang); err != nil {
			return err
		}
	}

	game, err := registry.Create(snake.ID)
	if err != nil {
		return err
	}

	// The UI owns the terminal; log to a file instead.
	logFile, err := openLogFile(cfg.Log.File)
	if err != nil {
		return err
	}
	defer logFile.Close()
	fileLogger, err := newLogger(logFile, cfg.Log.Level)
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		logger.Warn("could not open scores database, scores will not be saved", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
		savePreferenceFlags(store)
	}

	opts := tui.OptionsFromConfig(cfg)
	opts.Width, opts.Height = 80, 36
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		opts.Width, opts.Height = w, h
	}
	if flagTheme != "" {
		opts.Theme = flagTheme
	}
	if flagLang != "" {
		opts.Language, _ = i18n.Parse(flagLang)
	}
	opts.Logger = fileLogger

	fileLogger.Info("starting game",
		"config", appSource,
		"difficulty", cfg.Game.Difficulty,
		"interval", cfg.Game.TickInterval,
		"seed", cfg.Game.Seed,
	)
	if err := tui.Run(game, store, opts); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// savePreferenceFlags stores explicit --theme/--lang so they stick.
func savePreferenceFlags(store *storage.Store) {
	if flagTheme != "" {
		if err := store.SetTheme(flagTheme); err != nil {
			logger.Warn("could not save theme", "error", err)
		}
	}
	if flagLang != "" {
		if err := store.SetLanguage(flagLang); err != nil {
			logger.Warn("could not save language", "error", err)
		}
	}
}

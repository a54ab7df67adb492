// gridsnake is a classic Snake game for the terminal, playable locally or
// over SSH.
//
// Usage:
//
//	gridsnake play           - Play in this terminal
//	gridsnake sim            - Run the engine headless with scripted moves
//	gridsnake scores         - Show high scores and recent runs
//	gridsnake serve          - Start SSH server for remote play
//	gridsnake list           - List registered games
//	gridsnake config         - Print the effective configuration
//
// Global flags:
//
//	--config <path>     - Config file (default search: ~/.gridsnake/config.yaml, ./configs/gridsnake.yaml)
//	--seed <value>      - Set RNG seed for reproducible food placement
//	--db <path>         - Set database path (default: ~/.gridsnake/scores.db)
//	--log-level <lvl>   - debug, info, warn, error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridsnake/internal/config"

	// Import games to register them
	_ "github.com/vovakirdan/gridsnake/internal/games/snake"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string

	// Populated by loadConfig before any subcommand runs.
	appConfig = config.Default()
	appSource = config.SourceEmbedded
	logger    = log.Default()
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gridsnake",
	Short: "gridsnake - Snake on a 30x30 grid in your terminal",
	Long: `gridsnake is the classic Snake game on a 30x30 grid.

Steer with the arrow keys or WASD, eat food to grow and score 10 points,
and avoid the walls and your own body.

Examples:
  gridsnake play
  gridsnake play --difficulty hard --lang ar
  gridsnake sim --seed 7 --moves "L,,U,R" --ticks 40
  gridsnake scores --runs
  gridsnake serve --ssh :2222`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (overrides storage.path)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig resolves the configuration and applies global flag overrides.
func loadConfig(cmd *cobra.Command, _ []string) error {
	cfg, src, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Game.Seed = flagSeed
	}
	if flags.Changed("db") {
		cfg.Storage.Path = flagDBPath
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}
	// Flag overrides are checked again; the preset was applied by Load.
	if err := cfg.Validate(); err != nil {
		return err
	}

	l, err := newLogger(os.Stderr, cfg.Log.Level)
	if err != nil {
		return err
	}

	appConfig, appSource, logger = cfg, src, l
	logger.Debug("configuration loaded", "source", src)
	return nil
}

// newLogger builds the application logger writing to w.
func newLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "gridsnake",
		Level:           lvl,
	})
	return l, nil
}

// openLogFile opens (appending) the log file used while the full-screen UI
// owns the terminal.
func openLogFile(path string) (*os.File, error) {
	path = config.ExpandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("log file: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("log file: %w", err)
	}
	return f, nil
}

// Package config provides YAML-based configuration loading, validation and
// difficulty presets for gridsnake.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gridsnake/internal/i18n"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the full application configuration.
type Config struct {
	Game    GameConfig    `yaml:"game"`
	UI      UIConfig      `yaml:"ui"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	SSH     SSHConfig     `yaml:"ssh"`
}

// GameConfig controls the host driver's cadence and seeding.
type GameConfig struct {
	TickInterval time.Duration    `yaml:"tick_interval"`
	Difficulty   DifficultyPreset `yaml:"difficulty"`
	Seed         int64            `yaml:"seed"` // 0 = seed from the clock
	Speedup      SpeedupConfig    `yaml:"speedup"`
}

// SpeedupConfig shortens the tick interval as the score grows.
type SpeedupConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MaxAt       int           `yaml:"max_at"`       // Score at which MinInterval is reached
	MinInterval time.Duration `yaml:"min_interval"` // Fastest cadence
}

// UIConfig holds presentation preferences. Theme and Language are defaults;
// values saved in storage take precedence.
type UIConfig struct {
	Theme    string `yaml:"theme"`    // "light" or "dark"
	Language string `yaml:"language"` // "en" or "ar"
	Sound    bool   `yaml:"sound"`    // terminal bell on eat / game over
}

// StorageConfig locates the SQLite database.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// LogConfig controls the charmbracelet logger.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // used while the full-screen UI owns the terminal
}

// SSHConfig configures `gridsnake serve`.
type SSHConfig struct {
	Address     string        `yaml:"address"`
	HostKey     string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

const (
	minTickInterval = 10 * time.Millisecond
	maxTickInterval = 5 * time.Second
)

// Validate checks ranges and enumerations. All failures wrap ErrInvalid.
func (c Config) Validate() error {
	var errs []error

	if c.Game.TickInterval < minTickInterval || c.Game.TickInterval > maxTickInterval {
		errs = append(errs, fmt.Errorf("game.tick_interval %s outside [%s, %s]",
			c.Game.TickInterval, minTickInterval, maxTickInterval))
	}
	if !c.Game.Difficulty.Valid() {
		errs = append(errs, fmt.Errorf("game.difficulty %q: want easy, normal, hard or fixed", c.Game.Difficulty))
	}
	if s := c.Game.Speedup; s.Enabled {
		if s.MaxAt <= 0 {
			errs = append(errs, fmt.Errorf("game.speedup.max_at must be positive, got %d", s.MaxAt))
		}
		if s.MinInterval < minTickInterval || s.MinInterval > c.Game.TickInterval {
			errs = append(errs, fmt.Errorf("game.speedup.min_interval %s outside [%s, %s]",
				s.MinInterval, minTickInterval, c.Game.TickInterval))
		}
	}
	if c.UI.Theme != ThemeLight && c.UI.Theme != ThemeDark {
		errs = append(errs, fmt.Errorf("ui.theme %q: want light or dark", c.UI.Theme))
	}
	if _, err := i18n.Parse(c.UI.Language); err != nil {
		errs = append(errs, fmt.Errorf("ui.language: %w", err))
	}
	if c.Storage.Path == "" {
		errs = append(errs, errors.New("storage.path is empty"))
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if c.SSH.IdleTimeout < 0 {
		errs = append(errs, fmt.Errorf("ssh.idle_timeout %s is negative", c.SSH.IdleTimeout))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}

// Theme names accepted by ui.theme.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

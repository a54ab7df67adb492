package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/gridsnake.yaml
var defaultYAML []byte

// Sources reported by Load.
const (
	SourceEmbedded = "embedded"
)

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}

// Default returns the embedded defaults, or the hardcoded ones if the
// embedded file cannot be parsed.
func Default() Config {
	cfg := hardcodedDefaults()
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return hardcodedDefaults()
	}
	return cfg
}

func hardcodedDefaults() Config {
	return Config{
		Game: GameConfig{
			TickInterval: 150 * time.Millisecond,
			Difficulty:   DifficultyNormal,
			Speedup: SpeedupConfig{
				MaxAt:       300,
				MinInterval: 70 * time.Millisecond,
			},
		},
		UI: UIConfig{
			Theme:    ThemeDark,
			Language: "en",
			Sound:    true,
		},
		Storage: StorageConfig{Path: "~/.gridsnake/scores.db"},
		Log: LogConfig{
			Level: "info",
			File:  "~/.gridsnake/gridsnake.log",
		},
		SSH: SSHConfig{
			Address:     ":23234",
			IdleTimeout: 30 * time.Minute,
		},
	}
}

// Load reads configuration and reports where it came from.
// Search order: customPath -> ~/.gridsnake/config.yaml -> ./configs/gridsnake.yaml -> embedded default.
// Files are overlaid on the defaults, so they only need the keys they change.
// An explicit customPath that cannot be read or parsed is an error; the
// implicit locations are skipped when missing or broken.
// The difficulty preset is applied before validation, so ranges are checked
// against the tick interval the game will actually use.
func Load(customPath string) (Config, string, error) {
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return cfg, customPath, err
		}
		return resolve(cfg, customPath)
	}

	candidates := []string{userConfigPath(), filepath.Join("configs", "gridsnake.yaml")}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		if cfg, err := loadFile(path); err == nil {
			return resolve(cfg, path)
		}
	}

	return resolve(Default(), SourceEmbedded)
}

func resolve(cfg Config, src string) (Config, string, error) {
	ApplyPreset(&cfg, cfg.Game.Difficulty)
	return cfg, src, cfg.Validate()
}

func loadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(ExpandHome(path))
	if err != nil {
		return cfg, fmt.Errorf("config: cannot read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: cannot parse %s: %w", path, err)
	}
	return cfg, nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg Config) ([]byte, error) {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: cannot encode: %w", err)
	}
	return out, nil
}

// userConfigPath returns the path to the user config file, or empty if home is unavailable.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gridsnake", "config.yaml")
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

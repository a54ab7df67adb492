package config

import "time"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed" // keep tick_interval as configured
)

// Valid reports whether p is a known preset.
func (p DifficultyPreset) Valid() bool {
	switch p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return true
	}
	return false
}

// IntervalForPreset returns the tick interval a preset selects, and false for
// DifficultyFixed (and unknown presets), which leave the configured value alone.
func IntervalForPreset(p DifficultyPreset) (time.Duration, bool) {
	switch p {
	case DifficultyEasy:
		return 200 * time.Millisecond, true
	case DifficultyNormal:
		return 150 * time.Millisecond, true
	case DifficultyHard:
		return 100 * time.Millisecond, true
	default:
		return 0, false
	}
}

// ApplyPreset sets the difficulty and, unless it is fixed, the tick interval.
func ApplyPreset(cfg *Config, p DifficultyPreset) {
	cfg.Game.Difficulty = p
	if d, ok := IntervalForPreset(p); ok {
		cfg.Game.TickInterval = d
		if cfg.Game.Speedup.MinInterval > d {
			cfg.Game.Speedup.MinInterval = d
		}
	}
}

// SpeedManager computes the tick interval for the current score.
type SpeedManager struct {
	base time.Duration
	cfg  SpeedupConfig
}

// NewSpeedManager creates a speed manager starting at base.
func NewSpeedManager(base time.Duration, cfg SpeedupConfig) *SpeedManager {
	return &SpeedManager{base: base, cfg: cfg}
}

// Level returns progress towards full speed in [0, 1].
func (m *SpeedManager) Level(score int) float64 {
	if !m.cfg.Enabled || m.cfg.MaxAt <= 0 {
		return 0
	}
	return clampF(float64(score)/float64(m.cfg.MaxAt), 0, 1)
}

// Interval interpolates linearly from base down to MinInterval.
func (m *SpeedManager) Interval(score int) time.Duration {
	level := m.Level(score)
	if level == 0 || m.cfg.MinInterval >= m.base {
		return m.base
	}
	span := float64(m.base - m.cfg.MinInterval)
	return m.base - time.Duration(level*span)
}

func clampF(val, lo, hi float64) float64 {
	return max(lo, min(hi, val))
}

package core

import "time"

// DefaultTickInterval is the reference cadence of one simulation step.
const DefaultTickInterval = 150 * time.Millisecond

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW      int           // Screen width in characters
	ScreenH      int           // Screen height in characters
	TickInterval time.Duration // Time between simulation steps
	Seed         int64         // RNG seed; 0 means the host picks one from the clock
	Language     string        // HUD language code ("en", "ar")
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:      80,
		ScreenH:      36,
		TickInterval: DefaultTickInterval,
		Language:     "en",
	}
}

// GameState is the host-facing summary of a game.
type GameState struct {
	Score     int
	HighScore int
	Started   bool
	GameOver  bool
	Paused    bool
}

// Event is something that happened during one Step or action.
type Event int

const (
	EventStarted Event = iota + 1
	EventScored
	EventGameOver
	EventRestarted
)

func (e Event) String() string {
	switch e {
	case EventStarted:
		return "started"
	case EventScored:
		return "scored"
	case EventGameOver:
		return "game_over"
	case EventRestarted:
		return "restarted"
	default:
		return "unknown"
	}
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State  GameState
	Events []Event
}

// Has reports whether ev occurred in this step.
func (r StepResult) Has(ev Event) bool {
	for _, e := range r.Events {
		if e == ev {
			return true
		}
	}
	return false
}

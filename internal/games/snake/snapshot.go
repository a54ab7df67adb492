package snake

import "github.com/vovakirdan/gridsnake/internal/engine"

// Snapshot captures the game for determinism testing and run records.
type Snapshot struct {
	Seed      int64
	Ticks     int // Ticks advanced since the last restart
	Score     int
	HighScore int
	Length    int
	Head      engine.Position
	Food      engine.Position
	Dir       engine.Direction
	Phase     engine.Phase
	Paused    bool
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Seed:      g.seed,
		Ticks:     g.ticks,
		Score:     g.state.Score,
		HighScore: max(g.highScore, g.state.Score),
		Length:    g.state.Len(),
		Head:      g.state.Head(),
		Food:      g.state.Food,
		Dir:       g.state.Direction,
		Phase:     engine.PhaseOf(g.state),
		Paused:    g.paused,
	}
}

// BoardFull reports whether the snake covers every cell of the grid.
func (s Snapshot) BoardFull() bool {
	return s.Length >= engine.GridSize*engine.GridSize
}

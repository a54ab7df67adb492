// Package engine implements the Snake simulation as a pure state machine.
//
// Every operation takes a GameState and returns a new one; nothing is mutated
// in place and the package performs no I/O. A host drives it by calling Tick at
// a fixed cadence and SubmitDirection whenever input arrives, serialising both
// onto one timeline.
package engine

import (
	"fmt"
	"strings"
)

const (
	// GridSize is the width and height of the square board in cells.
	GridSize = 30

	// FoodPoints is added to the score for every food eaten.
	FoodPoints = 10

	// InitialLength is the number of segments a fresh snake has.
	InitialLength = 3
)

// Position is a cell on the grid. Valid cells satisfy 0 <= X,Y < GridSize.
type Position struct {
	X, Y int
}

// NoFood marks a board with no free cell left for food.
var NoFood = Position{X: -1, Y: -1}

// Add returns p shifted by d.
func (p Position) Add(d Position) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}

// InBounds reports whether p lies inside the grid.
func (p Position) InBounds() bool {
	return p.X >= 0 && p.X < GridSize && p.Y >= 0 && p.Y < GridSize
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// GameState is one immutable snapshot of a game.
//
// Snake is ordered head first. Direction is the heading executed by the last
// tick; NextDirection is the validated heading the next tick will commit.
type GameState struct {
	Snake         []Position
	Food          Position
	Direction     Direction
	NextDirection Direction
	Score         int
	GameOver      bool
	GameStarted   bool
}

// Clone returns a copy that shares no memory with s.
func (s GameState) Clone() GameState {
	c := s
	c.Snake = append([]Position(nil), s.Snake...)
	return c
}

// Head returns the first segment. A zero GameState has no head and yields NoFood.
func (s GameState) Head() Position {
	if len(s.Snake) == 0 {
		return NoFood
	}
	return s.Snake[0]
}

// Len returns the number of segments.
func (s GameState) Len() int {
	return len(s.Snake)
}

// Equal reports whether two states are identical, segment by segment.
func (s GameState) Equal(o GameState) bool {
	if s.Food != o.Food || s.Direction != o.Direction || s.NextDirection != o.NextDirection ||
		s.Score != o.Score || s.GameOver != o.GameOver || s.GameStarted != o.GameStarted {
		return false
	}
	if len(s.Snake) != len(o.Snake) {
		return false
	}
	for i := range s.Snake {
		if s.Snake[i] != o.Snake[i] {
			return false
		}
	}
	return true
}

// Board draws the grid as text: 'H' head, 'o' body, '*' food, '.' empty.
// Segments outside the grid (a head that just hit a wall) are not drawn.
func (s GameState) Board() string {
	var b strings.Builder
	b.Grow((GridSize + 1) * GridSize)
	for y := range GridSize {
		for x := range GridSize {
			p := Position{X: x, Y: y}
			switch {
			case len(s.Snake) > 0 && s.Snake[0] == p:
				b.WriteByte('H')
			case Occupies(s.Snake, p):
				b.WriteByte('o')
			case s.Food == p:
				b.WriteByte('*')
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Phase is the coarse lifecycle stage of a GameState.
type Phase int

const (
	NotStarted Phase = iota
	Running
	Over
)

func (p Phase) String() string {
	switch p {
	case NotStarted:
		return "not_started"
	case Running:
		return "running"
	case Over:
		return "game_over"
	default:
		return "unknown"
	}
}

// PhaseOf classifies s. A game-over state is Over regardless of GameStarted.
func PhaseOf(s GameState) Phase {
	switch {
	case s.GameOver:
		return Over
	case s.GameStarted:
		return Running
	default:
		return NotStarted
	}
}

package engine

import (
	"math/rand"
)

// Engine owns the random source used for food placement. It holds no game
// state; all of that flows through GameState values.
type Engine struct {
	rng *rand.Rand
}

// New returns an engine whose food placement is reproducible for seed.
func New(seed int64) *Engine {
	return NewWithRand(rand.New(rand.NewSource(seed)))
}

// NewWithRand wraps an existing random source.
func NewWithRand(r *rand.Rand) *Engine {
	return &Engine{rng: r}
}

// InitialSnake returns the fixed three-segment starting snake: vertical,
// centred, head at the top.
func InitialSnake() []Position {
	c := GridSize / 2
	return []Position{
		{X: c, Y: c},
		{X: c, Y: c + 1},
		{X: c, Y: c + 2},
	}
}

// Initialize returns the fixed starting state with food placed clear of the
// snake. The game has not started until the first SubmitDirection.
func (e *Engine) Initialize() GameState {
	snake := InitialSnake()
	return GameState{
		Snake:         snake,
		Food:          e.PlaceFood(snake),
		Direction:     Up,
		NextDirection: Up,
	}
}

// SubmitDirection records a requested heading.
//
// The first call starts the game and takes the heading as given, even the
// reverse of Up. Afterwards a request that is the exact reverse of the
// committed Direction is dropped silently. Terminal states and invalid
// directions are returned unchanged.
func SubmitDirection(s GameState, d Direction) GameState {
	if s.GameOver || !d.Valid() {
		return s
	}
	next := s.Clone()
	if !s.GameStarted {
		next.GameStarted = true
		next.NextDirection = d
		return next
	}
	if s.Direction.IsOpposite(d) {
		return s
	}
	next.NextDirection = d
	return next
}

// Tick advances the game by one cell.
//
// Order: commit NextDirection, slide, eat (score, grow, respawn food), then
// check walls and body. A collision marks the state terminal and keeps the
// snake exactly where the move put it. Ticks on a state that has not started
// or is already over return it unchanged.
func (e *Engine) Tick(s GameState) GameState {
	if s.GameOver || !s.GameStarted || len(s.Snake) == 0 {
		return s
	}

	next := s.Clone()
	next.Direction = s.NextDirection
	next.Snake = Move(s.Snake, next.Direction)

	if next.Snake[0] == s.Food {
		next.Score += FoodPoints
		next.Snake = Grow(next.Snake)
		next.Food = e.PlaceFood(next.Snake)
	}

	if Collides(next.Snake) {
		next.GameOver = true
	}
	return next
}

// PlaceFood draws cells uniformly at random until one is free of the snake.
// Each attempt is an independent draw over the whole grid.
//
// A snake covering every cell leaves nowhere to go; NoFood is returned then
// rather than sampling forever.
func (e *Engine) PlaceFood(snake []Position) Position {
	if len(snake) >= GridSize*GridSize && coversBoard(snake) {
		return NoFood
	}
	for {
		p := Position{X: e.rng.Intn(GridSize), Y: e.rng.Intn(GridSize)}
		if !Occupies(snake, p) {
			return p
		}
	}
}

// coversBoard reports whether every in-grid cell holds a segment.
func coversBoard(snake []Position) bool {
	seen := make(map[Position]struct{}, len(snake))
	for _, p := range snake {
		if p.InBounds() {
			seen[p] = struct{}{}
		}
	}
	return len(seen) == GridSize*GridSize
}

package engine

import (
	"math/rand"
	"testing"
)

// running returns a started state with the given body and heading and food
// parked in a corner the test never reaches.
func running(snake []Position, dir Direction) GameState {
	return GameState{
		Snake:         snake,
		Food:          Position{X: 29, Y: 29},
		Direction:     dir,
		NextDirection: dir,
		GameStarted:   true,
	}
}

func samePositions(a, b []Position) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestInitialize(t *testing.T) {
	want := []Position{{X: 15, Y: 15}, {X: 15, Y: 16}, {X: 15, Y: 17}}

	for seed := int64(0); seed < 50; seed++ {
		s := New(seed).Initialize()

		if !samePositions(s.Snake, want) {
			t.Fatalf("seed %d: snake = %v, want %v", seed, s.Snake, want)
		}
		if s.Direction != Up || s.NextDirection != Up {
			t.Errorf("seed %d: direction = %v/%v, want UP/UP", seed, s.Direction, s.NextDirection)
		}
		if s.Score != 0 || s.GameOver || s.GameStarted {
			t.Errorf("seed %d: unexpected flags score=%d over=%v started=%v", seed, s.Score, s.GameOver, s.GameStarted)
		}
		if !s.Food.InBounds() {
			t.Errorf("seed %d: food %v out of bounds", seed, s.Food)
		}
		if Occupies(s.Snake, s.Food) {
			t.Errorf("seed %d: food %v placed on snake", seed, s.Food)
		}
		if PhaseOf(s) != NotStarted {
			t.Errorf("seed %d: phase = %v, want not_started", seed, PhaseOf(s))
		}
	}
}

func TestInitializeReturnsFreshSnake(t *testing.T) {
	e := New(1)
	a := e.Initialize()
	a.Snake[0] = Position{X: 0, Y: 0}

	b := e.Initialize()
	if b.Snake[0] != (Position{X: 15, Y: 15}) {
		t.Errorf("second Initialize shares memory with the first: head = %v", b.Snake[0])
	}
}

func TestFirstInputStartsGame(t *testing.T) {
	e := New(7)
	s := e.Initialize()
	s.Food = Position{X: 0, Y: 0}

	s = SubmitDirection(s, Left)
	if !s.GameStarted {
		t.Fatal("first direction should start the game")
	}
	if s.NextDirection != Left {
		t.Fatalf("NextDirection = %v, want LEFT", s.NextDirection)
	}
	if s.Direction != Up {
		t.Errorf("Direction should stay UP until the next tick, got %v", s.Direction)
	}

	s = e.Tick(s)
	want := []Position{{X: 14, Y: 15}, {X: 15, Y: 15}, {X: 15, Y: 16}}
	if !samePositions(s.Snake, want) {
		t.Errorf("snake = %v, want %v", s.Snake, want)
	}
	if s.Direction != Left {
		t.Errorf("Direction = %v, want LEFT", s.Direction)
	}
	if s.GameOver {
		t.Error("game should still be running")
	}
}

func TestFirstInputMayReverseDefaultHeading(t *testing.T) {
	e := New(3)
	s := e.Initialize()
	s.Food = Position{X: 0, Y: 0}

	s = SubmitDirection(s, Down)
	if s.NextDirection != Down {
		t.Fatalf("first input DOWN should be accepted, NextDirection = %v", s.NextDirection)
	}

	// Heading into the neck is fatal on the very first tick.
	s = e.Tick(s)
	if !s.GameOver {
		t.Fatal("moving DOWN into the body should end the game")
	}
	want := []Position{{X: 15, Y: 16}, {X: 15, Y: 15}, {X: 15, Y: 16}}
	if !samePositions(s.Snake, want) {
		t.Errorf("snake = %v, want %v", s.Snake, want)
	}
}

func TestReverseRejectedOnceStarted(t *testing.T) {
	s := running([]Position{{X: 10, Y: 10}, {X: 10, Y: 11}, {X: 10, Y: 12}}, Up)

	got := SubmitDirection(s, Down)
	if got.NextDirection != Up {
		t.Errorf("DOWN while heading UP should be rejected, NextDirection = %v", got.NextDirection)
	}
	if !got.Equal(s) {
		t.Error("a rejected direction must not change the state")
	}

	got = SubmitDirection(s, Left)
	if got.NextDirection != Left {
		t.Errorf("LEFT while heading UP should be accepted, NextDirection = %v", got.NextDirection)
	}
}

func TestGatingUsesCommittedDirection(t *testing.T) {
	e := New(11)
	s := running([]Position{{X: 10, Y: 10}, {X: 10, Y: 11}, {X: 10, Y: 12}}, Up)

	// LEFT is pending but UP is still the committed heading, so RIGHT is legal.
	s = SubmitDirection(s, Left)
	s = SubmitDirection(s, Right)
	if s.NextDirection != Right {
		t.Fatalf("NextDirection = %v, want RIGHT", s.NextDirection)
	}

	// After committing RIGHT, LEFT becomes the reverse.
	s = e.Tick(s)
	s = SubmitDirection(s, Left)
	if s.NextDirection != Right {
		t.Errorf("LEFT after committing RIGHT should be rejected, NextDirection = %v", s.NextDirection)
	}

	// DOWN is allowed again after a detour.
	s = SubmitDirection(s, Down)
	if s.NextDirection != Down {
		t.Errorf("DOWN after RIGHT should be accepted, NextDirection = %v", s.NextDirection)
	}
}

func TestInvalidDirectionIgnored(t *testing.T) {
	s := New(1).Initialize()
	got := SubmitDirection(s, Direction(42))
	if !got.Equal(s) {
		t.Error("an invalid direction must leave the state unchanged")
	}
	if got.GameStarted {
		t.Error("an invalid direction must not start the game")
	}
}

func TestTickBeforeStartIsNoop(t *testing.T) {
	e := New(5)
	s := e.Initialize()
	for range 10 {
		got := e.Tick(s)
		if !got.Equal(s) {
			t.Fatal("Tick before the first input should not change the state")
		}
	}
}

func TestEatGrowsAndScores(t *testing.T) {
	e := New(99)
	s := running([]Position{{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 5, Y: 7}}, Up)
	s.Food = Position{X: 5, Y: 4}

	s = e.Tick(s)
	if s.Score != FoodPoints {
		t.Errorf("score = %d, want %d", s.Score, FoodPoints)
	}
	want := []Position{{X: 5, Y: 4}, {X: 5, Y: 5}, {X: 5, Y: 6}, {X: 5, Y: 6}}
	if !samePositions(s.Snake, want) {
		t.Fatalf("snake = %v, want %v", s.Snake, want)
	}
	if Occupies(s.Snake, s.Food) {
		t.Errorf("food %v respawned on the snake", s.Food)
	}
	if !s.Food.InBounds() {
		t.Errorf("food %v out of bounds", s.Food)
	}
	if s.GameOver {
		t.Error("eating must not end the game")
	}

	// The duplicated tail is pulled along on the next slide.
	s.Food = Position{X: 29, Y: 29}
	s = e.Tick(s)
	want = []Position{{X: 5, Y: 3}, {X: 5, Y: 4}, {X: 5, Y: 5}, {X: 5, Y: 6}}
	if !samePositions(s.Snake, want) {
		t.Errorf("snake after slide = %v, want %v", s.Snake, want)
	}
	if s.Score != FoodPoints {
		t.Errorf("score changed without eating: %d", s.Score)
	}
}

func TestWallCollision(t *testing.T) {
	e := New(21)
	s := e.Initialize()
	s.Food = Position{X: 0, Y: 0}
	s = SubmitDirection(s, Up)

	for i := 1; i <= 15; i++ {
		s = e.Tick(s)
		if s.GameOver {
			t.Fatalf("game over too early at tick %d, head %v", i, s.Head())
		}
	}
	if s.Head() != (Position{X: 15, Y: 0}) {
		t.Fatalf("head after 15 ticks = %v, want (15,0)", s.Head())
	}

	s = e.Tick(s)
	if !s.GameOver {
		t.Fatal("moving UP from y=0 should end the game")
	}
	if s.Head() != (Position{X: 15, Y: -1}) {
		t.Errorf("terminal head = %v, want (15,-1)", s.Head())
	}
	if s.Len() != InitialLength {
		t.Errorf("length = %d, want %d", s.Len(), InitialLength)
	}
	if PhaseOf(s) != Over {
		t.Errorf("phase = %v, want game_over", PhaseOf(s))
	}
}

func TestWallCollisionAllSides(t *testing.T) {
	tests := []struct {
		name  string
		snake []Position
		dir   Direction
	}{
		{"left", []Position{{X: 0, Y: 5}, {X: 1, Y: 5}, {X: 2, Y: 5}}, Left},
		{"right", []Position{{X: 29, Y: 5}, {X: 28, Y: 5}, {X: 27, Y: 5}}, Right},
		{"top", []Position{{X: 5, Y: 0}, {X: 5, Y: 1}, {X: 5, Y: 2}}, Up},
		{"bottom", []Position{{X: 5, Y: 29}, {X: 5, Y: 28}, {X: 5, Y: 27}}, Down},
	}

	e := New(0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := e.Tick(running(tt.snake, tt.dir))
			if !s.GameOver {
				t.Errorf("expected wall collision heading %v from %v", tt.dir, tt.snake[0])
			}
		})
	}
}

func TestSelfCollisionKeepsCollidingPosition(t *testing.T) {
	e := New(8)
	s := running([]Position{
		{X: 5, Y: 5},
		{X: 5, Y: 6},
		{X: 6, Y: 6},
		{X: 6, Y: 5},
		{X: 6, Y: 4},
	}, Up)
	s = SubmitDirection(s, Right)

	s = e.Tick(s)
	if !s.GameOver {
		t.Fatal("turning into the body should end the game")
	}
	want := []Position{{X: 6, Y: 5}, {X: 5, Y: 5}, {X: 5, Y: 6}, {X: 6, Y: 6}, {X: 6, Y: 5}}
	if !samePositions(s.Snake, want) {
		t.Errorf("snake = %v, want the colliding position %v", s.Snake, want)
	}
}

func TestChasingTailIsSafe(t *testing.T) {
	e := New(8)
	s := running([]Position{{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 6, Y: 6}, {X: 6, Y: 5}}, Up)
	s = SubmitDirection(s, Right)

	s = e.Tick(s)
	if s.GameOver {
		t.Fatal("the tail vacates its cell on the same tick, moving into it is safe")
	}
	want := []Position{{X: 6, Y: 5}, {X: 5, Y: 5}, {X: 5, Y: 6}, {X: 6, Y: 6}}
	if !samePositions(s.Snake, want) {
		t.Errorf("snake = %v, want %v", s.Snake, want)
	}
}

func TestLoopUntilSelfCollision(t *testing.T) {
	e := New(13)
	// Length 6 heading RIGHT; turning DOWN, LEFT, UP closes a 2x2 loop onto the body.
	s := running([]Position{
		{X: 10, Y: 10},
		{X: 9, Y: 10},
		{X: 8, Y: 10},
		{X: 7, Y: 10},
		{X: 6, Y: 10},
		{X: 5, Y: 10},
	}, Right)

	for _, d := range []Direction{Down, Left} {
		s = SubmitDirection(s, d)
		s = e.Tick(s)
		if s.GameOver {
			t.Fatalf("died too early heading %v, snake %v", d, s.Snake)
		}
	}

	s = SubmitDirection(s, Up)
	s = e.Tick(s)
	if !s.GameOver {
		t.Fatalf("closing the loop should collide, snake %v", s.Snake)
	}
	if s.Head() != (Position{X: 9, Y: 10}) {
		t.Errorf("head = %v, want (9,10)", s.Head())
	}
}

func TestGameOverIsTerminal(t *testing.T) {
	e := New(17)
	s := e.Tick(running([]Position{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}, Left))
	if !s.GameOver {
		t.Fatal("setup: expected game over")
	}

	for range 5 {
		got := e.Tick(s)
		if !got.Equal(s) {
			t.Fatal("Tick on a terminal state must be idempotent")
		}
		for _, d := range Directions {
			if !SubmitDirection(s, d).Equal(s) {
				t.Fatalf("SubmitDirection(%v) changed a terminal state", d)
			}
		}
	}
}

func TestOperationsDoNotMutateInput(t *testing.T) {
	e := New(4)
	s := running([]Position{{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 5, Y: 7}}, Up)
	s.Food = Position{X: 5, Y: 4}
	before := s.Clone()

	_ = e.Tick(s)
	_ = SubmitDirection(s, Left)

	if !s.Equal(before) {
		t.Errorf("input state mutated: %+v, was %+v", s, before)
	}
}

func TestDeterminism(t *testing.T) {
	moves := []Direction{Left, Left, Down, Down, Right, Up, Up, Left}

	play := func(seed int64) GameState {
		e := New(seed)
		s := e.Initialize()
		for i := range 200 {
			s = SubmitDirection(s, moves[i%len(moves)])
			s = e.Tick(s)
		}
		return s
	}

	a := play(12345)
	b := play(12345)
	if !a.Equal(b) {
		t.Errorf("same seed diverged:\n%s\nvs\n%s", a.Board(), b.Board())
	}
}

func TestRandomPlayInvariants(t *testing.T) {
	for seed := int64(1); seed <= 200; seed++ {
		e := New(seed)
		input := rand.New(rand.NewSource(seed * 31))
		s := e.Initialize()

		for tick := 0; tick < 2000 && !s.GameOver; tick++ {
			s = SubmitDirection(s, Directions[input.Intn(len(Directions))])
			next := e.Tick(s)

			switch delta := next.Score - s.Score; delta {
			case 0:
				if next.Len() != s.Len() {
					t.Fatalf("seed %d tick %d: length %d -> %d without eating", seed, tick, s.Len(), next.Len())
				}
				if next.Food != s.Food {
					t.Fatalf("seed %d tick %d: food moved without being eaten", seed, tick)
				}
			case FoodPoints:
				if next.Len() != s.Len()+1 {
					t.Fatalf("seed %d tick %d: length %d -> %d after eating", seed, tick, s.Len(), next.Len())
				}
				if Occupies(next.Snake, next.Food) || !next.Food.InBounds() {
					t.Fatalf("seed %d tick %d: bad food placement %v", seed, tick, next.Food)
				}
			default:
				t.Fatalf("seed %d tick %d: score jumped by %d", seed, tick, delta)
			}

			if !next.GameOver {
				for _, seg := range next.Snake {
					if !seg.InBounds() {
						t.Fatalf("seed %d tick %d: live segment %v out of bounds", seed, tick, seg)
					}
				}
				if HitsSelf(next.Snake) {
					t.Fatalf("seed %d tick %d: overlap not detected", seed, tick)
				}
			}
			s = next
		}
	}
}

func TestPlaceFoodLastFreeCell(t *testing.T) {
	e := New(2)
	free := Position{X: 29, Y: 29}

	snake := make([]Position, 0, GridSize*GridSize)
	for y := range GridSize {
		for x := range GridSize {
			if p := (Position{X: x, Y: y}); p != free {
				snake = append(snake, p)
			}
		}
	}

	if got := e.PlaceFood(snake); got != free {
		t.Errorf("PlaceFood = %v, want the only free cell %v", got, free)
	}

	full := append(snake, free)
	if got := e.PlaceFood(full); got != NoFood {
		t.Errorf("PlaceFood on a full board = %v, want NoFood", got)
	}
}

func TestPlaceFoodUsesWholeGrid(t *testing.T) {
	e := New(77)
	snake := InitialSnake()
	seen := make(map[Position]bool)
	for range 20000 {
		p := e.PlaceFood(snake)
		if !p.InBounds() || Occupies(snake, p) {
			t.Fatalf("bad placement %v", p)
		}
		seen[p] = true
	}
	// 897 free cells; 20000 uniform draws miss one with negligible probability.
	if len(seen) < GridSize*GridSize-InitialLength-5 {
		t.Errorf("only %d distinct cells drawn", len(seen))
	}
}

func TestDiff(t *testing.T) {
	e := New(6)
	s0 := e.Initialize()
	s0.Food = Position{X: 15, Y: 14}

	s1 := SubmitDirection(s0, Up)
	if ev := Diff(s0, s1); !ev.Started || ev.Ate || ev.Died {
		t.Errorf("start events = %+v", ev)
	}

	s2 := e.Tick(s1)
	ev := Diff(s1, s2)
	if !ev.Ate || ev.ScoreDelta != FoodPoints || ev.Started || ev.Died {
		t.Errorf("eat events = %+v", ev)
	}

	dead := e.Tick(running([]Position{{X: 0, Y: 3}, {X: 1, Y: 3}, {X: 2, Y: 3}}, Left))
	alive := running([]Position{{X: 0, Y: 3}, {X: 1, Y: 3}, {X: 2, Y: 3}}, Left)
	if ev := Diff(alive, dead); !ev.Died || ev.Ate {
		t.Errorf("death events = %+v", ev)
	}
	if Diff(dead, dead).Any() {
		t.Error("no events expected between identical states")
	}
}

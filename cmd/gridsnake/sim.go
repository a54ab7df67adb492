package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridsnake/internal/engine"
)

var (
	flagMoves string
	flagTicks int
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run the engine headless with scripted moves",
	Long: `Run the simulation without a terminal UI and print the final board.

--moves is a comma-separated list with one entry per tick: a direction
(U, D, L, R or UP, DOWN, LEFT, RIGHT) submitted before that tick, or an
empty entry to submit nothing. The game starts with the first direction.

Examples:
  gridsnake sim --seed 7 --moves "U"
  gridsnake sim --seed 7 --moves "L,,,U,,,R" --ticks 50`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().StringVar(&flagMoves, "moves", "", "Comma-separated directions, one per tick")
	simCmd.Flags().IntVar(&flagTicks, "ticks", 0, "Ticks to run (default: number of moves)")
}

func runSim(cmd *cobra.Command, _ []string) error {
	seed := appConfig.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	_, err := simulate(cmd.OutOrStdout(), seed, flagMoves, flagTicks)
	return err
}

// parseMoves turns "L,,U" into one optional direction per tick.
func parseMoves(s string) ([]*engine.Direction, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	moves := make([]*engine.Direction, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		d, err := engine.ParseDirection(p)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
		moves[i] = &d
	}
	return moves, nil
}

// simulate plays moves against a fresh engine and prints the outcome.
func simulate(w io.Writer, seed int64, movesSpec string, ticks int) (engine.GameState, error) {
	moves, err := parseMoves(movesSpec)
	if err != nil {
		return engine.GameState{}, err
	}
	if ticks <= 0 {
		ticks = len(moves)
	}

	eng := engine.New(seed)
	state := eng.Initialize()

	ran := 0
	for i := 0; i < ticks && !state.GameOver; i++ {
		if i < len(moves) && moves[i] != nil {
			state = engine.SubmitDirection(state, *moves[i])
		}
		prev := state
		state = eng.Tick(state)
		ran++

		if ev := engine.Diff(prev, state); ev.Ate || ev.Died {
			logger.Debug("tick", "n", ran, "head", state.Head(), "ate", ev.Ate, "died", ev.Died)
		}
	}

	fmt.Fprintf(w, "seed: %d  ticks: %d\n", seed, ran)
	fmt.Fprint(w, state.Board())
	fmt.Fprintf(w, "score: %d  length: %d  phase: %s  head: %s  food: %s\n",
		state.Score, state.Len(), engine.PhaseOf(state), state.Head(), state.Food)
	return state, nil
}

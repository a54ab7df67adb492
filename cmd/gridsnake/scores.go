package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridsnake/internal/games/snake"
	"github.com/vovakirdan/gridsnake/internal/platform/tui"
	"github.com/vovakirdan/gridsnake/internal/storage"
)

var (
	flagShowRuns bool
	flagClear    bool
	flagBoard    bool
	flagLimit    int
	flagRunID    string
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top scores and play statistics.

Examples:
  gridsnake scores
  gridsnake scores --runs
  gridsnake scores --run 1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4bed
  gridsnake scores --tui
  gridsnake scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagShowRuns, "runs", false, "Also list recent runs")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores and runs")
	scoresCmd.Flags().BoolVar(&flagBoard, "tui", false, "Open the interactive scoreboard")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of entries to show")
	scoresCmd.Flags().StringVar(&flagRunID, "run", "", "Show one run by ID (as listed by --runs)")
}

func runScores(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(appConfig.Storage.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(snake.ID); err != nil {
			return err
		}
		logger.Info("scores cleared", "db", appConfig.Storage.Path)
		return nil
	}

	if flagRunID != "" {
		return printRun(cmd.OutOrStdout(), store, flagRunID)
	}

	if flagBoard {
		theme, err := store.Theme(appConfig.UI.Theme)
		if err != nil {
			return err
		}
		return tui.RunScoreboard(store, snake.ID, tui.ThemeByName(theme), 80, 24)
	}

	return printScores(cmd.OutOrStdout(), store, flagLimit, flagShowRuns)
}

func printScores(w io.Writer, store *storage.Store, limit int, withRuns bool) error {
	scores, err := store.TopScores(snake.ID, limit)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "High Scores - Snake")
	fmt.Fprintln(w)

	if len(scores) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Run 'gridsnake play' to set the first high score!")
	} else {
		fmt.Fprintf(w, "  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
		fmt.Fprintf(w, "  %-4s  %-10s  %s\n", "----", "-----", "----")
		for i, entry := range scores {
			fmt.Fprintf(w, "  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
		}

		stats, err := store.Stats(snake.ID)
		if err != nil {
			return err
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Best: %d  Games: %d  Average: %.1f  Last played: %s\n",
			stats.HighScore, stats.GamesCount, stats.AvgScore, stats.LastPlayed.Format("2006-01-02 15:04"))
	}

	if !withRuns {
		return nil
	}

	runs, err := store.RecentRuns(snake.ID, limit)
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Recent Runs")
	fmt.Fprintln(w)
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		return nil
	}
	fmt.Fprintf(w, "  %-36s  %-6s  %-6s  %-6s  %-10s  %s\n", "ID", "Score", "Length", "Ticks", "End", "Date")
	for _, r := range runs {
		fmt.Fprintf(w, "  %-36s  %-6d  %-6d  %-6d  %-10s  %s\n",
			r.ID, r.Score, r.Length, r.Ticks, r.EndReason, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

// printRun shows every recorded field of one run.
func printRun(w io.Writer, store *storage.Store, id string) error {
	r, err := store.RunByID(id)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Run %s\n\n", r.ID)
	fmt.Fprintf(w, "  %-8s %s\n", "Game:", r.GameID)
	fmt.Fprintf(w, "  %-8s %d\n", "Score:", r.Score)
	fmt.Fprintf(w, "  %-8s %d\n", "Length:", r.Length)
	fmt.Fprintf(w, "  %-8s %d\n", "Ticks:", r.Ticks)
	fmt.Fprintf(w, "  %-8s %d\n", "Seed:", r.Seed)
	fmt.Fprintf(w, "  %-8s %s\n", "End:", r.EndReason)
	fmt.Fprintf(w, "  %-8s %s\n", "Date:", r.CreatedAt.Format("2006-01-02 15:04"))
	return nil
}

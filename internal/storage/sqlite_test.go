package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreOpenExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.gridsnake/scores.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".gridsnake", "scores.db")); err != nil {
		t.Errorf("Database not created under the home directory: %v", err)
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	store.SaveScore("snake", 40)
	store.SetTheme("light")
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	if high, _ := store.HighScore("snake"); high != 40 {
		t.Errorf("Expected high score 40 after reopen, got %d", high)
	}
	if theme, _ := store.Theme("dark"); theme != "light" {
		t.Errorf("Expected theme light after reopen, got %q", theme)
	}
}

func TestStoreInMemory(t *testing.T) {
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	defer store.Close()

	if _, err := store.SaveScore("snake", 10); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	if high, _ := store.HighScore("snake"); high != 10 {
		t.Errorf("Expected 10, got %d", high)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("snake", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("other", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("snake", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in descending order: %v", scores)
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt was not populated")
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("snake", (i+1)*100)
	}

	scores, err := store.TopScores("snake", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("snake")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("snake", 100)
	store.SaveScore("snake", 300)
	store.SaveScore("snake", 200)

	high, err = store.HighScore("snake")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("snake", 100)
	store.SaveScore("snake", 200)
	store.SaveScore("other", 300)
	store.SaveRun(Run{GameID: "snake", Score: 100})
	store.SaveRun(Run{GameID: "other", Score: 300})

	if err := store.ClearScores("snake"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("snake", 10); len(scores) != 0 {
		t.Errorf("Expected 0 snake scores after clear, got %d", len(scores))
	}
	if scores, _ := store.TopScores("other", 10); len(scores) != 1 {
		t.Errorf("Other game scores should not be affected")
	}
	if runs, _ := store.RecentRuns("snake", 10); len(runs) != 0 {
		t.Errorf("Expected snake runs to be cleared, got %v", runs)
	}
	if runs, _ := store.RecentRuns("other", 10); len(runs) != 1 {
		t.Errorf("Other game runs should not be affected, got %v", runs)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Stats("snake")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", empty)
	}

	store.SaveScore("snake", 10)
	store.SaveScore("snake", 30)

	stats, err := store.Stats("snake")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 30 || stats.TotalScore != 40 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.AvgScore != 20 {
		t.Errorf("Expected average 20, got %v", stats.AvgScore)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed was not populated")
	}
}

func TestStoreRuns(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(Run{GameID: "snake", Score: 30, Length: 6, Ticks: 120, Seed: 42})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("SaveRun() returned a non-UUID id %q", id)
	}

	got, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got.Score != 30 || got.Length != 6 || got.Ticks != 120 || got.Seed != 42 {
		t.Errorf("Run fields not round-tripped: %+v", got)
	}
	if got.EndReason != EndCollision {
		t.Errorf("Expected default end reason %q, got %q", EndCollision, got.EndReason)
	}

	second, err := store.SaveRun(Run{GameID: "snake", Score: 10, EndReason: EndQuit})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	runs, err := store.RecentRuns("snake", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != second {
		t.Errorf("Expected newest run first, got %v", runs)
	}

	limited, _ := store.RecentRuns("snake", 1)
	if len(limited) != 1 {
		t.Errorf("Expected limit to apply, got %d runs", len(limited))
	}
}

func TestStoreRecentRunsPerGame(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveRun(Run{GameID: "other", Score: 50}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	snakeID, err := store.SaveRun(Run{GameID: "snake", Score: 20})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	runs, err := store.RecentRuns("snake", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != snakeID {
		t.Errorf("Expected only the snake run, got %+v", runs)
	}

	if runs, _ := store.RecentRuns("missing", 10); len(runs) != 0 {
		t.Errorf("Expected no runs for an unknown game, got %d", len(runs))
	}
}

func TestStoreRunErrors(t *testing.T) {
	store := openTestStore(t)

	_, err := store.RunByID(uuid.NewString())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	if _, err := store.SaveRun(Run{ID: "not-a-uuid", GameID: "snake"}); err == nil {
		t.Error("Expected an error for a malformed run id")
	}

	id := uuid.NewString()
	if _, err := store.SaveRun(Run{ID: id, GameID: "snake"}); err != nil {
		t.Fatalf("SaveRun() with explicit id failed: %v", err)
	}
	if _, err := store.SaveRun(Run{ID: id, GameID: "snake"}); err == nil {
		t.Error("Expected an error for a duplicate run id")
	}
}

func TestStorePreferences(t *testing.T) {
	store := openTestStore(t)

	theme, err := store.Theme("dark")
	if err != nil {
		t.Fatalf("Theme() failed: %v", err)
	}
	if theme != "dark" {
		t.Errorf("Expected fallback theme, got %q", theme)
	}

	if err := store.SetTheme("light"); err != nil {
		t.Fatalf("SetTheme() failed: %v", err)
	}
	if err := store.SetTheme("dark"); err != nil {
		t.Fatalf("second SetTheme() failed: %v", err)
	}
	if theme, _ := store.Theme("light"); theme != "dark" {
		t.Errorf("Expected overwritten theme dark, got %q", theme)
	}

	if err := store.SetLanguage("ar"); err != nil {
		t.Fatalf("SetLanguage() failed: %v", err)
	}
	if lang, _ := store.Language("en"); lang != "ar" {
		t.Errorf("Expected language ar, got %q", lang)
	}

	if v, _ := store.Preference("missing", "x"); v != "x" {
		t.Errorf("Expected fallback for unknown key, got %q", v)
	}
}

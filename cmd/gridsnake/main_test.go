package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/gridsnake/internal/engine"
	"github.com/vovakirdan/gridsnake/internal/storage"
)

func TestParseMoves(t *testing.T) {
	moves, err := parseMoves("L, ,up,R")
	if err != nil {
		t.Fatalf("parseMoves() failed: %v", err)
	}
	if len(moves) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(moves))
	}
	if *moves[0] != engine.Left || moves[1] != nil || *moves[2] != engine.Up || *moves[3] != engine.Right {
		t.Errorf("unexpected moves: %v", moves)
	}

	if moves, _ := parseMoves(""); moves != nil {
		t.Error("empty input should give no moves")
	}

	_, err = parseMoves("L,X")
	if !errors.Is(err, engine.ErrUnknownDirection) {
		t.Errorf("expected ErrUnknownDirection, got %v", err)
	}
}

func TestSimulateWallCollision(t *testing.T) {
	var out bytes.Buffer
	state, err := simulate(&out, 3, "U", 40)
	if err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}
	if !state.GameOver {
		t.Fatal("expected the snake to hit the top wall")
	}
	if state.Head() != (engine.Position{X: 15, Y: -1}) {
		t.Errorf("head = %s", state.Head())
	}

	text := out.String()
	if !strings.Contains(text, "ticks: 16") {
		t.Errorf("simulation should stop at the fatal tick:\n%s", text)
	}
	if !strings.Contains(text, "phase: game_over") {
		t.Errorf("phase missing:\n%s", text)
	}
}

func TestSimulateWithoutMovesNeverStarts(t *testing.T) {
	var out bytes.Buffer
	state, err := simulate(&out, 3, "", 10)
	if err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}
	if state.GameStarted || state.Head() != (engine.Position{X: 15, Y: 15}) {
		t.Errorf("game advanced without input: %+v", state)
	}
	if !strings.Contains(out.String(), "phase: not_started") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestSimulateIsReproducible(t *testing.T) {
	var a, b bytes.Buffer
	simulate(&a, 77, "L,,,,U,,,,R,,,,D", 60)
	simulate(&b, 77, "L,,,,U,,,,R,,,,D", 60)
	if a.String() != b.String() {
		t.Error("same seed and moves produced different output")
	}
}

func TestPrintScores(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()

	var empty bytes.Buffer
	if err := printScores(&empty, store, 10, true); err != nil {
		t.Fatalf("printScores() failed: %v", err)
	}
	if !strings.Contains(empty.String(), "No scores recorded yet.") || !strings.Contains(empty.String(), "No runs recorded yet.") {
		t.Errorf("unexpected empty output:\n%s", empty.String())
	}

	store.SaveScore("snake", 40)
	id, _ := store.SaveRun(storage.Run{GameID: "snake", Score: 40, Length: 7, Ticks: 90})

	var out bytes.Buffer
	if err := printScores(&out, store, 10, true); err != nil {
		t.Fatalf("printScores() failed: %v", err)
	}
	if !strings.Contains(out.String(), "Best: 40") || !strings.Contains(out.String(), id) {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestPrintRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()

	id, err := store.SaveRun(storage.Run{GameID: "snake", Score: 30, Length: 6, Ticks: 77, Seed: 1234, EndReason: storage.EndQuit})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	var out bytes.Buffer
	if err := printRun(&out, store, id); err != nil {
		t.Fatalf("printRun() failed: %v", err)
	}
	for _, want := range []string{id, "Seed:    1234", "Ticks:   77", "End:     quit"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}

	if err := printRun(&bytes.Buffer{}, store, "0b5e1d9c-3f1a-4b7e-9c1d-2a6f8e4d7b30"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound for an unknown run, got %v", err)
	}
}

func TestNewLogger(t *testing.T) {
	if _, err := newLogger(&bytes.Buffer{}, "verbose"); err == nil {
		t.Error("expected an error for an unknown level")
	}

	var buf bytes.Buffer
	l, err := newLogger(&buf, "warn")
	if err != nil {
		t.Fatalf("newLogger() failed: %v", err)
	}
	l.Info("hidden")
	l.Warn("shown", "k", 1)
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("level not applied:\n%s", buf.String())
	}
}

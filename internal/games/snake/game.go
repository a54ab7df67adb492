// Package snake adapts the simulation engine to the registry.Game interface:
// it routes actions to the engine, counts ticks, reports events and renders
// the 30x30 board with a localized HUD.
package snake

import (
	"fmt"

	"github.com/vovakirdan/gridsnake/internal/core"
	"github.com/vovakirdan/gridsnake/internal/engine"
	"github.com/vovakirdan/gridsnake/internal/i18n"
	"github.com/vovakirdan/gridsnake/internal/registry"
)

// ID is the registry and storage identifier of the game.
const ID = "snake"

// Board geometry on screen: two columns per cell plus a one-cell border.
const (
	CellWidth = 2
	BoardW    = engine.GridSize*CellWidth + 2
	BoardH    = engine.GridSize + 2
	hudRows   = 1
	hintRows  = 1
	MinW      = BoardW
	MinH      = BoardH + hudRows + hintRows
)

// Game wraps an engine.GameState and the host-side concerns around it.
type Game struct {
	eng       *engine.Engine
	state     engine.GameState
	seed      int64
	ticks     int
	paused    bool
	highScore int
	lang      i18n.Lang
	catalog   *i18n.Catalog
}

// New creates a Snake game. Call Reset before use.
func New() *Game {
	return &Game{lang: i18n.English, catalog: i18n.Default()}
}

func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string { return ID }

// Title returns the display name.
func (g *Game) Title() string { return "Snake" }

// Reset starts a fresh engine seeded from cfg.Seed.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.seed = cfg.Seed
	g.eng = engine.New(cfg.Seed)
	if lang, err := i18n.Parse(cfg.Language); err == nil {
		g.lang = lang
	}
	g.restart()
}

func (g *Game) restart() {
	g.state = g.eng.Initialize()
	g.ticks = 0
	g.paused = false
}

// HandleAction applies a key-level action immediately.
func (g *Game) HandleAction(a core.Action) core.StepResult {
	if g.eng == nil {
		g.Reset(core.DefaultConfig())
	}

	var events []core.Event
	switch {
	case a.IsMove():
		if g.paused {
			break
		}
		prev := g.state
		g.state = engine.SubmitDirection(g.state, directionFor(a))
		if engine.Diff(prev, g.state).Started {
			events = append(events, core.EventStarted)
		}

	case a == core.ActionConfirm:
		if g.state.GameOver {
			g.restart()
			events = append(events, core.EventRestarted)
		}

	case a == core.ActionPause:
		if engine.PhaseOf(g.state) == engine.Running {
			g.paused = !g.paused
		}
	}

	return core.StepResult{State: g.State(), Events: events}
}

// Step advances the engine by one tick unless paused, not started or over.
func (g *Game) Step() core.StepResult {
	if g.eng == nil || g.paused || engine.PhaseOf(g.state) != engine.Running {
		return core.StepResult{State: g.State()}
	}

	prev := g.state
	g.state = g.eng.Tick(g.state)
	g.ticks++

	ev := engine.Diff(prev, g.state)
	var events []core.Event
	if ev.Ate {
		events = append(events, core.EventScored)
	}
	if ev.Died {
		events = append(events, core.EventGameOver)
	}
	if g.state.Score > g.highScore {
		g.highScore = g.state.Score
	}
	return core.StepResult{State: g.State(), Events: events}
}

// State returns the host-facing summary.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:     g.state.Score,
		HighScore: max(g.highScore, g.state.Score),
		Started:   g.state.GameStarted,
		GameOver:  g.state.GameOver,
		Paused:    g.paused,
	}
}

// SetHighScore sets the best score shown in the HUD, typically loaded from storage.
func (g *Game) SetHighScore(score int) {
	g.highScore = score
}

// SetLanguage switches the HUD language.
func (g *Game) SetLanguage(lang i18n.Lang) {
	g.lang = lang
}

// Language returns the HUD language.
func (g *Game) Language() i18n.Lang {
	return g.lang
}

// EngineState returns a copy of the underlying engine state.
func (g *Game) EngineState() engine.GameState {
	return g.state.Clone()
}

func directionFor(a core.Action) engine.Direction {
	switch a {
	case core.ActionUp:
		return engine.Up
	case core.ActionDown:
		return engine.Down
	case core.ActionLeft:
		return engine.Left
	case core.ActionRight:
		return engine.Right
	}
	return engine.Direction(-1)
}

func (g *Game) t(key string) string {
	return g.catalog.T(g.lang, key)
}

// Render draws the HUD, the board and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < MinW || dst.Height() < MinH {
		g.renderTooSmall(dst)
		return
	}

	originX := (dst.Width() - BoardW) / 2
	board := core.NewRect(originX, hudRows, BoardW, BoardH)

	g.renderHUD(dst, board)
	dst.DrawBox(board, core.ColorBorder)
	g.renderCells(dst, board)

	switch {
	case g.state.GameOver:
		g.renderOverlay(dst, board, core.ColorDanger,
			g.t("snake.game_over"),
			fmt.Sprintf("%s: %d", g.t("snake.score"), g.state.Score),
			g.t("snake.restart_hint"))
	case !g.state.GameStarted:
		g.renderOverlay(dst, board, core.ColorAccent,
			g.t("snake.title"),
			g.t("snake.start_hint"))
	case g.paused:
		g.renderOverlay(dst, board, core.ColorAccent,
			g.t("snake.paused"),
			g.t("snake.resume_hint"))
	}

	g.drawLine(dst, board, board.Bottom(), g.t("snake.instructions"), core.ColorDim)
}

func (g *Game) renderHUD(dst *core.Screen, board core.Rect) {
	hud := fmt.Sprintf("%s   %s: %d   %s: %d   %s: %d",
		g.t("snake.title"),
		g.t("snake.score"), g.state.Score,
		g.t("snake.high_score"), max(g.highScore, g.state.Score),
		g.t("snake.length"), g.state.Len())
	g.drawLine(dst, board, 0, hud, core.ColorHUD)
}

// drawLine writes text aligned to the board edge matching the reading direction.
func (g *Game) drawLine(dst *core.Screen, board core.Rect, y int, text string, c core.Color) {
	x := board.X
	if g.lang.RTL() {
		x = board.Right() - len([]rune(text))
	}
	dst.DrawText(max(x, 0), y, text, c)
}

func (g *Game) renderCells(dst *core.Screen, board core.Rect) {
	cell := func(p engine.Position, r rune, c core.Color) {
		if !p.InBounds() {
			return
		}
		x := board.X + 1 + p.X*CellWidth
		y := board.Y + 1 + p.Y
		for i := range CellWidth {
			dst.SetColored(x+i, y, r, c)
		}
	}

	if g.state.Food != engine.NoFood {
		cell(g.state.Food, '●', core.ColorFood)
	}
	for i := len(g.state.Snake) - 1; i > 0; i-- {
		cell(g.state.Snake[i], '▓', core.ColorSnakeBody)
	}
	if len(g.state.Snake) > 0 {
		cell(g.state.Snake[0], '█', core.ColorSnakeHead)
	}
}

func (g *Game) renderOverlay(dst *core.Screen, board core.Rect, c core.Color, lines ...string) {
	w := 0
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	box := board.Centered(w+4, len(lines)*2+1)
	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, c)
	for i, l := range lines {
		x := box.X + (box.W-len([]rune(l)))/2
		dst.DrawText(x, box.Y+1+i*2, l, c)
	}
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	mid := dst.Height() / 2
	dst.DrawTextCentered(mid-1, g.t("snake.too_small"), core.ColorDanger)
	dst.DrawTextCentered(mid+1, g.catalog.Tf(g.lang, "snake.resize_hint", MinW, MinH), core.ColorDim)
}

package tui

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gridsnake/internal/config"
	"github.com/vovakirdan/gridsnake/internal/core"
	"github.com/vovakirdan/gridsnake/internal/games/snake"
	"github.com/vovakirdan/gridsnake/internal/i18n"
	"github.com/vovakirdan/gridsnake/internal/registry"
	"github.com/vovakirdan/gridsnake/internal/storage"
)

// Options configures a Model.
type Options struct {
	Width, Height int
	TickInterval  time.Duration
	Speedup       config.SpeedupConfig
	Seed          int64 // 0 = seed from the clock
	Theme         string
	Language      i18n.Lang
	Sound         bool
	Bell          io.Writer // receives the bell byte; defaults to stdout
	Logger        *log.Logger
}

// OptionsFromConfig builds model options from the loaded configuration.
func OptionsFromConfig(cfg config.Config) Options {
	lang, _ := i18n.Parse(cfg.UI.Language)
	return Options{
		TickInterval: cfg.Game.TickInterval,
		Speedup:      cfg.Game.Speedup,
		Seed:         cfg.Game.Seed,
		Theme:        cfg.UI.Theme,
		Language:     lang,
		Sound:        cfg.UI.Sound,
	}
}

// Optional capabilities of a game, discovered by type assertion.
type (
	highScoreSetter interface{ SetHighScore(score int) }
	languageSetter  interface{ SetLanguage(lang i18n.Lang) }
	snapshotter     interface{ Snapshot() snake.Snapshot }
)

// Model is the Bubble Tea model that hosts one game.
type Model struct {
	game   registry.Game
	screen *core.Screen
	store  *storage.Store
	logger *log.Logger
	opts   Options
	speed  *config.SpeedManager

	keys  KeyMap
	help  help.Model
	theme Theme
	lang  i18n.Lang

	width, height int
	ticking       bool        // a TickMsg is in flight
	runSaved      bool        // the current run has been persisted
	lastMove      core.Action // last direction key forwarded to the game
	quitting      bool
}

// NewModel resets game and prepares it for play. store may be nil.
func NewModel(game registry.Game, store *storage.Store, opts Options) *Model {
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = core.DefaultTickInterval
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		d := core.DefaultConfig()
		opts.Width, opts.Height = d.ScreenW, d.ScreenH
	}
	if opts.Language == "" {
		opts.Language = i18n.English
	}
	if opts.Bell == nil {
		opts.Bell = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	m := &Model{
		game:   game,
		store:  store,
		logger: opts.Logger,
		opts:   opts,
		speed:  config.NewSpeedManager(opts.TickInterval, opts.Speedup),
		keys:   DefaultKeyMap(),
		help:   help.New(),
		theme:  ThemeByName(opts.Theme),
		lang:   opts.Language,
		width:  opts.Width,
		height: opts.Height,
	}
	m.loadPreferences()
	m.screen = core.NewScreen(m.width, m.gameHeight())

	game.Reset(core.RuntimeConfig{
		ScreenW:      m.width,
		ScreenH:      m.gameHeight(),
		TickInterval: opts.TickInterval,
		Seed:         opts.Seed,
		Language:     string(m.lang),
	})
	if ls, ok := game.(languageSetter); ok {
		ls.SetLanguage(m.lang)
	}
	m.refreshHighScore()
	return m
}

// loadPreferences overrides the configured theme and language with stored ones.
func (m *Model) loadPreferences() {
	if m.store == nil {
		return
	}
	if name, err := m.store.Theme(m.theme.Name); err != nil {
		m.logger.Warn("cannot load theme preference", "error", err)
	} else {
		m.theme = ThemeByName(name)
	}
	code, err := m.store.Language(string(m.lang))
	if err != nil {
		m.logger.Warn("cannot load language preference", "error", err)
		return
	}
	if lang, err := i18n.Parse(code); err == nil {
		m.lang = lang
	}
}

func (m *Model) refreshHighScore() {
	hs, ok := m.game.(highScoreSetter)
	if !ok || m.store == nil {
		return
	}
	high, err := m.store.HighScore(m.game.ID())
	if err != nil {
		m.logger.Warn("cannot load high score", "error", err)
		return
	}
	hs.SetHighScore(high)
}

// gameHeight is the screen height left for the game above the help bar.
func (m *Model) gameHeight() int {
	rows := 1
	if m.help.ShowAll {
		rows = len(m.keys.FullHelp()[0])
	}
	return max(m.height-rows, 0)
}

// Init implements tea.Model. Ticks start once the first direction arrives.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.screen.Resize(m.width, m.gameHeight())
		return m, nil

	case TickMsg:
		return m, m.handleTick()
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	action := m.keys.Action(msg)

	switch action {
	case core.ActionNone:
		return nil

	case core.ActionQuit:
		if st := m.game.State(); st.Started && !st.GameOver {
			m.persistRun(storage.EndQuit)
		}
		m.quitting = true
		return tea.Quit

	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
		m.screen.Resize(m.width, m.gameHeight())
		return nil

	case core.ActionToggleTheme:
		m.theme = m.theme.Next()
		if m.store != nil {
			if err := m.store.SetTheme(m.theme.Name); err != nil {
				m.logger.Error("cannot save theme", "error", err)
			}
		}
		return nil

	case core.ActionToggleLanguage:
		m.lang = i18n.Next(m.lang)
		if ls, ok := m.game.(languageSetter); ok {
			ls.SetLanguage(m.lang)
		}
		if m.store != nil {
			if err := m.store.SetLanguage(string(m.lang)); err != nil {
				m.logger.Error("cannot save language", "error", err)
			}
		}
		return nil
	}

	if action.IsMove() {
		// Key repeat would otherwise resubmit the same heading every frame.
		if action == m.lastMove || m.game.State().Paused {
			return nil
		}
		m.lastMove = action
	}

	res := m.game.HandleAction(action)
	if res.Has(core.EventStarted) {
		m.logger.Debug("run started", "seed", m.opts.Seed)
	}
	if res.Has(core.EventRestarted) {
		m.runSaved = false
		m.lastMove = core.ActionNone
		m.refreshHighScore()
		m.logger.Debug("run restarted")
	}
	return m.armTick()
}

func (m *Model) handleTick() tea.Cmd {
	m.ticking = false
	res := m.game.Step()

	var cmds []tea.Cmd
	if res.Has(core.EventScored) {
		m.logger.Debug("food eaten", "score", res.State.Score)
		cmds = append(cmds, m.bell())
	}
	if res.Has(core.EventGameOver) {
		reason := storage.EndCollision
		if snap, ok := m.game.(snapshotter); ok && snap.Snapshot().BoardFull() {
			reason = storage.EndBoardFull
		}
		m.persistRun(reason)
		m.lastMove = core.ActionNone
		cmds = append(cmds, m.bell())
	}
	cmds = append(cmds, m.armTick())
	return batch(cmds)
}

// batch drops nil commands so an idle tick yields a nil Cmd.
func batch(cmds []tea.Cmd) tea.Cmd {
	valid := cmds[:0]
	for _, c := range cmds {
		if c != nil {
			valid = append(valid, c)
		}
	}
	switch len(valid) {
	case 0:
		return nil
	case 1:
		return valid[0]
	}
	return tea.Batch(valid...)
}

// armTick schedules the next tick while the game is running and unpaused.
func (m *Model) armTick() tea.Cmd {
	st := m.game.State()
	if m.ticking || !st.Started || st.GameOver || st.Paused {
		return nil
	}
	m.ticking = true
	return tickCmd(m.speed.Interval(st.Score))
}

func (m *Model) bell() tea.Cmd {
	if !m.opts.Sound {
		return nil
	}
	w := m.opts.Bell
	return func() tea.Msg {
		w.Write([]byte{'\a'}) //nolint:errcheck // best effort
		return nil
	}
}

// persistRun saves the score and the run once per game.
func (m *Model) persistRun(reason string) {
	if m.runSaved {
		return
	}
	m.runSaved = true

	st := m.game.State()
	run := storage.Run{
		GameID:    m.game.ID(),
		Score:     st.Score,
		Seed:      m.opts.Seed,
		EndReason: reason,
	}
	if snap, ok := m.game.(snapshotter); ok {
		s := snap.Snapshot()
		run.Length, run.Ticks, run.Seed = s.Length, s.Ticks, s.Seed
	}
	m.logger.Info("run finished", "score", run.Score, "length", run.Length, "ticks", run.Ticks, "reason", reason)

	if m.store == nil {
		return
	}
	if st.Score > 0 {
		if _, err := m.store.SaveScore(m.game.ID(), st.Score); err != nil {
			m.logger.Error("cannot save score", "error", err)
		}
	}
	if _, err := m.store.SaveRun(run); err != nil {
		m.logger.Error("cannot save run", "error", err)
	}
}

// Theme returns the active theme.
func (m *Model) Theme() Theme { return m.theme }

// Language returns the active HUD language.
func (m *Model) Language() i18n.Lang { return m.lang }

// View renders the current state to a string for display.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	bar := m.theme.Style(core.ColorDim).Render(m.statusLine() + "   " + m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, RenderScreen(m.screen, m.theme), bar)
}

// statusLine names the active theme and language in the active language.
func (m *Model) statusLine() string {
	return fmt.Sprintf("%s: %s  %s: %s",
		i18n.T(m.lang, "ui.theme"), i18n.T(m.lang, "ui."+m.theme.Name),
		i18n.T(m.lang, "ui.language"), i18n.T(m.lang, "ui.language_name"))
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, store *storage.Store, opts Options) error {
	model := NewModel(game, store, opts)

	p := tea.NewProgram(model, tea.WithAltScreen())

	_, err := p.Run()
	return err
}

package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/binsort/internal/config"
	"github.com/vovakirdan/binsort/internal/core"
	"github.com/vovakirdan/binsort/internal/games/binsort"
	"github.com/vovakirdan/binsort/internal/registry"
	"github.com/vovakirdan/binsort/internal/reward"
	"github.com/vovakirdan/binsort/internal/storage"
)

// runDetails is implemented by games that expose the full run for the
// score log and the reward offer.
type runDetails interface {
	Run() binsort.State
	Config() config.BinSortConfig
}

// boardStore is implemented by games that persist their high-score list.
type boardStore interface {
	AttachStore(kv binsort.KeyValue) error
}

// rewardMsg carries the result of a coupon request.
type rewardMsg struct {
	coupon string
	err    error
}

// Option configures a Model.
type Option func(*Model)

// WithRewards offers a coupon after qualifying runs.
func WithRewards(c reward.Client) Option {
	return func(m *Model) { m.rewards = c }
}

// WithPlayer pre-fills the name prompt.
func WithPlayer(name string) Option {
	return func(m *Model) { m.name.SetValue(name) }
}

// Model is the Bubble Tea model for running a game: name entry, the
// simulation loop and the game-over screen.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	rewards    reward.Client
	config     core.RuntimeConfig
	keys       *KeyMapper
	pointer    Pointer
	inputFrame core.InputFrame
	gameState  core.GameState
	name       textinput.Model
	email      textinput.Model
	notice     string
	offering   bool // email prompt shown after a qualifying run
	redeeming  bool
	quitting   bool
	backToMenu bool
	exitOnBack bool
	scoreSaved bool // Whether the run has been logged for the current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...Option) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	name := textinput.New()
	name.Placeholder = "YOUR NAME"
	name.Prompt = "Name: "
	name.CharLimit = config.DefaultBinSortConfig().Rules.NameLimit
	name.Focus()

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.Prompt = "Email for a reward coupon: "
	email.CharLimit = 254

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		keys:       NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		gameState:  core.GameState{Idle: true},
		name:       name,
		email:      email,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init initializes the model and resets the game to name entry.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	if bs, ok := m.game.(boardStore); ok && m.store != nil {
		//nolint:errcheck // A broken list starts empty; the run log still works
		bs.AttachStore(m.store)
	}
	return tea.Batch(textinput.Blink, tickCmd(m.config.TickRate))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if !m.gameState.Idle && !m.gameState.GameOver {
			m.keys.MapMouseToFrame(msg, &m.pointer, &m.inputFrame)
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case rewardMsg:
		m.redeeming = false
		m.offering = false
		m.email.Blur()
		switch {
		case msg.err == nil:
			m.notice = "Your coupon: " + msg.coupon
		case errors.Is(msg.err, reward.ErrInvalidEmail):
			m.offering = true
			m.email.Focus()
			m.notice = "That email address does not look right."
		default:
			m.notice = "Reward unavailable: " + msg.err.Error()
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch {
	case m.gameState.Idle:
		m.name, cmd = m.name.Update(msg)
	case m.offering:
		m.email, cmd = m.email.Update(msg)
	}
	return m, cmd
}

// handleKey routes keyboard input to the active widget or the game.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}
	if m.gameState.Idle {
		return m.handleNameKey(msg)
	}
	if m.offering {
		return m.handleEmailKey(msg)
	}
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		return m.back()
	}
	return m, nil
}

// handleNameKey edits the player name and starts the run on Enter.
func (m Model) handleNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.back()
	case "enter":
		if err := m.game.Start(m.name.Value()); err != nil {
			m.notice = err.Error()
			return m, nil
		}
		m.notice = ""
		m.name.Blur()
		m.gameState = m.game.State()
		return m, nil
	}

	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	return m, cmd
}

// handleEmailKey edits the reward email and submits it on Enter.
func (m Model) handleEmailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.redeeming {
		return m, nil
	}
	switch msg.String() {
	case "esc":
		m.offering = false
		m.email.Blur()
		return m, nil
	case "enter":
		m.redeeming = true
		m.notice = "Requesting coupon..."
		return m, redeemCmd(m.rewards, m.email.Value(), m.gameState.Score, m.rewardTimeout())
	}

	var cmd tea.Cmd
	m.email, cmd = m.email.Update(msg)
	return m, cmd
}

// back leaves the game. Standalone programs exit, sessions return to the menu.
func (m Model) back() (tea.Model, tea.Cmd) {
	m.backToMenu = true
	if m.exitOnBack {
		return m, tea.Quit
	}
	return m, nil
}

// handleResize processes window resize events without restarting the run.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.game.Resize(m.config)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	wasOver := m.gameState.GameOver

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if wasOver && !m.gameState.GameOver {
		// Restarted
		m.scoreSaved = false
		m.offering = false
		m.notice = ""
	}

	if m.gameState.GameOver && !m.scoreSaved {
		m.finishRun()
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// finishRun logs the run once per game over and offers a reward when the
// score qualifies.
func (m *Model) finishRun() {
	m.scoreSaved = true

	run := storage.Run{GameID: m.game.ID(), Score: m.gameState.Score, Level: m.gameState.Level}
	threshold := 0
	if rd, ok := m.game.(runDetails); ok {
		st := rd.Run()
		run.PlayerName = st.Player
		run.BestCombo = st.BestCombo
		threshold = rd.Config().Reward.Threshold
	}

	if m.store != nil && run.Score > 0 {
		//nolint:errcheck // Best-effort save, game continues regardless
		m.store.SaveRun(run)
	}

	if m.rewards != nil && run.Score > 0 && run.Score >= threshold {
		m.offering = true
		m.email.Reset()
		m.email.Focus()
	}
}

// rewardTimeout bounds a coupon request.
func (m Model) rewardTimeout() time.Duration {
	if rd, ok := m.game.(runDetails); ok && rd.Config().Reward.Timeout > 0 {
		return rd.Config().Reward.Timeout
	}
	return 5 * time.Second
}

// redeemCmd asks the reward service for a coupon off the UI goroutine.
func redeemCmd(c reward.Client, email string, score int, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		coupon, err := c.Redeem(ctx, email, score)
		return rewardMsg{coupon: coupon, err: err}
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".binsort", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.gameState.Idle {
		return m.nameView()
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	lines := RenderLines(m.screen)

	if n := len(lines); n > 0 {
		switch {
		case m.offering:
			lines[n-1] = promptStyle.Render(m.email.View())
		case m.notice != "":
			lines[n-1] = promptStyle.Render(m.notice)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// nameView renders the name prompt shown before a run.
func (m Model) nameView() string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render(m.game.Title()),
		"",
		"Catch the falling waste that matches your bin.",
		"Anything else must fall past it.",
		"",
		m.name.View(),
		noticeStyle.Render(m.notice),
		"",
		hintStyle.Render("←/→ move  shift boosts  drag with the mouse  P pause"),
		hintStyle.Render("Enter start  |  Esc back"),
	)
	return lipgloss.Place(m.config.ScreenW, m.config.ScreenH,
		lipgloss.Center, lipgloss.Center, panelStyle.Render(body))
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...Option) error {
	model := NewModel(game, store, cfg, opts...)
	model.exitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}

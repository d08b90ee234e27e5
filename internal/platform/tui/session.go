package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/binsort/internal/core"
	"github.com/vovakirdan/binsort/internal/registry"
	"github.com/vovakirdan/binsort/internal/reward"
	"github.com/vovakirdan/binsort/internal/storage"
)

type sessionView int

const (
	viewMenu sessionView = iota
	viewScores
	viewGame
)

// SessionModel chains menu, scoreboard and game inside one program, which
// is what an SSH connection runs. Each child still ends its own
// standalone program with tea.Quit; the session swallows that and reads
// the child's flags instead.
type SessionModel struct {
	store    *storage.Store
	rewards  reward.Client
	config   core.RuntimeConfig
	username string

	view   sessionView
	menu   MenuModel
	scores ScoreboardModel
	game   Model
	done   bool
}

// NewSessionModel starts a session at the menu. username pre-fills the
// player prompt of every game.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, username string, rewards reward.Client) SessionModel {
	return SessionModel{
		store:    store,
		rewards:  rewards,
		config:   cfg,
		username: username,
		menu:     NewMenuModel(store, cfg),
	}
}

func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW, m.config.ScreenH = size.Width, size.Height
	}

	switch m.view {
	case viewGame:
		next, cmd := m.game.Update(msg)
		m.game = next.(Model)
		switch {
		case m.game.IsQuitting():
			return m.quit()
		case m.game.BackToMenu():
			return m.toMenu()
		}
		return m, cmd

	case viewScores:
		next, cmd := m.scores.Update(msg)
		m.scores = next.(ScoreboardModel)
		switch {
		case m.scores.IsQuitting():
			return m.quit()
		case m.scores.IsGoingBack():
			return m.toMenu()
		}
		return m, cmd
	}

	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)
	switch {
	case m.menu.IsQuitting():
		return m.quit()
	case m.menu.WantsScoreboard():
		m.view = viewScores
		m.scores = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		return m, m.scores.Init()
	case m.menu.Selected() != nil:
		return m.play(m.menu.Selected().GameID)
	}
	return m, cmd
}

// play starts a fresh game of the chosen variant.
func (m SessionModel) play(gameID string) (tea.Model, tea.Cmd) {
	game, err := registry.Create(gameID)
	if err != nil {
		return m.toMenu()
	}
	cfg := m.config
	cfg.Seed = time.Now().UnixNano()

	m.view = viewGame
	m.game = NewModel(game, m.store, cfg, WithPlayer(m.username), WithRewards(m.rewards))
	return m, m.game.Init()
}

// toMenu rebuilds the menu so best scores are current.
func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.view = viewMenu
	m.menu = NewMenuModel(m.store, m.config)
	return m, m.menu.Init()
}

func (m SessionModel) quit() (tea.Model, tea.Cmd) {
	m.done = true
	return m, tea.Quit
}

func (m SessionModel) View() string {
	switch {
	case m.done:
		return ""
	case m.view == viewGame:
		return m.game.View()
	case m.view == viewScores:
		return m.scores.View()
	}
	return m.menu.View()
}

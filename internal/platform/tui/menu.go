package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/binsort/internal/core"
	"github.com/vovakirdan/binsort/internal/registry"
	"github.com/vovakirdan/binsort/internal/storage"
)

const menuBanner = `
 ___ _        ___          _
| _ |_)_ _   / __| ___ _ _| |_
| _ \ | ' \  \__ \/ _ \ '_|  _|
|___/_|_||_| |___/\___/_|  \__|`

var (
	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)
	itemStyle = lipgloss.NewStyle().
			PaddingLeft(2)
	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Bold(true)
	bestStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))
)

// MenuItem is one selectable variant.
type MenuItem struct {
	GameID      string
	Title       string
	Description string
	Best        int // Best logged score, 0 when none
}

// MenuModel picks a variant or opens the scoreboard.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel lists the registered variants with their best logged score.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	games := registry.List()
	items := make([]MenuItem, len(games))
	for i, g := range games {
		items[i] = MenuItem{GameID: g.ID, Title: g.Title, Description: g.Description}
		if store == nil {
			continue
		}
		if best, err := store.HighScore(g.ID); err == nil {
			items[i].Best = best
		}
	}

	return MenuModel{
		items:     items,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height

	case tea.KeyMsg:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			m.quitting = true
			return m, tea.Quit
		case MenuActionUp:
			m.move(-1)
		case MenuActionDown:
			m.move(1)
		case MenuActionSelect:
			if len(m.items) > 0 {
				item := m.items[m.cursor]
				m.selected = &item
				return m, tea.Quit
			}
		case MenuActionScoreboard:
			m.openScoreboard = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// move shifts the cursor, wrapping around the list.
func (m *MenuModel) move(delta int) {
	if n := len(m.items); n > 0 {
		m.cursor = (m.cursor + delta + n) % n
	}
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var list strings.Builder
	for i, item := range m.items {
		best := ""
		if item.Best > 0 {
			best = "  " + bestStyle.Render(fmt.Sprintf("best %d", item.Best))
		}
		if i == m.cursor {
			list.WriteString(cursorStyle.Render("> "+item.Title) + best)
		} else {
			list.WriteString(itemStyle.Render(item.Title) + best)
		}
		list.WriteString("\n")
	}

	desc := ""
	if len(m.items) > 0 {
		desc = m.items[m.cursor].Description
	}

	banner := titleStyle.Render("B I N   S O R T")
	if m.config.ScreenW >= 40 {
		banner = bannerStyle.Render(strings.TrimPrefix(menuBanner, "\n"))
	}

	body := lipgloss.JoinVertical(lipgloss.Center,
		banner,
		"",
		hintStyle.Render("Select a mode"),
		"",
		panelStyle.Render(strings.TrimSuffix(list.String(), "\n")),
		hintStyle.Italic(true).Render(desc),
		"",
		hintStyle.Render("↑/↓ navigate  •  enter play  •  tab scores  •  q quit"),
	)
	return lipgloss.Place(m.config.ScreenW, m.config.ScreenH, lipgloss.Center, lipgloss.Center, body)
}

// Selected returns the chosen item, or nil.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting reports a quit request.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard reports a scoreboard request.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the runtime config, updated by resizes.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText pads text on the left to center it within width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult is where the menu leads next.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu shows the menu in its own program.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.Selected() != nil:
		result.GameID = m.Selected().GameID
	default:
		result.Quit = true
	}
	return result, nil
}

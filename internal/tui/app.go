// Package tui is the terminal dashboard: login, the live leaderboard and the
// caller's stats and achievements.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"reelhub/internal/tui/api"
	"reelhub/internal/tui/config"
	"reelhub/internal/tui/styles"
	"reelhub/internal/tui/views"
)

// View represents different screens in the TUI
type View int

const (
	ViewAuth View = iota
	ViewBoard
	ViewStats
)

// Model is the root Bubble Tea model
type Model struct {
	config    *config.Config
	apiClient *api.Client

	currentView View
	keys        KeyMap

	width  int
	height int

	isAuthenticated bool
	currentUser     string

	authModel  views.AuthModel
	boardModel views.BoardModel
	statsModel views.StatsModel

	err error
}

// New creates a new TUI application
func New(cfg *config.Config) *Model {
	apiClient := api.NewClient(cfg.GetHTTPBaseURL())

	m := &Model{
		config:      cfg,
		apiClient:   apiClient,
		currentView: ViewAuth,
		keys:        DefaultKeyMap(),
	}

	m.authModel = views.NewAuthModel(apiClient)
	m.boardModel = views.NewBoardModel(apiClient)
	m.statsModel = views.NewStatsModel(apiClient)

	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return m.authModel.Init()
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		m.authModel, _ = m.authModel.Update(msg)
		m.boardModel, _ = m.boardModel.Update(msg)
		m.statsModel, _ = m.statsModel.Update(msg)
		return m, nil

	case tea.KeyMsg:
		switch {
		// "q" must still type into the auth inputs, so only ctrl+c quits there
		case key.Matches(msg, m.keys.Quit):
			if msg.Type == tea.KeyCtrlC || m.currentView != ViewAuth {
				return m, tea.Quit
			}

		case key.Matches(msg, m.keys.Board):
			if m.isAuthenticated && m.currentView != ViewAuth {
				m.currentView = ViewBoard
				return m, m.boardModel.Init()
			}

		case key.Matches(msg, m.keys.Stats):
			if m.isAuthenticated && m.currentView != ViewAuth {
				m.currentView = ViewStats
				return m, m.statsModel.Init()
			}
		}

	case views.AuthSuccessMsg:
		m.isAuthenticated = true
		m.currentUser = msg.Username
		m.apiClient.SetToken(msg.Token)
		m.currentView = ViewBoard
		return m, m.boardModel.Init()
	}

	return m.updateCurrentView(msg)
}

// updateCurrentView routes updates to the active view
func (m Model) updateCurrentView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewAuth:
		m.authModel, cmd = m.authModel.Update(msg)
	case ViewBoard:
		m.boardModel, cmd = m.boardModel.Update(msg)
	case ViewStats:
		m.statsModel, cmd = m.statsModel.Update(msg)
	}

	return m, cmd
}

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var content string
	switch m.currentView {
	case ViewAuth:
		content = m.authModel.View()
	case ViewBoard:
		content = m.boardModel.View()
	case ViewStats:
		content = m.statsModel.View()
	default:
		content = "Unknown view"
	}

	var statusBar string
	if m.isAuthenticated {
		statusBar = m.renderStatusBar()
	}

	return styles.AppStyle.Render(content + "\n\n" + statusBar)
}

// renderStatusBar renders the bottom status bar
func (m Model) renderStatusBar() string {
	viewName := ""
	switch m.currentView {
	case ViewBoard:
		viewName = "Leaderboard"
	case ViewStats:
		viewName = "Statistics"
	}

	left := styles.StatusBarActiveStyle.Render("● " + viewName)
	right := styles.StatusBarStyle.Render("User: " + m.currentUser + " | 1-2 views | ctrl+c quit")

	spacing := m.width - len(left) - len(right) - 4
	if spacing < 0 {
		spacing = 0
	}

	return left + strings.Repeat(" ", spacing) + right
}

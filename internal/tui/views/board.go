package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"reelhub/internal/tui/api"
	"reelhub/internal/tui/styles"
	"reelhub/pkg/models"
)

// BoardModel displays the challenge leaderboard
type BoardModel struct {
	apiClient *api.Client

	board   *models.LeaderboardResponse
	windows []string
	window  int

	loading bool
	spin    spinner.Model
	err     error
	cursor  int

	width  int
	height int
}

// BoardLoadedMsg is sent when the leaderboard is loaded
type BoardLoadedMsg struct {
	Board *models.LeaderboardResponse
}

// BoardErrorMsg is sent on leaderboard errors
type BoardErrorMsg struct {
	Err error
}

// NewBoardModel creates a new leaderboard model
func NewBoardModel(apiClient *api.Client) BoardModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SpinnerStyle

	return BoardModel{
		apiClient: apiClient,
		windows:   []string{models.WindowAll, models.WindowWeek, models.WindowMonth},
		spin:      s,
	}
}

// Init initializes and loads data
func (m BoardModel) Init() tea.Cmd {
	m.loading = true
	return tea.Batch(m.spin.Tick, m.load())
}

// Update handles messages
func (m BoardModel) Update(msg tea.Msg) (BoardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("tab"))):
			m.window = (m.window + 1) % len(m.windows)
			m.cursor = 0
			m.loading = true
			return m, tea.Batch(m.spin.Tick, m.load())

		case key.Matches(msg, key.NewBinding(key.WithKeys("j", "down"))):
			if m.board != nil && m.cursor < len(m.board.Entries)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("k", "up"))):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("r"))):
			m.loading = true
			return m, tea.Batch(m.spin.Tick, m.load())
		}

	case BoardLoadedMsg:
		m.loading = false
		m.board = msg.Board
		return m, nil

	case BoardErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil
	}

	return m, nil
}

// load fetches the leaderboard
func (m BoardModel) load() tea.Cmd {
	window := m.windows[m.window]
	client := m.apiClient
	return func() tea.Msg {
		board, err := client.GetLeaderboard(context.Background(), window, "all")
		if err != nil {
			return BoardErrorMsg{Err: err}
		}
		return BoardLoadedMsg{Board: board}
	}
}

// View renders the leaderboard
func (m BoardModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("🏆 Leaderboard"))
	b.WriteString("\n\n")

	// Window tabs
	for i, w := range m.windows {
		if i == m.window {
			b.WriteString(styles.TabActiveStyle.Render(w))
		} else {
			b.WriteString(styles.TabStyle.Render(w))
		}
	}
	b.WriteString("\n")
	b.WriteString(styles.RenderDivider(44))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(m.spin.View())
		b.WriteString(styles.InfoStyle.Render("Loading..."))
		return b.String()
	}

	if m.err != nil {
		b.WriteString(styles.ErrorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
		b.WriteString(styles.HelpStyle.Render("Press 'r' to retry"))
		return b.String()
	}

	if m.board == nil || len(m.board.Entries) == 0 {
		b.WriteString(styles.InfoStyle.Render("No entries yet. Complete a challenge!"))
		return b.String()
	}

	for i, entry := range m.board.Entries {
		selected := i == m.cursor
		prefix := "  "
		style := styles.ListItemStyle
		if selected {
			prefix = "▸ "
			style = styles.ListItemSelectedStyle
		}

		rankStr := fmt.Sprintf("#%d", entry.Rank)
		switch entry.Rank {
		case 1:
			rankStr = "🥇"
		case 2:
			rankStr = "🥈"
		case 3:
			rankStr = "🥉"
		}

		username := entry.Username
		if username == "" {
			username = "anonymous"
		}

		duration := fmt.Sprintf("%dm %ds", entry.Duration/60, entry.Duration%60)
		line := fmt.Sprintf("%s%s %s — %s (%s)",
			prefix, rankStr, username,
			styles.MetaValueStyle.Render(duration),
			entry.ChallengeType)
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render("↑/↓ navigate • Tab window • r refresh"))

	return b.String()
}

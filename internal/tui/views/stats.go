package views

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"reelhub/internal/tui/api"
	"reelhub/internal/tui/styles"
	"reelhub/pkg/models"
)

// StatsModel displays the user's stats summary and achievements
type StatsModel struct {
	apiClient *api.Client

	summary      *models.GamificationSummary
	achievements []models.AchievementStatus

	loading     bool
	err         error
	selectedTab int // 0 = summary, 1 = achievements
	cursor      int

	width  int
	height int
}

// SummaryLoadedMsg is sent when the stats summary is loaded
type SummaryLoadedMsg struct {
	Summary *models.GamificationSummary
}

// AchievementsLoadedMsg is sent when the achievement list is loaded
type AchievementsLoadedMsg struct {
	Achievements []models.AchievementStatus
}

// StatsErrorMsg is sent on stats errors
type StatsErrorMsg struct {
	Err error
}

// NewStatsModel creates a new stats model
func NewStatsModel(apiClient *api.Client) StatsModel {
	return StatsModel{apiClient: apiClient}
}

// Init initializes and loads data
func (m StatsModel) Init() tea.Cmd {
	m.loading = true
	return tea.Batch(m.loadSummary(), m.loadAchievements())
}

// Update handles messages
func (m StatsModel) Update(msg tea.Msg) (StatsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("tab"))):
			m.selectedTab = (m.selectedTab + 1) % 2
			m.cursor = 0
			return m, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("j", "down"))):
			if m.selectedTab == 1 && m.cursor < len(m.achievements)-1 {
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
			return m, tea.Batch(m.loadSummary(), m.loadAchievements())
		}

	case SummaryLoadedMsg:
		m.loading = false
		m.summary = msg.Summary
		return m, nil

	case AchievementsLoadedMsg:
		m.loading = false
		m.achievements = msg.Achievements
		return m, nil

	case StatsErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil
	}

	return m, nil
}

// loadSummary fetches the stats summary
func (m StatsModel) loadSummary() tea.Cmd {
	client := m.apiClient
	return func() tea.Msg {
		summary, err := client.GetSummary(context.Background())
		if err != nil {
			return StatsErrorMsg{Err: err}
		}
		return SummaryLoadedMsg{Summary: summary}
	}
}

// loadAchievements fetches the achievement catalog
func (m StatsModel) loadAchievements() tea.Cmd {
	client := m.apiClient
	return func() tea.Msg {
		achievements, err := client.GetAchievements(context.Background())
		if err != nil {
			return StatsErrorMsg{Err: err}
		}
		return AchievementsLoadedMsg{Achievements: achievements}
	}
}

// View renders the stats view
func (m StatsModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("📈 Statistics"))
	b.WriteString("\n\n")

	summaryTab := styles.TabStyle.Render("📊 Summary")
	achievementsTab := styles.TabStyle.Render("🏅 Achievements")
	if m.selectedTab == 0 {
		summaryTab = styles.TabActiveStyle.Render("📊 Summary")
	} else {
		achievementsTab = styles.TabActiveStyle.Render("🏅 Achievements")
	}
	b.WriteString(summaryTab + " " + achievementsTab)
	b.WriteString("\n")
	b.WriteString(styles.RenderDivider(44))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(styles.InfoStyle.Render("Loading..."))
		return b.String()
	}

	if m.err != nil {
		b.WriteString(styles.ErrorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
		b.WriteString(styles.HelpStyle.Render("Press 'r' to retry"))
		return b.String()
	}

	if m.selectedTab == 0 {
		b.WriteString(m.renderSummary())
	} else {
		b.WriteString(m.renderAchievements())
	}

	b.WriteString("\n\n")
	b.WriteString(styles.HelpStyle.Render("↑/↓ navigate • Tab switch • r refresh"))

	return b.String()
}

// renderSummary renders level, XP and stat counters
func (m StatsModel) renderSummary() string {
	if m.summary == nil {
		return styles.InfoStyle.Render("No statistics available")
	}

	var card strings.Builder
	card.WriteString(styles.CardTitleStyle.Render(fmt.Sprintf("Level %d", m.summary.Level)))
	card.WriteString("\n")
	card.WriteString(styles.RenderProgressBar(30, m.summary.LevelProgress/100))
	card.WriteString(fmt.Sprintf(" %.0f%%", m.summary.LevelProgress))
	card.WriteString("\n\n")

	stats := []struct {
		label string
		key   string
		icon  string
	}{
		{"XP", models.StatXP, "⭐"},
		{"Challenges Completed", models.StatChallengesCompleted, "🎯"},
		{"Daily Streak", models.StatDailyStreak, "🔥"},
		{"Nuclear Videos", models.StatNuclearVideosWatched, "☢️"},
		{"Fire Videos", models.StatFireVideosWatched, "🎬"},
	}

	for _, stat := range stats {
		card.WriteString(fmt.Sprintf("%s %s: %s\n",
			stat.icon,
			styles.MetaKeyStyle.Render(stat.label),
			styles.MetaValueStyle.Render(fmt.Sprintf("%d", m.summary.Stats.Get(stat.key))),
		))
	}

	var b strings.Builder
	b.WriteString(styles.CardStyle.Render(card.String()))

	// Remaining counters, alphabetical
	if m.summary.Stats != nil && len(m.summary.Stats.Counters) > 0 {
		shown := map[string]bool{}
		for _, stat := range stats {
			shown[stat.key] = true
		}

		keys := make([]string, 0, len(m.summary.Stats.Counters))
		for k := range m.summary.Stats.Counters {
			if !shown[k] {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)

		for _, k := range keys {
			b.WriteString(fmt.Sprintf("  %s %s\n",
				styles.MetaKeyStyle.Render(k+":"),
				styles.MetaValueStyle.Render(fmt.Sprintf("%d", m.summary.Stats.Get(k)))))
		}
	}

	return b.String()
}

// renderAchievements renders the catalog with unlock state
func (m StatsModel) renderAchievements() string {
	if len(m.achievements) == 0 {
		return styles.InfoStyle.Render("No achievements available")
	}

	var b strings.Builder
	unlocked := 0
	for _, a := range m.achievements {
		if a.IsUnlocked {
			unlocked++
		}
	}
	b.WriteString(styles.SubtitleStyle.Render(
		fmt.Sprintf("Unlocked %d of %d", unlocked, len(m.achievements))))
	b.WriteString("\n\n")

	for i, a := range m.achievements {
		selected := i == m.cursor
		prefix := "  "
		style := styles.ListItemStyle
		if selected {
			prefix = "▸ "
			style = styles.ListItemSelectedStyle
		}

		badge := styles.BadgePrimaryStyle.Render(a.Tier)
		if a.IsUnlocked {
			badge = styles.BadgeSuccessStyle.Render("✓ " + a.Tier)
		}

		line := fmt.Sprintf("%s%s %s %s", prefix, a.Icon, a.Name, badge)
		b.WriteString(style.Render(line))
		b.WriteString("\n")

		if selected {
			b.WriteString("    " + styles.MetaKeyStyle.Render(a.Description))
			b.WriteString("\n")
			if !a.IsUnlocked {
				b.WriteString("    " + styles.RenderProgressBar(20, a.Progress/100))
				b.WriteString(fmt.Sprintf(" %.0f%%", a.Progress))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"reelhub/internal/tui/api"
	"reelhub/internal/tui/styles"
	"reelhub/pkg/models"
)

// AuthMode represents login or register mode
type AuthMode int

const (
	ModeLogin AuthMode = iota
	ModeRegister
)

// AuthSuccessMsg is sent when authentication succeeds
type AuthSuccessMsg struct {
	Username string
	Token    string
	User     *models.User
}

// AuthErrorMsg is sent when authentication fails
type AuthErrorMsg struct {
	Err error
}

// AuthModel handles login/register forms
type AuthModel struct {
	mode      AuthMode
	apiClient *api.Client

	usernameInput textinput.Model
	passwordInput textinput.Model
	confirmInput  textinput.Model

	focusIndex int
	loading    bool
	err        error

	width  int
	height int
}

// NewAuthModel creates a new auth model
func NewAuthModel(apiClient *api.Client) AuthModel {
	usernameInput := textinput.New()
	usernameInput.Placeholder = "Username"
	usernameInput.CharLimit = 50
	usernameInput.Width = 30
	usernameInput.Focus()

	passwordInput := textinput.New()
	passwordInput.Placeholder = "Password"
	passwordInput.CharLimit = 100
	passwordInput.Width = 30
	passwordInput.EchoMode = textinput.EchoPassword
	passwordInput.EchoCharacter = '•'

	confirmInput := textinput.New()
	confirmInput.Placeholder = "Confirm Password"
	confirmInput.CharLimit = 100
	confirmInput.Width = 30
	confirmInput.EchoMode = textinput.EchoPassword
	confirmInput.EchoCharacter = '•'

	return AuthModel{
		mode:          ModeLogin,
		apiClient:     apiClient,
		usernameInput: usernameInput,
		passwordInput: passwordInput,
		confirmInput:  confirmInput,
	}
}

// Init initializes the model
func (m AuthModel) Init() tea.Cmd {
	return textinput.Blink
}

// fieldCount returns the number of input fields in the active mode
func (m AuthModel) fieldCount() int {
	if m.mode == ModeRegister {
		return 3
	}
	return 2
}

// Update handles messages
func (m AuthModel) Update(msg tea.Msg) (AuthModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("tab"))):
			m.focusIndex = (m.focusIndex + 1) % m.fieldCount()
			return m.applyFocus(), nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("shift+tab"))):
			m.focusIndex--
			if m.focusIndex < 0 {
				m.focusIndex = m.fieldCount() - 1
			}
			return m.applyFocus(), nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
			if m.focusIndex == m.fieldCount()-1 {
				return m.submit()
			}
			m.focusIndex++
			return m.applyFocus(), nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+t"))):
			if m.mode == ModeLogin {
				m.mode = ModeRegister
			} else {
				m.mode = ModeLogin
			}
			m.focusIndex = 0
			m.err = nil
			return m.applyFocus(), nil
		}

	case AuthErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil
	}

	return m.updateInputs(msg)
}

// applyFocus moves textinput focus to the active field
func (m AuthModel) applyFocus() AuthModel {
	inputs := []*textinput.Model{&m.usernameInput, &m.passwordInput, &m.confirmInput}
	for i, input := range inputs {
		if i == m.focusIndex {
			input.Focus()
		} else {
			input.Blur()
		}
	}
	return m
}

// updateInputs routes keystrokes to the focused input
func (m AuthModel) updateInputs(msg tea.Msg) (AuthModel, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.usernameInput, cmd = m.usernameInput.Update(msg)
	cmds = append(cmds, cmd)
	m.passwordInput, cmd = m.passwordInput.Update(msg)
	cmds = append(cmds, cmd)
	if m.mode == ModeRegister {
		m.confirmInput, cmd = m.confirmInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// submit validates inputs and fires the auth request
func (m AuthModel) submit() (AuthModel, tea.Cmd) {
	username := strings.TrimSpace(m.usernameInput.Value())
	password := m.passwordInput.Value()

	if username == "" || password == "" {
		m.err = fmt.Errorf("username and password are required")
		return m, nil
	}

	if m.mode == ModeRegister && password != m.confirmInput.Value() {
		m.err = fmt.Errorf("passwords do not match")
		return m, nil
	}

	m.loading = true
	m.err = nil

	mode := m.mode
	client := m.apiClient
	return m, func() tea.Msg {
		ctx := context.Background()

		var resp *models.LoginResponse
		var err error
		if mode == ModeRegister {
			resp, err = client.Register(ctx, username, password)
		} else {
			resp, err = client.Login(ctx, username, password)
		}
		if err != nil {
			return AuthErrorMsg{Err: err}
		}

		return AuthSuccessMsg{
			Username: resp.User.Username,
			Token:    resp.Token,
			User:     resp.User,
		}
	}
}

// View renders the auth form
func (m AuthModel) View() string {
	var b strings.Builder

	title := "🎬 ReelHub — Login"
	if m.mode == ModeRegister {
		title = "🎬 ReelHub — Register"
	}
	b.WriteString(styles.TitleStyle.Render(title))
	b.WriteString("\n\n")

	b.WriteString(m.usernameInput.View())
	b.WriteString("\n")
	b.WriteString(m.passwordInput.View())
	b.WriteString("\n")
	if m.mode == ModeRegister {
		b.WriteString(m.confirmInput.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.loading {
		b.WriteString(styles.InfoStyle.Render("Authenticating..."))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(styles.ErrorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render("enter submit • tab next field • ctrl+t toggle login/register • ctrl+c quit"))

	return b.String()
}

package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/stembase/mading/pkg/api"
	"github.com/stembase/mading/pkg/controller"
)

// LoginModel is the interactive login form, used when no username flag
// was given.
type LoginModel struct {
	app    *App
	fields []FormField
	focus  int

	busy   bool
	errMsg string
	route  controller.Route

	width  int
	height int
}

// NewLoginModel creates the login screen.
func NewLoginModel(app *App) *LoginModel {
	username := NewFormField("Username", "username", "Enter username")
	password := NewFormField("Password", "password", "Enter password")
	password.Input.EchoMode = textinput.EchoPassword
	password.Input.EchoCharacter = '•'

	m := &LoginModel{app: app, fields: []FormField{username, password}}
	m.fields[0].Input.Focus()
	return m
}

// Route returns where the session landed after a successful login, ""
// when the user quit without logging in.
func (m *LoginModel) Route() controller.Route { return m.route }

// Init implements tea.Model.
func (m *LoginModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.EnterAltScreen)
}

type loginDoneMsg struct {
	route controller.Route
	err   error
}

func (m *LoginModel) loginCmd(username, password string) tea.Cmd {
	return func() tea.Msg {
		route, err := controller.SignIn(context.Background(), m.app.Auth, m.app.Session, username, password)
		return loginDoneMsg{route: route, err: err}
	}
}

// Update implements tea.Model.
func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loginDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = api.Message(msg.err, "Login failed. Please try again.")
			return m, nil
		}
		m.route = msg.route
		return m, tea.Quit

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "tab", "shift+tab", "up", "down":
			m.focus = (m.focus + 1) % len(m.fields)
			for i := range m.fields {
				if i == m.focus {
					m.fields[i].Input.Focus()
				} else {
					m.fields[i].Input.Blur()
				}
			}
			return m, nil

		case "enter":
			username := m.fields[0].Input.Value()
			password := m.fields[1].Input.Value()
			if username == "" || password == "" {
				m.errMsg = "Username and password are required."
				return m, nil
			}
			m.busy = true
			m.errMsg = ""
			return m, m.loginCmd(username, password)

		default:
			var cmd tea.Cmd
			m.fields[m.focus].Input, cmd = m.fields[m.focus].Input.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *LoginModel) View() string {
	errMsg := m.errMsg
	if m.busy {
		errMsg = ""
	}
	body := RenderFields("Log In", m.fields, m.focus, errMsg)
	if m.busy {
		body = lipgloss.JoinVertical(lipgloss.Left, body, bannerLoadingStyle.Render("Logging in..."))
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

// RunLoginUI starts the login form and returns the landing route, ""
// when the user quit without logging in.
func RunLoginUI(app *App) (controller.Route, error) {
	model := NewLoginModel(app)
	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		return "", err
	}
	return model.Route(), nil
}

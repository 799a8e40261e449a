package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tasker/internal/api"
	"tasker/internal/session"
	"tasker/internal/validate"
)

const (
	loginFieldUsername = 0
	loginFieldPassword = 1
)

// loginForm holds the login view state.
type loginForm struct {
	inputs [2]textinput.Model
	focus  int
	errs   map[string]string
	banner string
}

func newLoginForm() loginForm {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 150
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 150

	return loginForm{inputs: [2]textinput.Model{username, password}}
}

func (f loginForm) focusCmd() tea.Cmd {
	return textinput.Blink
}

func (f *loginForm) setFocus(i int) tea.Cmd {
	f.focus = i
	var cmd tea.Cmd
	for j := range f.inputs {
		if j == i {
			cmd = f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
	return cmd
}

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+q":
		return m, tea.Quit

	case "tab", "down":
		cmd := m.login.setFocus((m.login.focus + 1) % len(m.login.inputs))
		return m, cmd

	case "shift+tab", "up":
		cmd := m.login.setFocus((m.login.focus + len(m.login.inputs) - 1) % len(m.login.inputs))
		return m, cmd

	case "enter":
		if m.login.focus < loginFieldPassword {
			return m, m.login.setFocus(m.login.focus + 1)
		}
		return m.submitLogin()
	}

	var cmd tea.Cmd
	m.login.inputs[m.login.focus], cmd = m.login.inputs[m.login.focus].Update(msg)
	return m, cmd
}

// submitLogin validates and issues the login request. A submit while one
// is pending is ignored.
func (m Model) submitLogin() (tea.Model, tea.Cmd) {
	if m.inFlight {
		return m, nil
	}

	username := strings.TrimSpace(m.login.inputs[loginFieldUsername].Value())
	password := m.login.inputs[loginFieldPassword].Value()

	result := validate.Apply(validate.LoginRules(), map[string]string{
		"username": username,
		"password": password,
	})
	if !result.Valid() {
		m.login.errs = result.Errors
		m.login.banner = ""
		return m, nil
	}

	m.login.errs = nil
	m.login.banner = ""
	m.inFlight = true

	gen := m.gen
	mgr := m.mgr
	return m, tea.Batch(m.spin.Tick, func() tea.Msg {
		return loginDoneMsg{gen: gen, err: mgr.Login(context.Background(), username, password)}
	})
}

func (m Model) handleLoginDone(msg loginDoneMsg) (tea.Model, tea.Cmd) {
	if m.stale(msg.gen) {
		return m, nil
	}
	m.inFlight = false

	if msg.err != nil {
		switch {
		case errors.Is(msg.err, session.ErrInvalidCredentials):
			m.login.banner = "invalid credentials"
		default:
			var netErr *api.NetworkError
			if errors.As(msg.err, &netErr) {
				m.login.banner = "cannot reach the backend, try again"
			} else {
				m.login.banner = msg.err.Error()
			}
		}
		return m, nil
	}

	m.login.inputs[loginFieldPassword].SetValue("")
	m.switchTo(viewList)
	m.inFlight = true
	return m, tea.Batch(m.loadTasksCmd(), m.spin.Tick)
}

func (m Model) viewLogin() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("tasker: log in"))
	b.WriteString("\n\n")

	labels := [2]string{"username", "password"}
	for i, input := range m.login.inputs {
		b.WriteString("  " + labels[i] + ": " + input.View() + "\n")
		if msg, ok := m.login.errs[labels[i]]; ok {
			b.WriteString("  " + errStyle.Render(msg) + "\n")
		}
	}

	if m.login.banner != "" {
		b.WriteString("\n  " + errStyle.Render(m.login.banner) + "\n")
	}
	if m.inFlight {
		b.WriteString("\n  " + m.spin.View() + " logging in…\n")
	}

	b.WriteString("\n" + helpStyle.Render("  enter: log in • tab: next field • esc: quit"))
	return b.String()
}

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type loginModel struct {
	username textinput.Model
	password textinput.Model
	focused  int
	busy     bool
	errText  string
}

func newLoginModel() loginModel {
	user := textinput.New()
	user.Placeholder = "username"
	user.CharLimit = 64
	user.Focus()

	pass := textinput.New()
	pass.Placeholder = "password"
	pass.CharLimit = 128
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'

	return loginModel{username: user, password: pass}
}

func (m loginModel) update(msg tea.Msg, app *App) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loginFailedMsg:
		m.busy = false
		m.errText = msg.err.Error()
		return m, nil

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "tab", "shift+tab", "up", "down":
			m.focused = (m.focused + 1) % 2
			if m.focused == 0 {
				m.username.Focus()
				m.password.Blur()
			} else {
				m.username.Blur()
				m.password.Focus()
			}
			return m, nil
		case "enter":
			user := strings.TrimSpace(m.username.Value())
			pass := m.password.Value()
			if user == "" || pass == "" {
				m.errText = "username and password are required"
				return m, nil
			}
			m.busy = true
			m.errText = ""
			return m, app.loginCmd(user, pass)
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.username, cmd = m.username.Update(msg)
	cmds = append(cmds, cmd)
	m.password, cmd = m.password.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m loginModel) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("rejectdesk") + "\n\n")
	b.WriteString("Sign in to the reject list\n\n")
	b.WriteString(m.username.View() + "\n")
	b.WriteString(m.password.View() + "\n\n")
	if m.busy {
		b.WriteString(faintStyle.Render("signing in...") + "\n")
	}
	if m.errText != "" {
		b.WriteString(errorStyle.Render(m.errText) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("enter sign in • tab switch field • ctrl+c quit"))
	return boxStyle.Render(b.String())
}

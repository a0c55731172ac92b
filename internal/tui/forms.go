package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// newLoginForm creates the login form
func (m Model) newLoginForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("username").
				Title("Username").
				Validate(requireField("username")),
			huh.NewInput().
				Key("password").
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Validate(requireField("password")),
		).
			Title("Log in").
			Description("Enter to submit • Ctrl+N to create an account • Ctrl+C to quit"),
	)
}

// newRegisterForm creates the account creation form
func (m Model) newRegisterForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("username").
				Title("Username").
				Validate(requireField("username")),
			huh.NewInput().
				Key("password").
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Validate(func(s string) error {
					if len(s) < 6 {
						return fmt.Errorf("password must be at least 6 characters")
					}
					return nil
				}),
		).
			Title("Create account").
			Description("Enter to submit • Ctrl+N to go back to login • Ctrl+C to quit"),
	)
}

func requireField(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

// handleAuthKey handles keys while a login or register form is on screen
func (m Model) handleAuthKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+n":
		// Toggle between login and account creation.
		if m.screen == ScreenLogin {
			m.screen = ScreenRegister
			m.form = m.newRegisterForm()
		} else {
			m.screen = ScreenLogin
			m.form = m.newLoginForm()
		}
		m.errMsg = ""
		return m, m.form.Init()
	}

	if m.form == nil {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		username := strings.TrimSpace(m.form.GetString("username"))
		password := m.form.GetString("password")

		m.loading = true
		if m.screen == ScreenRegister {
			return m, m.registerCmd(username, password)
		}
		return m, m.loginCmd(username, password)
	}

	return m, cmd
}

package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"eventsctl/internal/api"
	"eventsctl/internal/authz"
	"eventsctl/internal/guard"
	"eventsctl/internal/session"
)

// Messages produced by background commands

// guardMsg carries a finished route guard evaluation
type guardMsg struct {
	decision guard.Decision
	dest     ScreenType
	table    string
}

// loginDoneMsg carries the outcome of a login attempt
type loginDoneMsg struct {
	username string
	err      error
}

// registerDoneMsg carries the outcome of an account creation attempt
type registerDoneMsg struct {
	username string
	err      error
}

// loggedOutMsg indicates the session was cleared
type loggedOutMsg struct{}

// eventsMsg carries a fresh event list
type eventsMsg struct {
	events []api.Event
}

// statsMsg carries fresh admin dashboard counters
type statsMsg struct {
	stats *api.Stats
}

// tableRowsMsg carries fresh rows for one admin table
type tableRowsMsg struct {
	table string
	rows  [][]string
}

// usersMsg carries a fresh user list
type usersMsg struct {
	users []api.User
}

// mutationDoneMsg indicates a server-side change succeeded; the view refetches
type mutationDoneMsg struct {
	status string
}

// errorMsg carries a failed command's error
type errorMsg struct {
	err error
}

// navigateCmd runs a guard evaluation for the destination screen
func (m Model) navigateCmd(dest ScreenType) tea.Cmd {
	return m.evaluateCmd(dest, "")
}

// openTableCmd runs a guard evaluation for the admin table browser
func (m Model) openTableCmd(table string) tea.Cmd {
	return m.evaluateCmd(ScreenTable, table)
}

func (m Model) evaluateCmd(dest ScreenType, table string) tea.Cmd {
	g := m.guard
	return func() tea.Msg {
		d := g.Evaluate(context.Background(), policyFor(dest, table))
		return guardMsg{decision: d, dest: dest, table: table}
	}
}

// loadCmd fetches the data the destination screen renders
func (m Model) loadCmd(dest ScreenType, table string) tea.Cmd {
	client := m.client
	switch dest {
	case ScreenEvents:
		return func() tea.Msg {
			events, err := client.ListEvents(context.Background())
			if err != nil {
				return errorMsg{err}
			}
			return eventsMsg{events}
		}
	case ScreenAdmin:
		return func() tea.Msg {
			stats, err := client.GetStats(context.Background())
			if err != nil {
				return errorMsg{err}
			}
			return statsMsg{stats}
		}
	case ScreenTable:
		return func() tea.Msg {
			rows, err := client.TableRows(context.Background(), table)
			if err != nil {
				return errorMsg{err}
			}
			return tableRowsMsg{table: table, rows: rows}
		}
	case ScreenUsers:
		return func() tea.Msg {
			users, err := client.GetUsers(context.Background())
			if err != nil {
				return errorMsg{err}
			}
			return usersMsg{users}
		}
	}
	return nil
}

func (m Model) searchCmd(query string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		events, err := client.SearchEventsByName(context.Background(), query)
		if err != nil {
			return errorMsg{err}
		}
		return eventsMsg{events}
	}
}

// loginCmd authenticates and persists the session.
// The role starts at the default; the guard resolves the real one on the
// first protected navigation.
func (m Model) loginCmd(username, password string) tea.Cmd {
	client := m.client
	store := m.store
	return func() tea.Msg {
		token, err := client.Login(context.Background(), username, password)
		if err != nil {
			return loginDoneMsg{username: username, err: err}
		}

		err = store.Save(session.Session{
			Token:    token,
			Username: username,
			Role:     authz.DefaultRole,
		})
		return loginDoneMsg{username: username, err: err}
	}
}

func (m Model) registerCmd(username, password string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		err := client.Register(context.Background(), username, password)
		return registerDoneMsg{username: username, err: err}
	}
}

// logoutCmd clears the session locally. Logout is a client-side operation:
// credentials and role are removed together, and the next guard evaluation
// lands on the login screen.
func (m Model) logoutCmd() tea.Cmd {
	client := m.client
	store := m.store
	return func() tea.Msg {
		_ = store.Clear()
		client.SetToken("")
		return loggedOutMsg{}
	}
}

func (m Model) changeRoleCmd(u api.User) tea.Cmd {
	client := m.client
	next := nextRole(u.Role)
	return func() tea.Msg {
		if err := client.ChangeRole(context.Background(), u.ID, next); err != nil {
			return errorMsg{err}
		}
		return mutationDoneMsg{status: fmt.Sprintf("Role of %s set to %s", u.Username, next)}
	}
}

func (m Model) deleteUserCmd(u api.User) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		if err := client.DeleteUser(context.Background(), u.ID); err != nil {
			return errorMsg{err}
		}
		return mutationDoneMsg{status: fmt.Sprintf("Deleted user %s", u.Username)}
	}
}

func (m Model) deleteRecordCmd(table string, id int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		if err := client.DeleteTableRecord(context.Background(), table, id); err != nil {
			return errorMsg{err}
		}
		return mutationDoneMsg{status: fmt.Sprintf("Deleted record %d from %s", id, table)}
	}
}

// nextRole cycles through the assignable roles in order
func nextRole(current string) string {
	switch current {
	case string(authz.RoleUser):
		return string(authz.RoleManager)
	case string(authz.RoleManager):
		return string(authz.RoleAdmin)
	default:
		return string(authz.RoleUser)
	}
}

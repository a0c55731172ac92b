package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"

	"eventsctl/internal/api"
)

// newEventsTable builds the event list widget
func newEventsTable(events []api.Event) table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 4},
		{Title: "Title", Width: 24},
		{Title: "Type", Width: 12},
		{Title: "Scale", Width: 10},
		{Title: "Start", Width: 10},
		{Title: "End", Width: 10},
		{Title: "Location", Width: 14},
		{Title: "Status", Width: 10},
		{Title: "Teacher", Width: 14},
		{Title: "Budget", Width: 10},
		{Title: "Category", Width: 12},
	}

	rows := make([]table.Row, 0, len(events))
	for _, e := range events {
		rows = append(rows, table.Row{
			strconv.Itoa(e.ID),
			e.Title,
			e.EventType,
			e.Scale,
			e.StartDate,
			e.EndDate,
			e.Location,
			e.Status,
			e.ResponsibleTeacher,
			fmt.Sprintf("%.2f", e.EstimatedBudget),
			e.ParticipantCategory,
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(15),
	)
	t.Focus()
	return t
}

// newTablePicker builds the admin table chooser
func newTablePicker() table.Model {
	rows := make([]table.Row, 0)
	for _, name := range api.AdminTables() {
		rows = append(rows, table.Row{name})
	}

	t := table.New(
		table.WithColumns([]table.Column{{Title: "Table", Width: 28}}),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
	)
	t.Focus()
	return t
}

// newRowsTable builds a generic admin table browser widget.
// Column sets vary per table, so headers are positional.
func newRowsTable(rows [][]string) table.Model {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	if width == 0 {
		width = 1
	}

	columns := make([]table.Column, width)
	for i := range columns {
		title := "ID"
		if i > 0 {
			title = fmt.Sprintf("Col %d", i+1)
		}
		columns[i] = table.Column{Title: title, Width: 16}
	}

	tableRows := make([]table.Row, 0, len(rows))
	for _, row := range rows {
		r := make(table.Row, width)
		copy(r, row)
		tableRows = append(tableRows, r)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(tableRows),
		table.WithHeight(15),
	)
	t.Focus()
	return t
}

// newUsersTable builds the user administration widget
func newUsersTable(users []api.User) table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 4},
		{Title: "Username", Width: 24},
		{Title: "Role", Width: 10},
	}

	rows := make([]table.Row, 0, len(users))
	for _, u := range users {
		rows = append(rows, table.Row{strconv.Itoa(u.ID), u.Username, u.Role})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(15),
	)
	t.Focus()
	return t
}

// renderAuth renders the login and register screens
func (m Model) renderAuth() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Events Admin"))
	b.WriteString("\n\n")

	if m.errMsg != "" {
		b.WriteString(m.styles.Error.Render("✗ " + m.errMsg))
		b.WriteString("\n\n")
	} else if m.statusMsg != "" {
		b.WriteString(m.styles.Success.Render(m.statusMsg))
		b.WriteString("\n\n")
	}

	if m.loading {
		b.WriteString(m.spin.View() + " Working...")
		b.WriteString("\n")
		return b.String()
	}

	if m.form != nil {
		b.WriteString(m.form.View())
	}

	return b.String()
}

// renderEvents renders the event list screen
func (m Model) renderEvents() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Events"))
	b.WriteString("\n")

	if m.searching || m.search.Value() != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n\n")
	}

	if m.loading {
		b.WriteString(m.spin.View() + " Loading...\n")
	} else {
		b.WriteString(m.eventsTable.View())
		b.WriteString("\n")
	}

	b.WriteString(m.renderStatusLine())
	b.WriteString(m.renderHelpLine([]helpItem{
		{"/", "search"},
		{"r", "refresh"},
		{"a", "admin"},
		{"u", "users"},
		{"ctrl+l", "logout"},
		{"q", "quit"},
	}))

	return b.String()
}

// renderAdmin renders the admin dashboard
func (m Model) renderAdmin() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Administration"))
	b.WriteString("\n")

	if m.loading {
		b.WriteString(m.spin.View() + " Loading...\n")
		return b.String()
	}

	if m.stats != nil {
		b.WriteString(m.renderStatsBox())
		b.WriteString("\n\n")
	}

	b.WriteString(m.styles.Subtitle.Render("Tables"))
	b.WriteString("\n")
	b.WriteString(m.tablePicker.View())
	b.WriteString("\n")

	b.WriteString(m.renderStatusLine())
	b.WriteString(m.renderHelpLine([]helpItem{
		{"enter", "open table"},
		{"u", "users"},
		{"esc", "back"},
		{"q", "quit"},
	}))

	return b.String()
}

func (m Model) renderStatsBox() string {
	s := m.stats
	lines := []string{
		fmt.Sprintf("Tables:     %d", s.TableCount),
		fmt.Sprintf("Events:     %d", s.EventCount),
		fmt.Sprintf("Teachers:   %d", s.TeacherCount),
		fmt.Sprintf("Locations:  %d", s.LocationCount),
		fmt.Sprintf("Types:      %d", s.EventTypeCount),
		fmt.Sprintf("Scales:     %d", s.ScaleCount),
		fmt.Sprintf("Categories: %d", s.ParticipantCategoryCount),
		fmt.Sprintf("Users:      %d", s.UserCount),
	}
	return m.styles.Border.Render(strings.Join(lines, "\n"))
}

// renderTable renders the admin table browser
func (m Model) renderTable() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Table: " + m.activeTable))
	b.WriteString("\n")

	if m.loading {
		b.WriteString(m.spin.View() + " Loading...\n")
	} else {
		b.WriteString(m.rowsTable.View())
		b.WriteString("\n")
	}

	b.WriteString(m.renderStatusLine())
	b.WriteString(m.renderHelpLine([]helpItem{
		{"d", "delete row"},
		{"r", "refresh"},
		{"esc", "back"},
		{"q", "quit"},
	}))

	return b.String()
}

// renderUsers renders the user administration screen
func (m Model) renderUsers() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Users"))
	b.WriteString("\n")

	if m.loading {
		b.WriteString(m.spin.View() + " Loading...\n")
	} else {
		b.WriteString(m.usersTable.View())
		b.WriteString("\n")
	}

	b.WriteString(m.renderStatusLine())
	b.WriteString(m.renderHelpLine([]helpItem{
		{"c", "change role"},
		{"d", "delete user"},
		{"r", "refresh"},
		{"esc", "back"},
		{"q", "quit"},
	}))

	return b.String()
}

// renderForbidden renders the access denied screen.
// Not a dead end: access is re-checked on demand, so a role change on the
// server takes effect without restarting.
func (m Model) renderForbidden() string {
	var b strings.Builder

	body := m.styles.Error.Render("Access denied") + "\n\n" +
		fmt.Sprintf("Your current role is %q, which does not grant access\nto this screen.", m.deniedRole)

	b.WriteString(m.styles.Border.Render(body))
	b.WriteString("\n")

	b.WriteString(m.renderHelpLine([]helpItem{
		{"r", "re-check access"},
		{"esc", "back to events"},
		{"ctrl+l", "logout"},
		{"q", "quit"},
	}))

	return b.String()
}

type helpItem struct {
	key  string
	desc string
}

func (m Model) renderStatusLine() string {
	if m.errMsg != "" {
		return m.styles.Error.Render("✗ "+m.errMsg) + "\n"
	}
	if m.statusMsg != "" {
		return m.styles.Muted.Render(m.statusMsg) + "\n"
	}
	return ""
}

func (m Model) renderHelpLine(items []helpItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, m.styles.Key.Render(it.key)+" "+m.styles.KeyDesc.Render(it.desc))
	}
	return m.styles.Help.Render(strings.Join(parts, " • "))
}

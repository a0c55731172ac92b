package tui

import (
	stderrors "errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"eventsctl/internal/api"
	"eventsctl/internal/authz"
	"eventsctl/internal/errors"
	"eventsctl/internal/guard"
	"eventsctl/internal/session"
)

// ScreenType represents the screen currently displayed
type ScreenType int

// Screen type constants
const (
	// ScreenLogin is the login form
	ScreenLogin ScreenType = iota
	// ScreenRegister is the account creation form
	ScreenRegister
	// ScreenEvents is the event list with search
	ScreenEvents
	// ScreenAdmin is the admin dashboard with database counters
	ScreenAdmin
	// ScreenTable is the admin table browser
	ScreenTable
	// ScreenUsers is the user administration screen
	ScreenUsers
	// ScreenForbidden is shown when the role does not satisfy the screen's
	// access policy
	ScreenForbidden
)

// Model represents the TUI application state
type Model struct {
	client *api.Client
	store  session.Store
	guard  *guard.Guard

	// UI state
	screen    ScreenType
	loading   bool
	quitting  bool
	width     int
	height    int
	statusMsg string
	errMsg    string

	// Login/register form state
	form         *huh.Form
	formUsername string
	formPassword string

	// Events screen state
	eventsTable table.Model
	search      textinput.Model
	searching   bool

	// Admin state
	stats       *api.Stats
	tablePicker table.Model
	rowsTable   table.Model
	activeTable string

	// Users screen state
	usersTable table.Model
	users      []api.User

	// Forbidden state
	deniedScreen ScreenType
	deniedRole   authz.Role

	spin   spinner.Model
	styles Styles
}

// Styles contains lipgloss styles for the TUI
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Muted    lipgloss.Style
	Border   lipgloss.Style
	Help     lipgloss.Style
	Key      lipgloss.Style
	KeyDesc  lipgloss.Style
}

// DefaultStyles returns the default lipgloss styles
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")). // Purple
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")), // Gray
		Status: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")), // Cyan
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")), // Red
		Success: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46")), // Green
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")), // Gray
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")). // Purple
			Padding(1, 2),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")). // Gray
			MarginTop(1),
		Key: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")), // Purple
		KeyDesc: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")), // Gray
	}
}

// NewModel creates the TUI application model
func NewModel(client *api.Client, store session.Store, g *guard.Guard) Model {
	search := textinput.New()
	search.Placeholder = "search by title"
	search.CharLimit = 120

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	m := Model{
		client: client,
		store:  store,
		guard:  g,
		screen: ScreenLogin,
		search: search,
		spin:   spin,
		styles: DefaultStyles(),
	}

	m.form = m.newLoginForm()
	return m
}

// Init initializes the TUI model (required by Bubble Tea)
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spin.Tick}
	if m.form != nil {
		cmds = append(cmds, m.form.Init())
	}
	// A persisted session skips the login form entirely.
	if m.store.Load().Authenticated() {
		cmds = append(cmds, m.navigateCmd(ScreenEvents))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state (required by Bubble Tea)
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
		return m.handleKeyPress(msg)

	case guardMsg:
		return m.handleGuardDecision(msg)

	case loginDoneMsg:
		return m.handleLoginDone(msg)

	case registerDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = renderError(msg.err)
			m.form = m.newRegisterForm()
			return m, m.form.Init()
		}
		m.screen = ScreenLogin
		m.form = m.newLoginForm()
		m.statusMsg = fmt.Sprintf("Account %q created, log in to continue", msg.username)
		m.errMsg = ""
		return m, m.form.Init()

	case loggedOutMsg:
		m.screen = ScreenLogin
		m.form = m.newLoginForm()
		m.statusMsg = "Logged out"
		m.errMsg = ""
		return m, m.form.Init()

	case eventsMsg:
		m.loading = false
		m.eventsTable = newEventsTable(msg.events)
		m.statusMsg = fmt.Sprintf("%d events", len(msg.events))
		return m, nil

	case statsMsg:
		m.loading = false
		m.stats = msg.stats
		m.tablePicker = newTablePicker()
		return m, nil

	case tableRowsMsg:
		m.loading = false
		m.screen = ScreenTable
		m.activeTable = msg.table
		m.rowsTable = newRowsTable(msg.rows)
		return m, nil

	case usersMsg:
		m.loading = false
		m.users = msg.users
		m.usersTable = newUsersTable(msg.users)
		return m, nil

	case mutationDoneMsg:
		// State is re-derived from server truth after every mutation, never
		// patched locally.
		m.statusMsg = msg.status
		return m, m.refetchCmd()

	case errorMsg:
		m.loading = false
		if errors.IsNotFound(msg.err) && m.screen == ScreenEvents {
			// Empty search result, not a failure.
			m.eventsTable = newEventsTable(nil)
			m.statusMsg = "No events match"
			m.errMsg = ""
			return m, nil
		}
		m.errMsg = renderError(msg.err)
		return m, nil
	}

	return m.updateActiveInput(msg)
}

// View renders the TUI (required by Bubble Tea)
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case ScreenLogin, ScreenRegister:
		return m.renderAuth()
	case ScreenEvents:
		return m.renderEvents()
	case ScreenAdmin:
		return m.renderAdmin()
	case ScreenTable:
		return m.renderTable()
	case ScreenUsers:
		return m.renderUsers()
	case ScreenForbidden:
		return m.renderForbidden()
	default:
		return "Unknown screen"
	}
}

// policyFor maps a screen to its access policy. User administration is
// admin-only; every other protected screen just needs a login.
func policyFor(screen ScreenType, activeTable string) guard.AccessPolicy {
	if screen == ScreenUsers {
		return guard.RequireRoles(authz.RoleAdmin)
	}
	if screen == ScreenTable && activeTable == "users" {
		return guard.RequireRoles(authz.RoleAdmin)
	}
	return guard.Authenticated()
}

// handleGuardDecision routes a finished guard evaluation. Decisions
// superseded by a newer navigation are dropped unrendered.
func (m Model) handleGuardDecision(msg guardMsg) (tea.Model, tea.Cmd) {
	if m.guard.Stale(msg.decision) {
		return m, nil
	}

	m.loading = false
	switch msg.decision.State {
	case guard.StateUnauthenticated:
		m.screen = ScreenLogin
		m.form = m.newLoginForm()
		m.errMsg = ""
		return m, m.form.Init()

	case guard.StateForbidden:
		m.screen = ScreenForbidden
		m.deniedScreen = msg.dest
		m.deniedRole = msg.decision.Role
		return m, nil

	case guard.StateAuthorized:
		m.screen = msg.dest
		m.errMsg = ""
		return m, m.loadCmd(msg.dest, msg.table)
	}

	return m, nil
}

func (m Model) handleLoginDone(msg loginDoneMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		m.errMsg = renderError(msg.err)
		m.form = m.newLoginForm()
		return m, m.form.Init()
	}

	m.statusMsg = fmt.Sprintf("Logged in as %s", msg.username)
	m.errMsg = ""
	return m, m.navigateCmd(ScreenEvents)
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Ctrl+C always quits
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	// Forms and the search box own the keyboard while focused.
	if m.screen == ScreenLogin || m.screen == ScreenRegister {
		return m.handleAuthKey(msg)
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "ctrl+l":
		return m, m.logoutCmd()

	case "r":
		m.loading = true
		if m.screen == ScreenForbidden {
			// Re-check access: a role change on the server takes effect
			// without restarting the program.
			return m, m.navigateCmd(m.deniedScreen)
		}
		return m, m.refetchCmd()

	case "esc":
		if m.screen != ScreenEvents {
			m.loading = true
			return m, m.navigateCmd(ScreenEvents)
		}
		return m, nil

	case "/":
		if m.screen == ScreenEvents {
			m.searching = true
			m.search.Focus()
			return m, textinput.Blink
		}

	case "a":
		if m.screen == ScreenEvents {
			m.loading = true
			return m, m.navigateCmd(ScreenAdmin)
		}

	case "u":
		if m.screen == ScreenEvents || m.screen == ScreenAdmin {
			m.loading = true
			return m, m.navigateCmd(ScreenUsers)
		}

	case "enter":
		if m.screen == ScreenAdmin {
			row := m.tablePicker.SelectedRow()
			if len(row) > 0 {
				m.loading = true
				return m, m.openTableCmd(row[0])
			}
		}

	case "c":
		if m.screen == ScreenUsers {
			if u, ok := m.selectedUser(); ok {
				return m, m.changeRoleCmd(u)
			}
		}

	case "d":
		if m.screen == ScreenUsers {
			if u, ok := m.selectedUser(); ok {
				return m, m.deleteUserCmd(u)
			}
		}
		if m.screen == ScreenTable {
			if id, ok := m.selectedRowID(); ok {
				return m, m.deleteRecordCmd(m.activeTable, id)
			}
		}
	}

	return m.updateActiveInput(msg)
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.search.Blur()
		query := m.search.Value()
		if query == "" {
			return m, m.refetchCmd()
		}
		return m, m.searchCmd(query)

	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		return m, m.refetchCmd()
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

// updateActiveInput forwards unhandled messages to whichever widget is
// active on the current screen.
func (m Model) updateActiveInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.screen {
	case ScreenLogin, ScreenRegister:
		if m.form != nil {
			form, c := m.form.Update(msg)
			if f, ok := form.(*huh.Form); ok {
				m.form = f
			}
			cmd = c
		}
	case ScreenEvents:
		m.eventsTable, cmd = m.eventsTable.Update(msg)
	case ScreenAdmin:
		m.tablePicker, cmd = m.tablePicker.Update(msg)
	case ScreenTable:
		m.rowsTable, cmd = m.rowsTable.Update(msg)
	case ScreenUsers:
		m.usersTable, cmd = m.usersTable.Update(msg)
	}
	return m, cmd
}

func (m Model) selectedUser() (api.User, bool) {
	cursor := m.usersTable.Cursor()
	if cursor < 0 || cursor >= len(m.users) {
		return api.User{}, false
	}
	return m.users[cursor], true
}

func (m Model) selectedRowID() (int, bool) {
	row := m.rowsTable.SelectedRow()
	if len(row) == 0 {
		return 0, false
	}
	var id int
	if _, err := fmt.Sscanf(row[0], "%d", &id); err != nil {
		return 0, false
	}
	return id, true
}

// refetchCmd reloads whatever the current screen shows
func (m Model) refetchCmd() tea.Cmd {
	return m.loadCmd(m.screen, m.activeTable)
}

// Run starts the TUI application
func Run(client *api.Client, store session.Store, g *guard.Guard) error {
	p := tea.NewProgram(NewModel(client, store, g), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run TUI: %w", err)
	}
	return nil
}

// renderError flattens an error to a single status line, dropping the
// multi-line suggestion block that CLI output carries.
func renderError(err error) string {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

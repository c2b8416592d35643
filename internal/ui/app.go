package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/tms/internal/listsync"
	"github.com/tgienger/tms/internal/models"
	"github.com/tgienger/tms/internal/session"
	"github.com/tgienger/tms/internal/ui/keys"
	"github.com/tgienger/tms/internal/ui/styles"
	"github.com/tgienger/tms/internal/ui/views"
)

// SettingLastRoute remembers the last protected screen between runs
const SettingLastRoute = "last_route"

const toastDuration = 3 * time.Second

// Settings persists small key/value preferences
type Settings interface {
	GetSetting(key string) (string, error)
	SetSetting(key, value string) error
}

type navTab struct {
	route session.Route
	label string
	key   string
}

var navTabs = []navTab{
	{session.RouteHome, "Dashboard", "1"},
	{session.RouteEmployees, "Employees", "2"},
	{session.RouteAssign, "Tasks", "3"},
	{session.RouteInventory, "Inventory", "4"},
	{session.RouteWorkTodo, "To-dos", "5"},
	{session.RouteAbout, "About", "6"},
}

type clearToastMsg struct{ seq int }

type refreshTickMsg struct{}

type App struct {
	deps     views.Deps
	guard    *session.Guard
	settings Settings
	lists    *views.Lists
	policy   listsync.RefreshPolicy
	keys     keys.KeyMap
	styles   *styles.Styles

	route   session.Route
	current tea.Model
	session models.Session
	authed  bool

	toast    views.Toast
	toastSeq int

	width  int
	height int
}

// NewApp creates the application shell
func NewApp(deps views.Deps, settings Settings, lists *views.Lists, policy listsync.RefreshPolicy) *App {
	return &App{
		deps:     deps,
		guard:    session.NewGuard(deps.Sessions),
		settings: settings,
		lists:    lists,
		policy:   policy,
		keys:     keys.DefaultKeyMap(),
		styles:   styles.NewStyles(),
	}
}

// Route is the screen currently shown
func (a *App) Route() session.Route { return a.route }

func (a *App) Init() tea.Cmd {
	// Reopen the last screen; the guard sends unauthenticated users to login
	last, err := a.settings.GetSetting(SettingLastRoute)
	if err != nil {
		a.deps.Log.Warn().Err(err).Msg("failed to read last route")
	}
	cmds := []tea.Cmd{a.open(session.ParseRoute(last))}
	if every, ok := a.policy.Periodic(); ok {
		cmds = append(cmds, refreshAfter(every))
	}
	return tea.Batch(cmds...)
}

func refreshAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return refreshTickMsg{} })
}

func (a *App) newView(route session.Route) tea.Model {
	switch route {
	case session.RouteRegister:
		return views.NewRegisterView(a.deps)
	case session.RouteHome:
		return views.NewDashboardView(a.deps, a.lists)
	case session.RouteEmployees:
		return views.NewEmployeesView(a.deps, a.lists)
	case session.RouteAssign:
		return views.NewAssignView(a.deps, a.lists)
	case session.RouteInventory:
		return views.NewInventoryView(a.deps, a.lists)
	case session.RouteWorkTodo:
		return views.NewTodosView(a.deps, a.lists)
	case session.RouteAbout:
		return views.NewAboutView()
	}
	return views.NewLoginView(a.deps)
}

func (a *App) open(route session.Route) tea.Cmd {
	d := a.guard.Resolve(route)
	a.route = d.Route
	a.authed = d.Authenticated
	a.session = d.Session
	a.current = a.newView(d.Route)

	a.deps.Log.Debug().
		Str("requested", string(route)).
		Str("route", string(d.Route)).
		Bool("redirected", d.Redirected).
		Msg("navigate")

	if d.Route.IsProtected() {
		if err := a.settings.SetSetting(SettingLastRoute, string(d.Route)); err != nil {
			a.deps.Log.Warn().Err(err).Msg("failed to save last route")
		}
	}

	// Initialize the new view with the window size
	return tea.Batch(
		a.current.Init(),
		func() tea.Msg {
			return tea.WindowSizeMsg{Width: a.width, Height: a.height}
		},
	)
}

func (a *App) capturing() bool {
	c, ok := a.current.(views.Capturer)
	return ok && c.Capturing()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Header and status line take three rows
		_, cmd := a.current.Update(tea.WindowSizeMsg{Width: msg.Width, Height: max(msg.Height-3, 0)})
		return a, cmd

	case views.Navigate:
		return a, a.open(msg.Route)

	case views.SignedIn:
		return a, a.open(session.DefaultRoute)

	case views.SignOut:
		return a, a.signOut()

	case views.Toast:
		a.toast = msg
		a.toastSeq++
		seq := a.toastSeq
		return a, tea.Tick(toastDuration, func(time.Time) tea.Msg { return clearToastMsg{seq: seq} })

	case clearToastMsg:
		if msg.seq == a.toastSeq {
			a.toast = views.Toast{}
		}
		return a, nil

	case refreshTickMsg:
		every, ok := a.policy.Periodic()
		if !ok {
			return a, nil
		}
		var cmd tea.Cmd
		if a.authed {
			_, cmd = a.current.Update(views.Refresh{})
		}
		return a, tea.Batch(cmd, refreshAfter(every))

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if !a.capturing() {
			if cmd, ok := a.globalKey(msg); ok {
				return a, cmd
			}
		}
	}

	_, cmd := a.current.Update(msg)
	return a, cmd
}

// globalKey handles screen switching and quitting
func (a *App) globalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if key.Matches(msg, a.keys.Quit) {
		return tea.Quit, true
	}
	if !a.authed {
		return nil, false
	}
	screens := []struct {
		binding key.Binding
		route   session.Route
	}{
		{a.keys.Dashboard, session.RouteHome},
		{a.keys.Employees, session.RouteEmployees},
		{a.keys.Assign, session.RouteAssign},
		{a.keys.Inventory, session.RouteInventory},
		{a.keys.Todos, session.RouteWorkTodo},
		{a.keys.About, session.RouteAbout},
	}
	for _, s := range screens {
		if key.Matches(msg, s.binding) {
			if s.route == a.route {
				return nil, true
			}
			return a.open(s.route), true
		}
	}
	if key.Matches(msg, a.keys.SignOut) {
		return a.signOut(), true
	}
	return nil, false
}

func (a *App) signOut() tea.Cmd {
	if err := a.deps.Sessions.Clear(); err != nil {
		a.deps.Log.Error().Err(err).Msg("failed to clear session")
	}
	a.lists.Reset()
	if err := a.settings.SetSetting(SettingLastRoute, ""); err != nil {
		a.deps.Log.Warn().Err(err).Msg("failed to reset last route")
	}
	return tea.Batch(
		a.open(session.RouteLogin),
		func() tea.Msg { return views.Toast{Text: "Signed out"} },
	)
}

func (a *App) renderHeader() string {
	s := a.styles
	tabs := make([]string, 0, len(navTabs))
	for _, t := range navTabs {
		label := t.key + " " + t.label
		if t.route == a.route {
			tabs = append(tabs, s.NavActive.Render(label))
		} else {
			tabs = append(tabs, s.NavItem.Render(label))
		}
	}
	left := s.Title.Render("VIVA TMS") + "  " + strings.Join(tabs, "")
	right := s.User.Render(a.session.Username)
	gap := max(styles.ContentWidth(a.width)-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

func (a *App) renderStatus() string {
	switch {
	case a.toast.Text == "":
		return ""
	case a.toast.Err:
		return a.styles.ToastError.Render(a.toast.Text)
	}
	return a.styles.Toast.Render(a.toast.Text)
}

func (a *App) View() string {
	body := a.current.View()
	if !a.authed {
		return styles.CenterView(lipgloss.JoinVertical(lipgloss.Left, body, a.renderStatus()), a.width, a.height)
	}
	return styles.CenterView(lipgloss.JoinVertical(lipgloss.Left,
		a.renderHeader(),
		"",
		body,
		a.renderStatus(),
	), a.width, a.height)
}

package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/tms/internal/dashboard"
	"github.com/tgienger/tms/internal/models"
	"github.com/tgienger/tms/internal/ui/styles"
)

type dashboardLoadedMsg struct {
	err error
}

// DashboardView is the home screen: head counts and task status
type DashboardView struct {
	deps    Deps
	lists   *Lists
	styles  *styles.Styles
	summary dashboard.Summary
	loaded  bool
	now     func() time.Time

	width  int
	height int
}

// NewDashboardView creates the home screen
func NewDashboardView(d Deps, lists *Lists) *DashboardView {
	return &DashboardView{deps: d, lists: lists, styles: styles.NewStyles(), now: time.Now}
}

func (v *DashboardView) Init() tea.Cmd {
	employees, tasks, client := v.lists.Employees, v.lists.Tasks, v.deps.Client
	return func() tea.Msg {
		emps, tsks, err := dashboard.Load(context.Background(), client.Employees(), client.Tasks())
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		employees.Replace(emps)
		tasks.Replace(tsks)
		return dashboardLoadedMsg{}
	}
}

func (v *DashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
	case dashboardLoadedMsg:
		v.loaded = true
		if msg.err != nil {
			return v, toastErr(msg.err, "Failed to load dashboard")
		}
		v.summary = dashboard.Summarize(v.lists.Employees.Items(), v.lists.Tasks.Items(), v.now())
	case Refresh:
		return v, v.Init()
	case tea.KeyMsg:
		if msg.String() == "r" {
			return v, v.Init()
		}
	}
	return v, nil
}

func (v *DashboardView) card(title string, value int, color lipgloss.Color) string {
	s := v.styles
	return s.Card.Render(lipgloss.JoinVertical(lipgloss.Left,
		s.Label.Render(title),
		lipgloss.NewStyle().Foreground(color).Bold(true).Render(fmt.Sprintf("%d", value)),
	))
}

func (v *DashboardView) View() string {
	s := v.styles
	if !v.loaded {
		return s.TitleMuted.Render("Loading...")
	}
	sum := v.summary
	t := styles.Current

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		v.card("Total Employees", sum.Employees, t.Primary), " ",
		v.card("Total Tasks", sum.Tasks, t.Accent), " ",
		v.card("Pending Tasks", sum.Pending, t.Warning), " ",
		v.card("Emails Sent", sum.Sent, t.Success),
	)

	barWidth := clamp(styles.ContentWidth(v.width)-30, 10, 50)
	top := 1
	for _, d := range sum.Departments {
		top = max(top, d.Employees)
	}
	var deps []string
	for _, d := range sum.Departments {
		n := d.Employees * barWidth / top
		bar := lipgloss.NewStyle().Foreground(styles.DepartmentColor(string(d.Department))).Render(strings.Repeat("█", n))
		deps = append(deps, fmt.Sprintf("%-10s %s %d", d.Department, bar, d.Employees))
	}

	upcoming := []string{s.TitleMuted.Render("Nothing due.")}
	if len(sum.Upcoming) > 0 {
		upcoming = upcoming[:0]
		for _, task := range sum.Upcoming {
			upcoming = append(upcoming, fmt.Sprintf("%s  %s  %s", task.DueDate, v.assignee(task), truncate(task.Title, 40)))
		}
	}
	overdue := ""
	if sum.Overdue > 0 {
		overdue = s.FieldError.Render(fmt.Sprintf("%d overdue", sum.Overdue))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("Dashboard"),
		"",
		cards,
		"",
		s.Title.Render("Employees by department"),
		lipgloss.JoinVertical(lipgloss.Left, deps...),
		"",
		s.Title.Render("Upcoming tasks")+"  "+overdue,
		lipgloss.JoinVertical(lipgloss.Left, upcoming...),
		"",
		helpLine(s, "1-6", "screens", "r", "refresh", "ctrl+o", "sign out", "q", "quit"),
	)
}

func (v *DashboardView) assignee(t models.Task) string {
	if e, ok := v.lists.Employees.Find(t.EmployeeID); ok {
		return truncate(e.Name, 18)
	}
	return "#" + t.EmployeeID.String()
}

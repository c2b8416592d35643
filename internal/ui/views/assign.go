package views

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/tms/internal/api"
	"github.com/tgienger/tms/internal/importer"
	"github.com/tgienger/tms/internal/listview"
	"github.com/tgienger/tms/internal/models"
	"github.com/tgienger/tms/internal/ui/keys"
	"github.com/tgienger/tms/internal/ui/styles"
)

type employeesLoadedMsg struct {
	err error
}

type notifyDoneMsg struct {
	taskID models.ID
	text   string
	err    error
}

// AssignView is the task assignment table. The assignee is picked from the
// employee collection and each task can notify its assignee once.
type AssignView struct {
	*resourceView[models.Task]
	deps    Deps
	lists   *Lists
	sending map[models.ID]bool
}

// NewAssignView creates the task assignment screen
func NewAssignView(d Deps, lists *Lists) *AssignView {
	v := &AssignView{deps: d, lists: lists, sending: map[models.ID]bool{}}

	employeeName := func(t models.Task) string {
		if e, ok := lists.Employees.Find(t.EmployeeID); ok {
			return e.Name
		}
		return "#" + t.EmployeeID.String()
	}

	cfg := resourceConfig[models.Task]{
		title: "Assign Tasks",
		noun:  "task",
		columns: []column[models.Task]{
			{title: "Task", width: 30, value: func(t models.Task) string { return t.Title }},
			{title: "Employee", width: 22, value: employeeName},
			{title: "Due", width: 12, value: func(t models.Task) string { return t.DueDate }},
			{
				title: "Email", width: 10, value: listview.TaskStatus,
				color: func(t models.Task) lipgloss.Color {
					if t.EmailSent {
						return styles.Current.Success
					}
					return styles.Current.Warning
				},
			},
		},
		fields: []field[models.Task]{
			{
				label: "Title", placeholder: "What needs doing",
				get: func(t models.Task) string { return t.Title },
				set: func(t *models.Task, s string) { t.Title = s },
			},
			{
				label: "Employee", options: v.employeeOptions,
				get: func(t models.Task) string { return t.EmployeeID.String() },
				set: func(t *models.Task, s string) { t.EmployeeID = models.ParseID(s) },
			},
			{
				label: "Due date", placeholder: "YYYY-MM-DD",
				get: func(t models.Task) string { return t.DueDate },
				set: func(t *models.Task, s string) { t.DueDate = s },
			},
		},
		matcher:    listview.Tasks(employeeName),
		categories: func() []string { return []string{listview.TaskPending, listview.TaskSent} },
		blank:      func() models.Task { return models.Task{} },
		parse: func(rows []importer.Row) (importer.Parsed[models.Task], error) {
			return importer.TaskRows(rows, lists.Employees.Items())
		},
		actions: []action[models.Task]{{
			binding:  keys.DefaultKeyMap().Notify,
			enabled:  func(t models.Task) bool { return !t.EmailSent && !v.sending[t.ID] },
			disabled: "Notification already sent",
			run:      v.notify,
		}},
		emptyHint: "No tasks assigned yet. Press 'n' to assign one.",
	}
	v.resourceView = newResourceView(cfg, lists.Tasks, d.PageSize)
	return v
}

func (v *AssignView) employeeOptions() []option {
	emps := v.lists.Employees.Items()
	opts := make([]option, 0, len(emps)+1)
	opts = append(opts, option{label: "Select employee", value: ""})
	for _, e := range emps {
		opts = append(opts, option{label: fmt.Sprintf("%s (%s)", e.Name, e.Department), value: e.ID.String()})
	}
	return opts
}

func (v *AssignView) Init() tea.Cmd {
	employees := v.lists.Employees
	return tea.Batch(
		func() tea.Msg { return employeesLoadedMsg{err: employees.Load(context.Background())} },
		v.resourceView.Init(),
	)
}

// notify emails the assignee and then flags the task as sent. The flag is
// only set locally after both calls succeeded.
func (v *AssignView) notify(t models.Task) tea.Cmd {
	v.sending[t.ID] = true
	employees, tasks, client := v.lists.Employees, v.lists.Tasks, v.deps.Client
	return func() tea.Msg {
		ctx := context.Background()
		emp, ok := employees.Find(t.EmployeeID)
		if !ok {
			return notifyDoneMsg{taskID: t.ID, err: fmt.Errorf("assigned employee not found")}
		}
		text, err := client.Tasks().SendNotification(ctx, api.NewNotification(t, emp))
		if err != nil {
			return notifyDoneMsg{taskID: t.ID, err: err}
		}
		if err := client.Tasks().MarkNotified(ctx, t.ID); err != nil {
			return notifyDoneMsg{taskID: t.ID, err: err}
		}
		tasks.Mutate(t.ID, func(t *models.Task) { t.EmailSent = true })
		if text == "" {
			text = "Email sent to " + emp.Email
		}
		return notifyDoneMsg{taskID: t.ID, text: text}
	}
}

func (v *AssignView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case employeesLoadedMsg:
		if msg.err != nil {
			return v, toastErr(msg.err, "Failed to load employees")
		}
		return v, nil

	case notifyDoneMsg:
		delete(v.sending, msg.taskID)
		if msg.err != nil {
			return v, toastErr(msg.err, "Failed to send email")
		}
		return v, toast("%s", msg.text)
	}

	_, cmd := v.resourceView.Update(msg)
	return v, cmd
}

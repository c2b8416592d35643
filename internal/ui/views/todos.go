package views

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/tms/internal/listview"
	"github.com/tgienger/tms/internal/models"
	"github.com/tgienger/tms/internal/ui/styles"
)

// TodosView is the prioritized work to-do list
type TodosView struct {
	*resourceView[models.WorkTodo]
}

func priorityOptions() []option {
	opts := make([]option, len(models.Priorities))
	for i, p := range models.Priorities {
		opts[i] = option{label: string(p), value: string(p)}
	}
	return opts
}

// NewTodosView creates the to-do screen
func NewTodosView(d Deps, lists *Lists) *TodosView {
	cfg := resourceConfig[models.WorkTodo]{
		title: "Work To-Do",
		noun:  "to-do",
		columns: []column[models.WorkTodo]{
			{title: "Title", width: 40, value: func(w models.WorkTodo) string { return w.Title }},
			{
				title: "Priority", width: 12,
				value: func(w models.WorkTodo) string { return string(w.Priority) },
				color: func(w models.WorkTodo) lipgloss.Color { return styles.PriorityColor(string(w.Priority)) },
			},
			{title: "Deadline", width: 12, value: func(w models.WorkTodo) string { return w.Deadline }},
		},
		fields: []field[models.WorkTodo]{
			{
				label: "Title", placeholder: "What needs doing",
				get: func(w models.WorkTodo) string { return w.Title },
				set: func(w *models.WorkTodo, s string) { w.Title = s },
			},
			{
				label: "Priority", options: priorityOptions,
				get: func(w models.WorkTodo) string { return string(w.Priority) },
				set: func(w *models.WorkTodo, s string) { w.Priority = models.Priority(s) },
			},
			{
				label: "Deadline", placeholder: "YYYY-MM-DD",
				get: func(w models.WorkTodo) string { return w.Deadline },
				set: func(w *models.WorkTodo, s string) { w.Deadline = s },
			},
		},
		matcher:    listview.Todos,
		categories: func() []string {
			out := make([]string, len(models.Priorities))
			for i, p := range models.Priorities {
				out[i] = string(p)
			}
			return out
		},
		blank:     func() models.WorkTodo { return models.WorkTodo{Priority: models.PriorityMedium} },
		emptyHint: "Nothing to do. Press 'n' to add a to-do.",
	}
	return &TodosView{newResourceView(cfg, lists.Todos, d.PageSize)}
}

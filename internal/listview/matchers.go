package listview

import "github.com/tgienger/tms/internal/models"

// Task status categories
const (
	TaskPending = "Pending"
	TaskSent    = "Sent"
)

// TaskStatus is the category of t: whether its assignee was notified
func TaskStatus(t models.Task) string {
	if t.EmailSent {
		return TaskSent
	}
	return TaskPending
}

// Employees searches by name and filters by department
var Employees = Matcher[models.Employee]{
	Text:     func(e models.Employee) string { return e.Name },
	Category: func(e models.Employee) string { return string(e.Department) },
}

// Tasks searches title and assignee name and filters by status. assignee
// resolves the employee name shown for a task.
func Tasks(assignee func(models.Task) string) Matcher[models.Task] {
	return Matcher[models.Task]{
		Text:     func(t models.Task) string { return t.Title + " " + assignee(t) },
		Category: TaskStatus,
	}
}

var Groups = Matcher[models.InventoryGroup]{
	Text: func(g models.InventoryGroup) string { return g.Name },
}

var Items = Matcher[models.InventoryItem]{
	Text: func(i models.InventoryItem) string { return i.Name },
}

// Todos searches by title and filters by priority
var Todos = Matcher[models.WorkTodo]{
	Text:     func(w models.WorkTodo) string { return w.Title },
	Category: func(w models.WorkTodo) string { return string(w.Priority) },
}

package models

import (
	"strings"
	"time"
)

// Department is one of the fixed employee departments
type Department string

const (
	DepartmentFrontend Department = "Frontend"
	DepartmentBackend  Department = "Backend"
	DepartmentDatabase Department = "Database"
	DepartmentQA       Department = "QA"
)

// Departments lists the departments in display order
var Departments = []Department{
	DepartmentFrontend,
	DepartmentBackend,
	DepartmentDatabase,
	DepartmentQA,
}

// ParseDepartment matches s case-insensitively against the known
// departments. Unknown values are returned as given so validation reports them.
func ParseDepartment(s string) Department {
	s = strings.TrimSpace(s)
	for _, d := range Departments {
		if strings.EqualFold(string(d), s) {
			return d
		}
	}
	return Department(s)
}

// Priority is the urgency of a work to-do
type Priority string

const (
	PriorityImmediate Priority = "Immediate"
	PriorityHigh      Priority = "High"
	PriorityMedium    Priority = "Medium"
	PriorityLow       Priority = "Low"
)

// Priorities lists the priorities from most to least urgent
var Priorities = []Priority{
	PriorityImmediate,
	PriorityHigh,
	PriorityMedium,
	PriorityLow,
}

// ParsePriority matches s case-insensitively against the known priorities
func ParsePriority(s string) Priority {
	s = strings.TrimSpace(s)
	for _, p := range Priorities {
		if strings.EqualFold(string(p), s) {
			return p
		}
	}
	return Priority(s)
}

// DateLayout is the wire format for due dates and deadlines
const DateLayout = "2006-01-02"

// Record is implemented by every backend-managed resource
type Record interface {
	Key() ID
}

// Keyed is a record that can be copied under another identifier
type Keyed[T any] interface {
	Record
	WithKey(id ID) T
}

// Employee represents a staff member managed by the backend
type Employee struct {
	ID         ID         `json:"id,omitempty"`
	Name       string     `json:"name" validate:"required"`
	Department Department `json:"department" validate:"required,oneof=Frontend Backend Database QA"`
	Email      string     `json:"email" validate:"required,email"`
	Phone      string     `json:"phone" validate:"required"`
}

func (e Employee) Key() ID { return e.ID }

func (e Employee) WithKey(id ID) Employee {
	e.ID = id
	return e
}

// Task is a unit of work assigned to an employee
type Task struct {
	ID         ID     `json:"id,omitempty"`
	Title      string `json:"title" validate:"required"`
	EmployeeID ID     `json:"employeeId" validate:"required"`
	DueDate    string `json:"dueDate" validate:"required,datetime=2006-01-02"`
	EmailSent  bool   `json:"emailSent"`
}

func (t Task) Key() ID { return t.ID }

func (t Task) WithKey(id ID) Task {
	t.ID = id
	return t
}

// Due parses the due date; the zero time is returned for malformed values
func (t Task) Due() time.Time {
	d, err := time.Parse(DateLayout, t.DueDate)
	if err != nil {
		return time.Time{}
	}
	return d
}

// InventoryGroup groups inventory items
type InventoryGroup struct {
	ID   ID     `json:"id,omitempty"`
	Name string `json:"name" validate:"required"`
}

func (g InventoryGroup) Key() ID { return g.ID }

func (g InventoryGroup) WithKey(id ID) InventoryGroup {
	g.ID = id
	return g
}

// InventoryItem is a counted item owned by a group
type InventoryItem struct {
	ID       ID     `json:"id,omitempty"`
	Name     string `json:"name" validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=0"`
	GroupID  ID     `json:"group_id,omitempty"`
}

func (i InventoryItem) Key() ID { return i.ID }

func (i InventoryItem) WithKey(id ID) InventoryItem {
	i.ID = id
	return i
}

// WorkTodo is an entry of the prioritized to-do list
type WorkTodo struct {
	ID       ID       `json:"id,omitempty"`
	Title    string   `json:"title" validate:"required"`
	Priority Priority `json:"priority" validate:"required,oneof=Immediate High Medium Low"`
	Deadline string   `json:"deadline" validate:"required,datetime=2006-01-02"`
}

func (w WorkTodo) Key() ID { return w.ID }

func (w WorkTodo) WithKey(id ID) WorkTodo {
	w.ID = id
	return w
}

// Session is the locally persisted sign-in state
type Session struct {
	Token     string
	Username  string
	Photo     string
	ExpiresAt time.Time
}

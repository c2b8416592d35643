package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/tgienger/tms/internal/models"
)

// TaskResource adds the notification actions to the /tasks collection
type TaskResource struct {
	Resource[models.Task]
}

// Tasks is the /tasks collection
func (c *Client) Tasks() TaskResource {
	return TaskResource{Resource: newResource[models.Task](c, "/tasks")}
}

// Notification is the body of POST /send-email
type Notification struct {
	TaskID        models.ID `json:"taskId"`
	EmployeeName  string    `json:"employeeName"`
	EmployeeEmail string    `json:"employeeEmail"`
	TaskTitle     string    `json:"taskTitle"`
	DueDate       string    `json:"dueDate"`
}

// NewNotification builds the email payload for a task and its assignee
func NewNotification(task models.Task, employee models.Employee) Notification {
	return Notification{
		TaskID:        task.ID,
		EmployeeName:  employee.Name,
		EmployeeEmail: employee.Email,
		TaskTitle:     task.Title,
		DueDate:       task.DueDate,
	}
}

// SendNotification asks the backend to email the assignee. It returns the
// server's confirmation message.
func (r TaskResource) SendNotification(ctx context.Context, n Notification) (string, error) {
	var out messageResponse
	if err := r.c.doJSON(ctx, http.MethodPost, "/send-email", n, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// MarkNotified flips the task's email-sent flag on the backend
func (r TaskResource) MarkNotified(ctx context.Context, id models.ID) error {
	return r.c.doJSON(ctx, http.MethodPatch, "/tasks/"+url.PathEscape(id.String())+"/email-sent", nil, nil)
}

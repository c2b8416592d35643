package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tgienger/tms/internal/api"
	"github.com/tgienger/tms/internal/importer"
	"github.com/tgienger/tms/internal/listsync"
	"github.com/tgienger/tms/internal/listview"
	"github.com/tgienger/tms/internal/models"
)

var errAlreadyNotified = errors.New("notification already sent")

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task", "assign"},
		Short:   "Task assignment commands",
	}
	cmd.AddCommand(newTasksListCmd(app))
	cmd.AddCommand(newTasksAssignCmd(app))
	cmd.AddCommand(newTasksUpdateCmd(app))
	cmd.AddCommand(newTasksDeleteCmd(app))
	cmd.AddCommand(newTasksNotifyCmd(app))
	cmd.AddCommand(newTasksImportCmd(app))
	return cmd
}

// loadEmployees fetches the employee collection tasks refer to
func loadEmployees(ctx context.Context, app *App) (*listsync.List[models.Employee], error) {
	l := listsync.New[models.Employee](app.client.Employees())
	if err := l.Load(ctx); err != nil {
		return nil, fmt.Errorf("load employees: %w", err)
	}
	return l, nil
}

// taskFields resolves --employee as an ID or, when it contains '@', as the
// email of an existing employee.
func taskFields(app *App) []fieldFlag[models.Task] {
	return []fieldFlag[models.Task]{
		{"title", "Task title", func(_ context.Context, t *models.Task, v string) error {
			t.Title = strings.TrimSpace(v)
			return nil
		}},
		{"employee", "Assignee ID or email", func(ctx context.Context, t *models.Task, v string) error {
			v = strings.TrimSpace(v)
			if !strings.Contains(v, "@") {
				t.EmployeeID = models.ParseID(v)
				return nil
			}
			employees, err := loadEmployees(ctx, app)
			if err != nil {
				return err
			}
			for _, e := range employees.Items() {
				if strings.EqualFold(e.Email, v) {
					t.EmployeeID = e.ID
					return nil
				}
			}
			return fmt.Errorf("no employee with email %s", v)
		}},
		{"due", "Due date (YYYY-MM-DD)", func(_ context.Context, t *models.Task, v string) error {
			t.DueDate = strings.TrimSpace(v)
			return nil
		}},
	}
}

func newTasksListCmd(app *App) *cobra.Command {
	var f listFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			employees, err := loadEmployees(cmd.Context(), app)
			if err != nil {
				return err
			}
			for _, c := range []string{listview.TaskPending, listview.TaskSent} {
				if strings.EqualFold(f.category, c) {
					f.category = c
				}
			}
			m := listview.Tasks(func(t models.Task) string {
				if e, ok := employees.Find(t.EmployeeID); ok {
					return e.Name
				}
				return ""
			})
			return listRecords[models.Task](cmd, app, app.client.Tasks(), m, f)
		},
	}
	f.bind(cmd, fmt.Sprintf("Email status (%s or %s)", listview.TaskPending, listview.TaskSent))
	return cmd
}

func newTasksAssignCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Assign a task to an employee",
	}
	apply := bindFields(cmd, taskFields(app))
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return createRecord[models.Task](cmd, app, app.client.Tasks(), nil, apply)
	}
	return cmd
}

func newTasksUpdateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <task-id>",
		Short: "Change the given fields of a task",
		Args:  cobra.ExactArgs(1),
	}
	apply := bindFields(cmd, taskFields(app))
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return updateRecord[models.Task](cmd, app, app.client.Tasks(), "task", argID(args, 0), apply)
	}
	return cmd
}

func newTasksDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return deleteRecord[models.Task](cmd, app, app.client.Tasks(), argID(args, 0))
		},
	}
}

func newTasksNotifyCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "notify <task-id>",
		Short: "Email the assignee of a task, once",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id := argID(args, 0)

			tasks := listsync.New[models.Task](app.client.Tasks())
			if err := tasks.Load(ctx); err != nil {
				return err
			}
			task, ok := tasks.Find(id)
			if !ok {
				return fmt.Errorf("task %s not found", id)
			}
			if task.EmailSent {
				return errAlreadyNotified
			}
			employees, err := loadEmployees(ctx, app)
			if err != nil {
				return err
			}
			emp, ok := employees.Find(task.EmployeeID)
			if !ok {
				return fmt.Errorf("assigned employee %s not found", task.EmployeeID)
			}

			msg, err := app.client.Tasks().SendNotification(ctx, api.NewNotification(task, emp))
			if err != nil {
				return err
			}
			if err := app.client.Tasks().MarkNotified(ctx, task.ID); err != nil {
				return fmt.Errorf("email sent but not recorded: %w", err)
			}
			app.log.Info().Str("task", task.ID.String()).Str("to", emp.Email).Msg("notification sent")
			return writeOut(cmd, app, map[string]any{"taskId": task.ID, "message": msg}, nil)
		},
	}
}

func newTasksImportCmd(app *App) *cobra.Command {
	var commit bool
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import tasks from a .xlsx, .xls or .csv file",
		Long: strings.TrimSpace(`
Reads title, employee email and due date columns. The assignee is matched by
email; rows with an unknown email are skipped. Without --commit the parsed
rows are printed and nothing is sent.
`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			employees, err := loadEmployees(cmd.Context(), app)
			if err != nil {
				return err
			}
			parse := func(rows []importer.Row) (importer.Parsed[models.Task], error) {
				return importer.TaskRows(rows, employees.Items())
			}
			return importFile[models.Task](cmd, app, app.client.Tasks(), args[0], commit, nil, parse)
		},
	}
	cmd.Flags().BoolVar(&commit, "commit", false, "Create the parsed tasks")
	return cmd
}

package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tgienger/tms/internal/listview"
	"github.com/tgienger/tms/internal/models"
)

func todoFields() []fieldFlag[models.WorkTodo] {
	return []fieldFlag[models.WorkTodo]{
		{"title", "What needs doing", func(_ context.Context, w *models.WorkTodo, v string) error {
			w.Title = strings.TrimSpace(v)
			return nil
		}},
		{"priority", "Immediate, High, Medium or Low", func(_ context.Context, w *models.WorkTodo, v string) error {
			w.Priority = models.ParsePriority(v)
			return nil
		}},
		{"deadline", "Deadline (YYYY-MM-DD)", func(_ context.Context, w *models.WorkTodo, v string) error {
			w.Deadline = strings.TrimSpace(v)
			return nil
		}},
	}
}

func newTodosCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "todos",
		Aliases: []string{"todo", "worktodo"},
		Short:   "Work to-do commands",
	}

	var f listFlags
	list := &cobra.Command{
		Use:   "list",
		Short: "List to-dos",
		RunE: func(cmd *cobra.Command, args []string) error {
			f.category = string(models.ParsePriority(f.category))
			return listRecords[models.WorkTodo](cmd, app, app.client.WorkTodos(), listview.Todos, f)
		},
	}
	f.bind(list, "Priority (Immediate, High, Medium, Low)")

	add := &cobra.Command{
		Use:   "add",
		Short: "Add a to-do; priority defaults to Medium",
	}
	addFields := bindFields(add, todoFields())
	add.RunE = func(cmd *cobra.Command, args []string) error {
		blank := func() models.WorkTodo { return models.WorkTodo{Priority: models.PriorityMedium} }
		return createRecord[models.WorkTodo](cmd, app, app.client.WorkTodos(), blank, addFields)
	}

	update := &cobra.Command{
		Use:   "update <todo-id>",
		Short: "Change the given fields of a to-do",
		Args:  cobra.ExactArgs(1),
	}
	updateFields := bindFields(update, todoFields())
	update.RunE = func(cmd *cobra.Command, args []string) error {
		return updateRecord[models.WorkTodo](cmd, app, app.client.WorkTodos(), "to-do", argID(args, 0), updateFields)
	}

	del := &cobra.Command{
		Use:   "delete <todo-id>",
		Short: "Delete a to-do",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return deleteRecord[models.WorkTodo](cmd, app, app.client.WorkTodos(), argID(args, 0))
		},
	}

	cmd.AddCommand(list, add, update, del)
	return cmd
}

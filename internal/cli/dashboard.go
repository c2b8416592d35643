package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/tgienger/tms/internal/dashboard"
)

func newDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Head counts and task status",
		RunE: func(cmd *cobra.Command, args []string) error {
			employees, tasks, err := dashboard.Load(cmd.Context(), app.client.Employees(), app.client.Tasks())
			if err != nil {
				return err
			}
			return writeOut(cmd, app, dashboard.Summarize(employees, tasks, time.Now()), nil)
		},
	}
}

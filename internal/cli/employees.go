package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tgienger/tms/internal/importer"
	"github.com/tgienger/tms/internal/listview"
	"github.com/tgienger/tms/internal/models"
)

func employeeFields() []fieldFlag[models.Employee] {
	return []fieldFlag[models.Employee]{
		{"name", "Full name", func(_ context.Context, e *models.Employee, v string) error {
			e.Name = strings.TrimSpace(v)
			return nil
		}},
		{"department", "Frontend, Backend, Database or QA", func(_ context.Context, e *models.Employee, v string) error {
			e.Department = models.ParseDepartment(v)
			return nil
		}},
		{"email", "Email address", func(_ context.Context, e *models.Employee, v string) error {
			e.Email = strings.TrimSpace(v)
			return nil
		}},
		{"phone", "Phone number", func(_ context.Context, e *models.Employee, v string) error {
			e.Phone = strings.TrimSpace(v)
			return nil
		}},
	}
}

func newEmployeesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "employees",
		Aliases: []string{"employee"},
		Short:   "Employee commands",
	}
	cmd.AddCommand(newEmployeesListCmd(app))
	cmd.AddCommand(newEmployeesAddCmd(app))
	cmd.AddCommand(newEmployeesUpdateCmd(app))
	cmd.AddCommand(newEmployeesDeleteCmd(app))
	cmd.AddCommand(newEmployeesImportCmd(app))
	return cmd
}

func newEmployeesListCmd(app *App) *cobra.Command {
	var f listFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List employees",
		RunE: func(cmd *cobra.Command, args []string) error {
			f.category = string(models.ParseDepartment(f.category))
			return listRecords[models.Employee](cmd, app, app.client.Employees(), listview.Employees, f)
		},
	}
	f.bind(cmd, fmt.Sprintf("Department (%s)", joinDepartments()))
	return cmd
}

func newEmployeesAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an employee",
	}
	apply := bindFields(cmd, employeeFields())
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return createRecord[models.Employee](cmd, app, app.client.Employees(), nil, apply)
	}
	return cmd
}

func newEmployeesUpdateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <employee-id>",
		Short: "Change the given fields of an employee",
		Args:  cobra.ExactArgs(1),
	}
	apply := bindFields(cmd, employeeFields())
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return updateRecord[models.Employee](cmd, app, app.client.Employees(), "employee", argID(args, 0), apply)
	}
	return cmd
}

func newEmployeesDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <employee-id>",
		Short: "Delete an employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return deleteRecord[models.Employee](cmd, app, app.client.Employees(), argID(args, 0))
		},
	}
}

func newEmployeesImportCmd(app *App) *cobra.Command {
	var commit bool
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import employees from a .xlsx, .xls or .csv file",
		Long: strings.TrimSpace(`
Reads name, department, email and phone columns. Rows missing any of them are
skipped. Without --commit the parsed rows are printed and nothing is sent.
`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return importFile[models.Employee](cmd, app, app.client.Employees(), args[0], commit, nil, importer.EmployeeRows)
		},
	}
	cmd.Flags().BoolVar(&commit, "commit", false, "Create the parsed employees")
	return cmd
}

func joinDepartments() string {
	names := make([]string, len(models.Departments))
	for i, d := range models.Departments {
		names[i] = string(d)
	}
	return strings.Join(names, ", ")
}

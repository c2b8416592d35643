package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/tgienger/tms/internal/api"
	"github.com/tgienger/tms/internal/config"
	"github.com/tgienger/tms/internal/db"
	"github.com/tgienger/tms/internal/format"
	"github.com/tgienger/tms/internal/listsync"
	"github.com/tgienger/tms/internal/logger"
	"github.com/tgienger/tms/internal/session"
	"github.com/tgienger/tms/internal/ui"
	"github.com/tgienger/tms/internal/ui/views"
)

// Commands carrying this annotation run without a session
const annotationPublic = "public"

var errNotSignedIn = fmt.Errorf("%w: run `tms login` first", session.ErrNoSession)

// App holds the flags and services shared by all commands
type App struct {
	APIURL     string
	DataDir    string
	PrettyJSON bool

	cfg      *config.Config
	log      *logger.Logger
	db       *db.DB
	sessions *session.Context
	client   *api.Client
}

// Execute runs the command tree with args and closes the session store
// afterwards.
func Execute(version string, args []string) error {
	app := &App{}
	cmd := newRootCmd(app, version)
	cmd.SetArgs(args)
	defer app.close()
	return cmd.Execute()
}

func newRootCmd(app *App, version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tms",
		Short:         "Team management client: employees, tasks, inventory and to-dos",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  tms

  # Scriptable commands
  tms login --email jane@example.com --password secret
  tms employees list --category Backend
  tms tasks import tasks.xlsx --commit
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI, which guards routes itself
			if len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}
	cmd.SetVersionTemplate("tms {{.Version}}\n")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := app.setup(); err != nil {
			return err
		}
		if cmd == cmd.Root() || cmd.Annotations[annotationPublic] == "true" {
			return nil
		}
		if _, ok := app.sessions.Get(); !ok {
			return errNotSignedIn
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.APIURL, "api", "", "Backend base URL (overrides TMS_API_URL)")
	cmd.PersistentFlags().StringVar(&app.DataDir, "data-dir", "", "Directory of the local session store (overrides TMS_DATA_DIR)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newLoginCmd(app))
	cmd.AddCommand(newRegisterCmd(app))
	cmd.AddCommand(newLogoutCmd(app))
	cmd.AddCommand(newWhoamiCmd(app))
	cmd.AddCommand(newEmployeesCmd(app))
	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newInventoryCmd(app))
	cmd.AddCommand(newTodosCmd(app))
	cmd.AddCommand(newDashboardCmd(app))

	return cmd
}

// setup loads configuration and opens the session store and API client.
// It is idempotent so tests can preload cfg.
func (app *App) setup() error {
	if app.client != nil {
		return nil
	}
	if app.cfg == nil {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		app.cfg = cfg
	}
	if app.APIURL != "" {
		app.cfg.APIURL = strings.TrimRight(app.APIURL, "/")
	}
	if app.DataDir != "" && app.DataDir != app.cfg.DataDir {
		if app.cfg.LogFile == filepath.Join(app.cfg.DataDir, "tms.log") {
			app.cfg.LogFile = filepath.Join(app.DataDir, "tms.log")
		}
		app.cfg.DataDir = app.DataDir
	}
	if err := app.cfg.Validate(); err != nil {
		return err
	}

	log, err := logger.New(logger.Config{Env: app.cfg.Env, Level: app.cfg.LogLevel, File: app.cfg.LogFile})
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	database, err := db.New(app.cfg.DataDir)
	if err != nil {
		log.Close()
		return fmt.Errorf("open session store: %w", err)
	}
	if n, err := database.PurgeExpiredEntries(time.Now()); err != nil {
		log.Warn().Err(err).Msg("purge expired session entries")
	} else if n > 0 {
		log.Debug().Int64("entries", n).Msg("purged expired session entries")
	}

	app.log = log
	app.db = database
	app.sessions = session.New(database, app.cfg.SessionTTL)
	app.client = api.New(app.cfg.APIURL,
		api.WithToken(app.sessions.Token),
		api.WithTimeout(app.cfg.HTTPTimeout),
		api.WithLogger(log.Component("api")),
	)
	return nil
}

func (app *App) close() error {
	var err error
	if app.db != nil {
		err = app.db.Close()
		app.db = nil
	}
	if app.log != nil {
		if cerr := app.log.Close(); err == nil {
			err = cerr
		}
		app.log = nil
	}
	app.client = nil
	return err
}

func runTUI(app *App) error {
	deps := views.Deps{
		Client:   app.client,
		Sessions: app.sessions,
		PageSize: app.cfg.PageSize,
		Log:      app.log.Component("ui"),
	}
	model := ui.NewApp(deps, app.db, views.NewLists(app.client), listsync.PolicyFrom(app.cfg))
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

func writeOut(cmd *cobra.Command, app *App, data any, meta any) error {
	return format.WriteJSON(cmd.OutOrStdout(), format.Envelope{Data: data, Meta: meta}, app.PrettyJSON)
}

func publicCmd(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[annotationPublic] = "true"
	return cmd
}

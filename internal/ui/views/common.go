package views

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/tgienger/tms/internal/api"
	"github.com/tgienger/tms/internal/importer"
	"github.com/tgienger/tms/internal/models"
	"github.com/tgienger/tms/internal/session"
	"github.com/tgienger/tms/internal/ui/styles"
)

// Deps are the services every view may use
type Deps struct {
	Client   *api.Client
	Sessions *session.Context
	PageSize int
	Log      zerolog.Logger
}

// Navigate asks the app to open a route
type Navigate struct {
	Route session.Route
}

// Toast shows a transient notification in the status line
type Toast struct {
	Text string
	Err  bool
}

// SignedIn is sent after a successful login
type SignedIn struct {
	Session models.Session
}

// SignOut asks the app to clear the session
type SignOut struct{}

// Refresh asks the current view to reload from the backend
type Refresh struct{}

// Capturer is implemented by views that consume raw keys (text input,
// open dialogs) so the app must not treat them as shortcuts.
type Capturer interface {
	Capturing() bool
}

func navigate(route session.Route) tea.Cmd {
	return func() tea.Msg { return Navigate{Route: route} }
}

func toast(format string, args ...any) tea.Cmd {
	text := fmt.Sprintf(format, args...)
	return func() tea.Msg { return Toast{Text: text} }
}

func toastErr(err error, fallback string) tea.Cmd {
	text := errMessage(err, fallback)
	return func() tea.Msg { return Toast{Text: text, Err: true} }
}

// errMessage turns err into the line shown to the user
func errMessage(err error, fallback string) string {
	switch {
	case models.IsValidationError(err):
		return err.Error()
	case errors.Is(err, importer.ErrEmptyFile):
		return "Empty file"
	case errors.Is(err, importer.ErrNoValidRecords):
		return "No valid records found in file"
	}
	return api.MessageOf(err, fallback)
}

func asValidation(err error) (*models.ValidationError, bool) {
	var ve *models.ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// truncate cuts s to width cells, marking the cut with an ellipsis
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > width {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}

// helpLine renders "key desc • key desc" pairs
func helpLine(s *styles.Styles, pairs ...string) string {
	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, s.HelpKey.Render(pairs[i])+" "+pairs[i+1])
	}
	return s.Help.Render(strings.Join(parts, " • "))
}

func renderConfirm(s *styles.Styles, width, height int, title, detail string) string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render(title),
		"",
		s.TitleMuted.Render(detail),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)
	return lipgloss.Place(width, max(height, 10),
		lipgloss.Center, lipgloss.Center,
		content,
	)
}

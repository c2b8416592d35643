package views

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/tms/internal/api"
	"github.com/tgienger/tms/internal/models"
	"github.com/tgienger/tms/internal/session"
	"github.com/tgienger/tms/internal/ui/keys"
	"github.com/tgienger/tms/internal/ui/styles"
)

type authMode int

const (
	modeLogin authMode = iota
	modeRegister
)

// Register form field order
const (
	regUsername = iota
	regEmail
	regPhone
	regPassword
	regConfirm
	regPhoto
)

type loginDoneMsg struct {
	session models.Session
	err     error
}

type registerDoneMsg struct {
	message string
	err     error
}

// AuthView is the sign-in and registration screen
type AuthView struct {
	deps   Deps
	mode   authMode
	styles *styles.Styles
	keys   keys.KeyMap

	labels   []string
	inputs   []textinput.Model
	focusIdx int // len(inputs) is the submit button
	pending  bool
	errText  string

	width  int
	height int
}

func newInput(placeholder string, secret bool) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 200
	if secret {
		in.EchoMode = textinput.EchoPassword
		in.EchoCharacter = '•'
	}
	return in
}

// NewLoginView creates the sign-in screen
func NewLoginView(d Deps) *AuthView {
	v := &AuthView{
		deps:   d,
		mode:   modeLogin,
		styles: styles.NewStyles(),
		keys:   keys.DefaultKeyMap(),
		labels: []string{"Email", "Password"},
		inputs: []textinput.Model{
			newInput("name@example.com", false),
			newInput("Password", true),
		},
	}
	v.updateFocus()
	return v
}

// NewRegisterView creates the registration screen
func NewRegisterView(d Deps) *AuthView {
	v := &AuthView{
		deps:   d,
		mode:   modeRegister,
		styles: styles.NewStyles(),
		keys:   keys.DefaultKeyMap(),
		labels: []string{"Username", "Email", "Phone", "Password", "Confirm password", "Photo (optional)"},
		inputs: []textinput.Model{
			newInput("Username", false),
			newInput("name@example.com", false),
			newInput("Phone number", false),
			newInput("Password", true),
			newInput("Repeat password", true),
			newInput("path/to/photo.png", false),
		},
	}
	v.updateFocus()
	return v
}

func (v *AuthView) Init() tea.Cmd {
	return textinput.Blink
}

// Capturing is always true: every key goes to a text field
func (v *AuthView) Capturing() bool { return true }

func (v *AuthView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		for i := range v.inputs {
			v.inputs[i].Width = clamp(styles.ContentWidth(v.width)-12, 20, 40)
		}
		return v, nil

	case loginDoneMsg:
		v.pending = false
		if msg.err != nil {
			v.errText = errMessage(msg.err, "Login failed")
			return v, toastErr(msg.err, "Login failed")
		}
		sess := msg.session
		return v, tea.Batch(
			toast("Login successful"),
			func() tea.Msg { return SignedIn{Session: sess} },
		)

	case registerDoneMsg:
		v.pending = false
		if msg.err != nil {
			v.errText = errMessage(msg.err, "Registration failed")
			return v, toastErr(msg.err, "Registration failed")
		}
		text := msg.message
		if text == "" {
			text = "Registration successful, please sign in"
		}
		return v, tea.Batch(toast("%s", text), navigate(session.RouteLogin))

	case tea.KeyMsg:
		return v.updateKeys(msg)
	}
	return v, nil
}

func (v *AuthView) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if v.pending {
		return v, nil
	}
	n := len(v.inputs)
	switch {
	case msg.String() == "ctrl+r":
		if v.mode == modeLogin {
			return v, navigate(session.RouteRegister)
		}
		return v, navigate(session.RouteLogin)

	case key.Matches(msg, v.keys.Save):
		return v, v.submit()

	case key.Matches(msg, v.keys.Tab), msg.String() == "down":
		v.focusIdx = (v.focusIdx + 1) % (n + 1)
		v.updateFocus()
		return v, nil

	case msg.String() == "shift+tab", msg.String() == "up":
		v.focusIdx = (v.focusIdx + n) % (n + 1)
		v.updateFocus()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		if v.focusIdx >= n-1 {
			return v, v.submit()
		}
		v.focusIdx++
		v.updateFocus()
		return v, nil
	}

	if v.focusIdx < n {
		var cmd tea.Cmd
		v.inputs[v.focusIdx], cmd = v.inputs[v.focusIdx].Update(msg)
		v.errText = ""
		return v, cmd
	}
	return v, nil
}

func (v *AuthView) value(i int) string {
	return strings.TrimSpace(v.inputs[i].Value())
}

func (v *AuthView) submit() tea.Cmd {
	if v.mode == modeLogin {
		return v.submitLogin()
	}
	return v.submitRegister()
}

func (v *AuthView) submitLogin() tea.Cmd {
	creds := api.Credentials{Email: v.value(0), Password: v.inputs[1].Value()}
	if creds.Email == "" || creds.Password == "" {
		v.errText = "Email and password are required"
		return nil
	}
	v.pending = true
	client, sessions := v.deps.Client, v.deps.Sessions
	return func() tea.Msg {
		res, err := client.Login(context.Background(), creds)
		if err != nil {
			return loginDoneMsg{err: err}
		}
		sess, err := sessions.Set(res.Token, res.Username, res.Photo)
		return loginDoneMsg{session: sess, err: err}
	}
}

func (v *AuthView) submitRegister() tea.Cmd {
	reg := api.Registration{
		Username: v.value(regUsername),
		Email:    v.value(regEmail),
		Phone:    v.value(regPhone),
		Password: v.inputs[regPassword].Value(),
	}
	if reg.Username == "" || reg.Email == "" || reg.Phone == "" || reg.Password == "" {
		v.errText = "All fields except the photo are required"
		return nil
	}
	if reg.Password != v.inputs[regConfirm].Value() {
		v.errText = "Passwords do not match"
		return nil
	}
	photo := v.value(regPhoto)
	v.pending = true
	client := v.deps.Client
	return func() tea.Msg {
		if photo != "" {
			f, err := reg.PhotoFromFile(photo)
			if err != nil {
				return registerDoneMsg{err: err}
			}
			defer f.Close()
		}
		text, err := client.Register(context.Background(), reg)
		return registerDoneMsg{message: text, err: err}
	}
}

func (v *AuthView) updateFocus() {
	for i := range v.inputs {
		v.inputs[i].Blur()
	}
	if v.focusIdx < len(v.inputs) {
		v.inputs[v.focusIdx].Focus()
	}
}

func (v *AuthView) View() string {
	s := v.styles
	title, button, switchHint := "Sign in", " Sign In ", "Ctrl+R: create an account"
	if v.mode == modeRegister {
		title, button, switchHint = "Create account", " Register ", "Ctrl+R: back to sign in"
	}

	rows := []string{s.Title.Render("VIVA TMS • " + title), ""}
	for i, in := range v.inputs {
		style := s.Input
		if i == v.focusIdx {
			style = s.InputFocused
		}
		rows = append(rows, s.Label.Render(v.labels[i]+":"), style.Render(in.View()))
	}

	btn := s.Button
	if v.focusIdx == len(v.inputs) {
		btn = s.ButtonFocused
	}
	if v.pending {
		btn, button = s.ButtonDisabled, " Please wait... "
	}
	rows = append(rows, "", btn.Render(button))
	if v.errText != "" {
		rows = append(rows, "", s.FieldError.Render(v.errText))
	}
	rows = append(rows, "", s.TitleMuted.Render("Tab: next • Enter: submit • "+switchHint+" • Ctrl+C: quit"))

	box := s.Drawer.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	return lipgloss.Place(styles.ContentWidth(v.width), max(v.height-2, lipgloss.Height(box)),
		lipgloss.Center, lipgloss.Center,
		box,
	)
}

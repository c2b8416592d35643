package views

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/tgienger/tms/internal/ui/styles"
)

const aboutMarkdown = `# About Us

Welcome to **VIVA TMS System**, where passion meets innovation. Our mission
is to deliver quality, reliability, and creativity in everything we do.

## Our Mission

We aim to empower our clients with exceptional solutions and services,
focusing on innovation, integrity, and customer satisfaction.

## Our Values

- **Innovation:** Constantly evolving to provide modern solutions.
- **Integrity:** Honesty and transparency in everything.
- **Excellence:** Striving for quality in all we do.
- **Customer Focus:** Your satisfaction is our priority.

Join us on our journey as we grow, innovate, and create something amazing
together. Thank you for visiting our platform!
`

// AboutView renders the about page as markdown
type AboutView struct {
	styles   *styles.Styles
	rendered string
	width    int
	height   int
}

// NewAboutView creates the about screen
func NewAboutView() *AboutView {
	v := &AboutView{styles: styles.NewStyles()}
	v.render()
	return v
}

// render uses a fixed style; auto-detection queries the terminal and can block
func (v *AboutView) render() {
	width := clamp(styles.ContentWidth(v.width)-4, 20, 96)
	if v.width == 0 {
		width = 76
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		v.rendered = aboutMarkdown
		return
	}
	out, err := r.Render(aboutMarkdown)
	if err != nil {
		v.rendered = aboutMarkdown
		return
	}
	v.rendered = out
}

func (v *AboutView) Init() tea.Cmd { return nil }

func (v *AboutView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		v.width = msg.Width
		v.height = msg.Height
		v.render()
	}
	return v, nil
}

func (v *AboutView) View() string {
	return v.rendered + "\n" + helpLine(v.styles, "1-6", "screens", "q", "quit")
}

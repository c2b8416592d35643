package views

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/tms/internal/form"
	"github.com/tgienger/tms/internal/importer"
	"github.com/tgienger/tms/internal/listsync"
	"github.com/tgienger/tms/internal/listview"
	"github.com/tgienger/tms/internal/models"
	"github.com/tgienger/tms/internal/ui/keys"
	"github.com/tgienger/tms/internal/ui/styles"
)

var viewSeq atomic.Int64

// column is one table column
type column[T any] struct {
	title string
	width int
	value func(T) string
	color func(T) lipgloss.Color // optional
}

// option is one choice of a select field
type option struct {
	label string
	value string
}

// field is one input of the drawer. A field with options is a select
// cycled with ←/→; the rest are free text.
type field[T any] struct {
	label       string
	placeholder string
	options     func() []option
	get         func(T) string
	set         func(*T, string)
}

// action is a resource-specific key on the selected row
type action[T any] struct {
	binding  key.Binding
	enabled  func(T) bool
	disabled string // toast when not enabled
	run      func(T) tea.Cmd
}

// resourceConfig describes one table screen
type resourceConfig[T any] struct {
	title      string
	noun       string
	columns    []column[T]
	fields     []field[T]
	matcher    listview.Matcher[T]
	categories func() []string // nil disables the filter
	blank      func() T
	parse      func(rows []importer.Row) (importer.Parsed[T], error) // nil disables import
	actions    []action[T]
	onEnter    func(T) tea.Cmd
	emptyHint  string
}

type listLoadedMsg struct {
	owner int64
	err   error
}

type submitDoneMsg struct {
	owner   int64
	outcome any
	err     error
}

type deleteDoneMsg struct {
	owner int64
	err   error
}

// resourceView is the searchable, paginated table with add/edit drawer,
// delete confirmation and spreadsheet import shared by the list screens.
type resourceView[T models.Keyed[T]] struct {
	id     int64
	cfg    resourceConfig[T]
	list   *listsync.List[T]
	view   *listview.View[T]
	form   *form.Controller[T]
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int
	active bool

	loaded  bool
	loadErr string
	cursor  int

	// Search and category filter
	searching    bool
	search       textinput.Model
	filterOpen   bool
	filterCursor int

	// Drawer
	inputs   []textinput.Model
	choices  []int
	stray    []string // select values that match no option
	focusIdx int // len(fields) is the save button
	pending  bool
	invalid  *models.ValidationError

	// Delete confirmation
	confirmingDelete bool
	deleteTarget     T

	// Import prompt
	importing  bool
	importPath textinput.Model

	showHelpPopup bool
}

func newResourceView[T models.Keyed[T]](cfg resourceConfig[T], list *listsync.List[T], pageSize int) *resourceView[T] {
	search := textinput.New()
	search.Placeholder = "Search " + strings.ToLower(cfg.title) + "..."
	search.CharLimit = 100

	path := textinput.New()
	path.Placeholder = "path/to/file.xlsx"
	path.CharLimit = 500

	inputs := make([]textinput.Model, len(cfg.fields))
	for i, f := range cfg.fields {
		in := textinput.New()
		in.Placeholder = f.placeholder
		in.CharLimit = 200
		inputs[i] = in
	}

	return &resourceView[T]{
		id:         viewSeq.Add(1),
		cfg:        cfg,
		list:       list,
		view:       listview.NewView(cfg.matcher, pageSize),
		form:       form.New(cfg.blank),
		styles:     styles.NewStyles(),
		keys:       keys.DefaultKeyMap(),
		active:     true,
		search:     search,
		importPath: path,
		inputs:     inputs,
		choices:    make([]int, len(cfg.fields)),
		stray:      make([]string, len(cfg.fields)),
	}
}

func (v *resourceView[T]) Init() tea.Cmd {
	return v.load
}

func (v *resourceView[T]) load() tea.Msg {
	return listLoadedMsg{owner: v.id, err: v.list.Load(context.Background())}
}

// Capturing reports whether keys go to an input or dialog
func (v *resourceView[T]) Capturing() bool {
	return v.searching || v.filterOpen || v.form.IsOpen() || v.importing || v.confirmingDelete || v.showHelpPopup
}

// Selected returns the record under the cursor
func (v *resourceView[T]) Selected() (T, bool) {
	rows := v.view.Project(v.list.Items()).Rows
	if v.cursor < 0 || v.cursor >= len(rows) {
		var zero T
		return zero, false
	}
	return rows[v.cursor], true
}

func (v *resourceView[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		inputWidth := clamp(styles.ContentWidth(v.width)-12, 20, 50)
		for i := range v.inputs {
			v.inputs[i].Width = inputWidth
		}
		v.search.Width = clamp(styles.ContentWidth(v.width)/3, 10, 30)
		v.importPath.Width = inputWidth
		return v, nil

	case Refresh:
		if v.form.IsOpen() || v.pending {
			return v, nil
		}
		return v, v.load

	case listLoadedMsg:
		if msg.owner != v.id {
			return v, nil
		}
		v.loaded = true
		if msg.err != nil {
			v.loadErr = errMessage(msg.err, "Failed to load "+strings.ToLower(v.cfg.title))
			return v, toastErr(msg.err, "Failed to load "+strings.ToLower(v.cfg.title))
		}
		v.loadErr = ""
		v.clampCursor()
		return v, nil

	case submitDoneMsg:
		if msg.owner != v.id {
			return v, nil
		}
		return v, v.finishSubmit(msg)

	case deleteDoneMsg:
		if msg.owner != v.id {
			return v, nil
		}
		if msg.err != nil {
			return v, toastErr(msg.err, "Failed to delete "+v.cfg.noun)
		}
		v.clampCursor()
		return v, toast("%s deleted successfully", capitalize(v.cfg.noun))

	case tea.KeyMsg:
		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}
		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}
		if v.importing {
			return v.updateImporting(msg)
		}
		if v.form.IsOpen() {
			return v.updateEditing(msg)
		}
		if v.filterOpen {
			return v.updateFilter(msg)
		}
		return v.updateNormal(msg)
	}
	return v, nil
}

func (v *resourceView[T]) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if v.searching {
		switch {
		case key.Matches(msg, v.keys.Back), key.Matches(msg, v.keys.Enter):
			v.searching = false
			v.search.Blur()
			return v, nil
		}
		var cmd tea.Cmd
		v.search, cmd = v.search.Update(msg)
		if v.search.Value() != v.view.Query().Search {
			v.view.SetSearch(v.search.Value())
			v.cursor = 0
		}
		return v, cmd
	}

	switch {
	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(v.view.Project(v.list.Items()).Rows)-1 {
			v.cursor++
		}
		return v, nil

	case key.Matches(msg, v.keys.PrevPage):
		v.view.Project(v.list.Items())
		v.view.Prev()
		v.cursor = 0
		return v, nil

	case key.Matches(msg, v.keys.NextPage):
		v.view.Project(v.list.Items())
		v.view.Next()
		v.cursor = 0
		return v, nil

	case key.Matches(msg, v.keys.Search):
		v.searching = true
		v.search.Focus()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Filter):
		if v.cfg.categories != nil {
			v.filterOpen = true
			v.filterCursor = 0
		}
		return v, nil

	case key.Matches(msg, v.keys.Refresh):
		return v, v.load

	case key.Matches(msg, v.keys.New):
		v.form.OpenCreate()
		v.invalid = nil
		v.fillInputs(v.form.Fields())
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Edit):
		if rec, ok := v.Selected(); ok {
			v.form.OpenEdit(rec, rec.Key())
			v.invalid = nil
			v.fillInputs(rec)
			return v, textinput.Blink
		}
		return v, nil

	case key.Matches(msg, v.keys.Delete):
		if rec, ok := v.Selected(); ok {
			v.confirmingDelete = true
			v.deleteTarget = rec
		}
		return v, nil

	case key.Matches(msg, v.keys.Import):
		if v.cfg.parse != nil {
			v.importing = true
			v.importPath.Reset()
			v.importPath.Focus()
			return v, textinput.Blink
		}
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		if rec, ok := v.Selected(); ok && v.cfg.onEnter != nil {
			return v, v.cfg.onEnter(rec)
		}
		return v, nil

	case msg.String() == "?":
		v.showHelpPopup = true
		return v, nil
	}

	for _, a := range v.cfg.actions {
		if !key.Matches(msg, a.binding) {
			continue
		}
		rec, ok := v.Selected()
		if !ok {
			return v, nil
		}
		if a.enabled != nil && !a.enabled(rec) {
			return v, toast("%s", a.disabled)
		}
		return v, a.run(rec)
	}
	return v, nil
}

func (v *resourceView[T]) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cats := v.cfg.categories()
	switch {
	case key.Matches(msg, v.keys.Back):
		v.filterOpen = false
	case key.Matches(msg, v.keys.Up):
		if v.filterCursor > 0 {
			v.filterCursor--
		}
	case key.Matches(msg, v.keys.Down):
		if v.filterCursor < len(cats) { // +1 for "All"
			v.filterCursor++
		}
	case key.Matches(msg, v.keys.Enter):
		category := ""
		if v.filterCursor > 0 && v.filterCursor <= len(cats) {
			category = cats[v.filterCursor-1]
		}
		v.view.SetCategory(category)
		v.cursor = 0
		v.filterOpen = false
	}
	return v, nil
}

func (v *resourceView[T]) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.confirmingDelete = false
		id := v.deleteTarget.Key()
		return v, func() tea.Msg {
			err := v.list.Delete(context.Background(), id)
			return deleteDoneMsg{owner: v.id, err: err}
		}
	case "n", "N", "esc":
		v.confirmingDelete = false
	}
	return v, nil
}

func (v *resourceView[T]) updateImporting(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.importing = false
		v.importPath.Blur()
		return v, nil
	case key.Matches(msg, v.keys.Enter):
		v.importing = false
		v.importPath.Blur()
		return v, v.StageImport(strings.TrimSpace(v.importPath.Value()))
	}
	var cmd tea.Cmd
	v.importPath, cmd = v.importPath.Update(msg)
	return v, cmd
}

// StageImport parses a spreadsheet and opens its rows as editable drafts.
// Nothing is sent until the drafts are saved.
func (v *resourceView[T]) StageImport(path string) tea.Cmd {
	f, err := os.Open(path)
	if err != nil {
		return toastErr(err, "Could not open "+path)
	}
	defer f.Close()

	rows, err := importer.ReadRows(f, path)
	if err != nil {
		return toastErr(err, "Could not read "+path)
	}
	parsed, err := v.cfg.parse(rows)
	if err != nil {
		return toastErr(err, "No valid records found in file")
	}
	v.form.OpenBulk(importer.NewStaging(parsed.Records))
	v.invalid = nil
	v.fillInputs(v.form.Fields())
	if parsed.Skipped > 0 {
		return toast("%d %s ready to import, %d rows skipped", len(parsed.Records), plural(v.cfg.noun, len(parsed.Records)), parsed.Skipped)
	}
	return toast("%d %s ready to import", len(parsed.Records), plural(v.cfg.noun, len(parsed.Records)))
}

func (v *resourceView[T]) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if v.pending {
		return v, nil
	}
	n := len(v.cfg.fields)
	bulk := v.form.Mode() == form.BulkDraft

	switch {
	case key.Matches(msg, v.keys.Back):
		v.form.Close()
		v.invalid = nil
		return v, nil

	case key.Matches(msg, v.keys.Save):
		return v, v.submit()

	case key.Matches(msg, v.keys.Tab):
		v.focusIdx = (v.focusIdx + 1) % (n + 1)
		v.updateFocus()
		return v, nil

	case msg.String() == "shift+tab":
		v.focusIdx = (v.focusIdx + n) % (n + 1)
		v.updateFocus()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		if v.focusIdx == n {
			return v, v.submit()
		}
		v.focusIdx++
		v.updateFocus()
		return v, nil

	case bulk && msg.String() == "ctrl+n":
		v.stepDraft(1)
		return v, nil

	case bulk && msg.String() == "ctrl+p":
		v.stepDraft(-1)
		return v, nil

	case bulk && msg.String() == "ctrl+d":
		v.form.RemoveDraft()
		if !v.form.IsOpen() || v.form.Staging().Len() == 0 {
			v.form.Close()
			return v, toast("Import discarded")
		}
		v.fillInputs(v.form.Fields())
		return v, nil

	case msg.String() == "left", msg.String() == "right":
		if v.focusIdx < n && v.cfg.fields[v.focusIdx].options != nil {
			opts := v.selectOptions(v.focusIdx)
			if len(opts) > 0 {
				step := 1
				if msg.String() == "left" {
					step = len(opts) - 1
				}
				v.choices[v.focusIdx] = (v.choices[v.focusIdx] + step) % len(opts)
			}
			return v, nil
		}
	}

	if v.focusIdx < n && v.cfg.fields[v.focusIdx].options == nil {
		var cmd tea.Cmd
		v.inputs[v.focusIdx], cmd = v.inputs[v.focusIdx].Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *resourceView[T]) stepDraft(dir int) {
	v.form.SetFields(v.readInputs())
	v.form.SaveDraft()
	drafts := v.form.Staging().Drafts()
	for i, d := range drafts {
		if d.Key == v.form.DraftKey() {
			next := (i + dir + len(drafts)) % len(drafts)
			v.form.SelectDraft(drafts[next].Key)
			break
		}
	}
	v.invalid = nil
	v.fillInputs(v.form.Fields())
}

func (v *resourceView[T]) submit() tea.Cmd {
	v.form.SetFields(v.readInputs())
	sub, err := v.form.Prepare()
	if err != nil {
		v.invalid = nil
		if ve, ok := asValidation(err); ok {
			v.invalid = ve
		}
		v.fillInputs(v.form.Fields())
		return toastErr(err, "Please fill all fields")
	}
	v.invalid = nil
	v.pending = true
	return func() tea.Msg {
		out, err := sub.Send(context.Background(), v.list)
		return submitDoneMsg{owner: v.id, outcome: out, err: err}
	}
}

func (v *resourceView[T]) finishSubmit(msg submitDoneMsg) tea.Cmd {
	v.pending = false
	out, _ := msg.outcome.(form.Outcome[T])
	v.form.Complete(out, msg.err)
	if v.form.IsOpen() {
		v.fillInputs(v.form.Fields())
	}
	v.clampCursor()

	switch out.Mode {
	case form.BulkDraft:
		created, failed := out.Report.Created(), len(out.Report.Failed())
		if failed > 0 {
			return toastErr(msg.err, fmt.Sprintf("%d imported, %d failed", created, failed))
		}
		return toast("%d %s imported", created, plural(v.cfg.noun, created))
	case form.Edit:
		if msg.err != nil {
			return toastErr(msg.err, "Failed to update "+v.cfg.noun)
		}
		return toast("%s updated", capitalize(v.cfg.noun))
	default:
		if msg.err != nil {
			return toastErr(msg.err, "Failed to add "+v.cfg.noun)
		}
		return toast("%s added", capitalize(v.cfg.noun))
	}
}

// fillInputs loads rec into the drawer inputs and focuses the first field
func (v *resourceView[T]) fillInputs(rec T) {
	for i, f := range v.cfg.fields {
		val := f.get(rec)
		if f.options != nil {
			v.stray[i] = ""
			v.choices[i] = slices.IndexFunc(f.options(), func(o option) bool { return o.value == val })
			if v.choices[i] < 0 {
				v.choices[i] = 0
				if val != "" {
					v.stray[i] = val
					v.choices[i] = len(f.options())
				}
			}
			continue
		}
		v.inputs[i].SetValue(val)
	}
	v.focusIdx = 0
	v.updateFocus()
}

// selectOptions lists field i's options. A loaded value that matches none of
// them is kept as a trailing option so validation still sees it.
func (v *resourceView[T]) selectOptions(i int) []option {
	opts := v.cfg.fields[i].options()
	if v.stray[i] == "" {
		return opts
	}
	return append(slices.Clip(opts), option{label: "(invalid: " + v.stray[i] + ")", value: v.stray[i]})
}

// readInputs builds a record from the drawer on top of the form's fields
func (v *resourceView[T]) readInputs() T {
	rec := v.form.Fields()
	for i, f := range v.cfg.fields {
		if f.options != nil {
			opts := v.selectOptions(i)
			val := ""
			if v.choices[i] < len(opts) {
				val = opts[v.choices[i]].value
			}
			f.set(&rec, val)
			continue
		}
		f.set(&rec, strings.TrimSpace(v.inputs[i].Value()))
	}
	return rec
}

func (v *resourceView[T]) updateFocus() {
	for i := range v.inputs {
		v.inputs[i].Blur()
	}
	if v.focusIdx < len(v.inputs) && v.cfg.fields[v.focusIdx].options == nil {
		v.inputs[v.focusIdx].Focus()
	}
}

func (v *resourceView[T]) clampCursor() {
	rows := len(v.view.Project(v.list.Items()).Rows)
	v.cursor = clamp(v.cursor, 0, max(rows-1, 0))
}

func (v *resourceView[T]) rowLabel(rec T) string {
	if len(v.cfg.columns) == 0 {
		return rec.Key().String()
	}
	return v.cfg.columns[0].value(rec)
}

// View renders the view
func (v *resourceView[T]) View() string {
	if v.showHelpPopup {
		return v.renderHelpPopup()
	}
	if v.confirmingDelete {
		return renderConfirm(v.styles, styles.ContentWidth(v.width), v.height-4,
			"Delete "+capitalize(v.cfg.noun)+"?",
			fmt.Sprintf("%q will be removed permanently.", v.rowLabel(v.deleteTarget)))
	}
	if v.importing {
		return v.renderImportPrompt()
	}
	if v.form.IsOpen() {
		return v.renderDrawer()
	}

	var b strings.Builder
	b.WriteString(v.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(v.renderTable())
	b.WriteString("\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *resourceView[T]) renderHeader() string {
	s := v.styles
	title := s.Title.Render(v.cfg.title)
	if !v.active {
		title = s.TitleMuted.Render(v.cfg.title)
	}

	searchStyle := s.Input
	if v.searching {
		searchStyle = s.InputFocused
	}
	parts := []string{searchStyle.Render(v.search.View())}

	if v.cfg.categories != nil {
		label := v.view.Query().Category
		if label == "" {
			label = "All"
		}
		btn := s.Button
		if v.filterOpen {
			btn = s.ButtonFocused
		}
		parts = append(parts, "  ", btn.Render(label+" ▼"))
	}

	header := lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinHorizontal(lipgloss.Center, parts...))
	if v.filterOpen {
		header += "\n" + v.renderFilterDropdown()
	}
	return header
}

func (v *resourceView[T]) renderFilterDropdown() string {
	s := v.styles
	items := []string{}
	for i, label := range append([]string{"All"}, v.cfg.categories()...) {
		style := s.ListItem
		if i == v.filterCursor {
			style = s.ListSelected
		}
		items = append(items, style.Render(label))
	}
	return s.FilterBar.Render(lipgloss.JoinVertical(lipgloss.Left, items...))
}

func (v *resourceView[T]) renderTable() string {
	s := v.styles
	if !v.loaded {
		return s.TitleMuted.Render("Loading...")
	}
	if v.loadErr != "" && v.list.Len() == 0 {
		return s.FieldError.Render(v.loadErr) + "\n" + s.TitleMuted.Render("Press 'r' to retry.")
	}

	p := v.view.Project(v.list.Items())
	if p.Total == 0 {
		if v.list.Len() > 0 {
			return s.TitleMuted.Render("No matches.")
		}
		return s.TitleMuted.Render(v.cfg.emptyHint)
	}

	var lines []string
	var header []string
	for _, c := range v.cfg.columns {
		header = append(header, s.TableHeader.Width(c.width).Render(truncate(c.title, c.width-2)))
	}
	lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, header...))

	for i, rec := range p.Rows {
		selected := i == v.cursor && v.active
		var cells []string
		for _, c := range v.cfg.columns {
			style := s.ListItem
			if selected {
				style = s.ListSelected
			}
			if c.color != nil {
				style = style.Foreground(c.color(rec))
			}
			cells = append(cells, style.Width(c.width).Render(truncate(c.value(rec), c.width-2)))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	pager := fmt.Sprintf("Page %d of %d • %d %s", p.Page, p.Pages, p.Total, plural(v.cfg.noun, p.Total))
	if p.HasPrev {
		pager = "← " + pager
	}
	if p.HasNext {
		pager += " →"
	}
	lines = append(lines, "", s.StatusBar.Render(pager))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (v *resourceView[T]) renderDrawer() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	var heading string
	switch v.form.Mode() {
	case form.Edit:
		heading = "Edit " + capitalize(v.cfg.noun)
	case form.BulkDraft:
		heading = fmt.Sprintf("Import %s", plural(v.cfg.noun, 2))
		drafts := v.form.Staging().Drafts()
		for i, d := range drafts {
			if d.Key == v.form.DraftKey() {
				heading += fmt.Sprintf(" • draft %d of %d", i+1, len(drafts))
				break
			}
		}
	default:
		heading = "Add " + capitalize(v.cfg.noun)
	}

	rows := []string{s.Title.Render(heading), ""}
	for i, f := range v.cfg.fields {
		label := s.Label.Render(f.label + ":")
		if v.invalid != nil && v.invalid.Has(jsonName(f.label)) {
			label += " " + s.FieldError.Render("required or invalid")
		}
		rows = append(rows, label)

		style := s.Input
		if i == v.focusIdx {
			style = s.InputFocused
		}
		if f.options != nil {
			opts := v.selectOptions(i)
			text := "(none)"
			if v.choices[i] < len(opts) {
				text = opts[v.choices[i]].label
			}
			rows = append(rows, style.Render("◀ "+text+" ▶"))
			continue
		}
		rows = append(rows, style.Render(v.inputs[i].View()))
	}

	btn := s.Button
	if v.focusIdx == len(v.cfg.fields) {
		btn = s.ButtonFocused
	}
	label := " Save "
	if v.form.Mode() == form.BulkDraft {
		label = " Submit All "
	}
	if v.pending {
		btn = s.ButtonDisabled
		label = " Saving... "
	}
	rows = append(rows, "", btn.Render(label), "")

	hint := "Tab: next • ←/→: choose • Ctrl+S: save • Esc: cancel"
	if v.form.Mode() == form.BulkDraft {
		hint = "Ctrl+N/P: next/prev draft • Ctrl+D: drop draft • Ctrl+S: submit all • Esc: discard"
	}
	rows = append(rows, s.TitleMuted.Render(hint))

	drawer := s.Drawer.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	return lipgloss.Place(contentWidth, max(v.height-4, lipgloss.Height(drawer)),
		lipgloss.Center, lipgloss.Center,
		drawer,
	)
}

func (v *resourceView[T]) renderImportPrompt() string {
	s := v.styles
	content := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("Import "+plural(v.cfg.noun, 2)),
		"",
		s.Label.Render("File (.csv, .xlsx, .xls):"),
		s.InputFocused.Render(v.importPath.View()),
		"",
		s.TitleMuted.Render("Enter: load • Esc: cancel"),
	)
	return lipgloss.Place(styles.ContentWidth(v.width), max(v.height-4, 10),
		lipgloss.Center, lipgloss.Center,
		s.Drawer.Render(content),
	)
}

func (v *resourceView[T]) renderHelp() string {
	contentWidth := styles.ContentWidth(v.width)
	if contentWidth > 0 && contentWidth < 60 {
		return helpLine(v.styles, "?", "help")
	}
	pairs := []string{"n", "new", "e", "edit", "d", "del", "/", "search"}
	if v.cfg.categories != nil {
		pairs = append(pairs, "f", "filter")
	}
	if v.cfg.parse != nil {
		pairs = append(pairs, "i", "import")
	}
	for _, a := range v.cfg.actions {
		pairs = append(pairs, a.binding.Help().Key, a.binding.Help().Desc)
	}
	pairs = append(pairs, "←/→", "page", "?", "more")
	return helpLine(v.styles, pairs...)
}

func (v *resourceView[T]) renderHelpPopup() string {
	s := v.styles
	items := []string{
		s.HelpKey.Render("↑/↓") + "    move",
		s.HelpKey.Render("←/→") + "    previous / next page",
		s.HelpKey.Render("n") + "      new " + v.cfg.noun,
		s.HelpKey.Render("e") + "      edit " + v.cfg.noun,
		s.HelpKey.Render("d") + "      delete " + v.cfg.noun,
		s.HelpKey.Render("/") + "      search",
		s.HelpKey.Render("r") + "      refresh",
	}
	if v.cfg.categories != nil {
		items = append(items, s.HelpKey.Render("f")+"      filter")
	}
	if v.cfg.parse != nil {
		items = append(items, s.HelpKey.Render("i")+"      import spreadsheet")
	}
	for _, a := range v.cfg.actions {
		items = append(items, s.HelpKey.Render(a.binding.Help().Key)+"      "+a.binding.Help().Desc)
	}
	items = append(items,
		s.HelpKey.Render("1-6")+"    switch screen",
		s.HelpKey.Render("ctrl+o")+" sign out",
		s.HelpKey.Render("q")+"      quit",
		"",
		s.TitleMuted.Render("Press any key to close"),
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		append([]string{s.Title.Render("Keyboard Shortcuts"), ""}, items...)...,
	)
	return lipgloss.Place(styles.ContentWidth(v.width), max(v.height-4, 10),
		lipgloss.Center, lipgloss.Center,
		s.FilterBar.Render(content),
	)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func plural(noun string, n int) string {
	if n == 1 {
		return noun
	}
	if strings.HasSuffix(noun, "y") {
		return strings.TrimSuffix(noun, "y") + "ies"
	}
	return noun + "s"
}

// jsonName maps a drawer label to the field name validation reports
func jsonName(label string) string {
	switch label {
	case "Employee":
		return "employeeId"
	case "Due date":
		return "dueDate"
	}
	return strings.ToLower(label)
}

package views

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/tms/internal/listview"
	"github.com/tgienger/tms/internal/models"
	"github.com/tgienger/tms/internal/ui/keys"
	"github.com/tgienger/tms/internal/ui/styles"
)

// inventoryPane is which side has focus
type inventoryPane int

const (
	paneGroups inventoryPane = iota
	paneItems
)

// groupSelectedMsg opens the items of a group
type groupSelectedMsg struct {
	group models.InventoryGroup
}

// InventoryView shows groups on the left and the items of the selected group
// on the right. Items are fetched the first time a group is opened.
type InventoryView struct {
	deps   Deps
	lists  *Lists
	keys   keys.KeyMap
	styles *styles.Styles

	groups   *resourceView[models.InventoryGroup]
	items    map[models.ID]*resourceView[models.InventoryItem]
	selected models.InventoryGroup
	focus    inventoryPane

	width  int
	height int
}

// NewInventoryView creates the inventory screen
func NewInventoryView(d Deps, lists *Lists) *InventoryView {
	cfg := resourceConfig[models.InventoryGroup]{
		title: "Groups",
		noun:  "group",
		columns: []column[models.InventoryGroup]{
			{title: "Name", width: 28, value: func(g models.InventoryGroup) string { return g.Name }},
		},
		fields: []field[models.InventoryGroup]{{
			label: "Name", placeholder: "Group name",
			get: func(g models.InventoryGroup) string { return g.Name },
			set: func(g *models.InventoryGroup, s string) { g.Name = s },
		}},
		matcher: listview.Groups,
		blank:   func() models.InventoryGroup { return models.InventoryGroup{} },
		onEnter: func(g models.InventoryGroup) tea.Cmd {
			return func() tea.Msg { return groupSelectedMsg{group: g} }
		},
		emptyHint: "No groups. Press 'n' to create one.",
	}
	return &InventoryView{
		deps:   d,
		lists:  lists,
		keys:   keys.DefaultKeyMap(),
		styles: styles.NewStyles(),
		groups: newResourceView(cfg, lists.Groups, d.PageSize),
		items:  map[models.ID]*resourceView[models.InventoryItem]{},
	}
}

func (v *InventoryView) newItemsView(g models.InventoryGroup) *resourceView[models.InventoryItem] {
	groupID := g.ID
	cfg := resourceConfig[models.InventoryItem]{
		title: "Items in " + g.Name,
		noun:  "item",
		columns: []column[models.InventoryItem]{
			{title: "Item", width: 26, value: func(i models.InventoryItem) string { return i.Name }},
			{title: "Qty", width: 8, value: func(i models.InventoryItem) string { return strconv.Itoa(i.Quantity) }},
		},
		fields: []field[models.InventoryItem]{
			{
				label: "Name", placeholder: "Item name",
				get: func(i models.InventoryItem) string { return i.Name },
				set: func(i *models.InventoryItem, s string) { i.Name = s },
			},
			{
				label: "Quantity", placeholder: "0",
				get: func(i models.InventoryItem) string { return strconv.Itoa(i.Quantity) },
				set: func(i *models.InventoryItem, s string) {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil {
						n = -1
					}
					i.Quantity = n
				},
			},
		},
		matcher:   listview.Items,
		blank:     func() models.InventoryItem { return models.InventoryItem{GroupID: groupID} },
		emptyHint: "No items in this group. Press 'n' to add one.",
	}
	rv := newResourceView(cfg, v.lists.Items(groupID), v.deps.PageSize)
	rv.Update(v.paneSize())
	return rv
}

func (v *InventoryView) Init() tea.Cmd {
	return v.groups.Init()
}

// Capturing reports whether the focused pane consumes raw keys
func (v *InventoryView) Capturing() bool {
	if v.focus == paneItems {
		if iv := v.current(); iv != nil {
			return iv.Capturing()
		}
	}
	return v.groups.Capturing()
}

func (v *InventoryView) current() *resourceView[models.InventoryItem] {
	if v.selected.ID.IsZero() {
		return nil
	}
	return v.items[v.selected.ID]
}

func (v *InventoryView) paneSize() tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: styles.ContentWidth(v.width) / 2, Height: v.height}
}

func (v *InventoryView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		pane := v.paneSize()
		v.groups.Update(pane)
		for _, iv := range v.items {
			iv.Update(pane)
		}
		return v, nil

	case groupSelectedMsg:
		v.selected = msg.group
		v.setFocus(paneItems)
		iv, ok := v.items[msg.group.ID]
		if !ok {
			iv = v.newItemsView(msg.group)
			v.items[msg.group.ID] = iv
			return v, iv.Init()
		}
		return v, nil

	case Refresh:
		cmds := []tea.Cmd{}
		_, cmd := v.groups.Update(msg)
		cmds = append(cmds, cmd)
		if iv := v.current(); iv != nil {
			_, cmd = iv.Update(msg)
			cmds = append(cmds, cmd)
		}
		return v, tea.Batch(cmds...)

	case tea.KeyMsg:
		if !v.Capturing() {
			switch {
			case key.Matches(msg, v.keys.Tab):
				if v.focus == paneGroups && v.current() != nil {
					v.setFocus(paneItems)
				} else {
					v.setFocus(paneGroups)
				}
				return v, nil
			case key.Matches(msg, v.keys.Back) && v.focus == paneItems:
				v.setFocus(paneGroups)
				return v, nil
			}
		}
		if v.focus == paneItems {
			if iv := v.current(); iv != nil {
				_, cmd := iv.Update(msg)
				return v, cmd
			}
		}
		_, cmd := v.groups.Update(msg)
		return v, cmd
	}

	// Async results carry their owner, so every pane may see them.
	cmds := []tea.Cmd{}
	_, cmd := v.groups.Update(msg)
	cmds = append(cmds, cmd)
	for _, iv := range v.items {
		_, cmd := iv.Update(msg)
		cmds = append(cmds, cmd)
	}
	if _, ok := msg.(deleteDoneMsg); ok {
		v.pruneDeletedGroups()
	}
	return v, tea.Batch(cmds...)
}

func (v *InventoryView) setFocus(p inventoryPane) {
	v.focus = p
	v.groups.active = p == paneGroups
	if iv := v.current(); iv != nil {
		iv.active = p == paneItems
	}
}

// pruneDeletedGroups drops item panes whose group no longer exists
func (v *InventoryView) pruneDeletedGroups() {
	for id := range v.items {
		if _, ok := v.lists.Groups.Find(id); !ok {
			delete(v.items, id)
			v.lists.DropItems(id)
			if v.selected.ID.Equal(id) {
				v.selected = models.InventoryGroup{}
				v.setFocus(paneGroups)
			}
		}
	}
}

func (v *InventoryView) View() string {
	// Dialogs take the whole screen.
	if v.focus == paneItems {
		if iv := v.current(); iv != nil && iv.Capturing() && !iv.searching {
			return iv.View()
		}
	}
	if v.groups.Capturing() && !v.groups.searching {
		return v.groups.View()
	}

	half := styles.ContentWidth(v.width) / 2
	left := lipgloss.NewStyle().Width(half).Render(v.groups.View())

	var right string
	if iv := v.current(); iv != nil {
		right = iv.View()
	} else {
		right = v.styles.TitleMuted.Render("Select a group and press ↵ to see its items.")
	}
	right = lipgloss.NewStyle().Width(half).PaddingLeft(1).Render(right)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

package views

import (
	"github.com/tgienger/tms/internal/api"
	"github.com/tgienger/tms/internal/listsync"
	"github.com/tgienger/tms/internal/models"
)

// Lists are the authoritative collections shared by every screen. Only the
// UI goroutine touches the items cache.
type Lists struct {
	client    *api.Client
	Employees *listsync.List[models.Employee]
	Tasks     *listsync.List[models.Task]
	Groups    *listsync.List[models.InventoryGroup]
	Todos     *listsync.List[models.WorkTodo]
	items     map[models.ID]*listsync.List[models.InventoryItem]
}

// NewLists creates empty collections backed by client
func NewLists(client *api.Client) *Lists {
	return &Lists{
		client:    client,
		Employees: listsync.New[models.Employee](client.Employees()),
		Tasks:     listsync.New[models.Task](client.Tasks()),
		Groups:    listsync.New[models.InventoryGroup](client.Groups()),
		Todos:     listsync.New[models.WorkTodo](client.WorkTodos()),
		items:     map[models.ID]*listsync.List[models.InventoryItem]{},
	}
}

// Items returns the item collection of a group, created on first use
func (l *Lists) Items(groupID models.ID) *listsync.List[models.InventoryItem] {
	if list, ok := l.items[groupID]; ok {
		return list
	}
	list := listsync.New[models.InventoryItem](l.client.Items(groupID))
	l.items[groupID] = list
	return list
}

// DropItems forgets the cached items of a deleted group
func (l *Lists) DropItems(groupID models.ID) {
	delete(l.items, groupID)
}

// Reset empties every collection, e.g. after sign-out
func (l *Lists) Reset() {
	l.Employees.Replace(nil)
	l.Tasks.Replace(nil)
	l.Groups.Replace(nil)
	l.Todos.Replace(nil)
	l.items = map[models.ID]*listsync.List[models.InventoryItem]{}
}

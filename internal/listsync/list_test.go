package listsync_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgienger/tms/internal/api"
	"github.com/tgienger/tms/internal/api/apitest"
	"github.com/tgienger/tms/internal/config"
	"github.com/tgienger/tms/internal/listsync"
	"github.com/tgienger/tms/internal/models"
)

var errDown = errors.New("backend down")

type fakeBackend struct {
	items   []models.WorkTodo
	fail    bool
	creates int
}

func (f *fakeBackend) List(ctx context.Context) ([]models.WorkTodo, error) {
	if f.fail {
		return nil, errDown
	}
	return append([]models.WorkTodo(nil), f.items...), nil
}

func (f *fakeBackend) Create(ctx context.Context, rec models.WorkTodo) (models.WorkTodo, error) {
	f.creates++
	if f.fail {
		return models.WorkTodo{}, errDown
	}
	rec.ID = models.IntID(int64(len(f.items) + 1))
	f.items = append(f.items, rec)
	return rec, nil
}

func (f *fakeBackend) Update(ctx context.Context, id models.ID, rec models.WorkTodo) error {
	if f.fail {
		return errDown
	}
	return nil
}

func (f *fakeBackend) Delete(ctx context.Context, id models.ID) error {
	if f.fail {
		return errDown
	}
	return nil
}

func seeded() (*fakeBackend, *listsync.List[models.WorkTodo]) {
	fb := &fakeBackend{items: []models.WorkTodo{
		{ID: "1", Title: "a", Priority: models.PriorityHigh, Deadline: "2025-01-01"},
		{ID: "2", Title: "b", Priority: models.PriorityLow, Deadline: "2025-01-02"},
		{ID: "3", Title: "c", Priority: models.PriorityMedium, Deadline: "2025-01-03"},
	}}
	return fb, listsync.New[models.WorkTodo](fb)
}

func TestLoad(t *testing.T) {
	fb, list := seeded()
	assert.False(t, list.Loaded())
	require.NoError(t, list.Load(context.Background()))
	assert.True(t, list.Loaded())
	assert.Equal(t, fb.items, list.Items())
}

func TestCreateAppendsServerRecord(t *testing.T) {
	_, list := seeded()
	ctx := context.Background()
	require.NoError(t, list.Load(ctx))

	created, err := list.Create(ctx, models.WorkTodo{Title: "d", Priority: models.PriorityLow, Deadline: "2025-02-01"})
	require.NoError(t, err)
	assert.Equal(t, models.ID("4"), created.ID)
	require.Equal(t, 4, list.Len())
	assert.Equal(t, created, list.Items()[3])
}

func TestUpdateReplacesOnlyMatchingRecord(t *testing.T) {
	_, list := seeded()
	ctx := context.Background()
	require.NoError(t, list.Load(ctx))
	before := list.Items()

	stored, err := list.Update(ctx, "2", models.WorkTodo{Title: "b2", Priority: models.PriorityImmediate, Deadline: "2025-03-01"})
	require.NoError(t, err)
	assert.Equal(t, models.ID("2"), stored.ID)

	after := list.Items()
	require.Len(t, after, 3)
	assert.Equal(t, before[0], after[0])
	assert.Equal(t, stored, after[1])
	assert.Equal(t, before[2], after[2])
}

func TestDeleteFiltersRecord(t *testing.T) {
	_, list := seeded()
	ctx := context.Background()
	require.NoError(t, list.Load(ctx))

	require.NoError(t, list.Delete(ctx, "1"))
	items := list.Items()
	require.Len(t, items, 2)
	for _, it := range items {
		assert.NotEqual(t, models.ID("1"), it.ID)
	}
}

func TestFailureLeavesCollectionUntouched(t *testing.T) {
	fb, list := seeded()
	ctx := context.Background()
	require.NoError(t, list.Load(ctx))
	before := list.Items()
	fb.fail = true

	_, err := list.Create(ctx, models.WorkTodo{Title: "x"})
	assert.ErrorIs(t, err, errDown)
	_, err = list.Update(ctx, "1", models.WorkTodo{Title: "x"})
	assert.ErrorIs(t, err, errDown)
	assert.ErrorIs(t, list.Delete(ctx, "1"), errDown)
	assert.ErrorIs(t, list.Load(ctx), errDown)

	assert.Equal(t, before, list.Items())
}

func TestMutateAndFind(t *testing.T) {
	_, list := seeded()
	require.NoError(t, list.Load(context.Background()))

	assert.True(t, list.Mutate("3", func(w *models.WorkTodo) { w.Title = "done" }))
	got, ok := list.Find("3")
	require.True(t, ok)
	assert.Equal(t, "done", got.Title)

	assert.False(t, list.Mutate("99", func(w *models.WorkTodo) {}))
	_, ok = list.Find("99")
	assert.False(t, ok)
}

func TestItemsIsACopy(t *testing.T) {
	_, list := seeded()
	require.NoError(t, list.Load(context.Background()))
	items := list.Items()
	items[0].Title = "changed"
	assert.Equal(t, "a", list.Items()[0].Title)
}

func TestCreateWithoutEchoedIDReloads(t *testing.T) {
	backend := apitest.NewBackend(t)
	client := api.New(backend.URL)
	ctx := context.Background()

	group, err := client.Groups().Create(ctx, models.InventoryGroup{Name: "Cables"})
	require.NoError(t, err)

	items := listsync.New[models.InventoryItem](client.Items(group.ID))
	require.NoError(t, items.Load(ctx))
	assert.Equal(t, 0, items.Len())

	_, err = items.Create(ctx, models.InventoryItem{Name: "HDMI", Quantity: 3, GroupID: group.ID})
	require.NoError(t, err)
	require.Equal(t, 1, items.Len())
	assert.False(t, items.Items()[0].ID.IsZero())
	assert.Equal(t, 2, backend.Calls("GET /inventory/items/{groupId}"))
}

func TestRefreshPolicy(t *testing.T) {
	p := listsync.PolicyFrom(&config.Config{RefreshMode: config.RefreshManual})
	_, ok := p.Periodic()
	assert.False(t, ok)

	p = listsync.PolicyFrom(&config.Config{RefreshMode: config.RefreshInterval, RefreshInterval: 42})
	d, ok := p.Periodic()
	assert.True(t, ok)
	assert.EqualValues(t, 42, d)
}

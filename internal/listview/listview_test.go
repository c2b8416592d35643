package listview_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgienger/tms/internal/listview"
	"github.com/tgienger/tms/internal/models"
)

var employeeMatcher = listview.Employees

func employees(n int) []models.Employee {
	out := make([]models.Employee, n)
	for i := range out {
		out[i] = models.Employee{
			ID:         models.IntID(int64(i + 1)),
			Name:       fmt.Sprintf("Employee %02d", i+1),
			Department: models.Departments[i%len(models.Departments)],
		}
	}
	return out
}

func TestFilterCaseInsensitiveAndOrdered(t *testing.T) {
	items := []models.Employee{
		{Name: "Alice", Department: models.DepartmentQA},
		{Name: "bob", Department: models.DepartmentBackend},
		{Name: "ALIGN", Department: models.DepartmentBackend},
	}

	got := listview.Filter(items, listview.Query{Search: "al"}, employeeMatcher)
	require.Len(t, got, 2)
	assert.Equal(t, "Alice", got[0].Name)
	assert.Equal(t, "ALIGN", got[1].Name)

	got = listview.Filter(items, listview.Query{Search: "AL", Category: "Backend"}, employeeMatcher)
	require.Len(t, got, 1)
	assert.Equal(t, "ALIGN", got[0].Name)
}

func TestFilterKeepsWhitespace(t *testing.T) {
	items := []models.Employee{{Name: "Al Gore"}, {Name: "Alice"}}

	got := listview.Filter(items, listview.Query{Search: "al "}, employeeMatcher)
	require.Len(t, got, 1)
	assert.Equal(t, "Al Gore", got[0].Name)

	assert.Empty(t, listview.Filter(items, listview.Query{Search: " al"}, employeeMatcher))
	assert.Len(t, listview.Filter(items, listview.Query{Search: ""}, employeeMatcher), 2)
}

func TestFilterIdempotent(t *testing.T) {
	items := employees(23)
	q := listview.Query{Search: "1", Category: "Backend"}
	once := listview.Filter(items, q, employeeMatcher)
	twice := listview.Filter(once, q, employeeMatcher)
	assert.Equal(t, once, twice)
}

func TestEmptyQueryKeepsAll(t *testing.T) {
	items := employees(5)
	assert.Equal(t, items, listview.Filter(items, listview.Query{}, employeeMatcher))
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, 0, listview.PageCount(0, 10))
	assert.Equal(t, 1, listview.PageCount(1, 10))
	assert.Equal(t, 1, listview.PageCount(10, 10))
	assert.Equal(t, 2, listview.PageCount(11, 10))
	assert.Equal(t, 3, listview.PageCount(23, 10))
}

func TestLastPageSize(t *testing.T) {
	for _, tc := range []struct{ n, size int }{{23, 10}, {20, 10}, {7, 3}, {1, 5}} {
		pages := listview.PageCount(tc.n, tc.size)
		last := listview.Page(employees(tc.n), pages, tc.size)
		want := tc.n % tc.size
		if want == 0 {
			want = tc.size
		}
		assert.Len(t, last, want, "n=%d size=%d", tc.n, tc.size)
	}
}

func TestPageOutOfRange(t *testing.T) {
	items := employees(5)
	assert.Empty(t, listview.Page(items, 0, 10))
	assert.Empty(t, listview.Page(items, 2, 10))
}

func TestViewNavigationStopsAtBounds(t *testing.T) {
	v := listview.NewView(employeeMatcher, 10)
	items := employees(23)

	p := v.Project(items)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 3, p.Pages)
	assert.False(t, p.HasPrev)
	assert.True(t, p.HasNext)

	v.Prev()
	assert.Equal(t, 1, v.CurrentPage())

	v.Next()
	v.Next()
	v.Next()
	p = v.Project(items)
	assert.Equal(t, 3, p.Page)
	assert.Len(t, p.Rows, 3)
	assert.False(t, p.HasNext)
	assert.True(t, p.HasPrev)
}

func TestQueryChangeResetsPage(t *testing.T) {
	v := listview.NewView(employeeMatcher, 10)
	items := employees(23)
	v.Project(items)
	v.Next()
	require.Equal(t, 2, v.CurrentPage())

	v.SetSearch("Employee")
	assert.Equal(t, 1, v.CurrentPage())

	v.Next()
	v.SetCategory("QA")
	assert.Equal(t, 1, v.CurrentPage())
	assert.Equal(t, listview.Query{Search: "Employee", Category: "QA"}, v.Query())
}

func TestPageClampedWhenCollectionShrinks(t *testing.T) {
	v := listview.NewView(employeeMatcher, 10)
	v.Project(employees(23))
	v.Next()
	v.Next()
	require.Equal(t, 3, v.CurrentPage())

	p := v.Project(employees(12))
	assert.Equal(t, 2, p.Page)
	assert.Len(t, p.Rows, 2)

	p = v.Project(nil)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 0, p.Pages)
	assert.Empty(t, p.Rows)
	assert.False(t, p.HasNext)
}

func TestTaskMatcher(t *testing.T) {
	names := map[models.ID]string{"1": "Ann", "2": "Bob"}
	m := listview.Tasks(func(t models.Task) string { return names[t.EmployeeID] })
	tasks := []models.Task{
		{ID: "10", Title: "Ship", EmployeeID: "1"},
		{ID: "11", Title: "Test", EmployeeID: "2", EmailSent: true},
	}

	got := listview.Filter(tasks, listview.Query{Search: "bob"}, m)
	require.Len(t, got, 1)
	assert.Equal(t, models.ID("11"), got[0].ID)

	got = listview.Filter(tasks, listview.Query{Category: listview.TaskPending}, m)
	require.Len(t, got, 1)
	assert.Equal(t, "Ship", got[0].Title)
}

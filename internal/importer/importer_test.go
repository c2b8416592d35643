package importer_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/tgienger/tms/internal/api"
	"github.com/tgienger/tms/internal/api/apitest"
	"github.com/tgienger/tms/internal/importer"
	"github.com/tgienger/tms/internal/listsync"
	"github.com/tgienger/tms/internal/models"
)

func workbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestReadXLSXNormalizesHeaders(t *testing.T) {
	buf := workbook(t, [][]any{
		{"Name", "Department", "E-mail", "Phone"},
		{"Ann", "QA", "ann@example.com", "555"},
	})

	rows, err := importer.ReadRows(buf, "people.xlsx")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Ann", rows[0].Get("name"))
	assert.Equal(t, "ann@example.com", rows[0].Get("email"))
}

func TestReadCSV(t *testing.T) {
	data := "name,department,email,phone\nAnn,QA,ann@example.com,555\n\nBob,Backend,bob@example.com,556\n"
	rows, err := importer.ReadRows(strings.NewReader(data), "people.csv")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Bob", rows[1].Get("name"))
}

func TestReadRejectsEmptyAndUnknown(t *testing.T) {
	_, err := importer.ReadRows(strings.NewReader(""), "people.csv")
	assert.ErrorIs(t, err, importer.ErrEmptyFile)

	_, err = importer.ReadRows(strings.NewReader("name,email\n"), "people.csv")
	assert.ErrorIs(t, err, importer.ErrEmptyFile)

	buf := workbook(t, [][]any{{"name", "email"}})
	_, err = importer.ReadRows(buf, "people.xlsx")
	assert.ErrorIs(t, err, importer.ErrEmptyFile)

	_, err = importer.ReadRows(strings.NewReader("x"), "people.pdf")
	require.Error(t, err)
}

func TestEmployeeRowsSkipsIncomplete(t *testing.T) {
	buf := workbook(t, [][]any{
		{"name", "department", "email", "phone"},
		{"Ann", "QA", "ann@example.com", "555"},
		{"Bob", "Backend", "", "556"},
		{"Cid", "Frontend", "cid@example.com", "557"},
	})
	rows, err := importer.ReadRows(buf, "people.xlsx")
	require.NoError(t, err)

	parsed, err := importer.EmployeeRows(rows)
	require.NoError(t, err)
	assert.Len(t, parsed.Records, 2)
	assert.Equal(t, 1, parsed.Skipped)

	staging := importer.NewStaging(parsed.Records)
	assert.Equal(t, len(rows)-parsed.Skipped, staging.Len())
}

func TestEmployeeRowsNoneValid(t *testing.T) {
	rows := []importer.Row{{"name": "Ann"}}
	_, err := importer.EmployeeRows(rows)
	assert.ErrorIs(t, err, importer.ErrNoValidRecords)
}

func TestTaskRowsResolveEmployeeAndDates(t *testing.T) {
	employees := []models.Employee{{ID: "7", Email: "Ann@Example.com"}}
	rows := []importer.Row{
		{"title": "Ship", "employeeemail": "ann@example.com", "duedate": "2025-01-31"},
		{"title": "Serial", "employeeemail": "ann@example.com", "duedate": "45688"},
		{"title": "US", "email": "ann@example.com", "duedate": "2/3/2025"},
		{"title": "Unknown", "employeeemail": "zed@example.com", "duedate": "2025-01-31"},
		{"title": "Bad date", "employeeemail": "ann@example.com", "duedate": "soon"},
	}

	parsed, err := importer.TaskRows(rows, employees)
	require.NoError(t, err)
	require.Len(t, parsed.Records, 3)
	assert.Equal(t, 2, parsed.Skipped)
	assert.Equal(t, models.ID("7"), parsed.Records[0].EmployeeID)
	assert.Equal(t, "2025-01-31", parsed.Records[1].DueDate)
	assert.Equal(t, "2025-02-03", parsed.Records[2].DueDate)
}

func TestStagingEditAndRemove(t *testing.T) {
	s := importer.NewStaging([]models.WorkTodo{{Title: "a"}, {Title: "b"}})
	drafts := s.Drafts()
	require.Len(t, drafts, 2)
	assert.NotEqual(t, drafts[0].Key, drafts[1].Key)

	assert.True(t, s.Update(drafts[1].Key, models.WorkTodo{Title: "b2"}))
	got, ok := s.Get(drafts[1].Key)
	require.True(t, ok)
	assert.Equal(t, "b2", got.Record.Title)

	assert.True(t, s.Remove(drafts[0].Key))
	assert.False(t, s.Remove(drafts[0].Key))
	assert.Equal(t, 1, s.Len())
}

func TestCommitKeepsFailedDrafts(t *testing.T) {
	s := importer.NewStaging([]string{"ok-1", "bad", "ok-2"})
	var sent []string
	report := importer.Commit(context.Background(), s, func(ctx context.Context, v string) error {
		sent = append(sent, v)
		if v == "bad" {
			return errors.New("rejected")
		}
		return nil
	})

	assert.Equal(t, []string{"ok-1", "bad", "ok-2"}, sent)
	assert.Equal(t, 2, report.Created())
	require.Len(t, report.Failed(), 1)
	assert.Equal(t, 1, report.Failed()[0].Index)
	require.Error(t, report.Err())

	remaining := s.Drafts()
	require.Len(t, remaining, 1)
	assert.Equal(t, "bad", remaining[0].Record)
}

func TestCommitCancelled(t *testing.T) {
	s := importer.NewStaging([]string{"a", "b"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls := 0
	report := importer.Commit(ctx, s, func(context.Context, string) error { calls++; return nil })
	assert.Zero(t, calls)
	assert.Equal(t, 0, report.Created())
	assert.Equal(t, 2, s.Len())
}

func TestImportThreeRowsAgainstBackend(t *testing.T) {
	backend := apitest.NewBackend(t)
	client := api.New(backend.URL)
	ctx := context.Background()

	employees := listsync.New[models.Employee](client.Employees())
	require.NoError(t, employees.Load(ctx))

	buf := workbook(t, [][]any{
		{"name", "department", "email", "phone"},
		{"Ann", "QA", "ann@example.com", "555"},
		{"Bob", "Backend", "", "556"},
		{"Cid", "Frontend", "cid@example.com", "557"},
	})
	rows, err := importer.ReadRows(buf, "people.xlsx")
	require.NoError(t, err)
	parsed, err := importer.EmployeeRows(rows)
	require.NoError(t, err)
	staging := importer.NewStaging(parsed.Records)
	require.Equal(t, 2, staging.Len())

	report := importer.Commit(ctx, staging, func(ctx context.Context, e models.Employee) error {
		_, err := employees.Create(ctx, e)
		return err
	})
	require.NoError(t, report.Err())
	assert.Equal(t, 2, backend.Calls("POST /employees"))
	assert.Equal(t, 0, staging.Len())

	items := employees.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Ann", items[0].Name)
	assert.Equal(t, "Cid", items[1].Name)
}

func TestEmptyFileMakesNoRequests(t *testing.T) {
	backend := apitest.NewBackend(t)
	_, err := importer.ReadRows(strings.NewReader("name,department,email,phone\n"), "people.csv")
	require.ErrorIs(t, err, importer.ErrEmptyFile)
	assert.Zero(t, backend.Calls("POST /employees"))
}

package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tgienger/tms/internal/form"
	"github.com/tgienger/tms/internal/importer"
	"github.com/tgienger/tms/internal/listsync"
	"github.com/tgienger/tms/internal/listview"
	"github.com/tgienger/tms/internal/models"
)

// listFlags are the search and paging flags of every list command
type listFlags struct {
	search   string
	category string
	page     int
	pageSize int
}

func (f *listFlags) bind(cmd *cobra.Command, categoryUsage string) {
	cmd.Flags().StringVar(&f.search, "search", "", "Case-insensitive substring filter")
	if categoryUsage != "" {
		cmd.Flags().StringVar(&f.category, "category", "", categoryUsage)
	}
	cmd.Flags().IntVar(&f.page, "page", 1, "1-based page number")
	cmd.Flags().IntVar(&f.pageSize, "page-size", 0, "Rows per page (default TMS_PAGE_SIZE)")
}

type pageMeta struct {
	Page  int `json:"page"`
	Pages int `json:"pages"`
	Total int `json:"total"`
}

// fieldFlag is one record field settable from the command line
type fieldFlag[T any] struct {
	name  string
	usage string
	set   func(ctx context.Context, rec *T, value string) error
}

// bindFields registers a string flag per field. The returned function
// applies the flags the user actually passed.
func bindFields[T any](cmd *cobra.Command, fields []fieldFlag[T]) func(ctx context.Context, rec *T) error {
	values := make([]string, len(fields))
	for i, f := range fields {
		cmd.Flags().StringVar(&values[i], f.name, "", f.usage)
	}
	return func(ctx context.Context, rec *T) error {
		for i, f := range fields {
			if !cmd.Flags().Changed(f.name) {
				continue
			}
			if err := f.set(ctx, rec, values[i]); err != nil {
				return fmt.Errorf("--%s: %w", f.name, err)
			}
		}
		return nil
	}
}

func listRecords[T models.Keyed[T]](cmd *cobra.Command, app *App, backend listsync.Backend[T], m listview.Matcher[T], f listFlags) error {
	l := listsync.New[T](backend)
	if err := l.Load(cmd.Context()); err != nil {
		return err
	}
	size := f.pageSize
	if size <= 0 {
		size = app.cfg.PageSize
	}
	if f.page < 1 {
		return fmt.Errorf("--page must be at least 1, got %d", f.page)
	}

	// No clamping here: a page past the end is empty, not the last page.
	matched := listview.Filter(l.Items(), listview.Query{Search: f.search, Category: f.category}, m)
	rows := listview.Page(matched, f.page, size)
	if rows == nil {
		rows = []T{}
	}
	return writeOut(cmd, app, rows, pageMeta{
		Page:  f.page,
		Pages: listview.PageCount(len(matched), size),
		Total: len(matched),
	})
}

// createRecord sends a new record through the form, so validation failures
// never reach the backend.
func createRecord[T models.Keyed[T]](cmd *cobra.Command, app *App, backend listsync.Backend[T], blank func() T, apply func(context.Context, *T) error) error {
	ctx := cmd.Context()
	f := form.New(blank)
	f.OpenCreate()
	rec := f.Fields()
	if err := apply(ctx, &rec); err != nil {
		return err
	}
	f.SetFields(rec)

	out, err := f.Submit(ctx, listsync.New[T](backend))
	if err != nil {
		return err
	}
	return writeOut(cmd, app, out.Record, nil)
}

// updateRecord loads the collection, applies the changed flags on top of the
// stored record and submits it as an edit.
func updateRecord[T models.Keyed[T]](cmd *cobra.Command, app *App, backend listsync.Backend[T], noun string, id models.ID, apply func(context.Context, *T) error) error {
	ctx := cmd.Context()
	l := listsync.New[T](backend)
	if err := l.Load(ctx); err != nil {
		return err
	}
	current, ok := l.Find(id)
	if !ok {
		return fmt.Errorf("%s %s not found", noun, id)
	}

	f := form.New[T](nil)
	f.OpenEdit(current, id)
	rec := f.Fields()
	if err := apply(ctx, &rec); err != nil {
		return err
	}
	f.SetFields(rec)

	out, err := f.Submit(ctx, l)
	if err != nil {
		return err
	}
	return writeOut(cmd, app, out.Record, nil)
}

func deleteRecord[T models.Keyed[T]](cmd *cobra.Command, app *App, backend listsync.Backend[T], id models.ID) error {
	if err := listsync.New[T](backend).Delete(cmd.Context(), id); err != nil {
		return err
	}
	return writeOut(cmd, app, map[string]any{"id": id, "deleted": true}, nil)
}

type importRow struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

type importMeta struct {
	Skipped   int         `json:"skipped"`
	Committed bool        `json:"committed"`
	Created   int         `json:"created"`
	Failed    []importRow `json:"failed,omitempty"`
}

// importFile parses path into drafts. Without commit the drafts are printed
// and nothing is sent; with commit every draft is created and the per-row
// outcome is reported.
func importFile[T models.Keyed[T]](cmd *cobra.Command, app *App, backend listsync.Backend[T], path string, commit bool, blank func() T, parse func([]importer.Row) (importer.Parsed[T], error)) error {
	fh, err := os.Open(path)
	if err != nil {
		return err
	}
	defer fh.Close()

	rows, err := importer.ReadRows(fh, path)
	if err != nil {
		return err
	}
	parsed, err := parse(rows)
	if err != nil {
		return err
	}
	meta := importMeta{Skipped: parsed.Skipped}
	if !commit {
		return writeOut(cmd, app, parsed.Records, meta)
	}

	f := form.New(blank)
	f.OpenBulk(importer.NewStaging(parsed.Records))
	out, err := f.Submit(cmd.Context(), listsync.New[T](backend))
	if out.Mode != form.BulkDraft {
		// Validation rejected a draft before anything was sent
		return err
	}

	meta.Committed = true
	meta.Created = out.Report.Created()
	for _, r := range out.Report.Failed() {
		meta.Failed = append(meta.Failed, importRow{Row: r.Index + 1, Error: r.Err.Error()})
	}
	var remaining []T
	if s := f.Staging(); s != nil {
		for _, d := range s.Drafts() {
			remaining = append(remaining, d.Record)
		}
	}
	if remaining == nil {
		remaining = []T{}
	}
	if werr := writeOut(cmd, app, remaining, meta); werr != nil {
		return werr
	}
	return err
}

func argID(args []string, i int) models.ID {
	return models.ParseID(args[i])
}

package importer

import (
	"context"
	"fmt"
)

// RowResult is the outcome of committing one draft
type RowResult struct {
	Key   string
	Index int // position in staging when the commit started
	Err   error
}

// Report summarizes a commit
type Report struct {
	Results []RowResult
}

// Created counts drafts the backend accepted
func (r Report) Created() int {
	n := 0
	for _, res := range r.Results {
		if res.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the results the backend rejected
func (r Report) Failed() []RowResult {
	var out []RowResult
	for _, res := range r.Results {
		if res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}

// Err summarizes failures, or is nil when every row was created
func (r Report) Err() error {
	failed := r.Failed()
	if len(failed) == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d rows failed, first: row %d: %w",
		len(failed), len(r.Results), failed[0].Index+1, failed[0].Err)
}

// Commit sends every draft through create, in order and one at a time.
// Every row is attempted; accepted drafts leave staging, rejected ones stay
// for a retry. A cancelled context stops before the next row.
func Commit[T any](ctx context.Context, staging *Staging[T], create func(context.Context, T) error) Report {
	var report Report
	for i, d := range staging.Drafts() {
		if err := ctx.Err(); err != nil {
			report.Results = append(report.Results, RowResult{Key: d.Key, Index: i, Err: err})
			continue
		}
		err := create(ctx, d.Record)
		report.Results = append(report.Results, RowResult{Key: d.Key, Index: i, Err: err})
		if err == nil {
			staging.Remove(d.Key)
		}
	}
	return report
}

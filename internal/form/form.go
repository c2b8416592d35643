// Package form drives the add/edit drawer shared by every resource screen.
package form

import (
	"context"
	"errors"
	"fmt"

	"github.com/tgienger/tms/internal/importer"
	"github.com/tgienger/tms/internal/models"
)

// Mode is the drawer state. Exactly one is active at a time.
type Mode int

const (
	Closed Mode = iota
	Create
	Edit
	BulkDraft
)

func (m Mode) String() string {
	switch m {
	case Create:
		return "create"
	case Edit:
		return "edit"
	case BulkDraft:
		return "bulk"
	default:
		return "closed"
	}
}

// ErrClosed is returned when submitting a closed drawer
var ErrClosed = errors.New("form is closed")

// Target receives submitted records. listsync.List satisfies it.
type Target[T any] interface {
	Create(ctx context.Context, rec T) (T, error)
	Update(ctx context.Context, id models.ID, rec T) (T, error)
}

// Outcome describes a successful submit
type Outcome[T any] struct {
	Mode   Mode
	Record T               // create and edit
	Report importer.Report // bulk
}

// Controller owns the fields, the edit identifier and the staged drafts of one
// drawer.
type Controller[T any] struct {
	mode     Mode
	fields   T
	blank    func() T
	editID   models.ID
	staging  *importer.Staging[T]
	draftKey string
}

// New creates a closed controller. blank returns the empty form, including
// defaults such as a preselected priority.
func New[T any](blank func() T) *Controller[T] {
	if blank == nil {
		blank = func() T {
			var zero T
			return zero
		}
	}
	return &Controller[T]{blank: blank}
}

// Mode returns the active mode
func (c *Controller[T]) Mode() Mode { return c.mode }

// IsOpen reports whether the drawer is shown
func (c *Controller[T]) IsOpen() bool { return c.mode != Closed }

// EditID returns the record being edited, or the zero ID
func (c *Controller[T]) EditID() models.ID { return c.editID }

// Fields returns the current form contents
func (c *Controller[T]) Fields() T { return c.fields }

// SetFields replaces the form contents
func (c *Controller[T]) SetFields(v T) { c.fields = v }

// OpenCreate shows an empty form and forgets any edit identifier
func (c *Controller[T]) OpenCreate() {
	c.reset()
	c.mode = Create
	c.fields = c.blank()
}

// OpenEdit pre-fills the form with rec and remembers its key
func (c *Controller[T]) OpenEdit(rec T, id models.ID) {
	c.reset()
	c.mode = Edit
	c.fields = rec
	c.editID = id
}

// OpenBulk edits the drafts of staging one at a time, starting with the first
func (c *Controller[T]) OpenBulk(staging *importer.Staging[T]) {
	c.reset()
	c.mode = BulkDraft
	c.staging = staging
	if drafts := staging.Drafts(); len(drafts) > 0 {
		c.draftKey = drafts[0].Key
		c.fields = drafts[0].Record
	}
}

// Staging returns the drafts being edited in bulk mode
func (c *Controller[T]) Staging() *importer.Staging[T] { return c.staging }

// DraftKey returns the selected draft in bulk mode
func (c *Controller[T]) DraftKey() string { return c.draftKey }

// SelectDraft loads a staged draft into the form
func (c *Controller[T]) SelectDraft(key string) bool {
	if c.mode != BulkDraft {
		return false
	}
	d, ok := c.staging.Get(key)
	if !ok {
		return false
	}
	c.draftKey = key
	c.fields = d.Record
	return true
}

// SaveDraft writes the form back into the selected draft
func (c *Controller[T]) SaveDraft() bool {
	if c.mode != BulkDraft || c.draftKey == "" {
		return false
	}
	return c.staging.Update(c.draftKey, c.fields)
}

// RemoveDraft discards the selected draft and selects the next remaining one
func (c *Controller[T]) RemoveDraft() bool {
	if c.mode != BulkDraft || c.draftKey == "" {
		return false
	}
	if !c.staging.Remove(c.draftKey) {
		return false
	}
	c.selectFirst()
	return true
}

// Close hides the drawer and clears its state
func (c *Controller[T]) Close() {
	c.reset()
}

// Submission is a validated snapshot of the form. Sending it does not touch
// the controller, so it can run off the UI goroutine.
type Submission[T any] struct {
	mode    Mode
	record  T
	id      models.ID
	staging *importer.Staging[T]
}

// Mode returns the mode the submission was prepared in
func (s Submission[T]) Mode() Mode { return s.mode }

// Prepare validates the form and snapshots it. Validation failures return a
// *models.ValidationError; in bulk mode the first invalid draft is selected.
func (c *Controller[T]) Prepare() (Submission[T], error) {
	switch c.mode {
	case Create, Edit:
		if err := models.Validate(c.fields); err != nil {
			return Submission[T]{}, err
		}
		return Submission[T]{mode: c.mode, record: c.fields, id: c.editID}, nil

	case BulkDraft:
		c.SaveDraft()
		for i, d := range c.staging.Drafts() {
			if err := models.Validate(d.Record); err != nil {
				c.SelectDraft(d.Key)
				return Submission[T]{}, fmt.Errorf("row %d: %w", i+1, err)
			}
		}
		return Submission[T]{mode: BulkDraft, staging: c.staging}, nil
	}
	return Submission[T]{}, ErrClosed
}

// Send performs the submission against target
func (s Submission[T]) Send(ctx context.Context, target Target[T]) (Outcome[T], error) {
	switch s.mode {
	case Create:
		rec, err := target.Create(ctx, s.record)
		return Outcome[T]{Mode: Create, Record: rec}, err
	case Edit:
		rec, err := target.Update(ctx, s.id, s.record)
		return Outcome[T]{Mode: Edit, Record: rec}, err
	case BulkDraft:
		report := importer.Commit(ctx, s.staging, func(ctx context.Context, rec T) error {
			_, err := target.Create(ctx, rec)
			return err
		})
		return Outcome[T]{Mode: BulkDraft, Report: report}, report.Err()
	}
	return Outcome[T]{}, ErrClosed
}

// Complete applies the result of Send. Create and edit close the drawer on
// success; bulk mode stays open while rejected drafts remain.
func (c *Controller[T]) Complete(out Outcome[T], err error) {
	if c.mode != out.Mode {
		return
	}
	switch out.Mode {
	case Create, Edit:
		if err == nil {
			c.reset()
		}
	case BulkDraft:
		if c.staging.Len() == 0 {
			c.reset()
			return
		}
		c.selectFirst()
	}
}

// Submit validates, sends and completes in one step. Validation failures
// make no request.
func (c *Controller[T]) Submit(ctx context.Context, target Target[T]) (Outcome[T], error) {
	sub, err := c.Prepare()
	if err != nil {
		return Outcome[T]{}, err
	}
	out, err := sub.Send(ctx, target)
	c.Complete(out, err)
	return out, err
}

func (c *Controller[T]) selectFirst() {
	c.draftKey = ""
	if drafts := c.staging.Drafts(); len(drafts) > 0 {
		c.draftKey = drafts[0].Key
		c.fields = drafts[0].Record
	}
}

func (c *Controller[T]) reset() {
	var zero T
	c.mode = Closed
	c.fields = zero
	c.editID = ""
	c.staging = nil
	c.draftKey = ""
}

// Package listsync keeps an in-memory collection consistent with the backend
// after each confirmed create, update or delete.
package listsync

import (
	"context"
	"fmt"
	"sync"

	"github.com/tgienger/tms/internal/models"
)

// Backend is the remote side of a collection. api.Resource satisfies it.
type Backend[T models.Record] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, rec T) (T, error)
	Update(ctx context.Context, id models.ID, rec T) error
	Delete(ctx context.Context, id models.ID) error
}

// List is the authoritative client copy of one collection. Every mutation goes
// to the backend first; local state changes only after the call succeeded.
type List[T models.Keyed[T]] struct {
	mu      sync.Mutex
	backend Backend[T]
	items   []T
	loaded  bool
}

// New creates an empty list backed by backend
func New[T models.Keyed[T]](backend Backend[T]) *List[T] {
	return &List[T]{backend: backend}
}

// Load replaces the collection with the backend's current contents
func (l *List[T]) Load(ctx context.Context) error {
	items, err := l.backend.List(ctx)
	if err != nil {
		return err
	}
	l.mu.Lock()
	l.items = items
	l.loaded = true
	l.mu.Unlock()
	return nil
}

// Loaded reports whether Load has succeeded at least once
func (l *List[T]) Loaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loaded
}

// Items returns a copy of the collection in server order
func (l *List[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the collection size
func (l *List[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// Find returns the record whose key equals id
func (l *List[T]) Find(id models.ID) (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i := l.index(id); i >= 0 {
		return l.items[i], true
	}
	var zero T
	return zero, false
}

// Create posts rec and appends the server's record. When the server does not
// echo an identifier the collection is reloaded instead.
func (l *List[T]) Create(ctx context.Context, rec T) (T, error) {
	created, err := l.backend.Create(ctx, rec)
	if err != nil {
		var zero T
		return zero, err
	}
	if created.Key().IsZero() {
		if err := l.Load(ctx); err != nil {
			return created, fmt.Errorf("reload after create: %w", err)
		}
		return created, nil
	}
	l.mu.Lock()
	l.items = append(l.items, created)
	l.mu.Unlock()
	return created, nil
}

// Update sends rec for id and, on success, replaces exactly the stored
// record with that id.
func (l *List[T]) Update(ctx context.Context, id models.ID, rec T) (T, error) {
	if err := l.backend.Update(ctx, id, rec); err != nil {
		var zero T
		return zero, err
	}
	rec = rec.WithKey(id)
	l.mu.Lock()
	defer l.mu.Unlock()
	if i := l.index(id); i >= 0 {
		l.items[i] = rec
	}
	return rec, nil
}

// Delete removes id on the backend and then locally
func (l *List[T]) Delete(ctx context.Context, id models.ID) error {
	if err := l.backend.Delete(ctx, id); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if i := l.index(id); i >= 0 {
		l.items = append(l.items[:i:i], l.items[i+1:]...)
	}
	return nil
}

// Mutate applies fn to the stored record with id. Use it after an
// out-of-band call has been confirmed, e.g. the task email-sent flag.
func (l *List[T]) Mutate(id models.ID, fn func(*T)) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.index(id)
	if i < 0 {
		return false
	}
	fn(&l.items[i])
	return true
}

// Replace swaps the whole collection without a backend call
func (l *List[T]) Replace(items []T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append([]T(nil), items...)
	l.loaded = true
}

func (l *List[T]) index(id models.ID) int {
	for i := range l.items {
		if l.items[i].Key().Equal(id) {
			return i
		}
	}
	return -1
}

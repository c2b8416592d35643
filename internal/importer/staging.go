package importer

import (
	"sync"

	"github.com/google/uuid"
)

// Draft is a staged record that has not been sent to the backend
type Draft[T any] struct {
	Key    string
	Record T
}

// Staging holds drafts apart from the authoritative collection, in file order
type Staging[T any] struct {
	mu     sync.Mutex
	drafts []Draft[T]
}

// NewStaging stages records, giving each a local key
func NewStaging[T any](records []T) *Staging[T] {
	s := &Staging[T]{drafts: make([]Draft[T], 0, len(records))}
	for _, r := range records {
		s.drafts = append(s.drafts, Draft[T]{Key: uuid.NewString(), Record: r})
	}
	return s
}

// Drafts returns a copy of the staged drafts
func (s *Staging[T]) Drafts() []Draft[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Draft[T](nil), s.drafts...)
}

// Len returns the number of staged drafts
func (s *Staging[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.drafts)
}

// Get returns the draft with key
func (s *Staging[T]) Get(key string) (Draft[T], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.index(key); i >= 0 {
		return s.drafts[i], true
	}
	return Draft[T]{}, false
}

// Update replaces the record of a draft
func (s *Staging[T]) Update(key string, rec T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(key)
	if i < 0 {
		return false
	}
	s.drafts[i].Record = rec
	return true
}

// Remove discards a draft
func (s *Staging[T]) Remove(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(key)
	if i < 0 {
		return false
	}
	s.drafts = append(s.drafts[:i:i], s.drafts[i+1:]...)
	return true
}

// Clear discards every draft
func (s *Staging[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts = nil
}

func (s *Staging[T]) index(key string) int {
	for i := range s.drafts {
		if s.drafts[i].Key == key {
			return i
		}
	}
	return -1
}

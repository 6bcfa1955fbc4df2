// Package memory provides a concurrent in-memory TupleStore, suitable for
// tests and single-process deployments that don't need durability.
package memory

import (
	"context"
	"sync"

	"github.com/pthm/relcore/model"
	"github.com/pthm/relcore/store"
)

// Store is a TupleStore backed by a mutex-guarded map. The zero value is
// not usable; construct with New.
type Store struct {
	mu     sync.RWMutex
	tuples map[string]model.Tuple
}

var _ store.TupleStore = (*Store)(nil)

// New returns an empty Store.
func New() *Store {
	return &Store{tuples: make(map[string]model.Tuple)}
}

func (s *Store) WriteTuples(ctx context.Context, req model.WriteRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range req.Writes {
		s.tuples[t.Key()] = t
	}
	for _, t := range req.Deletes {
		delete(s.tuples, t.Key())
	}
	return nil
}

func (s *Store) ReadTuples(ctx context.Context, filter store.TupleFilter) ([]model.Tuple, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Tuple
	for _, t := range s.tuples {
		if store.Matches(t, filter) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *Store) TupleExists(ctx context.Context, t model.Tuple) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.tuples[t.Key()]
	return ok, nil
}

// Size returns the number of tuples currently stored. Intended for tests
// and diagnostics.
func (s *Store) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tuples)
}

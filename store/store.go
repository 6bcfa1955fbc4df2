// Package store defines the TupleStore contract and the concrete backends
// (memory, postgres) that satisfy it.
package store

import (
	"context"

	"github.com/pthm/relcore/model"
)

// TupleStore is the storage contract the Checker and Expander depend on.
// Implementations must make WriteTuples idempotent: writing the same
// concrete tuple twice must not create a duplicate, and a userset subject
// tuple is identified by its (subject, relation, object) triple including
// the subject's userset relation.
type TupleStore interface {
	// WriteTuples applies a batch of writes and deletes. Deletes that
	// target a tuple which doesn't exist are not an error.
	WriteTuples(ctx context.Context, req model.WriteRequest) error

	// ReadTuples returns every tuple matching the given filter. A nil
	// pointer field acts as a wildcard; non-nil fields must match
	// exactly. Relation and Object are the fields the Checker and
	// Expander actually filter on; Subject filtering is provided for
	// completeness and administrative tooling.
	ReadTuples(ctx context.Context, filter TupleFilter) ([]model.Tuple, error)

	// TupleExists reports whether the exact tuple (including userset
	// subject relation, if any) is present.
	TupleExists(ctx context.Context, t model.Tuple) (bool, error)
}

// TupleFilter selects a subset of stored tuples. A nil field is a
// wildcard; a non-nil field must match exactly.
type TupleFilter struct {
	Subject  *model.Subject
	Relation *model.Relation
	Object   *model.Object
}

// Matches reports whether tuple t satisfies filter f. The memory backend
// and the overlay decorator use this; the postgres backend expresses the
// same filter as SQL conditions.
func Matches(t model.Tuple, f TupleFilter) bool {
	if f.Subject != nil && t.Subject != *f.Subject {
		return false
	}
	if f.Relation != nil && t.Relation != *f.Relation {
		return false
	}
	if f.Object != nil && t.Object != *f.Object {
		return false
	}
	return true
}

package store

import (
	"context"

	"github.com/pthm/relcore/model"
)

// overlay layers a caller-supplied set of contextual tuples over a
// TupleStore so a single Check call can consider request-scoped
// relationships without ever writing them to the underlying store.
type overlay struct {
	base  TupleStore
	extra []model.Tuple
}

// WithOverlay wraps base so ReadTuples and TupleExists also see extra.
// Writes and deletes always go to base; the overlay is read-only.
func WithOverlay(base TupleStore, extra []model.Tuple) TupleStore {
	if len(extra) == 0 {
		return base
	}
	return &overlay{base: base, extra: extra}
}

func (o *overlay) WriteTuples(ctx context.Context, req model.WriteRequest) error {
	return o.base.WriteTuples(ctx, req)
}

func (o *overlay) ReadTuples(ctx context.Context, filter TupleFilter) ([]model.Tuple, error) {
	tuples, err := o.base.ReadTuples(ctx, filter)
	if err != nil {
		return nil, err
	}
	for _, t := range o.extra {
		if Matches(t, filter) {
			tuples = append(tuples, t)
		}
	}
	return tuples, nil
}

func (o *overlay) TupleExists(ctx context.Context, t model.Tuple) (bool, error) {
	for _, e := range o.extra {
		if e == t {
			return true, nil
		}
	}
	return o.base.TupleExists(ctx, t)
}

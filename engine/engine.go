// Package engine assembles a TupleStore, Schema, Checker, and Expander
// behind a single façade, so callers touch one type instead of wiring
// the pieces themselves.
package engine

import (
	"context"

	"github.com/pthm/relcore/checker"
	"github.com/pthm/relcore/expander"
	"github.com/pthm/relcore/model"
	"github.com/pthm/relcore/schema"
	"github.com/pthm/relcore/store"
)

// Engine is the top-level entry point for authorization decisions. It
// owns a store and schema and delegates Check/Expand to a Checker and
// Expander built over them.
type Engine struct {
	store   store.TupleStore
	schema  *schema.Schema
	checker *checker.Checker
	expand  *expander.Expander

	honorContextDecision bool
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithCheckerOptions forwards opts to the checker.New call that builds
// the Engine's Checker, e.g. WithCheckerOptions(checker.WithCache(...)).
func WithCheckerOptions(opts ...checker.Option) Option {
	return func(e *Engine) {
		e.checker = checker.New(e.store, e.schema, opts...)
	}
}

// WithContextDecision makes Check honor a Decision attached to its
// context via WithDecisionContext, bypassing the store entirely when
// one is present. Off by default: an Engine that never calls this
// option ignores decision-context values outright.
func WithContextDecision() Option {
	return func(e *Engine) { e.honorContextDecision = true }
}

// New constructs an Engine over the given store and schema.
func New(s store.TupleStore, sc *schema.Schema, opts ...Option) *Engine {
	e := &Engine{store: s, schema: sc}
	e.checker = checker.New(s, sc)
	e.expand = expander.New(s)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WriteTuple validates t against the Schema and, if valid, forwards it
// to the store as a single-tuple write.
func (e *Engine) WriteTuple(ctx context.Context, t model.Tuple) error {
	return e.BatchWrite(ctx, model.WriteRequest{Writes: []model.Tuple{t}})
}

// BatchWrite validates every tuple in req.Writes against the Schema
// before forwarding the batch to the store; any validation failure
// aborts the whole call before anything is written. req.Deletes is not
// validated, per DeleteTuple's contract.
func (e *Engine) BatchWrite(ctx context.Context, req model.WriteRequest) error {
	for _, t := range req.Writes {
		if err := e.schema.ValidateTuple(t); err != nil {
			return err
		}
	}
	return e.store.WriteTuples(ctx, req)
}

// DeleteTuple removes t from the store without schema validation: a
// tuple that belonged to a namespace or relation later removed from the
// schema must still be deletable.
func (e *Engine) DeleteTuple(ctx context.Context, t model.Tuple) error {
	return e.store.WriteTuples(ctx, model.WriteRequest{Deletes: []model.Tuple{t}})
}

// Check resolves req against the Checker, honoring ContextualTuples and
// (if the Engine was built WithContextDecision) a Decision attached to
// ctx.
func (e *Engine) Check(ctx context.Context, req model.CheckRequest) (model.CheckResponse, error) {
	if e.honorContextDecision {
		if d, ok := GetDecisionContext(ctx); ok && d != DecisionUnset {
			return model.CheckResponse{Allowed: d == DecisionAllow}, nil
		}
	}

	var allowed bool
	var err error
	if len(req.ContextualTuples) > 0 {
		allowed, err = e.checker.CheckWithContextualTuples(ctx, req.Subject, req.Relation, req.Object, req.ContextualTuples)
	} else {
		allowed, err = e.checker.Check(ctx, req.Subject, req.Relation, req.Object)
	}
	if err != nil {
		return model.CheckResponse{}, err
	}
	return model.CheckResponse{Allowed: allowed}, nil
}

// Expand resolves req against the Expander.
func (e *Engine) Expand(ctx context.Context, req model.ExpandRequest) (expander.SubjectTree, error) {
	return e.expand.Expand(ctx, req.Relation, req.Object, req.MaxDepth)
}

// ExpandAndFlatten returns every concrete subject reachable for relation
// on object.
func (e *Engine) ExpandAndFlatten(ctx context.Context, relation model.Relation, object model.Object) ([]model.Subject, error) {
	return e.expand.ExpandAndFlatten(ctx, relation, object)
}

// Schema returns the Engine's Schema, for callers that need to inspect
// namespace definitions directly (e.g. a CLI's validate command).
func (e *Engine) Schema() *schema.Schema {
	return e.schema
}

// Store returns the Engine's underlying TupleStore, for callers that
// need direct read access (e.g. administrative tooling).
func (e *Engine) Store() store.TupleStore {
	return e.store
}

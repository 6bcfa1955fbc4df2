// Package checker implements recursive permission resolution: does
// subject have relation on object, considering direct tuples, relation
// inheritance, and userset indirection.
package checker

import (
	"context"
	"fmt"

	"github.com/pthm/relcore/model"
	"github.com/pthm/relcore/schema"
	"github.com/pthm/relcore/store"
)

// maxDepth bounds recursion regardless of schema shape. Real inheritance
// chains run well under five levels; ten leaves generous headroom while
// still guaranteeing termination against a pathological or cyclic schema.
const maxDepth = 10

// Checker evaluates Check requests against a TupleStore and Schema.
type Checker struct {
	store  store.TupleStore
	schema *schema.Schema
	cache  Cache
}

// Option configures a Checker at construction time.
type Option func(*Checker)

// WithCache attaches a result cache. Cache hits skip the store entirely.
func WithCache(c Cache) Option {
	return func(c2 *Checker) { c2.cache = c }
}

// New constructs a Checker over store s and schema definitions.
func New(s store.TupleStore, schema *schema.Schema, opts ...Option) *Checker {
	c := &Checker{store: s, schema: schema}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check reports whether subject holds relation on object, per the
// direct/inherited/userset-indirection algorithm described in the
// package doc. A TupleStore error aborts the check and is returned to
// the caller; exhausting the depth limit or re-entering a visited frame
// returns (false, nil), never an error.
func (c *Checker) Check(ctx context.Context, subject model.Subject, relation model.Relation, object model.Object) (bool, error) {
	if c.cache != nil {
		if allowed, ok := c.cache.Get(subject, relation, object); ok {
			return allowed, nil
		}
	}

	visited := make(map[string]struct{})
	allowed, err := c.checkRecursive(ctx, subject, relation, object, visited, 0)

	if c.cache != nil && err == nil {
		c.cache.Set(subject, relation, object, allowed)
	}
	return allowed, err
}

// CheckWithContextualTuples evaluates Check as if extra were part of the
// store for the duration of this call only; extra is never written.
func (c *Checker) CheckWithContextualTuples(ctx context.Context, subject model.Subject, relation model.Relation, object model.Object, extra []model.Tuple) (bool, error) {
	overlaid := &Checker{store: store.WithOverlay(c.store, extra), schema: c.schema}
	return overlaid.Check(ctx, subject, relation, object)
}

func checkKey(subject model.Subject, relation model.Relation, object model.Object) string {
	return fmt.Sprintf("%s_%s_%s", subject, relation, object)
}

func (c *Checker) checkRecursive(ctx context.Context, subject model.Subject, relation model.Relation, object model.Object, visited map[string]struct{}, depth int) (bool, error) {
	if depth > maxDepth {
		return false, nil
	}

	key := checkKey(subject, relation, object)
	if _, seen := visited[key]; seen {
		return false, nil
	}
	visited[key] = struct{}{}

	// 1. Direct: does the exact tuple exist?
	direct := model.NewTuple(subject, relation, object)
	exists, err := c.store.TupleExists(ctx, direct)
	if err != nil {
		return false, err
	}
	if exists {
		return true, nil
	}

	// 2. Inherited: any relation in object's namespace that implies
	// relation, checked recursively.
	for _, child := range c.schema.ChildRelations(object.Type, relation) {
		ok, err := c.checkRecursive(ctx, subject, child, object, visited, depth+1)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}

	// 3. Userset indirection: tuples granting relation on object to a
	// userset subject U#rel are followed by checking (subject, rel, U).
	rel := relation
	related, err := c.store.ReadTuples(ctx, store.TupleFilter{Relation: &rel, Object: &object})
	if err != nil {
		return false, err
	}
	for _, t := range related {
		if !t.Subject.IsUserset() {
			continue
		}
		ok, err := c.checkRecursive(ctx, subject, t.Subject.SubjectRelation, t.Subject.Object, visited, depth+1)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}

	return false, nil
}

// Must is a panic-on-error helper for call sites that have already
// established an invariant a store error would violate (e.g. internal
// tooling operating on data it just wrote itself). A denial is not a
// panic: Must returns false.
func (c *Checker) Must(ctx context.Context, subject model.Subject, relation model.Relation, object model.Object) bool {
	allowed, err := c.Check(ctx, subject, relation, object)
	if err != nil {
		panic(fmt.Sprintf("checker: Must check failed: %v", err))
	}
	return allowed
}

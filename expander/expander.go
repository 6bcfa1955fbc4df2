// Package expander enumerates the subjects that hold a relation on an
// object, as a tree that records how each subject was reached (directly,
// or transitively through a userset).
package expander

import (
	"context"
	"fmt"

	"github.com/pthm/relcore/model"
	"github.com/pthm/relcore/store"
)

// defaultMaxDepth is Expand's depth cap when the caller doesn't override
// it.
const defaultMaxDepth = 5

// flattenMaxDepth is ExpandAndFlatten's depth cap: deeper than Expand's
// default because its caller wants every reachable principal, not just a
// shallow tree for display.
const flattenMaxDepth = 10

// NodeKind distinguishes a real subject leaf from the structural
// sentinels the algorithm emits when it stops early.
type NodeKind int

const (
	// KindRoot marks an expanded (relation, object) pair: the top of the
	// returned tree and every userset subtree beneath it. Flatten does not
	// emit it.
	KindRoot NodeKind = iota
	// KindLeaf is a concrete subject that holds the relation.
	KindLeaf
	// KindCycle marks a frame that was already visited earlier in the same
	// expansion (on any branch, not only the current path); its children
	// are not explored again.
	KindCycle
	// KindMaxDepth marks a frame reached only after the depth cap was
	// exhausted.
	KindMaxDepth
)

// SubjectTree is one node of an expansion: either a concrete subject
// (KindLeaf), the relation/object pair that produced this subtree
// (KindRoot), or a structural sentinel (KindCycle/KindMaxDepth).
type SubjectTree struct {
	Kind     NodeKind
	Subject  model.Subject
	Relation model.Relation
	Object   model.Object
	Children []SubjectTree
}

// Expander enumerates subjects against a TupleStore.
type Expander struct {
	store store.TupleStore
}

// New constructs an Expander over store s.
func New(s store.TupleStore) *Expander {
	return &Expander{store: s}
}

// Expand returns the subject tree for relation on object. maxDepth of 0
// uses the default of 5.
func (e *Expander) Expand(ctx context.Context, relation model.Relation, object model.Object, maxDepth int) (SubjectTree, error) {
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}
	visited := make(map[string]struct{})
	return e.expandRecursive(ctx, relation, object, visited, 0, maxDepth)
}

func expandKey(relation model.Relation, object model.Object) string {
	return fmt.Sprintf("%s_%s", relation, object)
}

func (e *Expander) expandRecursive(ctx context.Context, relation model.Relation, object model.Object, visited map[string]struct{}, depth, maxDepth int) (SubjectTree, error) {
	if depth >= maxDepth {
		return SubjectTree{Kind: KindMaxDepth, Relation: relation, Object: object}, nil
	}

	key := expandKey(relation, object)
	if _, seen := visited[key]; seen {
		return SubjectTree{Kind: KindCycle, Relation: relation, Object: object}, nil
	}
	visited[key] = struct{}{}

	tuples, err := e.store.ReadTuples(ctx, store.TupleFilter{Relation: &relation, Object: &object})
	if err != nil {
		return SubjectTree{}, err
	}

	var children []SubjectTree
	for _, t := range tuples {
		if t.Subject.IsUserset() {
			child, err := e.expandRecursive(ctx, t.Subject.SubjectRelation, t.Subject.Object, visited, depth+1, maxDepth)
			if err != nil {
				return SubjectTree{}, err
			}
			children = append(children, child)
			continue
		}
		children = append(children, SubjectTree{Kind: KindLeaf, Subject: t.Subject})
	}

	return SubjectTree{Kind: KindRoot, Relation: relation, Object: object, Children: children}, nil
}

// ExpandAndFlatten expands relation on object (using the deeper default
// depth cap of 10, appropriate for an exhaustive principal listing) and
// returns the concrete subjects reachable by direct or transitive
// binding, with every structural sentinel filtered out.
func (e *Expander) ExpandAndFlatten(ctx context.Context, relation model.Relation, object model.Object) ([]model.Subject, error) {
	tree, err := e.Expand(ctx, relation, object, flattenMaxDepth)
	if err != nil {
		return nil, err
	}
	return Flatten(tree), nil
}

// Flatten walks tree and returns every concrete subject it contains,
// discarding root/cycle/max-depth sentinel nodes.
func Flatten(tree SubjectTree) []model.Subject {
	var subjects []model.Subject
	if tree.Kind == KindLeaf {
		subjects = append(subjects, tree.Subject)
	}
	for _, child := range tree.Children {
		subjects = append(subjects, Flatten(child)...)
	}
	return subjects
}

package expander_test

import (
	"context"
	"testing"

	"github.com/pthm/relcore/expander"
	"github.com/pthm/relcore/model"
	"github.com/pthm/relcore/store/memory"
)

func TestExpandFlattensDirectSubjects(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	e := expander.New(st)

	doc1 := model.NewObject("document", "doc1")
	alice := model.NewSubject("user", "alice")
	bob := model.NewSubject("user", "bob")

	mustWrite(t, st, model.NewTuple(alice, "viewer", doc1))
	mustWrite(t, st, model.NewTuple(bob, "viewer", doc1))

	subjects, err := e.ExpandAndFlatten(ctx, "viewer", doc1)
	if err != nil {
		t.Fatalf("ExpandAndFlatten() error = %v", err)
	}
	if len(subjects) != 2 {
		t.Fatalf("ExpandAndFlatten() returned %d subjects, want 2", len(subjects))
	}

	seen := map[string]bool{}
	for _, s := range subjects {
		seen[s.String()] = true
	}
	if !seen["user:alice"] || !seen["user:bob"] {
		t.Errorf("expected alice and bob, got %v", subjects)
	}
}

func TestExpandThroughUserset(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	e := expander.New(st)

	g1 := model.NewObject("group", "g1")
	doc1 := model.NewObject("document", "doc1")
	alice := model.NewSubject("user", "alice")

	mustWrite(t, st, model.NewTuple(alice, "member", g1))
	mustWrite(t, st, model.NewTuple(model.NewUsersetSubject("group", "g1", "member"), "viewer", doc1))

	subjects, err := e.ExpandAndFlatten(ctx, "viewer", doc1)
	if err != nil {
		t.Fatalf("ExpandAndFlatten() error = %v", err)
	}
	if len(subjects) != 1 || subjects[0].String() != "user:alice" {
		t.Errorf("ExpandAndFlatten() = %v, want [user:alice]", subjects)
	}
}

func TestExpandFiltersSentinelNodes(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	e := expander.New(st)

	// A cyclic userset graph with no concrete subject anywhere.
	a := model.NewObject("group", "a")
	b := model.NewObject("group", "b")
	mustWrite(t, st, model.NewTuple(model.NewUsersetSubject("group", "b", "member"), "member", a))
	mustWrite(t, st, model.NewTuple(model.NewUsersetSubject("group", "a", "member"), "member", b))

	subjects, err := e.ExpandAndFlatten(ctx, "member", a)
	if err != nil {
		t.Fatalf("ExpandAndFlatten() error = %v", err)
	}
	if len(subjects) != 0 {
		t.Errorf("expected no concrete subjects in a pure cycle, got %v", subjects)
	}
}

func TestExpandMaxDepth(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	e := expander.New(st)

	doc1 := model.NewObject("document", "doc1")
	alice := model.NewSubject("user", "alice")
	mustWrite(t, st, model.NewTuple(alice, "viewer", doc1))

	tree, err := e.Expand(ctx, "viewer", doc1, 1)
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if tree.Kind != expander.KindRoot {
		t.Fatalf("expected root node at depth 0, got %v", tree.Kind)
	}
	if len(tree.Children) != 1 || tree.Children[0].Kind != expander.KindLeaf {
		t.Fatalf("expected a single leaf child within maxDepth=1, got %+v", tree.Children)
	}
}

func mustWrite(t *testing.T, st *memory.Store, tuple model.Tuple) {
	t.Helper()
	if err := st.WriteTuples(context.Background(), model.WriteRequest{Writes: []model.Tuple{tuple}}); err != nil {
		t.Fatalf("WriteTuples() error = %v", err)
	}
}

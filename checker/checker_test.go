package checker_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/pthm/relcore/checker"
	"github.com/pthm/relcore/model"
	"github.com/pthm/relcore/schema"
	"github.com/pthm/relcore/store/memory"
)

func TestCheckDirectGrant(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	c := checker.New(st, schema.Default())

	doc1 := model.NewObject("document", "doc1")
	alice := model.NewSubject("user", "alice")
	bob := model.NewSubject("user", "bob")

	mustWrite(t, st, model.NewTuple(alice, "viewer", doc1))

	allowed, err := c.Check(ctx, alice, "viewer", doc1)
	if err != nil || !allowed {
		t.Fatalf("Check(alice, viewer, doc1) = %v, %v; want true, nil", allowed, err)
	}

	allowed, err = c.Check(ctx, bob, "viewer", doc1)
	if err != nil || allowed {
		t.Fatalf("Check(bob, viewer, doc1) = %v, %v; want false, nil", allowed, err)
	}
}

func TestCheckInheritance(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	c := checker.New(st, schema.Default())

	doc1 := model.NewObject("document", "doc1")
	alice := model.NewSubject("user", "alice")

	mustWrite(t, st, model.NewTuple(alice, "editor", doc1))

	for _, relation := range []model.Relation{"editor", "viewer"} {
		allowed, err := c.Check(ctx, alice, relation, doc1)
		if err != nil || !allowed {
			t.Errorf("Check(alice, %s, doc1) = %v, %v; want true, nil", relation, allowed, err)
		}
	}

	allowed, err := c.Check(ctx, alice, "owner", doc1)
	if err != nil || allowed {
		t.Errorf("Check(alice, owner, doc1) = %v, %v; want false, nil", allowed, err)
	}
}

func TestCheckUsersetTransit(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	c := checker.New(st, schema.Default())

	g1 := model.NewObject("role", "g1")
	doc1 := model.NewObject("document", "doc1")
	alice := model.NewSubject("user", "alice")

	mustWrite(t, st, model.NewTuple(alice, "member", g1))
	mustWrite(t, st, model.NewTuple(model.NewUsersetSubject("role", "g1", "member"), "viewer", doc1))

	allowed, err := c.Check(ctx, alice, "viewer", doc1)
	if err != nil || !allowed {
		t.Fatalf("Check(alice, viewer, doc1) via userset = %v, %v; want true, nil", allowed, err)
	}
}

func TestCheckCycleIsSafe(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	c := checker.New(st, schema.Default())

	groupA := model.NewObject("role", "a")
	groupB := model.NewObject("role", "b")

	mustWrite(t, st, model.NewTuple(model.NewUsersetSubject("role", "a", "member"), "member", groupB))
	mustWrite(t, st, model.NewTuple(model.NewUsersetSubject("role", "b", "member"), "member", groupA))

	alice := model.NewSubject("user", "alice")
	allowed, err := c.Check(ctx, alice, "member", groupA)
	if err != nil {
		t.Fatalf("Check returned error on cyclic userset graph: %v", err)
	}
	if allowed {
		t.Fatal("Check should return false for a cyclic userset graph with no real grant")
	}
}

func TestCheckDepthCap(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	c := checker.New(st, schema.Default())

	// Build a chain of 12 nested usersets: membership in g0 transits
	// from g1's members, which transit from g2's members, and so on,
	// with alice a direct member of g12 at the bottom of the chain.
	const chainLength = 12
	for i := 0; i < chainLength; i++ {
		from := model.NewUsersetSubject("role", fmt.Sprintf("g%d", i+1), "member")
		to := model.NewObject("role", fmt.Sprintf("g%d", i))
		mustWrite(t, st, model.NewTuple(from, "member", to))
	}
	alice := model.NewSubject("user", "alice")
	mustWrite(t, st, model.NewTuple(alice, "member", model.NewObject("role", fmt.Sprintf("g%d", chainLength))))

	allowed, err := c.Check(ctx, alice, "member", model.NewObject("role", "g0"))
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if allowed {
		t.Fatal("a chain of 12 userset indirections should exceed the depth cap and return false")
	}
}

func TestCheckWithContextualTuples(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	c := checker.New(st, schema.Default())

	doc1 := model.NewObject("document", "doc1")
	alice := model.NewSubject("user", "alice")
	extra := []model.Tuple{model.NewTuple(alice, "viewer", doc1)}

	allowed, err := c.CheckWithContextualTuples(ctx, alice, "viewer", doc1, extra)
	if err != nil || !allowed {
		t.Fatalf("CheckWithContextualTuples = %v, %v; want true, nil", allowed, err)
	}

	// The contextual tuple must not leak into the store.
	exists, err := st.TupleExists(ctx, extra[0])
	if err != nil {
		t.Fatalf("TupleExists() error = %v", err)
	}
	if exists {
		t.Fatal("contextual tuples must not be persisted to the store")
	}
}

func mustWrite(t *testing.T, st *memory.Store, tuple model.Tuple) {
	t.Helper()
	if err := st.WriteTuples(context.Background(), model.WriteRequest{Writes: []model.Tuple{tuple}}); err != nil {
		t.Fatalf("WriteTuples() error = %v", err)
	}
}

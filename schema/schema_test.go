package schema_test

import (
	"testing"

	"github.com/pthm/relcore/model"
	"github.com/pthm/relcore/schema"
)

func documentSchema() *schema.Schema {
	s := schema.New()
	s.AddNamespace(schema.NamespaceDefinition{
		Type: "document",
		Relations: map[model.Relation]schema.RelationDefinition{
			"owner":  {Name: "owner"},
			"editor": {Name: "editor", InheritsFrom: "viewer"},
			"viewer": {Name: "viewer"},
		},
	})
	return s
}

func TestValidate(t *testing.T) {
	if err := documentSchema().Validate(); err != nil {
		t.Fatalf("expected valid schema, got %v", err)
	}
}

func TestValidateUnknownParent(t *testing.T) {
	s := schema.New()
	s.AddNamespace(schema.NamespaceDefinition{
		Type: "document",
		Relations: map[model.Relation]schema.RelationDefinition{
			"editor": {Name: "editor", InheritsFrom: "ghost"},
		},
	})
	if err := s.Validate(); err == nil {
		t.Fatal("expected an error for an unknown InheritsFrom parent")
	}
}

func TestValidateCycleIsAccepted(t *testing.T) {
	// spec.md requires the Checker, not schema validation, to guard
	// against inheritance cycles.
	s := schema.New()
	s.AddNamespace(schema.NamespaceDefinition{
		Type: "document",
		Relations: map[model.Relation]schema.RelationDefinition{
			"a": {Name: "a", InheritsFrom: "b"},
			"b": {Name: "b", InheritsFrom: "a"},
		},
	})
	if err := s.Validate(); err != nil {
		t.Fatalf("cyclic relation graph should validate, got %v", err)
	}
}

func TestValidateTuple(t *testing.T) {
	s := documentSchema()

	valid := model.NewTuple(model.NewSubject("user", "alice"), "owner", model.NewObject("document", "doc1"))
	if err := s.ValidateTuple(valid); err != nil {
		t.Errorf("expected valid tuple, got %v", err)
	}

	badRelation := model.NewTuple(model.NewSubject("user", "alice"), "bogus", model.NewObject("document", "doc1"))
	if err := s.ValidateTuple(badRelation); err == nil {
		t.Error("expected error for unknown relation")
	}

	badType := model.NewTuple(model.NewSubject("user", "alice"), "owner", model.NewObject("folder", "f1"))
	if err := s.ValidateTuple(badType); err == nil {
		t.Error("expected error for unknown object type")
	}
}

func TestDefault(t *testing.T) {
	s := schema.Default()
	if err := s.Validate(); err != nil {
		t.Fatalf("Default() schema failed validation: %v", err)
	}

	for _, objType := range []model.ObjectType{"patient", "document", "organization", "role"} {
		if _, ok := s.Namespace(objType); !ok {
			t.Errorf("Default() missing namespace %q", objType)
		}
	}

	rd, ok := s.RelationDefinition("patient", "provider")
	if !ok {
		t.Fatal("expected patient#provider to be defined")
	}
	if rd.InheritsFrom != "viewer" {
		t.Errorf("patient#provider.InheritsFrom = %q, want viewer", rd.InheritsFrom)
	}
	if rd.Description == "" {
		t.Error("expected patient#provider to carry a non-empty description")
	}
}

func TestChildRelations(t *testing.T) {
	s := documentSchema()
	children := s.ChildRelations("document", "viewer")
	if len(children) != 1 || children[0] != "editor" {
		t.Errorf("ChildRelations(viewer) = %v, want [editor]", children)
	}
}

package schema_test

import (
	"testing"

	"github.com/pthm/relcore/schema"
)

const docYAML = `
namespaces:
  - type: document
    relations:
      - name: owner
      - name: editor
        inheritsFrom: viewer
        description: Can edit document
        subjectTypes: [user]
      - name: viewer
        subjectTypes: [user, "group#member"]
`

func TestLoadYAML(t *testing.T) {
	s, err := schema.LoadYAML([]byte(docYAML))
	if err != nil {
		t.Fatalf("LoadYAML() error = %v", err)
	}

	rd, ok := s.RelationDefinition("document", "editor")
	if !ok {
		t.Fatal("expected document#editor to be defined")
	}
	if rd.InheritsFrom != "viewer" {
		t.Errorf("editor.InheritsFrom = %q, want viewer", rd.InheritsFrom)
	}
	if rd.Description != "Can edit document" {
		t.Errorf("editor.Description = %q, want %q", rd.Description, "Can edit document")
	}
}

func TestLoadYAMLEmptyIsError(t *testing.T) {
	_, err := schema.LoadYAML([]byte(`namespaces: []`))
	if err != schema.ErrEmptySchema {
		t.Fatalf("LoadYAML() error = %v, want ErrEmptySchema", err)
	}
}

func TestLoadYAMLRejectsUnknownParent(t *testing.T) {
	_, err := schema.LoadYAML([]byte(`
namespaces:
  - type: document
    relations:
      - name: editor
        inheritsFrom: nonexistent
`))
	if err == nil {
		t.Fatal("expected an error for an inheritsFrom referencing an unknown relation")
	}
}

// Package schema defines namespace and relation metadata used to validate
// tuples before they are written and to drive the Checker's inheritance
// traversal.
package schema

import (
	"fmt"

	"github.com/pthm/relcore/model"
)

// RelationDefinition describes one relation within a namespace.
//
// InheritsFrom names a parent relation in the same namespace: any subject
// holding this relation also holds the parent (e.g. "editor" inherits
// from "viewer", so every editor is also a viewer). Empty means no
// inheritance. A namespace's relation graph
// may contain cycles — Schema validation does not reject them, since the
// Checker's own visited-set traversal already tolerates them safely.
type RelationDefinition struct {
	Name         model.Relation
	InheritsFrom model.Relation

	// Description is a human-readable note on what holding this relation
	// grants (e.g. "read-only access to patient record"). Purely
	// informational; never consulted by validation or the Checker.
	Description string

	// SubjectTypes documents which object types may appear as the
	// subject of this relation. It is informational only: relcore's
	// write-time validation checks relation existence, not subject-type
	// membership, so this field does not gate WriteTuple.
	SubjectTypes []model.ObjectType
}

// NamespaceDefinition describes one object type and its relations.
type NamespaceDefinition struct {
	Type      model.ObjectType
	Relations map[model.Relation]RelationDefinition
}

// Schema is the full set of namespace definitions for a deployment. A
// Schema is loaded once at process start and treated as immutable
// thereafter; relcore does not persist or hot-reload schemas.
type Schema struct {
	Namespaces map[model.ObjectType]NamespaceDefinition
}

// New returns an empty Schema.
func New() *Schema {
	return &Schema{Namespaces: make(map[model.ObjectType]NamespaceDefinition)}
}

// Default returns the healthcare reference schema: four namespaces
// (patient, document, organization, role) with HIPAA-aligned relations.
// It is the fixture the package's own tests and examples are written
// against when no caller-supplied schema is relevant.
func Default() *Schema {
	s := New()

	s.AddNamespace(NamespaceDefinition{
		Type: "patient",
		Relations: map[model.Relation]RelationDefinition{
			"owner": {
				Name:        "owner",
				Description: "Full access to patient record",
			},
			"provider": {
				Name:         "provider",
				InheritsFrom: "viewer",
				Description:  "Healthcare provider with treatment access",
			},
			"viewer": {
				Name:        "viewer",
				Description: "Read-only access to patient record",
			},
			"read_phi": {
				Name:        "read_phi",
				Description: "Permission to read PHI fields",
			},
		},
	})

	s.AddNamespace(NamespaceDefinition{
		Type: "document",
		Relations: map[model.Relation]RelationDefinition{
			"owner": {
				Name:        "owner",
				Description: "Full control over document",
			},
			"editor": {
				Name:         "editor",
				InheritsFrom: "viewer",
				Description:  "Can edit document",
			},
			"viewer": {
				Name:        "viewer",
				Description: "Can view document",
			},
		},
	})

	s.AddNamespace(NamespaceDefinition{
		Type: "organization",
		Relations: map[model.Relation]RelationDefinition{
			"admin": {
				Name:         "admin",
				InheritsFrom: "member",
				Description:  "Organization administrator",
			},
			"member": {
				Name:        "member",
				Description: "Organization member",
			},
		},
	})

	s.AddNamespace(NamespaceDefinition{
		Type: "role",
		Relations: map[model.Relation]RelationDefinition{
			"member": {
				Name:        "member",
				Description: "Member of this role",
			},
		},
	})

	return s
}

// AddNamespace registers a namespace definition, overwriting any existing
// definition for the same type.
func (s *Schema) AddNamespace(ns NamespaceDefinition) {
	if s.Namespaces == nil {
		s.Namespaces = make(map[model.ObjectType]NamespaceDefinition)
	}
	s.Namespaces[ns.Type] = ns
}

// Namespace returns the namespace definition for objectType, if any.
func (s *Schema) Namespace(objectType model.ObjectType) (NamespaceDefinition, bool) {
	ns, ok := s.Namespaces[objectType]
	return ns, ok
}

// RelationDefinition returns the relation definition for relation within
// objectType's namespace, if both exist.
func (s *Schema) RelationDefinition(objectType model.ObjectType, relation model.Relation) (RelationDefinition, bool) {
	ns, ok := s.Namespaces[objectType]
	if !ok {
		return RelationDefinition{}, false
	}
	rd, ok := ns.Relations[relation]
	return rd, ok
}

// ChildRelations returns every relation in objectType's namespace whose
// InheritsFrom equals parent. The Checker uses this to walk upward from a
// requested relation toward relations that imply it.
func (s *Schema) ChildRelations(objectType model.ObjectType, parent model.Relation) []model.Relation {
	ns, ok := s.Namespaces[objectType]
	if !ok {
		return nil
	}
	var children []model.Relation
	for name, rd := range ns.Relations {
		if rd.InheritsFrom == parent {
			children = append(children, name)
		}
	}
	return children
}

// Validate checks that every namespace's relations refer only to
// InheritsFrom parents that exist in the same namespace. It deliberately
// does not reject inheritance cycles: spec.md's Checker is designed to
// remain correct (bounded by its visited-set and depth cap) even when a
// schema describes a cyclic relation graph, so rejecting cycles here
// would only duplicate work the Checker already has to do safely.
func (s *Schema) Validate() error {
	for objType, ns := range s.Namespaces {
		if objType != ns.Type {
			return model.NewValidationError(model.ErrorCodeInvalidSchema,
				fmt.Sprintf("namespace key %q does not match definition type %q", objType, ns.Type))
		}
		for name, rd := range ns.Relations {
			if name != rd.Name {
				return model.NewValidationError(model.ErrorCodeInvalidSchema,
					fmt.Sprintf("relation key %q does not match definition name %q in namespace %q", name, rd.Name, objType))
			}
			if rd.InheritsFrom == "" {
				continue
			}
			if _, ok := ns.Relations[rd.InheritsFrom]; !ok {
				return model.NewValidationError(model.ErrorCodeInvalidSchema,
					fmt.Sprintf("relation %q in namespace %q inherits from unknown relation %q", name, objType, rd.InheritsFrom))
			}
		}
	}
	return nil
}

// ValidateTuple checks that a tuple's object type and relation are known
// to the schema. relcore performs strict validation only: an unknown
// object type or relation is always rejected, with no lenient mode.
func (s *Schema) ValidateTuple(t model.Tuple) error {
	ns, ok := s.Namespaces[t.Object.Type]
	if !ok {
		return model.NewValidationError(model.ErrorCodeInvalidTuple,
			fmt.Sprintf("unknown object type %q", t.Object.Type))
	}
	if _, ok := ns.Relations[t.Relation]; !ok {
		return model.NewValidationError(model.ErrorCodeInvalidTuple,
			fmt.Sprintf("unknown relation %q for object type %q", t.Relation, t.Object.Type))
	}
	return nil
}

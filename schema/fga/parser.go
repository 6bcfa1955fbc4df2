// Package fga adapts OpenFGA DSL schema files into a relcore schema.Schema.
//
// It wraps the official OpenFGA language parser so relcore deployments can
// reuse an existing .fga file instead of hand-writing a native schema.
// relcore's Schema is a strict subset of OpenFGA's model: one namespace
// per type, one InheritsFrom parent per relation, plus userset subject
// references. OpenFGA's intersection, exclusion, and tuple-to-userset
// operators express richer rules than relcore's Checker evaluates, so a
// relation using them is rejected with ErrUnsupportedRelation rather than
// silently approximated.
package fga

import (
	"errors"
	"fmt"
	"os"
	"sort"

	openfgav1 "github.com/openfga/api/proto/openfga/v1"
	"github.com/openfga/language/pkg/go/transformer"

	"github.com/pthm/relcore/model"
	"github.com/pthm/relcore/schema"
)

// ErrUnsupportedRelation is returned when a relation's OpenFGA userset
// expression uses an operator relcore's Schema cannot represent
// (intersection, exclusion, or tuple-to-userset).
var ErrUnsupportedRelation = errors.New("relcore/schema/fga: relation uses an unsupported OpenFGA operator")

// ParseFile reads an OpenFGA .fga file and converts it to a Schema.
func ParseFile(path string) (*schema.Schema, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schema file: %w", err)
	}
	return ParseString(string(content))
}

// ParseString parses OpenFGA DSL content and converts it to a Schema.
func ParseString(content string) (*schema.Schema, error) {
	m, err := transformer.TransformDSLToProto(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", schema.ErrUnreadableFile, err)
	}
	return convertModel(m)
}

func convertModel(m *openfgav1.AuthorizationModel) (*schema.Schema, error) {
	s := schema.New()

	for _, td := range m.GetTypeDefinitions() {
		ns := schema.NamespaceDefinition{
			Type:      model.ObjectType(td.GetType()),
			Relations: make(map[model.Relation]schema.RelationDefinition),
		}

		directTypes := directlyRelatedTypes(td)

		relMap := td.GetRelations()
		names := make([]string, 0, len(relMap))
		for name := range relMap {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			rd, err := convertRelation(name, relMap[name], directTypes[name])
			if err != nil {
				return nil, fmt.Errorf("type %q: %w", td.GetType(), err)
			}
			ns.Relations[rd.Name] = rd
		}

		s.AddNamespace(ns)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func directlyRelatedTypes(td *openfgav1.TypeDefinition) map[string][]model.ObjectType {
	out := make(map[string][]model.ObjectType)
	meta := td.GetMetadata()
	if meta == nil {
		return out
	}
	for relName, relMeta := range meta.GetRelations() {
		for _, ref := range relMeta.GetDirectlyRelatedUserTypes() {
			name := ref.GetType()
			if rel := ref.GetRelation(); rel != "" {
				name += "#" + rel
			}
			out[relName] = append(out[relName], model.ObjectType(name))
		}
	}
	return out
}

// convertRelation reduces an OpenFGA Userset expression to relcore's single
// InheritsFrom parent. Supported shapes: This (no inheritance), a single
// ComputedUserset, or a Union composed only of This/ComputedUserset
// children (the first ComputedUserset found becomes InheritsFrom, matching
// relcore's one-parent model). Anything else is rejected.
func convertRelation(name string, us *openfgav1.Userset, subjectTypes []model.ObjectType) (schema.RelationDefinition, error) {
	// OpenFGA's TypeDefinition/RelationMetadata carries no human-readable
	// description field, so Description is left empty for .fga-sourced
	// schemas; callers wanting descriptions use the native YAML format.
	rd := schema.RelationDefinition{
		Name:         model.Relation(name),
		SubjectTypes: subjectTypes,
	}

	parent, err := extractInheritsFrom(us)
	if err != nil {
		return schema.RelationDefinition{}, fmt.Errorf("relation %q: %w", name, err)
	}
	rd.InheritsFrom = parent
	return rd, nil
}

func extractInheritsFrom(us *openfgav1.Userset) (model.Relation, error) {
	if us == nil {
		return "", nil
	}

	switch v := us.Userset.(type) {
	case *openfgav1.Userset_This:
		return "", nil

	case *openfgav1.Userset_ComputedUserset:
		return model.Relation(v.ComputedUserset.GetRelation()), nil

	case *openfgav1.Userset_Union:
		for _, child := range v.Union.GetChild() {
			parent, err := extractInheritsFrom(child)
			if err != nil {
				return "", err
			}
			if parent != "" {
				return parent, nil
			}
		}
		return "", nil

	default:
		return "", ErrUnsupportedRelation
	}
}

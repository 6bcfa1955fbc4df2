package schema

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/pthm/relcore/model"
)

// yamlSchema mirrors Schema's shape as plain YAML-friendly structures;
// Schema itself is keyed by model.ObjectType/model.Relation, which
// sigs.k8s.io/yaml (JSON under the hood) can't use directly as map keys
// in a document meant for a human to hand-edit, so namespaces and
// relations round-trip as lists instead of maps.
type yamlSchema struct {
	Namespaces []yamlNamespace `json:"namespaces"`
}

type yamlNamespace struct {
	Type      string         `json:"type"`
	Relations []yamlRelation `json:"relations"`
}

type yamlRelation struct {
	Name         string   `json:"name"`
	InheritsFrom string   `json:"inheritsFrom,omitempty"`
	Description  string   `json:"description,omitempty"`
	SubjectTypes []string `json:"subjectTypes,omitempty"`
}

// LoadYAMLFile reads a namespace definition file in relcore's native
// YAML format and returns a validated Schema.
func LoadYAMLFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadableFile, path, err)
	}
	return LoadYAML(data)
}

// LoadYAML parses raw YAML bytes in relcore's native schema format.
func LoadYAML(data []byte) (*Schema, error) {
	var doc yamlSchema
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing schema yaml: %w", err)
	}
	if len(doc.Namespaces) == 0 {
		return nil, ErrEmptySchema
	}

	s := New()
	for _, ns := range doc.Namespaces {
		nd := NamespaceDefinition{
			Type:      model.ObjectType(ns.Type),
			Relations: make(map[model.Relation]RelationDefinition, len(ns.Relations)),
		}
		for _, rel := range ns.Relations {
			subjectTypes := make([]model.ObjectType, len(rel.SubjectTypes))
			for i, st := range rel.SubjectTypes {
				subjectTypes[i] = model.ObjectType(st)
			}
			nd.Relations[model.Relation(rel.Name)] = RelationDefinition{
				Name:         model.Relation(rel.Name),
				InheritsFrom: model.Relation(rel.InheritsFrom),
				Description:  rel.Description,
				SubjectTypes: subjectTypes,
			}
		}
		s.AddNamespace(nd)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

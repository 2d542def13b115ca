package server

import (
	"fmt"

	"github.com/nlorm/nlorm"
)

// ModelSpec is the wire form of a model definition. Relations are linked
// by target name so the payload stays acyclic even when the model graph
// is not.
type ModelSpec struct {
	Name   string      `json:"name" binding:"required"`
	Fields []FieldSpec `json:"fields"`
}

// FieldSpec is the wire form of one field. Exactly one of Type, Relation
// or Polymorphic is meaningful; a field with none of them set is treated
// as a plain field with an empty type tag.
type FieldSpec struct {
	Name        string `json:"name" binding:"required"`
	Type        string `json:"type,omitempty"`
	Relation    string `json:"relation,omitempty"`
	Polymorphic bool   `json:"polymorphic,omitempty"`
}

// ResolveModels links the flat list into the pointer graph the library
// traverses. Relation targets must name a model in the same list.
func ResolveModels(specs []ModelSpec) ([]*nlorm.Model, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("at least one model is required")
	}

	byName := make(map[string]*nlorm.Model, len(specs))
	models := make([]*nlorm.Model, 0, len(specs))
	for _, spec := range specs {
		if _, ok := byName[spec.Name]; ok {
			return nil, fmt.Errorf("duplicate model %q", spec.Name)
		}
		m := &nlorm.Model{Name: spec.Name}
		byName[spec.Name] = m
		models = append(models, m)
	}

	for i, spec := range specs {
		m := models[i]
		for _, f := range spec.Fields {
			switch {
			case f.Polymorphic:
				m.Fields = append(m.Fields, nlorm.Field{
					Name: f.Name,
					Kind: nlorm.FieldPolymorphic,
				})
			case f.Relation != "":
				target, ok := byName[f.Relation]
				if !ok {
					return nil, fmt.Errorf("model %q field %q references unknown model %q", spec.Name, f.Name, f.Relation)
				}
				m.Fields = append(m.Fields, nlorm.Field{
					Name:      f.Name,
					Kind:      nlorm.FieldRelation,
					RelatedTo: target,
				})
			default:
				m.Fields = append(m.Fields, nlorm.Field{
					Name: f.Name,
					Type: f.Type,
					Kind: nlorm.FieldPlain,
				})
			}
		}
	}
	return models, nil
}

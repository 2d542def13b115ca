// Package gormschema converts GORM model metadata into the describable
// model graph used by nlorm. It is the only place that knows anything
// about the host ORM's reflection API; everything downstream works on the
// tagged-variant field representation.
package gormschema

import (
	"fmt"
	"sync"

	"gorm.io/gorm/schema"

	"github.com/nlorm/nlorm"
)

// Parse reflects over the given GORM model structs and returns one
// nlorm.Model per input, in input order. Models reachable through
// associations share pointers in the result, so relation cycles keep
// their identity and the describer's visited-set works across inputs.
func Parse(dests ...interface{}) ([]*nlorm.Model, error) {
	cache := &sync.Map{}
	namer := schema.NamingStrategy{}
	seen := make(map[*schema.Schema]*nlorm.Model)

	models := make([]*nlorm.Model, 0, len(dests))
	for _, dest := range dests {
		s, err := schema.Parse(dest, cache, namer)
		if err != nil {
			return nil, fmt.Errorf("failed to parse model %T: %w", dest, err)
		}
		models = append(models, convert(s, seen))
	}
	return models, nil
}

// convert maps one parsed schema, registering it before walking its
// fields so self-referential and mutually-referential models resolve to
// the already-allocated definition.
func convert(s *schema.Schema, seen map[*schema.Schema]*nlorm.Model) *nlorm.Model {
	if m, ok := seen[s]; ok {
		return m
	}
	m := &nlorm.Model{Name: s.Name}
	seen[s] = m

	for _, f := range s.Fields {
		if rel, ok := s.Relationships.Relations[f.Name]; ok && rel.FieldSchema != nil {
			// GORM models polymorphism with a type tag + id column pair on
			// the owned side, which is exactly the dual-key convention the
			// describer documents.
			if rel.Polymorphic != nil {
				m.Fields = append(m.Fields, nlorm.Field{
					Name: f.Name,
					Kind: nlorm.FieldPolymorphic,
				})
				continue
			}
			m.Fields = append(m.Fields, nlorm.Field{
				Name:      f.Name,
				Kind:      nlorm.FieldRelation,
				RelatedTo: convert(rel.FieldSchema, seen),
			})
			continue
		}
		m.Fields = append(m.Fields, nlorm.Field{
			Name: f.Name,
			Type: fieldType(f),
			Kind: nlorm.FieldPlain,
		})
	}
	return m
}

func fieldType(f *schema.Field) string {
	if f.DataType != "" {
		return string(f.DataType)
	}
	return f.FieldType.String()
}

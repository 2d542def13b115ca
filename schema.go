// Package nlorm translates natural-language sentences into ORM queryset
// expressions using a locally hosted language model. It exposes two entry
// points: Describe, which flattens a set of model definitions into a
// textual schema, and Translate, which sends that schema plus the user's
// sentence to a chat endpoint and post-processes the reply into a query
// string.
package nlorm

import (
	"fmt"
	"strings"
)

// FieldKind discriminates the three shapes a model field can take.
type FieldKind int

const (
	// FieldPlain is a regular column carrying a storage-type tag.
	FieldPlain FieldKind = iota

	// FieldRelation references instances of one concrete model.
	FieldRelation

	// FieldPolymorphic references instances of any model, resolved through
	// a content-type tag paired with an object identifier.
	FieldPolymorphic
)

// Field is one declared field of a model.
type Field struct {
	Name string

	// Type is the storage-type tag. Only meaningful for plain fields.
	Type string

	Kind FieldKind

	// RelatedTo is the target of a FieldRelation. A relation field left
	// without a target is described as a plain field.
	RelatedTo *Model
}

// Model is the describable view of a persisted entity type. Instances are
// produced by a reflection adapter (see the gormschema package) or built
// by hand; this package only reads them.
type Model struct {
	Name   string
	Fields []Field
}

// Describe flattens the given models, and every model reachable through
// their relations, into a single human-readable schema block.
//
// Each model is described at most once per call no matter how many
// relation paths lead to it, so relation cycles terminate at the first
// re-encounter. Traversal is depth-first: input order, then field
// declaration order, then first-discovered order for related models.
func Describe(models []*Model) string {
	var b strings.Builder
	visited := make(map[*Model]bool)

	var describe func(m *Model)
	describe = func(m *Model) {
		if visited[m] {
			return
		}
		visited[m] = true

		fmt.Fprintf(&b, "Model: %s\n", m.Name)
		for _, f := range m.Fields {
			switch {
			case f.Kind == FieldPolymorphic:
				fmt.Fprintf(&b, "  - %s: generic relation (references any model via content_type and object_id, use %s__field_name for filtering)\n",
					f.Name, f.Name)
			case f.Kind == FieldRelation && f.RelatedTo != nil:
				fmt.Fprintf(&b, "  - %s: relation to %s (access via %s__field_name)\n",
					f.Name, f.RelatedTo.Name, f.Name)
				describe(f.RelatedTo)
			default:
				fmt.Fprintf(&b, "  - %s: %s\n", f.Name, f.Type)
			}
		}
		b.WriteString("\n")
	}

	for _, m := range models {
		describe(m)
	}
	return b.String()
}

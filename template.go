package nlorm

import (
	"fmt"
	"strings"
)

// The three substitution points every prompt template must carry.
const (
	SlotSchema     = "{schema}"
	SlotQuery      = "{query}"
	SlotStartModel = "{start_model}"
)

// PromptTemplate is a system-prompt template with three required named
// slots. Requiring the slots up front turns a missing substitution into a
// construction-time error instead of a silently wrong prompt at request
// time.
type PromptTemplate struct {
	text string
}

// NewPromptTemplate validates that text contains all three slots.
func NewPromptTemplate(text string) (*PromptTemplate, error) {
	for _, slot := range []string{SlotSchema, SlotQuery, SlotStartModel} {
		if !strings.Contains(text, slot) {
			return nil, fmt.Errorf("prompt template is missing required slot %s", slot)
		}
	}
	return &PromptTemplate{text: text}, nil
}

// Render fills the three slots and returns the finished prompt.
func (t *PromptTemplate) Render(schema, query, startModel string) string {
	return strings.NewReplacer(
		SlotSchema, schema,
		SlotQuery, query,
		SlotStartModel, startModel,
	).Replace(t.text)
}

// defaultTemplate is used when Options.Template is nil. It does not embed
// the natural-language text in the system prompt; that travels as the
// user message.
var defaultTemplate = &PromptTemplate{text: `You are an expert in ORM queryset expressions.
Given this schema (with relations):

{schema}

Convert the natural language to a valid ORM query string.
- Start with {start_model}.objects
- Use ALL queryset methods as needed: filter/exclude/get/all/order_by/distinct/values/values_list/only/defer/update/delete
- Advanced lookups: __gt/__lte/__in/__range/__contains/__startswith/__year
- Complex logic: Q objects (e.g., Q(field__gt=100) & ~Q(other=False))
- Field-to-field comparisons: F expressions (e.g., filter(score__gt=F('attempts')))
- Subqueries: Subquery/Exists/OuterRef/When/Case
- Aggregates: Avg/Sum/Max/Min/Count with annotate/aggregate
- Relations: joins via __, select_related/prefetch_related
- Mutations: use .update/.delete if implied
- Imports: prefix with 'from db.models import ...' for Q/F/Subquery/aggregates when used
- For generic relations: filter on content_type and object_id (e.g., filter(content_type__model='modelname', object_id__in=[...]))
- Output ONLY the query string, executable as-is, with no commentary.`}

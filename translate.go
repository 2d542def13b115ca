package nlorm

import (
	"context"
	"fmt"
	"strings"

	"github.com/nlorm/nlorm/grammar"
	"github.com/nlorm/nlorm/llm"
)

// Defaults applied by Translate when the corresponding Options field is
// left at its zero value.
const (
	DefaultModel       = "mistral:instruct"
	DefaultTemperature = 0.2
	DefaultMaxTokens   = 500
)

// Options tunes a single translation. The zero value selects the package
// defaults with syntax validation enabled.
type Options struct {
	// Model is the chat-endpoint model identifier.
	Model string

	// Template overrides the built-in system prompt. It must carry the
	// {schema}, {query} and {start_model} slots (see NewPromptTemplate).
	Template *PromptTemplate

	// Temperature controls decoding determinism. Nil selects the package
	// default; a pointer to 0 requests fully deterministic decoding.
	Temperature *float64

	// MaxTokens caps the generated output length.
	MaxTokens int

	// SkipValidation returns the extracted reply without parsing it.
	SkipValidation bool
}

// Translate converts a natural-language instruction into a query string
// expressed against the first model in the list. The remaining models,
// and every model reachable through relations, only inform the schema
// handed to the language model.
//
// The only error this package produces itself is *SyntaxError, returned
// when validation is enabled and the extracted reply does not parse as a
// standalone query expression. Anything the chat client fails with
// propagates unmodified; there is no retry and no timeout policy here.
func Translate(ctx context.Context, client llm.Client, models []*Model, query string, opts Options) (string, error) {
	if len(models) == 0 {
		return "", fmt.Errorf("at least one model definition is required")
	}

	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	temperature := DefaultTemperature
	if opts.Temperature != nil {
		temperature = *opts.Temperature
	}
	if opts.MaxTokens == 0 {
		opts.MaxTokens = DefaultMaxTokens
	}

	schema := Describe(models)
	startModel := models[0].Name

	tmpl := opts.Template
	if tmpl == nil {
		tmpl = defaultTemplate
	}
	system := tmpl.Render(schema, query, startModel)

	resp, err := client.Chat(ctx, llm.ChatRequest{
		Model: opts.Model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: system},
			{Role: llm.RoleUser, Content: query},
		},
		Options: llm.DecodingOptions{
			Temperature: temperature,
			NumPredict:  opts.MaxTokens,
		},
	})
	if err != nil {
		return "", err
	}

	generated := stripMarkup(strings.TrimSpace(resp.Message.Content))

	if !opts.SkipValidation {
		if _, err := grammar.Parse(generated); err != nil {
			return "", &SyntaxError{Candidate: generated, Err: err}
		}
	}
	return generated, nil
}

// TranslateModel is Translate for the common single-model case.
func TranslateModel(ctx context.Context, client llm.Client, model *Model, query string, opts Options) (string, error) {
	return Translate(ctx, client, []*Model{model}, query, opts)
}

// stripMarkup removes the one layer of reply formatting the model is
// known to add: a fenced code block with an optional language tag, or a
// single inline-code wrapper. Exactly these two shapes are recognized,
// one at a time, and only when the marker opens the trimmed reply.
func stripMarkup(s string) string {
	if strings.HasPrefix(s, "```") {
		body := s[len("```"):]
		if end := strings.Index(body, "```"); end >= 0 {
			body = body[:end]
		}
		if nl := strings.IndexByte(body, '\n'); nl >= 0 && isLanguageTag(body[:nl]) {
			body = body[nl+1:]
		}
		return strings.TrimSpace(body)
	}
	if strings.HasPrefix(s, "`") {
		return strings.TrimSpace(strings.Trim(s, "`"))
	}
	return s
}

// isLanguageTag reports whether the first fence line is a language tag
// rather than query text. An empty first line counts as a bare fence.
func isLanguageTag(line string) bool {
	line = strings.TrimSpace(line)
	for _, r := range line {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '+' || r == '-' || r == '_':
		default:
			return false
		}
	}
	return true
}

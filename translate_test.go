package nlorm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlorm/nlorm/llm"
)

// fakeClient replays a canned reply and records the request it received.
type fakeClient struct {
	reply string
	err   error
	got   llm.ChatRequest
}

func (f *fakeClient) Chat(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &llm.ChatResponse{
		Model:   req.Model,
		Message: llm.Message{Role: llm.RoleAssistant, Content: f.reply},
		Done:    true,
	}, nil
}

func testModels() []*Model {
	return []*Model{
		{
			Name: "Candidate",
			Fields: []Field{
				{Name: "id", Type: "int", Kind: FieldPlain},
				{Name: "score", Type: "float", Kind: FieldPlain},
			},
		},
	}
}

func TestTranslateDefaults(t *testing.T) {
	client := &fakeClient{reply: "Candidate.objects.all()"}

	out, err := Translate(context.Background(), client, testModels(), "all candidates", Options{})
	require.NoError(t, err)
	assert.Equal(t, "Candidate.objects.all()", out)

	assert.Equal(t, DefaultModel, client.got.Model)
	assert.Equal(t, DefaultTemperature, client.got.Options.Temperature)
	assert.Equal(t, DefaultMaxTokens, client.got.Options.NumPredict)

	require.Len(t, client.got.Messages, 2)
	assert.Equal(t, llm.RoleSystem, client.got.Messages[0].Role)
	assert.Equal(t, llm.RoleUser, client.got.Messages[1].Role)
	assert.Equal(t, "all candidates", client.got.Messages[1].Content)
	assert.Contains(t, client.got.Messages[0].Content, "Model: Candidate")
	assert.Contains(t, client.got.Messages[0].Content, "Candidate.objects")
}

func TestTranslateOverrides(t *testing.T) {
	client := &fakeClient{reply: "Candidate.objects.all()"}
	tmpl, err := NewPromptTemplate("S={schema} Q={query} M={start_model}")
	require.NoError(t, err)

	temperature := 0.7
	_, err = Translate(context.Background(), client, testModels(), "all candidates", Options{
		Model:       "llama3:8b",
		Template:    tmpl,
		Temperature: &temperature,
		MaxTokens:   128,
	})
	require.NoError(t, err)

	assert.Equal(t, "llama3:8b", client.got.Model)
	assert.Equal(t, 0.7, client.got.Options.Temperature)
	assert.Equal(t, 128, client.got.Options.NumPredict)
	assert.Contains(t, client.got.Messages[0].Content, "Q=all candidates")
	assert.Contains(t, client.got.Messages[0].Content, "M=Candidate")
}

func TestTranslateExplicitZeroTemperature(t *testing.T) {
	client := &fakeClient{reply: "Candidate.objects.all()"}
	temperature := 0.0

	_, err := Translate(context.Background(), client, testModels(), "all candidates", Options{
		Temperature: &temperature,
	})
	require.NoError(t, err)

	// A pointer to zero is an explicit request for deterministic
	// decoding, not an unset field.
	assert.Equal(t, 0.0, client.got.Options.Temperature)
}

func TestTranslateNoModels(t *testing.T) {
	client := &fakeClient{reply: "irrelevant"}

	_, err := Translate(context.Background(), client, nil, "anything", Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one model")
}

func TestTranslateStripsMarkup(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  string
	}{
		{
			name:  "plain reply",
			reply: "Candidate.objects.filter(score__gt=5)",
			want:  "Candidate.objects.filter(score__gt=5)",
		},
		{
			name:  "surrounding whitespace",
			reply: "  Candidate.objects.all()\n",
			want:  "Candidate.objects.all()",
		},
		{
			name:  "fenced with language tag",
			reply: "```python\nCandidate.objects.filter(score__gt=5)\n```",
			want:  "Candidate.objects.filter(score__gt=5)",
		},
		{
			name:  "bare fence",
			reply: "```\nCandidate.objects.filter(score__gt=5)\n```",
			want:  "Candidate.objects.filter(score__gt=5)",
		},
		{
			name:  "single-line fence",
			reply: "```Candidate.objects.all()```",
			want:  "Candidate.objects.all()",
		},
		{
			name:  "fence with query on the first line",
			reply: "```Candidate.objects.filter(score__gt=5)\n```",
			want:  "Candidate.objects.filter(score__gt=5)",
		},
		{
			name:  "inline code",
			reply: "`Candidate.objects.all()`",
			want:  "Candidate.objects.all()",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{reply: tt.reply}
			out, err := Translate(context.Background(), client, testModels(), "q", Options{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestTranslateSyntaxError(t *testing.T) {
	client := &fakeClient{reply: "Candidate.objects.filter(score__gt=5"}

	_, err := Translate(context.Background(), client, testModels(), "q", Options{})
	require.Error(t, err)

	var synErr *SyntaxError
	require.ErrorAs(t, err, &synErr)
	assert.Equal(t, "Candidate.objects.filter(score__gt=5", synErr.Candidate)
	// The message carries both the parser diagnostic and the full
	// candidate text.
	assert.Contains(t, err.Error(), "invalid query syntax")
	assert.Contains(t, err.Error(), "Candidate.objects.filter(score__gt=5")
}

func TestTranslateSkipValidation(t *testing.T) {
	client := &fakeClient{reply: "not a ( parsable ] query"}

	out, err := Translate(context.Background(), client, testModels(), "q", Options{SkipValidation: true})
	require.NoError(t, err)
	assert.Equal(t, "not a ( parsable ] query", out)
}

func TestTranslateClientErrorPropagates(t *testing.T) {
	sentinel := errors.New("connection refused")
	client := &fakeClient{err: sentinel}

	_, err := Translate(context.Background(), client, testModels(), "q", Options{})
	require.ErrorIs(t, err, sentinel)

	var synErr *SyntaxError
	assert.False(t, errors.As(err, &synErr))
}

func TestTranslateModel(t *testing.T) {
	client := &fakeClient{reply: "Candidate.objects.all()"}

	out, err := TranslateModel(context.Background(), client, testModels()[0], "all candidates", Options{})
	require.NoError(t, err)
	assert.Equal(t, "Candidate.objects.all()", out)
	assert.Contains(t, client.got.Messages[0].Content, "Model: Candidate")
}

package parse

import (
	"context"
	"errors"
	"testing"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLLM returns a canned response or error.
type fakeLLM struct {
	response string
	err      error
}

func (f *fakeLLM) GenerateJSON(_ context.Context, _ string) (string, error) {
	return f.response, f.err
}

func (f *fakeLLM) Close() error { return nil }

func TestParser_File_LLMRefinement(t *testing.T) {
	client := &fakeLLM{response: `{
		"personalInfo": {
			"name": {"value": "Ada King, Countess of Lovelace", "confidence": 0.92}
		},
		"skills": [{"value": "Mathematics", "confidence": 0.9}]
	}`}
	parser := New(client)

	parsed, err := parser.File(context.Background(), "resume.txt", []byte(sampleResume))
	require.NoError(t, err)

	assert.Equal(t, "Ada King, Countess of Lovelace", parsed.PersonalInfo.Name.Value, "model output wins for the name")
	assert.True(t, parsed.PersonalInfo.Name.Selected)
	assert.Equal(t, "ada@example.com", parsed.PersonalInfo.Email.Value, "regex email survives the merge")
	require.Len(t, parsed.Skills, 1)
	assert.Equal(t, "Mathematics", parsed.Skills[0].Value)
	assert.NotEmpty(t, parsed.Experience, "sections the model left empty keep heuristic results")
}

func TestParser_File_LLMFailureIsNonFatal(t *testing.T) {
	parser := New(&fakeLLM{err: errors.New("quota exceeded")})

	parsed, err := parser.File(context.Background(), "resume.txt", []byte(sampleResume))
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", parsed.PersonalInfo.Name.Value, "heuristic result stands")
}

func TestParser_File_LLMMalformedOutputIsNonFatal(t *testing.T) {
	parser := New(&fakeLLM{response: "not json"})

	parsed, err := parser.File(context.Background(), "resume.txt", []byte(sampleResume))
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", parsed.PersonalInfo.Name.Value)
}

func TestClamp(t *testing.T) {
	parsed := types.ParsedResume{
		PersonalInfo: types.ParsedPersonalInfo{
			Name:  types.ParsedField[string]{Value: "Ada", Confidence: 1.5},
			Email: types.ParsedField[string]{Value: "", Confidence: 0.9},
		},
		Skills: []types.ParsedField[string]{
			{Value: "Go", Confidence: -0.2},
		},
	}
	clamp(&parsed)

	assert.Equal(t, 1.0, parsed.PersonalInfo.Name.Confidence)
	assert.True(t, parsed.PersonalInfo.Name.Selected)
	assert.False(t, parsed.PersonalInfo.Email.Selected, "empty value is never pre-selected")
	assert.Equal(t, 0.0, parsed.Skills[0].Confidence)
	assert.False(t, parsed.Skills[0].Selected)
}

func TestMerge_PrefersHigherConfidenceContact(t *testing.T) {
	heuristic := types.ParsedResume{
		PersonalInfo: types.ParsedPersonalInfo{
			Email: types.ParsedField[string]{Value: "ada@example.com", Confidence: 0.95, Selected: true},
		},
	}
	refined := types.ParsedResume{
		PersonalInfo: types.ParsedPersonalInfo{
			Email: types.ParsedField[string]{Value: "wrong@example.com", Confidence: 0.6},
		},
	}

	out := merge(heuristic, refined)
	assert.Equal(t, "ada@example.com", out.PersonalInfo.Email.Value)
}

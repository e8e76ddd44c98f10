package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_PriorityKeys(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "content key", input: `{"content": "X"}`, expected: "X"},
		{name: "text key", input: `{"text": "X"}`, expected: "X"},
		{name: "output key", input: `{"output": "X"}`, expected: "X"},
		{name: "value is trimmed", input: `{"content": "  X \n"}`, expected: "X"},
		{name: "text wins over content", input: `{"content": "B", "text": "A"}`, expected: "A"},
		{name: "content wins over output", input: `{"output": "C", "content": "B"}`, expected: "B"},
		{name: "falsy text skipped", input: `{"text": "", "content": "B"}`, expected: "B"},
		{name: "null text skipped", input: `{"text": null, "output": "C"}`, expected: "C"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalize_Arrays(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "first element only", input: `[{"content": "X"}, {"content": "Y"}]`, expected: "X"},
		{name: "array of strings", input: `["first", "second"]`, expected: "first"},
		{name: "nested arrays", input: `[[{"text": "deep"}]]`, expected: "deep"},
		{name: "empty array degrades to text", input: `[]`, expected: "[]"},
		{name: "n8n item shape", input: `[{"output": {"content": {"text": "Copy"}}}]`, expected: "Copy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalize_EncodedStrings(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json string holding an object",
			input:    `"{\"content\":\"X\"}"`,
			expected: "X",
		},
		{
			name:     "json string holding an array",
			input:    `"[{\"text\":\"X\"}]"`,
			expected: "X",
		},
		{
			name:     "plain json string",
			input:    `"Just copy"`,
			expected: "Just copy",
		},
		{
			name:     "inner string double encoded",
			input:    `{"output": "{\"content\":\"Y\"}"}`,
			expected: "Y",
		},
		{
			name:     "text holding encoded content",
			input:    `{"text": "{\"content\": \"  Y  \"}"}`,
			expected: "Y",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalize_PlainText(t *testing.T) {
	assert.Equal(t, "Hello world", Normalize("Hello world"))
	assert.Equal(t, "Hello world", Normalize("  Hello world\n\n"))
	assert.Equal(t, "{not json", Normalize("{not json"))
	assert.Equal(t, "", Normalize(""))
}

func TestNormalize_DegradedObject(t *testing.T) {
	assert.Equal(t, `{"foo":"bar"}`, Normalize(`{"foo":"bar"}`))
	assert.Equal(t, `{"b":1,"a":[1,2]}`, Normalize("{\n  \"b\": 1,\n  \"a\": [1, 2]\n}"))
	assert.Equal(t, `{"text":""}`, Normalize(`{"text": ""}`))
}

func TestNormalize_Scalars(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "number", input: `42`, expected: "42"},
		{name: "true", input: `true`, expected: "true"},
		{name: "null falls back to raw", input: `null`, expected: "null"},
		{name: "zero falls back to raw", input: `0`, expected: "0"},
		{name: "empty string falls back to raw", input: `""`, expected: `""`},
		{name: "number under content", input: `{"content": 7}`, expected: "7"},
		{name: "number keeps its JSON text", input: `1.50`, expected: "1.50"},
		{name: "nested number keeps its JSON text", input: `{"content": 1.50}`, expected: "1.50"},
		{name: "string holding null is returned as is", input: `{"text": "null"}`, expected: "null"},
		{name: "string holding a number is returned as is", input: `{"text": "12"}`, expected: "12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalize_NeverPanics(t *testing.T) {
	inputs := []string{
		`{"text": {"content": {"output": null}}}`,
		`[null]`,
		`[[], []]`,
		`"\"nested\""`,
		`{"content": [1, {"text": false}]}`,
		"\x00\x01",
		`{"text": "[]"}`,
	}

	for _, input := range inputs {
		assert.NotPanics(t, func() { _ = Normalize(input) }, input)
	}
}

func TestStripChannelHeaders(t *testing.T) {
	content := "\n\nThree rooms, one stay..."
	headers := []string{
		"*===WEBSITE - Region ===*",
		"=== WEBSITE - GLOBAL ===",
		"=== WEBSITE - REGION ===",
		"==== website - Asia ====",
	}

	for _, header := range headers {
		t.Run(header, func(t *testing.T) {
			assert.Equal(t, "Three rooms, one stay...", StripChannelHeaders(header+content))
		})
	}

	assert.Equal(t, "No header here", StripChannelHeaders("  No header here "))
	assert.Equal(t, "== WEBSITE - short ==\nbody", StripChannelHeaders("== WEBSITE - short ==\nbody"))
}

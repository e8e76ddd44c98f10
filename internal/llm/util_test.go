package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain text", input: "  Summer is here.  ", expected: "Summer is here."},
		{name: "generic fence", input: "```\nSummer is here.\n```", expected: "Summer is here."},
		{name: "fence with language", input: "```markdown\n# Summer\nStay longer.\n```", expected: "# Summer\nStay longer."},
		{name: "fence without newline", input: "```Summer is here.```", expected: "Summer is here."},
		{name: "first line is copy", input: "```Stay three nights\nPay two\n```", expected: "Stay three nights\nPay two"},
		{name: "fence in the middle is kept", input: "Intro\n```\ncode\n```", expected: "Intro\n```\ncode\n```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripCodeFence(tt.input))
		})
	}
}

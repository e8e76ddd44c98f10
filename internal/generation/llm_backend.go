package generation

import (
	"context"

	"github.com/jonathan/wordsmithery/internal/llm"
	"github.com/jonathan/wordsmithery/internal/prompts"
	"github.com/jonathan/wordsmithery/internal/types"
)

// LLMBackend drafts copy by prompting a model directly instead of calling the webhook
type LLMBackend struct {
	client llm.Client
	tier   llm.ModelTier
}

// NewLLMBackend wraps client; copy is drafted on the standard tier
func NewLLMBackend(client llm.Client) *LLMBackend {
	return &LLMBackend{client: client, tier: llm.TierStandard}
}

// Generate implements Backend
func (b *LLMBackend) Generate(ctx context.Context, req types.GenerationRequest) (string, error) {
	text, err := b.client.GenerateContent(ctx, BuildPrompt(req), b.tier)
	if err != nil {
		return "", err
	}
	return llm.StripCodeFence(text), nil
}

// BuildPrompt fills the drafting template with the request fields
func BuildPrompt(req types.GenerationRequest) string {
	return prompts.MustRender("generation.json", "draft-marketing-copy", req)
}

package generation

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jonathan/wordsmithery/internal/llm"
	"github.com/jonathan/wordsmithery/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	calls     []types.GenerationRequest
	responses map[string]string
	failOn    string
}

func (f *fakeBackend) Generate(_ context.Context, req types.GenerationRequest) (string, error) {
	f.calls = append(f.calls, req)
	if req.Region == f.failOn {
		return "", errors.New("Generation Engine Error (500): boom")
	}
	if body, ok := f.responses[req.Region]; ok {
		return body, nil
	}
	return fmt.Sprintf(`{"content": "Copy for %s"}`, req.Region), nil
}

type fakeTones struct {
	profiles []types.ToneProfile
	err      error
}

func (f *fakeTones) Get(_ context.Context, id string) (types.ToneProfile, error) {
	if f.err != nil {
		return types.ToneProfile{}, f.err
	}
	if p := types.FindTone(f.profiles, id); p != nil {
		return *p, nil
	}
	return f.profiles[0], nil
}

func defaultTones() *fakeTones {
	return &fakeTones{profiles: []types.ToneProfile{
		{ID: "toneA", Name: "Parent Brand", Description: "measured"},
		{ID: "toneB", Name: "M Social", Description: "playful"},
	}}
}

func fixedClock() time.Time {
	return time.UnixMilli(1767225600123)
}

func validSelection(regions ...string) types.Selection {
	return types.Selection{
		ToneID:    "toneB",
		Regions:   regions,
		Promotion: "Summer Promotion",
		Details:   "Stay 3 nights, pay 2",
	}
}

func TestRun_NoCallWhenNotReady(t *testing.T) {
	tests := []struct {
		name string
		sel  types.Selection
	}{
		{name: "no regions", sel: validSelection()},
		{name: "blank details", sel: types.Selection{ToneID: "toneA", Regions: []string{"Asia"}, Details: "   \n"}},
		{name: "empty details", sel: types.Selection{ToneID: "toneA", Regions: []string{"Asia"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &fakeBackend{}
			runner := NewRunner(backend, defaultTones(), Options{})

			var events []types.Progress
			results, err := runner.Run(context.Background(), tt.sel, func(p types.Progress) { events = append(events, p) })

			assert.NoError(t, err)
			assert.Nil(t, results)
			assert.Empty(t, backend.calls)
			assert.Empty(t, events)
			assert.False(t, CanGenerate(tt.sel))
		})
	}
}

func TestRun_SequentialInOrder(t *testing.T) {
	backend := &fakeBackend{}
	runner := NewRunner(backend, defaultTones(), Options{Now: fixedClock})

	var events []types.Progress
	results, err := runner.Run(context.Background(), validSelection("Asia", "Europe", "Global"), func(p types.Progress) {
		events = append(events, p)
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, []types.Progress{
		{Current: 0, Total: 3, Region: "Asia"},
		{Current: 1, Total: 3, Region: "Asia"},
		{Current: 2, Total: 3, Region: "Europe"},
		{Current: 3, Total: 3, Region: "Global"},
	}, events)

	for i, region := range []string{"Asia", "Europe", "Global"} {
		assert.Equal(t, region, backend.calls[i].Region)
		assert.Equal(t, "M Social", backend.calls[i].ToneName)
		assert.Equal(t, "playful", backend.calls[i].ToneDescription)
		assert.Equal(t, "Summer Promotion", backend.calls[i].Promotion)
		assert.Equal(t, "Stay 3 nights, pay 2", backend.calls[i].Details)

		assert.Equal(t, region, results[i].Region)
		assert.Equal(t, "M Social", results[i].Tone)
		assert.Equal(t, "Summer Promotion", results[i].Promotion)
		assert.Equal(t, "Copy for "+region, results[i].Content)
		assert.Equal(t, region+"-1767225600123", results[i].ID)
	}
}

func TestRun_FailureDiscardsResults(t *testing.T) {
	backend := &fakeBackend{failOn: "Europe"}
	runner := NewRunner(backend, defaultTones(), Options{})

	results, err := runner.Run(context.Background(), validSelection("Asia", "Europe", "Global"), nil)
	assert.Nil(t, results)
	require.Error(t, err)

	var batchErr *BatchError
	require.ErrorAs(t, err, &batchErr)
	assert.Equal(t, "Europe", batchErr.Region)
	assert.Equal(t, 1, batchErr.Index)
	assert.Equal(t, 3, batchErr.Total)
	assert.Contains(t, err.Error(), "region Europe (2 of 3)")

	// Third region is never attempted
	assert.Len(t, backend.calls, 2)
	assert.Equal(t, UserMessage, UserFacing(err))
}

func TestRun_NormalizesAndStripsHeaders(t *testing.T) {
	backend := &fakeBackend{responses: map[string]string{
		"Asia":   `[{"output": "=== WEBSITE - ASIA ===\n\nLantern nights"}]`,
		"Europe": `"{\"text\": \"  Alpine mornings  \"}"`,
	}}

	stripping := NewRunner(backend, defaultTones(), Options{StripHeaders: true})
	results, err := stripping.Run(context.Background(), validSelection("Asia", "Europe"), nil)
	require.NoError(t, err)
	assert.Equal(t, "Lantern nights", results[0].Content)
	assert.Equal(t, "Alpine mornings", results[1].Content)

	keeping := NewRunner(backend, defaultTones(), Options{StripHeaders: false})
	results, err = keeping.Run(context.Background(), validSelection("Asia"), nil)
	require.NoError(t, err)
	assert.Equal(t, "=== WEBSITE - ASIA ===\n\nLantern nights", results[0].Content)
}

func TestRun_UnknownToneFallsBack(t *testing.T) {
	backend := &fakeBackend{}
	runner := NewRunner(backend, defaultTones(), Options{})

	sel := validSelection("Asia")
	sel.ToneID = "toneZ"
	results, err := runner.Run(context.Background(), sel, nil)
	require.NoError(t, err)
	assert.Equal(t, "Parent Brand", results[0].Tone)
}

func TestRun_ToneSourceError(t *testing.T) {
	backend := &fakeBackend{}
	runner := NewRunner(backend, &fakeTones{err: errors.New("store offline")}, Options{})

	results, err := runner.Run(context.Background(), validSelection("Asia"), nil)
	assert.Nil(t, results)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store offline")
	assert.Empty(t, backend.calls)
}

func TestUserFacing_Nil(t *testing.T) {
	assert.Equal(t, "", UserFacing(nil))
}

type fakeLLM struct {
	prompt string
	tier   llm.ModelTier
	text   string
	err    error
}

func (f *fakeLLM) GenerateContent(_ context.Context, prompt string, tier llm.ModelTier) (string, error) {
	f.prompt = prompt
	f.tier = tier
	return f.text, f.err
}

func (f *fakeLLM) GetModel(llm.ModelTier) string { return "fake" }

func (f *fakeLLM) Close() error { return nil }

func TestLLMBackend_Generate(t *testing.T) {
	client := &fakeLLM{text: "```\nSunlit terraces await.\n```"}
	backend := NewLLMBackend(client)

	body, err := backend.Generate(context.Background(), types.GenerationRequest{
		ToneName:        "Parent Brand",
		ToneDescription: "measured",
		Region:          "Middle East",
		Promotion:       "Winter Promotion",
		Details:         "Free breakfast",
	})
	require.NoError(t, err)
	assert.Equal(t, "Sunlit terraces await.", body)
	assert.Equal(t, llm.TierStandard, client.tier)
	assert.Contains(t, client.prompt, "Brand tone: Parent Brand")
	assert.Contains(t, client.prompt, "Target region: Middle East")
	assert.Contains(t, client.prompt, "Free breakfast")
	assert.NotContains(t, client.prompt, "{{.")
}

func TestLLMBackend_Error(t *testing.T) {
	backend := NewLLMBackend(&fakeLLM{err: errors.New("quota")})
	_, err := backend.Generate(context.Background(), types.GenerationRequest{Region: "Asia"})
	assert.EqualError(t, err, "quota")
}

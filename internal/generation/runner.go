// Package generation drives one drafting batch: a sequential call per selected region.
package generation

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jonathan/wordsmithery/internal/normalize"
	"github.com/jonathan/wordsmithery/internal/types"
)

// Backend turns a GenerationRequest into a raw response body
type Backend interface {
	Generate(ctx context.Context, req types.GenerationRequest) (string, error)
}

// ToneSource resolves the tone profile for a selection
type ToneSource interface {
	Get(ctx context.Context, id string) (types.ToneProfile, error)
}

// ProgressCallback is called before each region's call
type ProgressCallback func(progress types.Progress)

// Options configures a Runner
type Options struct {
	// StripHeaders removes decorative channel headers from every result
	StripHeaders bool
	Now          func() time.Time
}

// Runner executes generation batches
type Runner struct {
	backend      Backend
	tones        ToneSource
	stripHeaders bool
	now          func() time.Time
}

// NewRunner creates a Runner over backend and the tone source
func NewRunner(backend Backend, tones ToneSource, opts Options) *Runner {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Runner{
		backend:      backend,
		tones:        tones,
		stripHeaders: opts.StripHeaders,
		now:          now,
	}
}

// CanGenerate reports whether Run would issue any call for sel
func CanGenerate(sel types.Selection) bool {
	return sel.Ready()
}

// Run generates copy for every region in sel, one call at a time and in order.
// A selection that is not ready is a no-op returning nil, nil.
// Any failing call discards all results gathered so far and returns a *BatchError.
func (r *Runner) Run(ctx context.Context, sel types.Selection, onProgress ProgressCallback) ([]types.GenerationResult, error) {
	if !CanGenerate(sel) {
		return nil, nil
	}
	if onProgress == nil {
		onProgress = func(types.Progress) {}
	}

	tone, err := r.tones.Get(ctx, sel.ToneID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tone %q: %w", sel.ToneID, err)
	}

	total := len(sel.Regions)
	onProgress(types.Progress{Current: 0, Total: total, Region: sel.Regions[0]})

	results := make([]types.GenerationResult, 0, total)
	for i, region := range sel.Regions {
		onProgress(types.Progress{Current: i + 1, Total: total, Region: region})

		req := types.GenerationRequest{
			ToneName:        tone.Name,
			ToneDescription: tone.Description,
			Region:          region,
			Promotion:       sel.Promotion,
			Details:         sel.Details,
		}

		raw, err := r.backend.Generate(ctx, req)
		if err != nil {
			log.Printf("[generation] region %s (%d/%d) failed: %v", region, i+1, total, err)
			return nil, &BatchError{Region: region, Index: i, Total: total, Cause: err}
		}

		content := normalize.Normalize(raw)
		if r.stripHeaders {
			content = normalize.StripChannelHeaders(content)
		}

		results = append(results, types.GenerationResult{
			ID:        fmt.Sprintf("%s-%d", region, r.now().UnixMilli()),
			Region:    region,
			Tone:      tone.Name,
			Promotion: sel.Promotion,
			Content:   content,
		})
	}

	return results, nil
}

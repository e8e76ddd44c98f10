package fetch

import (
	"context"
	"log"
	"strings"
	"unicode/utf8"
)

// MaxBriefLength caps the page text handed to generation as campaign details
const MaxBriefLength = 6000

// RenderFunc renders a page and returns its HTML
type RenderFunc func(ctx context.Context, url string) (string, error)

// BriefOptions configures brief extraction from a landing page.
type BriefOptions struct {
	Fetch Options
	// UseBrowser renders the page first instead of using it as a fallback
	UseBrowser bool
	Verbose    bool
	// Render overrides headless Chrome rendering
	Render RenderFunc
}

// Brief fetches a campaign landing page and returns its offer text.
// Pages whose static HTML yields too little text are rendered in a headless browser.
func Brief(ctx context.Context, url string, opts BriefOptions) (string, error) {
	render := opts.Render
	if render == nil {
		render = func(ctx context.Context, url string) (string, error) {
			return Render(ctx, url, opts.Verbose)
		}
	}

	if opts.UseBrowser {
		html, err := render(ctx, url)
		if err != nil {
			return "", &Error{URL: url, Message: "browser rendering failed", Cause: err}
		}
		return extractBrief(html)
	}

	page, err := Get(ctx, url, opts.Fetch)
	if err != nil {
		return "", err
	}
	text, err := extractBrief(page.HTML)
	if err != nil {
		return "", err
	}
	if !NeedsRender(text) {
		return text, nil
	}

	if opts.Verbose {
		log.Printf("[fetch] %s yielded %d chars, retrying with browser", url, len(text))
	}
	html, err := render(ctx, url)
	if err != nil {
		// Thin static text beats none
		log.Printf("[fetch] browser fallback failed for %s: %v", url, err)
		return text, nil
	}
	rendered, err := extractBrief(html)
	if err != nil || len(rendered) < len(text) {
		return text, nil
	}
	return rendered, nil
}

func extractBrief(html string) (string, error) {
	text, err := ExtractText(html)
	if err != nil {
		return "", err
	}
	return truncate(text, MaxBriefLength), nil
}

// truncate cuts text at a line boundary at or before limit bytes, never inside a rune
func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	end := limit
	for end > 0 && !utf8.RuneStart(text[end]) {
		end--
	}
	cut := text[:end]
	if idx := strings.LastIndex(cut, "\n"); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimSpace(cut)
}

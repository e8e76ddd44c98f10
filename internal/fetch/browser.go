package fetch

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// MinStaticText is the shortest static text accepted before a page is treated as script-rendered
const MinStaticText = 500

// RenderTimeout bounds a single headless render
const RenderTimeout = 30 * time.Second

// settleDelay gives client-side scripts time to fill in offer text
const settleDelay = 2 * time.Second

// NeedsRender reports whether static text is too thin to be the real page
func NeedsRender(text string) bool {
	return len(strings.TrimSpace(text)) < MinStaticText
}

// Render loads url in headless Chrome and returns the HTML after scripts have run.
// Chrome or Chromium must be installed.
func Render(ctx context.Context, url string, verbose bool) (string, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(UserAgent),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, RenderTimeout)
	defer cancelTimeout()

	start := time.Now()
	var html string
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(settleDelay),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", url, err)
	}

	if verbose {
		log.Printf("[browser] rendered %s in %v (%d bytes)", url, time.Since(start).Round(time.Millisecond), len(html))
	}
	return html, nil
}

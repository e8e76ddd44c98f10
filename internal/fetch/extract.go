package fetch

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// offerSelectors locate the offer body on hotel landing pages, most specific first
var offerSelectors = []string{
	".offer-details",
	".offer-content",
	".promotion-details",
	"#offer",
	"[data-testid='offer-description']",
	"main",
	"article",
	"#content",
	".content",
}

// noiseSelector matches elements that never carry campaign facts
const noiseSelector = "script, style, noscript, iframe, svg, nav, header, footer, form, " +
	".booking-widget, .newsletter, .language-selector, .cookie-banner, [role='dialog']"

// blockSelector matches elements whose text becomes one output line
const blockSelector = "h1, h2, h3, h4, p, li, dt, dd, td, blockquote"

// ExtractText returns the offer text of an HTML page, one block per line.
// Repeated lines are dropped.
func ExtractText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	doc.Find(noiseSelector).Remove()

	root := doc.Find("body")
	for _, selector := range offerSelectors {
		if s := doc.Find(selector).First(); s.Length() > 0 {
			root = s
			break
		}
	}

	lines := blockLines(root)
	if len(lines) == 0 {
		lines = strings.Split(root.Text(), "\n")
	}
	return strings.Join(dedupe(lines), "\n"), nil
}

// blockLines collects the text of innermost block elements in document order
func blockLines(root *goquery.Selection) []string {
	var lines []string
	root.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		if s.Find(blockSelector).Length() > 0 {
			return
		}
		lines = append(lines, s.Text())
	})
	return lines
}

func dedupe(lines []string) []string {
	seen := make(map[string]bool, len(lines))
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" || seen[line] {
			continue
		}
		seen[line] = true
		out = append(out, line)
	}
	return out
}

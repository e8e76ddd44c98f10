// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/wordsmithery/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxLinesToShow caps how much of a result is echoed in verbose mode
	maxLinesToShow = 12
	// descriptionPreview is how many characters of a tone description are listed
	descriptionPreview = 80
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		for _, wrapped := range wrap(line, boxWidth-4) {
			fmt.Fprintf(p.out, "│ %s%s │\n", wrapped, strings.Repeat(" ", boxWidth-4-runeLen(wrapped)))
		}
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintProgress outputs a single progress line for a running batch.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintProgress(progress types.Progress) {
	if progress.Current == 0 {
		fmt.Fprintf(p.out, "Generating %d region(s)...\n", progress.Total)
		return
	}
	fmt.Fprintf(p.out, "[%d/%d] %-16s %3.0f%%\n", progress.Current, progress.Total, progress.Region, progress.Percent())
}

// PrintResult outputs one region's copy in a box.
func (p *Printer) PrintResult(result types.GenerationResult) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Tone:      %s\n", result.Tone))
	sb.WriteString(fmt.Sprintf("Promotion: %s\n", result.Promotion))
	sb.WriteString("\n")

	lines := strings.Split(result.Content, "\n")
	count := min(len(lines), maxLinesToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(lines[i])
		sb.WriteString("\n")
	}
	if len(lines) > maxLinesToShow {
		sb.WriteString(fmt.Sprintf("... and %d more lines\n", len(lines)-maxLinesToShow))
	}

	p.printBox(strings.ToUpper(result.Region), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintTones outputs the tone profile list with a description preview.
func (p *Printer) PrintTones(profiles []types.ToneProfile) {
	if len(profiles) == 0 {
		return
	}

	var sb strings.Builder
	for i, profile := range profiles {
		sb.WriteString(fmt.Sprintf("%s  %s\n", profile.ID, profile.Name))
		sb.WriteString(fmt.Sprintf("    %s\n", preview(profile.Description, descriptionPreview)))
		if i < len(profiles)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("TONE PROFILES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintOptions outputs the selectable regions, promotions and tones.
func (p *Printer) PrintOptions(regions, promotions []string, profiles []types.ToneProfile) {
	var sb strings.Builder

	sb.WriteString("Regions:\n")
	for _, region := range regions {
		sb.WriteString(fmt.Sprintf("  • %s\n", region))
	}
	sb.WriteString("\nPromotions:\n")
	for _, promotion := range promotions {
		sb.WriteString(fmt.Sprintf("  • %s\n", promotion))
	}
	if len(profiles) > 0 {
		sb.WriteString("\nTones:\n")
		for _, profile := range profiles {
			sb.WriteString(fmt.Sprintf("  • %s (%s)\n", profile.Name, profile.ID))
		}
	}

	p.printBox("GENERATION OPTIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintError outputs the user-facing failure message in a box.
func (p *Printer) PrintError(message string) {
	p.printBox("GENERATION FAILED", message)
}

// preview returns the first paragraph of text, shortened to limit runes
func preview(text string, limit int) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "\n"); idx >= 0 {
		text = text[:idx]
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit-3]) + "..."
}

// wrap splits line into pieces of at most width runes, breaking on spaces where possible
func wrap(line string, width int) []string {
	if runeLen(line) <= width {
		return []string{line}
	}

	var lines []string
	var current []rune
	for _, word := range strings.Fields(line) {
		w := []rune(word)
		for len(w) > width {
			if len(current) > 0 {
				lines = append(lines, string(current))
				current = nil
			}
			lines = append(lines, string(w[:width]))
			w = w[width:]
		}
		switch {
		case len(current) == 0:
			current = w
		case len(current)+1+len(w) <= width:
			current = append(append(current, ' '), w...)
		default:
			lines = append(lines, string(current))
			current = w
		}
	}
	if len(current) > 0 {
		lines = append(lines, string(current))
	}
	return lines
}

func runeLen(s string) int {
	return len([]rune(s))
}

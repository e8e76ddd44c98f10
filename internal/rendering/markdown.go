package rendering

import (
	"bytes"
	"errors"
	"strings"
	"text/template"

	"github.com/jonathan/wordsmithery/internal/types"
)

// Format names accepted by Render
const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// DocumentData is passed to the Markdown template
type DocumentData struct {
	Title    string
	Sections []Section
}

// Section is the copy for one region
type Section struct {
	Region    string
	Tone      string
	Promotion string
	Content   string
}

const markdownTemplate = `# {{ .Title }}
{{ range .Sections }}
## {{ .Region }}

_{{ .Promotion }} · {{ .Tone }}_

{{ .Content }}
{{ end }}`

var documentTemplate = template.Must(template.New("document").Parse(markdownTemplate))

// NewDocumentData groups results into one section per region, keeping their order
func NewDocumentData(results []types.GenerationResult) DocumentData {
	data := DocumentData{Title: "Campaign Copy"}
	if len(results) > 0 {
		data.Title = results[0].Promotion
	}
	for _, r := range results {
		data.Sections = append(data.Sections, Section{
			Region:    r.Region,
			Tone:      r.Tone,
			Promotion: r.Promotion,
			Content:   strings.TrimSpace(r.Content),
		})
	}
	return data
}

// Markdown renders results as a Markdown document
func Markdown(results []types.GenerationResult) (string, error) {
	if len(results) == 0 {
		return "", &Error{Format: FormatMarkdown, Cause: ErrNoResults}
	}

	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, NewDocumentData(results)); err != nil {
		return "", &Error{Format: FormatMarkdown, Cause: err}
	}
	return strings.TrimSpace(buf.String()) + "\n", nil
}

// Render renders results in the named format
func Render(results []types.GenerationResult, format string) (string, error) {
	switch format {
	case "", FormatMarkdown:
		return Markdown(results)
	case FormatHTML:
		return HTML(results)
	default:
		return "", &Error{Format: format, Cause: errors.New("unsupported format")}
	}
}

package rendering

import (
	"bytes"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/jonathan/wordsmithery/internal/types"
)

var markdownEngine = goldmark.New(goldmark.WithExtensions(extension.GFM))

// HTML renders results as a standalone HTML page.
// Raw HTML inside generated copy is not passed through.
func HTML(results []types.GenerationResult) (string, error) {
	md, err := Markdown(results)
	if err != nil {
		return "", err
	}

	var body bytes.Buffer
	if err := markdownEngine.Convert([]byte(md), &body); err != nil {
		return "", &Error{Format: FormatHTML, Cause: err}
	}

	title := NewDocumentData(results).Title
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
%s</body>
</html>
`, html.EscapeString(title), body.String()), nil
}

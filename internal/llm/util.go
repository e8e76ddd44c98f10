package llm

import (
	"regexp"
	"strings"
)

// fenceInfo matches a language tag such as "markdown" or "text" after an opening fence
var fenceInfo = regexp.MustCompile(`^[A-Za-z0-9_+.-]{1,20}$`)

// StripCodeFence removes a code fence wrapped around the whole answer.
// A fence that only appears partway through the text is left alone.
func StripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	body, ok := strings.CutPrefix(text, "```")
	if !ok {
		return text
	}

	if info, rest, found := strings.Cut(body, "\n"); found && fenceInfo.MatchString(strings.TrimSpace(info)) {
		body = rest
	}
	body, _ = strings.CutSuffix(body, "```")
	return strings.TrimSpace(body)
}

package normalize

import (
	"regexp"
	"strings"
)

// channelHeader matches decorations like "=== WEBSITE - GLOBAL ===" or "*===WEBSITE - Region ===*"
var channelHeader = regexp.MustCompile(`(?i)\*?={3,}\s*WEBSITE\s*-\s*.*?\s*={3,}\*?`)

// StripChannelHeaders removes channel section headers the engine sometimes prepends to copy.
func StripChannelHeaders(content string) string {
	return strings.TrimSpace(channelHeader.ReplaceAllString(content, ""))
}

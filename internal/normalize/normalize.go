// Package normalize recovers the final marketing copy from generation engine responses.
//
// The engine is a third-party workflow whose output shape varies between plain text,
// JSON strings, array-wrapped objects, objects keyed by text/content/output, and doubly
// encoded JSON. Normalize accepts all of them and always returns a string.
package normalize

import (
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// priorityKeys are probed in order on every object
var priorityKeys = []string{"text", "content", "output"}

// Normalize returns the trimmed copy contained in raw.
// Bodies that are not JSON are returned as-is (trimmed). It never fails.
func Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !gjson.Valid(trimmed) {
		return trimmed
	}

	candidate, ok := resolve(gjson.Parse(trimmed))
	if !ok || candidate == "" {
		return trimmed
	}

	// Some generators wrap the final copy once more as {"content": "..."}
	if inner := innerContent(candidate); inner != "" {
		return inner
	}

	return strings.TrimSpace(candidate)
}

// resolve walks v depth-first. The boolean is false when v holds nothing usable.
func resolve(v gjson.Result) (string, bool) {
	if !truthy(v) {
		return "", false
	}

	switch {
	case v.Type == gjson.String:
		if gjson.Valid(v.Str) {
			nested := gjson.Parse(v.Str)
			if nested.IsObject() || nested.IsArray() {
				return resolve(nested)
			}
		}
		return v.Str, true

	case v.IsArray():
		items := v.Array()
		if len(items) > 0 {
			return resolve(items[0])
		}
		return stringify(v), true

	case v.IsObject():
		fields := v.Map()
		for _, key := range priorityKeys {
			field, exists := fields[key]
			if !exists || !truthy(field) {
				continue
			}
			if text, ok := resolve(field); ok && text != "" {
				return text, true
			}
		}
		// Degraded: no recognizable key, hand back the whole object
		return stringify(v), true

	default:
		return strings.TrimSpace(v.Raw), true
	}
}

// innerContent extracts a truthy string "content" field when s is a JSON object
func innerContent(s string) string {
	trimmed := strings.TrimSpace(s)
	if !gjson.Valid(trimmed) {
		return ""
	}
	inner := gjson.Parse(trimmed)
	if !inner.IsObject() {
		return ""
	}
	content := inner.Map()["content"]
	if content.Type != gjson.String || content.Str == "" {
		return ""
	}
	return strings.TrimSpace(content.Str)
}

// truthy mirrors the upstream engine's JavaScript truthiness:
// null, false, 0 and "" are falsy, any object or array is truthy.
func truthy(v gjson.Result) bool {
	switch v.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.Number:
		return v.Num != 0
	case gjson.String:
		return v.Str != ""
	case gjson.True, gjson.JSON:
		return true
	default:
		return false
	}
}

// stringify renders v as compact JSON, preserving key order
func stringify(v gjson.Result) string {
	return string(pretty.Ugly([]byte(v.Raw)))
}

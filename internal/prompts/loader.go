// Package prompts holds the prompt templates used by the direct model backends.
// Each JSON file maps a key to a text/template source and is embedded at compile time.
package prompts

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"text/template"
)

//go:embed *.json
var promptFiles embed.FS

// Set is the parsed contents of one prompt file
type Set struct {
	file      string
	templates map[string]*template.Template
}

var (
	setsMu sync.Mutex
	sets   = make(map[string]*Set)
)

// Load parses filename once and returns the cached Set afterwards
func Load(filename string) (*Set, error) {
	setsMu.Lock()
	defer setsMu.Unlock()

	if set, ok := sets[filename]; ok {
		return set, nil
	}

	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	var sources map[string]string
	if err := json.Unmarshal(data, &sources); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	set := &Set{file: filename, templates: make(map[string]*template.Template, len(sources))}
	for key, source := range sources {
		tmpl, err := template.New(key).Option("missingkey=error").Parse(source)
		if err != nil {
			return nil, fmt.Errorf("invalid prompt %q in %s: %w", key, filename, err)
		}
		set.templates[key] = tmpl
	}

	sets[filename] = set
	return set, nil
}

// Execute renders the prompt under key with data
func (s *Set) Execute(key string, data any) (string, error) {
	tmpl, ok := s.templates[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, s.file)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render prompt %q: %w", key, err)
	}
	return buf.String(), nil
}

// Keys returns the prompt keys in sorted order
func (s *Set) Keys() []string {
	keys := make([]string, 0, len(s.templates))
	for key := range s.templates {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Render loads filename and renders key with data
func Render(filename, key string, data any) (string, error) {
	set, err := Load(filename)
	if err != nil {
		return "", err
	}
	return set.Execute(key, data)
}

// MustRender is Render for prompts that ship with the binary; it panics on error.
func MustRender(filename, key string, data any) string {
	out, err := Render(filename, key, data)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return out
}

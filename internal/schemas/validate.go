// Package schemas checks JSON documents against JSON Schema before they are trusted.
package schemas

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// FieldError is one schema violation at a field path
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every violation found in a document
type ValidationError struct {
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	parts := make([]string, len(ve.Errors))
	for i, err := range ve.Errors {
		parts[i] = err.Field + ": " + err.Message
	}
	return "document does not match schema: " + strings.Join(parts, "; ")
}

// SchemaError means the schema itself could not be compiled
type SchemaError struct {
	Cause error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid schema: %v", e.Cause)
}

func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// DocumentError means the document is not parseable JSON
type DocumentError struct {
	Cause error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("invalid JSON document: %v", e.Cause)
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}

// Schema is a compiled JSON Schema
type Schema struct {
	compiled *gojsonschema.Schema
}

var (
	compiledMu sync.Mutex
	compiled   = make(map[string]*Schema)
)

// Compile parses schema content. Identical content is compiled only once.
func Compile(content string) (*Schema, error) {
	compiledMu.Lock()
	defer compiledMu.Unlock()

	if s, ok := compiled[content]; ok {
		return s, nil
	}
	c, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(content))
	if err != nil {
		return nil, &SchemaError{Cause: err}
	}
	s := &Schema{compiled: c}
	compiled[content] = s
	return s, nil
}

// Validate checks a raw JSON document
func (s *Schema) Validate(doc []byte) error {
	return s.check(gojsonschema.NewBytesLoader(doc))
}

// ValidateValue checks a Go value as it would marshal to JSON
func (s *Schema) ValidateValue(value any) error {
	return s.check(gojsonschema.NewGoLoader(value))
}

func (s *Schema) check(doc gojsonschema.JSONLoader) error {
	result, err := s.compiled.Validate(doc)
	if err != nil {
		return &DocumentError{Cause: err}
	}
	if result.Valid() {
		return nil
	}

	ve := &ValidationError{Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		ve.Errors = append(ve.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return ve
}

// ValidateJSONString compiles schemaContent and validates jsonContent against it
func ValidateJSONString(schemaContent, jsonContent string) error {
	s, err := Compile(schemaContent)
	if err != nil {
		return err
	}
	return s.Validate([]byte(jsonContent))
}

// ValidateValue compiles schemaContent and validates value against it
func ValidateValue(schemaContent string, value any) error {
	s, err := Compile(schemaContent)
	if err != nil {
		return err
	}
	return s.ValidateValue(value)
}

package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nameSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["name"],
	"properties": {
		"name": {"type": "string"}
	}
}`

func TestValidateJSONString_Valid(t *testing.T) {
	err := ValidateJSONString(nameSchema, `{"name": "test"}`)
	assert.NoError(t, err)
}

func TestValidateJSONString_Invalid(t *testing.T) {
	err := ValidateJSONString(nameSchema, `{"age": 30}`)
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	require.Len(t, validationErr.Errors, 1)
	assert.Equal(t, "(root)", validationErr.Errors[0].Field)
}

func TestValidateJSONString_MalformedDocument(t *testing.T) {
	err := ValidateJSONString(nameSchema, `{"name": `)
	require.Error(t, err)

	var docErr *DocumentError
	assert.True(t, errors.As(err, &docErr))
}

func TestValidateJSONString_MalformedSchema(t *testing.T) {
	err := ValidateJSONString(`{"type": 12}`, `{}`)
	require.Error(t, err)

	var schemaErr *SchemaError
	assert.True(t, errors.As(err, &schemaErr))
	assert.Contains(t, err.Error(), "invalid schema")
}

func TestValidateJSONString_NestedField(t *testing.T) {
	schemaContent := `{
		"type": "array",
		"items": {
			"type": "object",
			"properties": {"description": {"type": "string"}}
		}
	}`

	err := ValidateJSONString(schemaContent, `[{"description": "ok"}, {"description": 5}]`)
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "1.description", validationErr.Errors[0].Field)
}

func TestValidateValue(t *testing.T) {
	type named struct {
		Name string `json:"name"`
	}

	assert.NoError(t, ValidateValue(nameSchema, named{Name: "x"}))
	assert.NoError(t, ValidateValue(nameSchema, map[string]any{"name": "x"}))
	assert.Error(t, ValidateValue(nameSchema, map[string]any{"name": 1}))
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "name", Message: "is required"},
			{Field: "age", Message: "must be a number"},
		},
	}

	assert.Equal(t, "document does not match schema: name: is required; age: must be a number", err.Error())
}

func TestCompile_Caches(t *testing.T) {
	first, err := Compile(nameSchema)
	require.NoError(t, err)
	second, err := Compile(nameSchema)
	require.NoError(t, err)
	assert.Same(t, first, second)

	assert.NoError(t, first.Validate([]byte(`{"name": "x"}`)))
	assert.Error(t, first.Validate([]byte(`{}`)))
}

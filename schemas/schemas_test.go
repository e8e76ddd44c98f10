package schemas

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/jonathan/wordsmithery/internal/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	schemaFiles := []string{
		"tone_profiles.schema.json",
		"selection.schema.json",
	}

	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := os.ReadFile(schemaFile)
			require.NoError(t, err, "should be able to read schema file")

			var v interface{}
			err = json.Unmarshal(data, &v)
			assert.NoError(t, err, "schema file should be valid JSON: %s", schemaFile)
		})
	}
}

func TestToneProfilesSchema(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		valid bool
	}{
		{name: "valid list", doc: `[{"id": "toneA", "name": "Parent Brand", "description": "measured"}]`, valid: true},
		{name: "empty description allowed", doc: `[{"id": "toneA", "name": "Parent Brand", "description": ""}]`, valid: true},
		{name: "empty list", doc: `[]`, valid: false},
		{name: "object instead of list", doc: `{"id": "toneA"}`, valid: false},
		{name: "missing name", doc: `[{"id": "toneA", "description": "x"}]`, valid: false},
		{name: "blank id", doc: `[{"id": "", "name": "n", "description": "x"}]`, valid: false},
		{name: "numeric description", doc: `[{"id": "a", "name": "n", "description": 3}]`, valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := schemas.ValidateJSONString(ToneProfiles, tt.doc)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestSelectionSchema(t *testing.T) {
	valid := `{"tone_id": "toneA", "regions": ["Asia", "Europe"], "promotion": "Flash Deal", "details": "48 hours only"}`
	assert.NoError(t, schemas.ValidateJSONString(Selection, valid))

	duplicate := `{"regions": ["Asia", "Asia"], "promotion": "Flash Deal", "details": "x"}`
	assert.Error(t, schemas.ValidateJSONString(Selection, duplicate))

	noRegions := `{"regions": [], "promotion": "Flash Deal", "details": "x"}`
	assert.Error(t, schemas.ValidateJSONString(Selection, noRegions))
}

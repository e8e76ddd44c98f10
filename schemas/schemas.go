// Package schemas embeds the JSON Schemas for documents the tool reads from disk or storage.
package schemas

import _ "embed"

// ToneProfiles is the schema of the persisted tone profile list
//
//go:embed tone_profiles.schema.json
var ToneProfiles string

// Selection is the schema of a brief file passed to generate --brief
//
//go:embed selection.schema.json
var Selection string

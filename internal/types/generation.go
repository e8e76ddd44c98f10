// Package types provides type definitions for structured data used throughout the wordsmithery system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// DefaultSource is the attribution tag sent with every generation call
const DefaultSource = "wordsmithery-ui"

// GenerationRequest is the parameter set for a single region's generation call.
// A fresh value is built per call and never persisted.
type GenerationRequest struct {
	ToneName        string `json:"toneName"`
	ToneDescription string `json:"toneDescription"`
	Region          string `json:"region"`
	Promotion       string `json:"promotion"`
	Details         string `json:"details"`
}

// WebhookPayload is the JSON body posted to the generation engine
type WebhookPayload struct {
	GenerationRequest
	Timestamp string `json:"timestamp"`
	Source    string `json:"source"`
}

// GenerationResult holds the normalized copy produced for one region
type GenerationResult struct {
	ID        string `json:"id"`
	Region    string `json:"region"`
	Tone      string `json:"tone"`
	Promotion string `json:"promotion"`
	Content   string `json:"content"`
}

// Selection is what the user picked before triggering a generation batch
type Selection struct {
	ToneID    string   `json:"tone_id"`
	Regions   []string `json:"regions" validate:"required,min=1,unique,dive,required"`
	Promotion string   `json:"promotion" validate:"required"`
	Details   string   `json:"details" validate:"required"`
}

// Validate validates the Selection using the validator.
// Blank details are rejected even when they contain whitespace.
func (s *Selection) Validate() error {
	validate := validator.New()
	if err := validate.Struct(s); err != nil {
		return err
	}
	if strings.TrimSpace(s.Details) == "" {
		return &FieldError{Field: "details", Message: "details must not be blank"}
	}
	return nil
}

// Ready reports whether a batch can be triggered for this selection
func (s Selection) Ready() bool {
	return strings.TrimSpace(s.Details) != "" && len(s.Regions) > 0
}

// Progress reports where a sequential batch currently stands
type Progress struct {
	Current int    `json:"current"`
	Total   int    `json:"total"`
	Region  string `json:"region"`
}

// Percent returns completion as a value between 0 and 100
func (p Progress) Percent() float64 {
	if p.Total <= 0 {
		return 0
	}
	return float64(p.Current) / float64(p.Total) * 100
}

// FieldError is a validation failure on a single field
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return "validation error in " + e.Field + ": " + e.Message
}

// CheckCatalog rejects regions and promotions outside the fixed catalog
func (s *Selection) CheckCatalog() error {
	for _, region := range s.Regions {
		if !IsKnownRegion(region) {
			return &FieldError{Field: "regions", Message: "unknown region " + region}
		}
	}
	if !IsKnownPromotion(s.Promotion) {
		return &FieldError{Field: "promotion", Message: "unknown promotion " + s.Promotion}
	}
	return nil
}

package types

// ToneProfile is a named brand-voice description used as generation context
type ToneProfile struct {
	ID          string `json:"id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// UpdateToneRequest is the body of a tone description edit
type UpdateToneRequest struct {
	Description string `json:"description" validate:"required"`
}

// FindTone returns the profile with the given id, or nil
func FindTone(profiles []ToneProfile, id string) *ToneProfile {
	for i := range profiles {
		if profiles[i].ID == id {
			return &profiles[i]
		}
	}
	return nil
}

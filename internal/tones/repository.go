// Package tones manages the editable list of brand tone profiles.
package tones

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/wordsmithery/internal/schemas"
	"github.com/jonathan/wordsmithery/internal/storage"
	"github.com/jonathan/wordsmithery/internal/types"
	toneschema "github.com/jonathan/wordsmithery/schemas"
)

// StorageKey is the fixed key the profile list is persisted under
const StorageKey = "wordsmithery.tones"

// ErrToneNotFound is returned when an edit targets an unknown tone id
var ErrToneNotFound = errors.New("tone not found")

// Repository loads and saves tone profiles as a single JSON blob.
// The blob is read from the store once; later reads use the cached list.
type Repository struct {
	store    storage.Store
	validate *validator.Validate

	mu       sync.Mutex
	profiles []types.ToneProfile
}

// NewRepository creates a Repository over store
func NewRepository(store storage.Store) *Repository {
	return &Repository{
		store:    store,
		validate: validator.New(),
	}
}

// Load returns the current profiles. A missing or invalid blob yields the defaults.
// When the store itself fails the defaults are returned but not kept, so a later read can recover.
func (r *Repository) Load(ctx context.Context) []types.ToneProfile {
	r.mu.Lock()
	defer r.mu.Unlock()

	profiles, err := r.loadLocked(ctx)
	if err != nil {
		log.Printf("[tones] store unavailable, serving default profiles: %v", err)
		return DefaultProfiles()
	}
	return clone(profiles)
}

// loadLocked returns the cached list, reading the blob on first use.
// Only store errors are returned; missing or corrupt blobs become the cached defaults.
func (r *Repository) loadLocked(ctx context.Context) ([]types.ToneProfile, error) {
	if r.profiles != nil {
		return r.profiles, nil
	}

	data, ok, err := r.store.Get(ctx, StorageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", StorageKey, err)
	}

	profiles := DefaultProfiles()
	if ok {
		decoded, err := r.decode(data)
		if err != nil {
			log.Printf("[tones] using default profiles: %v", err)
		} else {
			profiles = decoded
		}
	}
	r.profiles = profiles
	return r.profiles, nil
}

// decode parses and validates a profile list document
func (r *Repository) decode(data []byte) ([]types.ToneProfile, error) {
	if !json.Valid(data) {
		return nil, fmt.Errorf("stored profiles are not valid JSON")
	}
	if err := schemas.ValidateJSONString(toneschema.ToneProfiles, string(data)); err != nil {
		return nil, err
	}

	var profiles []types.ToneProfile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("failed to parse profiles: %w", err)
	}
	if len(profiles) == 0 {
		return nil, fmt.Errorf("stored profile list is empty")
	}
	return profiles, nil
}

// Get returns the profile with id, falling back to the first profile for unknown ids
func (r *Repository) Get(ctx context.Context, id string) (types.ToneProfile, error) {
	if err := ctx.Err(); err != nil {
		return types.ToneProfile{}, err
	}
	profiles := r.Load(ctx)
	if p := types.FindTone(profiles, id); p != nil {
		return *p, nil
	}
	return profiles[0], nil
}

// Save replaces the whole stored list. Last write wins.
func (r *Repository) Save(ctx context.Context, profiles []types.ToneProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saveLocked(ctx, profiles)
}

func (r *Repository) saveLocked(ctx context.Context, profiles []types.ToneProfile) error {
	if len(profiles) == 0 {
		return fmt.Errorf("at least one tone profile is required")
	}
	for i := range profiles {
		if err := r.validate.Struct(profiles[i]); err != nil {
			return fmt.Errorf("invalid tone profile %d: %w", i, err)
		}
	}

	data, err := json.Marshal(profiles)
	if err != nil {
		return fmt.Errorf("failed to encode profiles: %w", err)
	}
	if err := r.store.Put(ctx, StorageKey, data); err != nil {
		return fmt.Errorf("failed to save profiles: %w", err)
	}

	r.profiles = clone(profiles)
	return nil
}

// UpdateDescription edits the description of one profile and saves the list
func (r *Repository) UpdateDescription(ctx context.Context, id, description string) (types.ToneProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, err := r.loadLocked(ctx)
	if err != nil {
		return types.ToneProfile{}, err
	}
	profiles := clone(current)
	p := types.FindTone(profiles, id)
	if p == nil {
		return types.ToneProfile{}, fmt.Errorf("%w: %s", ErrToneNotFound, id)
	}
	p.Description = strings.TrimSpace(description)
	updated := *p

	if err := r.saveLocked(ctx, profiles); err != nil {
		return types.ToneProfile{}, err
	}
	return updated, nil
}

// Reset restores and saves the default profiles
func (r *Repository) Reset(ctx context.Context) ([]types.ToneProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	defaults := DefaultProfiles()
	if err := r.saveLocked(ctx, defaults); err != nil {
		return nil, err
	}
	return clone(defaults), nil
}

// Import replaces the list with a JSON document. Unlike Load, an invalid document is an error.
func (r *Repository) Import(ctx context.Context, data []byte) ([]types.ToneProfile, error) {
	profiles, err := r.decode(data)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.saveLocked(ctx, profiles); err != nil {
		return nil, err
	}
	return clone(profiles), nil
}

// Export returns the current list as indented JSON
func (r *Repository) Export(ctx context.Context) ([]byte, error) {
	data, err := json.MarshalIndent(r.Load(ctx), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode profiles: %w", err)
	}
	return data, nil
}

func clone(profiles []types.ToneProfile) []types.ToneProfile {
	return append([]types.ToneProfile(nil), profiles...)
}

package model

import (
	"encoding/json"
	"time"

	"github.com/vaultpass/passgen/internal/crypto"
)

// ProfileState is the persisted generator state of a profile.
type ProfileState struct {
	Settings      crypto.Settings `json:"settings"`
	CustomCharset *string         `json:"custom_charset,omitempty"`
}

// DefaultProfileState returns default settings with no custom charset.
func DefaultProfileState() ProfileState {
	return ProfileState{Settings: crypto.DefaultSettings()}
}

// DecodeProfileState decodes a stored state. Fields missing from data keep
// their default values, so states written by older versions still load.
func DecodeProfileState(data []byte) (ProfileState, error) {
	state := DefaultProfileState()
	if len(data) == 0 {
		return state, nil
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return ProfileState{}, err
	}
	return state, nil
}

// Generator builds a generator from the state.
func (s ProfileState) Generator() *crypto.Generator {
	g := crypto.NewGenerator(s.Settings)
	g.SetCustomCharset(s.CustomCharset)
	return g
}

// Profile represents a saved generator profile in the database.
type Profile struct {
	ID        string
	Name      string
	State     []byte // JSON encoded ProfileState
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProfileRequest represents a profile create or update request.
type ProfileRequest struct {
	Name  string       `json:"name"`
	State ProfileState `json:"state"`
}

// DefaultProfileRequest returns a request carrying DefaultProfileState.
func DefaultProfileRequest() ProfileRequest {
	return ProfileRequest{State: DefaultProfileState()}
}

// ProfileResponse represents a profile in API responses.
type ProfileResponse struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	State     ProfileState `json:"state"`
	Version   int          `json:"version"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// CreateProfileResponse carries the new profile and the token that grants access to it.
type CreateProfileResponse struct {
	Token   string          `json:"token"`
	Profile ProfileResponse `json:"profile"`
}

// ProfileGenerateRequest represents a generation request against a saved profile.
type ProfileGenerateRequest struct {
	Count int  `json:"count"`
	Hash  bool `json:"hash"`
}

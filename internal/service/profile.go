package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/vaultpass/passgen/internal/crypto"
	"github.com/vaultpass/passgen/internal/model"
	"github.com/vaultpass/passgen/internal/repository"
)

const maxProfileNameLength = 255

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrVersionConflict = errors.New("profile was modified concurrently")
	ErrNameTooLong     = errors.New("name must be at most 255 characters")
)

// ProfileStore persists profiles.
type ProfileStore interface {
	Create(ctx context.Context, p *model.Profile) error
	Get(ctx context.Context, id string) (*model.Profile, error)
	Update(ctx context.Context, p *model.Profile) error
	Delete(ctx context.Context, id string) error
}

// ProfileService manages saved generator profiles.
type ProfileService struct {
	store     ProfileStore
	generator *GeneratorService
	jwtSecret string
	jwtExpiry time.Duration
}

// NewProfileService creates a new ProfileService.
func NewProfileService(store ProfileStore, generator *GeneratorService, secret string, expiry time.Duration) *ProfileService {
	return &ProfileService{
		store:     store,
		generator: generator,
		jwtSecret: secret,
		jwtExpiry: expiry,
	}
}

// Create stores a new profile and returns it with a token granting access to it.
func (s *ProfileService) Create(ctx context.Context, req model.ProfileRequest) (model.CreateProfileResponse, error) {
	if len(req.Name) > maxProfileNameLength {
		return model.CreateProfileResponse{}, ErrNameTooLong
	}

	state, err := json.Marshal(req.State)
	if err != nil {
		return model.CreateProfileResponse{}, err
	}

	p := &model.Profile{
		ID:    uuid.NewString(),
		Name:  req.Name,
		State: state,
	}
	if err := s.store.Create(ctx, p); err != nil {
		return model.CreateProfileResponse{}, err
	}
	p.UpdatedAt = time.Now().UTC()

	token, err := crypto.GenerateToken(p.ID, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return model.CreateProfileResponse{}, err
	}

	return model.CreateProfileResponse{
		Token:   token,
		Profile: profileToResponse(p, req.State),
	}, nil
}

// Get returns a stored profile.
func (s *ProfileService) Get(ctx context.Context, id string) (model.ProfileResponse, error) {
	p, state, err := s.load(ctx, id)
	if err != nil {
		return model.ProfileResponse{}, err
	}
	return profileToResponse(p, state), nil
}

// Update replaces the name and state of a stored profile.
func (s *ProfileService) Update(ctx context.Context, id string, req model.ProfileRequest) (model.ProfileResponse, error) {
	if len(req.Name) > maxProfileNameLength {
		return model.ProfileResponse{}, ErrNameTooLong
	}

	state, err := json.Marshal(req.State)
	if err != nil {
		return model.ProfileResponse{}, err
	}

	existing, err := s.store.Get(ctx, id)
	if err != nil {
		return model.ProfileResponse{}, mapStoreError(err)
	}

	existing.Name = req.Name
	existing.State = state
	if err := s.store.Update(ctx, existing); err != nil {
		return model.ProfileResponse{}, mapStoreError(err)
	}
	existing.UpdatedAt = time.Now().UTC()

	return profileToResponse(existing, req.State), nil
}

// Delete removes a stored profile.
func (s *ProfileService) Delete(ctx context.Context, id string) error {
	return mapStoreError(s.store.Delete(ctx, id))
}

// Generate produces passwords from a stored profile's settings.
func (s *ProfileService) Generate(ctx context.Context, id string, req model.ProfileGenerateRequest) (model.GenerateResponse, error) {
	_, state, err := s.load(ctx, id)
	if err != nil {
		return model.GenerateResponse{}, err
	}

	return s.generator.generate(state, req.Count, req.Hash, "profile")
}

func (s *ProfileService) load(ctx context.Context, id string) (*model.Profile, model.ProfileState, error) {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, model.ProfileState{}, mapStoreError(err)
	}

	state, err := model.DecodeProfileState(p.State)
	if err != nil {
		return nil, model.ProfileState{}, err
	}
	return p, state, nil
}

func mapStoreError(err error) error {
	switch {
	case errors.Is(err, repository.ErrProfileNotFound):
		return ErrProfileNotFound
	case errors.Is(err, repository.ErrVersionConflict):
		return ErrVersionConflict
	}
	return err
}

func profileToResponse(p *model.Profile, state model.ProfileState) model.ProfileResponse {
	return model.ProfileResponse{
		ID:        p.ID,
		Name:      p.Name,
		State:     state,
		Version:   p.Version,
		UpdatedAt: p.UpdatedAt,
	}
}

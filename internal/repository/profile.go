package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vaultpass/passgen/internal/model"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrVersionConflict = errors.New("profile was modified concurrently")
)

// ProfileRepository handles profile persistence operations.
type ProfileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Create inserts a new profile at version 1.
func (r *ProfileRepository) Create(ctx context.Context, p *model.Profile) error {
	query := `INSERT INTO profiles (id, name, state, version) VALUES (?, ?, ?, 1)`

	if _, err := r.db.ExecContext(ctx, query, p.ID, p.Name, p.State); err != nil {
		return err
	}
	p.Version = 1
	return nil
}

// Get retrieves a profile by ID.
func (r *ProfileRepository) Get(ctx context.Context, id string) (*model.Profile, error) {
	query := `SELECT id, name, state, version, created_at, updated_at FROM profiles WHERE id = ?`

	p := &model.Profile{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.State, &p.Version, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	return p, nil
}

// Update replaces name and state if the stored version still equals p.Version,
// then increments the version. p.Version is set to the new version on success.
func (r *ProfileRepository) Update(ctx context.Context, p *model.Profile) error {
	query := `UPDATE profiles SET name = ?, state = ?, version = version + 1, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND version = ?`

	result, err := r.db.ExecContext(ctx, query, p.Name, p.State, p.ID, p.Version)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		if _, err := r.Get(ctx, p.ID); err != nil {
			return err
		}
		return ErrVersionConflict
	}

	p.Version++
	return nil
}

// Delete removes a profile.
func (r *ProfileRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrProfileNotFound
	}

	return nil
}

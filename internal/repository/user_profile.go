package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kala-yatra/backend/internal/db"
	"github.com/kala-yatra/backend/internal/domain"

	"github.com/jmoiron/sqlx"
)

type userProfileRepository struct {
	db *sqlx.DB
}

func newUserProfileRepository(db *sqlx.DB) *userProfileRepository {
	return &userProfileRepository{
		db: db,
	}
}

func (r *userProfileRepository) GetByExternalID(ctx context.Context, externalID string) (*domain.UserProfile, error) {
	const query = `
	SELECT id, external_id, email, full_name, avatar_url, is_new_account, last_login_at, created_at, updated_at
	FROM user_profile WHERE external_id = ?;
	`
	var profile domain.UserProfile
	if err := r.db.GetContext(ctx, &profile, query, externalID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select from user_profile by external_id failed: %w", err)
	}

	return &profile, nil
}

func (r *userProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.UserProfile, error) {
	const query = `
	SELECT id, external_id, email, full_name, avatar_url, is_new_account, last_login_at, created_at, updated_at
	FROM user_profile WHERE id = uuid_to_bin(?);
	`
	var profile domain.UserProfile
	if err := r.db.GetContext(ctx, &profile, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select from user_profile by id failed: %w", err)
	}

	return &profile, nil
}

func (r *userProfileRepository) Create(ctx context.Context, profile *domain.UserProfile) error {
	const query = `
	INSERT INTO user_profile
	(id, external_id, email, full_name, avatar_url, is_new_account, last_login_at)
	VALUES(uuid_to_bin(?), ?, ?, ?, ?, ?, ?);
	`

	result, err := r.db.ExecContext(ctx, query,
		profile.ID,
		profile.ExternalID,
		profile.Email,
		profile.FullName,
		profile.AvatarURL,
		profile.IsNewAccount,
		profile.LastLoginAt,
	)
	if err != nil {
		if db.ErrorNumber(err) == db.DuplicateEntry {
			return domain.ErrDuplicateEntry
		}
		return fmt.Errorf("db insert user profile: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected failed: %w", err)
	}

	if rowsAffected == 0 {
		return domain.ErrNoRowsAffected
	}

	return nil
}

func (r *userProfileRepository) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	const query = `
	UPDATE user_profile SET last_login_at = ?, is_new_account = FALSE WHERE id = uuid_to_bin(?);
	`
	_, err := r.db.ExecContext(ctx, query, at, id)
	if err != nil {
		return fmt.Errorf("update user_profile last login failed: %w", err)
	}
	return nil
}

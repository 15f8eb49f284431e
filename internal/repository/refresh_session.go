package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kala-yatra/backend/internal/domain"

	"github.com/jmoiron/sqlx"
)

type refreshSessionRepository struct {
	db *sqlx.DB
}

func newRefreshSessionRepository(db *sqlx.DB) *refreshSessionRepository {
	return &refreshSessionRepository{
		db: db,
	}
}

func (r *refreshSessionRepository) Create(ctx context.Context, session *domain.RefreshSession) error {
	const query = `
	INSERT INTO refresh_session (id, user_id, refresh_token, user_agent, ip, expires_at)
	VALUES (uuid_to_bin(?), uuid_to_bin(?), uuid_to_bin(?), ?, ?, ?);
	`
	_, err := r.db.ExecContext(ctx, query, session.ID, session.UserID, session.RefreshToken, session.UserAgent, session.IP, session.ExpiresAt)
	if err != nil {
		return fmt.Errorf("db insert refresh session: %w", err)
	}

	return nil
}

func (r *refreshSessionRepository) Revoke(ctx context.Context, refreshToken uuid.UUID) error {
	const query = `
	UPDATE refresh_session SET revoked_at = ? WHERE refresh_token = uuid_to_bin(?) AND revoked_at IS NULL;
	`
	res, err := r.db.ExecContext(ctx, query, time.Now(), refreshToken)
	if err != nil {
		return fmt.Errorf("db revoke refresh session: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db revoke refresh session rows: %w", err)
	}

	if rows == 0 {
		return domain.ErrNotFound
	}

	return nil
}

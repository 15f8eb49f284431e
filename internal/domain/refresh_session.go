package domain

import (
	"time"

	"github.com/google/uuid"
)

// RefreshSession is one signed-in browser. Sign-out stamps RevokedAt.
type RefreshSession struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	UserID       uuid.UUID  `db:"user_id" json:"user_id"`
	RefreshToken uuid.UUID  `db:"refresh_token" json:"-"`
	UserAgent    string     `db:"user_agent" json:"user_agent"`
	IP           string     `db:"ip" json:"ip"`
	ExpiresAt    time.Time  `db:"expires_at" json:"expires_at"`
	RevokedAt    *time.Time `db:"revoked_at" json:"revoked_at,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

func (s *RefreshSession) Active(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}

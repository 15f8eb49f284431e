package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserProfile mirrors an identity provider account on first login.
type UserProfile struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	ExternalID   string     `db:"external_id" json:"external_id"`
	Email        string     `db:"email" json:"email"`
	FullName     string     `db:"full_name" json:"full_name"`
	AvatarURL    string     `db:"avatar_url" json:"avatar_url"`
	IsNewAccount bool       `db:"is_new_account" json:"is_new_account"`
	LastLoginAt  *time.Time `db:"last_login_at" json:"last_login_at"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

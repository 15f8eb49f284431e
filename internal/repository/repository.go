package repository

import (
	"context"
	"time"

	"github.com/kala-yatra/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	Registrations  Registrations
	Payments       Payments
	UserProfiles   UserProfiles
	RefreshSession RefreshSession
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Registrations:  newRegistrationRepository(db),
		Payments:       newPaymentRepository(db),
		UserProfiles:   newUserProfileRepository(db),
		RefreshSession: newRefreshSessionRepository(db),
	}
}

type Registrations interface {
	Create(ctx context.Context, registration *domain.Registration) error
	// CreateWithPayment inserts both rows in one transaction.
	CreateWithPayment(ctx context.Context, registration *domain.Registration, payment *domain.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Registration, error)
	GetLatestByEmail(ctx context.Context, email string) (*domain.Registration, error)
	ListByEmailWithPayment(ctx context.Context, email string) ([]domain.RegistrationWithPayment, error)
	ListWithoutPayment(ctx context.Context, createdBefore time.Time) ([]domain.Registration, error)
}

type Payments interface {
	Create(ctx context.Context, payment *domain.Payment) error
	GetLatestByRegistrationID(ctx context.Context, registrationID uuid.UUID) (*domain.Payment, error)
	GetByOrderID(ctx context.Context, orderID string) (*domain.Payment, error)
	// Verify marks a non-terminal payment verified and flags its registration, atomically.
	Verify(ctx context.Context, payment *domain.Payment, paidAmount int64) error
	// Reject marks a non-terminal payment rejected.
	Reject(ctx context.Context, payment *domain.Payment, paidAmount int64) error
	// MarkPending re-queues any payment that is not verified.
	MarkPending(ctx context.Context, payment *domain.Payment) error
}

type UserProfiles interface {
	GetByExternalID(ctx context.Context, externalID string) (*domain.UserProfile, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.UserProfile, error)
	Create(ctx context.Context, profile *domain.UserProfile) error
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type RefreshSession interface {
	Create(ctx context.Context, session *domain.RefreshSession) error
	Revoke(ctx context.Context, refreshToken uuid.UUID) error
}

package mock_repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/kala-yatra/backend/internal/domain"
)

type Registrations struct {
	mock.Mock
}

func (m *Registrations) Create(ctx context.Context, registration *domain.Registration) error {
	args := m.Called(ctx, registration)
	return args.Error(0)
}

func (m *Registrations) CreateWithPayment(ctx context.Context, registration *domain.Registration, payment *domain.Payment) error {
	args := m.Called(ctx, registration, payment)
	return args.Error(0)
}

func (m *Registrations) GetByID(ctx context.Context, id uuid.UUID) (*domain.Registration, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*domain.Registration)
	return r, args.Error(1)
}

func (m *Registrations) GetLatestByEmail(ctx context.Context, email string) (*domain.Registration, error) {
	args := m.Called(ctx, email)
	r, _ := args.Get(0).(*domain.Registration)
	return r, args.Error(1)
}

func (m *Registrations) ListByEmailWithPayment(ctx context.Context, email string) ([]domain.RegistrationWithPayment, error) {
	args := m.Called(ctx, email)
	r, _ := args.Get(0).([]domain.RegistrationWithPayment)
	return r, args.Error(1)
}

func (m *Registrations) ListWithoutPayment(ctx context.Context, createdBefore time.Time) ([]domain.Registration, error) {
	args := m.Called(ctx, createdBefore)
	r, _ := args.Get(0).([]domain.Registration)
	return r, args.Error(1)
}

type Payments struct {
	mock.Mock
}

func (m *Payments) Create(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *Payments) GetLatestByRegistrationID(ctx context.Context, registrationID uuid.UUID) (*domain.Payment, error) {
	args := m.Called(ctx, registrationID)
	p, _ := args.Get(0).(*domain.Payment)
	return p, args.Error(1)
}

func (m *Payments) GetByOrderID(ctx context.Context, orderID string) (*domain.Payment, error) {
	args := m.Called(ctx, orderID)
	p, _ := args.Get(0).(*domain.Payment)
	return p, args.Error(1)
}

func (m *Payments) Verify(ctx context.Context, payment *domain.Payment, paidAmount int64) error {
	args := m.Called(ctx, payment, paidAmount)
	return args.Error(0)
}

func (m *Payments) Reject(ctx context.Context, payment *domain.Payment, paidAmount int64) error {
	args := m.Called(ctx, payment, paidAmount)
	return args.Error(0)
}

func (m *Payments) MarkPending(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

type UserProfiles struct {
	mock.Mock
}

func (m *UserProfiles) GetByExternalID(ctx context.Context, externalID string) (*domain.UserProfile, error) {
	args := m.Called(ctx, externalID)
	p, _ := args.Get(0).(*domain.UserProfile)
	return p, args.Error(1)
}

func (m *UserProfiles) GetByID(ctx context.Context, id uuid.UUID) (*domain.UserProfile, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*domain.UserProfile)
	return p, args.Error(1)
}

func (m *UserProfiles) Create(ctx context.Context, profile *domain.UserProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *UserProfiles) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

type RefreshSession struct {
	mock.Mock
}

func (m *RefreshSession) Create(ctx context.Context, session *domain.RefreshSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *RefreshSession) Revoke(ctx context.Context, refreshToken uuid.UUID) error {
	args := m.Called(ctx, refreshToken)
	return args.Error(0)
}

package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kala-yatra/backend/internal/domain"
	mock_repository "github.com/kala-yatra/backend/internal/repository/mock"
	"github.com/kala-yatra/backend/pkg/pdf"
)

type receiptFixture struct {
	registrations *mock_repository.Registrations
	payments      *mock_repository.Payments
	renderer      *mockRenderer
	svc           *receiptService
	user          SessionUser
	regID         uuid.UUID
}

func newReceiptFixture(t *testing.T) *receiptFixture {
	t.Helper()
	f := &receiptFixture{
		registrations: &mock_repository.Registrations{},
		payments:      &mock_repository.Payments{},
		renderer:      &mockRenderer{},
		user:          SessionUser{ID: uuid.New(), Email: "asha@example.com"},
		regID:         uuid.New(),
	}
	f.svc = newReceiptService(f.registrations, f.payments, f.renderer, testEventConfig())
	f.svc.now = fixedNow
	f.registrations.On("GetByID", mock.Anything, f.regID).Return(&domain.Registration{
		ID:                f.regID,
		RegisteredByEmail: f.user.Email,
		FullName:          "Asha Rao",
		Email:             "asha@example.com",
		Phone:             "9876543210",
		City:              "Pune",
	}, nil)
	return f
}

func TestReceiptForVerifiedPayment(t *testing.T) {
	f := newReceiptFixture(t)
	f.payments.On("GetLatestByRegistrationID", mock.Anything, f.regID).Return(&domain.Payment{
		OrderID:        "ART_1_x",
		ExpectedAmount: 1,
		PaidAmount:     sql.NullInt64{Int64: 100, Valid: true},
		Status:         domain.PaymentStatusVerified,
	}, nil)
	f.renderer.On("GenerateReceipt", mock.MatchedBy(func(r pdf.Receipt) bool {
		return r.OrderID == "ART_1_x" && r.Amount == 100 && r.Status == "confirmed" &&
			r.FullName == "Asha Rao" && r.EventName == "Kala Yatra 2.0" && r.IssuedAt.Equal(fixedNow())
	})).Return([]byte("%PDF-1.4"), nil).Once()

	doc, err := f.svc.Render(context.Background(), f.user, f.regID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), doc)
	f.renderer.AssertExpectations(t)
}

func TestReceiptRefusals(t *testing.T) {
	t.Run("pending", func(t *testing.T) {
		f := newReceiptFixture(t)
		f.payments.On("GetLatestByRegistrationID", mock.Anything, f.regID).Return(&domain.Payment{Status: domain.PaymentStatusPending}, nil)
		_, err := f.svc.Render(context.Background(), f.user, f.regID)
		assert.ErrorIs(t, err, ErrReceiptNotReady)
	})

	t.Run("no payment", func(t *testing.T) {
		f := newReceiptFixture(t)
		f.payments.On("GetLatestByRegistrationID", mock.Anything, f.regID).Return(nil, domain.ErrNotFound)
		_, err := f.svc.Render(context.Background(), f.user, f.regID)
		assert.ErrorIs(t, err, ErrReceiptNotReady)
	})

	t.Run("other owner", func(t *testing.T) {
		f := newReceiptFixture(t)
		_, err := f.svc.Render(context.Background(), SessionUser{Email: "mallory@example.com"}, f.regID)
		assert.ErrorIs(t, err, ErrRegistrationNotFound)
	})

	t.Run("unknown registration", func(t *testing.T) {
		f := newReceiptFixture(t)
		missing := uuid.New()
		f.registrations.On("GetByID", mock.Anything, missing).Return(nil, domain.ErrNotFound)
		_, err := f.svc.Render(context.Background(), f.user, missing)
		assert.ErrorIs(t, err, ErrRegistrationNotFound)
	})

	t.Run("font missing", func(t *testing.T) {
		f := newReceiptFixture(t)
		f.payments.On("GetLatestByRegistrationID", mock.Anything, f.regID).Return(&domain.Payment{Status: domain.PaymentStatusVerified}, nil)
		f.renderer.On("GenerateReceipt", mock.Anything).Return(nil, pdf.ErrFontNotLoaded)
		_, err := f.svc.Render(context.Background(), f.user, f.regID)
		assert.ErrorIs(t, err, ErrReceiptUnavailable)
	})
}

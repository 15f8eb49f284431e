package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kala-yatra/backend/internal/domain"
	mock_repository "github.com/kala-yatra/backend/internal/repository/mock"
)

func TestDashboardList(t *testing.T) {
	registrations := &mock_repository.Registrations{}
	svc := newDashboardService(registrations, testPaymentConfig(), testEventConfig())
	user := SessionUser{ID: uuid.New(), Email: "asha@example.com"}

	newer, older, oldest := uuid.New(), uuid.New(), uuid.New()
	registrations.On("ListByEmailWithPayment", mock.Anything, user.Email).Return([]domain.RegistrationWithPayment{
		{
			Registration: domain.Registration{ID: newer, FullName: "Asha Rao", City: "Pune", CreatedAt: fixedNow()},
			Payment:      &domain.Payment{OrderID: "ART_3_x", ExpectedAmount: 1, Status: domain.PaymentStatusPaymentNotDone},
		},
		{
			Registration: domain.Registration{ID: older, Status: domain.RegistrationStatusPending, CreatedAt: fixedNow().Add(-time.Hour)},
			Payment:      &domain.Payment{OrderID: "ART_2_x", Status: domain.PaymentStatusSuccess},
		},
		{
			Registration: domain.Registration{ID: oldest, CreatedAt: fixedNow().Add(-2 * time.Hour)},
		},
	}, nil).Once()

	entries, err := svc.List(context.Background(), user)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, newer, entries[0].RegistrationID)
	assert.Equal(t, domain.RegistrationStatusPending, entries[0].Status)
	assert.Equal(t, "Kala Yatra 2.0", entries[0].EventName)
	assert.Equal(t, "31st March 2026", entries[0].EventDate)
	require.NotNil(t, entries[0].Remediation)
	assert.Equal(t, "upi://pay?pa=kalayatra@upi&pn=Kala%20Yatra%202.0&am=1&cu=INR&tn=ART_3_x", entries[0].Remediation.UPIURI)

	assert.Equal(t, domain.RegistrationStatusConfirmed, entries[1].Status)
	assert.Equal(t, domain.RegistrationPaymentVerified, entries[1].PaymentStatus)
	assert.Nil(t, entries[1].Remediation)

	assert.Equal(t, domain.RegistrationStatusPending, entries[2].Status)
	assert.Empty(t, entries[2].OrderID)
	assert.Nil(t, entries[2].Remediation)

	registrations.AssertExpectations(t)
}

func TestDashboardListEmpty(t *testing.T) {
	registrations := &mock_repository.Registrations{}
	svc := newDashboardService(registrations, testPaymentConfig(), testEventConfig())
	registrations.On("ListByEmailWithPayment", mock.Anything, "new@example.com").Return([]domain.RegistrationWithPayment(nil), nil).Once()

	entries, err := svc.List(context.Background(), SessionUser{Email: "new@example.com"})
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)

	registrations.On("ListByEmailWithPayment", mock.Anything, "down@example.com").Return(nil, errors.New("timeout")).Once()
	_, err = svc.List(context.Background(), SessionUser{Email: "down@example.com"})
	assert.Error(t, err)
}

package domain

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name    string
		payment *Payment
		want    RegistrationStatus
	}{
		{"no payment", nil, RegistrationStatusPending},
		{"pending", &Payment{Status: PaymentStatusPending}, RegistrationStatusPending},
		{"rejected", &Payment{Status: PaymentStatusRejected}, RegistrationStatusPending},
		{"not done", &Payment{Status: PaymentStatusPaymentNotDone}, RegistrationStatusPending},
		{"verified", &Payment{Status: PaymentStatusVerified}, RegistrationStatusConfirmed},
		{"success", &Payment{Status: PaymentStatusSuccess}, RegistrationStatusConfirmed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(tt.payment))
		})
	}
}

func TestDisplayStatusIgnoresStoredStatus(t *testing.T) {
	r := RegistrationWithPayment{
		Registration: Registration{Status: RegistrationStatusPending, PaymentStatus: RegistrationPaymentPending},
		Payment:      &Payment{Status: PaymentStatusSuccess},
	}
	assert.Equal(t, RegistrationStatusConfirmed, r.DisplayStatus())
	assert.Equal(t, RegistrationPaymentVerified, DerivePaymentStatus(r.Payment))

	r = RegistrationWithPayment{
		Registration: Registration{Status: RegistrationStatusConfirmed},
		Payment:      &Payment{Status: PaymentStatusPending},
	}
	assert.Equal(t, RegistrationStatusPending, r.DisplayStatus())
}

func TestPaymentStatusPredicates(t *testing.T) {
	assert.True(t, PaymentStatusVerified.IsTerminal())
	assert.True(t, PaymentStatusRejected.IsTerminal())
	assert.False(t, PaymentStatusSuccess.IsTerminal())
	assert.False(t, PaymentStatusPending.IsTerminal())
	assert.False(t, PaymentStatusPaymentNotDone.IsTerminal())
}

func TestNewOrderID(t *testing.T) {
	id := uuid.MustParse("abcd1234-0000-7000-8000-000000000000")
	now := time.UnixMilli(1767225600123)

	assert.Equal(t, "ART_1767225600123_abcd1234", NewOrderID("ART", now, id))
}

func TestNewPaymentStatusEvent(t *testing.T) {
	p := &Payment{
		ID:             uuid.New(),
		RegistrationID: uuid.New(),
		OrderID:        "ART_1_x",
		Status:         PaymentStatusRejected,
		PaidAmount:     sql.NullInt64{Int64: 50, Valid: true},
	}

	ev := NewPaymentStatusEvent(p)
	assert.Equal(t, p.RegistrationID, ev.RegistrationID)
	assert.Equal(t, PaymentStatusRejected, ev.Status)
	if assert.NotNil(t, ev.PaidAmount) {
		assert.Equal(t, int64(50), *ev.PaidAmount)
	}

	p.PaidAmount = sql.NullInt64{}
	assert.Nil(t, NewPaymentStatusEvent(p).PaidAmount)
}

func TestRefreshSessionActive(t *testing.T) {
	now := time.Now()
	s := &RefreshSession{ExpiresAt: now.Add(time.Hour)}
	assert.True(t, s.Active(now))
	assert.False(t, s.Active(now.Add(2*time.Hour)))

	s.RevokedAt = &now
	assert.False(t, s.Active(now))
}

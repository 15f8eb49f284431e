package domain

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending        PaymentStatus = "pending"
	PaymentStatusVerified       PaymentStatus = "verified"
	PaymentStatusRejected       PaymentStatus = "rejected"
	PaymentStatusPaymentNotDone PaymentStatus = "payment_not_done"
	PaymentStatusSuccess        PaymentStatus = "success"
)

// IsTerminal reports whether only verification could have set s.
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusVerified || s == PaymentStatusRejected
}

// IsSettled reports whether s counts as paid for display purposes.
func (s PaymentStatus) IsSettled() bool {
	return s == PaymentStatusVerified || s == PaymentStatusSuccess
}

type Payment struct {
	ID             uuid.UUID     `db:"id" json:"id"`
	RegistrationID uuid.UUID     `db:"registration_id" json:"registration_id"`
	OrderID        string        `db:"order_id" json:"order_id"`
	ExpectedAmount int64         `db:"expected_amount" json:"expected_amount"`
	PaidAmount     sql.NullInt64 `db:"paid_amount" json:"paid_amount"`
	Status         PaymentStatus `db:"status" json:"status"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

const orderIDSuffixLen = 8

// NewOrderID builds <prefix>_<unix millis>_<first 8 chars of the registration id>.
// Uniqueness is probabilistic; the store enforces it with a unique index.
func NewOrderID(prefix string, now time.Time, registrationID uuid.UUID) string {
	return fmt.Sprintf("%s_%d_%s", prefix, now.UnixMilli(), registrationID.String()[:orderIDSuffixLen])
}

// PaymentStatusEvent is published after every committed payment mutation.
type PaymentStatusEvent struct {
	PaymentID      uuid.UUID     `json:"payment_id"`
	RegistrationID uuid.UUID     `json:"registration_id"`
	OrderID        string        `json:"order_id"`
	Status         PaymentStatus `json:"status"`
	PaidAmount     *int64        `json:"paid_amount,omitempty"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

func NewPaymentStatusEvent(p *Payment) PaymentStatusEvent {
	ev := PaymentStatusEvent{
		PaymentID:      p.ID,
		RegistrationID: p.RegistrationID,
		OrderID:        p.OrderID,
		Status:         p.Status,
		UpdatedAt:      p.UpdatedAt,
	}
	if p.PaidAmount.Valid {
		amount := p.PaidAmount.Int64
		ev.PaidAmount = &amount
	}
	return ev
}

package domain

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type RegistrationStatus string

const (
	RegistrationStatusPending   RegistrationStatus = "pending"
	RegistrationStatusConfirmed RegistrationStatus = "confirmed"
)

// RegistrationPaymentStatus is the payment flag copied onto a registration by verification.
type RegistrationPaymentStatus string

const (
	RegistrationPaymentPending  RegistrationPaymentStatus = "pending"
	RegistrationPaymentVerified RegistrationPaymentStatus = "verified"
)

type Registration struct {
	ID                uuid.UUID                 `db:"id" json:"id"`
	UserID            *uuid.UUID                `db:"user_id" json:"user_id"`
	RegisteredByEmail string                    `db:"registered_by_email" json:"registered_by_email"`
	FullName          string                    `db:"full_name" json:"full_name"`
	Age               int                       `db:"age" json:"age"`
	DOB               sql.NullTime              `db:"dob" json:"dob"`
	Gender            sql.NullString            `db:"gender" json:"gender"`
	City              string                    `db:"city" json:"city"`
	State             string                    `db:"state" json:"state"`
	Country           string                    `db:"country" json:"country"`
	Email             string                    `db:"email" json:"email"`
	Phone             string                    `db:"phone" json:"phone"`
	ReferralCode      sql.NullString            `db:"referral_code" json:"referral_code"`
	HearAboutUs       sql.NullString            `db:"hear_about_us" json:"hear_about_us"`
	ReceiveUpdates    bool                      `db:"receive_updates" json:"receive_updates"`
	JoinCommunity     bool                      `db:"join_community" json:"join_community"`
	Status            RegistrationStatus        `db:"status" json:"status"`
	PaymentStatus     RegistrationPaymentStatus `db:"payment_status" json:"payment_status"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// RegistrationWithPayment pairs a registration with its most recently created payment.
type RegistrationWithPayment struct {
	Registration
	Payment *Payment
}

// DisplayStatus is the status shown to participants. It always comes from the
// latest payment, never from the stored registration status.
func (r RegistrationWithPayment) DisplayStatus() RegistrationStatus {
	return DeriveStatus(r.Payment)
}

// DeriveStatus reports confirmed iff the latest payment is verified or success.
func DeriveStatus(latest *Payment) RegistrationStatus {
	if latest != nil && latest.Status.IsSettled() {
		return RegistrationStatusConfirmed
	}
	return RegistrationStatusPending
}

// DerivePaymentStatus is DeriveStatus in the payment_status vocabulary.
func DerivePaymentStatus(latest *Payment) RegistrationPaymentStatus {
	if DeriveStatus(latest) == RegistrationStatusConfirmed {
		return RegistrationPaymentVerified
	}
	return RegistrationPaymentPending
}

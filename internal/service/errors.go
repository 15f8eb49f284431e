package service

import "errors"

var (
	ErrInvalidState      = errors.New("invalid oauth state")
	ErrCodeExchange      = errors.New("authorization code exchange failed")
	ErrSignOut           = errors.New("sign out failed")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrOrderIDTaken      = errors.New("order id already exists")
	ErrAdminForbidden    = errors.New("unauthorized admin access")
	ErrPaidAmountMissing = errors.New("admin must provide paid amount")
	ErrPaidAmountInvalid = errors.New("paid amount is not a number")
	ErrPaymentFinalized  = errors.New("payment already finalized")
	ErrPaymentNotFound   = errors.New("payment not found")
	ErrPaymentWrite      = errors.New("payment write failed")
	ErrNotPaid           = errors.New("payment not confirmed by participant")
	ErrMissingFields     = errors.New("missing required fields")

	ErrRegistrationNotFound = errors.New("registration not found")
	ErrRegistrationExists   = errors.New("registration already exists")
	ErrRegistrationSave     = errors.New("registration save failed")
	ErrRegistrationClosed   = errors.New("registrations are closed")
	ErrInvalidDOB           = errors.New("invalid date of birth")

	ErrUnverifiedAdvance  = errors.New("advance requires a verified payment")
	ErrReceiptNotReady    = errors.New("receipt available after payment is verified")
	ErrReceiptUnavailable = errors.New("receipt unavailable")
)

package wizard

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Step int

const (
	StepDetails Step = iota + 1
	StepTerms
	StepPayment
	StepConfirmation
)

func (s Step) String() string {
	switch s {
	case StepDetails:
		return "details"
	case StepTerms:
		return "terms"
	case StepPayment:
		return "payment"
	case StepConfirmation:
		return "confirmation"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

const defaultCountry = "India"

var (
	ErrIncompleteForm   = errors.New("mandatory fields missing")
	ErrTermsNotAccepted = errors.New("terms not accepted")
	ErrWrongStep        = errors.New("operation not allowed in current step")
)

// Form is the participant details entered on the first step.
type Form struct {
	FullName       string `json:"full_name"`
	Age            int    `json:"age"`
	DOB            string `json:"dob,omitempty"`
	Gender         string `json:"gender,omitempty"`
	City           string `json:"city"`
	State          string `json:"state"`
	Country        string `json:"country"`
	Email          string `json:"email"`
	Mobile         string `json:"mobile"`
	ReferralCode   string `json:"referral_code,omitempty"`
	HowDidYouHear  string `json:"how_did_you_hear,omitempty"`
	ReceiveUpdates bool   `json:"receive_updates"`
	JoinCommunity  bool   `json:"join_community"`
}

// Missing returns the json names of empty mandatory fields.
func (f Form) Missing() []string {
	var missing []string
	check := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}

	check("full_name", f.FullName)
	if f.Age <= 0 {
		missing = append(missing, "age")
	}
	check("city", f.City)
	check("state", f.State)
	check("country", f.Country)
	check("email", f.Email)
	check("mobile", f.Mobile)

	return missing
}

// State is one user's progress through the registration flow.
type State struct {
	Step           Step       `json:"step"`
	Form           Form       `json:"form"`
	RegistrationID *uuid.UUID `json:"registration_id,omitempty"`
	OrderID        string     `json:"order_id,omitempty"`
	Verified       bool       `json:"verified"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// New starts a flow with the email prefilled from the session.
func New(email string, now time.Time) *State {
	return &State{
		Step: StepDetails,
		Form: Form{
			Email:   email,
			Country: defaultCountry,
		},
		UpdatedAt: now,
	}
}

// SubmitDetails stores the form and moves to the terms step. The form may be
// edited again from the terms step.
func (s *State) SubmitDetails(form Form, now time.Time) error {
	if s.Step != StepDetails && s.Step != StepTerms {
		return ErrWrongStep
	}
	if len(form.Missing()) > 0 {
		return ErrIncompleteForm
	}

	s.Form = form
	s.Step = StepTerms
	s.UpdatedAt = now
	return nil
}

func (s *State) Back(now time.Time) error {
	if s.Step != StepTerms {
		return ErrWrongStep
	}

	s.Step = StepDetails
	s.UpdatedAt = now
	return nil
}

// CheckTerms reports whether the registration may be persisted.
func (s *State) CheckTerms(agree bool) error {
	if s.Step != StepTerms {
		return ErrWrongStep
	}
	if !agree {
		return ErrTermsNotAccepted
	}
	return nil
}

// AttachPayment records the persisted registration and enters the payment step.
func (s *State) AttachPayment(registrationID uuid.UUID, orderID string, now time.Time) error {
	if s.Step != StepTerms {
		return ErrWrongStep
	}

	s.RegistrationID = &registrationID
	s.OrderID = orderID
	s.Step = StepPayment
	s.UpdatedAt = now
	return nil
}

// Complete moves to confirmation. verified is false when the user advanced
// without an admin having verified the payment.
func (s *State) Complete(verified bool, now time.Time) error {
	if s.Step == StepConfirmation {
		s.Verified = s.Verified || verified
		return nil
	}
	if s.Step != StepPayment {
		return ErrWrongStep
	}

	s.Step = StepConfirmation
	s.Verified = verified
	s.UpdatedAt = now
	return nil
}

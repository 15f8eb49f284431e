package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/kala-yatra/backend/internal/config"
	"github.com/kala-yatra/backend/internal/domain"
	"github.com/kala-yatra/backend/internal/metrics"
	"github.com/kala-yatra/backend/internal/queue/task"
	"github.com/kala-yatra/backend/internal/repository"
	"github.com/kala-yatra/backend/internal/wizard"
	"github.com/kala-yatra/backend/pkg/logger"
)

const dobLayout = "2006-01-02"

type wizardService struct {
	registrations repository.Registrations
	payments      repository.Payments
	drafts        wizard.Store
	notifier      *notifier
	metrics       *metrics.Metrics
	payment       config.PaymentConfig
	event         config.EventConfig
	now           func() time.Time
}

func newWizardService(
	registrations repository.Registrations,
	payments repository.Payments,
	drafts wizard.Store,
	notifier *notifier,
	m *metrics.Metrics,
	paymentCfg config.PaymentConfig,
	eventCfg config.EventConfig,
) *wizardService {
	return &wizardService{
		registrations: registrations,
		payments:      payments,
		drafts:        drafts,
		notifier:      notifier,
		metrics:       m,
		payment:       paymentCfg,
		event:         eventCfg,
		now:           time.Now,
	}
}

func (s *wizardService) load(ctx context.Context, user SessionUser) (*wizard.State, error) {
	state, err := s.drafts.Get(ctx, user.ID)
	if err != nil {
		if errors.Is(err, wizard.ErrNoDraft) {
			return wizard.New(user.Email, s.now()), nil
		}
		return nil, fmt.Errorf("load wizard draft failed: %w", err)
	}

	return state, nil
}

func (s *wizardService) save(ctx context.Context, user SessionUser, state *wizard.State) error {
	if err := s.drafts.Save(ctx, user.ID, state); err != nil {
		return fmt.Errorf("save wizard draft failed: %w", err)
	}
	return nil
}

func stateView(state *wizard.State) *WizardView {
	return &WizardView{
		Step:     state.Step,
		StepName: state.Step.String(),
		State:    state,
	}
}

// Current returns the draft, or the existing registration when the user
// already registered outside the current flow.
func (s *wizardService) Current(ctx context.Context, user SessionUser) (*WizardView, error) {
	state, err := s.load(ctx, user)
	if err != nil {
		return nil, err
	}

	if state.RegistrationID != nil && state.Step >= wizard.StepPayment {
		return stateView(state), nil
	}

	registrations, err := s.registrations.ListByEmailWithPayment(ctx, user.Email)
	if err != nil {
		return nil, fmt.Errorf("list registrations failed: %w", err)
	}
	if len(registrations) > 0 {
		return &WizardView{
			Step:     wizard.StepConfirmation,
			StepName: wizard.StepConfirmation.String(),
			Existing: existingRegistration(registrations[0]),
		}, nil
	}

	return stateView(state), nil
}

func existingRegistration(r domain.RegistrationWithPayment) *ExistingRegistration {
	existing := &ExistingRegistration{
		RegistrationID:   r.ID,
		FullName:         r.FullName,
		Status:           r.DisplayStatus(),
		PaymentStatus:    domain.DerivePaymentStatus(r.Payment),
		NeedsRemediation: r.Payment == nil || r.Payment.Status == domain.PaymentStatusPaymentNotDone,
		CreatedAt:        r.CreatedAt,
	}
	if r.Payment != nil {
		existing.OrderID = r.Payment.OrderID
	}
	return existing
}

func (s *wizardService) SubmitDetails(ctx context.Context, user SessionUser, form wizard.Form) (*WizardView, error) {
	state, err := s.load(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := state.SubmitDetails(normalizeForm(form), s.now()); err != nil {
		return nil, err
	}

	if err := s.save(ctx, user, state); err != nil {
		return nil, err
	}

	return stateView(state), nil
}

func normalizeForm(f wizard.Form) wizard.Form {
	f.FullName = strings.TrimSpace(f.FullName)
	f.City = strings.TrimSpace(f.City)
	f.State = strings.TrimSpace(f.State)
	f.Country = strings.TrimSpace(f.Country)
	f.Email = strings.TrimSpace(f.Email)
	f.Mobile = strings.TrimSpace(f.Mobile)
	return f
}

func (s *wizardService) Back(ctx context.Context, user SessionUser) (*WizardView, error) {
	state, err := s.load(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := state.Back(s.now()); err != nil {
		return nil, err
	}

	if err := s.save(ctx, user, state); err != nil {
		return nil, err
	}

	return stateView(state), nil
}

// AcceptTerms persists the registration and its first payment together and
// moves the flow to the payment step.
func (s *wizardService) AcceptTerms(ctx context.Context, user SessionUser, agree bool) (*WizardView, error) {
	state, err := s.load(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := state.CheckTerms(agree); err != nil {
		return nil, err
	}

	now := s.now()
	if !s.event.Deadline.IsZero() && now.After(s.event.Deadline) {
		return nil, ErrRegistrationClosed
	}

	_, err = s.registrations.GetLatestByEmail(ctx, user.Email)
	switch {
	case err == nil:
		return nil, ErrRegistrationExists
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("check existing registration failed: %w", err)
	}

	registration, payment, err := s.buildRegistration(user, state.Form, now)
	if err != nil {
		return nil, err
	}

	if err := s.persist(ctx, registration, payment); err != nil {
		return nil, err
	}

	if err := state.AttachPayment(registration.ID, payment.OrderID, now); err != nil {
		return nil, err
	}
	if err := s.save(ctx, user, state); err != nil {
		// the registration is committed; the next GET /wizard finds it by email
		logger.Error("save wizard draft after registration failed",
			zap.String("registration_id", registration.ID.String()), zap.Error(err))
	}

	s.metrics.RegistrationsCreated.Inc()
	s.metrics.PaymentsCreated.WithLabelValues(paymentSourceWizard).Inc()
	s.notifier.paymentChanged(ctx, payment)
	s.notifier.email(ctx, task.SendEmail{
		Kind:     task.EmailRegistrationReceived,
		Email:    registration.Email,
		FullName: registration.FullName,
		OrderID:  payment.OrderID,
		Amount:   payment.ExpectedAmount,
	})

	logger.Info("registration created",
		zap.String("registration_id", registration.ID.String()),
		zap.String("order_id", payment.OrderID))

	return stateView(state), nil
}

func (s *wizardService) buildRegistration(user SessionUser, form wizard.Form, now time.Time) (*domain.Registration, *domain.Payment, error) {
	var dob sql.NullTime
	if form.DOB != "" {
		t, err := time.Parse(dobLayout, form.DOB)
		if err != nil {
			return nil, nil, ErrInvalidDOB
		}
		dob = sql.NullTime{Time: t, Valid: true}
	}

	registrationID, err := uuid.NewV7()
	if err != nil {
		return nil, nil, fmt.Errorf("generate registration id failed: %w", err)
	}
	paymentID, err := uuid.NewV7()
	if err != nil {
		return nil, nil, fmt.Errorf("generate payment id failed: %w", err)
	}

	userID := user.ID
	registration := &domain.Registration{
		ID:                registrationID,
		UserID:            &userID,
		RegisteredByEmail: user.Email,
		FullName:          form.FullName,
		Age:               form.Age,
		DOB:               dob,
		Gender:            nullString(form.Gender),
		City:              form.City,
		State:             form.State,
		Country:           form.Country,
		Email:             form.Email,
		Phone:             form.Mobile,
		ReferralCode:      nullString(form.ReferralCode),
		HearAboutUs:       nullString(form.HowDidYouHear),
		ReceiveUpdates:    form.ReceiveUpdates,
		JoinCommunity:     form.JoinCommunity,
		Status:            domain.RegistrationStatusPending,
		PaymentStatus:     domain.RegistrationPaymentPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	payment := &domain.Payment{
		ID:             paymentID,
		RegistrationID: registrationID,
		OrderID:        domain.NewOrderID(s.payment.OrderPrefix, now, registrationID),
		ExpectedAmount: s.payment.SelfServeAmount,
		Status:         domain.PaymentStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	return registration, payment, nil
}

func (s *wizardService) persist(ctx context.Context, registration *domain.Registration, payment *domain.Payment) error {
	ctx, span := tracer.Start(ctx, "registration.create",
		trace.WithAttributes(attribute.String("registration.id", registration.ID.String())))
	defer span.End()

	err := s.registrations.CreateWithPayment(ctx, registration, payment)
	if err == nil {
		return nil
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	if errors.Is(err, domain.ErrDuplicateEntry) {
		return ErrRegistrationExists
	}

	logger.Error("create registration failed", zap.String("email", registration.RegisteredByEmail), zap.Error(err))
	return fmt.Errorf("%w: %v", ErrRegistrationSave, err)
}

func nullString(v string) sql.NullString {
	v = strings.TrimSpace(v)
	return sql.NullString{String: v, Valid: v != ""}
}

// Advance finishes the flow on the participant's word, before an admin verified
// the payment. It can be switched off with PAYMENT_ALLOW_UNVERIFIED_ADVANCE.
func (s *wizardService) Advance(ctx context.Context, user SessionUser) (*WizardView, error) {
	state, err := s.load(ctx, user)
	if err != nil {
		return nil, err
	}

	if state.Step != wizard.StepPayment || state.RegistrationID == nil {
		return nil, wizard.ErrWrongStep
	}

	verified := false
	payment, err := s.payments.GetLatestByRegistrationID(ctx, *state.RegistrationID)
	switch {
	case err == nil:
		verified = payment.Status.IsSettled()
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("get latest payment failed: %w", err)
	}

	if !verified {
		if !s.payment.AllowUnverifiedAdvance {
			return nil, ErrUnverifiedAdvance
		}
		logger.Warn("wizard advanced without verified payment",
			zap.String("registration_id", state.RegistrationID.String()),
			zap.String("user_id", user.ID.String()))
	}

	if err := state.Complete(verified, s.now()); err != nil {
		return nil, err
	}

	if err := s.save(ctx, user, state); err != nil {
		return nil, err
	}

	return stateView(state), nil
}

func (s *wizardService) CompleteVerified(ctx context.Context, userID uuid.UUID, registrationID uuid.UUID) error {
	state, err := s.drafts.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, wizard.ErrNoDraft) {
			return nil
		}
		return fmt.Errorf("load wizard draft failed: %w", err)
	}

	if state.RegistrationID == nil || *state.RegistrationID != registrationID {
		return nil
	}

	if err := state.Complete(true, s.now()); err != nil {
		return err
	}

	if err := s.drafts.Save(ctx, userID, state); err != nil {
		return fmt.Errorf("save wizard draft failed: %w", err)
	}

	return nil
}

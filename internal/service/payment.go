package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
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
	"github.com/kala-yatra/backend/pkg/hash"
	"github.com/kala-yatra/backend/pkg/logger"
)

const (
	msgNoPayment        = "No pending payment found for this registration"
	msgAlreadyVerified  = "Payment already verified!"
	msgAlreadyRejected  = "This payment has been rejected. Please try again with ₹%d."
	msgPendingReview    = "Payment is pending verification. Our team will verify it shortly. Check back in a few moments."
	msgVerified         = "✅ Payment verified! Amount ₹%d confirmed."
	msgRejected         = "❌ Payment rejected. Amount ₹%s is invalid. Only ₹%d is accepted."
	paymentSourceAPI    = "api"
	paymentSourceWizard = "wizard"
)

type paymentService struct {
	registrations repository.Registrations
	payments      repository.Payments
	hasher        hash.SecretHasher
	adminDigest   string
	notifier      *notifier
	metrics       *metrics.Metrics
	config        config.PaymentConfig
	now           func() time.Time
}

func newPaymentService(
	registrations repository.Registrations,
	payments repository.Payments,
	hasher hash.SecretHasher,
	notifier *notifier,
	m *metrics.Metrics,
	cfg config.PaymentConfig,
) *paymentService {
	var digest string
	if cfg.AdminSecret != "" {
		d, err := hasher.Hash(cfg.AdminSecret)
		if err != nil {
			logger.Error("hash admin secret failed, admin verification disabled", zap.Error(err))
		}
		digest = d
	}

	return &paymentService{
		registrations: registrations,
		payments:      payments,
		hasher:        hasher,
		adminDigest:   digest,
		notifier:      notifier,
		metrics:       m,
		config:        cfg,
		now:           time.Now,
	}
}

func (s *paymentService) Create(ctx context.Context, input CreatePaymentInput) (*domain.Payment, error) {
	if input.ExpectedAmount != s.config.SelfServeAmount {
		return nil, ErrInvalidAmount
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate payment id failed: %w", err)
	}

	now := s.now()
	payment := &domain.Payment{
		ID:             id,
		RegistrationID: input.RegistrationID,
		OrderID:        input.OrderID,
		ExpectedAmount: input.ExpectedAmount,
		Status:         domain.PaymentStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.payments.Create(ctx, payment); err != nil {
		switch {
		case errors.Is(err, domain.ErrForeignKey):
			return nil, ErrRegistrationNotFound
		case errors.Is(err, domain.ErrDuplicateEntry):
			return nil, ErrOrderIDTaken
		}
		return nil, fmt.Errorf("create payment failed: %w", err)
	}

	s.metrics.PaymentsCreated.WithLabelValues(paymentSourceAPI).Inc()
	s.notifier.paymentChanged(ctx, payment)

	return payment, nil
}

func (s *paymentService) Verify(ctx context.Context, input VerifyPaymentInput) (*VerifyPaymentResult, error) {
	ctx, span := tracer.Start(ctx, "payment.verify",
		trace.WithAttributes(attribute.String("registration.id", input.RegistrationID.String())))
	defer span.End()

	result, err := s.verify(ctx, input)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Bool("payment.verified", result.Verified))
	return result, nil
}

func (s *paymentService) verify(ctx context.Context, input VerifyPaymentInput) (*VerifyPaymentResult, error) {
	isAdmin := input.AdminSecret != ""
	if isAdmin && (s.adminDigest == "" || !s.hasher.Equal(input.AdminSecret, s.adminDigest)) {
		s.metrics.Verifications.WithLabelValues(metrics.OutcomeForbidden).Inc()
		logger.Warn("verify payment with wrong admin secret",
			zap.String("registration_id", input.RegistrationID.String()))
		return nil, ErrAdminForbidden
	}

	if input.RegistrationID == uuid.Nil {
		return nil, ErrMissingFields
	}

	payment, err := s.payments.GetLatestByRegistrationID(ctx, input.RegistrationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &VerifyPaymentResult{Verified: false, Message: msgNoPayment}, nil
		}
		return nil, fmt.Errorf("get latest payment failed: %w", err)
	}

	if result := s.terminalResult(payment); result != nil {
		return result, nil
	}

	if !isAdmin {
		s.metrics.Verifications.WithLabelValues(metrics.OutcomeStatus).Inc()
		return &VerifyPaymentResult{
			Verified: false,
			Message:  msgPendingReview,
			Status:   payment.Status,
		}, nil
	}

	if input.PaidAmountMalformed {
		return nil, ErrPaidAmountInvalid
	}
	if input.PaidAmount == nil || *input.PaidAmount == 0 {
		return nil, ErrPaidAmountMissing
	}
	paid := *input.PaidAmount

	if paid != float64(s.config.VerificationAmount) {
		// paid_amount holds whole rupees
		stored := int64(math.Trunc(paid))
		if err := s.payments.Reject(ctx, payment, stored); err != nil {
			return s.lostRace(ctx, input.RegistrationID, err)
		}

		s.metrics.Verifications.WithLabelValues(metrics.OutcomeRejected).Inc()
		logger.Info("payment rejected",
			zap.String("payment_id", payment.ID.String()),
			zap.Float64("paid_amount", paid))
		s.afterFinalized(ctx, payment, task.EmailPaymentRejected, stored)

		return &VerifyPaymentResult{
			Verified: false,
			Message:  fmt.Sprintf(msgRejected, formatAmount(paid), s.config.VerificationAmount),
		}, nil
	}

	if err := s.payments.Verify(ctx, payment, s.config.VerificationAmount); err != nil {
		return s.lostRace(ctx, input.RegistrationID, err)
	}

	s.metrics.Verifications.WithLabelValues(metrics.OutcomeVerified).Inc()
	logger.Info("payment verified", zap.String("payment_id", payment.ID.String()))
	s.afterFinalized(ctx, payment, task.EmailPaymentVerified, s.config.VerificationAmount)

	return &VerifyPaymentResult{
		Verified: true,
		Message:  fmt.Sprintf(msgVerified, s.config.VerificationAmount),
	}, nil
}

// formatAmount prints 50 as "50" and 99.5 as "99.5".
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// terminalResult answers repeated calls for verified or rejected payments.
func (s *paymentService) terminalResult(p *domain.Payment) *VerifyPaymentResult {
	switch p.Status {
	case domain.PaymentStatusVerified:
		return &VerifyPaymentResult{Verified: true, Message: msgAlreadyVerified}
	case domain.PaymentStatusRejected:
		return &VerifyPaymentResult{Verified: false, Message: fmt.Sprintf(msgAlreadyRejected, s.config.VerificationAmount)}
	}
	return nil
}

// lostRace handles a failed status write. When another admin finalized the
// payment first, their outcome is reported.
func (s *paymentService) lostRace(ctx context.Context, registrationID uuid.UUID, writeErr error) (*VerifyPaymentResult, error) {
	if !errors.Is(writeErr, domain.ErrNoRowsAffected) {
		logger.Error("payment status write failed",
			zap.String("registration_id", registrationID.String()), zap.Error(writeErr))
		return nil, fmt.Errorf("%w: %v", ErrPaymentWrite, writeErr)
	}

	current, err := s.payments.GetLatestByRegistrationID(ctx, registrationID)
	if err != nil {
		return nil, fmt.Errorf("%w: reread payment: %v", ErrPaymentWrite, err)
	}

	if result := s.terminalResult(current); result != nil {
		return result, nil
	}

	return nil, fmt.Errorf("%w: payment %s not updated", ErrPaymentWrite, current.ID)
}

func (s *paymentService) afterFinalized(ctx context.Context, p *domain.Payment, kind task.EmailKind, paid int64) {
	s.notifier.paymentChanged(ctx, p)

	registration, err := s.registrations.GetByID(ctx, p.RegistrationID)
	if err != nil {
		logger.Error("load registration for email failed",
			zap.String("registration_id", p.RegistrationID.String()), zap.Error(err))
		return
	}

	s.notifier.email(ctx, task.SendEmail{
		Kind:     kind,
		Email:    registration.Email,
		FullName: registration.FullName,
		OrderID:  p.OrderID,
		Amount:   paid,
	})
}

func (s *paymentService) SelfReport(ctx context.Context, user SessionUser, orderID string, hasPaid bool) (*domain.Payment, error) {
	if !hasPaid {
		return nil, ErrNotPaid
	}

	payment, err := s.payments.GetByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("get payment by order id failed: %w", err)
	}

	if err := ensureOwner(ctx, s.registrations, user, payment.RegistrationID); err != nil {
		return nil, err
	}

	// a rejected payment may be paid again and resubmitted
	if payment.Status == domain.PaymentStatusVerified {
		return nil, ErrPaymentFinalized
	}

	if err := s.payments.MarkPending(ctx, payment); err != nil {
		if errors.Is(err, domain.ErrNoRowsAffected) {
			return nil, ErrPaymentFinalized
		}
		return nil, fmt.Errorf("%w: %v", ErrPaymentWrite, err)
	}

	s.metrics.SelfReports.Inc()
	s.notifier.paymentChanged(ctx, payment)

	return payment, nil
}

// ensureOwner hides registrations of other users behind ErrPaymentNotFound.
func ensureOwner(ctx context.Context, registrations repository.Registrations, user SessionUser, registrationID uuid.UUID) error {
	registration, err := registrations.GetByID(ctx, registrationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrPaymentNotFound
		}
		return fmt.Errorf("get registration failed: %w", err)
	}

	if registration.RegisteredByEmail != user.Email {
		return ErrPaymentNotFound
	}

	return nil
}

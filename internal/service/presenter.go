package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mssola/useragent"
	"go.uber.org/zap"

	"github.com/kala-yatra/backend/internal/config"
	"github.com/kala-yatra/backend/internal/domain"
	"github.com/kala-yatra/backend/internal/metrics"
	"github.com/kala-yatra/backend/internal/realtime"
	"github.com/kala-yatra/backend/internal/repository"
	"github.com/kala-yatra/backend/pkg/logger"
	"github.com/kala-yatra/backend/pkg/upi"
)

const defaultHeartbeat = 15 * time.Second

type presenterService struct {
	registrations repository.Registrations
	payments      repository.Payments
	subscriber    realtime.Subscriber
	wizard        Wizard
	metrics       *metrics.Metrics
	config        config.PaymentConfig
}

func newPresenterService(
	registrations repository.Registrations,
	payments repository.Payments,
	subscriber realtime.Subscriber,
	wizard Wizard,
	m *metrics.Metrics,
	cfg config.PaymentConfig,
) *presenterService {
	return &presenterService{
		registrations: registrations,
		payments:      payments,
		subscriber:    subscriber,
		wizard:        wizard,
		metrics:       m,
		config:        cfg,
	}
}

func paymentLink(cfg config.PaymentConfig, p *domain.Payment) upi.Link {
	return upi.Link{
		PayeeID:      cfg.PayeeID,
		MerchantName: cfg.MerchantName,
		Amount:       p.ExpectedAmount,
		OrderID:      p.OrderID,
	}
}

func paymentMode(userAgent string) PaymentMode {
	if useragent.New(userAgent).Mobile() {
		return PaymentModeMobile
	}
	return PaymentModeDesktop
}

func (s *presenterService) latest(ctx context.Context, user SessionUser, registrationID uuid.UUID) (*domain.Payment, error) {
	if err := ensureOwner(ctx, s.registrations, user, registrationID); err != nil {
		return nil, err
	}

	payment, err := s.payments.GetLatestByRegistrationID(ctx, registrationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("get latest payment failed: %w", err)
	}

	return payment, nil
}

func (s *presenterService) Present(ctx context.Context, user SessionUser, registrationID uuid.UUID, userAgent string) (*PaymentView, error) {
	payment, err := s.latest(ctx, user, registrationID)
	if err != nil {
		return nil, err
	}

	link := paymentLink(s.config, payment)
	qr, err := link.QRCodeDataURL()
	if err != nil {
		return nil, fmt.Errorf("render payment qr code failed: %w", err)
	}

	return &PaymentView{
		RegistrationID: registrationID,
		OrderID:        payment.OrderID,
		Status:         payment.Status,
		Amount:         payment.ExpectedAmount,
		UPIURI:         link.URI(),
		QRCode:         qr,
		Mode:           paymentMode(userAgent),
		Verified:       payment.Status == domain.PaymentStatusVerified,
	}, nil
}

func (s *presenterService) Watch(ctx context.Context, user SessionUser, registrationID uuid.UUID, emit func(StreamEvent) error) error {
	if err := ensureOwner(ctx, s.registrations, user, registrationID); err != nil {
		return err
	}

	// subscribe before reading the current status so no change is missed in between
	sub, err := s.subscriber.Subscribe(ctx, registrationID)
	if err != nil {
		return fmt.Errorf("subscribe payment status failed: %w", err)
	}
	defer sub.Close()

	s.metrics.EventStreams.Inc()
	defer s.metrics.EventStreams.Dec()

	payment, err := s.payments.GetLatestByRegistrationID(ctx, registrationID)
	switch {
	case err == nil:
		ev := domain.NewPaymentStatusEvent(payment)
		if ev.Status == domain.PaymentStatusVerified {
			return s.complete(ctx, user, ev, emit)
		}
		if err := emit(StreamEvent{Type: StreamEventStatus, Payment: &ev}); err != nil {
			return err
		}
	case !errors.Is(err, domain.ErrNotFound):
		return fmt.Errorf("get latest payment failed: %w", err)
	}

	heartbeat := s.config.EventsHeartbeatInterval
	if heartbeat <= 0 {
		heartbeat = defaultHeartbeat
	}
	ticker := time.NewTicker(heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-sub.Events():
			if !ok {
				return nil
			}
			if ev.Status == domain.PaymentStatusVerified {
				return s.complete(ctx, user, ev, emit)
			}
			if err := emit(StreamEvent{Type: StreamEventStatus, Payment: &ev}); err != nil {
				return err
			}
		case <-ticker.C:
			if err := emit(StreamEvent{Type: StreamEventPing}); err != nil {
				return err
			}
		}
	}
}

// complete announces the verification, waits the completion delay and then
// moves the user's flow to confirmation. A closed stream cancels the wait.
func (s *presenterService) complete(ctx context.Context, user SessionUser, ev domain.PaymentStatusEvent, emit func(StreamEvent) error) error {
	if err := emit(StreamEvent{Type: StreamEventVerified, Payment: &ev}); err != nil {
		return err
	}

	timer := time.NewTimer(s.config.CompletionDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil
	case <-timer.C:
	}

	if err := s.wizard.CompleteVerified(ctx, user.ID, ev.RegistrationID); err != nil {
		logger.Error("complete wizard after verification failed",
			zap.String("registration_id", ev.RegistrationID.String()), zap.Error(err))
	}

	return emit(StreamEvent{Type: StreamEventComplete, Payment: &ev})
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kala-yatra/backend/internal/config"
	"github.com/kala-yatra/backend/internal/domain"
	"github.com/kala-yatra/backend/internal/repository"
	"github.com/kala-yatra/backend/pkg/pdf"
)

type receiptService struct {
	registrations repository.Registrations
	payments      repository.Payments
	renderer      ReceiptRenderer
	event         config.EventConfig
	now           func() time.Time
}

func newReceiptService(
	registrations repository.Registrations,
	payments repository.Payments,
	renderer ReceiptRenderer,
	eventCfg config.EventConfig,
) *receiptService {
	return &receiptService{
		registrations: registrations,
		payments:      payments,
		renderer:      renderer,
		event:         eventCfg,
		now:           time.Now,
	}
}

func (s *receiptService) Render(ctx context.Context, user SessionUser, registrationID uuid.UUID) ([]byte, error) {
	registration, err := s.registrations.GetByID(ctx, registrationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("get registration failed: %w", err)
	}
	if registration.RegisteredByEmail != user.Email {
		return nil, ErrRegistrationNotFound
	}

	payment, err := s.payments.GetLatestByRegistrationID(ctx, registrationID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get latest payment failed: %w", err)
	}
	if domain.DeriveStatus(payment) != domain.RegistrationStatusConfirmed {
		return nil, ErrReceiptNotReady
	}

	if s.renderer == nil {
		return nil, ErrReceiptUnavailable
	}

	amount := payment.ExpectedAmount
	if payment.PaidAmount.Valid {
		amount = payment.PaidAmount.Int64
	}

	doc, err := s.renderer.GenerateReceipt(pdf.Receipt{
		EventName:      s.event.Name,
		EventDate:      s.event.Date,
		RegistrationID: registration.ID.String(),
		OrderID:        payment.OrderID,
		FullName:       registration.FullName,
		Email:          registration.Email,
		Phone:          registration.Phone,
		City:           registration.City,
		Amount:         amount,
		Status:         string(domain.RegistrationStatusConfirmed),
		IssuedAt:       s.now(),
	})
	if err != nil {
		if errors.Is(err, pdf.ErrFontNotLoaded) {
			return nil, ErrReceiptUnavailable
		}
		return nil, fmt.Errorf("render receipt failed: %w", err)
	}

	return doc, nil
}

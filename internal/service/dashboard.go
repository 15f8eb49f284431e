package service

import (
	"context"
	"fmt"

	"github.com/kala-yatra/backend/internal/config"
	"github.com/kala-yatra/backend/internal/domain"
	"github.com/kala-yatra/backend/internal/repository"
)

type dashboardService struct {
	registrations repository.Registrations
	payment       config.PaymentConfig
	event         config.EventConfig
}

func newDashboardService(registrations repository.Registrations, paymentCfg config.PaymentConfig, eventCfg config.EventConfig) *dashboardService {
	return &dashboardService{
		registrations: registrations,
		payment:       paymentCfg,
		event:         eventCfg,
	}
}

// List returns the user's registrations, newest first. Statuses are derived
// from each registration's latest payment.
func (s *dashboardService) List(ctx context.Context, user SessionUser) ([]DashboardEntry, error) {
	registrations, err := s.registrations.ListByEmailWithPayment(ctx, user.Email)
	if err != nil {
		return nil, fmt.Errorf("list registrations failed: %w", err)
	}

	entries := make([]DashboardEntry, 0, len(registrations))
	for _, r := range registrations {
		entry := DashboardEntry{
			RegistrationID: r.ID,
			FullName:       r.FullName,
			City:           r.City,
			Status:         r.DisplayStatus(),
			PaymentStatus:  domain.DerivePaymentStatus(r.Payment),
			EventName:      s.event.Name,
			EventDate:      s.event.Date,
			CreatedAt:      r.CreatedAt,
		}

		if r.Payment != nil {
			entry.OrderID = r.Payment.OrderID
			entry.LatestPayment = r.Payment.Status

			if r.Payment.Status == domain.PaymentStatusPaymentNotDone {
				entry.Remediation = &Remediation{
					OrderID: r.Payment.OrderID,
					Amount:  r.Payment.ExpectedAmount,
					UPIURI:  paymentLink(s.payment, r.Payment).URI(),
				}
			}
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

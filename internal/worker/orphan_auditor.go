package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/kala-yatra/backend/internal/config"
	"github.com/kala-yatra/backend/internal/metrics"
	"github.com/kala-yatra/backend/internal/repository"
	"github.com/kala-yatra/backend/pkg/logger"
	"go.uber.org/zap"
)

// orphanAuditor reports registrations whose payment insert never happened.
// It only logs; an operator decides how to remediate.
type orphanAuditor struct {
	registrations repository.Registrations
	metrics       *metrics.Metrics
	config        config.AuditConfig
	now           func() time.Time
}

func newOrphanAuditor(registrations repository.Registrations, m *metrics.Metrics, cfg config.AuditConfig) *orphanAuditor {
	return &orphanAuditor{
		registrations: registrations,
		metrics:       m,
		config:        cfg,
		now:           time.Now,
	}
}

func (a *orphanAuditor) Audit(ctx context.Context) (int, error) {
	cutoff := a.now().Add(-a.config.OrphanGracePeriod)

	orphans, err := a.registrations.ListWithoutPayment(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("list registrations without payment: %w", err)
	}

	for _, r := range orphans {
		logger.Warn("registration without payment record",
			zap.String("registration_id", r.ID.String()),
			zap.String("registered_by_email", r.RegisteredByEmail),
			zap.Time("created_at", r.CreatedAt),
		)
	}

	if a.metrics != nil {
		a.metrics.OrphanRegistrations.Set(float64(len(orphans)))
	}

	return len(orphans), nil
}

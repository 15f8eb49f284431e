package processor

import (
	"context"
	"fmt"

	"github.com/kala-yatra/backend/internal/worker"

	"github.com/hibiken/asynq"
)

type auditOrphansProcessor struct {
	workers *worker.Workers
}

func NewAuditOrphansProcessor(workers *worker.Workers) *auditOrphansProcessor {
	return &auditOrphansProcessor{
		workers: workers,
	}
}

func (p *auditOrphansProcessor) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	if _, err := p.workers.OrphanAuditor.Audit(ctx); err != nil {
		return fmt.Errorf("audit orphan registrations failed: %w", err)
	}

	return nil
}

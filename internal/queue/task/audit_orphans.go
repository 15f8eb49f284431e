package task

import (
	"github.com/hibiken/asynq"
)

const (
	AuditOrphansTaskName  = "auditOrphansTask"
	AuditOrphansQueueName = "auditQueue"
)

// NewAuditOrphansTask looks for registrations left without a payment record.
func NewAuditOrphansTask() *asynq.Task {
	return asynq.NewTask(
		AuditOrphansTaskName,
		nil,
		asynq.MaxRetry(0),
		asynq.Queue(AuditOrphansQueueName),
	)
}

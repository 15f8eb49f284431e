package processor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kala-yatra/backend/internal/queue/task"
	"github.com/kala-yatra/backend/internal/worker"

	"github.com/hibiken/asynq"
)

type sendEmailProcessor struct {
	workers *worker.Workers
}

func NewSendEmailProcessor(workers *worker.Workers) *sendEmailProcessor {
	return &sendEmailProcessor{
		workers: workers,
	}
}

func (p *sendEmailProcessor) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var data task.SendEmail
	err := json.Unmarshal(t.Payload(), &data)
	if err != nil {
		return fmt.Errorf("process send email task json unmarshal failed: %w", err)
	}

	input := worker.EmailInput{
		Email:    data.Email,
		FullName: data.FullName,
		OrderID:  data.OrderID,
		Amount:   data.Amount,
	}

	switch data.Kind {
	case task.EmailRegistrationReceived:
		err = p.workers.EmailSender.SendRegistrationReceived(ctx, input)
	case task.EmailPaymentVerified:
		err = p.workers.EmailSender.SendPaymentVerified(ctx, input)
	case task.EmailPaymentRejected:
		err = p.workers.EmailSender.SendPaymentRejected(ctx, input)
	default:
		return fmt.Errorf("unknown email kind %q: %w", data.Kind, asynq.SkipRetry)
	}
	if err != nil {
		return fmt.Errorf("send %s email failed: %w", data.Kind, err)
	}

	return nil
}

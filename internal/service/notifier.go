package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/kala-yatra/backend/internal/domain"
	"github.com/kala-yatra/backend/internal/queue/task"
	"github.com/kala-yatra/backend/internal/realtime"
	"github.com/kala-yatra/backend/pkg/logger"
)

// notifier fans committed changes out to realtime subscribers and the email
// queue. Failures are logged; the committed write stands.
type notifier struct {
	publisher realtime.Publisher
	tasks     TaskEnqueuer
}

func newNotifier(publisher realtime.Publisher, tasks TaskEnqueuer) *notifier {
	return &notifier{
		publisher: publisher,
		tasks:     tasks,
	}
}

func (n *notifier) paymentChanged(ctx context.Context, p *domain.Payment) {
	if n.publisher == nil {
		return
	}

	if err := n.publisher.Publish(context.WithoutCancel(ctx), domain.NewPaymentStatusEvent(p)); err != nil {
		logger.Error("publish payment status failed",
			zap.String("payment_id", p.ID.String()),
			zap.String("status", string(p.Status)),
			zap.Error(err))
	}
}

func (n *notifier) email(ctx context.Context, data task.SendEmail) {
	if n.tasks == nil || data.Email == "" {
		return
	}

	t, err := task.NewSendEmailTask(data)
	if err != nil {
		logger.Error("build send email task failed", zap.String("kind", string(data.Kind)), zap.Error(err))
		return
	}

	if err := n.tasks.Enqueue(context.WithoutCancel(ctx), t); err != nil {
		logger.Error("enqueue send email task failed",
			zap.String("kind", string(data.Kind)),
			zap.String("order_id", data.OrderID),
			zap.Error(err))
	}
}

package worker

import (
	"context"

	"github.com/kala-yatra/backend/internal/config"
	"github.com/kala-yatra/backend/internal/metrics"
	"github.com/kala-yatra/backend/internal/repository"
	emailProvider "github.com/kala-yatra/backend/pkg/email"
)

type Workers struct {
	EmailSender   EmailSender
	OrphanAuditor OrphanAuditor
}

type Deps struct {
	Repos         *repository.Repositories
	EmailProvider emailProvider.Sender
	Config        *config.Config
	Metrics       *metrics.Metrics
}

// EmailInput carries the template data shared by all participant emails.
type EmailInput struct {
	Email    string
	FullName string
	OrderID  string
	Amount   int64
}

type EmailSender interface {
	SendRegistrationReceived(ctx context.Context, input EmailInput) error
	SendPaymentVerified(ctx context.Context, input EmailInput) error
	SendPaymentRejected(ctx context.Context, input EmailInput) error
}

type OrphanAuditor interface {
	// Audit returns the number of registrations found without a payment.
	Audit(ctx context.Context) (int, error)
}

func NewWorkers(deps Deps) *Workers {
	return &Workers{
		EmailSender:   newEmailSender(deps.EmailProvider, deps.Config.Email, deps.Config.Event),
		OrphanAuditor: newOrphanAuditor(deps.Repos.Registrations, deps.Metrics, deps.Config.Audit),
	}
}

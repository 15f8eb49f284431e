package worker

import (
	"context"
	"fmt"

	"github.com/kala-yatra/backend/internal/config"
	emailProvider "github.com/kala-yatra/backend/pkg/email"
	"github.com/kala-yatra/backend/pkg/logger"
	"go.uber.org/zap"
)

type emailSender struct {
	sender emailProvider.Sender
	config config.EmailConfig
	event  config.EventConfig
}

func newEmailSender(
	sender emailProvider.Sender,
	config config.EmailConfig,
	event config.EventConfig,
) *emailSender {
	return &emailSender{
		sender: sender,
		config: config,
		event:  event,
	}
}

type participantEmailInput struct {
	FullName  string
	OrderID   string
	Amount    int64
	EventName string
	EventDate string
}

func (s *emailSender) SendRegistrationReceived(ctx context.Context, input EmailInput) error {
	return s.send(ctx, input, "Registration received: "+s.event.Name, s.config.Templates.RegistrationReceived)
}

func (s *emailSender) SendPaymentVerified(ctx context.Context, input EmailInput) error {
	return s.send(ctx, input, "Payment verified: "+s.event.Name, s.config.Templates.PaymentVerified)
}

func (s *emailSender) SendPaymentRejected(ctx context.Context, input EmailInput) error {
	return s.send(ctx, input, "Payment could not be verified: "+s.event.Name, s.config.Templates.PaymentRejected)
}

func (s *emailSender) send(_ context.Context, input EmailInput, subject, templateFile string) error {
	if !s.config.Enabled {
		logger.Debug("email disabled, skipping", zap.String("subject", subject), zap.String("order_id", input.OrderID))
		return nil
	}

	templateInput := participantEmailInput{
		FullName:  input.FullName,
		OrderID:   input.OrderID,
		Amount:    input.Amount,
		EventName: s.event.Name,
		EventDate: s.event.Date,
	}
	sendInput := emailProvider.SendEmailInput{Subject: subject, To: input.Email}

	if err := sendInput.GenerateBodyFromHTML(s.config.TemplatesDir, templateFile, templateInput); err != nil {
		return fmt.Errorf("generate email failed: %w", err)
	}

	if err := s.sender.Send(sendInput); err != nil {
		return fmt.Errorf("send email failed: %w", err)
	}

	return nil
}

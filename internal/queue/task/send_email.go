package task

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	SendEmailTaskName  = "sendEmailTask"
	SendEmailQueueName = "sendEmailQueue"
)

type EmailKind string

const (
	EmailRegistrationReceived EmailKind = "registration_received"
	EmailPaymentVerified      EmailKind = "payment_verified"
	EmailPaymentRejected      EmailKind = "payment_rejected"
)

type SendEmail struct {
	Kind     EmailKind `json:"kind"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	OrderID  string    `json:"order_id"`
	Amount   int64     `json:"amount"`
}

func NewSendEmailTask(data SendEmail) (*asynq.Task, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("json data marshal failed: %w", err)
	}

	return asynq.NewTask(
		SendEmailTaskName,
		payload,
		asynq.MaxRetry(5),
		asynq.Queue(SendEmailQueueName),
	), nil
}

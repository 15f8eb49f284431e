package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/kala-yatra/backend/internal/domain"
	"github.com/kala-yatra/backend/pkg/logger"
)

const (
	channelPrefix = "payment-status:"
	bufferSize    = 16
)

// Channel is the pub/sub channel carrying status changes of one registration's payments.
func Channel(registrationID uuid.UUID) string {
	return channelPrefix + registrationID.String()
}

type Publisher interface {
	Publish(ctx context.Context, event domain.PaymentStatusEvent) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, registrationID uuid.UUID) (*Subscription, error)
}

// Broker publishes payment status events on Redis and fans them out to subscribers.
type Broker struct {
	client redis.UniversalClient
}

func NewBroker(client redis.UniversalClient) *Broker {
	return &Broker{client: client}
}

func (b *Broker) Publish(ctx context.Context, event domain.PaymentStatusEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal payment status event: %w", err)
	}

	if err := b.client.Publish(ctx, Channel(event.RegistrationID), data).Err(); err != nil {
		return fmt.Errorf("publish payment status event: %w", err)
	}

	return nil
}

// Subscribe opens a subscription that lives until ctx is done or Close is called.
// The returned subscription is already confirmed by Redis, so events published
// after Subscribe returns are delivered.
func (b *Broker) Subscribe(ctx context.Context, registrationID uuid.UUID) (*Subscription, error) {
	pubsub := b.client.Subscribe(ctx, Channel(registrationID))
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("subscribe to payment status: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	s := &Subscription{
		events: make(chan domain.PaymentStatusEvent, bufferSize),
		pubsub: pubsub,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go s.run(ctx)

	return s, nil
}

type Subscription struct {
	events chan domain.PaymentStatusEvent
	pubsub *redis.PubSub
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Events is closed when the subscription ends.
func (s *Subscription) Events() <-chan domain.PaymentStatusEvent {
	return s.events
}

func (s *Subscription) Close() error {
	var err error
	s.once.Do(func() {
		s.cancel()
		err = s.pubsub.Close()
		<-s.done
	})
	return err
}

func (s *Subscription) run(ctx context.Context) {
	defer close(s.done)
	defer close(s.events)

	messages := s.pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}

			var event domain.PaymentStatusEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				logger.Warn("drop malformed payment status event",
					zap.String("channel", msg.Channel), zap.Error(err))
				continue
			}

			select {
			case s.events <- event:
			case <-ctx.Done():
				return
			}
		}
	}
}

package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kala-yatra/backend/internal/config"
	"github.com/kala-yatra/backend/internal/domain"
	"github.com/kala-yatra/backend/internal/metrics"
	"github.com/kala-yatra/backend/internal/oauth"
	"github.com/kala-yatra/backend/internal/queue/task"
	"github.com/kala-yatra/backend/pkg/pdf"
)

func fixedNow() time.Time {
	return time.Date(2026, time.March, 1, 10, 30, 0, 0, time.UTC)
}

func testPaymentConfig() config.PaymentConfig {
	return config.PaymentConfig{
		PayeeID:                 "kalayatra@upi",
		MerchantName:            "Kala Yatra 2.0",
		SelfServeAmount:         1,
		VerificationAmount:      100,
		AdminSecret:             "s3cret",
		AdminSecretSalt:         "salt",
		OrderPrefix:             "ART",
		CompletionDelay:         10 * time.Millisecond,
		AllowUnverifiedAdvance:  true,
		EventsHeartbeatInterval: time.Minute,
	}
}

func testEventConfig() config.EventConfig {
	return config.EventConfig{
		Name:     "Kala Yatra 2.0",
		Date:     "31st March 2026",
		Deadline: time.Date(2026, time.March, 25, 23, 59, 59, 0, time.UTC),
		DraftTTL: time.Hour,
	}
}

func newTestMetrics() *metrics.Metrics {
	return metrics.New(prometheus.NewRegistry())
}

func newTestRedis(t *testing.T) redis.UniversalClient {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.PaymentStatusEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event domain.PaymentStatusEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Events() []domain.PaymentStatusEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.PaymentStatusEvent(nil), p.events...)
}

type recordingEnqueuer struct {
	mu    sync.Mutex
	tasks []*asynq.Task
}

func (e *recordingEnqueuer) Enqueue(_ context.Context, t *asynq.Task, _ ...asynq.Option) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tasks = append(e.tasks, t)
	return nil
}

func (e *recordingEnqueuer) Emails(t *testing.T) []task.SendEmail {
	t.Helper()
	e.mu.Lock()
	defer e.mu.Unlock()

	var out []task.SendEmail
	for _, tt := range e.tasks {
		require.Equal(t, task.SendEmailTaskName, tt.Type())
		var data task.SendEmail
		require.NoError(t, json.Unmarshal(tt.Payload(), &data))
		out = append(out, data)
	}
	return out
}

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) AuthCodeURL(state string) string {
	return m.Called(state).String(0)
}

func (m *mockProvider) Exchange(ctx context.Context, code string) (*oauth.UserInfo, error) {
	args := m.Called(ctx, code)
	info, _ := args.Get(0).(*oauth.UserInfo)
	return info, args.Error(1)
}

type mockStateStore struct {
	mock.Mock
}

func (m *mockStateStore) Issue(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockStateStore) Consume(ctx context.Context, state string) error {
	return m.Called(ctx, state).Error(0)
}

type mockRenderer struct {
	mock.Mock
}

func (m *mockRenderer) GenerateReceipt(r pdf.Receipt) ([]byte, error) {
	args := m.Called(r)
	doc, _ := args.Get(0).([]byte)
	return doc, args.Error(1)
}

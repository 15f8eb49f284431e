package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.opentelemetry.io/otel"

	"github.com/kala-yatra/backend/internal/config"
	"github.com/kala-yatra/backend/internal/domain"
	"github.com/kala-yatra/backend/internal/metrics"
	"github.com/kala-yatra/backend/internal/oauth"
	"github.com/kala-yatra/backend/internal/realtime"
	"github.com/kala-yatra/backend/internal/repository"
	"github.com/kala-yatra/backend/internal/wizard"
	"github.com/kala-yatra/backend/pkg/auth"
	"github.com/kala-yatra/backend/pkg/hash"
	"github.com/kala-yatra/backend/pkg/pdf"
)

var tracer = otel.Tracer("github.com/kala-yatra/backend/internal/service")

type Services struct {
	Auth      Auth
	Payments  Payments
	Presenter Presenter
	Wizard    Wizard
	Dashboard Dashboard
	Receipts  Receipts
}

// TaskEnqueuer submits background jobs.
type TaskEnqueuer interface {
	Enqueue(ctx context.Context, task *asynq.Task, opts ...asynq.Option) error
}

type OAuthStateStore interface {
	Issue(ctx context.Context) (string, error)
	Consume(ctx context.Context, state string) error
}

type ReceiptRenderer interface {
	GenerateReceipt(r pdf.Receipt) ([]byte, error)
}

type Deps struct {
	Config       *config.Config
	Hasher       hash.SecretHasher
	TokenManager auth.TokenManager
	Repos        *repository.Repositories
	OAuth        oauth.Provider
	OAuthStates  OAuthStateStore
	Publisher    realtime.Publisher
	Subscriber   realtime.Subscriber
	Drafts       wizard.Store
	Tasks        TaskEnqueuer
	Metrics      *metrics.Metrics
	Receipts     ReceiptRenderer
}

func NewServices(deps Deps) *Services {
	notifier := newNotifier(deps.Publisher, deps.Tasks)

	wizardService := newWizardService(deps.Repos.Registrations, deps.Repos.Payments, deps.Drafts,
		notifier, deps.Metrics, deps.Config.Payment, deps.Config.Event)

	return &Services{
		Auth: newAuthService(deps.Repos.UserProfiles, deps.Repos.RefreshSession, deps.OAuth, deps.OAuthStates,
			deps.TokenManager, deps.Config.Auth),
		Payments: newPaymentService(deps.Repos.Registrations, deps.Repos.Payments, deps.Hasher,
			notifier, deps.Metrics, deps.Config.Payment),
		Presenter: newPresenterService(deps.Repos.Registrations, deps.Repos.Payments, deps.Subscriber,
			wizardService, deps.Metrics, deps.Config.Payment),
		Wizard:    wizardService,
		Dashboard: newDashboardService(deps.Repos.Registrations, deps.Config.Payment, deps.Config.Event),
		Receipts:  newReceiptService(deps.Repos.Registrations, deps.Repos.Payments, deps.Receipts, deps.Config.Event),
	}
}

// SessionUser is the signed-in user as seen by request handlers.
type SessionUser struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
}

type Tokens struct {
	AccessToken  string
	AccessTTL    time.Duration
	RefreshToken uuid.UUID
	RefreshTTL   time.Duration
}

type Auth interface {
	SignInURL(ctx context.Context) (authURL string, state string, err error)
	Callback(ctx context.Context, code, state, userAgent, userIP string) (*Tokens, error)
	SignOut(ctx context.Context, refreshToken uuid.UUID) error
	// GetUser never fails; a nil user means not signed in.
	GetUser(ctx context.Context, accessToken string) *SessionUser
}

type CreatePaymentInput struct {
	RegistrationID uuid.UUID
	OrderID        string
	ExpectedAmount int64
}

type VerifyPaymentInput struct {
	RegistrationID      uuid.UUID
	// PaidAmount is nil when the admin sent no amount. Fractions are allowed
	// and never match the verification amount.
	PaidAmount          *float64
	// PaidAmountMalformed marks an amount that was sent but is not a number.
	PaidAmountMalformed bool
	AdminSecret         string
}

type VerifyPaymentResult struct {
	Verified bool
	Message  string
	// Status is set only on the unauthenticated status-check path.
	Status   domain.PaymentStatus
}

type Payments interface {
	Create(ctx context.Context, input CreatePaymentInput) (*domain.Payment, error)
	Verify(ctx context.Context, input VerifyPaymentInput) (*VerifyPaymentResult, error)
	SelfReport(ctx context.Context, user SessionUser, orderID string, hasPaid bool) (*domain.Payment, error)
}

type PaymentMode string

const (
	PaymentModeMobile  PaymentMode = "mobile"
	PaymentModeDesktop PaymentMode = "desktop"
)

type PaymentView struct {
	RegistrationID uuid.UUID            `json:"registration_id"`
	OrderID        string               `json:"order_id"`
	Status         domain.PaymentStatus `json:"status"`
	Amount         int64                `json:"amount"`
	UPIURI         string               `json:"upi_uri"`
	QRCode         string               `json:"qr_code"`
	Mode           PaymentMode          `json:"mode"`
	Verified       bool                 `json:"verified"`
}

type StreamEventType string

const (
	StreamEventStatus   StreamEventType = "status"
	StreamEventVerified StreamEventType = "verified"
	StreamEventComplete StreamEventType = "complete"
	StreamEventPing     StreamEventType = "ping"
)

type StreamEvent struct {
	Type    StreamEventType            `json:"type"`
	Payment *domain.PaymentStatusEvent `json:"payment,omitempty"`
}

type Presenter interface {
	Present(ctx context.Context, user SessionUser, registrationID uuid.UUID, userAgent string) (*PaymentView, error)
	// Watch streams status changes until ctx ends or the payment is verified
	// and the completion delay has elapsed.
	Watch(ctx context.Context, user SessionUser, registrationID uuid.UUID, emit func(StreamEvent) error) error
}

type ExistingRegistration struct {
	RegistrationID   uuid.UUID                        `json:"registration_id"`
	FullName         string                           `json:"full_name"`
	Status           domain.RegistrationStatus        `json:"status"`
	PaymentStatus    domain.RegistrationPaymentStatus `json:"payment_status"`
	OrderID          string                           `json:"order_id,omitempty"`
	NeedsRemediation bool                             `json:"needs_remediation"`
	CreatedAt        time.Time                        `json:"created_at"`
}

type WizardView struct {
	Step     wizard.Step           `json:"step"`
	StepName string                `json:"step_name"`
	State    *wizard.State         `json:"state,omitempty"`
	Existing *ExistingRegistration `json:"existing,omitempty"`
}

type Wizard interface {
	Current(ctx context.Context, user SessionUser) (*WizardView, error)
	SubmitDetails(ctx context.Context, user SessionUser, form wizard.Form) (*WizardView, error)
	Back(ctx context.Context, user SessionUser) (*WizardView, error)
	AcceptTerms(ctx context.Context, user SessionUser, agree bool) (*WizardView, error)
	Advance(ctx context.Context, user SessionUser) (*WizardView, error)
	// CompleteVerified moves the user's flow to confirmation once registrationID is verified.
	CompleteVerified(ctx context.Context, userID uuid.UUID, registrationID uuid.UUID) error
}

type Remediation struct {
	OrderID string `json:"order_id"`
	Amount  int64  `json:"amount"`
	UPIURI  string `json:"upi_uri"`
}

type DashboardEntry struct {
	RegistrationID uuid.UUID                        `json:"registration_id"`
	FullName       string                           `json:"full_name"`
	City           string                           `json:"city"`
	Status         domain.RegistrationStatus        `json:"status"`
	PaymentStatus  domain.RegistrationPaymentStatus `json:"payment_status"`
	OrderID        string                           `json:"order_id,omitempty"`
	LatestPayment  domain.PaymentStatus             `json:"latest_payment_status,omitempty"`
	EventName      string                           `json:"event_name"`
	EventDate      string                           `json:"event_date"`
	Remediation    *Remediation                     `json:"remediation,omitempty"`
	CreatedAt      time.Time                        `json:"created_at"`
}

type Dashboard interface {
	List(ctx context.Context, user SessionUser) ([]DashboardEntry, error)
}

type Receipts interface {
	Render(ctx context.Context, user SessionUser, registrationID uuid.UUID) ([]byte, error)
}

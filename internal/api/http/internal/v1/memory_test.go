package v1

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kala-yatra/backend/internal/domain"
	"github.com/kala-yatra/backend/internal/repository"
)

// memoryStore backs the handler tests with the same conditional update rules
// as the MySQL repositories.
type memoryStore struct {
	mu            sync.Mutex
	registrations map[uuid.UUID]domain.Registration
	payments      []domain.Payment
	profiles      map[uuid.UUID]domain.UserProfile
	sessions      map[uuid.UUID]domain.RefreshSession
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		registrations: make(map[uuid.UUID]domain.Registration),
		profiles:      make(map[uuid.UUID]domain.UserProfile),
		sessions:      make(map[uuid.UUID]domain.RefreshSession),
	}
}

func (s *memoryStore) repositories() *repository.Repositories {
	return &repository.Repositories{
		Registrations:  memoryRegistrations{s},
		Payments:       memoryPayments{s},
		UserProfiles:   memoryProfiles{s},
		RefreshSession: memorySessions{s},
	}
}

func (s *memoryStore) registration(id uuid.UUID) domain.Registration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registrations[id]
}

func (s *memoryStore) paymentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.payments)
}

func (s *memoryStore) latestPayment(registrationID uuid.UUID) (domain.Payment, bool) {
	for i := len(s.payments) - 1; i >= 0; i-- {
		if s.payments[i].RegistrationID == registrationID {
			return s.payments[i], true
		}
	}
	return domain.Payment{}, false
}

type memoryRegistrations struct{ s *memoryStore }

func (r memoryRegistrations) insert(registration *domain.Registration) error {
	if _, ok := r.s.registrations[registration.ID]; ok {
		return domain.ErrDuplicateEntry
	}
	r.s.registrations[registration.ID] = *registration
	return nil
}

func (r memoryRegistrations) Create(_ context.Context, registration *domain.Registration) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.insert(registration)
}

func (r memoryRegistrations) CreateWithPayment(_ context.Context, registration *domain.Registration, payment *domain.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.insert(registration); err != nil {
		return err
	}
	r.s.payments = append(r.s.payments, *payment)
	return nil
}

func (r memoryRegistrations) GetByID(_ context.Context, id uuid.UUID) (*domain.Registration, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	registration, ok := r.s.registrations[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &registration, nil
}

func (r memoryRegistrations) byEmail(email string) []domain.Registration {
	var out []domain.Registration
	for _, registration := range r.s.registrations {
		if registration.RegisteredByEmail == email {
			out = append(out, registration)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r memoryRegistrations) GetLatestByEmail(_ context.Context, email string) (*domain.Registration, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	list := r.byEmail(email)
	if len(list) == 0 {
		return nil, domain.ErrNotFound
	}
	return &list[0], nil
}

func (r memoryRegistrations) ListByEmailWithPayment(_ context.Context, email string) ([]domain.RegistrationWithPayment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.RegistrationWithPayment
	for _, registration := range r.byEmail(email) {
		item := domain.RegistrationWithPayment{Registration: registration}
		if p, ok := r.s.latestPayment(registration.ID); ok {
			item.Payment = &p
		}
		out = append(out, item)
	}
	return out, nil
}

func (r memoryRegistrations) ListWithoutPayment(_ context.Context, createdBefore time.Time) ([]domain.Registration, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Registration
	for _, registration := range r.s.registrations {
		if _, ok := r.s.latestPayment(registration.ID); !ok && registration.CreatedAt.Before(createdBefore) {
			out = append(out, registration)
		}
	}
	return out, nil
}

type memoryPayments struct{ s *memoryStore }

func (r memoryPayments) Create(_ context.Context, payment *domain.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.registrations[payment.RegistrationID]; !ok {
		return domain.ErrForeignKey
	}
	for _, p := range r.s.payments {
		if p.OrderID == payment.OrderID {
			return domain.ErrDuplicateEntry
		}
	}
	r.s.payments = append(r.s.payments, *payment)
	return nil
}

func (r memoryPayments) GetLatestByRegistrationID(_ context.Context, registrationID uuid.UUID) (*domain.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.latestPayment(registrationID)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r memoryPayments) GetByOrderID(_ context.Context, orderID string) (*domain.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.payments {
		if p.OrderID == orderID {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r memoryPayments) update(payment *domain.Payment, status domain.PaymentStatus, paid sql.NullInt64) error {
	for i := range r.s.payments {
		stored := &r.s.payments[i]
		if stored.ID != payment.ID {
			continue
		}
		if stored.Status == domain.PaymentStatusVerified ||
			(stored.Status == domain.PaymentStatusRejected && status != domain.PaymentStatusPending) {
			return domain.ErrNoRowsAffected
		}
		stored.Status = status
		if paid.Valid {
			stored.PaidAmount = paid
		}
		stored.UpdatedAt = time.Now()
		*payment = *stored
		return nil
	}
	return domain.ErrNoRowsAffected
}

func (r memoryPayments) Verify(_ context.Context, payment *domain.Payment, paidAmount int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.update(payment, domain.PaymentStatusVerified, sql.NullInt64{Int64: paidAmount, Valid: true}); err != nil {
		return err
	}
	registration := r.s.registrations[payment.RegistrationID]
	registration.PaymentStatus = domain.RegistrationPaymentVerified
	registration.Status = domain.RegistrationStatusConfirmed
	r.s.registrations[payment.RegistrationID] = registration
	return nil
}

func (r memoryPayments) Reject(_ context.Context, payment *domain.Payment, paidAmount int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.update(payment, domain.PaymentStatusRejected, sql.NullInt64{Int64: paidAmount, Valid: true})
}

func (r memoryPayments) MarkPending(_ context.Context, payment *domain.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.update(payment, domain.PaymentStatusPending, sql.NullInt64{})
}

type memoryProfiles struct{ s *memoryStore }

func (r memoryProfiles) GetByExternalID(_ context.Context, externalID string) (*domain.UserProfile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.profiles {
		if p.ExternalID == externalID {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r memoryProfiles) GetByID(_ context.Context, id uuid.UUID) (*domain.UserProfile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.profiles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r memoryProfiles) Create(_ context.Context, profile *domain.UserProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.profiles[profile.ID]; ok {
		return domain.ErrDuplicateEntry
	}
	r.s.profiles[profile.ID] = *profile
	return nil
}

func (r memoryProfiles) TouchLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.profiles[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.LastLoginAt = &at
	p.IsNewAccount = false
	r.s.profiles[id] = p
	return nil
}

type memorySessions struct{ s *memoryStore }

func (r memorySessions) Create(_ context.Context, session *domain.RefreshSession) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.sessions[session.RefreshToken] = *session
	return nil
}

func (r memorySessions) Revoke(_ context.Context, refreshToken uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	session, ok := r.s.sessions[refreshToken]
	if !ok || !session.Active(time.Now()) {
		return domain.ErrNotFound
	}
	now := time.Now()
	session.RevokedAt = &now
	r.s.sessions[refreshToken] = session
	return nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/kala-yatra/backend/internal/db"
	"github.com/kala-yatra/backend/internal/domain"
)

const registrationColumns = `id, user_id, registered_by_email, full_name, age, dob, gender, city, state, country,
	email, phone, referral_code, hear_about_us, receive_updates, join_community, status, payment_status,
	created_at, updated_at`

type registrationRepository struct {
	db *sqlx.DB
}

func newRegistrationRepository(db *sqlx.DB) *registrationRepository {
	return &registrationRepository{
		db: db,
	}
}

func insertRegistration(ctx context.Context, execer sqlx.ExecerContext, r *domain.Registration) error {
	const query = `
	INSERT INTO registration
	(id, user_id, registered_by_email, full_name, age, dob, gender, city, state, country,
	email, phone, referral_code, hear_about_us, receive_updates, join_community, status, payment_status)
	VALUES (uuid_to_bin(?), uuid_to_bin(?), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`

	_, err := execer.ExecContext(ctx, query,
		r.ID,
		r.UserID,
		r.RegisteredByEmail,
		r.FullName,
		r.Age,
		r.DOB,
		r.Gender,
		r.City,
		r.State,
		r.Country,
		r.Email,
		r.Phone,
		r.ReferralCode,
		r.HearAboutUs,
		r.ReceiveUpdates,
		r.JoinCommunity,
		r.Status,
		r.PaymentStatus,
	)
	if err != nil {
		if db.ErrorNumber(err) == db.DuplicateEntry {
			return domain.ErrDuplicateEntry
		}
		return fmt.Errorf("db insert registration: %w", err)
	}

	return nil
}

func (r *registrationRepository) Create(ctx context.Context, registration *domain.Registration) error {
	return insertRegistration(ctx, r.db, registration)
}

func (r *registrationRepository) CreateWithPayment(ctx context.Context, registration *domain.Registration, payment *domain.Payment) error {
	return db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := insertRegistration(ctx, tx, registration); err != nil {
			return err
		}
		return insertPayment(ctx, tx, payment)
	})
}

func (r *registrationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registration WHERE id = uuid_to_bin(?);`

	var registration domain.Registration
	if err := r.db.GetContext(ctx, &registration, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select registration by id failed: %w", err)
	}

	return &registration, nil
}

func (r *registrationRepository) GetLatestByEmail(ctx context.Context, email string) (*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registration WHERE registered_by_email = ? ORDER BY created_at DESC LIMIT 1;`

	var registration domain.Registration
	if err := r.db.GetContext(ctx, &registration, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select registration by email failed: %w", err)
	}

	return &registration, nil
}

func (r *registrationRepository) ListByEmailWithPayment(ctx context.Context, email string) ([]domain.RegistrationWithPayment, error) {
	query := `SELECT ` + registrationColumns + ` FROM registration WHERE registered_by_email = ? ORDER BY created_at DESC;`

	var registrations []domain.Registration
	if err := r.db.SelectContext(ctx, &registrations, query, email); err != nil {
		return nil, fmt.Errorf("select registrations by email failed: %w", err)
	}
	if len(registrations) == 0 {
		return []domain.RegistrationWithPayment{}, nil
	}

	ids := make([][]byte, 0, len(registrations))
	for _, reg := range registrations {
		b, err := reg.ID.MarshalBinary()
		if err != nil {
			return nil, fmt.Errorf("registration uuid marshal failed: %w", err)
		}
		ids = append(ids, b)
	}

	paymentsQuery, args, err := sqlx.In(
		`SELECT `+paymentColumns+` FROM payment WHERE registration_id IN (?) ORDER BY created_at DESC;`, ids)
	if err != nil {
		return nil, fmt.Errorf("build payments query failed: %w", err)
	}

	var payments []domain.Payment
	if err := r.db.SelectContext(ctx, &payments, r.db.Rebind(paymentsQuery), args...); err != nil {
		return nil, fmt.Errorf("select payments by registrations failed: %w", err)
	}

	// payments are newest first, so the first hit per registration is the latest
	latest := make(map[uuid.UUID]*domain.Payment, len(payments))
	for i := range payments {
		if _, ok := latest[payments[i].RegistrationID]; !ok {
			latest[payments[i].RegistrationID] = &payments[i]
		}
	}

	result := make([]domain.RegistrationWithPayment, 0, len(registrations))
	for _, reg := range registrations {
		result = append(result, domain.RegistrationWithPayment{
			Registration: reg,
			Payment:      latest[reg.ID],
		})
	}

	return result, nil
}

func (r *registrationRepository) ListWithoutPayment(ctx context.Context, createdBefore time.Time) ([]domain.Registration, error) {
	const query = `
	SELECT r.id, r.user_id, r.registered_by_email, r.full_name, r.age, r.dob, r.gender, r.city, r.state, r.country,
	r.email, r.phone, r.referral_code, r.hear_about_us, r.receive_updates, r.join_community, r.status, r.payment_status,
	r.created_at, r.updated_at
	FROM registration r
	LEFT JOIN payment p ON p.registration_id = r.id
	WHERE p.id IS NULL AND r.created_at < ?
	ORDER BY r.created_at ASC;
	`

	var registrations []domain.Registration
	if err := r.db.SelectContext(ctx, &registrations, query, createdBefore); err != nil {
		return nil, fmt.Errorf("select registrations without payment failed: %w", err)
	}

	return registrations, nil
}

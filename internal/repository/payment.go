package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/kala-yatra/backend/internal/db"
	"github.com/kala-yatra/backend/internal/domain"
)

const paymentColumns = `id, registration_id, order_id, expected_amount, paid_amount, status, created_at, updated_at`

type paymentRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func newPaymentRepository(db *sqlx.DB) *paymentRepository {
	return &paymentRepository{
		db:  db,
		now: time.Now,
	}
}

func insertPayment(ctx context.Context, execer sqlx.ExecerContext, p *domain.Payment) error {
	const query = `
	INSERT INTO payment (id, registration_id, order_id, expected_amount, status)
	VALUES (uuid_to_bin(?), uuid_to_bin(?), ?, ?, ?);
	`

	_, err := execer.ExecContext(ctx, query, p.ID, p.RegistrationID, p.OrderID, p.ExpectedAmount, p.Status)
	if err != nil {
		switch db.ErrorNumber(err) {
		case db.DuplicateEntry:
			return domain.ErrDuplicateEntry
		case db.NoReferencedRow, db.NoReferencedRowPrev:
			return domain.ErrForeignKey
		}
		return fmt.Errorf("db insert payment: %w", err)
	}

	return nil
}

func (r *paymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	return insertPayment(ctx, r.db, payment)
}

func (r *paymentRepository) GetLatestByRegistrationID(ctx context.Context, registrationID uuid.UUID) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payment WHERE registration_id = uuid_to_bin(?) ORDER BY created_at DESC LIMIT 1;`

	var payment domain.Payment
	if err := r.db.GetContext(ctx, &payment, query, registrationID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select latest payment by registration failed: %w", err)
	}

	return &payment, nil
}

func (r *paymentRepository) GetByOrderID(ctx context.Context, orderID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payment WHERE order_id = ?;`

	var payment domain.Payment
	if err := r.db.GetContext(ctx, &payment, query, orderID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select payment by order id failed: %w", err)
	}

	return &payment, nil
}

// setStatus moves p to status unless it is currently in one of locked.
// ErrNoRowsAffected means a concurrent writer got there first.
func setStatus(ctx context.Context, execer sqlx.ExecerContext, p *domain.Payment, status domain.PaymentStatus, paidAmount *int64, at time.Time, locked ...domain.PaymentStatus) error {
	query := `
	UPDATE payment SET status = ?, paid_amount = COALESCE(?, paid_amount), updated_at = ?
	WHERE id = uuid_to_bin(?) AND status NOT IN (` + strings.TrimSuffix(strings.Repeat("?, ", len(locked)), ", ") + `);
	`

	var amount sql.NullInt64
	if paidAmount != nil {
		amount = sql.NullInt64{Int64: *paidAmount, Valid: true}
	}

	args := []interface{}{status, amount, at, p.ID}
	for _, l := range locked {
		args = append(args, l)
	}

	res, err := execer.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db update payment status: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db update payment status rows: %w", err)
	}

	if rows == 0 {
		return domain.ErrNoRowsAffected
	}

	p.Status = status
	if amount.Valid {
		p.PaidAmount = amount
	}
	p.UpdatedAt = at

	return nil
}

func (r *paymentRepository) Verify(ctx context.Context, payment *domain.Payment, paidAmount int64) error {
	const flagRegistration = `
	UPDATE registration SET payment_status = ?, status = ?, updated_at = ? WHERE id = uuid_to_bin(?);
	`

	now := r.now()
	updated := *payment

	err := db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := setStatus(ctx, tx, &updated, domain.PaymentStatusVerified, &paidAmount, now,
			domain.PaymentStatusVerified, domain.PaymentStatusRejected); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx, flagRegistration,
			domain.RegistrationPaymentVerified, domain.RegistrationStatusConfirmed, now, payment.RegistrationID)
		if err != nil {
			return fmt.Errorf("db update registration payment status: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	*payment = updated
	return nil
}

func (r *paymentRepository) Reject(ctx context.Context, payment *domain.Payment, paidAmount int64) error {
	return setStatus(ctx, r.db, payment, domain.PaymentStatusRejected, &paidAmount, r.now(),
		domain.PaymentStatusVerified, domain.PaymentStatusRejected)
}

// MarkPending puts a payment back in the review queue. Rejected payments may
// be resubmitted, verified ones may not.
func (r *paymentRepository) MarkPending(ctx context.Context, payment *domain.Payment) error {
	return setStatus(ctx, r.db, payment, domain.PaymentStatusPending, nil, r.now(), domain.PaymentStatusVerified)
}

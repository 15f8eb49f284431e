package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kala-yatra/backend/internal/domain"
)

func newPendingPayment() *domain.Payment {
	return &domain.Payment{
		ID:             uuid.New(),
		RegistrationID: uuid.New(),
		OrderID:        "ART_123_abcd1234",
		ExpectedAmount: 1,
		Status:         domain.PaymentStatusPending,
	}
}

func fixedNow() time.Time {
	return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
}

func TestPaymentCreateForeignKey(t *testing.T) {
	db, mock := newMockDB(t)
	repo := newPaymentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO payment")).
		WillReturnError(&mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"})

	err := repo.Create(context.Background(), newPendingPayment())
	assert.ErrorIs(t, err, domain.ErrForeignKey)
}

func TestPaymentGetLatestByRegistrationIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := newPaymentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC LIMIT 1")).
		WillReturnRows(sqlmock.NewRows(paymentRowColumns))

	_, err := repo.GetLatestByRegistrationID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPaymentGetByOrderID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := newPaymentRepository(db)

	id, regID := uuid.New(), uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("FROM payment WHERE order_id = ?")).
		WithArgs("ART_1_x").
		WillReturnRows(sqlmock.NewRows(paymentRowColumns).AddRow(paymentRow(t, id, regID, "ART_1_x", "payment_not_done", fixedNow())...))

	p, err := repo.GetByOrderID(context.Background(), "ART_1_x")
	require.NoError(t, err)
	assert.Equal(t, id, p.ID)
	assert.Equal(t, regID, p.RegistrationID)
	assert.Equal(t, domain.PaymentStatusPaymentNotDone, p.Status)
	assert.False(t, p.PaidAmount.Valid)
}

func TestPaymentVerifyUpdatesBothRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := newPaymentRepository(db)
	repo.now = fixedNow

	p := newPendingPayment()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE payment SET status = ?")).
		WithArgs("verified", int64(100), fixedNow(), p.ID.String(), "verified", "rejected").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE registration SET payment_status = ?")).
		WithArgs("verified", "confirmed", fixedNow(), p.RegistrationID.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Verify(context.Background(), p, 100))
	assert.Equal(t, domain.PaymentStatusVerified, p.Status)
	assert.Equal(t, int64(100), p.PaidAmount.Int64)
	assert.Equal(t, fixedNow(), p.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentVerifyLostRaceRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := newPaymentRepository(db)
	repo.now = fixedNow

	p := newPendingPayment()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE payment SET status = ?")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Verify(context.Background(), p, 100)
	assert.ErrorIs(t, err, domain.ErrNoRowsAffected)
	assert.Equal(t, domain.PaymentStatusPending, p.Status)
	assert.False(t, p.PaidAmount.Valid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRejectStoresAmount(t *testing.T) {
	db, mock := newMockDB(t)
	repo := newPaymentRepository(db)
	repo.now = fixedNow

	p := newPendingPayment()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE payment SET status = ?")).
		WithArgs("rejected", int64(50), fixedNow(), p.ID.String(), "verified", "rejected").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Reject(context.Background(), p, 50))
	assert.Equal(t, domain.PaymentStatusRejected, p.Status)
	assert.Equal(t, int64(50), p.PaidAmount.Int64)
}

func TestPaymentMarkPendingKeepsAmount(t *testing.T) {
	db, mock := newMockDB(t)
	repo := newPaymentRepository(db)
	repo.now = fixedNow

	p := newPendingPayment()
	p.Status = domain.PaymentStatusPaymentNotDone
	mock.ExpectExec(regexp.QuoteMeta("UPDATE payment SET status = ?")).
		WithArgs("pending", nil, fixedNow(), p.ID.String(), "verified").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.MarkPending(context.Background(), p))
	assert.Equal(t, domain.PaymentStatusPending, p.Status)
	assert.False(t, p.PaidAmount.Valid)
}

func TestPaymentMarkPendingReopensRejected(t *testing.T) {
	db, mock := newMockDB(t)
	repo := newPaymentRepository(db)
	repo.now = fixedNow

	p := newPendingPayment()
	p.Status = domain.PaymentStatusRejected
	mock.ExpectExec(regexp.QuoteMeta("WHERE id = uuid_to_bin(?) AND status NOT IN (?);")).
		WithArgs("pending", nil, fixedNow(), p.ID.String(), "verified").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.MarkPending(context.Background(), p))
	assert.Equal(t, domain.PaymentStatusPending, p.Status)

	// verified stays locked
	p.Status = domain.PaymentStatusVerified
	mock.ExpectExec(regexp.QuoteMeta("UPDATE payment SET status = ?")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.MarkPending(context.Background(), p), domain.ErrNoRowsAffected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

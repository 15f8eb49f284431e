package repository

import (
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

var (
	registrationRowColumns = []string{
		"id", "user_id", "registered_by_email", "full_name", "age", "dob", "gender", "city", "state", "country",
		"email", "phone", "referral_code", "hear_about_us", "receive_updates", "join_community", "status", "payment_status",
		"created_at", "updated_at",
	}
	paymentRowColumns = []string{
		"id", "registration_id", "order_id", "expected_amount", "paid_amount", "status", "created_at", "updated_at",
	}
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "mysql"), mock
}

func uuidBytes(t *testing.T, id uuid.UUID) []byte {
	t.Helper()
	b, err := id.MarshalBinary()
	require.NoError(t, err)
	return b
}

func registrationRow(t *testing.T, id uuid.UUID, email string, createdAt time.Time) []driver.Value {
	t.Helper()
	return []driver.Value{
		uuidBytes(t, id), nil, email, "Asha Rao", 21, nil, nil, "Pune", "Maharashtra", "India",
		email, "9876543210", nil, nil, true, false, "pending", "pending",
		createdAt, createdAt,
	}
}

func paymentRow(t *testing.T, id, registrationID uuid.UUID, orderID string, status string, createdAt time.Time) []driver.Value {
	t.Helper()
	return []driver.Value{
		uuidBytes(t, id), uuidBytes(t, registrationID), orderID, int64(1), nil, status, createdAt, createdAt,
	}
}

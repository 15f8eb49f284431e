package repository

import (
	"context"
	"os"
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

var profileRowColumns = []string{
	"id", "external_id", "email", "full_name", "avatar_url", "is_new_account", "last_login_at", "created_at", "updated_at",
}

func TestUserProfileGetByExternalID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := newUserProfileRepository(db)

	id := uuid.New()
	now := time.Now().Truncate(time.Second)
	mock.ExpectQuery(regexp.QuoteMeta("FROM user_profile WHERE external_id = ?")).
		WithArgs("google-sub-1").
		WillReturnRows(sqlmock.NewRows(profileRowColumns).
			AddRow(uuidBytes(t, id), "google-sub-1", "asha@example.com", "Asha Rao", "", true, nil, now, now))

	profile, err := repo.GetByExternalID(context.Background(), "google-sub-1")
	require.NoError(t, err)
	assert.Equal(t, id, profile.ID)
	assert.True(t, profile.IsNewAccount)
	assert.Nil(t, profile.LastLoginAt)
}

func TestUserProfileGetByExternalIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := newUserProfileRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM user_profile WHERE external_id = ?")).
		WillReturnRows(sqlmock.NewRows(profileRowColumns))

	_, err := repo.GetByExternalID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserProfileCreateDuplicate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := newUserProfileRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user_profile")).
		WillReturnError(&mysql.MySQLError{Number: 1062})

	err := repo.Create(context.Background(), &domain.UserProfile{ID: uuid.New(), ExternalID: "sub"})
	assert.ErrorIs(t, err, domain.ErrDuplicateEntry)
}

func TestRefreshSessionCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := newRefreshSessionRepository(db)

	// the profile behind userID may not exist
	session := &domain.RefreshSession{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		RefreshToken: uuid.New(),
		UserAgent:    "Mozilla/5.0",
		IP:           "10.0.0.1",
		ExpiresAt:    time.Now().Add(time.Hour),
	}
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO refresh_session")).
		WithArgs(session.ID.String(), session.UserID.String(), session.RefreshToken.String(), session.UserAgent, session.IP, session.ExpiresAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Create(context.Background(), session))

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO refresh_session")).
		WillReturnError(&mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"})
	assert.Error(t, repo.Create(context.Background(), session))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSchemaDoesNotReferenceUserProfile(t *testing.T) {
	schema, err := os.ReadFile("../../migrations/0001_init.sql")
	require.NoError(t, err)

	// sign-in and registration must work when the profile write failed
	assert.NotContains(t, string(schema), "REFERENCES user_profile")
	assert.Contains(t, string(schema), "REFERENCES registration (id)")
}

func TestRefreshSessionRevoke(t *testing.T) {
	db, mock := newMockDB(t)
	repo := newRefreshSessionRepository(db)

	token := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE refresh_session SET revoked_at = ?")).
		WithArgs(sqlmock.AnyArg(), token.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Revoke(context.Background(), token))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE refresh_session SET revoked_at = ?")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Revoke(context.Background(), token), domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package wizard

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, 24*time.Hour), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()
	userID := uuid.New()

	_, err := store.Get(ctx, userID)
	assert.ErrorIs(t, err, ErrNoDraft)

	state := New("asha@example.com", time.Now().UTC().Truncate(time.Second))
	require.NoError(t, state.SubmitDetails(completeForm(), state.UpdatedAt))
	require.NoError(t, store.Save(ctx, userID, state))

	assert.Equal(t, 24*time.Hour, mr.TTL("wizard:"+userID.String()))

	got, err := store.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, StepTerms, got.Step)
	assert.Equal(t, "Pune", got.Form.City)
	assert.Nil(t, got.RegistrationID)

	require.NoError(t, store.Delete(ctx, userID))
	_, err = store.Get(ctx, userID)
	assert.ErrorIs(t, err, ErrNoDraft)
}

func TestRedisStoreExpires(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, store.Save(ctx, userID, New("a@example.com", time.Now())))
	mr.FastForward(25 * time.Hour)

	_, err := store.Get(ctx, userID)
	assert.ErrorIs(t, err, ErrNoDraft)
}

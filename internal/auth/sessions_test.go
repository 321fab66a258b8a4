package auth

import (
	"context"
	"testing"
	"time"

	"backoffice/internal/common/logger"
	"backoffice/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func newTestSessionStore(t *testing.T, ttl time.Duration) (*SessionStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewSessionStore(rdb, ttl, logger.NewTestLogger(t)), mr
}

func testUser() *models.User {
	return &models.User{ID: "user-1", Username: "jan", DisplayName: "Jan Jansen"}
}

func TestSessionStore_CreateAndGet(t *testing.T) {
	store, _ := newTestSessionStore(t, time.Hour)
	ctx := context.Background()

	session, err := store.Create(ctx, testUser())
	assert.NoError(t, err)
	assert.NotEmpty(t, session.Token)

	got, err := store.Get(ctx, session.Token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, "jan", got.Username)
}

func TestSessionStore_UnknownToken(t *testing.T) {
	store, _ := newTestSessionStore(t, time.Hour)

	_, err := store.Get(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionStore_ExpiredByRedisTTL(t *testing.T) {
	store, mr := newTestSessionStore(t, time.Minute)
	ctx := context.Background()

	session, err := store.Create(ctx, testUser())
	assert.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = store.Get(ctx, session.Token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionStore_IndexExpiresWithSessions(t *testing.T) {
	store, mr := newTestSessionStore(t, time.Minute)
	ctx := context.Background()

	_, err := store.Create(ctx, testUser())
	assert.NoError(t, err)
	assert.True(t, mr.Exists(userSessionsKey+"user-1"))

	mr.FastForward(2 * time.Minute)

	assert.False(t, mr.Exists(userSessionsKey+"user-1"))
}

func TestSessionStore_Delete(t *testing.T) {
	store, _ := newTestSessionStore(t, time.Hour)
	ctx := context.Background()

	session, err := store.Create(ctx, testUser())
	assert.NoError(t, err)

	assert.NoError(t, store.Delete(ctx, session.Token))

	_, err = store.Get(ctx, session.Token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionStore_DeleteAll(t *testing.T) {
	store, _ := newTestSessionStore(t, time.Hour)
	ctx := context.Background()
	user := testUser()

	first, err := store.Create(ctx, user)
	assert.NoError(t, err)
	second, err := store.Create(ctx, user)
	assert.NoError(t, err)

	count, err := store.DeleteAll(ctx, user.ID)
	assert.NoError(t, err)
	assert.Equal(t, 2, count)

	_, err = store.Get(ctx, first.Token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = store.Get(ctx, second.Token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

package repository

import (
	"context"
	"testing"
	"time"

	"clinic-whatsapp-scheduler/internal/domain/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionRepo(t *testing.T, ttl time.Duration) (*miniredis.Miniredis, *sessionRepository) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, NewSessionRepository(client, ttl).(*sessionRepository)
}

func TestSessionGetAbsent(t *testing.T) {
	_, repo := newSessionRepo(t, 0)

	session, err := repo.Get(context.Background(), "+551199999")
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestSessionSetReplacesWholeState(t *testing.T) {
	_, repo := newSessionRepo(t, 0)
	ctx := context.Background()
	phone := "+551199999"

	first := entity.NewSession().WithName("Maria").WithDate("2025-12-30")
	require.NoError(t, repo.Set(ctx, phone, first))

	// A full replace must drop fields the new state does not carry.
	require.NoError(t, repo.Set(ctx, phone, entity.NewSession()))

	got, err := repo.Get(ctx, phone)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entity.StepAskName, got.Step)
	assert.Empty(t, got.Name)
	assert.Empty(t, got.Date)
}

func TestSessionClear(t *testing.T) {
	_, repo := newSessionRepo(t, 0)
	ctx := context.Background()
	phone := "+551199999"

	require.NoError(t, repo.Set(ctx, phone, entity.NewSession()))
	require.NoError(t, repo.Clear(ctx, phone))

	got, err := repo.Get(ctx, phone)
	require.NoError(t, err)
	assert.Nil(t, got)

	// Clearing an absent session is not an error.
	require.NoError(t, repo.Clear(ctx, phone))
}

func TestSessionClearAll(t *testing.T) {
	mr, repo := newSessionRepo(t, 0)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "+551199999", entity.NewSession()))
	require.NoError(t, repo.Set(ctx, "+551188888", entity.NewSession()))
	mr.Set("other:key", "untouched")

	require.NoError(t, repo.ClearAll(ctx))

	got, err := repo.Get(ctx, "+551199999")
	require.NoError(t, err)
	assert.Nil(t, got)

	// Keys outside the session namespace survive.
	v, err := mr.Get("other:key")
	require.NoError(t, err)
	assert.Equal(t, "untouched", v)
}

func TestSessionIdleTTL(t *testing.T) {
	mr, repo := newSessionRepo(t, 30*time.Minute)
	ctx := context.Background()
	phone := "+551199999"

	require.NoError(t, repo.Set(ctx, phone, entity.NewSession()))
	assert.Equal(t, 30*time.Minute, mr.TTL(sessionKey(phone)))

	mr.FastForward(31 * time.Minute)

	got, err := repo.Get(ctx, phone)
	require.NoError(t, err)
	assert.Nil(t, got, "idle session must expire")
}

package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSlotService(t *testing.T) (*RedisSlotService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)

	return NewRedisSlotService(client, log, time.UTC), mr
}

func TestReserveSlotOnce(t *testing.T) {
	svc, _ := newSlotService(t)
	ctx := context.Background()

	ok, err := svc.Reserve(ctx, "2025-12-30", "09:00")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Reserve(ctx, "2025-12-30", "09:00")
	require.NoError(t, err)
	assert.False(t, ok, "second reservation of the same slot must fail")

	// A different slot on the same date is unaffected.
	ok, err = svc.Reserve(ctx, "2025-12-30", "09:30")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestReleaseSlot(t *testing.T) {
	svc, _ := newSlotService(t)
	ctx := context.Background()

	ok, err := svc.Reserve(ctx, "2025-12-30", "09:00")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, svc.Release(ctx, "2025-12-30", "09:00"))

	ok, err = svc.Reserve(ctx, "2025-12-30", "09:00")
	require.NoError(t, err)
	assert.True(t, ok, "released slot must be reservable again")
}

func TestClearAllSlots(t *testing.T) {
	svc, mr := newSlotService(t)
	ctx := context.Background()

	_, err := svc.Reserve(ctx, "2025-12-30", "09:00")
	require.NoError(t, err)
	_, err = svc.Reserve(ctx, "2025-12-31", "10:00")
	require.NoError(t, err)

	require.NoError(t, svc.ClearAll(ctx))

	assert.Empty(t, mr.Keys())
}

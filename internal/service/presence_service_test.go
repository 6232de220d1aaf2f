package service

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPresenceMarkAndRemove(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	svc := NewPresenceService(client, zap.NewNop())

	ctx := context.Background()
	svc.MarkActive(ctx, "user-1")
	svc.MarkActive(ctx, "user-2")
	svc.MarkActive(ctx, "user-1") // set semantics: no double count

	count, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	svc.Remove(ctx, "user-1")
	count, err = svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestPresenceNilClientIsSafe(t *testing.T) {
	svc := NewPresenceService(nil, zap.NewNop())
	svc.MarkActive(context.Background(), "user-1")
	svc.Remove(context.Background(), "user-1")

	count, err := svc.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

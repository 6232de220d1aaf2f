package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/volunteerhub/internal/domain"
)

func TestCachedServesFromSlotUntilExpiry(t *testing.T) {
	repo := &fakeStatsRepo{stats: domain.Stats{Volunteers: 3, Projects: 2, Applications: 5, States: 1}}
	svc := NewStatsService(repo, 5*time.Minute, zap.NewNop())

	current := time.Unix(1700000000, 0)
	svc.cache.now = func() time.Time { return current }

	first, err := svc.Cached(context.Background())
	require.NoError(t, err)
	assert.Equal(t, repo.stats, first)
	assert.Equal(t, 1, repo.computes)

	// counts changed underneath but the slot is still fresh
	repo.stats.Volunteers = 10
	current = current.Add(4 * time.Minute)
	second, err := svc.Cached(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), second.Volunteers)
	assert.Equal(t, 1, repo.computes)

	current = current.Add(2 * time.Minute)
	third, err := svc.Cached(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(10), third.Volunteers)
	assert.Equal(t, 2, repo.computes)
}

func TestFreshBypassesCache(t *testing.T) {
	repo := &fakeStatsRepo{stats: domain.Stats{Volunteers: 1}}
	svc := NewStatsService(repo, time.Hour, zap.NewNop())

	_, err := svc.Cached(context.Background())
	require.NoError(t, err)

	repo.stats.Volunteers = 7
	fresh, err := svc.Fresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), fresh.Volunteers)
}

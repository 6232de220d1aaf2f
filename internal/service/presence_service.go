package service

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const presenceKey = "volunteerhub:active_users"

// PresenceService tracks which accounts have authenticated recently in a
// Redis set. Tracking is best-effort; a Redis outage never fails a login.
type PresenceService struct {
	client *redis.Client
	logger *zap.Logger
}

// NewPresenceService builds the service.
func NewPresenceService(client *redis.Client, logger *zap.Logger) *PresenceService {
	return &PresenceService{client: client, logger: logger}
}

// MarkActive records the account in the presence set.
func (s *PresenceService) MarkActive(ctx context.Context, userID string) {
	if s == nil || s.client == nil {
		return
	}
	if err := s.client.SAdd(ctx, presenceKey, userID).Err(); err != nil {
		s.logger.Warn("mark active user", zap.Error(err), zap.String("user_id", userID))
	}
}

// Remove drops the account from the presence set.
func (s *PresenceService) Remove(ctx context.Context, userID string) {
	if s == nil || s.client == nil {
		return
	}
	if err := s.client.SRem(ctx, presenceKey, userID).Err(); err != nil {
		s.logger.Warn("remove active user", zap.Error(err), zap.String("user_id", userID))
	}
}

// Count reports the size of the presence set.
func (s *PresenceService) Count(ctx context.Context) (int64, error) {
	if s == nil || s.client == nil {
		return 0, nil
	}
	return s.client.SCard(ctx, presenceKey).Result()
}

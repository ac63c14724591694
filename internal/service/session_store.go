package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const SessionKeyPrefix = "admin_session:"

// SessionStore is the Redis allow-list of issued admin tokens. A token is
// only accepted while its key exists.
type SessionStore interface {
	Create(ctx context.Context, userID uuid.UUID, tokenID string, ttl time.Duration) error
	Exists(ctx context.Context, userID uuid.UUID, tokenID string) (bool, error)
	Revoke(ctx context.Context, userID uuid.UUID, tokenID string) error
	RevokeAll(ctx context.Context, userID uuid.UUID) (int64, error)
}

type redisSessionStore struct {
	client *redis.Client
	log    *logrus.Logger
}

func NewSessionStore(client *redis.Client, log *logrus.Logger) SessionStore {
	return &redisSessionStore{client: client, log: log}
}

func sessionKey(userID uuid.UUID, tokenID string) string {
	return fmt.Sprintf("%s%s:%s", SessionKeyPrefix, userID.String(), tokenID)
}

func (s *redisSessionStore) Create(ctx context.Context, userID uuid.UUID, tokenID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, sessionKey(userID, tokenID), "valid", ttl).Err(); err != nil {
		s.log.Warnf("Failed to store session in Redis: %+v", err)
		return err
	}
	return nil
}

func (s *redisSessionStore) Exists(ctx context.Context, userID uuid.UUID, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, sessionKey(userID, tokenID)).Result()
	if err != nil {
		s.log.Warnf("Failed to check session in Redis: %+v", err)
		return false, err
	}
	return n > 0, nil
}

func (s *redisSessionStore) Revoke(ctx context.Context, userID uuid.UUID, tokenID string) error {
	if err := s.client.Del(ctx, sessionKey(userID, tokenID)).Err(); err != nil {
		s.log.Warnf("Failed to delete session: %+v", err)
		return err
	}
	return nil
}

// RevokeAll deletes every session of the user, e.g. after a password change.
func (s *redisSessionStore) RevokeAll(ctx context.Context, userID uuid.UUID) (int64, error) {
	pattern := fmt.Sprintf("%s%s:*", SessionKeyPrefix, userID.String())
	deleted, err := deleteMatching(ctx, s.client, pattern, 100)
	if err != nil {
		s.log.Warnf("Failed to delete sessions: %+v", err)
		return deleted, err
	}
	return deleted, nil
}

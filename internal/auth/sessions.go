// Package auth implements credential checks against the users table and
// Redis-backed sessions for the API.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"backoffice/internal/common/logger"
	"backoffice/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "session:"
	userSessionsKey  = "user_sessions:"
)

// ErrSessionNotFound is returned when a token does not resolve to a live
// session.
var ErrSessionNotFound = fmt.Errorf("session not found")

// SessionStore keeps sessions in Redis with a TTL. A per-user set of tokens
// supports logout-from-all-devices.
type SessionStore struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewSessionStore(rdb *redis.Client, ttl time.Duration, log logger.Logger) *SessionStore {
	return &SessionStore{
		rdb:    rdb,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "sessions"}),
	}
}

// Ping verifies the Redis connection is alive.
func (s *SessionStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// Create stores a fresh session for the user and returns it.
func (s *SessionStore) Create(ctx context.Context, user *models.User) (*models.Session, error) {
	now := time.Now().UTC()
	session := &models.Session{
		Token:     uuid.New().String(),
		UserID:    user.ID,
		Username:  user.Username,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	data, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("marshal session: %w", err)
	}

	if err := s.rdb.Set(ctx, sessionKeyPrefix+session.Token, data, s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	if err := s.rdb.SAdd(ctx, userSessionsKey+user.ID, session.Token).Err(); err != nil {
		s.logger.Warn("failed to index session for user", map[string]interface{}{
			"userId": user.ID,
			"error":  err.Error(),
		})
	} else {
		// Keep the index alive no longer than its newest session, so tokens
		// of TTL-expired sessions do not accumulate.
		_ = s.rdb.Expire(ctx, userSessionsKey+user.ID, s.ttl).Err()
	}

	return session, nil
}

// Get resolves a token to its session. Expired or missing tokens yield
// ErrSessionNotFound.
func (s *SessionStore) Get(ctx context.Context, token string) (*models.Session, error) {
	data, err := s.rdb.Get(ctx, sessionKeyPrefix+token).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	if session.IsExpired() {
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

// Delete invalidates one session.
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	session, err := s.Get(ctx, token)
	if err == nil {
		_ = s.rdb.SRem(ctx, userSessionsKey+session.UserID, token).Err()
	}
	if err := s.rdb.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteAll invalidates every session of a user and returns how many were
// removed.
func (s *SessionStore) DeleteAll(ctx context.Context, userID string) (int, error) {
	tokens, err := s.rdb.SMembers(ctx, userSessionsKey+userID).Result()
	if err != nil {
		return 0, fmt.Errorf("list user sessions: %w", err)
	}

	count := 0
	for _, token := range tokens {
		if err := s.rdb.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
			s.logger.Warn("failed to delete session", map[string]interface{}{
				"userId": userID,
				"error":  err.Error(),
			})
			continue
		}
		count++
	}

	if err := s.rdb.Del(ctx, userSessionsKey+userID).Err(); err != nil {
		return count, fmt.Errorf("clear user session index: %w", err)
	}
	return count, nil
}

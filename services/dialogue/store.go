// File: services/dialogue/store.go
package dialogue

import (
	"context"
	"encoding/json"
	"time"

	"mediflow/models"
	"mediflow/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const sessionPrefix = "chat:session:"

// SessionStore persists conversation sessions between turns.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*models.ConversationSession, error)
	Set(ctx context.Context, sess *models.ConversationSession) error
	Clear(ctx context.Context, sessionID string) error
}

// RedisSessionStore keeps sessions in Redis with a sliding TTL. A missing
// or undecodable entry yields a fresh greeting session so one corrupt
// record never wedges a conversation.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (*models.ConversationSession, error) {
	key := sessionPrefix + sessionID
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return models.NewConversationSession(sessionID), nil
	}
	if err != nil {
		return nil, err
	}
	var sess models.ConversationSession
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		utils.GetLogger().Warn("discarding undecodable session",
			zap.String("sessionID", sessionID), zap.Error(err))
		return models.NewConversationSession(sessionID), nil
	}
	sess.Sanitize()
	return &sess, nil
}

func (s *RedisSessionStore) Set(ctx context.Context, sess *models.ConversationSession) error {
	key := sessionPrefix + sess.ID
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, b, s.ttl).Err()
}

func (s *RedisSessionStore) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionPrefix+sessionID).Err()
}

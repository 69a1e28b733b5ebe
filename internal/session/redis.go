package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// sessionTTL is a safety net on top of the engine's inactivity timeout; a key
// this old belongs to a conversation nobody is coming back to.
const sessionTTL = 24 * time.Hour

// RedisStore keeps sessions in Redis as JSON blobs, one key per user.
type RedisStore struct {
	redis  *redis.Client
	tracer trace.Tracer
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client, tracer trace.Tracer) *RedisStore {
	if client == nil {
		panic("session: redis client cannot be nil")
	}
	if tracer == nil {
		tracer = otel.Tracer("salonbot.internal.session")
	}
	return &RedisStore{redis: client, tracer: tracer}
}

func (s *RedisStore) Get(ctx context.Context, userID string) (*Session, error) {
	ctx, span := s.tracer.Start(ctx, "session.get")
	defer span.End()

	data, err := s.redis.Get(ctx, sessionKey(userID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("session: failed to load session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("session: failed to decode session: %w", err)
	}
	// Guards against schema drift: a session written by a different build may
	// decode cleanly into a state the engine cannot dispatch.
	if !sess.State.Valid() || !sess.Language.Valid() {
		err := fmt.Errorf("session: stored session for %s is invalid: state=%q language=%q",
			userID, sess.State, sess.Language)
		span.RecordError(err)
		return nil, err
	}
	return &sess, nil
}

func (s *RedisStore) Put(ctx context.Context, sess *Session) error {
	ctx, span := s.tracer.Start(ctx, "session.put")
	defer span.End()

	data, err := json.Marshal(sess)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("session: failed to marshal session: %w", err)
	}
	if err := s.redis.Set(ctx, sessionKey(sess.UserID), data, sessionTTL).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("session: failed to persist session: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, userID string) error {
	ctx, span := s.tracer.Start(ctx, "session.clear")
	defer span.End()

	if err := s.redis.Del(ctx, sessionKey(userID)).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("session: failed to clear session: %w", err)
	}
	return nil
}

func sessionKey(userID string) string {
	return fmt.Sprintf("session:%s", userID)
}

package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps session records in Redis. Expiry is enforced twice:
// records carry ExpiresAt, and the key gets a matching TTL so
// abandoned sessions disappear on their own.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a Redis-backed session store. The client is
// injected so tests can point it at an embedded server.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "session:",
	}
}

func (r *RedisStore) key(sessionID string) string {
	return r.prefix + sessionID
}

func (r *RedisStore) Get(ctx context.Context, sessionID string) (*Record, error) {
	val, err := r.client.Get(ctx, r.key(sessionID)).Result()
	if err == redis.Nil {
		return nil, nil // not found
	}
	if err != nil {
		return nil, &StoreError{Op: "get", Err: err}
	}

	var rec Record
	if err := json.Unmarshal([]byte(val), &rec); err != nil {
		return nil, &StoreError{Op: "decode", Err: err}
	}

	return &rec, nil
}

// Set writes the record under its session ID, creating or replacing it.
// The key TTL follows rec.ExpiresAt; a record already past its expiry
// is deleted instead of stored.
func (r *RedisStore) Set(ctx context.Context, rec Record) error {
	if rec.SessionID == "" {
		return fmt.Errorf("session: missing session id")
	}

	ttl := time.Until(rec.ExpiresAt)
	if ttl <= 0 {
		return r.Delete(ctx, rec.SessionID)
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return &StoreError{Op: "encode", Err: err}
	}

	if err := r.client.Set(ctx, r.key(rec.SessionID), data, ttl).Err(); err != nil {
		return &StoreError{Op: "set", Err: err}
	}

	return nil
}

func (r *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, r.key(sessionID)).Err(); err != nil {
		return &StoreError{Op: "delete", Err: err}
	}
	return nil
}

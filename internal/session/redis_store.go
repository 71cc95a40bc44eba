package session

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Storage field names. These are the compatibility contract with the rest
// of the application, which reads them directly.
const (
	fieldToken    = "token"
	fieldRole     = "userRole"
	fieldEmail    = "userEmail"
	fieldUsername = "username"
	fieldUser     = "user"
)

const keyPrefix = "session:"

// RedisStore keeps each session in a Redis hash under session:<id>. A
// single HSET writes all fields together and a DEL removes them, so
// readers never observe a half-written session.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore builds a store over the given client. ttl bounds how long
// an abandoned session lingers; zero means no expiry.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Get returns the stored session, or nil when the id has none.
func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	fields, err := r.client.HGetAll(ctx, keyPrefix+id).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, nil
	}
	return &Session{
		Token:       fields[fieldToken],
		Role:        fields[fieldRole],
		Email:       fields[fieldEmail],
		DisplayName: fields[fieldUsername],
	}, nil
}

// Set writes every field of the session in one HSET.
func (r *RedisStore) Set(ctx context.Context, id string, sess Session) error {
	key := keyPrefix + id
	if err := r.client.HSet(ctx, key,
		fieldToken, sess.Token,
		fieldRole, sess.Role,
		fieldEmail, sess.Email,
		fieldUsername, sess.DisplayName,
		fieldUser, sess.UserBlob(),
	).Err(); err != nil {
		return err
	}
	if r.ttl > 0 {
		return r.client.Expire(ctx, key, r.ttl).Err()
	}
	return nil
}

// Clear deletes the whole session hash.
func (r *RedisStore) Clear(ctx context.Context, id string) error {
	return r.client.Del(ctx, keyPrefix+id).Err()
}

// IDs scans for stored session ids.
func (r *RedisStore) IDs(ctx context.Context) ([]string, error) {
	var (
		ids    []string
		cursor uint64
	)
	for {
		keys, next, err := r.client.Scan(ctx, cursor, keyPrefix+"*", 100).Result()
		if err != nil {
			return nil, err
		}
		for _, key := range keys {
			ids = append(ids, key[len(keyPrefix):])
		}
		if next == 0 {
			return ids, nil
		}
		cursor = next
	}
}

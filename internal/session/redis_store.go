package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-elms/internal/identity"

	"github.com/redis/go-redis/v9"
)

type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func Key(role identity.Role, id string) string {
	return fmt.Sprintf("elms:session:%s:%s", role.Slug(), id)
}

func (s *RedisStore) Save(ctx context.Context, rec Record, idle time.Duration) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, Key(rec.Role, rec.ID), string(data), idle).Err()
}

func (s *RedisStore) Touch(ctx context.Context, role identity.Role, id string, idle time.Duration) (Record, error) {
	val, err := s.rdb.GetEx(ctx, Key(role, id), idle).Result()
	if errors.Is(err, redis.Nil) {
		return Record{}, ErrSessionNotFound
	}
	if err != nil {
		return Record{}, err
	}

	var rec Record
	if err := json.Unmarshal([]byte(val), &rec); err != nil {
		return Record{}, err
	}
	if rec.Role != role {
		return Record{}, ErrSessionNotFound
	}
	return rec, nil
}

func (s *RedisStore) Delete(ctx context.Context, role identity.Role, id string) error {
	return s.rdb.Del(ctx, Key(role, id)).Err()
}

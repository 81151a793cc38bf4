package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const loginAttemptPrefix = "login:fail:"

// LoginAttemptRepository counts failed logins per email inside a sliding lock window.
// It stores counters only, never tokens.
type LoginAttemptRepository interface {
	Failures(ctx context.Context, email string) (int, error)
	RecordFailure(ctx context.Context, email string, window time.Duration) (int, error)
	Reset(ctx context.Context, email string) error
}

type loginAttemptRepository struct {
	client *redis.Client
}

// NewLoginAttemptRepository returns a Redis-backed implementation.
func NewLoginAttemptRepository(client *redis.Client) LoginAttemptRepository {
	return &loginAttemptRepository{client: client}
}

func (r *loginAttemptRepository) Failures(ctx context.Context, email string) (int, error) {
	val, err := r.client.Get(ctx, loginAttemptKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(val)
}

func (r *loginAttemptRepository) RecordFailure(ctx context.Context, email string, window time.Duration) (int, error) {
	key := loginAttemptKey(email)
	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return int(incr.Val()), nil
}

func (r *loginAttemptRepository) Reset(ctx context.Context, email string) error {
	return r.client.Del(ctx, loginAttemptKey(email)).Err()
}

func loginAttemptKey(email string) string {
	return loginAttemptPrefix + normalizeEmail(email)
}

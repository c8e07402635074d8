package redis

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/oriently/oriently-backend/internal/pkg/envutil"
	"github.com/oriently/oriently-backend/internal/pkg/logger"
)

// IdempotencyStore remembers which submission id a client-supplied
// idempotency key mapped to, so a retried submit does not insert twice.
type IdempotencyStore interface {
	// Claim reserves key for submissionID. When the key was already
	// claimed it returns false plus the previously stored id.
	Claim(ctx context.Context, key string, submissionID uuid.UUID) (bool, uuid.UUID, error)
	// Release drops a claim so the key can be claimed again. A claim must
	// not outlive a failed insert, or the retry would be answered as a
	// duplicate of a submission that was never stored.
	Release(ctx context.Context, key string) error
	Close() error
}

type idempotencyStore struct {
	log    *logger.Logger
	rdb    *goredis.Client
	ttl    time.Duration
	prefix string
}

// NewIdempotencyStore connects to REDIS_ADDR. A missing address is an
// error; the caller decides whether to run without the store.
func NewIdempotencyStore(log *logger.Logger) (IdempotencyStore, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    os.Getenv("REDIS_PASSWORD"),
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &idempotencyStore{
		log:    log.With("client", "RedisIdempotencyStore"),
		rdb:    rdb,
		ttl:    envutil.DurationSeconds("IDEMPOTENCY_TTL_SECONDS", 24*time.Hour),
		prefix: "quiz:idem:",
	}, nil
}

func (s *idempotencyStore) Claim(ctx context.Context, key string, submissionID uuid.UUID) (bool, uuid.UUID, error) {
	if s == nil || s.rdb == nil {
		return false, uuid.Nil, fmt.Errorf("idempotency store not initialized")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return false, uuid.Nil, fmt.Errorf("empty idempotency key")
	}

	full := s.prefix + key
	claimed, err := s.rdb.SetNX(ctx, full, submissionID.String(), s.ttl).Result()
	if err != nil {
		return false, uuid.Nil, fmt.Errorf("redis setnx: %w", err)
	}
	if claimed {
		return true, submissionID, nil
	}

	existing, err := s.rdb.Get(ctx, full).Result()
	if err != nil {
		return false, uuid.Nil, fmt.Errorf("redis get: %w", err)
	}
	prev, err := uuid.Parse(existing)
	if err != nil {
		return false, uuid.Nil, fmt.Errorf("stored id not a uuid: %w", err)
	}
	return false, prev, nil
}

func (s *idempotencyStore) Release(ctx context.Context, key string) error {
	if s == nil || s.rdb == nil {
		return fmt.Errorf("idempotency store not initialized")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("empty idempotency key")
	}
	return s.rdb.Del(ctx, s.prefix+key).Err()
}

func (s *idempotencyStore) Close() error {
	if s == nil || s.rdb == nil {
		return nil
	}
	return s.rdb.Close()
}

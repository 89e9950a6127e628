package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
)

type otpEntry struct {
	code     string
	expires  time.Time
	failures int
}

// MemoryOTPStore keeps codes in process. Used when redis is disabled.
type MemoryOTPStore struct {
	mu    sync.Mutex
	codes map[string]otpEntry
	ttl   time.Duration
	now   func() time.Time
}

func NewMemoryOTPStore(ttl time.Duration) *MemoryOTPStore {
	return &MemoryOTPStore{
		codes: make(map[string]otpEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (s *MemoryOTPStore) Save(_ context.Context, email, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[otpKey(email)] = otpEntry{code: code, expires: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryOTPStore) Get(_ context.Context, email string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := otpKey(email)
	entry, ok := s.codes[key]
	if !ok {
		return "", false, nil
	}
	if s.now().After(entry.expires) {
		delete(s.codes, key)
		return "", false, nil
	}
	return entry.code, true, nil
}

// Fail records a wrong guess against the live code and returns the number of
// failures so far. Without a live code there is nothing to count.
func (s *MemoryOTPStore) Fail(_ context.Context, email string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := otpKey(email)
	entry, ok := s.codes[key]
	if !ok || s.now().After(entry.expires) {
		return 0, nil
	}
	entry.failures++
	s.codes[key] = entry
	return entry.failures, nil
}

func (s *MemoryOTPStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.codes, otpKey(email))
	return nil
}

// RedisOTPStore keeps codes in redis with a TTL so they survive restarts and
// are shared between instances.
type RedisOTPStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisOTPStore(client *redis.Client, ttl time.Duration) *RedisOTPStore {
	return &RedisOTPStore{client: client, ttl: ttl}
}

// Save replaces the code and resets its failure counter.
func (s *RedisOTPStore) Save(ctx context.Context, email, code string) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, otpKey(email), code, s.ttl)
		pipe.Del(ctx, failKey(email))
		return nil
	})
	return errors.Wrap(err, "store otp")
}

func (s *RedisOTPStore) Get(ctx context.Context, email string) (string, bool, error) {
	code, err := s.client.Get(ctx, otpKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(err, "load otp")
	}
	return code, true, nil
}

// Fail counts a wrong guess. The counter expires with the code.
func (s *RedisOTPStore) Fail(ctx context.Context, email string) (int, error) {
	key := failKey(email)
	n, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, errors.Wrap(err, "count otp failure")
	}
	if n == 1 {
		if err := s.client.Expire(ctx, key, s.ttl).Err(); err != nil {
			return int(n), errors.Wrap(err, "expire otp failures")
		}
	}
	return int(n), nil
}

func (s *RedisOTPStore) Delete(ctx context.Context, email string) error {
	return errors.Wrap(s.client.Del(ctx, otpKey(email), failKey(email)).Err(), "delete otp")
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func otpKey(email string) string {
	return "otp:" + normalize(email)
}

func failKey(email string) string {
	return "otp:fail:" + normalize(email)
}

package otp

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/salon-booking/internal/domain/identity"
)

// CodeStore keeps one code hash per (phone, mode). Saving again replaces the
// previous code and resets its attempt counter.
type CodeStore interface {
	Save(ctx context.Context, phone string, mode identity.Mode, hash string, ttl time.Duration) error
	Load(ctx context.Context, phone string, mode identity.Mode) (hash string, found bool, err error)
	IncrAttempts(ctx context.Context, phone string, mode identity.Mode) (int, error)
	Delete(ctx context.Context, phone string, mode identity.Mode) error
}

// --------------------------------------------------
// Redis
// --------------------------------------------------

type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func codeKey(phone string, mode identity.Mode) string {
	return "otp:" + string(mode) + ":" + phone
}

func attemptsKey(phone string, mode identity.Mode) string {
	return codeKey(phone, mode) + ":attempts"
}

func (s *RedisStore) Save(ctx context.Context, phone string, mode identity.Mode, hash string, ttl time.Duration) error {
	_, err := s.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, codeKey(phone, mode), hash, ttl)
		p.Del(ctx, attemptsKey(phone, mode))
		return nil
	})
	return err
}

func (s *RedisStore) Load(ctx context.Context, phone string, mode identity.Mode) (string, bool, error) {
	hash, err := s.rdb.Get(ctx, codeKey(phone, mode)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return hash, true, nil
}

func (s *RedisStore) IncrAttempts(ctx context.Context, phone string, mode identity.Mode) (int, error) {
	key := attemptsKey(phone, mode)
	n, err := s.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		ttl, err := s.rdb.TTL(ctx, codeKey(phone, mode)).Result()
		if err != nil || ttl <= 0 {
			ttl = 10 * time.Minute
		}
		s.rdb.Expire(ctx, key, ttl)
	}
	return int(n), nil
}

func (s *RedisStore) Delete(ctx context.Context, phone string, mode identity.Mode) error {
	return s.rdb.Del(ctx, codeKey(phone, mode), attemptsKey(phone, mode)).Err()
}

// --------------------------------------------------
// Memory (single process, development only)
// --------------------------------------------------

type memoryRecord struct {
	hash      string
	attempts  int
	expiresAt time.Time
}

type MemoryStore struct {
	mu      sync.Mutex
	records map[string]*memoryRecord
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: map[string]*memoryRecord{}, now: time.Now}
}

func (s *MemoryStore) Save(_ context.Context, phone string, mode identity.Mode, hash string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[codeKey(phone, mode)] = &memoryRecord{hash: hash, expiresAt: s.now().Add(ttl)}
	return nil
}

// lookup drops expired records as a side effect. Caller holds mu.
func (s *MemoryStore) lookup(key string) *memoryRecord {
	rec, ok := s.records[key]
	if !ok {
		return nil
	}
	if !s.now().Before(rec.expiresAt) {
		delete(s.records, key)
		return nil
	}
	return rec
}

func (s *MemoryStore) Load(_ context.Context, phone string, mode identity.Mode) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.lookup(codeKey(phone, mode))
	if rec == nil {
		return "", false, nil
	}
	return rec.hash, true, nil
}

func (s *MemoryStore) IncrAttempts(_ context.Context, phone string, mode identity.Mode) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.lookup(codeKey(phone, mode))
	if rec == nil {
		return 0, nil
	}
	rec.attempts++
	return rec.attempts, nil
}

func (s *MemoryStore) Delete(_ context.Context, phone string, mode identity.Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, codeKey(phone, mode))
	return nil
}

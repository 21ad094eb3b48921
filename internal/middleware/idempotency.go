package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-booking/internal/httperr"
)

const HeaderIdempotencyKey = "Idempotency-Key"

// idempotencyLockTTL bounds how long a crashed request can hold its key.
const idempotencyLockTTL = 30 * time.Second

type CachedResponse struct {
	StatusCode  int    `json:"status"`
	ContentType string `json:"contentType"`
	Body        []byte `json:"body"`
}

type IdempotencyStore interface {
	Get(ctx context.Context, key string) (*CachedResponse, bool, error)
	Set(ctx context.Context, key string, resp *CachedResponse) error
	// Lock marks key as in flight and reports false if it already is.
	Lock(ctx context.Context, key string) (bool, error)
	Unlock(ctx context.Context, key string) error
}

type RedisIdempotencyStore struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisIdempotencyStore(rdb *redis.Client, prefix string, ttl time.Duration) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (s *RedisIdempotencyStore) Get(ctx context.Context, key string) (*CachedResponse, bool, error) {
	raw, err := s.rdb.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var resp CachedResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, false, err
	}
	return &resp, true, nil
}

func (s *RedisIdempotencyStore) Set(ctx context.Context, key string, resp *CachedResponse) error {
	raw, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.prefix+key, raw, s.ttl).Err()
}

func (s *RedisIdempotencyStore) Lock(ctx context.Context, key string) (bool, error) {
	return s.rdb.SetNX(ctx, s.prefix+key+":lock", 1, idempotencyLockTTL).Result()
}

func (s *RedisIdempotencyStore) Unlock(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, s.prefix+key+":lock").Err()
}

type responseCapture struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseCapture) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *responseCapture) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Idempotency replays the first successful response for an
// (principal, Idempotency-Key) pair. A second request arriving while the
// first is still running gets 409. Requests without the header pass
// through. Store failures degrade to normal processing.
func Idempotency(store IdempotencyStore, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" || store == nil {
			c.Next()
			return
		}

		p := PrincipalFrom(c)
		scoped := p.Kind().String() + ":" + p.ID() + ":" + c.FullPath() + ":" + c.Param("id") + ":" + key

		cached, ok, err := store.Get(c.Request.Context(), scoped)
		if err != nil {
			log.Warn("idempotency lookup failed", zap.Error(err))
		}
		if ok {
			c.Header("Idempotent-Replayed", "true")
			c.Data(cached.StatusCode, cached.ContentType, cached.Body)
			c.Abort()
			return
		}

		locked, err := store.Lock(c.Request.Context(), scoped)
		switch {
		case err != nil:
			log.Warn("idempotency lock failed", zap.Error(err))
		case !locked:
			httperr.Abort(c, httperr.Conflict("idempotency_in_progress", "A request with this Idempotency-Key is still being processed."))
			return
		default:
			defer func() {
				if err := store.Unlock(context.WithoutCancel(c.Request.Context()), scoped); err != nil {
					log.Warn("idempotency unlock failed", zap.Error(err))
				}
			}()
		}

		capture := &responseCapture{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = capture
		c.Next()

		status := capture.Status()
		if status < http.StatusOK || status >= http.StatusMultipleChoices {
			return
		}
		resp := &CachedResponse{
			StatusCode:  status,
			ContentType: capture.Header().Get("Content-Type"),
			Body:        capture.body.Bytes(),
		}
		if err := store.Set(c.Request.Context(), scoped, resp); err != nil {
			log.Warn("idempotency store failed", zap.Error(err))
		}
	}
}

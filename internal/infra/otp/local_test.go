package otp

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-booking/internal/domain/identity"
)

const phone = "+919876543210"

type recordingSender struct {
	mu    sync.Mutex
	codes []string
}

func (s *recordingSender) SendCode(_ context.Context, _ string, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes = append(s.codes, code)
	return nil
}

func (s *recordingSender) last() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.codes[len(s.codes)-1]
}

func TestGenerateCode(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := GenerateCode()
		require.NoError(t, err)
		assert.Regexp(t, `^[0-9]{6}$`, code)
	}
}

func runGatewaySuite(t *testing.T, store CodeStore, expire func(d time.Duration)) {
	ctx := context.Background()

	t.Run("single use", func(t *testing.T) {
		sender := &recordingSender{}
		gw := NewLocalGateway(store, sender, time.Minute)
		require.NoError(t, gw.Send(ctx, phone, identity.ModeUserLogin))

		ok, err := gw.Check(ctx, phone, identity.ModeUserLogin, sender.last())
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = gw.Check(ctx, phone, identity.ModeUserLogin, sender.last())
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("modes are independent", func(t *testing.T) {
		sender := &recordingSender{}
		gw := NewLocalGateway(store, sender, time.Minute)
		require.NoError(t, gw.Send(ctx, phone, identity.ModeUserSignup))
		userCode := sender.last()
		require.NoError(t, gw.Send(ctx, phone, identity.ModeSalonLogin))
		salonCode := sender.last()

		if userCode != salonCode {
			ok, err := gw.Check(ctx, phone, identity.ModeSalonLogin, userCode)
			require.NoError(t, err)
			assert.False(t, ok)
		}

		ok, err := gw.Check(ctx, phone, identity.ModeUserSignup, userCode)
		require.NoError(t, err)
		assert.True(t, ok)
		ok, err = gw.Check(ctx, phone, identity.ModeSalonLogin, salonCode)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("resend replaces code", func(t *testing.T) {
		gw := NewLocalGateway(store, &recordingSender{}, time.Minute)
		codes := []string{"111111", "222222"}
		gw.gen = func() (string, error) {
			c := codes[0]
			codes = codes[1:]
			return c, nil
		}
		require.NoError(t, gw.Send(ctx, phone, identity.ModeUserLogin))
		require.NoError(t, gw.Send(ctx, phone, identity.ModeUserLogin))

		ok, err := gw.Check(ctx, phone, identity.ModeUserLogin, "111111")
		require.NoError(t, err)
		assert.False(t, ok)
		ok, err = gw.Check(ctx, phone, identity.ModeUserLogin, "222222")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("expires", func(t *testing.T) {
		sender := &recordingSender{}
		gw := NewLocalGateway(store, sender, time.Minute)
		require.NoError(t, gw.Send(ctx, phone, identity.ModeUserLogin))
		expire(2 * time.Minute)

		ok, err := gw.Check(ctx, phone, identity.ModeUserLogin, sender.last())
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("burned after max attempts", func(t *testing.T) {
		gw := NewLocalGateway(store, &recordingSender{}, time.Minute)
		gw.gen = func() (string, error) { return "123456", nil }
		require.NoError(t, gw.Send(ctx, phone, identity.ModeUserLogin))

		for i := 0; i < MaxAttempts; i++ {
			ok, err := gw.Check(ctx, phone, identity.ModeUserLogin, "000000")
			require.NoError(t, err)
			assert.False(t, ok)
		}

		ok, err := gw.Check(ctx, phone, identity.ModeUserLogin, "123456")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestLocalGatewayWithMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return clock }

	runGatewaySuite(t, store, func(d time.Duration) { clock = clock.Add(d) })
}

func TestLocalGatewayWithRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	runGatewaySuite(t, NewRedisStore(rdb), mr.FastForward)
}

func TestRedisStoreKeepsOnlyHashes(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	gw := NewLocalGateway(NewRedisStore(rdb), &recordingSender{}, time.Minute)
	gw.gen = func() (string, error) { return "654321", nil }
	require.NoError(t, gw.Send(context.Background(), phone, identity.ModeUserSignup))

	stored, err := mr.Get("otp:user-signup:" + phone)
	require.NoError(t, err)
	assert.NotEqual(t, "654321", stored)
	assert.Equal(t, time.Minute, mr.TTL("otp:user-signup:"+phone))
}

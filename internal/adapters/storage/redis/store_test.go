package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotebox/internal/ports"
)

func setupTestStore(t *testing.T, ttl time.Duration, cb BreakerConfig) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	client := goredis.NewClient(&goredis.Options{
		Addr:       mr.Addr(),
		MaxRetries: -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	return New(Config{Client: client, TTL: ttl, Breaker: cb}), mr
}

func TestNew_PanicsWithoutClient(t *testing.T) {
	assert.Panics(t, func() {
		New(Config{})
	})
}

func TestStore_GetMissing(t *testing.T) {
	s, _ := setupTestStore(t, 0, BreakerConfig{})

	_, err := s.Get(context.Background(), "lastQuote")

	require.ErrorIs(t, err, ports.ErrKeyNotFound)
}

func TestStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	s, mr := setupTestStore(t, 0, BreakerConfig{})

	require.NoError(t, s.Set(ctx, "session:abc:lastQuote", []byte(`{"text":"a","category":"A"}`)))

	got, err := s.Get(ctx, "session:abc:lastQuote")
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"a","category":"A"}`, string(got))
	assert.Equal(t, time.Duration(0), mr.TTL("session:abc:lastQuote"))

	require.NoError(t, s.Delete(ctx, "session:abc:lastQuote"))
	assert.False(t, mr.Exists("session:abc:lastQuote"))
}

func TestStore_TTLExpiresKeys(t *testing.T) {
	ctx := context.Background()
	s, mr := setupTestStore(t, 30*time.Minute, BreakerConfig{})

	require.NoError(t, s.Set(ctx, "k", []byte("v")))
	assert.Equal(t, 30*time.Minute, mr.TTL("k"))

	mr.FastForward(31 * time.Minute)

	_, err := s.Get(ctx, "k")
	require.ErrorIs(t, err, ports.ErrKeyNotFound)
}

func TestStore_BreakerOpensWhenRedisIsDown(t *testing.T) {
	ctx := context.Background()
	s, mr := setupTestStore(t, 0, BreakerConfig{MaxFailures: 2, Timeout: time.Minute, HalfOpenLimit: 1})

	mr.Close()

	require.Error(t, s.Set(ctx, "k", []byte("v")))
	require.Error(t, s.Set(ctx, "k", []byte("v")))
	assert.Equal(t, BreakerOpen, s.BreakerState())

	_, err := s.Get(ctx, "k")
	require.ErrorIs(t, err, ErrCircuitOpen)
}

func TestStore_MissingKeyIsNotAFailure(t *testing.T) {
	s, _ := setupTestStore(t, 0, BreakerConfig{MaxFailures: 1, Timeout: time.Minute, HalfOpenLimit: 1})

	for range 3 {
		_, err := s.Get(context.Background(), "absent")
		require.ErrorIs(t, err, ports.ErrKeyNotFound)
	}

	assert.Equal(t, BreakerClosed, s.BreakerState())
}

func TestStore_HealthCheck(t *testing.T) {
	s, mr := setupTestStore(t, 0, BreakerConfig{})

	assert.Equal(t, "redis", s.Name())
	require.NoError(t, s.Check(context.Background()))

	mr.Close()
	require.Error(t, s.Check(context.Background()))
}

func TestParseConnection(t *testing.T) {
	tests := []struct {
		name     string
		conn     string
		addr     string
		password string
		tls      bool
	}{
		{name: "url", conn: "redis://:secret@localhost:6380/0", addr: "localhost:6380", password: "secret"},
		{name: "plain address", conn: "localhost:6379", addr: "localhost:6379"},
		{name: "connection string", conn: "cache:6380,password=pw,ssl=True", addr: "cache:6380", password: "pw", tls: true},
		{name: "ignores malformed parts", conn: "cache:6379,junk", addr: "cache:6379"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := parseConnection(tt.conn)

			assert.Equal(t, tt.addr, opts.Addr)
			assert.Equal(t, tt.password, opts.Password)
			assert.Equal(t, tt.tls, opts.TLSConfig != nil)
		})
	}
}

func TestNewClient_Overrides(t *testing.T) {
	client := NewClient(ClientConfig{URL: "localhost:6379", Password: "override", DB: 2})
	t.Cleanup(func() { _ = client.Close() })

	opts := client.Options()
	assert.Equal(t, "override", opts.Password)
	assert.Equal(t, 2, opts.DB)
}

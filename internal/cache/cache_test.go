package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"coachbase.app/internal/tenant"
)

type stubRedis struct {
	data    map[string][]byte
	getErr  error
	deleted []string
}

func newStubRedis() *stubRedis { return &stubRedis{data: map[string][]byte{}} }

func (s *stubRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if s.getErr != nil {
		cmd := redis.NewStringCmd(ctx)
		cmd.SetErr(s.getErr)
		return cmd
	}
	raw, ok := s.data[key]
	if !ok {
		cmd := redis.NewStringCmd(ctx)
		cmd.SetErr(redis.Nil)
		return cmd
	}
	return redis.NewStringResult(string(raw), nil)
}

func (s *stubRedis) SetEx(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		s.data[key] = append([]byte(nil), v...)
	case string:
		s.data[key] = []byte(v)
	}
	return redis.NewStatusResult("OK", nil)
}

func (s *stubRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	for _, k := range keys {
		delete(s.data, k)
		s.deleted = append(s.deleted, k)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func TestTenantCacheRoundTrip(t *testing.T) {
	stub := newStubRedis()
	c := NewTenantCache(stub, 0)

	_, ok := c.GetTenant(context.Background(), "t1")
	require.False(t, ok)

	c.SetTenant(context.Background(), &tenant.Tenant{ID: "t1", Name: "Studio", Slug: "studio"})
	got, ok := c.GetTenant(context.Background(), "t1")
	require.True(t, ok)
	require.Equal(t, "Studio", got.Name)

	c.Invalidate(context.Background(), "t1")
	_, ok = c.GetTenant(context.Background(), "t1")
	require.False(t, ok)
	require.Contains(t, stub.deleted, "tenant:t1")
}

func TestTenantCacheToleratesRedisErrors(t *testing.T) {
	stub := newStubRedis()
	stub.getErr = context.DeadlineExceeded
	c := NewTenantCache(stub, time.Minute)

	_, ok := c.GetTenant(context.Background(), "t1")
	require.False(t, ok)
}

func TestTenantCacheDropsCorruptEntries(t *testing.T) {
	stub := newStubRedis()
	stub.data["tenant:t1"] = []byte("{not json")
	c := NewTenantCache(stub, time.Minute)

	_, ok := c.GetTenant(context.Background(), "t1")
	require.False(t, ok)
	require.Contains(t, stub.deleted, "tenant:t1")
}

func TestTenantCacheSerializationShape(t *testing.T) {
	stub := newStubRedis()
	c := NewTenantCache(stub, time.Minute)

	c.SetTenant(context.Background(), &tenant.Tenant{ID: "t1", Name: "Studio", Plan: tenant.PlanBasic})
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(stub.data["tenant:t1"], &decoded))
	require.Equal(t, "basic", decoded["plan"])
}

// Package cache provides a Redis-backed read-through cache for tenant
// records. The API never fails a request on cache trouble: misses and Redis
// errors both fall through to the database.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"coachbase.app/internal/obs"
	"coachbase.app/internal/tenant"
)

const (
	tenantKeyPrefix  = "tenant:"
	defaultTenantTTL = time.Hour
)

// RedisClient is the slice of go-redis used by the cache. *redis.Client
// satisfies it.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	SetEx(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// TenantCache implements tenant.Cache on Redis.
type TenantCache struct {
	client RedisClient
	ttl    time.Duration
}

// NewTenantCache wraps a Redis client. A zero ttl gets the one-hour default.
func NewTenantCache(client RedisClient, ttl time.Duration) *TenantCache {
	if ttl <= 0 {
		ttl = defaultTenantTTL
	}
	return &TenantCache{client: client, ttl: ttl}
}

// GetTenant returns the cached tenant, or false on a miss or any Redis
// error.
func (c *TenantCache) GetTenant(ctx context.Context, id string) (*tenant.Tenant, bool) {
	raw, err := c.client.Get(ctx, tenantKeyPrefix+id).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			obs.Logger().Warn().Err(err).Str("tenant_id", id).Msg("tenant cache read failed")
		}
		return nil, false
	}
	var t tenant.Tenant
	if err := json.Unmarshal(raw, &t); err != nil {
		obs.Logger().Warn().Err(err).Str("tenant_id", id).Msg("tenant cache entry corrupt")
		c.Invalidate(ctx, id)
		return nil, false
	}
	return &t, true
}

// SetTenant stores a tenant record with the configured TTL.
func (c *TenantCache) SetTenant(ctx context.Context, t *tenant.Tenant) {
	raw, err := json.Marshal(t)
	if err != nil {
		return
	}
	if err := c.client.SetEx(ctx, tenantKeyPrefix+t.ID, raw, c.ttl).Err(); err != nil {
		obs.Logger().Warn().Err(err).Str("tenant_id", t.ID).Msg("tenant cache write failed")
	}
}

// Invalidate drops the cached record after a tenant mutation.
func (c *TenantCache) Invalidate(ctx context.Context, id string) {
	if err := c.client.Del(ctx, tenantKeyPrefix+id).Err(); err != nil {
		obs.Logger().Warn().Err(err).Str("tenant_id", id).Msg("tenant cache invalidation failed")
	}
}

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// AvailabilityCache caches per-vehicle day-status maps in Redis.
// A nil *AvailabilityCache is valid and disables caching, so callers
// never need to branch on whether Redis is configured.
type AvailabilityCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(rdb *redis.Client, ttl time.Duration) *AvailabilityCache {
	if rdb == nil {
		return nil
	}
	return &AvailabilityCache{rdb: rdb, ttl: ttl}
}

func key(vehicleID, from, to string) string {
	return fmt.Sprintf("availability:%s:%s:%s", vehicleID, from, to)
}

// Get returns the cached day map, or ok=false on miss or any Redis error.
func (c *AvailabilityCache) Get(ctx context.Context, vehicleID, from, to string) (map[string]string, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, key(vehicleID, from, to)).Bytes()
	if err != nil {
		return nil, false
	}
	var days map[string]string
	if err := json.Unmarshal(raw, &days); err != nil {
		return nil, false
	}
	return days, true
}

// Set stores the day map. Failures are ignored; the cache is best-effort.
func (c *AvailabilityCache) Set(ctx context.Context, vehicleID, from, to string, days map[string]string) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(days)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, key(vehicleID, from, to), raw, c.ttl)
}

// Invalidate drops every cached window for the vehicle. Called after any
// interval mutation so stale availability is never served.
func (c *AvailabilityCache) Invalidate(ctx context.Context, vehicleID string) {
	if c == nil {
		return
	}
	pattern := fmt.Sprintf("availability:%s:*", vehicleID)
	iter := c.rdb.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		c.rdb.Del(ctx, iter.Val())
	}
}

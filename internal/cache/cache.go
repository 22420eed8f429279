package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const availabilityTTL = 60 * time.Second

// Cache keeps availability responses in Redis for a short window. Booking
// and blocking invalidate the affected day so stale slots are never offered
// for long.
type Cache struct {
	rdb *redis.Client
}

func New(addr, password string, db int) *Cache {
	return &Cache{
		rdb: redis.NewClient(&redis.Options{
			Addr:         addr,
			Password:     password,
			DB:           db,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		}),
	}
}

// NewWithClient wires an existing client; tests pass a miniredis-backed one.
func NewWithClient(rdb *redis.Client) *Cache {
	return &Cache{rdb: rdb}
}

func (c *Cache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *Cache) Close() error {
	return c.rdb.Close()
}

func AvailabilityKey(salonID uint, date string, professionalID uint) string {
	return fmt.Sprintf("availability:%d:%s:%d", salonID, date, professionalID)
}

func (c *Cache) GetSlots(ctx context.Context, key string) ([]string, bool) {
	raw, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}

	var slots []string
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (c *Cache) SetSlots(ctx context.Context, key string, slots []string) {
	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}
	// cache failures are invisible to callers, the API just recomputes
	c.rdb.Set(ctx, key, raw, availabilityTTL)
}

// InvalidateDay drops every cached availability entry for the salon's date,
// across professionals.
func (c *Cache) InvalidateDay(ctx context.Context, salonID uint, date string) {
	pattern := fmt.Sprintf("availability:%d:%s:*", salonID, date)
	keys, err := c.rdb.Keys(ctx, pattern).Result()
	if err != nil || len(keys) == 0 {
		return
	}
	c.rdb.Del(ctx, keys...)
}

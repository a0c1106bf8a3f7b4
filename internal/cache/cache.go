// Package cache is a thin optional layer over Redis used to memoize the
// heavier report aggregations. A nil *Cache is valid and means caching
// is off; every method then reports a miss or does nothing.
package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

type Cache struct {
	client *redis.Client
}

// New connects to Redis at the given URL. An empty URL disables the
// cache entirely. A failed ping also disables it rather than blocking
// startup: reports fall back to computing on every request.
func New(ctx context.Context, url string) *Cache {
	if url == "" {
		return nil
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("[CACHE] [WARN] Geçersiz Redis adresi, önbellek devre dışı: %v", err)
		return nil
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("[CACHE] [WARN] Redis erişilemedi, önbellek devre dışı: %v", err)
		return nil
	}
	log.Println("[CACHE] [INFO] Redis önbelleği aktif")
	return &Cache{client: client}
}

// GetJSON loads key into dest. Returns false on miss, disabled cache, or
// any Redis error (errors degrade to a miss, never to a failure).
func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if c == nil {
		return false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[CACHE] [WARN] Okuma hatası (%s): %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		log.Printf("[CACHE] [WARN] Bozuk önbellek kaydı siliniyor (%s): %v", key, err)
		c.client.Del(ctx, key)
		return false
	}
	return true
}

func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		log.Printf("[CACHE] [WARN] Serileştirme hatası (%s): %v", key, err)
		return
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		log.Printf("[CACHE] [WARN] Yazma hatası (%s): %v", key, err)
	}
}

// Invalidate removes the given keys. Order mutations call this so report
// endpoints never serve stale aggregates past the write.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("[CACHE] [WARN] Silme hatası: %v", err)
	}
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}

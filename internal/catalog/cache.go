package catalog

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

const cacheTTL = 5 * time.Minute

// Cache: read-through Redis cache for collection lists. Every cache miss or
// Redis failure falls back to the database; the cache is never authoritative.
type Cache struct {
	client *redis.Client
}

// NewCache connects to Redis and pings it. Returns an error rather than
// failing hard so the caller can run without a cache.
func NewCache(addr string) (*Cache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	log.Println("Connected to Redis at", addr)
	return &Cache{client: client}, nil
}

func (c *Cache) key(col Collection) string {
	return "catalog:" + string(col)
}

func (c *Cache) Get(ctx context.Context, col Collection) ([]Entry, bool) {
	data, err := c.client.Get(ctx, c.key(col)).Bytes()
	if err != nil {
		return nil, false
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, false
	}
	return entries, true
}

func (c *Cache) Set(ctx context.Context, col Collection, entries []Entry) {
	data, err := json.Marshal(entries)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.key(col), data, cacheTTL).Err(); err != nil {
		log.Printf("catalog cache set failed for %s: %v", col, err)
	}
}

// Invalidate drops a collection's cached list after a mutation.
func (c *Cache) Invalidate(ctx context.Context, col Collection) {
	if err := c.client.Del(ctx, c.key(col)).Err(); err != nil {
		log.Printf("catalog cache invalidate failed for %s: %v", col, err)
	}
}

func (c *Cache) Close() error {
	return c.client.Close()
}

package cache

import (
	"context"
	"time"

	"github.com/goccy/go-json"
)

// GetJSON reads and decodes a cached JSON value. An undecodable value is a miss.
func GetJSON[T any](ctx context.Context, c Cache, key string) (T, bool) {
	var v T
	raw, ok := c.Get(ctx, key)
	if !ok {
		return v, false
	}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		var zero T
		return zero, false
	}
	return v, true
}

// SetJSON encodes and caches a value. Encoding failures drop the write.
func SetJSON(ctx context.Context, c Cache, key string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.Set(ctx, key, string(data), ttl)
}

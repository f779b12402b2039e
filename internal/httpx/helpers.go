package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// Cache helpers tolerate a nil client so the cache stays optional.

func cacheGet(ctx context.Context, rdb *redis.Client, key string) (string, bool) {
	if rdb == nil {
		return "", false
	}
	s, err := rdb.Get(ctx, key).Result()
	if err != nil || s == "" {
		return "", false
	}
	return s, true
}

func cacheSet(ctx context.Context, rdb *redis.Client, key string, val []byte, ttl time.Duration) {
	if rdb == nil {
		return
	}
	_ = rdb.Set(ctx, key, val, ttl).Err()
}

func cacheDel(ctx context.Context, rdb *redis.Client, keys ...string) {
	if rdb == nil {
		return
	}
	_ = rdb.Del(ctx, keys...).Err()
}

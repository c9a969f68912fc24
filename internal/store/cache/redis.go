package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects and pings. An empty addr returns a nil client,
// which every decorator treats as "cache disabled".
func NewRedisClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	if addr == "" {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return rdb, nil
}

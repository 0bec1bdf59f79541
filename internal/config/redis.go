package config

// Redis backs the rate limiter and the response cache. If no server can be
// reached at startup the constructor returns nil and both middlewares
// degrade to pass-throughs.

import (
	"context"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisAddr resolves the server address. REDIS_ADDR wins; REDIS_HOST and
// REDIS_PORT together are the fallback, then localhost.
func redisAddr() string {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return addr
	}
	if host, port := os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT"); host != "" && port != "" {
		return host + ":" + port
	}
	return "localhost:6379"
}

// NewRedisClient instantiates a Redis client from REDIS_ADDR (or
// REDIS_HOST/REDIS_PORT) and REDIS_PASSWORD. The returned client is nil if
// a connection cannot be established.
func NewRedisClient() *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr(),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       envInt("REDIS_DB", 0),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}
	return client
}

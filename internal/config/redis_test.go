package config

import (
	"testing"

	assert "github.com/stretchr/testify/require"
)

func TestRedisAddrPrecedence(t *testing.T) {
	t.Setenv("REDIS_ADDR", "addr.example:7000")
	t.Setenv("REDIS_HOST", "host.example")
	t.Setenv("REDIS_PORT", "6380")

	// REDIS_ADDR wins over the host/port pair.
	assert.Equal(t, "addr.example:7000", redisAddr())
}

func TestRedisAddrHostPortFallback(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("REDIS_HOST", "host.example")
	t.Setenv("REDIS_PORT", "6380")

	assert.Equal(t, "host.example:6380", redisAddr())
}

func TestRedisAddrDefault(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("REDIS_PORT", "")

	assert.Equal(t, "localhost:6379", redisAddr())
}

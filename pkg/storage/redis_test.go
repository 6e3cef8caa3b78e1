package storage

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := DefaultConfig()
	cfg.RedisURL = "redis://" + mr.Addr()

	client, err := NewRedis(cfg)
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, client.Ping(client.Context()).Err())
}

func TestNewRedisInvalidURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RedisURL = "://nope"

	_, err := NewRedis(cfg)
	assert.Error(t, err)
}

func TestNewRedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := DefaultConfig()
	cfg.RedisURL = "redis://" + addr

	_, err := NewRedis(cfg)
	assert.Error(t, err)
}

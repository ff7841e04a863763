// Package testutils provides utilities for testing, including Redis test helpers
package testutils

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/questforge/questforge/internal/redis"
)

// CreateTestRedisClient creates an in-memory Redis client for testing.
// The backing server is torn down with the test.
func CreateTestRedisClient(t *testing.T) redis.Client {
	t.Helper()

	client, _ := CreateTestRedisClientWithServer(t)
	return client
}

// CreateTestRedisClientWithServer is like CreateTestRedisClient but also
// hands back the miniredis server so tests can seed or corrupt keys.
func CreateTestRedisClientWithServer(t *testing.T) (redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to create miniredis")
	t.Cleanup(mr.Close)

	client, err := redis.NewClient(mr.Addr(), nil)
	require.NoError(t, err, "failed to create redis client")
	t.Cleanup(func() {
		_ = client.Close()
	})

	return client, mr
}

package redis

import (
	"context"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientAndEnsureGroup(t *testing.T) {
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	client, err := NewClient(Config{Host: mr.Host(), Port: port})
	require.NoError(t, err)
	defer client.Close()

	ctx := context.Background()
	require.NoError(t, EnsureGroup(ctx, client.Client, "bias.test", "group"))
	// a second call hits BUSYGROUP and is still fine
	require.NoError(t, EnsureGroup(ctx, client.Client, "bias.test", "group"))

	require.NoError(t, client.XAdd(ctx, &redis.XAddArgs{Stream: "bias.test", Values: map[string]interface{}{"k": "v"}}).Err())
	streams, err := client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    "group",
		Consumer: "c",
		Streams:  []string{"bias.test", ">"},
		Count:    1,
		Block:    -1,
	}).Result()
	require.NoError(t, err)
	require.Len(t, streams, 1)
	assert.Len(t, streams[0].Messages, 1)
}

func TestNewClientUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	host := mr.Host()
	mr.Close()

	_, err = NewClient(Config{Host: host, Port: port})
	assert.Error(t, err)
}

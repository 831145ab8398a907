package redis_test

import (
	"context"
	"os"
	"testing"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rrens/docchat/internal/domain"
	"github.com/Rrens/docchat/internal/repository/redis"
)

func newTestClient(t *testing.T) *redis.Client {
	t.Helper()

	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set - run as integration test")
	}

	client := redis.NewClientFrom(goredis.NewClient(&goredis.Options{Addr: addr}), "docchat-test:")
	require.NoError(t, client.Ping(context.Background()))
	t.Cleanup(func() { client.Close() })
	return client
}

func TestClient_SetGetDelete(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.Delete(ctx, "k"))

	_, err := client.Get(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, client.Set(ctx, "k", []byte(`[{"id":"1"}]`)))
	got, err := client.Get(ctx, "k")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"1"}]`, string(got))

	require.NoError(t, client.Delete(ctx, "k"))
	_, err = client.Get(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

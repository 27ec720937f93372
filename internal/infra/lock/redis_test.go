//go:build e2e

package lock_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"store-fulfillment/internal/infra/lock"
	"store-fulfillment/internal/pkg/config"
	"store-fulfillment/internal/pkg/errs"

	"github.com/docker/go-connections/nat"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startRedis(t *testing.T) config.RedisConfig {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort(nat.Port("6379/tcp")).WithStartupTimeout(60 * time.Second),
			Labels:       map[string]string{"purpose": "e2e-tests"},
		},
		Started: true,
	})
	require.NoError(t, err, "failed to start redis container")
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = container.Terminate(ctx)
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379/tcp")
	require.NoError(t, err)

	return config.RedisConfig{Addr: host + ":" + port.Port(), LockTTL: 2 * time.Second}
}

func TestRedisLocker(t *testing.T) {
	cfg := startRedis(t)
	client, err := lock.NewRedisClient(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	t.Run("same key is held by one caller at a time", func(t *testing.T) {
		l := lock.NewRedisLocker(client, cfg)
		ctx := context.Background()

		var (
			inside  atomic.Int32
			maxSeen atomic.Int32
			wg      sync.WaitGroup
		)
		for range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				release, err := l.Acquire(ctx, "delivery:contended")
				if !assert.NoError(t, err) {
					return
				}
				n := inside.Add(1)
				if n > maxSeen.Load() {
					maxSeen.Store(n)
				}
				time.Sleep(5 * time.Millisecond)
				inside.Add(-1)
				release()
			}()
		}
		wg.Wait()
		assert.Equal(t, int32(1), maxSeen.Load())
	})

	t.Run("waiter gives up when its context ends", func(t *testing.T) {
		l := lock.NewRedisLocker(client, cfg)
		release, err := l.Acquire(context.Background(), "order:held")
		require.NoError(t, err)
		defer release()

		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()
		_, err = l.Acquire(ctx, "order:held")
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("release frees the key", func(t *testing.T) {
		l := lock.NewRedisLocker(client, cfg)
		release, err := l.Acquire(context.Background(), "order:released")
		require.NoError(t, err)
		release()

		ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
		defer cancel()
		again, err := l.Acquire(ctx, "order:released")
		require.NoError(t, err)
		again()
	})

	t.Run("expired holder cannot release the next holder's lock", func(t *testing.T) {
		short := cfg
		short.LockTTL = 100 * time.Millisecond
		l := lock.NewRedisLocker(client, short)
		ctx := context.Background()

		stale, err := l.Acquire(ctx, "delivery:expiring")
		require.NoError(t, err)
		time.Sleep(200 * time.Millisecond)

		long := lock.NewRedisLocker(client, cfg)
		current, err := long.Acquire(ctx, "delivery:expiring")
		require.NoError(t, err)
		defer current()

		stale()

		exists, err := client.Exists(ctx, "fulfillment:lock:delivery:expiring").Result()
		require.NoError(t, err)
		assert.Equal(t, int64(1), exists)
	})

	t.Run("unreachable redis is an external failure", func(t *testing.T) {
		dead := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond})
		defer dead.Close()
		l := lock.NewRedisLocker(dead, cfg)

		_, err := l.Acquire(context.Background(), "order:any")
		require.Error(t, err)
		assert.True(t, errs.IsExternalService(err))
	})
}

package lock

import (
	"context"
	"crypto/rand"
	_ "embed"
	"encoding/hex"
	"log/slog"
	"time"

	"store-fulfillment/internal/pkg/config"
	"store-fulfillment/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

//go:embed release.lua
var releaseLua string

var releaseScript = redis.NewScript(releaseLua)

const (
	keyPrefix = "fulfillment:lock:"
	retryWait = 25 * time.Millisecond
)

// RedisLocker holds a key across processes with SET NX PX. The TTL bounds how long a crashed
// holder can block others.
type RedisLocker struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisLocker(client redis.UniversalClient, cfg config.RedisConfig) *RedisLocker {
	return &RedisLocker{client: client, ttl: cfg.LockTTL}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string) (func(), error) {
	token, err := newToken()
	if err != nil {
		return nil, err
	}
	k := keyPrefix + key

	ticker := time.NewTicker(retryWait)
	defer ticker.Stop()
	for {
		ok, err := l.client.SetNX(ctx, k, token, l.ttl).Result()
		if err != nil {
			return nil, errs.Classify(errs.Wrap(err, "acquire lock"), errs.ErrExternalService)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}

	return func() {
		// The caller's context may already be done; release on a short detached one.
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
		defer cancel()
		if err := releaseScript.Run(rctx, l.client, []string{k}, token).Err(); err != nil {
			slog.Warn("lock release failed", "key", key, "error", err)
		}
	}, nil
}

func newToken() (string, error) {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", errs.Wrap(err, "lock token")
	}
	return hex.EncodeToString(b[:]), nil
}

// NewRedisClient connects and pings, following the pool's fail-fast startup.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errs.Wrap(err, "connect redis")
	}
	return client, nil
}

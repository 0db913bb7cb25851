package lock

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
)

const retryEvery = 25 * time.Millisecond

// releaseScript deletes the key only while it still holds our token, so an
// expired lease that someone else picked up is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker leases a slot key with SET NX PX. The lease expires after
// ttl even if the holder dies.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
	log    *slog.Logger
}

func NewRedisLocker(client *redis.Client, ttl time.Duration, log *slog.Logger) *RedisLocker {
	if log == nil {
		log = slog.Default()
	}
	return &RedisLocker{client: client, ttl: ttl, prefix: "barber:lock:", log: log}
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	key = l.prefix + key
	token := uuid.NewString()

	ticker := time.NewTicker(retryEvery)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, err
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
		// release must outlive a cancelled request context
		relCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		err := releaseScript.Run(relCtx, l.client, []string{key}, token).Err()
		if err != nil && !errors.Is(err, redis.Nil) {
			l.log.Warn("slot lock release failed",
				slog.String("key", key),
				slog.Any("err", err),
			)
		}
	}, nil
}

var _ domain.SlotLocker = (*RedisLocker)(nil)

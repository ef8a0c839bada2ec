package slotlock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// Снимаем ключ только если он всё ещё наш
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// Redis распределённая блокировка (SET NX PX + токен владельца).
// Используется, когда запущено несколько инстансов сервиса.
type Redis struct {
	client        *redis.Client
	prefix        string
	ttl           time.Duration
	retryInterval time.Duration
	onReleaseErr  func(key string, err error)
}

// NewRedis создает распределённый locker. ttl ограничивает время жизни
// блокировки, если процесс упал, не освободив её.
func NewRedis(client *redis.Client, prefix string, ttl, retryInterval time.Duration) *Redis {
	if retryInterval <= 0 {
		retryInterval = 25 * time.Millisecond
	}
	return &Redis{
		client:        client,
		prefix:        prefix,
		ttl:           ttl,
		retryInterval: retryInterval,
	}
}

// OnReleaseError задаёт обработчик ошибок освобождения (обычно логирование)
func (r *Redis) OnReleaseError(fn func(key string, err error)) {
	r.onReleaseErr = fn
}

// Acquire пытается поставить ключ, повторяя попытки до отмены ctx
func (r *Redis) Acquire(ctx context.Context, key string) (ReleaseFunc, error) {
	fullKey := r.prefix + key
	token := uuid.NewString()

	for {
		ok, err := r.client.SetNX(ctx, fullKey, token, r.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: key=%s: %v", ErrLockTimeout, key, ctx.Err())
			}
			return nil, fmt.Errorf("slotlock: redis setnx key=%s: %w", key, err)
		}
		if ok {
			return r.releaser(fullKey, token), nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: key=%s: %v", ErrLockTimeout, key, ctx.Err())
		case <-time.After(r.retryInterval):
		}
	}
}

func (r *Redis) releaser(fullKey, token string) ReleaseFunc {
	var once sync.Once
	return func() {
		once.Do(func() {
			// контекст запроса мог уже истечь, освобождаем с собственным таймаутом
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := releaseScript.Run(ctx, r.client, []string{fullKey}, token).Err(); err != nil && r.onReleaseErr != nil {
				r.onReleaseErr(fullKey, err)
			}
		})
	}
}

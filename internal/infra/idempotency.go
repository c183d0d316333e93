package infra

import (
	"github.com/go-redsync/redsync/v4"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"mergington.dev/activities/internal/constant"
	"mergington.dev/activities/internal/pkg/fiberstore"
	"mergington.dev/activities/internal/pkg/keylock"
)

// IdempotencyStore picks where idempotent responses are kept: Redis when available, process memory otherwise.
func IdempotencyStore(client *redis.Client) fiber.Storage {
	if client == nil {
		return fiberstore.NewMemory(constant.IdempotencyMemoryJanitorGC)
	}
	return fiberstore.NewRedis(client, constant.IdempotencyRedisHashKey)
}

func IdempotencyLocker(rs *redsync.Redsync) keylock.Locker {
	if rs == nil {
		return keylock.NewLocal()
	}
	return keylock.NewRedsync(rs, constant.IdempotencyLockKeyPrefix, constant.IdempotencyLockExpiry)
}

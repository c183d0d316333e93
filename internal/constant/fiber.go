package constant

import "time"

const (
	ContextKeyRequestID = "requestid"

	RequestIDHeader = "X-Request-ID"

	LocalsTranslatorKey = "T"

	IdempotencyHeader    = "X-Idempotency"
	IdempotencyKeyHeader = "Idempotency-Key"

	IdempotencyKeyLengthLimit = 128

	IdempotencyLocalsKey       = "idempotencyKey"
	IdempotencyRedisHashKey    = "mergington:idempotency"
	IdempotencyLockKeyPrefix   = "mutex:idempotency-request:"
	IdempotencyLockExpiry      = time.Minute
	IdempotencyMemoryJanitorGC = time.Minute * 10
)

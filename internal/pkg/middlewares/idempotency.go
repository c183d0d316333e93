package middlewares

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/vmihailenco/msgpack/v5"

	"mergington.dev/activities/internal/constant"
	"mergington.dev/activities/internal/pkg/apierr"
	"mergington.dev/activities/internal/pkg/keylock"
	"mergington.dev/activities/internal/util/rekuest"
)

type IdempotencyConfig struct {
	// Lifetime is how long a recorded response stays replayable.
	Lifetime time.Duration

	// KeyHeader is the request header carrying the client chosen key.
	KeyHeader string

	// KeepResponseHeaders lists the response headers recorded alongside the body.
	// All headers are recorded when nil.
	KeepResponseHeaders []string

	// Storage holds recorded responses.
	Storage fiber.Storage

	// Locker serializes concurrent requests carrying the same key.
	Locker keylock.Locker

	// Next skips the middleware when it returns true.
	Next func(c *fiber.Ctx) bool
}

// recordedResponse is the msgpack payload kept in Storage.
type recordedResponse struct {
	Status  int               `msgpack:"s"`
	Headers map[string]string `msgpack:"h"`
	Body    []byte            `msgpack:"b"`
}

var idempotencyKeyRule = "max=" + strconv.Itoa(constant.IdempotencyKeyLengthLimit) + ",alphanum|uuid"

type replayer struct {
	conf *IdempotencyConfig
	keep map[string]struct{}
}

// Idempotency replays the recorded response of a successful request when the same key is
// presented again for the same method and URL. Failed requests are not recorded, so a client
// may retry them.
func Idempotency(conf *IdempotencyConfig) fiber.Handler {
	r := &replayer{conf: conf}
	if conf.KeepResponseHeaders != nil {
		r.keep = make(map[string]struct{}, len(conf.KeepResponseHeaders))
		for _, h := range conf.KeepResponseHeaders {
			r.keep[strings.ToLower(h)] = struct{}{}
		}
	}
	return r.handle
}

func (r *replayer) handle(c *fiber.Ctx) error {
	if r.conf.Next != nil && r.conf.Next(c) {
		return c.Next()
	}

	key := c.Get(r.conf.KeyHeader)
	if key == "" {
		return c.Next()
	}

	if err := rekuest.Validate.Var(key, idempotencyKeyRule); err != nil {
		return apierr.ErrInvalidReq.Msg("invalid idempotency key: must be alphanumeric or a UUID of at most %d characters", constant.IdempotencyKeyLengthLimit)
	}

	c.Locals(constant.IdempotencyLocalsKey, key)
	scoped := c.Method() + " " + c.OriginalURL() + " " + key
	logger := log.With().Str("idempotency_key", key).Logger()

	if replayed, err := r.replay(c, scoped, &logger); replayed {
		return err
	}

	unlock, err := r.conf.Locker.Lock(c.UserContext(), scoped)
	if err != nil {
		logger.Error().Err(err).Str("evt.name", "http.idempotency.lock_failed").Msg("failed to lock idempotency key")
		return apierr.ErrInternalError.Msg("idempotency key is held by another request; retry with backoff")
	}
	defer func() {
		if err := unlock(); err != nil {
			logger.Error().Err(err).Str("evt.name", "http.idempotency.unlock_failed").Msg("failed to unlock idempotency key")
		}
	}()

	// a concurrent holder of the lock may have recorded a response meanwhile
	if replayed, err := r.replay(c, scoped, &logger); replayed {
		return err
	}

	if err := c.Next(); err != nil {
		return err
	}

	if err := r.record(c, scoped); err != nil {
		logger.Error().Err(err).Str("evt.name", "http.idempotency.record_failed").Msg("failed to record response")
		return err
	}
	c.Set(constant.IdempotencyHeader, "saved")

	return nil
}

func (r *replayer) replay(c *fiber.Ctx, scoped string, logger *zerolog.Logger) (bool, error) {
	data, err := r.conf.Storage.Get(scoped)
	if err != nil || data == nil {
		return false, nil
	}

	var rec recordedResponse
	if err := msgpack.Unmarshal(data, &rec); err != nil {
		return true, err
	}

	logger.Debug().Str("evt.name", "http.idempotency.hit").Int("status", rec.Status).Msg("replaying recorded response")

	c.Status(rec.Status)
	for h, v := range rec.Headers {
		c.Set(h, v)
	}
	c.Set(constant.IdempotencyHeader, "hit")

	if len(rec.Body) == 0 {
		return true, nil
	}
	return true, c.Send(rec.Body)
}

func (r *replayer) record(c *fiber.Ctx, scoped string) error {
	resp := c.Response()
	rec := recordedResponse{
		Status:  resp.StatusCode(),
		Headers: make(map[string]string),
		Body:    append([]byte(nil), resp.Body()...),
	}

	resp.Header.VisitAll(func(k, v []byte) {
		h := string(k)
		if r.keep != nil {
			if _, ok := r.keep[strings.ToLower(h)]; !ok {
				return
			}
		}
		rec.Headers[h] = string(v)
	})

	data, err := msgpack.Marshal(&rec)
	if err != nil {
		return err
	}

	return r.conf.Storage.Set(scoped, data, r.conf.Lifetime)
}

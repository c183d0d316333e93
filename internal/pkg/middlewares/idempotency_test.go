package middlewares

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mergington.dev/activities/internal/constant"
	"mergington.dev/activities/internal/pkg/apierr"
	"mergington.dev/activities/internal/pkg/fiberstore"
	"mergington.dev/activities/internal/pkg/keylock"
)

func newIdempotentApp(handler fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*apierr.APIError); ok {
				return c.Status(e.StatusCode).SendString(e.ErrorCode)
			}
			return fiber.DefaultErrorHandler(c, err)
		},
	})
	app.Post("/", Idempotency(&IdempotencyConfig{
		Lifetime:            time.Minute,
		KeyHeader:           constant.IdempotencyKeyHeader,
		KeepResponseHeaders: []string{fiber.HeaderContentType},
		Storage:             fiberstore.NewMemory(time.Minute),
		Locker:              keylock.NewLocal(),
	}), handler)
	return app
}

func send(t *testing.T, app *fiber.App, key string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	if key != "" {
		req.Header.Set(constant.IdempotencyKeyHeader, key)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestIdempotencyReplaysSuccess(t *testing.T) {
	var calls int32
	app := newIdempotentApp(func(c *fiber.Ctx) error {
		n := atomic.AddInt32(&calls, 1)
		c.Set("X-Not-Kept", "1")
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"call": n})
	})

	resp, first := send(t, app, "key1")
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "saved", resp.Header.Get(constant.IdempotencyHeader))

	resp, second := send(t, app, "key1")
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "hit", resp.Header.Get(constant.IdempotencyHeader))
	assert.Equal(t, fiber.MIMEApplicationJSON, resp.Header.Get(fiber.HeaderContentType))
	assert.Empty(t, resp.Header.Get("X-Not-Kept"))
	assert.Equal(t, first, second)

	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestIdempotencyWithoutKey(t *testing.T) {
	var calls int32
	app := newIdempotentApp(func(c *fiber.Ctx) error {
		atomic.AddInt32(&calls, 1)
		return c.SendStatus(fiber.StatusOK)
	})

	send(t, app, "")
	resp, _ := send(t, app, "")
	assert.Empty(t, resp.Header.Get(constant.IdempotencyHeader))
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestIdempotencyDoesNotStoreErrors(t *testing.T) {
	var calls int32
	app := newIdempotentApp(func(c *fiber.Ctx) error {
		if atomic.AddInt32(&calls, 1) == 1 {
			return apierr.ErrInternalError
		}
		return c.SendString("ok")
	})

	resp, _ := send(t, app, "key2")
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	resp, body := send(t, app, "key2")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestIdempotencyRejectsInvalidKey(t *testing.T) {
	app := newIdempotentApp(func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, body := send(t, app, "has spaces in it")
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, apierr.CodeInvalidRequest, body)
}

func TestIdempotencyKeyLengthLimit(t *testing.T) {
	app := newIdempotentApp(func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	longest := strings.Repeat("k", constant.IdempotencyKeyLengthLimit)
	resp, _ := send(t, app, longest)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "saved", resp.Header.Get(constant.IdempotencyHeader))

	resp, _ = send(t, app, longest+"k")
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	assert.Equal(t, fmt.Sprintf("max=%d,alphanum|uuid", constant.IdempotencyKeyLengthLimit), idempotencyKeyRule)
}

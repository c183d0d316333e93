// Package flog attaches a zerolog logger to each fiber request.
package flog

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/xid"
	"github.com/rs/zerolog"
)

// Field derives a log field value from the request.
type Field func(c *fiber.Ctx) string

var (
	IP        Field = func(c *fiber.Ctx) string { return c.IP() }
	Method    Field = func(c *fiber.Ctx) string { return c.Method() }
	Path      Field = func(c *fiber.Ctx) string { return c.Path() }
	UserAgent Field = func(c *fiber.Ctx) string { return c.Get(fiber.HeaderUserAgent) }
)

// From returns the request scoped logger, or the disabled logger outside a request chain.
func From(c *fiber.Ctx) *zerolog.Logger {
	return zerolog.Ctx(c.UserContext())
}

// Inject stores a private copy of base in the request context. The copy makes
// UpdateContext safe across concurrent requests.
func Inject(base zerolog.Logger, fields map[string]Field) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := base.With()
		for key, f := range fields {
			ctx = ctx.Str(key, f(c))
		}
		l := ctx.Logger()
		c.SetUserContext(l.WithContext(c.UserContext()))
		return c.Next()
	}
}

type idKey struct{}

// ID returns the request id assigned by RequestID.
func ID(ctx context.Context) (xid.ID, bool) {
	id, ok := ctx.Value(idKey{}).(xid.ID)
	return id, ok
}

// RequestID assigns each request an xid. An inbound id in header is kept when it parses as an
// xid. The id is logged under fieldKey and echoed back in header.
func RequestID(fieldKey, header string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := xid.FromString(c.Get(header))
		if err != nil {
			id = xid.New()
		}
		c.SetUserContext(context.WithValue(c.UserContext(), idKey{}, id))

		From(c).UpdateContext(func(lc zerolog.Context) zerolog.Context {
			return lc.Str(fieldKey, id.String())
		})
		c.Set(header, id.String())

		return c.Next()
	}
}

// Access calls f once the rest of the chain returned.
func Access(f func(c *fiber.Ctx, took time.Duration, err error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		f(c, time.Since(start), err)
		return err
	}
}

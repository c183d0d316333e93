// Package cachectrl sets HTTP caching headers.
package cachectrl

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// DefaultMaxAge is used by Public when no max age is given.
const DefaultMaxAge = time.Hour

// Public marks the response cacheable by any intermediary for maxAge, with
// lastModified as its validator. A non-positive maxAge falls back to DefaultMaxAge.
func Public(ctx *fiber.Ctx, lastModified time.Time, maxAge time.Duration) {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}

	ctx.Set(fiber.HeaderCacheControl, "public, max-age="+strconv.Itoa(int(maxAge.Seconds())))
	ctx.Set(fiber.HeaderExpires, lastModified.Add(maxAge).UTC().Format(time.RFC1123))
	ctx.Response().Header.SetLastModified(lastModified)
}

// NoStore forbids any caching of the response.
func NoStore(ctx *fiber.Ctx) {
	ctx.Set(fiber.HeaderCacheControl, "no-cache, no-store, must-revalidate")
	ctx.Set(fiber.HeaderPragma, "no-cache")
	ctx.Set(fiber.HeaderExpires, "0")
}

// NoStoreHandler applies NoStore to every request passing through it.
func NoStoreHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		NoStore(c)
		return c.Next()
	}
}

package meta

import (
	"runtime"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cache"
	"go.uber.org/fx"

	"mergington.dev/activities/internal/pkg/bininfo"
	"mergington.dev/activities/internal/pkg/cachectrl"
	"mergington.dev/activities/internal/server/svr"
	"mergington.dev/activities/internal/service"
)

type Meta struct {
	fx.In

	HealthService *service.Health
}

// BinInfoResponse identifies the running build.
type BinInfoResponse struct {
	Version   string `json:"version"`
	Build     string `json:"build"`
	GoVersion string `json:"go"`
}

func RegisterMeta(meta *svr.Meta, c Meta) {
	meta.Get("/bininfo", c.BinInfo)

	// probes hit this often; one Redis ping per second is enough
	meta.Get("/health", cache.New(cache.Config{
		Expiration: time.Second,
	}), c.Health)
}

// @Summary  Build information
// @Tags     Meta
// @Produce  json
// @Success  200  {object}  BinInfoResponse
// @Router   /_/bininfo [GET]
func (c *Meta) BinInfo(ctx *fiber.Ctx) error {
	// the build never changes while the process lives
	if built, err := time.Parse(time.RFC3339, bininfo.BuildTime); err == nil {
		cachectrl.Public(ctx, built, cachectrl.DefaultMaxAge)
	}

	return ctx.JSON(BinInfoResponse{
		Version:   bininfo.Version,
		Build:     bininfo.BuildTime,
		GoVersion: runtime.Version(),
	})
}

// @Summary  Readiness probe
// @Tags     Meta
// @Produce  json
// @Success  200  {object}  service.HealthReport
// @Failure  500  {object}  apierr.APIError  "Activity directory empty or Redis unreachable"
// @Router   /_/health [GET]
func (c *Meta) Health(ctx *fiber.Ctx) error {
	report, err := c.HealthService.Check(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.JSON(report)
}

package meta

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"mergington.dev/activities/internal/app/appconfig"
	"mergington.dev/activities/internal/constant"
)

func RegisterIndex(app *fiber.App, conf *appconfig.Config) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect(constant.IndexPath, fiber.StatusTemporaryRedirect)
	})

	if fi, err := os.Stat(conf.StaticDir); err != nil || !fi.IsDir() {
		log.Warn().
			Str("evt.name", "http.static.skipped").
			Str("dir", conf.StaticDir).
			Msg("static directory not found; front end will not be served")
		return
	}

	app.Static(constant.StaticPrefix, conf.StaticDir, fiber.Static{
		Index: "index.html",
	})
}

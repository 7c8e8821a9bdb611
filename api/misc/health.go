package misc

import (
	"context"
	"time"

	harukiAPIHelper "hallin-site/utils/api"

	"github.com/gofiber/fiber/v2"
)

func handleHealth(apiHelper *harukiAPIHelper.HallinRouterHelpers) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		return c.JSON(fiber.Map{
			"status": "ok",
			"time":   time.Now().Unix(),
			"stores": apiHelper.DBManager.Health(ctx),
		})
	}
}

func registerHealthRoutes(apiHelper *harukiAPIHelper.HallinRouterHelpers) {
	apiHelper.Router.Get("/health", handleHealth(apiHelper))
}

package news

import "github.com/gofiber/fiber/v2"

// GET /api/news/agricultural
func AgriculturalNewsHandler(agg *Aggregator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(agg.Collect(c.UserContext()))
	}
}

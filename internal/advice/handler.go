package advice

import (
	"strings"

	"mbaymi-backend/internal/request"

	"github.com/gofiber/fiber/v2"
)

type AdviceRequest struct {
	Type    string `json:"type" validate:"required,oneof=crop livestock"`
	Topic   string `json:"topic" validate:"required"`
	Region  string `json:"region"`
	Context string `json:"context"`
}

// POST /api/advice
func AdviceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body AdviceRequest
		if err := request.Bind(c, &body); err != nil {
			return err
		}
		topic := strings.TrimSpace(body.Topic)
		if body.Type == "livestock" {
			return c.JSON(Livestock(topic))
		}
		return c.JSON(Crop(topic))
	}
}

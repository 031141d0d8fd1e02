package handler

import "github.com/gofiber/fiber/v3"

// Root is the liveness banner served at /.
func Root(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "ANIMIX API is live."})
}

// Health returns service health status.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func Health(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "animix-api",
	})
}

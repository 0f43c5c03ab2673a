package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/event-registration-api/database"
	"github.com/sahilchouksey/event-registration-api/utils/response"
)

func HandleCheckHealth(c *fiber.Ctx, store database.Storage) error {
	if err := store.HealthCheck(); err != nil {
		log.Errorf("Health check failed: %v", err)
		return response.ErrorWithDetails(c, fiber.StatusServiceUnavailable, "Database unreachable", "SERVICE_UNAVAILABLE", err.Error())
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

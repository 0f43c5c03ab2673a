package availability

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/event-registration-api/model"
	"github.com/sahilchouksey/event-registration-api/services"
	"github.com/sahilchouksey/event-registration-api/utils/response"
)

// AvailabilityHandler serves the category -> date -> event cascade
type AvailabilityHandler struct {
	availability *services.AvailabilityService
}

// NewAvailabilityHandler creates a new availability handler
func NewAvailabilityHandler(availability *services.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability}
}

// ListCategories handles GET /api/v1/events/categories
func (h *AvailabilityHandler) ListCategories(c *fiber.Ctx) error {
	options, err := h.availability.ActiveCategories(c.UserContext())
	if err != nil {
		log.Errorf("Failed to load categories: %v", err)
		return response.InternalServerError(c, "Failed to fetch categories")
	}
	return response.Success(c, options)
}

// ListDates handles GET /api/v1/events/categories/:category/dates
func (h *AvailabilityHandler) ListDates(c *fiber.Ctx) error {
	// Params alias the request buffer and may end up in cache keys
	category := model.Category(strings.Clone(c.Params("category")))

	options, err := h.availability.ActiveDatesForCategory(c.UserContext(), category)
	if err != nil {
		log.Errorf("Failed to load dates for %s: %v", category, err)
		return response.InternalServerError(c, "Failed to fetch event dates")
	}
	return response.Success(c, options)
}

// ListEvents handles GET /api/v1/events/categories/:category/dates/:date/events
func (h *AvailabilityHandler) ListEvents(c *fiber.Ctx) error {
	category := model.Category(strings.Clone(c.Params("category")))
	date := strings.Clone(c.Params("date"))

	options, err := h.availability.ActiveEventsForCategoryAndDate(c.UserContext(), category, date)
	if err != nil {
		log.Errorf("Failed to load events for %s on %s: %v", category, date, err)
		return response.InternalServerError(c, "Failed to fetch events")
	}
	return response.Success(c, options)
}

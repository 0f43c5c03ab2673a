package registration

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/event-registration-api/model"
	"github.com/sahilchouksey/event-registration-api/services"
	"github.com/sahilchouksey/event-registration-api/utils/response"
	"github.com/sahilchouksey/event-registration-api/utils/validation"
)

// RegistrationHandler handles public sign-ups and the admin registration views
type RegistrationHandler struct {
	registrations *services.RegistrationService
	export        *services.ExportService
	clock         services.Clock
	validator     *validation.Validator
}

// NewRegistrationHandler creates a new registration handler
func NewRegistrationHandler(registrations *services.RegistrationService, export *services.ExportService, clock services.Clock) *RegistrationHandler {
	return &RegistrationHandler{
		registrations: registrations,
		export:        export,
		clock:         clock,
		validator:     validation.NewValidator(),
	}
}

// CreateRegistrationRequest represents the public registration form
type CreateRegistrationRequest struct {
	FullName    string `json:"full_name" validate:"required,max=255,personname"`
	Email       string `json:"email" validate:"required,max=255,email"`
	CollegeName string `json:"college_name" validate:"required,max=255,institution"`
	Department  string `json:"department" validate:"required,max=255,institution"`
	Category    string `json:"category" validate:"omitempty,category"`
	EventDate   string `json:"event_date" validate:"omitempty,datetime=2006-01-02"`
	EventID     uint   `json:"event_id" validate:"required"`
}

// CreateRegistration handles POST /api/v1/registrations
func (h *RegistrationHandler) CreateRegistration(c *fiber.Ctx) error {
	var req CreateRegistrationRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Sanitize inputs
	req.FullName = validation.SanitizeString(req.FullName)
	req.Email = validation.SanitizeString(req.Email)
	req.CollegeName = validation.SanitizeString(req.CollegeName)
	req.Department = validation.SanitizeString(req.Department)

	// Validate request
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationErrors(c, validation.FormatValidationErrors(err))
	}

	id, err := h.registrations.SubmitRegistration(c.UserContext(), services.RegistrationInput{
		FullName:    req.FullName,
		Email:       req.Email,
		CollegeName: req.CollegeName,
		Department:  req.Department,
		EventID:     req.EventID,
	}, services.Selection{
		Category:  model.Category(req.Category),
		EventDate: req.EventDate,
	})

	switch {
	case err == nil:
	case errors.Is(err, services.ErrEventNotFound):
		return response.NotFound(c, "Event not found")
	case errors.Is(err, services.ErrInvalidRegistration):
		return response.ValidationErrors(c, map[string]string{
			"event_id": "The selected event is not open for registration",
		})
	case errors.Is(err, services.ErrDuplicateRegistration):
		return response.Conflict(c, "You have already registered for an event on this date. Each email can only be registered once per event date.")
	default:
		log.Errorf("Failed to create registration: %v", err)
		return response.InternalServerError(c, "Failed to save registration")
	}

	return response.Created(c, fiber.Map{"id": id})
}

// filterFromQuery reads event_date and event_name query parameters
func filterFromQuery(c *fiber.Ctx) services.RegistrationFilter {
	// Query values alias the request buffer, which the export stream outlives
	return services.RegistrationFilter{
		EventDate: strings.Clone(c.Query("event_date")),
		EventName: strings.Clone(c.Query("event_name")),
	}
}

// ListRegistrations handles GET /api/v1/admin/registrations
func (h *RegistrationHandler) ListRegistrations(c *fiber.Ctx) error {
	filter := filterFromQuery(c)

	registrations, err := h.registrations.ListRegistrations(c.UserContext(), filter)
	if err != nil {
		log.Errorf("Failed to list registrations: %v", err)
		return response.InternalServerError(c, "Failed to fetch registrations")
	}

	total, err := h.registrations.CountRegistrations(c.UserContext(), filter)
	if err != nil {
		log.Errorf("Failed to count registrations: %v", err)
		return response.InternalServerError(c, "Failed to count registrations")
	}

	return response.Success(c, fiber.Map{
		"registrations": registrations,
		"total":         total,
	})
}

// CountRegistrations handles GET /api/v1/admin/registrations/count
func (h *RegistrationHandler) CountRegistrations(c *fiber.Ctx) error {
	total, err := h.registrations.CountRegistrations(c.UserContext(), filterFromQuery(c))
	if err != nil {
		log.Errorf("Failed to count registrations: %v", err)
		return response.InternalServerError(c, "Failed to count registrations")
	}
	return response.Success(c, fiber.Map{"total": total})
}

// ListDates handles GET /api/v1/admin/registrations/dates
func (h *RegistrationHandler) ListDates(c *fiber.Ctx) error {
	dates, err := h.registrations.DistinctRegistrationDates(c.UserContext())
	if err != nil {
		log.Errorf("Failed to load registration dates: %v", err)
		return response.InternalServerError(c, "Failed to fetch registration dates")
	}
	return response.Success(c, dates)
}

// ListEventNames handles GET /api/v1/admin/registrations/dates/:date/names
func (h *RegistrationHandler) ListEventNames(c *fiber.Ctx) error {
	date := c.Params("date")
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		return response.BadRequest(c, "Date must use the YYYY-MM-DD format")
	}

	names, err := h.registrations.DistinctEventNamesForDate(c.UserContext(), date)
	if err != nil {
		log.Errorf("Failed to load event names for %s: %v", date, err)
		return response.InternalServerError(c, "Failed to fetch event names")
	}
	return response.Success(c, names)
}

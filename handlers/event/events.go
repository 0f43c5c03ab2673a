package event

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/event-registration-api/model"
	"github.com/sahilchouksey/event-registration-api/services"
	"github.com/sahilchouksey/event-registration-api/utils/middleware"
	"github.com/sahilchouksey/event-registration-api/utils/response"
	"github.com/sahilchouksey/event-registration-api/utils/validation"
)

// EventHandler handles event catalog requests
type EventHandler struct {
	events    *services.EventService
	clock     services.Clock
	validator *validation.Validator
}

// NewEventHandler creates a new event handler
func NewEventHandler(events *services.EventService, clock services.Clock) *EventHandler {
	return &EventHandler{
		events:    events,
		clock:     clock,
		validator: validation.NewValidator(),
	}
}

// EventView is an event as listed to admins, with its registration status
type EventView struct {
	model.Event
	Status model.EventStatus `json:"status"`
}

func (h *EventHandler) view(event model.Event) EventView {
	return EventView{Event: event, Status: event.Status(h.clock.Today())}
}

// EventRequest represents the request body for creating or updating an event
type EventRequest struct {
	Name                  string `json:"event_name" validate:"required,max=255,eventname"`
	Category              string `json:"category" validate:"required,category"`
	EventDate             string `json:"event_date" validate:"required,datetime=2006-01-02"`
	RegistrationStartDate string `json:"registration_start_date" validate:"required,datetime=2006-01-02"`
	RegistrationEndDate   string `json:"registration_end_date" validate:"required,datetime=2006-01-02"`
}

// bindEvent parses and validates the body. When ok is false the error
// response has already been written and err is its write result.
func (h *EventHandler) bindEvent(c *fiber.Ctx) (in services.EventInput, ok bool, err error) {
	var req EventRequest
	if err := c.BodyParser(&req); err != nil {
		return in, false, response.BadRequest(c, "Invalid request body")
	}

	req.Name = validation.SanitizeString(req.Name)

	// Validate request
	if err := h.validator.ValidateStruct(req); err != nil {
		return in, false, response.ValidationErrors(c, validation.FormatValidationErrors(err))
	}

	if err := validation.ValidateEventWindow(req.RegistrationStartDate, req.RegistrationEndDate, req.EventDate); err != nil {
		return in, false, response.ValidationErrors(c, map[string]string{
			"registration_end_date": err.Error(),
		})
	}

	return services.EventInput{
		Name:                  req.Name,
		Category:              model.Category(req.Category),
		EventDate:             req.EventDate,
		RegistrationStartDate: req.RegistrationStartDate,
		RegistrationEndDate:   req.RegistrationEndDate,
	}, true, nil
}

func parseEventID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// ListActiveEvents handles GET /api/v1/events/active
func (h *EventHandler) ListActiveEvents(c *fiber.Ctx) error {
	events, err := h.events.ListActiveEvents(c.UserContext())
	if err != nil {
		log.Errorf("Failed to list active events: %v", err)
		return response.InternalServerError(c, "Failed to fetch events")
	}
	return response.Success(c, events)
}

// ListEvents handles GET /api/v1/admin/events
func (h *EventHandler) ListEvents(c *fiber.Ctx) error {
	events, err := h.events.ListAllEvents(c.UserContext())
	if err != nil {
		log.Errorf("Failed to list events: %v", err)
		return response.InternalServerError(c, "Failed to fetch events")
	}

	views := make([]EventView, 0, len(events))
	for _, event := range events {
		views = append(views, h.view(event))
	}
	return response.Success(c, views)
}

// GetEvent handles GET /api/v1/admin/events/:id
func (h *EventHandler) GetEvent(c *fiber.Ctx) error {
	id, ok := parseEventID(c)
	if !ok {
		return response.BadRequest(c, "Invalid event ID")
	}

	event, err := h.events.GetEvent(c.UserContext(), id)
	if err != nil {
		log.Errorf("Failed to fetch event %d: %v", id, err)
		return response.InternalServerError(c, "Failed to fetch event")
	}
	if event == nil {
		return response.NotFound(c, "Event not found")
	}

	return response.Success(c, h.view(*event))
}

// CreateEvent handles POST /api/v1/admin/events
func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	in, ok, err := h.bindEvent(c)
	if !ok {
		return err
	}

	id, err := h.events.CreateEvent(c.UserContext(), in)
	if err != nil {
		log.Errorf("Failed to create event: %v", err)
		return response.InternalServerError(c, "Failed to create event")
	}

	c.Locals(middleware.LocalResourceID, id)

	event, err := h.events.GetEvent(c.UserContext(), id)
	if err != nil || event == nil {
		return response.Created(c, fiber.Map{"id": id})
	}
	return response.Created(c, event)
}

// UpdateEvent handles PUT /api/v1/admin/events/:id
func (h *EventHandler) UpdateEvent(c *fiber.Ctx) error {
	id, ok := parseEventID(c)
	if !ok {
		return response.BadRequest(c, "Invalid event ID")
	}

	in, ok, err := h.bindEvent(c)
	if !ok {
		return err
	}

	updated, err := h.events.UpdateEvent(c.UserContext(), id, in)
	if err != nil {
		log.Errorf("Failed to update event %d: %v", id, err)
		return response.InternalServerError(c, "Failed to update event")
	}
	if !updated {
		return response.NotFound(c, "Event not found")
	}

	event, err := h.events.GetEvent(c.UserContext(), id)
	if err != nil || event == nil {
		return response.SuccessWithMessage(c, "Event updated successfully", fiber.Map{"id": id})
	}
	return response.SuccessWithMessage(c, "Event updated successfully", event)
}

// DeleteEvent handles DELETE /api/v1/admin/events/:id
func (h *EventHandler) DeleteEvent(c *fiber.Ctx) error {
	id, ok := parseEventID(c)
	if !ok {
		return response.BadRequest(c, "Invalid event ID")
	}

	deleted, err := h.events.DeleteEvent(c.UserContext(), id)
	if errors.Is(err, services.ErrEventHasRegistrations) {
		return response.Conflict(c, "Event has registrations and cannot be deleted")
	}
	if err != nil {
		log.Errorf("Failed to delete event %d: %v", id, err)
		return response.InternalServerError(c, "Failed to delete event")
	}
	if !deleted {
		return response.NotFound(c, "Event not found")
	}

	return response.SuccessWithMessage(c, "Event deleted successfully", nil)
}

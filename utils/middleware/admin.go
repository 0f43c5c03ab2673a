package middleware

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/event-registration-api/services"
)

// LocalResourceID lets a handler report the ID of the resource it created
const LocalResourceID = "resource_id"

// AuditRecorder stores audit entries
type AuditRecorder interface {
	Record(ctx context.Context, entry services.AuditEntry) error
}

// AdminAuditLog records an audit entry after an admin action succeeds
func AdminAuditLog(recorder AuditRecorder, action, resource string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Execute the actual handler
		if err := c.Next(); err != nil {
			return err
		}

		if c.Response().StatusCode() >= fiber.StatusBadRequest {
			return nil
		}

		// Parse resource ID from params if available, else from the handler
		var resourceID uint
		if id := c.Params("id"); id != "" {
			if parsedID, err := strconv.ParseUint(id, 10, 32); err == nil {
				resourceID = uint(parsedID)
			}
		} else if id, ok := c.Locals(LocalResourceID).(uint); ok {
			resourceID = id
		}

		// Capture request body as the new value
		var payload interface{}
		if body := c.Body(); len(body) > 0 {
			var decoded interface{}
			if err := json.Unmarshal(body, &decoded); err == nil {
				payload = decoded
			}
		}

		adminEmail, _ := GetUserEmail(c)

		err := recorder.Record(c.UserContext(), services.AuditEntry{
			AdminEmail: adminEmail,
			Action:     action,
			Resource:   resource,
			ResourceID: resourceID,
			Payload:    payload,
			IPAddress:  c.IP(),
			UserAgent:  c.Get(fiber.HeaderUserAgent),
		})
		if err != nil {
			log.Errorf("Failed to record audit log for %s: %v", action, err)
		}

		return nil
	}
}

package admin

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/event-registration-api/services"
	"github.com/sahilchouksey/event-registration-api/utils/response"
)

// AuditHandler serves the admin audit trail
type AuditHandler struct {
	audit *services.AuditService
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(audit *services.AuditService) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// ListAuditLogs retrieves admin audit logs with pagination
// GET /api/v1/admin/audit
func (h *AuditHandler) ListAuditLogs(c *fiber.Ctx) error {
	// Pagination
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	logs, total, err := h.audit.List(c.UserContext(), c.Query("action"), page, limit)
	if err != nil {
		log.Errorf("Failed to fetch audit logs: %v", err)
		return response.InternalServerError(c, "Failed to fetch audit logs")
	}

	return response.Paginated(c, logs, response.CalculatePagination(page, limit, total))
}

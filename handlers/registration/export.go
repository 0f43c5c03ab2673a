package registration

import (
	"bufio"
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// exportFilenameLayout renders event_registrations_YYYY-MM-DD_HHMMSS.csv
const exportFilenameLayout = "event_registrations_2006-01-02_150405.csv"

// ExportRegistrations handles GET /api/v1/admin/registrations/export
func (h *RegistrationHandler) ExportRegistrations(c *fiber.Ctx) error {
	filter := filterFromQuery(c)
	filename := h.clock.Now().Format(exportFilenameLayout)

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set("X-Accel-Buffering", "no") // Disable nginx buffering

	// Start streaming
	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		// The Fiber context is not valid inside the stream writer
		ctx := context.Background()

		written, err := h.export.WriteCSV(ctx, w, filter)
		if err != nil {
			log.Errorf("Registration export stopped after %d rows: %v", written, err)
			return
		}
		log.Infof("Exported %d registrations to %s", written, filename)
	})

	return nil
}

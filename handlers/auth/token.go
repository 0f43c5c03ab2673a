package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/event-registration-api/utils/middleware"
	"github.com/sahilchouksey/event-registration-api/utils/response"
)

// Logout handles POST /api/v1/auth/logout by blacklisting the current token
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	// Get claims from context (set by auth middleware)
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	if h.blacklistService == nil {
		return response.ServiceUnavailable(c, "Token revocation is unavailable")
	}

	if claims.ExpiresAt == nil {
		return response.BadRequest(c, "Token has no expiry")
	}

	// Blacklist the token
	if err := h.blacklistService.RevokeToken(c.UserContext(), claims.ID, claims.ExpiresAt.Time); err != nil {
		log.Errorf("Failed to revoke token %s: %v", claims.ID, err)
		return response.InternalServerError(c, "Failed to logout")
	}

	return response.SuccessWithMessage(c, "Successfully logged out", nil)
}

package auth

import (
	"crypto/subtle"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/event-registration-api/utils/auth"
	"github.com/sahilchouksey/event-registration-api/utils/middleware"
	"github.com/sahilchouksey/event-registration-api/utils/response"
	"github.com/sahilchouksey/event-registration-api/utils/validation"
)

// AdminCredentials is the single admin identity configured from the environment
type AdminCredentials struct {
	Email        string
	PasswordHash string
}

// AuthHandler handles admin login and logout
type AuthHandler struct {
	jwtManager           *auth.JWTManager
	blacklistService     *auth.BlacklistService
	bruteForceProtection *middleware.BruteForceProtection
	admin                AdminCredentials
	validator            *validation.Validator
}

// NewAuthHandler creates a new auth handler. The blacklist and brute force
// protection are optional.
func NewAuthHandler(jwtManager *auth.JWTManager, admin AdminCredentials, blacklistService *auth.BlacklistService, bruteForceProtection *middleware.BruteForceProtection) *AuthHandler {
	return &AuthHandler{
		jwtManager:           jwtManager,
		blacklistService:     blacklistService,
		bruteForceProtection: bruteForceProtection,
		admin:                admin,
		validator:            validation.NewValidator(),
	}
}

// LoginRequest represents an admin login request
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse represents a successful login response
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	ExpiresIn   int       `json:"expires_in"` // in seconds
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.Email = validation.SanitizeString(req.Email)

	// Validate request
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationErrors(c, validation.FormatValidationErrors(err))
	}

	ip := c.IP()

	if h.admin.Email == "" || h.admin.PasswordHash == "" {
		log.Warn("Admin login attempted but ADMIN_EMAIL or ADMIN_PASSWORD_HASH is not set")
		return response.ServiceUnavailable(c, "Admin login is not configured")
	}

	emailMatches := subtle.ConstantTimeCompare([]byte(strings.ToLower(req.Email)), []byte(strings.ToLower(h.admin.Email))) == 1
	passwordErr := auth.VerifyPassword(h.admin.PasswordHash, req.Password)
	if !emailMatches || passwordErr != nil {
		// Record failed attempt
		if h.bruteForceProtection != nil {
			h.bruteForceProtection.RecordFailedAttempt(c.UserContext(), ip)
		}
		return response.Unauthorized(c, "Invalid email or password")
	}

	// Clear failed attempts on successful login
	if h.bruteForceProtection != nil {
		h.bruteForceProtection.RecordSuccessfulAttempt(c.UserContext(), ip)
	}

	issued, err := h.jwtManager.GenerateAccessToken(h.admin.Email)
	if err != nil {
		log.Errorf("Failed to generate access token: %v", err)
		return response.InternalServerError(c, "Failed to generate access token")
	}

	return response.Success(c, LoginResponse{
		AccessToken: issued.Token,
		TokenType:   "Bearer",
		ExpiresAt:   issued.ExpiresAt,
		ExpiresIn:   int(time.Until(issued.ExpiresAt).Seconds()),
	})
}

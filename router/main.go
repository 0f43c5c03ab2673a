package router

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/event-registration-api/config"
	"github.com/sahilchouksey/event-registration-api/database"
	"github.com/sahilchouksey/event-registration-api/handlers"
	admin_handlers "github.com/sahilchouksey/event-registration-api/handlers/admin"
	auth_handlers "github.com/sahilchouksey/event-registration-api/handlers/auth"
	availability_handlers "github.com/sahilchouksey/event-registration-api/handlers/availability"
	event_handlers "github.com/sahilchouksey/event-registration-api/handlers/event"
	registration_handlers "github.com/sahilchouksey/event-registration-api/handlers/registration"
	"github.com/sahilchouksey/event-registration-api/model"
	"github.com/sahilchouksey/event-registration-api/services"
	"github.com/sahilchouksey/event-registration-api/utils"
	"github.com/sahilchouksey/event-registration-api/utils/auth"
	"github.com/sahilchouksey/event-registration-api/utils/middleware"
)

// Cache is everything the routes use Redis for: availability options,
// login attempt tracking and token revocation
type Cache interface {
	services.OptionCache
	middleware.AttemptStore
	auth.RevocationStore
}

// SetupRoutes wires services, middleware and handlers onto app. A nil cache
// disables availability caching, brute force protection and logout.
func SetupRoutes(app *fiber.App, store database.Storage, env *config.Environment, cache Cache, clock services.Clock) error {
	if env.JWT_SECRET == "" {
		return errors.New("JWT_SECRET environment variable is not set")
	}

	// Initialize JWT manager with config
	jwtManager := auth.NewJWTManager(auth.JWTConfig{
		Secret: env.JWT_SECRET,
		Expiry: env.JWT_EXPIRY,
		Issuer: env.JWT_ISSUER,
	})

	db := store.GetDB()

	// Services
	eventService := services.NewEventService(db, clock)
	availabilityService := services.NewAvailabilityService(db, clock)
	registrationService := services.NewRegistrationService(db, clock, eventService)
	exportService := services.NewExportService(db)
	auditService := services.NewAuditService(db, clock)

	var (
		blacklistService     *auth.BlacklistService
		bruteForceProtection *middleware.BruteForceProtection
	)
	if cache != nil {
		eventService.WithCache(cache)
		availabilityService.WithCache(cache, env.AVAILABILITY_CACHE_TTL)
		blacklistService = auth.NewBlacklistService(cache)
		bruteForceProtection = middleware.NewBruteForceProtection(cache)
	} else {
		log.Warn("Redis unavailable: availability caching, brute force protection and logout are disabled")
	}

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, blacklistService)

	// Handlers
	authHandler := auth_handlers.NewAuthHandler(jwtManager, auth_handlers.AdminCredentials{
		Email:        env.ADMIN_EMAIL,
		PasswordHash: env.ADMIN_PASSWORD_HASH,
	}, blacklistService, bruteForceProtection)
	eventHandler := event_handlers.NewEventHandler(eventService, clock)
	availabilityHandler := availability_handlers.NewAvailabilityHandler(availabilityService)
	registrationHandler := registration_handlers.NewRegistrationHandler(registrationService, exportService, clock)
	auditHandler := admin_handlers.NewAuditHandler(auditService)

	// Apply security middleware
	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    env.ALLOWED_ORIGINS,
		RateLimitRequests: env.RATE_LIMIT_REQUESTS,
		RateLimitWindow:   1 * time.Minute, // per minute
	})

	// Health check endpoint (public)
	app.Get("/ping", utils.MakeHTTPHandleFunc(handlers.HandleCheckHealth, store))

	// API v1 group
	api := app.Group("/api/v1")

	// Auth routes (public)
	authGroup := api.Group("/auth")

	// Login with brute force protection
	if bruteForceProtection != nil {
		authGroup.Post("/login", bruteForceProtection.CheckAndRecordAttempt(), authHandler.Login)
	} else {
		authGroup.Post("/login", authHandler.Login)
	}
	authGroup.Post("/logout", authMiddleware.RequireAdmin(), authHandler.Logout)

	// Public event and availability routes
	events := api.Group("/events")
	events.Get("/active", eventHandler.ListActiveEvents)
	events.Get("/categories", availabilityHandler.ListCategories)
	events.Get("/categories/:category/dates", availabilityHandler.ListDates)
	events.Get("/categories/:category/dates/:date/events", availabilityHandler.ListEvents)

	// Public registration
	api.Post("/registrations", registrationHandler.CreateRegistration)

	// Admin routes
	admin := api.Group("/admin", authMiddleware.RequireAdmin())

	adminEvents := admin.Group("/events")
	adminEvents.Get("/", eventHandler.ListEvents)
	adminEvents.Get("/:id", eventHandler.GetEvent)
	adminEvents.Post("/", middleware.AdminAuditLog(auditService, model.AuditActionEventCreate, "events"), eventHandler.CreateEvent)
	adminEvents.Put("/:id", middleware.AdminAuditLog(auditService, model.AuditActionEventUpdate, "events"), eventHandler.UpdateEvent)
	adminEvents.Delete("/:id", middleware.AdminAuditLog(auditService, model.AuditActionEventDelete, "events"), eventHandler.DeleteEvent)

	adminRegistrations := admin.Group("/registrations")
	adminRegistrations.Get("/", registrationHandler.ListRegistrations)
	adminRegistrations.Get("/count", registrationHandler.CountRegistrations)
	adminRegistrations.Get("/export", registrationHandler.ExportRegistrations)
	adminRegistrations.Get("/dates", registrationHandler.ListDates)
	adminRegistrations.Get("/dates/:date/names", registrationHandler.ListEventNames)

	admin.Get("/audit", auditHandler.ListAuditLogs)

	return nil
}

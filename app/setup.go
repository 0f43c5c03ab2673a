package app

import (
	"fmt"

	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/event-registration-api/api"
	"github.com/sahilchouksey/event-registration-api/config"
	"github.com/sahilchouksey/event-registration-api/database"
	"github.com/sahilchouksey/event-registration-api/router"
	"github.com/sahilchouksey/event-registration-api/services"
	"github.com/sahilchouksey/event-registration-api/utils/cache"
)

func SetupAndRunServer() error {

	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	// Initialize GORM database connection
	store, err := database.Open(getEnv)
	if err != nil {
		print("Check whether the database is running or not\n")
		print("For local development set DB_DRIVER=sqlite to use an embedded database\n")
		return err
	}

	// Defer Closing DB
	defer store.Close()

	if err := store.Init(); err != nil {
		print("Failed to initialize database tables\n")
		print("Error running migrations:\n")
		return err
	}

	// Redis is optional; the router degrades without it
	var routeCache router.Cache
	if getEnv.REDIS_URL != "" {
		redisCache, err := cache.NewRedisCache(getEnv.REDIS_URL)
		if err != nil {
			log.Warnf("Warning: Failed to connect to Redis: %v. Running without cache.", err)
		} else {
			defer redisCache.Close()
			routeCache = redisCache
		}
	}

	// Init API
	server := api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT))
	app := server.GetEngine()

	// Setup Routes
	if err := router.SetupRoutes(app, store, getEnv, routeCache, services.SystemClock{}); err != nil {
		return err
	}

	// Get the PORT & Start the Server
	return server.Run()
}

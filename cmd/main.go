package main

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"

	"github.com/fieldsmith/dispatch/config"
	"github.com/fieldsmith/dispatch/internal/api/middleware"
	"github.com/fieldsmith/dispatch/internal/constants"
	"github.com/fieldsmith/dispatch/internal/db"
	"github.com/fieldsmith/dispatch/internal/db/repos"
	"github.com/fieldsmith/dispatch/internal/logger"
	"github.com/fieldsmith/dispatch/internal/notify"
	"github.com/fieldsmith/dispatch/internal/services"
	"github.com/fieldsmith/dispatch/pkg/api/v1/handlers"
	"github.com/fieldsmith/dispatch/pkg/api/v1/routes"
)

func main() {
	err := godotenv.Load()
	logger.InitializeAndConfigure()
	if err != nil {
		logger.Info("No .env file found, using environment variables")
	}

	dbPort, err := strconv.Atoi(config.GetEnv("DB_PORT", "5432"))
	if err != nil {
		logger.Fatalf("invalid DB_PORT: %v", err)
	}

	database, err := db.New(db.Options{
		Host:     config.GetEnv("DB_HOST", db.DefaultHost),
		User:     config.GetEnv("DB_USER", db.DefaultUser),
		Password: config.GetEnv("DB_PASSWORD", db.DefaultPassword),
		DBName:   config.GetEnv("DB_NAME", db.DefaultDBName),
		Port:     dbPort,
	})
	if err != nil {
		logger.Fatalf("failed to connect to database: %v", err)
	}

	// Repositories
	jobRepo := repos.NewJobRepository(database)
	suggestionRepo := repos.NewSuggestionRepository(database)
	optimizationRepo := repos.NewOptimizationRepository(database)
	userRepo := repos.NewUserRepository(database)

	// Outbound notifications go to a webhook when one is configured,
	// otherwise they only land in the log.
	var notifier notify.Notifier = notify.LogNotifier{}
	if url := config.GetEnv(constants.EnvNotifyWebhookURL, ""); url != "" {
		notifier = notify.NewWebhookNotifier(url)
	}

	// Services
	jobService := services.NewJobService(jobRepo)
	suggestionService := services.NewSuggestionService(suggestionRepo, jobRepo, notifier)
	optimizationService := services.NewOptimizationService(optimizationRepo, jobRepo, notifier)
	userService := services.NewUserService(userRepo)

	// Handlers
	apiHandler := handlers.NewAPIHandler(jobService, suggestionService, optimizationService, userService)
	jobHandler := handlers.NewJobHandler(apiHandler)
	userHandler := handlers.NewUserHandler(apiHandler)
	rpcHandler := &handlers.RPCHandler{
		SuggestionHandlers:   handlers.NewSuggestionHandlers(suggestionService),
		OptimizationHandlers: handlers.NewOptimizationHandlers(optimizationService),
		ScheduleHandlers:     handlers.NewScheduleHandlers(jobService),
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})
	app.Use(middleware.Logger())

	routes.RegisterRoutes(app, jobHandler, userHandler, rpcHandler)

	port := config.GetEnv(constants.EnvServerPort, routes.DefaultPort)
	logger.Infof("listening on :%s", port)
	if err := app.Listen(":" + port); err != nil {
		logger.Fatalf("server stopped: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}

package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"weatherinsight/internal/answer"
	httpapi "weatherinsight/internal/api/http"
	"weatherinsight/internal/config"
	"weatherinsight/internal/geoip"
	"weatherinsight/internal/intent"
	"weatherinsight/internal/lang"
	"weatherinsight/internal/llm"
	"weatherinsight/internal/weather"
	"weatherinsight/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// External capabilities.
	llmClient := llm.NewOpenAIClient(llm.Config{
		BaseURL: cfg.LLMBaseURL,
		APIKey:  cfg.LLMAPIKey,
		Model:   cfg.LLMModel,
	})
	provider := providers.NewWeatherAPIProvider(httpClient, cfg.WeatherAPIKey)
	locator := geoip.NewIPInfoLocator(httpClient, cfg.IPInfoToken)
	detector := lang.NewDetector()

	// Question-answering pipeline.
	extractor := intent.NewExtractor(llmClient, cfg.DefaultCity)
	resolver := weather.NewResolver(extractor, provider, locator, cfg.DefaultCity)
	composer := answer.NewComposer(resolver, llmClient, detector, cfg.HoursBefore, cfg.HoursAfter)

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weatherinsight",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.AllowedOrigins, ","),
		AllowCredentials: true,
	}))

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weatherinsight",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, composer)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}

package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"

	httpapi "github.com/dk472310/personal-dashboard/internal/api/http"
	"github.com/dk472310/personal-dashboard/internal/config"
	"github.com/dk472310/personal-dashboard/internal/events"
	"github.com/dk472310/personal-dashboard/internal/news"
	"github.com/dk472310/personal-dashboard/internal/scheduler"
	"github.com/dk472310/personal-dashboard/internal/store"
	"github.com/dk472310/personal-dashboard/internal/tasks"
	"github.com/dk472310/personal-dashboard/internal/weather"
)

func main() {
	// Load configuration; missing adapter credentials are fatal.
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound adapter calls, with a bounded timeout
	// so a hung third-party call cannot stall a request thread.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Persistent news cache; creates the schema on first start.
	newsStore, err := store.Open(cfg.NewsDBPath)
	if err != nil {
		logrus.Fatalf("failed to open news store: %v", err)
	}
	defer newsStore.Close()

	var summarizer news.Summarizer = news.LeadSummarizer{}
	if cfg.OpenAIAPIKey != "" {
		summarizer = news.NewOpenAISummarizer(cfg.OpenAIAPIKey)
	}

	newsService := news.NewService(
		news.NewTagesschauClient(httpClient),
		news.NewNormalizer(summarizer),
		newsStore,
		cfg.RefreshInterval,
	)

	// Initial refresh when the cache is stale, then arm the daily trigger.
	if newsService.NeedsRefresh() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		if err := newsService.Refresh(ctx); err != nil {
			logrus.Warnf("initial news refresh failed, serving stale cache: %v", err)
		}
		cancel()
	}

	sched := scheduler.New(newsService, cfg.RefreshHour, 5*time.Minute)
	if err := sched.Start(); err != nil {
		logrus.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	taskClient := tasks.NewClient(httpClient, cfg.TodoistAPIKey)
	eventService := events.NewService(events.NewClient(httpClient, cfg.NotionToken, cfg.NotionDatabaseID))
	weatherService := weather.NewService(weather.NewClient(httpClient, cfg.UserAgent), cfg.Latitude, cfg.Longitude)

	app := fiber.New(fiber.Config{
		AppName:               "personal-dashboard",
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
		AllowOrigins: cfg.CORSOrigins,
	}))

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "personal-dashboard",
		})
	})

	httpapi.RegisterRoutes(app, httpapi.Services{
		Tasks:   taskClient,
		Events:  eventService,
		Weather: weatherService,
		News:    newsService,
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			logrus.Errorf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logrus.Errorf("error during shutdown: %v", err)
	}
}

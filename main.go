package main

import (
	"flag"
	"log"

	"github.com/mkt2maker/campustrade/config"
	"github.com/mkt2maker/campustrade/handlers"
	"github.com/mkt2maker/campustrade/internal/metrics"
	"github.com/mkt2maker/campustrade/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	reset := flag.Bool("reset", false, "drop and recreate all tables, then seed demo data")
	flag.Parse()

	cfg := config.LoadConfig()

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if *reset {
		if err := config.ResetAndMigrate(db); err != nil {
			log.Fatal("Failed to reset database:", err)
		}
	} else if err := config.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	app := fiber.New(fiber.Config{
		AppName:      "CampusTrade API",
		ServerHeader: "CampusTrade Server/1.0",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Default 500 statuscode
			code := fiber.StatusInternalServerError
			msg := "Internal Server Error"

			// Retrieve the custom statuscode if it's a *fiber.Error
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				msg = e.Message
			}

			return c.Status(code).JSON(fiber.Map{
				"error": msg,
			})
		},
	})

	middleware.Setup(app)

	collector := metrics.NewCollector(prometheus.DefaultRegisterer)
	app.Use(collector.Middleware())

	// Health Check Endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "success",
			"message": "API is healthy",
		})
	})

	// Prometheus scrape endpoint
	app.Get("/metrics", metrics.Handler(prometheus.DefaultGatherer))

	handlers.RegisterRoutes(app, db, cfg)

	log.Printf("Server starting on host %s in port %s", cfg.Host, cfg.AppPort)

	if err := app.Listen(cfg.Host + ":" + cfg.AppPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

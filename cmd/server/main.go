// Package main is the entry point for the storefront server.
// It initializes all dependencies, sets up the HTTP server,
// and starts the application.
package main

import (
	"context"
	"time"

	"smartshop/internal/config"
	"smartshop/internal/repositories"
	"smartshop/internal/routes"
	"smartshop/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sirupsen/logrus"
)

func main() {
	config.LoadEnv()

	log := logrus.New()
	if config.IsProduction() {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	// PostgreSQL: pooled connections, migrations and catalog seeding.
	if err := repositories.InitDB(); err != nil {
		log.WithError(err).Fatal("failed to initialize database")
	}
	log.Info("PostgreSQL connected, migrations applied")

	sqlDB, err := repositories.DB.DB()
	if err != nil {
		log.WithError(err).Fatal("failed to get database instance")
	}
	if err := sqlDB.Ping(); err != nil {
		log.WithError(err).Fatal("failed to ping database")
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			log.WithError(err).Warn("failed to close database connection")
		}
	}()

	// Redis-backed session store.
	sessions := session.NewStore(session.NewRedisClientFromEnv())
	if err := sessions.HealthCheck(context.Background()); err != nil {
		log.WithError(err).Fatal("failed to connect to redis")
	}
	defer func() {
		if err := sessions.Close(); err != nil {
			log.WithError(err).Warn("failed to close redis connection")
		}
	}()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.GetEnv("CORS_ORIGINS", "http://localhost:5173"),
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowCredentials: true,
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Per-IP rate limits on the credential and OTP endpoints.
	for _, path := range []string{"/register", "/login", "/send_otp"} {
		app.Use(path, limiter.New(limiter.Config{
			Max:        config.GetIntEnv("RATE_LIMIT_MAX", 5),
			Expiration: 1 * time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error": "Too many requests. Please try again later.",
				})
			},
		}))
	}

	routes.SetupRoutes(app, repositories.DB, sessions, log)

	addr := ":" + config.GetEnv("PORT", "5000")
	log.WithField("addr", addr).Info("server listening")
	if err := app.Listen(addr); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

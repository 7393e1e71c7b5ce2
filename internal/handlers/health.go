package handlers

import (
	"smartshop/internal/repositories"
	"smartshop/internal/session"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler reports reachability of the backing stores.
type HealthHandler struct {
	sessions *session.Store
}

func NewHealthHandler(sessions *session.Store) *HealthHandler {
	return &HealthHandler{sessions: sessions}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "connected"
	if sqlDB, err := repositories.DB.DB(); err != nil || sqlDB.Ping() != nil {
		dbStatus = "unreachable"
	}

	redisStatus := "connected"
	if err := h.sessions.HealthCheck(c.Context()); err != nil {
		redisStatus = "unreachable"
	}

	status, overall := fiber.StatusOK, "ok"
	if dbStatus != "connected" || redisStatus != "connected" {
		status, overall = fiber.StatusServiceUnavailable, "degraded"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"services": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
	})
}

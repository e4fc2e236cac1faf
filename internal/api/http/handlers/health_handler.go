package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/groundops-service/internal/persistence"
)

const probeTimeout = 2 * time.Second

// HealthHandler answers liveness and readiness probes. Readiness pings the
// passenger store and the gate-assignment store; either one down means the
// terminal cannot be worked.
type HealthHandler struct {
	serviceName string
	version     string
	postgres    *persistence.Postgres
	redis       *persistence.Redis
}

func NewHealthHandler(serviceName, version string, postgres *persistence.Postgres, redis *persistence.Redis) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, postgres: postgres, redis: redis}
}

// Live reports that the process is up.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready pings each backing store and reports per-store results.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	checks := fiber.Map{
		"passenger-store":  probe(ctx, h.postgres.Ping),
		"assignment-store": probe(ctx, h.redis.Ping),
	}
	for _, result := range checks {
		if result != "ok" {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": fiber.Map{
					"code":    "DEPENDENCY_UNAVAILABLE",
					"message": "one or more backing stores unavailable",
					"details": checks,
				},
			})
		}
	}
	return c.JSON(fiber.Map{
		"status": "ready",
		"checks": checks,
	})
}

func probe(ctx context.Context, ping func(context.Context) error) string {
	if err := ping(ctx); err != nil {
		return err.Error()
	}
	return "ok"
}

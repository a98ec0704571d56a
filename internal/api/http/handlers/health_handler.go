package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/smartcity/internal/observability"
)

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler exposes liveness/readiness probes and the metrics snapshot.
type HealthHandler struct {
	checks  map[string]Pinger
	metrics *observability.Metrics
}

// NewHealthHandler creates the handler. Nil pingers are skipped.
func NewHealthHandler(metrics *observability.Metrics, checks map[string]Pinger) *HealthHandler {
	filtered := make(map[string]Pinger, len(checks))
	for name, check := range checks {
		if check != nil {
			filtered[name] = check
		}
	}
	return &HealthHandler{checks: filtered, metrics: metrics}
}

// Live reports process liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return respond(c, fiber.StatusOK, "alive", nil)
}

// Ready pings every backing dependency and reports per-dependency state.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	states := make(map[string]string, len(h.checks))
	healthy := true
	for name, check := range h.checks {
		if err := check.Ping(c.UserContext()); err != nil {
			states[name] = "down"
			healthy = false
			continue
		}
		states[name] = "up"
	}
	if !healthy {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"checks": states})
	}
	return respond(c, fiber.StatusOK, "ready", states)
}

// Metrics dumps the in-process request counters.
func (h *HealthHandler) Metrics(c *fiber.Ctx) error {
	requests, errCounts := h.metrics.Snapshot()
	return respond(c, fiber.StatusOK, "metrics", fiber.Map{
		"requests": requests,
		"errors":   errCounts,
	})
}

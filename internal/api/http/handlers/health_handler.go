package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/shubh1628/Dabba-delight/internal/observability"
	"github.com/shubh1628/Dabba-delight/internal/persistence"
	"github.com/shubh1628/Dabba-delight/internal/session"
)

const readinessTimeout = 2 * time.Second

var errRelayStarting = errors.New("session change relay not subscribed yet")

// HealthDependencies lists what readiness is checked against. Nil entries
// are reported as disabled.
type HealthDependencies struct {
	Postgres *persistence.Postgres
	Redis    *persistence.Redis
	Sessions *session.Store
	Metrics  *observability.Metrics
}

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	deps        HealthDependencies
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version string, deps HealthDependencies) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, deps: deps}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports readiness of the user database, the session backend and the
// change relay.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), readinessTimeout)
	defer cancel()

	depStatus := fiber.Map{}
	ready := true

	check := func(name string, configured bool, ping func(context.Context) error) {
		if !configured {
			depStatus[name] = "disabled"
			return
		}
		if err := ping(ctx); err != nil {
			depStatus[name] = err.Error()
			ready = false
			return
		}
		depStatus[name] = "ok"
	}
	check("postgres", h.deps.Postgres != nil, h.deps.Postgres.Ping)
	check("redis", h.deps.Redis != nil, h.deps.Redis.Ping)
	check("session_relay", h.deps.Sessions != nil, func(context.Context) error {
		select {
		case <-h.deps.Sessions.Ready():
			return nil
		default:
			return errRelayStarting
		}
	})

	if ready {
		return c.JSON(fiber.Map{
			"status":       "ready",
			"dependencies": depStatus,
		})
	}

	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    "DEPENDENCY_UNAVAILABLE",
			"message": "one or more dependencies unavailable",
			"details": depStatus,
		},
	})
}

// Metrics returns the request, latency and error counters.
func (h *HealthHandler) Metrics(c *fiber.Ctx) error {
	return c.JSON(h.deps.Metrics.Snapshot())
}

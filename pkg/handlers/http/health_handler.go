package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type healthHandler struct {
	checks map[string]Pinger
}

// NewHealthHandler reports each dependency. The API stays healthy when the
// rate limit store is down since admission fails open.
func NewHealthHandler(checks map[string]Pinger) Handler {
	return &healthHandler{checks: checks}
}

// Handle @Summary Health check
// @Tags Operational
// @Produce json
// @Success 200 {object} map[string]interface{} "status and dependency checks"
// @Router /health [get]
func (h *healthHandler) Handle(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	deps := make(map[string]string, len(h.checks))
	for name, p := range h.checks {
		if err := p.Ping(ctx); err != nil {
			deps[name] = "unavailable"
			continue
		}
		deps[name] = "ok"
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":       "healthy",
		"time":         time.Now().Format(time.RFC3339),
		"dependencies": deps,
	})
}

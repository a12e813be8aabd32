package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shubh1628/Dabba-delight/internal/api/dto"
	"github.com/shubh1628/Dabba-delight/internal/auth"
)

// PagesHandler renders page descriptors for the static route table.
type PagesHandler struct{}

// NewPagesHandler constructs handler.
func NewPagesHandler() *PagesHandler {
	return &PagesHandler{}
}

// Render returns the handler for one route. Guards are applied by the router.
func (h *PagesHandler) Render(route auth.Route) fiber.Handler {
	return func(c *fiber.Ctx) error {
		resp := dto.PageResponse{Page: route.Page, Title: route.Title, Path: route.Path}
		if route.Guarded() {
			resp.Session, _ = auth.RecordFromContext(c)
		}
		return c.JSON(fiber.Map{"data": resp})
	}
}

// DashboardAlias handles GET /dashboard.
func (h *PagesHandler) DashboardAlias(c *fiber.Ctx) error {
	record, _ := auth.RecordFromContext(c)
	decision := auth.Decide(auth.DashboardPath, record)
	return c.Redirect(decision.Redirect, fiber.StatusSeeOther)
}

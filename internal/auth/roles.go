package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shubh1628/Dabba-delight/internal/domain"
	apperrors "github.com/shubh1628/Dabba-delight/pkg/util/errorutil"
)

// RequireRoute guards a page with Decide. Visitors the route does not
// permit get a See Other redirect to the login page.
func RequireRoute(route Route) fiber.Handler {
	return func(c *fiber.Ctx) error {
		record, _ := RecordFromContext(c)
		decision := Decide(route.Path, record)
		if !decision.Render {
			return c.Redirect(decision.Redirect, fiber.StatusSeeOther)
		}
		return c.Next()
	}
}

// RequireUserType guards an API endpoint to the given roles.
func RequireUserType(allowed ...domain.UserType) fiber.Handler {
	allowedSet := make(map[domain.UserType]struct{}, len(allowed))
	for _, userType := range allowed {
		allowedSet[userType] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		record, ok := RecordFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("login required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[record.UserType]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shubh1628/Dabba-delight/internal/api/dto"
	"github.com/shubh1628/Dabba-delight/internal/service"
	apperrors "github.com/shubh1628/Dabba-delight/pkg/util/errorutil"
)

// UsersHandler serves the admin users list.
type UsersHandler struct {
	auth *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService) *UsersHandler {
	return &UsersHandler{auth: authService}
}

// List handles GET /api/admin/users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.auth.ListUsers(c.UserContext())
	if err != nil {
		return apperrors.WithTitle(err, "Error")
	}

	out := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, dto.NewUserResponse(user))
	}
	return c.JSON(fiber.Map{"data": out})
}

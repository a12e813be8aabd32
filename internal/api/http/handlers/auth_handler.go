package handlers

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/shubh1628/Dabba-delight/internal/api/dto"
	"github.com/shubh1628/Dabba-delight/internal/auth"
	"github.com/shubh1628/Dabba-delight/internal/service"
	apperrors "github.com/shubh1628/Dabba-delight/pkg/util/errorutil"
)

const (
	titleLoginFailed  = "Login Failed"
	titleSignupFailed = "Signup Failed"
)

// AuthHandler exposes the login, signup and logout flows.
type AuthHandler struct {
	auth     *service.AuthService
	sessions *auth.SessionMiddleware
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, sessions *auth.SessionMiddleware) *AuthHandler {
	return &AuthHandler{auth: authService, sessions: sessions}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.WithTitle(fiber.NewError(http.StatusBadRequest, "invalid payload"), titleLoginFailed)
	}

	scope, err := h.sessions.EnsureScope(c)
	if err != nil {
		return apperrors.WithTitle(apperrors.NewInternalError(err), titleLoginFailed)
	}

	res, err := h.auth.Login(c.UserContext(), scope, service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		UserType: req.UserType,
	})
	if err != nil {
		return apperrors.WithTitle(err, titleLoginFailed)
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"session":  res.Session,
			"redirect": res.Redirect,
		},
		"notification": dto.Notification{
			Title:       "Login Successful!",
			Description: fmt.Sprintf("Welcome back! You are logged in as a %s.", res.Session.UserType),
		},
	})
}

// Signup handles POST /api/auth/signup.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.WithTitle(fiber.NewError(http.StatusBadRequest, "invalid payload"), titleSignupFailed)
	}

	user, err := h.auth.Signup(c.UserContext(), service.SignupInput{
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		UserType:        req.UserType,
	})
	if err != nil {
		return apperrors.WithTitle(err, titleSignupFailed)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"user":     dto.NewUserResponse(*user),
			"redirect": auth.LoginPath,
		},
		"notification": dto.Notification{
			Title:       "Signup Successful!",
			Description: "Your account has been created.",
		},
	})
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	scope, _ := auth.ScopeFromContext(c)
	if err := h.auth.Logout(c.UserContext(), scope); err != nil {
		return apperrors.WithTitle(apperrors.NewInternalError(err), "Logout Failed")
	}
	auth.ForgetRecord(c)

	return c.JSON(fiber.Map{
		"data": fiber.Map{"redirect": auth.HomePath},
		"notification": dto.Notification{
			Title:       "Logged Out",
			Description: "You have been successfully logged out.",
		},
	})
}

package authapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Abraxas-365/peoplehub/pkg/errx"
	"github.com/Abraxas-365/peoplehub/pkg/iam/auth"
	"github.com/Abraxas-365/peoplehub/pkg/iam/auth/authsrv"
)

type Handlers struct {
	service *authsrv.AuthService
}

func NewHandlers(service *authsrv.AuthService) *Handlers {
	return &Handlers{service: service}
}

// Register creates an account
// POST /api/auth/register
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req authsrv.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return errx.New("invalid request body", errx.TypeValidation).WithDetail("parse_error", err.Error())
	}

	resp, err := h.service.Register(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Login issues a token pair
// POST /api/auth/login
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req authsrv.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return errx.New("invalid request body", errx.TypeValidation).WithDetail("parse_error", err.Error())
	}

	resp, err := h.service.Login(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Refresh exchanges a refresh token
// POST /api/auth/refresh
func (h *Handlers) Refresh(c *fiber.Ctx) error {
	var req authsrv.RefreshRequest
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		return auth.ErrMissingToken()
	}

	resp, err := h.service.Refresh(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Me returns the authenticated user and role
// GET /api/auth/me
func (h *Handlers) Me(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	resp, err := h.service.Me(c.UserContext(), *authContext.UserID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// RegisterRoutes registers auth routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.UnifiedAuthMiddleware) {
	api := app.Group("/api/auth")

	api.Post("/register", handlers.Register)
	api.Post("/login", handlers.Login)
	api.Post("/refresh", handlers.Refresh)
	api.Get("/me", authMiddleware.Authenticate(), handlers.Me)
}

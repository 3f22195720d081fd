package userapi

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/Abraxas-365/peoplehub/pkg/errx"
	"github.com/Abraxas-365/peoplehub/pkg/iam/auth"
	"github.com/Abraxas-365/peoplehub/pkg/iam/user"
	"github.com/Abraxas-365/peoplehub/pkg/iam/user/usersrv"
	"github.com/Abraxas-365/peoplehub/pkg/kernel"
)

// Handlers provides HTTP handlers for user operations
type Handlers struct {
	service *usersrv.UserService
}

func NewHandlers(service *usersrv.UserService) *Handlers {
	return &Handlers{service: service}
}

// CreateUser creates a user
// POST /api/users
func (h *Handlers) CreateUser(c *fiber.Ctx) error {
	var req user.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return errx.New("invalid request body", errx.TypeValidation).WithDetail("parse_error", err.Error())
	}

	created, err := h.service.CreateUser(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// GetUser retrieves a user. Callers may always read themselves.
// GET /api/users/:id
func (h *Handlers) GetUser(c *fiber.Ctx) error {
	userID := kernel.UserID(c.Params("id"))
	if err := AuthorizeSelfOr(c, userID, auth.ScopeUsersRead); err != nil {
		return err
	}

	u, err := h.service.GetUser(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(u)
}

// ListUsers lists users
// GET /api/users
func (h *Handlers) ListUsers(c *fiber.Ctx) error {
	users, err := h.service.ListUsers(c.UserContext(), ParsePaginationOptions(c))
	if err != nil {
		return err
	}
	return c.JSON(users)
}

// UpdateUser updates a user
// PUT /api/users/:id
func (h *Handlers) UpdateUser(c *fiber.Ctx) error {
	var req user.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return errx.New("invalid request body", errx.TypeValidation).WithDetail("parse_error", err.Error())
	}

	updated, err := h.service.UpdateUser(c.UserContext(), kernel.UserID(c.Params("id")), req)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

// DeleteUser deletes a user
// DELETE /api/users/:id
func (h *Handlers) DeleteUser(c *fiber.Ctx) error {
	if err := h.service.DeleteUser(c.UserContext(), kernel.UserID(c.Params("id"))); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AuthorizeSelfOr passes when the caller is userID or holds scope
func AuthorizeSelfOr(c *fiber.Ctx, userID kernel.UserID, scope string) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}
	if authContext.IsSelf(userID) || authContext.HasScope(scope) {
		return nil
	}
	return user.ErrForbidden().WithDetail("user_id", userID.String())
}

// ParsePaginationOptions reads page and page_size from the query string
func ParsePaginationOptions(c *fiber.Ctx) kernel.PaginationOptions {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))
	return kernel.PaginationOptions{Page: page, PageSize: pageSize}.Normalize()
}

// RegisterRoutes registers user routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.UnifiedAuthMiddleware) {
	api := app.Group("/api/users", authMiddleware.Authenticate())

	api.Get("/", authMiddleware.RequireScope(auth.ScopeUsersRead), handlers.ListUsers)
	api.Post("/", authMiddleware.RequireScope(auth.ScopeUsersWrite), handlers.CreateUser)
	api.Get("/:id", handlers.GetUser)
	api.Put("/:id", authMiddleware.RequireScope(auth.ScopeUsersWrite), handlers.UpdateUser)
	api.Delete("/:id", authMiddleware.RequireScope(auth.ScopeUsersDelete), handlers.DeleteUser)
}

package roleapi

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/Abraxas-365/peoplehub/pkg/errx"
	"github.com/Abraxas-365/peoplehub/pkg/iam/auth"
	"github.com/Abraxas-365/peoplehub/pkg/iam/role"
	"github.com/Abraxas-365/peoplehub/pkg/iam/role/rolesrv"
	"github.com/Abraxas-365/peoplehub/pkg/kernel"
)

// Handlers provides HTTP handlers for role operations
type Handlers struct {
	service *rolesrv.RoleService
}

func NewHandlers(service *rolesrv.RoleService) *Handlers {
	return &Handlers{service: service}
}

// CreateRole creates a role
// POST /api/roles
func (h *Handlers) CreateRole(c *fiber.Ctx) error {
	var req role.CreateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return errx.New("invalid request body", errx.TypeValidation).WithDetail("parse_error", err.Error())
	}

	created, err := h.service.CreateRole(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// GetRole retrieves a role by ID
// GET /api/roles/:id
func (h *Handlers) GetRole(c *fiber.Ctx) error {
	r, err := h.service.GetRole(c.UserContext(), kernel.RoleID(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(r)
}

// ListRoles lists roles
// GET /api/roles
func (h *Handlers) ListRoles(c *fiber.Ctx) error {
	roles, err := h.service.ListRoles(c.UserContext(), parsePaginationOptions(c))
	if err != nil {
		return err
	}
	return c.JSON(roles)
}

// UpdateRole updates a role
// PUT /api/roles/:id
func (h *Handlers) UpdateRole(c *fiber.Ctx) error {
	var req role.UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return errx.New("invalid request body", errx.TypeValidation).WithDetail("parse_error", err.Error())
	}

	updated, err := h.service.UpdateRole(c.UserContext(), kernel.RoleID(c.Params("id")), req)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

// DeleteRole deletes a custom role
// DELETE /api/roles/:id
func (h *Handlers) DeleteRole(c *fiber.Ctx) error {
	if err := h.service.DeleteRole(c.UserContext(), kernel.RoleID(c.Params("id"))); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListScopes returns every known scope with its description
// GET /api/roles/scopes
func (h *Handlers) ListScopes(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"categories":   auth.DomainScopeCategories,
		"descriptions": auth.DomainScopeDescriptions,
	})
}

func parsePaginationOptions(c *fiber.Ctx) kernel.PaginationOptions {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))
	return kernel.PaginationOptions{Page: page, PageSize: pageSize}.Normalize()
}

// RegisterRoutes registers role routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.UnifiedAuthMiddleware) {
	api := app.Group("/api/roles", authMiddleware.Authenticate())

	api.Get("/", authMiddleware.RequireScope(auth.ScopeRolesRead), handlers.ListRoles)
	api.Get("/scopes", authMiddleware.RequireScope(auth.ScopeRolesRead), handlers.ListScopes)
	api.Get("/:id", authMiddleware.RequireScope(auth.ScopeRolesRead), handlers.GetRole)
	api.Post("/", authMiddleware.RequireScope(auth.ScopeRolesWrite), handlers.CreateRole)
	api.Put("/:id", authMiddleware.RequireScope(auth.ScopeRolesWrite), handlers.UpdateRole)
	api.Delete("/:id", authMiddleware.RequireScope(auth.ScopeRolesWrite), handlers.DeleteRole)
}

package applicationapi

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/Abraxas-365/peoplehub/pkg/iam/auth"
	"github.com/Abraxas-365/peoplehub/pkg/kernel"
	"github.com/Abraxas-365/peoplehub/recruitment/application"
	"github.com/Abraxas-365/peoplehub/recruitment/application/applicationsrv"
)

// Handlers provides HTTP handlers for application operations
type Handlers struct {
	service *applicationsrv.ApplicationService
}

// NewHandlers creates a new application handlers instance
func NewHandlers(service *applicationsrv.ApplicationService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// CreateApplication creates a new application
// POST /api/applications
func (h *Handlers) CreateApplication(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req application.CreateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return application.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	// Candidates apply for themselves when no candidate is given
	if req.CandidateID.IsEmpty() {
		req.CandidateID = actor.UserID
	}

	newApplication, err := h.service.CreateApplication(c.UserContext(), req, actor)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(newApplication)
}

// GetApplicationByID retrieves an application by ID
// GET /api/applications/:id
func (h *Handlers) GetApplicationByID(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	applicationID := kernel.ApplicationID(c.Params("id"))
	if applicationID.IsEmpty() {
		return application.ErrApplicationNotFound().WithDetail("id", "missing or empty")
	}

	app, err := h.service.GetApplicationFor(c.UserContext(), applicationID, actor)
	if err != nil {
		return err
	}

	return c.JSON(app)
}

// ListApplications lists applications
// GET /api/applications?candidate_id=&job_id=&status=
func (h *Handlers) ListApplications(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	apps, err := h.service.ListApplications(c.UserContext(), application.ListApplicationsRequest{
		CandidateID: kernel.UserID(c.Query("candidate_id")),
		JobID:       kernel.JobID(c.Query("job_id")),
		Status:      application.ApplicationStatus(c.Query("status")),
		Pagination:  parsePaginationOptions(c),
	}, actor)
	if err != nil {
		return err
	}

	return c.JSON(apps)
}

// ListApplicationsByJob lists the applications filed for a job
// GET /api/jobs/:id/applications
func (h *Handlers) ListApplicationsByJob(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	apps, err := h.service.ListApplications(c.UserContext(), application.ListApplicationsRequest{
		JobID:      kernel.JobID(c.Params("id")),
		Status:     application.ApplicationStatus(c.Query("status")),
		Pagination: parsePaginationOptions(c),
	}, actor)
	if err != nil {
		return err
	}

	return c.JSON(apps)
}

// UpdateApplicationStatus moves an application through the pipeline
// PUT /api/applications/:id/status
func (h *Handlers) UpdateApplicationStatus(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req application.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return application.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}
	if req.Status == "" {
		return application.ErrInvalidStatus().WithDetail("status", "required")
	}

	app, err := h.service.UpdateStatus(c.UserContext(), kernel.ApplicationID(c.Params("id")), req.Status, actor)
	if err != nil {
		return err
	}

	return c.JSON(app)
}

// WithdrawApplication withdraws the caller's application
// POST /api/applications/:id/withdraw
func (h *Handlers) WithdrawApplication(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	app, err := h.service.UpdateStatus(c.UserContext(), kernel.ApplicationID(c.Params("id")), application.ApplicationStatusWithdrawn, actor)
	if err != nil {
		return err
	}

	return c.JSON(app)
}

// RescoreApplication recomputes the match score
// POST /api/applications/:id/rescore
func (h *Handlers) RescoreApplication(c *fiber.Ctx) error {
	app, err := h.service.RescoreApplication(c.UserContext(), kernel.ApplicationID(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(app)
}

func actorFrom(c *fiber.Ctx) (applicationsrv.Actor, error) {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return applicationsrv.Actor{}, application.ErrInsufficientPermissions()
	}
	return applicationsrv.Actor{
		UserID:    *authContext.UserID,
		CanReview: authContext.HasScope(auth.ScopeApplicationsReview),
	}, nil
}

// parsePaginationOptions extracts pagination parameters from query string
func parsePaginationOptions(c *fiber.Ctx) kernel.PaginationOptions {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))
	return kernel.PaginationOptions{Page: page, PageSize: pageSize}.Normalize()
}

// RegisterRoutes registers application routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.UnifiedAuthMiddleware) {
	api := app.Group("/api/applications", authMiddleware.Authenticate())

	api.Get("/", authMiddleware.RequireScope(auth.ScopeApplicationsRead), handlers.ListApplications)
	api.Post("/", authMiddleware.RequireScope(auth.ScopeApplicationsWrite), handlers.CreateApplication)
	api.Get("/:id", authMiddleware.RequireScope(auth.ScopeApplicationsRead), handlers.GetApplicationByID)
	api.Put("/:id/status", authMiddleware.RequireAnyScope(auth.ScopeApplicationsReview, auth.ScopeApplicationsWrite), handlers.UpdateApplicationStatus)
	api.Post("/:id/withdraw", authMiddleware.RequireScope(auth.ScopeApplicationsWrite), handlers.WithdrawApplication)
	api.Post("/:id/rescore", authMiddleware.RequireScope(auth.ScopeApplicationsReview), handlers.RescoreApplication)

	app.Get("/api/jobs/:id/applications",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeApplicationsReview),
		handlers.ListApplicationsByJob,
	)
}

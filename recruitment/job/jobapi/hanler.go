package jobapi

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/Abraxas-365/peoplehub/pkg/errx"
	"github.com/Abraxas-365/peoplehub/pkg/iam/auth"
	"github.com/Abraxas-365/peoplehub/pkg/kernel"
	"github.com/Abraxas-365/peoplehub/recruitment/job"
	"github.com/Abraxas-365/peoplehub/recruitment/job/jobsrv"
)

// Handlers provides HTTP handlers for job operations
type Handlers struct {
	service *jobsrv.JobService
}

// NewHandlers creates a new job handlers instance
func NewHandlers(service *jobsrv.JobService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// CreateJob creates a new job posting
// POST /api/jobs
func (h *Handlers) CreateJob(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return job.ErrInsufficientPermissions()
	}

	var req job.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return errx.New("invalid request body", errx.TypeValidation).WithDetail("parse_error", err.Error())
	}

	// Set the poster to the authenticated user
	req.PostedBy = *authContext.UserID

	newJob, err := h.service.CreateJob(c.UserContext(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(newJob)
}

// GetJobByID retrieves a job by ID
// GET /api/jobs/:id
func (h *Handlers) GetJobByID(c *fiber.Ctx) error {
	jobID := kernel.JobID(c.Params("id"))
	if jobID == "" {
		return job.ErrJobNotFound().WithDetail("id", "missing or empty")
	}

	jobResp, err := h.service.GetJob(c.UserContext(), jobID)
	if err != nil {
		return err
	}

	return c.JSON(jobResp)
}

// ListJobs lists jobs, optionally filtered by status, poster or text
// GET /api/jobs?status=&posted_by=&q=
func (h *Handlers) ListJobs(c *fiber.Ctx) error {
	jobs, err := h.service.SearchJobs(c.UserContext(), job.SearchJobsRequest{
		Query:      c.Query("q"),
		Status:     job.JobStatus(c.Query("status")),
		PostedBy:   kernel.UserID(c.Query("posted_by")),
		Pagination: parsePaginationOptions(c),
	})
	if err != nil {
		return err
	}

	return c.JSON(jobs)
}

// UpdateJob updates an existing job
// PUT /api/jobs/:id
func (h *Handlers) UpdateJob(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req job.UpdateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return errx.New("invalid request body", errx.TypeValidation).WithDetail("parse_error", err.Error())
	}

	updatedJob, err := h.service.UpdateJob(c.UserContext(), kernel.JobID(c.Params("id")), req, actor)
	if err != nil {
		return err
	}

	return c.JSON(updatedJob)
}

// CloseJob stops accepting applications
// POST /api/jobs/:id/close
func (h *Handlers) CloseJob(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	closed, err := h.service.CloseJob(c.UserContext(), kernel.JobID(c.Params("id")), actor)
	if err != nil {
		return err
	}

	return c.JSON(closed)
}

// ArchiveJob archives a job
// POST /api/jobs/:id/archive
func (h *Handlers) ArchiveJob(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	archived, err := h.service.ArchiveJob(c.UserContext(), kernel.JobID(c.Params("id")), actor)
	if err != nil {
		return err
	}

	return c.JSON(archived)
}

// DeleteJob deletes a job
// DELETE /api/jobs/:id
func (h *Handlers) DeleteJob(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteJob(c.UserContext(), kernel.JobID(c.Params("id")), actor); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ReindexJobs rebuilds the job_post collection
// POST /api/jobs/reindex
func (h *Handlers) ReindexJobs(c *fiber.Ctx) error {
	resp, err := h.service.ReindexAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func actorFrom(c *fiber.Ctx) (jobsrv.Actor, error) {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return jobsrv.Actor{}, job.ErrInsufficientPermissions()
	}
	return jobsrv.Actor{
		UserID:       *authContext.UserID,
		CanManageAll: authContext.HasScope(auth.ScopeJobsAll),
	}, nil
}

// parsePaginationOptions extracts pagination parameters from query string
func parsePaginationOptions(c *fiber.Ctx) kernel.PaginationOptions {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	return kernel.PaginationOptions{
		Page:     page,
		PageSize: pageSize,
	}
}

// RegisterRoutes registers job routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.UnifiedAuthMiddleware) {
	api := app.Group("/api/jobs", authMiddleware.Authenticate())

	api.Get("/", authMiddleware.RequireScope(auth.ScopeJobsRead), handlers.ListJobs)
	api.Post("/", authMiddleware.RequireScope(auth.ScopeJobsWrite), handlers.CreateJob)
	api.Post("/reindex", authMiddleware.RequireScope(auth.ScopeJobsAll), handlers.ReindexJobs)
	api.Get("/:id", authMiddleware.RequireScope(auth.ScopeJobsRead), handlers.GetJobByID)
	api.Put("/:id", authMiddleware.RequireScope(auth.ScopeJobsWrite), handlers.UpdateJob)
	api.Delete("/:id", authMiddleware.RequireScope(auth.ScopeJobsDelete), handlers.DeleteJob)
	api.Post("/:id/close", authMiddleware.RequireScope(auth.ScopeJobsArchive), handlers.CloseJob)
	api.Post("/:id/archive", authMiddleware.RequireScope(auth.ScopeJobsArchive), handlers.ArchiveJob)
}

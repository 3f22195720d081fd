package resumeapi

import (
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/Abraxas-365/peoplehub/pkg/errx"
	"github.com/Abraxas-365/peoplehub/pkg/iam/auth"
	"github.com/Abraxas-365/peoplehub/pkg/kernel"
	"github.com/Abraxas-365/peoplehub/recruitment/resume"
	"github.com/Abraxas-365/peoplehub/recruitment/resume/resumesrv"
)

type ResumeHandlers struct {
	service *resumesrv.Service
}

func NewResumeHandlers(service *resumesrv.Service) *ResumeHandlers {
	return &ResumeHandlers{service: service}
}

func (h *ResumeHandlers) RegisterRoutes(app *fiber.App, authMiddleware *auth.UnifiedAuthMiddleware) {
	resumes := app.Group("/api/resumes", authMiddleware.Authenticate())

	resumes.Post("/", authMiddleware.RequireScope(auth.ScopeResumesWrite), h.UploadResume)
	resumes.Get("/", authMiddleware.RequireScope(auth.ScopeResumesRead), h.ListResumes)

	// Processing jobs
	resumes.Get("/jobs/:jobId", authMiddleware.RequireScope(auth.ScopeResumesRead), h.GetJobStatus)
	resumes.Post("/jobs/:jobId/retry", authMiddleware.RequireScope(auth.ScopeResumesWrite), h.RetryJob)

	resumes.Get("/:id", authMiddleware.RequireScope(auth.ScopeResumesRead), h.GetResume)
	resumes.Delete("/:id", authMiddleware.RequireAnyScope(auth.ScopeResumesDelete, auth.ScopeResumesWrite), h.DeleteResume)
}

// ============================================================================
// Resume Handlers
// ============================================================================

// UploadResume stores an uploaded resume and parses it inline or in the background
// POST /api/resumes (multipart: file, provider, async, k)
func (h *ResumeHandlers) UploadResume(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	file, err := c.FormFile("file")
	if err != nil {
		return resume.ErrFileRequired().WithDetail("parse_error", err.Error())
	}

	f, err := file.Open()
	if err != nil {
		return errx.Wrap(err, "failed to open uploaded file", errx.TypeInternal)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return errx.Wrap(err, "failed to read uploaded file", errx.TypeInternal)
	}

	async, _ := strconv.ParseBool(c.FormValue("async", "false"))
	topK, _ := strconv.Atoi(c.FormValue("k", "0"))

	resp, err := h.service.Upload(c.UserContext(), resume.UploadResumeRequest{
		OwnerID:  *authCtx.UserID,
		FileName: file.Filename,
		Data:     data,
		Provider: c.FormValue("provider"),
		Async:    async,
		TopK:     topK,
	})
	if err != nil {
		return err
	}

	if async {
		return c.Status(fiber.StatusAccepted).JSON(resp)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetResume retrieves a resume by ID
// GET /api/resumes/:id
func (h *ResumeHandlers) GetResume(c *fiber.Ctx) error {
	r, err := h.service.GetResume(c.UserContext(), kernel.ResumeID(c.Params("id")))
	if err != nil {
		return err
	}
	if err := authorizeOwner(c, r.OwnerID); err != nil {
		return err
	}
	return c.JSON(r)
}

// ListResumes lists resumes. Callers without resumes:* only see their own.
// GET /api/resumes?owner_id=
func (h *ResumeHandlers) ListResumes(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	ownerID := kernel.UserID(c.Query("owner_id"))
	if !authCtx.HasScope(auth.ScopeResumesAll) {
		if !ownerID.IsEmpty() && !authCtx.IsSelf(ownerID) {
			return resume.ErrInsufficientPermissions().WithDetail("owner_id", ownerID)
		}
		ownerID = *authCtx.UserID
	}

	page, err := h.service.ListResumes(c.UserContext(), resume.ListResumesRequest{
		OwnerID:    ownerID,
		Pagination: parsePaginationOptions(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// DeleteResume removes a resume, its file and its vector
// DELETE /api/resumes/:id
func (h *ResumeHandlers) DeleteResume(c *fiber.Ctx) error {
	id := kernel.ResumeID(c.Params("id"))

	owner, err := h.service.ResumeOwner(c.UserContext(), id)
	if err != nil {
		return err
	}
	if err := authorizeOwner(c, owner); err != nil {
		return err
	}

	if err := h.service.DeleteResume(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ============================================================================
// Job Handlers
// ============================================================================

// GetJobStatus returns the progress of an async upload
// GET /api/resumes/jobs/:jobId
func (h *ResumeHandlers) GetJobStatus(c *fiber.Ctx) error {
	jobID := kernel.ProcessingJobID(c.Params("jobId"))

	owner, err := h.service.JobOwner(c.UserContext(), jobID)
	if err != nil {
		return err
	}
	if err := authorizeOwner(c, owner); err != nil {
		return err
	}

	status, err := h.service.GetJobStatus(c.UserContext(), jobID)
	if err != nil {
		return err
	}
	return c.JSON(status)
}

// RetryJob requeues a failed job
// POST /api/resumes/jobs/:jobId/retry
func (h *ResumeHandlers) RetryJob(c *fiber.Ctx) error {
	jobID := kernel.ProcessingJobID(c.Params("jobId"))

	owner, err := h.service.JobOwner(c.UserContext(), jobID)
	if err != nil {
		return err
	}
	if err := authorizeOwner(c, owner); err != nil {
		return err
	}

	status, err := h.service.RetryFailedJob(c.UserContext(), jobID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusAccepted).JSON(status)
}

// ============================================================================
// Helpers
// ============================================================================

func authorizeOwner(c *fiber.Ctx, ownerID kernel.UserID) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}
	if authCtx.IsSelf(ownerID) || authCtx.HasScope(auth.ScopeResumesAll) {
		return nil
	}
	return resume.ErrInsufficientPermissions()
}

func parsePaginationOptions(c *fiber.Ctx) kernel.PaginationOptions {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))
	return kernel.PaginationOptions{Page: page, PageSize: pageSize}.Normalize()
}

package matchingapi

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/Abraxas-365/peoplehub/pkg/iam/auth"
	"github.com/Abraxas-365/peoplehub/pkg/kernel"
	"github.com/Abraxas-365/peoplehub/recruitment/matching"
	"github.com/Abraxas-365/peoplehub/recruitment/resume"
)

// Matcher queries the vector index in both directions
type Matcher interface {
	MatchJobsForResume(ctx context.Context, resumeID kernel.ResumeID, k int) ([]matching.JobMatch, error)
	MatchResumesForJob(ctx context.Context, jobID kernel.JobID, k int) ([]matching.ResumeMatch, error)
}

// ResumeOwners resolves who uploaded a resume
type ResumeOwners interface {
	ResumeOwner(ctx context.Context, id kernel.ResumeID) (kernel.UserID, error)
}

type Handlers struct {
	matcher Matcher
	owners  ResumeOwners
}

func NewHandlers(matcher Matcher, owners ResumeOwners) *Handlers {
	return &Handlers{matcher: matcher, owners: owners}
}

// MatchJobsForResume returns the nearest job postings for a resume
// GET /api/resumes/:id/matches?k=
func (h *Handlers) MatchJobsForResume(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	resumeID := kernel.ResumeID(c.Params("id"))
	owner, err := h.owners.ResumeOwner(c.UserContext(), resumeID)
	if err != nil {
		return err
	}
	if !authCtx.IsSelf(owner) && !authCtx.HasScope(auth.ScopeResumesAll) {
		return resume.ErrInsufficientPermissions()
	}

	k, err := parseK(c)
	if err != nil {
		return err
	}

	matches, err := h.matcher.MatchJobsForResume(c.UserContext(), resumeID, k)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"resume_id": resumeID,
		"matches":   matches,
	})
}

// MatchResumesForJob returns the nearest resumes for a job posting
// GET /api/jobs/:id/matches?k=
func (h *Handlers) MatchResumesForJob(c *fiber.Ctx) error {
	jobID := kernel.JobID(c.Params("id"))

	k, err := parseK(c)
	if err != nil {
		return err
	}

	matches, err := h.matcher.MatchResumesForJob(c.UserContext(), jobID, k)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"job_id":  jobID,
		"matches": matches,
	})
}

// parseK reads the optional k query parameter; zero means the configured default
func parseK(c *fiber.Ctx) (int, error) {
	raw := c.Query("k")
	if raw == "" {
		return 0, nil
	}
	k, err := strconv.Atoi(raw)
	if err != nil || k < 1 || k > 100 {
		return 0, matching.ErrInvalidRequest().WithDetail("k", raw)
	}
	return k, nil
}

// RegisterRoutes registers the match routes under the resume and job prefixes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.UnifiedAuthMiddleware) {
	app.Get("/api/resumes/:id/matches",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeMatchingRead),
		handlers.MatchJobsForResume,
	)
	app.Get("/api/jobs/:id/matches",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeMatchingRead),
		authMiddleware.RequireAnyScope(auth.ScopeResumesAll, auth.ScopeApplicationsReview),
		handlers.MatchResumesForJob,
	)
}

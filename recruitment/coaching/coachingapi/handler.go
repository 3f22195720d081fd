package coachingapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Abraxas-365/peoplehub/pkg/iam/auth"
	"github.com/Abraxas-365/peoplehub/recruitment/coaching"
	"github.com/Abraxas-365/peoplehub/recruitment/coaching/coachingsrv"
)

type Handlers struct {
	service *coachingsrv.Service
}

func NewHandlers(service *coachingsrv.Service) *Handlers {
	return &Handlers{service: service}
}

// MockInterview generates a mock interview
// POST /api/coaching/mock-interview
func (h *Handlers) MockInterview(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req coaching.MockInterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return coaching.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	result, err := h.service.MockInterview(c.UserContext(), req, actor)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// SkillGap compares a resume with a job
// POST /api/coaching/skill-gap
func (h *Handlers) SkillGap(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req coaching.ResumeJobRequest
	if err := c.BodyParser(&req); err != nil {
		return coaching.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	result, err := h.service.SkillGap(c.UserContext(), req, actor)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// TailorResume rewrites a resume towards target jobs
// POST /api/coaching/tailor-resume
func (h *Handlers) TailorResume(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req coaching.TailorResumeRequest
	if err := c.BodyParser(&req); err != nil {
		return coaching.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	result, err := h.service.TailorResume(c.UserContext(), req, actor)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// RecommendCourses recommends catalogue courses for a job
// POST /api/coaching/course-recommendations
func (h *Handlers) RecommendCourses(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req coaching.ResumeJobRequest
	if err := c.BodyParser(&req); err != nil {
		return coaching.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	result, err := h.service.RecommendCourses(c.UserContext(), req, actor)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

func actorFrom(c *fiber.Ctx) (coachingsrv.Actor, error) {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return coachingsrv.Actor{}, auth.ErrMissingToken()
	}
	return coachingsrv.Actor{
		UserID:          *authCtx.UserID,
		CanUseAnyResume: authCtx.HasScope(auth.ScopeResumesAll),
	}, nil
}

func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.UnifiedAuthMiddleware) {
	api := app.Group("/api/coaching",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCoachingUse),
	)

	api.Post("/mock-interview", handlers.MockInterview)
	api.Post("/skill-gap", handlers.SkillGap)
	api.Post("/tailor-resume", handlers.TailorResume)
	api.Post("/course-recommendations", handlers.RecommendCourses)
}

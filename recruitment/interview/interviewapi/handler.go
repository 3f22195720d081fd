package interviewapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Abraxas-365/peoplehub/pkg/iam/auth"
	"github.com/Abraxas-365/peoplehub/pkg/kernel"
	"github.com/Abraxas-365/peoplehub/recruitment/interview"
	"github.com/Abraxas-365/peoplehub/recruitment/interview/interviewsrv"
)

type Handlers struct {
	service *interviewsrv.InterviewService
}

func NewHandlers(service *interviewsrv.InterviewService) *Handlers {
	return &Handlers{service: service}
}

// ScheduleInterview books an interview for an application
// POST /api/interviews
func (h *Handlers) ScheduleInterview(c *fiber.Ctx) error {
	var req interview.ScheduleInterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return interview.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	iv, err := h.service.ScheduleInterview(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(iv)
}

// GetInterview retrieves an interview by ID
// GET /api/interviews/:id
func (h *Handlers) GetInterview(c *fiber.Ctx) error {
	iv, err := h.service.GetInterview(c.UserContext(), kernel.InterviewID(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(iv)
}

// SubmitFeedback completes an interview
// PUT /api/interviews/:id/feedback
func (h *Handlers) SubmitFeedback(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var req interview.FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return interview.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	iv, err := h.service.SubmitFeedback(c.UserContext(), kernel.InterviewID(c.Params("id")), req, interviewsrv.Actor{
		UserID:       *authCtx.UserID,
		CanManageAll: authCtx.HasScope(auth.ScopeInterviewsAll),
	})
	if err != nil {
		return err
	}
	return c.JSON(iv)
}

// CancelInterview calls off a scheduled interview
// PUT /api/interviews/:id/cancel
func (h *Handlers) CancelInterview(c *fiber.Ctx) error {
	var req interview.CancelInterviewRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return interview.ErrInvalidRequest().WithDetail("parse_error", err.Error())
		}
	}

	iv, err := h.service.CancelInterview(c.UserContext(), kernel.InterviewID(c.Params("id")), req)
	if err != nil {
		return err
	}
	return c.JSON(iv)
}

// ListApplicationInterviews lists the interviews of an application
// GET /api/applications/:id/interviews
func (h *Handlers) ListApplicationInterviews(c *fiber.Ctx) error {
	items, err := h.service.ListByApplication(c.UserContext(), kernel.ApplicationID(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"items": items})
}

func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.UnifiedAuthMiddleware) {
	api := app.Group("/api/interviews", authMiddleware.Authenticate())

	api.Post("/", authMiddleware.RequireScope(auth.ScopeInterviewsSchedule), handlers.ScheduleInterview)
	api.Get("/:id", authMiddleware.RequireScope(auth.ScopeInterviewsRead), handlers.GetInterview)
	api.Put("/:id/feedback", authMiddleware.RequireScope(auth.ScopeInterviewsConduct), handlers.SubmitFeedback)
	api.Put("/:id/cancel", authMiddleware.RequireScope(auth.ScopeInterviewsSchedule), handlers.CancelInterview)

	app.Get("/api/applications/:id/interviews",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeInterviewsRead),
		handlers.ListApplicationInterviews,
	)
}

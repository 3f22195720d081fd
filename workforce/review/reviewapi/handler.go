package reviewapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Abraxas-365/peoplehub/pkg/iam/auth"
	"github.com/Abraxas-365/peoplehub/pkg/kernel"
	"github.com/Abraxas-365/peoplehub/workforce/review"
	"github.com/Abraxas-365/peoplehub/workforce/review/reviewsrv"
)

type Handlers struct {
	service *reviewsrv.ReviewService
}

func NewHandlers(service *reviewsrv.ReviewService) *Handlers {
	return &Handlers{service: service}
}

// CreateReview writes a review of the employee
// POST /api/users/:id/performance-reviews
func (h *Handlers) CreateReview(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req review.CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return review.ErrInvalidReview().WithDetail("parse_error", err.Error())
	}
	req.EmployeeID = kernel.UserID(c.Params("id"))

	r, err := h.service.CreateReview(c.UserContext(), req, actor)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(r)
}

// ListReviews lists an employee's reviews
// GET /api/users/:id/performance-reviews?type=
func (h *Handlers) ListReviews(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	employeeID := kernel.UserID(c.Params("id"))
	items, err := h.service.ListReviews(c.UserContext(), employeeID, review.Type(c.Query("type")), actor)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"employee_id": employeeID, "items": items})
}

// SummarizeReviews summarizes the latest self and manager reviews
// POST /api/users/:id/performance-reviews/summary
func (h *Handlers) SummarizeReviews(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req review.SummarizeRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return review.ErrInvalidReview().WithDetail("parse_error", err.Error())
		}
	}

	resp, err := h.service.Summarize(c.UserContext(), kernel.UserID(c.Params("id")), req, actor)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func actorFrom(c *fiber.Ctx) (reviewsrv.Actor, error) {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return reviewsrv.Actor{}, auth.ErrMissingToken()
	}
	return reviewsrv.Actor{
		UserID:    *authCtx.UserID,
		CanManage: authCtx.HasScope(auth.ScopeReviewsAll),
	}, nil
}

func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.UnifiedAuthMiddleware) {
	api := app.Group("/api/users/:id/performance-reviews", authMiddleware.Authenticate())

	api.Get("/", authMiddleware.RequireScope(auth.ScopeReviewsRead), handlers.ListReviews)
	api.Post("/", authMiddleware.RequireScope(auth.ScopeReviewsWrite), handlers.CreateReview)
	api.Post("/summary", authMiddleware.RequireScope(auth.ScopeReviewsRead), handlers.SummarizeReviews)
}

package trainingapi

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/Abraxas-365/peoplehub/pkg/iam/auth"
	"github.com/Abraxas-365/peoplehub/pkg/kernel"
	"github.com/Abraxas-365/peoplehub/workforce/training"
	"github.com/Abraxas-365/peoplehub/workforce/training/trainingsrv"
)

type Handlers struct {
	service *trainingsrv.TrainingService
}

func NewHandlers(service *trainingsrv.TrainingService) *Handlers {
	return &Handlers{service: service}
}

// CreateTraining creates a training
// POST /api/trainings
func (h *Handlers) CreateTraining(c *fiber.Ctx) error {
	var req training.CreateTrainingRequest
	if err := c.BodyParser(&req); err != nil {
		return training.ErrInvalidTraining().WithDetail("parse_error", err.Error())
	}

	t, err := h.service.CreateTraining(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(t)
}

// ListTrainings lists trainings
// GET /api/trainings
func (h *Handlers) ListTrainings(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))

	result, err := h.service.ListTrainings(c.UserContext(), kernel.PaginationOptions{Page: page, PageSize: pageSize})
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// GetTraining retrieves a training by ID
// GET /api/trainings/:id
func (h *Handlers) GetTraining(c *fiber.Ctx) error {
	t, err := h.service.GetTraining(c.UserContext(), kernel.TrainingID(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(t)
}

// UpdateTraining updates a training
// PUT /api/trainings/:id
func (h *Handlers) UpdateTraining(c *fiber.Ctx) error {
	var req training.UpdateTrainingRequest
	if err := c.BodyParser(&req); err != nil {
		return training.ErrInvalidTraining().WithDetail("parse_error", err.Error())
	}

	t, err := h.service.UpdateTraining(c.UserContext(), kernel.TrainingID(c.Params("id")), req)
	if err != nil {
		return err
	}
	return c.JSON(t)
}

// DeleteTraining deletes a training with its courses
// DELETE /api/trainings/:id
func (h *Handlers) DeleteTraining(c *fiber.Ctx) error {
	if err := h.service.DeleteTraining(c.UserContext(), kernel.TrainingID(c.Params("id"))); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddCourse adds a course to a training
// POST /api/trainings/:id/courses
func (h *Handlers) AddCourse(c *fiber.Ctx) error {
	var req training.AddCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return training.ErrInvalidTraining().WithDetail("parse_error", err.Error())
	}

	course, err := h.service.AddCourse(c.UserContext(), kernel.TrainingID(c.Params("id")), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(course)
}

// ListCourses lists the courses of a training
// GET /api/trainings/:id/courses
func (h *Handlers) ListCourses(c *fiber.Ctx) error {
	courses, err := h.service.ListCourses(c.UserContext(), kernel.TrainingID(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"items": courses})
}

// Enroll enrolls a user in a course, defaulting to the caller
// POST /api/courses/:id/enroll
func (h *Handlers) Enroll(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req training.EnrollRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return training.ErrInvalidTraining().WithDetail("parse_error", err.Error())
		}
	}

	e, err := h.service.Enroll(c.UserContext(), kernel.CourseID(c.Params("id")), req, actor)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(e)
}

// UpdateProgress records progress on an enrollment
// PUT /api/enrollments/:id/progress
func (h *Handlers) UpdateProgress(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req training.UpdateProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return training.ErrInvalidProgress().WithDetail("parse_error", err.Error())
	}

	e, err := h.service.UpdateProgress(c.UserContext(), kernel.EnrollmentID(c.Params("id")), req, actor)
	if err != nil {
		return err
	}
	return c.JSON(e)
}

// ListUserEnrollments lists a user's enrollments
// GET /api/users/:id/enrollments
func (h *Handlers) ListUserEnrollments(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	userID := kernel.UserID(c.Params("id"))
	if !authCtx.IsSelf(userID) && !authCtx.HasScope(auth.ScopeTrainingsAll) {
		return training.ErrInsufficientPermissions()
	}

	items, err := h.service.ListUserEnrollments(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"user_id": userID, "items": items})
}

func actorFrom(c *fiber.Ctx) (trainingsrv.Actor, error) {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return trainingsrv.Actor{}, auth.ErrMissingToken()
	}
	return trainingsrv.Actor{
		UserID:       *authCtx.UserID,
		CanManageAll: authCtx.HasScope(auth.ScopeTrainingsAll),
	}, nil
}

// RegisterRoutes registers training, course and enrollment routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.UnifiedAuthMiddleware) {
	trainings := app.Group("/api/trainings", authMiddleware.Authenticate())

	trainings.Get("/", authMiddleware.RequireScope(auth.ScopeTrainingsRead), handlers.ListTrainings)
	trainings.Post("/", authMiddleware.RequireScope(auth.ScopeTrainingsWrite), handlers.CreateTraining)
	trainings.Get("/:id", authMiddleware.RequireScope(auth.ScopeTrainingsRead), handlers.GetTraining)
	trainings.Put("/:id", authMiddleware.RequireScope(auth.ScopeTrainingsWrite), handlers.UpdateTraining)
	trainings.Delete("/:id", authMiddleware.RequireScope(auth.ScopeTrainingsWrite), handlers.DeleteTraining)
	trainings.Get("/:id/courses", authMiddleware.RequireScope(auth.ScopeTrainingsRead), handlers.ListCourses)
	trainings.Post("/:id/courses", authMiddleware.RequireScope(auth.ScopeTrainingsWrite), handlers.AddCourse)

	app.Post("/api/courses/:id/enroll",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeTrainingsEnroll),
		handlers.Enroll,
	)
	app.Put("/api/enrollments/:id/progress",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeTrainingsEnroll),
		handlers.UpdateProgress,
	)
	app.Get("/api/users/:id/enrollments",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeTrainingsRead),
		handlers.ListUserEnrollments,
	)
}

package notificationapi

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/Abraxas-365/peoplehub/pkg/errx"
	"github.com/Abraxas-365/peoplehub/pkg/iam/auth"
	"github.com/Abraxas-365/peoplehub/pkg/kernel"
	"github.com/Abraxas-365/peoplehub/workforce/notification"
	"github.com/Abraxas-365/peoplehub/workforce/notification/notificationsrv"
)

type Handlers struct {
	service *notificationsrv.NotificationService
}

func NewHandlers(service *notificationsrv.NotificationService) *Handlers {
	return &Handlers{service: service}
}

// ListNotifications lists a user's notifications
// GET /api/users/:id/notifications?unread=
func (h *Handlers) ListNotifications(c *fiber.Ctx) error {
	userID := kernel.UserID(c.Params("id"))
	if err := requireSelfOr(c, userID, auth.ScopeUsersAll); err != nil {
		return err
	}

	unread, _ := strconv.ParseBool(c.Query("unread", "false"))
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))

	items, err := h.service.List(c.UserContext(), notification.ListNotificationsRequest{
		RecipientID: userID,
		UnreadOnly:  unread,
		Pagination:  kernel.PaginationOptions{Page: page, PageSize: pageSize}.Normalize(),
	})
	if err != nil {
		return err
	}
	return c.JSON(items)
}

// SendNotification sends a notification to a user
// POST /api/users/:id/notifications
func (h *Handlers) SendNotification(c *fiber.Ctx) error {
	var req notification.NotifyRequest
	if err := c.BodyParser(&req); err != nil {
		return errx.New("invalid request body", errx.TypeValidation).WithDetail("parse_error", err.Error())
	}
	req.RecipientID = kernel.UserID(c.Params("id"))

	n, err := h.service.Notify(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(n)
}

// MarkRead marks one of the caller's notifications read
// PUT /api/users/:id/notifications/:nid/read
func (h *Handlers) MarkRead(c *fiber.Ctx) error {
	userID := kernel.UserID(c.Params("id"))
	if err := requireSelfOr(c, userID, auth.ScopeUsersAll); err != nil {
		return err
	}

	n, err := h.service.MarkRead(c.UserContext(), userID, kernel.NotificationID(c.Params("nid")))
	if err != nil {
		return err
	}
	return c.JSON(n)
}

func requireSelfOr(c *fiber.Ctx, userID kernel.UserID, scope string) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}
	if authCtx.IsSelf(userID) || authCtx.HasScope(scope) {
		return nil
	}
	return notification.ErrInsufficientPermissions().WithDetail("user_id", userID.String())
}

func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.UnifiedAuthMiddleware) {
	api := app.Group("/api/users/:id/notifications", authMiddleware.Authenticate())

	api.Get("/", authMiddleware.RequireScope(auth.ScopeNotificationsRead), handlers.ListNotifications)
	api.Post("/", authMiddleware.RequireScope(auth.ScopeNotificationsWrite), handlers.SendNotification)
	api.Put("/:nid/read", authMiddleware.RequireScope(auth.ScopeNotificationsRead), handlers.MarkRead)
}

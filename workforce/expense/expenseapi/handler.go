package expenseapi

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Abraxas-365/peoplehub/pkg/errx"
	"github.com/Abraxas-365/peoplehub/pkg/iam/auth"
	"github.com/Abraxas-365/peoplehub/pkg/kernel"
	"github.com/Abraxas-365/peoplehub/workforce/expense"
	"github.com/Abraxas-365/peoplehub/workforce/expense/expensesrv"
)

type Handlers struct {
	service *expensesrv.ExpenseService
}

func NewHandlers(service *expensesrv.ExpenseService) *Handlers {
	return &Handlers{service: service}
}

// paginationResponse is the page metadata of expense listings
type paginationResponse struct {
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
	TotalPages  int `json:"total_pages"`
	Total       int `json:"total"`
}

func success(data any) fiber.Map {
	return fiber.Map{"success": true, "data": data}
}

// SubmitExpense files an expense from a form or JSON body with an optional receipt
// POST /api/expenses/submit
func (h *Handlers) SubmitExpense(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req expense.SubmitExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return expense.ErrInvalidExpense().WithDetail("parse_error", err.Error())
	}

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		if file, err := c.FormFile("receipt"); err == nil {
			f, err := file.Open()
			if err != nil {
				return errx.Wrap(err, "failed to open receipt", errx.TypeInternal)
			}
			defer f.Close()

			data, err := io.ReadAll(f)
			if err != nil {
				return errx.Wrap(err, "failed to read receipt", errx.TypeInternal)
			}
			req.ReceiptName = file.Filename
			req.ReceiptData = data
		}
	}

	resp, err := h.service.Submit(c.UserContext(), req, actor)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(success(resp))
}

// ListExpenses lists expenses
// GET /api/expenses?status=&user_id=&page=&limit=
func (h *Handlers) ListExpenses(c *fiber.Ctx) error {
	return h.list(c, expense.Status(c.Query("status")))
}

// ListPendingExpenses lists expenses awaiting a decision
// GET /api/expenses/pending
func (h *Handlers) ListPendingExpenses(c *fiber.Ctx) error {
	return h.list(c, expense.StatusPending)
}

func (h *Handlers) list(c *fiber.Ctx, status expense.Status) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	result, err := h.service.ListExpenses(c.UserContext(), expense.ListExpensesRequest{
		UserID:     kernel.UserID(c.Query("user_id")),
		Status:     status,
		Pagination: kernel.PaginationOptions{Page: page, PageSize: limit},
	}, actor)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": result.Items,
		"pagination": paginationResponse{
			CurrentPage: result.Page.Number,
			PerPage:     result.Page.Size,
			TotalPages:  result.Page.Pages,
			Total:       result.Page.Total,
		},
	})
}

// GetReports aggregates expenses by status and category
// GET /api/expenses/reports?user_id=
func (h *Handlers) GetReports(c *fiber.Ctx) error {
	report, err := h.service.Report(c.UserContext(), kernel.UserID(c.Query("user_id")))
	if err != nil {
		return err
	}
	return c.JSON(report)
}

// PolicyCheck evaluates an expense against the expense policy
// GET /api/expenses/policy-check/:id
func (h *Handlers) PolicyCheck(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	result, err := h.service.PolicyCheck(c.UserContext(), kernel.ExpenseID(c.Params("id")), actor)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// GetExpense retrieves an expense by ID
// GET /api/expenses/:id
func (h *Handlers) GetExpense(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	e, err := h.service.GetExpense(c.UserContext(), kernel.ExpenseID(c.Params("id")), actor)
	if err != nil {
		return err
	}
	return c.JSON(e)
}

// ApproveExpense approves a pending expense
// PUT /api/expenses/:id/approve
func (h *Handlers) ApproveExpense(c *fiber.Ctx) error {
	return h.decide(c, h.service.Approve)
}

// RejectExpense rejects a pending expense
// PUT /api/expenses/:id/reject
func (h *Handlers) RejectExpense(c *fiber.Ctx) error {
	return h.decide(c, h.service.Reject)
}

type decisionFunc func(ctx context.Context, id kernel.ExpenseID, req expense.DecisionRequest, actor expensesrv.Actor) (*expense.Expense, error)

func (h *Handlers) decide(c *fiber.Ctx, fn decisionFunc) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req expense.DecisionRequest
	if err := c.BodyParser(&req); err != nil {
		return expense.ErrInvalidExpense().WithDetail("parse_error", err.Error())
	}

	e, err := fn(c.UserContext(), kernel.ExpenseID(c.Params("id")), req, actor)
	if err != nil {
		return err
	}
	return c.JSON(success(e))
}

// UpdateExpense replaces the items of a pending expense
// PUT /api/expenses/:id
func (h *Handlers) UpdateExpense(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req expense.UpdateExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return expense.ErrInvalidExpense().WithDetail("parse_error", err.Error())
	}

	e, err := h.service.UpdateExpense(c.UserContext(), kernel.ExpenseID(c.Params("id")), req, actor)
	if err != nil {
		return err
	}
	return c.JSON(success(e))
}

// DeleteExpense deletes a pending expense
// DELETE /api/expenses/:id
func (h *Handlers) DeleteExpense(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteExpense(c.UserContext(), kernel.ExpenseID(c.Params("id")), actor); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "Expense deleted"})
}

func actorFrom(c *fiber.Ctx) (expensesrv.Actor, error) {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return expensesrv.Actor{}, auth.ErrMissingToken()
	}
	return expensesrv.Actor{
		UserID:       *authCtx.UserID,
		CanApprove:   authCtx.HasScope(auth.ScopeExpensesApprove),
		CanManageAll: authCtx.HasScope(auth.ScopeExpensesAll),
	}, nil
}

// RegisterRoutes registers expense routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.UnifiedAuthMiddleware) {
	api := app.Group("/api/expenses", authMiddleware.Authenticate())

	api.Post("/submit", authMiddleware.RequireScope(auth.ScopeExpensesSubmit), handlers.SubmitExpense)
	api.Get("/", authMiddleware.RequireScope(auth.ScopeExpensesRead), handlers.ListExpenses)
	api.Get("/pending", authMiddleware.RequireScope(auth.ScopeExpensesApprove), handlers.ListPendingExpenses)
	api.Get("/reports", authMiddleware.RequireScope(auth.ScopeExpensesReports), handlers.GetReports)
	api.Get("/policy-check/:id", authMiddleware.RequireScope(auth.ScopeExpensesRead), handlers.PolicyCheck)
	api.Get("/:id", authMiddleware.RequireScope(auth.ScopeExpensesRead), handlers.GetExpense)
	api.Put("/:id/approve", authMiddleware.RequireScope(auth.ScopeExpensesApprove), handlers.ApproveExpense)
	api.Put("/:id/reject", authMiddleware.RequireScope(auth.ScopeExpensesApprove), handlers.RejectExpense)
	api.Put("/:id", authMiddleware.RequireScope(auth.ScopeExpensesSubmit), handlers.UpdateExpense)
	api.Delete("/:id", authMiddleware.RequireScope(auth.ScopeExpensesSubmit), handlers.DeleteExpense)
}

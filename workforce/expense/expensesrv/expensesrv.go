package expensesrv

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Abraxas-365/peoplehub/pkg/errx"
	"github.com/Abraxas-365/peoplehub/pkg/fsx"
	"github.com/Abraxas-365/peoplehub/pkg/iam/user"
	"github.com/Abraxas-365/peoplehub/pkg/kernel"
	"github.com/Abraxas-365/peoplehub/pkg/logx"
	"github.com/Abraxas-365/peoplehub/workforce/expense"
	"github.com/Abraxas-365/peoplehub/workforce/notification"
)

var receiptExtensions = map[string]bool{
	".pdf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// Notifier sends best-effort notifications
type Notifier interface {
	NotifyQuietly(ctx context.Context, recipient kernel.UserID, kind notification.Kind, message string)
}

// Actor is the caller of an expense operation
type Actor struct {
	UserID kernel.UserID
	// CanApprove lets the actor see and decide other users' expenses
	CanApprove bool
	// CanManageAll also lets the actor submit, edit and delete for others
	CanManageAll bool
}

func (a Actor) canView(e *expense.Expense) bool {
	return e.BelongsTo(a.UserID) || a.CanApprove || a.CanManageAll
}

func (a Actor) canEdit(e *expense.Expense) bool {
	return e.BelongsTo(a.UserID) || a.CanManageAll
}

type ExpenseService struct {
	repo     expense.Repository
	userRepo user.Repository
	files    fsx.FileSystem
	notifier Notifier
	policy   expense.Policy
}

func NewExpenseService(
	repo expense.Repository,
	userRepo user.Repository,
	files fsx.FileSystem,
	notifier Notifier,
	policy expense.Policy,
) *ExpenseService {
	return &ExpenseService{
		repo:     repo,
		userRepo: userRepo,
		files:    files,
		notifier: notifier,
		policy:   policy,
	}
}

// Submit files a single-item expense, storing the receipt when one is attached
func (s *ExpenseService) Submit(ctx context.Context, req expense.SubmitExpenseRequest, actor Actor) (*expense.SubmitExpenseResponse, error) {
	if req.UserID.IsEmpty() {
		req.UserID = actor.UserID
	}
	if req.UserID != actor.UserID && !actor.CanManageAll {
		return nil, expense.ErrInsufficientPermissions()
	}

	var missing []string
	if strings.TrimSpace(req.Category) == "" {
		missing = append(missing, "category")
	}
	if req.Amount == 0 {
		missing = append(missing, "amount")
	}
	if strings.TrimSpace(req.Description) == "" {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return nil, expense.ErrInvalidExpense().WithDetail("missing", missing)
	}
	if req.Amount < 0 {
		return nil, expense.ErrInvalidExpense().WithDetail("field", "amount").WithDetail("amount", req.Amount)
	}

	ext := strings.ToLower(filepath.Ext(req.ReceiptName))
	if len(req.ReceiptData) > 0 && !receiptExtensions[ext] {
		return nil, expense.ErrInvalidReceipt().WithDetail("file_name", req.ReceiptName)
	}

	if _, err := s.userRepo.GetByID(ctx, req.UserID); err != nil {
		return nil, err
	}

	now := time.Now()
	e := &expense.Expense{
		ID:     kernel.NewExpenseID(uuid.NewString()),
		UserID: req.UserID,
		TripID: strings.TrimSpace(req.TripID),
		Items: []expense.Item{{
			Category:    strings.TrimSpace(req.Category),
			Amount:      req.Amount,
			Description: strings.TrimSpace(req.Description),
			ExpenseDate: req.ExpenseDate,
		}},
		Total:     req.Amount,
		Status:    expense.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if len(req.ReceiptData) > 0 {
		path := s.files.Join("receipts", req.UserID.String(), e.ID.String()+ext)
		if err := s.files.WriteFile(ctx, path, req.ReceiptData); err != nil {
			return nil, expense.ErrReceiptStoreFailed().WithCause(err).WithDetail("path", path)
		}
		e.ReceiptURL = path
	}

	if err := s.repo.Create(ctx, e); err != nil {
		if e.ReceiptURL != "" {
			_ = s.files.DeleteFile(ctx, e.ReceiptURL)
		}
		return nil, errx.Wrap(err, "failed to create expense", errx.TypeInternal)
	}

	return &expense.SubmitExpenseResponse{ExpenseID: e.ID, Status: e.Status}, nil
}

func (s *ExpenseService) GetExpense(ctx context.Context, id kernel.ExpenseID, actor Actor) (*expense.Expense, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.canView(e) {
		return nil, expense.ErrInsufficientPermissions()
	}
	return e, nil
}

// ListExpenses pages expenses. Actors who cannot approve only see their own.
func (s *ExpenseService) ListExpenses(ctx context.Context, req expense.ListExpensesRequest, actor Actor) (*kernel.Paginated[expense.Expense], error) {
	if req.Status != "" && !req.Status.IsValid() {
		return nil, expense.ErrInvalidExpense().WithDetail("status", req.Status)
	}
	if !actor.CanApprove && !actor.CanManageAll {
		if !req.UserID.IsEmpty() && req.UserID != actor.UserID {
			return nil, expense.ErrInsufficientPermissions()
		}
		req.UserID = actor.UserID
	}
	req.Pagination = req.Pagination.Normalize()
	return s.repo.List(ctx, req)
}

// Report aggregates expenses by status and category, optionally for one user
func (s *ExpenseService) Report(ctx context.Context, userID kernel.UserID) (*expense.Report, error) {
	totals, err := s.repo.TotalsByStatus(ctx, userID)
	if err != nil {
		return nil, err
	}
	categories, err := s.repo.TotalsByCategory(ctx, userID)
	if err != nil {
		return nil, err
	}
	return expense.BuildReport(totals, categories), nil
}

// PolicyCheck evaluates an expense against the configured policy
func (s *ExpenseService) PolicyCheck(ctx context.Context, id kernel.ExpenseID, actor Actor) (*expense.PolicyResult, error) {
	e, err := s.GetExpense(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	result := s.policy.Check(e)
	return &result, nil
}

// Approve approves a pending expense and notifies the submitter
func (s *ExpenseService) Approve(ctx context.Context, id kernel.ExpenseID, req expense.DecisionRequest, actor Actor) (*expense.Expense, error) {
	e, err := s.loadForDecision(ctx, id, req, actor)
	if err != nil {
		return nil, err
	}
	if err := e.Approve(req.ApproverID, strings.TrimSpace(req.Comments)); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}

	logx.Infof("Expense %s approved by %s", e.ID, req.ApproverID)
	s.notifier.NotifyQuietly(ctx, e.UserID, notification.KindExpenseApproved,
		fmt.Sprintf("Your expense of %.2f has been approved", e.Total))
	return e, nil
}

// Reject rejects a pending expense with a reason and notifies the submitter
func (s *ExpenseService) Reject(ctx context.Context, id kernel.ExpenseID, req expense.DecisionRequest, actor Actor) (*expense.Expense, error) {
	if strings.TrimSpace(req.Reason) == "" {
		return nil, expense.ErrInvalidExpense().WithDetail("field", "reason")
	}
	e, err := s.loadForDecision(ctx, id, req, actor)
	if err != nil {
		return nil, err
	}
	if err := e.Reject(req.ApproverID, req.Reason); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}

	logx.Infof("Expense %s rejected by %s", e.ID, req.ApproverID)
	s.notifier.NotifyQuietly(ctx, e.UserID, notification.KindExpenseRejected,
		fmt.Sprintf("Your expense of %.2f was rejected: %s", e.Total, e.RejectReason))
	return e, nil
}

func (s *ExpenseService) loadForDecision(ctx context.Context, id kernel.ExpenseID, req expense.DecisionRequest, actor Actor) (*expense.Expense, error) {
	if req.ApproverID.IsEmpty() {
		return nil, expense.ErrInvalidExpense().WithDetail("field", "approver_id")
	}
	if req.ApproverID != actor.UserID && !actor.CanManageAll {
		return nil, expense.ErrInsufficientPermissions().WithDetail("approver_id", req.ApproverID.String())
	}
	if _, err := s.userRepo.GetByID(ctx, req.ApproverID); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// UpdateExpense replaces the items of a pending expense
func (s *ExpenseService) UpdateExpense(ctx context.Context, id kernel.ExpenseID, req expense.UpdateExpenseRequest, actor Actor) (*expense.Expense, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.canEdit(e) {
		return nil, expense.ErrInsufficientPermissions()
	}
	if err := e.ReplaceItems(req.Items, req.Total); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// DeleteExpense removes a pending expense and its receipt
func (s *ExpenseService) DeleteExpense(ctx context.Context, id kernel.ExpenseID, actor Actor) error {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.canEdit(e) {
		return expense.ErrInsufficientPermissions()
	}
	if !e.IsPending() {
		return expense.ErrNotPending().WithDetail("status", e.Status)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if e.ReceiptURL != "" {
		if err := s.files.DeleteFile(ctx, e.ReceiptURL); err != nil {
			logx.Warnf("Failed to delete receipt %s: %v", e.ReceiptURL, err)
		}
	}
	return nil
}

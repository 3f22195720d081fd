package expense

import (
	"math"
	"strings"
	"time"

	"github.com/Abraxas-365/peoplehub/pkg/kernel"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// CategoryOther is the policy bucket for categories without their own limit
const CategoryOther = "other"

// Item is one line of an expense report
type Item struct {
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	ExpenseDate string  `json:"expense_date,omitempty"`
}

// Expense is a report of one or more items awaiting or past approval
type Expense struct {
	ID           kernel.ExpenseID `json:"id"`
	UserID       kernel.UserID    `json:"user_id"`
	TripID       string           `json:"trip_id,omitempty"`
	Items        []Item           `json:"items"`
	Total        float64          `json:"total"`
	Status       Status           `json:"status"`
	ReceiptURL   string           `json:"receipt_url,omitempty"`
	ApproverID   *kernel.UserID   `json:"approver_id,omitempty"`
	Comments     string           `json:"comments,omitempty"`
	RejectReason string           `json:"reject_reason,omitempty"`
	DecidedAt    *time.Time       `json:"decided_at,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

func (e *Expense) IsPending() bool {
	return e.Status == StatusPending
}

func (e *Expense) BelongsTo(userID kernel.UserID) bool {
	return e.UserID == userID
}

// Approve records the approver's decision on a pending expense
func (e *Expense) Approve(approver kernel.UserID, comments string) error {
	if err := e.decide(approver); err != nil {
		return err
	}
	e.Status = StatusApproved
	e.Comments = comments
	return nil
}

// Reject records a rejection with its reason
func (e *Expense) Reject(approver kernel.UserID, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrInvalidExpense().WithDetail("field", "reason")
	}
	if err := e.decide(approver); err != nil {
		return err
	}
	e.Status = StatusRejected
	e.RejectReason = reason
	return nil
}

func (e *Expense) decide(approver kernel.UserID) error {
	if !e.IsPending() {
		return ErrNotPending().WithDetail("status", e.Status)
	}
	if e.BelongsTo(approver) {
		return ErrSelfApproval()
	}
	now := time.Now()
	e.ApproverID = &approver
	e.DecidedAt = &now
	e.UpdatedAt = now
	return nil
}

// ReplaceItems swaps the items of a pending expense. total must match the
// sum of the items to the cent.
func (e *Expense) ReplaceItems(items []Item, total float64) error {
	if !e.IsPending() {
		return ErrNotPending().WithDetail("status", e.Status)
	}
	if err := ValidateItems(items); err != nil {
		return err
	}
	if math.Abs(SumItems(items)-total) >= 0.01 {
		return ErrInvalidExpense().
			WithDetail("field", "total").
			WithDetail("items_sum", SumItems(items))
	}
	e.Items = items
	e.Total = total
	e.UpdatedAt = time.Now()
	return nil
}

// ValidateItems requires at least one item, each with a category and a
// positive amount
func ValidateItems(items []Item) error {
	if len(items) == 0 {
		return ErrInvalidExpense().WithDetail("field", "items")
	}
	for i, it := range items {
		if strings.TrimSpace(it.Category) == "" {
			return ErrInvalidExpense().WithDetail("field", "category").WithDetail("item", i)
		}
		if it.Amount <= 0 {
			return ErrInvalidExpense().WithDetail("field", "amount").WithDetail("item", i)
		}
	}
	return nil
}

func SumItems(items []Item) float64 {
	var sum float64
	for _, it := range items {
		sum += it.Amount
	}
	return sum
}

// NormalizeCategory lower-cases and trims a category for policy lookups
func NormalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}

package expense

import "github.com/Abraxas-365/peoplehub/pkg/kernel"

// SubmitExpenseRequest - DTO for submitting a single-item expense. Accepted as
// a form or a JSON body.
type SubmitExpenseRequest struct {
	UserID      kernel.UserID `json:"user_id" form:"user_id"`
	Category    string        `json:"category" form:"category"`
	Amount      float64       `json:"amount" form:"amount"`
	Description string        `json:"description" form:"description"`
	TripID      string        `json:"trip_id" form:"trip_id"`
	ExpenseDate string        `json:"expense_date" form:"expense_date"`

	ReceiptName string `json:"-" form:"-"`
	ReceiptData []byte `json:"-" form:"-"`
}

// SubmitExpenseResponse - data returned after a submission
type SubmitExpenseResponse struct {
	ExpenseID kernel.ExpenseID `json:"expense_id"`
	Status    Status           `json:"status"`
}

// DecisionRequest - DTO for approving or rejecting an expense
type DecisionRequest struct {
	ApproverID kernel.UserID `json:"approver_id"`
	Comments   string        `json:"comments,omitempty"`
	Reason     string        `json:"reason,omitempty"`
}

// UpdateExpenseRequest - DTO for replacing the items of a pending expense
type UpdateExpenseRequest struct {
	Items []Item  `json:"items"`
	Total float64 `json:"total"`
}

// ListExpensesRequest - filters for listing expenses
type ListExpensesRequest struct {
	UserID     kernel.UserID
	Status     Status
	Pagination kernel.PaginationOptions
}

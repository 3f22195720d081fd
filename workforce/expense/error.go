package expense

import (
	"net/http"

	"github.com/Abraxas-365/peoplehub/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("EXPENSE")

var (
	CodeExpenseNotFound         = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Expense not found")
	CodeInvalidExpense          = ErrRegistry.Register("INVALID", errx.TypeValidation, http.StatusBadRequest, "Invalid expense data")
	CodeNotPending              = ErrRegistry.Register("NOT_PENDING", errx.TypeBusiness, http.StatusBadRequest, "Expense is no longer pending")
	CodeSelfApproval            = ErrRegistry.Register("SELF_APPROVAL", errx.TypeAuthorization, http.StatusForbidden, "Expenses cannot be decided by their submitter")
	CodeInvalidReceipt          = ErrRegistry.Register("INVALID_RECEIPT", errx.TypeValidation, http.StatusBadRequest, "Receipt must be a PDF or an image")
	CodeReceiptStoreFailed      = ErrRegistry.Register("RECEIPT_STORE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to store receipt")
	CodeInsufficientPermissions = ErrRegistry.Register("INSUFFICIENT_PERMISSIONS", errx.TypeAuthorization, http.StatusForbidden, "Insufficient permissions")
)

func ErrExpenseNotFound() *errx.Error {
	return ErrRegistry.New(CodeExpenseNotFound)
}

func ErrInvalidExpense() *errx.Error {
	return ErrRegistry.New(CodeInvalidExpense)
}

func ErrNotPending() *errx.Error {
	return ErrRegistry.New(CodeNotPending)
}

func ErrSelfApproval() *errx.Error {
	return ErrRegistry.New(CodeSelfApproval)
}

func ErrInvalidReceipt() *errx.Error {
	return ErrRegistry.New(CodeInvalidReceipt)
}

func ErrReceiptStoreFailed() *errx.Error {
	return ErrRegistry.New(CodeReceiptStoreFailed)
}

func ErrInsufficientPermissions() *errx.Error {
	return ErrRegistry.New(CodeInsufficientPermissions)
}

package expense

import (
	"context"

	"github.com/Abraxas-365/peoplehub/pkg/kernel"
)

type Repository interface {
	Create(ctx context.Context, e *Expense) error
	Update(ctx context.Context, e *Expense) error
	GetByID(ctx context.Context, id kernel.ExpenseID) (*Expense, error)
	Delete(ctx context.Context, id kernel.ExpenseID) error
	List(ctx context.Context, req ListExpensesRequest) (*kernel.Paginated[Expense], error)

	// TotalsByStatus and TotalsByCategory aggregate all expenses, or a
	// single user's when userID is set
	TotalsByStatus(ctx context.Context, userID kernel.UserID) ([]StatusTotal, error)
	TotalsByCategory(ctx context.Context, userID kernel.UserID) (map[string]float64, error)
}

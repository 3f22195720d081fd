package review

import (
	"context"

	"github.com/Abraxas-365/peoplehub/pkg/kernel"
)

type Repository interface {
	Create(ctx context.Context, r *Review) error
	// ListByEmployee returns reviews newest first, optionally of one type
	ListByEmployee(ctx context.Context, employeeID kernel.UserID, reviewType Type) ([]Review, error)
	// LatestByType returns nil without error when the employee has no such review
	LatestByType(ctx context.Context, employeeID kernel.UserID, reviewType Type) (*Review, error)
}

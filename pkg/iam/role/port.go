package role

import (
	"context"

	"github.com/Abraxas-365/peoplehub/pkg/kernel"
)

// Repository defines the interface for role persistence
type Repository interface {
	// Create persists a new role
	Create(ctx context.Context, r *Role) error

	// Update updates an existing role
	Update(ctx context.Context, id kernel.RoleID, r *Role) error

	// GetByID retrieves a role by ID
	GetByID(ctx context.Context, id kernel.RoleID) (*Role, error)

	// GetByName retrieves a role by its unique name
	GetByName(ctx context.Context, name string) (*Role, error)

	// Delete removes a role
	Delete(ctx context.Context, id kernel.RoleID) error

	// List retrieves roles with pagination
	List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[Role], error)
}

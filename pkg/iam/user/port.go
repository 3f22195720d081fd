package user

import (
	"context"

	"github.com/Abraxas-365/peoplehub/pkg/kernel"
)

// Repository defines the interface for user persistence
type Repository interface {
	// Create persists a new user
	Create(ctx context.Context, u *User) error

	// Update updates an existing user
	Update(ctx context.Context, id kernel.UserID, u *User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id kernel.UserID) (*User, error)

	// GetByEmail retrieves a user by normalized email
	GetByEmail(ctx context.Context, email kernel.Email) (*User, error)

	// Delete removes a user
	Delete(ctx context.Context, id kernel.UserID) error

	// List retrieves users with pagination
	List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[User], error)
}

package user

import "github.com/Abraxas-365/peoplehub/pkg/kernel"

// ============================================================================
// Request DTOs
// ============================================================================

type CreateUserRequest struct {
	Name     string        `json:"name" validate:"required"`
	Email    string        `json:"email" validate:"required,email"`
	Password string        `json:"password" validate:"required,min=8"`
	RoleID   kernel.RoleID `json:"role_id"`
}

type UpdateUserRequest struct {
	Name   *string        `json:"name,omitempty"`
	Email  *string        `json:"email,omitempty"`
	RoleID *kernel.RoleID `json:"role_id,omitempty"`
	Status *UserStatus    `json:"status,omitempty"`
}

package role

import (
	"net/http"

	"github.com/Abraxas-365/peoplehub/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("ROLE")

// Error codes
var (
	CodeRoleNotFound      = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Role not found")
	CodeRoleAlreadyExists = ErrRegistry.Register("ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "Role already exists")
	CodeSystemRole        = ErrRegistry.Register("SYSTEM_ROLE", errx.TypeBusiness, http.StatusForbidden, "System roles cannot be modified")
	CodeInvalidScope      = ErrRegistry.Register("INVALID_SCOPE", errx.TypeValidation, http.StatusBadRequest, "Unknown scope")
	CodeInvalidName       = ErrRegistry.Register("INVALID_NAME", errx.TypeValidation, http.StatusBadRequest, "Role name is required")
	CodeRoleInUse         = ErrRegistry.Register("IN_USE", errx.TypeConflict, http.StatusConflict, "Role is assigned to users")
)

// Helper functions
func ErrRoleNotFound() *errx.Error {
	return ErrRegistry.New(CodeRoleNotFound)
}

func ErrRoleAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeRoleAlreadyExists)
}

func ErrSystemRole() *errx.Error {
	return ErrRegistry.New(CodeSystemRole)
}

func ErrInvalidScope() *errx.Error {
	return ErrRegistry.New(CodeInvalidScope)
}

func ErrInvalidName() *errx.Error {
	return ErrRegistry.New(CodeInvalidName)
}

func ErrRoleInUse() *errx.Error {
	return ErrRegistry.New(CodeRoleInUse)
}

package user

import (
	"net/http"

	"github.com/Abraxas-365/peoplehub/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("USER")

// Error codes
var (
	CodeUserNotFound       = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "User not found")
	CodeEmailAlreadyExists = ErrRegistry.Register("EMAIL_EXISTS", errx.TypeConflict, http.StatusConflict, "Email already registered")
	CodeInvalidEmail       = ErrRegistry.Register("INVALID_EMAIL", errx.TypeValidation, http.StatusBadRequest, "Invalid email address")
	CodeInvalidStatus      = ErrRegistry.Register("INVALID_STATUS", errx.TypeValidation, http.StatusBadRequest, "Invalid user status")
	CodeInvalidName        = ErrRegistry.Register("INVALID_NAME", errx.TypeValidation, http.StatusBadRequest, "Name is required")
	CodeForbidden          = ErrRegistry.Register("FORBIDDEN", errx.TypeAuthorization, http.StatusForbidden, "Not allowed to access this user")
)

// Helper functions
func ErrUserNotFound() *errx.Error {
	return ErrRegistry.New(CodeUserNotFound)
}

func ErrEmailAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeEmailAlreadyExists)
}

func ErrInvalidEmail() *errx.Error {
	return ErrRegistry.New(CodeInvalidEmail)
}

func ErrInvalidStatus() *errx.Error {
	return ErrRegistry.New(CodeInvalidStatus)
}

func ErrInvalidName() *errx.Error {
	return ErrRegistry.New(CodeInvalidName)
}

func ErrForbidden() *errx.Error {
	return ErrRegistry.New(CodeForbidden)
}

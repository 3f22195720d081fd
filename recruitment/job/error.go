package job

import (
	"net/http"

	"github.com/Abraxas-365/peoplehub/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("JOB")

// Error codes
var (
	CodeJobNotFound             = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Job not found")
	CodeJobAlreadyExists        = ErrRegistry.Register("ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "Job already exists")
	CodeJobArchived             = ErrRegistry.Register("ARCHIVED", errx.TypeBusiness, http.StatusForbidden, "Job is archived")
	CodeJobAlreadyArchived      = ErrRegistry.Register("ALREADY_ARCHIVED", errx.TypeBusiness, http.StatusConflict, "Job is already archived")
	CodeJobAlreadyClosed        = ErrRegistry.Register("ALREADY_CLOSED", errx.TypeBusiness, http.StatusConflict, "Job is already closed")
	CodeJobNotActive            = ErrRegistry.Register("NOT_ACTIVE", errx.TypeBusiness, http.StatusBadRequest, "Job is not accepting applications")
	CodeInvalidJob              = ErrRegistry.Register("INVALID", errx.TypeValidation, http.StatusBadRequest, "Title and description are required")
	CodeInsufficientPermissions = ErrRegistry.Register("INSUFFICIENT_PERMISSIONS", errx.TypeAuthorization, http.StatusForbidden, "Insufficient permissions")
	CodeUnauthorizedUpdate      = ErrRegistry.Register("UNAUTHORIZED_UPDATE", errx.TypeAuthorization, http.StatusForbidden, "Unauthorized to update this job")
)

// Helper functions
func ErrJobNotFound() *errx.Error {
	return ErrRegistry.New(CodeJobNotFound)
}

func ErrJobAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeJobAlreadyExists)
}

func ErrJobArchived() *errx.Error {
	return ErrRegistry.New(CodeJobArchived)
}

func ErrJobAlreadyArchived() *errx.Error {
	return ErrRegistry.New(CodeJobAlreadyArchived)
}

func ErrJobAlreadyClosed() *errx.Error {
	return ErrRegistry.New(CodeJobAlreadyClosed)
}

func ErrJobNotActive() *errx.Error {
	return ErrRegistry.New(CodeJobNotActive)
}

func ErrInvalidJob() *errx.Error {
	return ErrRegistry.New(CodeInvalidJob)
}

func ErrInsufficientPermissions() *errx.Error {
	return ErrRegistry.New(CodeInsufficientPermissions)
}

func ErrUnauthorizedUpdate() *errx.Error {
	return ErrRegistry.New(CodeUnauthorizedUpdate)
}

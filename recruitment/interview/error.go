package interview

import (
	"net/http"

	"github.com/Abraxas-365/peoplehub/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("INTERVIEW")

var (
	CodeInterviewNotFound       = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Interview not found")
	CodeInterviewNotScheduled   = ErrRegistry.Register("NOT_SCHEDULED", errx.TypeBusiness, http.StatusConflict, "Interview is no longer scheduled")
	CodeInvalidSchedule         = ErrRegistry.Register("INVALID_SCHEDULE", errx.TypeValidation, http.StatusBadRequest, "Interview must be scheduled in the future")
	CodeFeedbackRequired        = ErrRegistry.Register("FEEDBACK_REQUIRED", errx.TypeValidation, http.StatusBadRequest, "Feedback is required")
	CodeInvalidRating           = ErrRegistry.Register("INVALID_RATING", errx.TypeValidation, http.StatusBadRequest, "Rating must be between 1 and 5")
	CodeInvalidRequest          = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
	CodeInsufficientPermissions = ErrRegistry.Register("INSUFFICIENT_PERMISSIONS", errx.TypeAuthorization, http.StatusForbidden, "Insufficient permissions")
)

func ErrInterviewNotFound() *errx.Error {
	return ErrRegistry.New(CodeInterviewNotFound)
}

func ErrInterviewNotScheduled() *errx.Error {
	return ErrRegistry.New(CodeInterviewNotScheduled)
}

func ErrInvalidSchedule() *errx.Error {
	return ErrRegistry.New(CodeInvalidSchedule)
}

func ErrFeedbackRequired() *errx.Error {
	return ErrRegistry.New(CodeFeedbackRequired)
}

func ErrInvalidRating() *errx.Error {
	return ErrRegistry.New(CodeInvalidRating)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}

func ErrInsufficientPermissions() *errx.Error {
	return ErrRegistry.New(CodeInsufficientPermissions)
}

package training

import (
	"net/http"

	"github.com/Abraxas-365/peoplehub/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("TRAINING")

var (
	CodeTrainingNotFound        = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Training not found")
	CodeCourseNotFound          = ErrRegistry.Register("COURSE_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Course not found")
	CodeEnrollmentNotFound      = ErrRegistry.Register("ENROLLMENT_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Enrollment not found")
	CodeAlreadyEnrolled         = ErrRegistry.Register("ALREADY_ENROLLED", errx.TypeConflict, http.StatusConflict, "User is already enrolled in this course")
	CodeEnrollmentCompleted     = ErrRegistry.Register("ENROLLMENT_COMPLETED", errx.TypeBusiness, http.StatusConflict, "Enrollment is already completed")
	CodeInvalidProgress         = ErrRegistry.Register("INVALID_PROGRESS", errx.TypeValidation, http.StatusBadRequest, "Progress must be between 0 and 100")
	CodeInvalidTraining         = ErrRegistry.Register("INVALID", errx.TypeValidation, http.StatusBadRequest, "Invalid training data")
	CodeInsufficientPermissions = ErrRegistry.Register("INSUFFICIENT_PERMISSIONS", errx.TypeAuthorization, http.StatusForbidden, "Insufficient permissions")
)

func ErrTrainingNotFound() *errx.Error {
	return ErrRegistry.New(CodeTrainingNotFound)
}

func ErrCourseNotFound() *errx.Error {
	return ErrRegistry.New(CodeCourseNotFound)
}

func ErrEnrollmentNotFound() *errx.Error {
	return ErrRegistry.New(CodeEnrollmentNotFound)
}

func ErrAlreadyEnrolled() *errx.Error {
	return ErrRegistry.New(CodeAlreadyEnrolled)
}

func ErrEnrollmentCompleted() *errx.Error {
	return ErrRegistry.New(CodeEnrollmentCompleted)
}

func ErrInvalidProgress() *errx.Error {
	return ErrRegistry.New(CodeInvalidProgress)
}

func ErrInvalidTraining() *errx.Error {
	return ErrRegistry.New(CodeInvalidTraining)
}

func ErrInsufficientPermissions() *errx.Error {
	return ErrRegistry.New(CodeInsufficientPermissions)
}

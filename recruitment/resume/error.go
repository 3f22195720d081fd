package resume

import (
	"net/http"

	"github.com/Abraxas-365/peoplehub/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("RESUME")

// Error codes - Resume Operations
var (
	CodeResumeNotFound          = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Resume not found")
	CodeResumeAlreadyExists     = ErrRegistry.Register("ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "Resume already exists")
	CodeInsufficientPermissions = ErrRegistry.Register("INSUFFICIENT_PERMISSIONS", errx.TypeAuthorization, http.StatusForbidden, "Insufficient permissions")
	CodeResumeNotParsed         = ErrRegistry.Register("NOT_PARSED", errx.TypeBusiness, http.StatusUnprocessableEntity, "Resume has not been parsed yet")
	CodeFileRequired            = ErrRegistry.Register("FILE_REQUIRED", errx.TypeValidation, http.StatusBadRequest, "A resume file is required")
	CodeInvalidFileFormat       = ErrRegistry.Register("INVALID_FILE_FORMAT", errx.TypeValidation, http.StatusBadRequest, "Invalid file format")
	CodeFileStoreFailed         = ErrRegistry.Register("FILE_STORE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to store file")
)

// Error codes - Job/Queue Operations
var (
	CodeJobNotFound          = ErrRegistry.Register("JOB_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Processing job not found")
	CodeJobFailed            = ErrRegistry.Register("JOB_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Job processing failed")
	CodeJobMaxRetriesReached = ErrRegistry.Register("JOB_MAX_RETRIES", errx.TypeInternal, http.StatusInternalServerError, "Job exceeded maximum retry attempts")
	CodeQueueEnqueueFailed   = ErrRegistry.Register("QUEUE_ENQUEUE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to enqueue job")
	CodeQueueDequeueFailed   = ErrRegistry.Register("QUEUE_DEQUEUE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to dequeue job")
	CodeJobCreationFailed    = ErrRegistry.Register("JOB_CREATION_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to create job record")
	CodeInvalidJobStatus     = ErrRegistry.Register("INVALID_JOB_STATUS", errx.TypeValidation, http.StatusBadRequest, "Invalid job status")
)

// Helper functions - Resume Operations
func ErrResumeNotFound() *errx.Error {
	return ErrRegistry.New(CodeResumeNotFound)
}

func ErrResumeAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeResumeAlreadyExists)
}

func ErrInsufficientPermissions() *errx.Error {
	return ErrRegistry.New(CodeInsufficientPermissions)
}

func ErrResumeNotParsed() *errx.Error {
	return ErrRegistry.New(CodeResumeNotParsed)
}

func ErrFileRequired() *errx.Error {
	return ErrRegistry.New(CodeFileRequired)
}

func ErrInvalidFileFormat() *errx.Error {
	return ErrRegistry.New(CodeInvalidFileFormat)
}

func ErrFileStoreFailed() *errx.Error {
	return ErrRegistry.New(CodeFileStoreFailed)
}

// Helper functions - Job/Queue Operations
func ErrJobNotFound() *errx.Error {
	return ErrRegistry.New(CodeJobNotFound)
}

func ErrJobFailed() *errx.Error {
	return ErrRegistry.New(CodeJobFailed)
}

func ErrJobMaxRetriesReached() *errx.Error {
	return ErrRegistry.New(CodeJobMaxRetriesReached)
}

func ErrQueueEnqueueFailed() *errx.Error {
	return ErrRegistry.New(CodeQueueEnqueueFailed)
}

func ErrQueueDequeueFailed() *errx.Error {
	return ErrRegistry.New(CodeQueueDequeueFailed)
}

func ErrJobCreationFailed() *errx.Error {
	return ErrRegistry.New(CodeJobCreationFailed)
}

func ErrInvalidJobStatus() *errx.Error {
	return ErrRegistry.New(CodeInvalidJobStatus)
}

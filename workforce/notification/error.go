package notification

import (
	"net/http"

	"github.com/Abraxas-365/peoplehub/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("NOTIFICATION")

var (
	CodeNotificationNotFound    = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Notification not found")
	CodeEmptyMessage            = ErrRegistry.Register("EMPTY_MESSAGE", errx.TypeValidation, http.StatusBadRequest, "Notification message is required")
	CodeInsufficientPermissions = ErrRegistry.Register("INSUFFICIENT_PERMISSIONS", errx.TypeAuthorization, http.StatusForbidden, "Insufficient permissions")
)

func ErrNotificationNotFound() *errx.Error {
	return ErrRegistry.New(CodeNotificationNotFound)
}

func ErrEmptyMessage() *errx.Error {
	return ErrRegistry.New(CodeEmptyMessage)
}

func ErrInsufficientPermissions() *errx.Error {
	return ErrRegistry.New(CodeInsufficientPermissions)
}

package review

import (
	"net/http"

	"github.com/Abraxas-365/peoplehub/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("REVIEW")

var (
	CodeInvalidReview           = ErrRegistry.Register("INVALID", errx.TypeValidation, http.StatusBadRequest, "Invalid review data")
	CodeInvalidRating           = ErrRegistry.Register("INVALID_RATING", errx.TypeValidation, http.StatusBadRequest, "Rating must be between 1 and 5")
	CodeNoReviews               = ErrRegistry.Register("NO_REVIEWS", errx.TypeBusiness, http.StatusUnprocessableEntity, "Employee has no self or manager review to summarize")
	CodeInsufficientPermissions = ErrRegistry.Register("INSUFFICIENT_PERMISSIONS", errx.TypeAuthorization, http.StatusForbidden, "Insufficient permissions")
)

func ErrInvalidReview() *errx.Error {
	return ErrRegistry.New(CodeInvalidReview)
}

func ErrInvalidRating() *errx.Error {
	return ErrRegistry.New(CodeInvalidRating)
}

func ErrNoReviews() *errx.Error {
	return ErrRegistry.New(CodeNoReviews)
}

func ErrInsufficientPermissions() *errx.Error {
	return ErrRegistry.New(CodeInsufficientPermissions)
}

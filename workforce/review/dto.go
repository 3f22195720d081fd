package review

import "github.com/Abraxas-365/peoplehub/pkg/kernel"

// CreateReviewRequest - DTO for writing a review. The reviewer is the caller.
type CreateReviewRequest struct {
	EmployeeID kernel.UserID `json:"-"`
	Type       Type          `json:"type" validate:"required"`
	Text       string        `json:"text" validate:"required"`
	Rating     int           `json:"rating" validate:"required"`
}

// SummarizeRequest - DTO for summarizing an employee's reviews
type SummarizeRequest struct {
	Provider string `json:"provider,omitempty"`
}

package training

import (
	"time"

	"github.com/Abraxas-365/peoplehub/pkg/kernel"
)

// CreateTrainingRequest - DTO for creating a training
type CreateTrainingRequest struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

// UpdateTrainingRequest - DTO for updating a training; nil fields are kept
type UpdateTrainingRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

// AddCourseRequest - DTO for adding a course to a training
type AddCourseRequest struct {
	Title        string `json:"title" validate:"required"`
	ContentURL   string `json:"content_url,omitempty"`
	DurationMins int    `json:"duration_mins,omitempty"`
}

// EnrollRequest - DTO for enrolling a user in a course
type EnrollRequest struct {
	UserID kernel.UserID `json:"user_id" validate:"required"`
}

// UpdateProgressRequest - DTO for recording course progress
type UpdateProgressRequest struct {
	Progress *float64 `json:"progress" validate:"required"`
}

package interview

import (
	"time"

	"github.com/Abraxas-365/peoplehub/pkg/kernel"
)

// ScheduleInterviewRequest - DTO for scheduling an interview
type ScheduleInterviewRequest struct {
	ApplicationID kernel.ApplicationID `json:"application_id" validate:"required"`
	InterviewerID kernel.UserID        `json:"interviewer_id" validate:"required"`
	ScheduledAt   time.Time            `json:"scheduled_at" validate:"required"`
}

// FeedbackRequest - DTO for completing an interview
type FeedbackRequest struct {
	Feedback string `json:"feedback" validate:"required"`
	Rating   *int   `json:"rating,omitempty"`
}

// CancelInterviewRequest - DTO for cancelling an interview
type CancelInterviewRequest struct {
	Reason string `json:"reason,omitempty"`
}

package interview

import (
	"strings"
	"time"

	"github.com/Abraxas-365/peoplehub/pkg/kernel"
)

type InterviewStatus string

const (
	InterviewStatusScheduled InterviewStatus = "scheduled"
	InterviewStatusCompleted InterviewStatus = "completed"
	InterviewStatusCancelled InterviewStatus = "cancelled"
)

type Interview struct {
	ID            kernel.InterviewID   `json:"id"`
	ApplicationID kernel.ApplicationID `json:"application_id"`
	InterviewerID kernel.UserID        `json:"interviewer_id"`
	ScheduledAt   time.Time            `json:"scheduled_at"`
	Status        InterviewStatus      `json:"status"`
	Feedback      string               `json:"feedback,omitempty"`
	// Rating is optional, 1 to 5
	Rating       *int       `json:"rating,omitempty"`
	CancelReason string     `json:"cancel_reason,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

func (i *Interview) IsScheduled() bool {
	return i.Status == InterviewStatusScheduled
}

// Complete records the interviewer's feedback and closes the interview
func (i *Interview) Complete(feedback string, rating *int) error {
	if !i.IsScheduled() {
		return ErrInterviewNotScheduled().WithDetail("status", i.Status)
	}
	feedback = strings.TrimSpace(feedback)
	if feedback == "" {
		return ErrFeedbackRequired()
	}
	if rating != nil && (*rating < 1 || *rating > 5) {
		return ErrInvalidRating().WithDetail("rating", *rating)
	}

	now := time.Now()
	i.Status = InterviewStatusCompleted
	i.Feedback = feedback
	i.Rating = rating
	i.CompletedAt = &now
	i.UpdatedAt = now
	return nil
}

// Cancel calls off a scheduled interview
func (i *Interview) Cancel(reason string) error {
	if !i.IsScheduled() {
		return ErrInterviewNotScheduled().WithDetail("status", i.Status)
	}
	i.Status = InterviewStatusCancelled
	i.CancelReason = strings.TrimSpace(reason)
	i.UpdatedAt = time.Now()
	return nil
}

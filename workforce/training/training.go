package training

import (
	"time"

	"github.com/Abraxas-365/peoplehub/pkg/kernel"
)

// Training is a programme grouping courses
type Training struct {
	ID          kernel.TrainingID `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	StartDate   *time.Time        `json:"start_date,omitempty"`
	EndDate     *time.Time        `json:"end_date,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// ValidDates checks that the end date does not precede the start date
func (t *Training) ValidDates() bool {
	if t.StartDate == nil || t.EndDate == nil {
		return true
	}
	return !t.EndDate.Before(*t.StartDate)
}

type Course struct {
	ID           kernel.CourseID   `json:"id"`
	TrainingID   kernel.TrainingID `json:"training_id"`
	Title        string            `json:"title"`
	ContentURL   string            `json:"content_url,omitempty"`
	DurationMins int               `json:"duration_mins"`
	CreatedAt    time.Time         `json:"created_at"`
}

type EnrollmentStatus string

const (
	EnrollmentStatusEnrolled   EnrollmentStatus = "enrolled"
	EnrollmentStatusInProgress EnrollmentStatus = "in_progress"
	EnrollmentStatusCompleted  EnrollmentStatus = "completed"
)

type Enrollment struct {
	ID          kernel.EnrollmentID `json:"id"`
	UserID      kernel.UserID       `json:"user_id"`
	CourseID    kernel.CourseID     `json:"course_id"`
	Progress    float64             `json:"progress"`
	Status      EnrollmentStatus    `json:"status"`
	EnrolledAt  time.Time           `json:"enrolled_at"`
	CompletedAt *time.Time          `json:"completed_at,omitempty"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// SetProgress records progress in percent. 100 completes the enrollment.
func (e *Enrollment) SetProgress(progress float64) error {
	if progress < 0 || progress > 100 {
		return ErrInvalidProgress().WithDetail("progress", progress)
	}
	if e.Status == EnrollmentStatusCompleted {
		return ErrEnrollmentCompleted().WithDetail("enrollment_id", e.ID.String())
	}

	now := time.Now()
	e.Progress = progress
	e.UpdatedAt = now
	switch {
	case progress == 100:
		e.Status = EnrollmentStatusCompleted
		e.CompletedAt = &now
	case progress > 0:
		e.Status = EnrollmentStatusInProgress
	default:
		e.Status = EnrollmentStatusEnrolled
	}
	return nil
}

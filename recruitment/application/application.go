package application

import (
	"slices"
	"time"

	"github.com/Abraxas-365/peoplehub/pkg/kernel"
)

// ApplicationStatus represents the status of an application
type ApplicationStatus string

const (
	ApplicationStatusApplied      ApplicationStatus = "applied"      // Initial submission
	ApplicationStatusScreening    ApplicationStatus = "screening"    // Being reviewed
	ApplicationStatusInterviewing ApplicationStatus = "interviewing" // In interview process
	ApplicationStatusOffered      ApplicationStatus = "offered"      // Offer extended
	ApplicationStatusHired        ApplicationStatus = "hired"        // Offer accepted
	ApplicationStatusRejected     ApplicationStatus = "rejected"     // Rejected by the company
	ApplicationStatusWithdrawn    ApplicationStatus = "withdrawn"    // Withdrawn by candidate
)

func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationStatusApplied, ApplicationStatusScreening, ApplicationStatusInterviewing,
		ApplicationStatusOffered, ApplicationStatusHired, ApplicationStatusRejected, ApplicationStatusWithdrawn:
		return true
	}
	return false
}

// validTransitions lists the forward moves; rejected and withdrawn are
// reachable from every active status
var validTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationStatusApplied:      {ApplicationStatusScreening},
	ApplicationStatusScreening:    {ApplicationStatusInterviewing},
	ApplicationStatusInterviewing: {ApplicationStatusOffered},
	ApplicationStatusOffered:      {ApplicationStatusHired},
}

type Application struct {
	ID          kernel.ApplicationID `json:"id"`
	CandidateID kernel.UserID        `json:"candidate_id"`
	JobID       kernel.JobID         `json:"job_id"`
	ResumeID    kernel.ResumeID      `json:"resume_id"`
	Status      ApplicationStatus    `json:"status"`
	// Score is the resume/job similarity in [0,1], nil when either side was not indexed
	Score           *float64   `json:"score"`
	StatusChangedAt *time.Time `json:"status_changed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsActive checks if the application can still move through the pipeline
func (a *Application) IsActive() bool {
	switch a.Status {
	case ApplicationStatusHired, ApplicationStatusRejected, ApplicationStatusWithdrawn:
		return false
	}
	return true
}

// BelongsTo reports whether the application was filed by userID
func (a *Application) BelongsTo(userID kernel.UserID) bool {
	return a.CandidateID == userID
}

// CanUpdateStatus checks if status can be changed
func (a *Application) CanUpdateStatus(newStatus ApplicationStatus) bool {
	if !a.IsActive() {
		return false
	}
	if newStatus == ApplicationStatusRejected || newStatus == ApplicationStatusWithdrawn {
		return true
	}
	return slices.Contains(validTransitions[a.Status], newStatus)
}

// UpdateStatus updates the application status
func (a *Application) UpdateStatus(newStatus ApplicationStatus) error {
	if !newStatus.IsValid() {
		return ErrInvalidStatus().WithDetail("status", newStatus)
	}
	if !a.CanUpdateStatus(newStatus) {
		return ErrInvalidStatusTransition().
			WithDetail("current_status", a.Status).
			WithDetail("new_status", newStatus)
	}

	now := time.Now()
	a.Status = newStatus
	a.StatusChangedAt = &now
	a.UpdatedAt = now
	return nil
}

// Withdraw marks the application as withdrawn
func (a *Application) Withdraw() error {
	return a.UpdateStatus(ApplicationStatusWithdrawn)
}

// Reject rejects the application
func (a *Application) Reject() error {
	return a.UpdateStatus(ApplicationStatusRejected)
}

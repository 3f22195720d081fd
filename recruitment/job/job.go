package job

import (
	"strings"
	"time"

	"github.com/Abraxas-365/peoplehub/pkg/kernel"
)

// JobStatus represents the status of a job posting
type JobStatus string

const (
	JobStatusActive   JobStatus = "active"   // Accepting applications and indexed for matching
	JobStatusClosed   JobStatus = "closed"   // No longer accepting applications
	JobStatusArchived JobStatus = "archived" // Hidden and removed from matching
)

func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusActive, JobStatusClosed, JobStatusArchived:
		return true
	}
	return false
}

type Job struct {
	ID           kernel.JobID            `json:"id"`
	Title        kernel.JobTitle         `json:"title"`
	Description  kernel.JobDescription   `json:"description"`
	Requirements []kernel.JobRequirement `json:"requirements"`
	PostedBy     kernel.UserID           `json:"posted_by"`
	Status       JobStatus               `json:"status"`
	ClosedAt     *time.Time              `json:"closed_at,omitempty"`
	ArchivedAt   *time.Time              `json:"archived_at,omitempty"`
	CreatedAt    time.Time               `json:"created_at"`
	UpdatedAt    time.Time               `json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsActive checks if the job accepts applications
func (j *Job) IsActive() bool {
	return j.Status == JobStatusActive
}

// IsArchived checks if the job is archived
func (j *Job) IsArchived() bool {
	return j.Status == JobStatusArchived
}

// IsClosed checks if the job is closed
func (j *Job) IsClosed() bool {
	return j.Status == JobStatusClosed
}

// CanBeEdited checks if a job can be edited
func (j *Job) CanBeEdited() bool {
	return !j.IsArchived()
}

// Close stops the job from accepting applications
func (j *Job) Close() error {
	if j.IsArchived() {
		return ErrJobArchived()
	}
	if j.IsClosed() {
		return ErrJobAlreadyClosed()
	}

	now := time.Now()
	j.Status = JobStatusClosed
	j.ClosedAt = &now
	j.UpdatedAt = now
	return nil
}

// Archive marks the job as archived
func (j *Job) Archive() error {
	if j.IsArchived() {
		return ErrJobAlreadyArchived()
	}

	now := time.Now()
	j.Status = JobStatusArchived
	j.ArchivedAt = &now
	j.UpdatedAt = now
	return nil
}

// UpdateDetails updates job details; empty values are ignored
func (j *Job) UpdateDetails(title kernel.JobTitle, description kernel.JobDescription) {
	if title != "" {
		j.Title = title
	}
	if description != "" {
		j.Description = description
	}
	j.UpdatedAt = time.Now()
}

// SetRequirements replaces the requirements, dropping blanks
func (j *Job) SetRequirements(reqs []kernel.JobRequirement) {
	out := make([]kernel.JobRequirement, 0, len(reqs))
	for _, r := range reqs {
		if s := strings.TrimSpace(string(r)); s != "" {
			out = append(out, kernel.JobRequirement(s))
		}
	}
	j.Requirements = out
	j.UpdatedAt = time.Now()
}

// RequirementStrings returns the requirements as plain strings
func (j *Job) RequirementStrings() []string {
	out := make([]string, len(j.Requirements))
	for i, r := range j.Requirements {
		out[i] = string(r)
	}
	return out
}

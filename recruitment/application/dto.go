package application

import (
	"github.com/Abraxas-365/peoplehub/pkg/kernel"
)

// CreateApplicationRequest - DTO for creating a new application
type CreateApplicationRequest struct {
	CandidateID kernel.UserID   `json:"candidate_id" validate:"required"`
	JobID       kernel.JobID    `json:"job_id" validate:"required"`
	ResumeID    kernel.ResumeID `json:"resume_id" validate:"required"`
}

// UpdateStatusRequest - DTO for moving an application through the pipeline
type UpdateStatusRequest struct {
	Status ApplicationStatus `json:"status" validate:"required"`
}

// ListApplicationsRequest - DTO for listing applications; empty filters are ignored
type ListApplicationsRequest struct {
	CandidateID kernel.UserID            `json:"candidate_id,omitempty"`
	JobID       kernel.JobID             `json:"job_id,omitempty"`
	Status      ApplicationStatus        `json:"status,omitempty"`
	Pagination  kernel.PaginationOptions `json:"pagination"`
}

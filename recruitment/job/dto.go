package job

import (
	"github.com/Abraxas-365/peoplehub/pkg/kernel"
)

// CreateJobRequest - DTO for creating a new job
type CreateJobRequest struct {
	Title        kernel.JobTitle         `json:"title" validate:"required"`
	Description  kernel.JobDescription   `json:"description" validate:"required"`
	Requirements []kernel.JobRequirement `json:"requirements,omitempty"`
	PostedBy     kernel.UserID           `json:"-"`
}

// UpdateJobRequest - DTO for updating an existing job
type UpdateJobRequest struct {
	Title        *kernel.JobTitle         `json:"title,omitempty"`
	Description  *kernel.JobDescription   `json:"description,omitempty"`
	Requirements *[]kernel.JobRequirement `json:"requirements,omitempty"`
}

// SearchJobsRequest - DTO for listing and searching jobs
type SearchJobsRequest struct {
	Query      string                   `json:"query,omitempty"`
	Status     JobStatus                `json:"status,omitempty"`
	PostedBy   kernel.UserID            `json:"posted_by,omitempty"`
	Pagination kernel.PaginationOptions `json:"pagination"`
}

// ReindexResponse reports a full rebuild of the job_post collection
type ReindexResponse struct {
	Indexed int                     `json:"indexed"`
	Failed  map[kernel.JobID]string `json:"failed"`
}

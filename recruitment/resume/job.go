package resume

import (
	"time"

	"github.com/Abraxas-365/peoplehub/pkg/kernel"
)

type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// ProcessingStep mirrors the ingestion stages
type ProcessingStep string

const (
	StepExtracting  ProcessingStep = "extracting"
	StepStructuring ProcessingStep = "structuring"
	StepEmbedding   ProcessingStep = "embedding"
	StepMatching    ProcessingStep = "matching"
)

const DefaultMaxAttempts = 3

// ProcessingJob is one queued run of the ingestion pipeline for a resume
type ProcessingJob struct {
	ID       kernel.ProcessingJobID `json:"id"`
	ResumeID kernel.ResumeID        `json:"resume_id"`
	OwnerID  kernel.UserID          `json:"owner_id"`

	Status   JobStatus `json:"status"`
	FilePath string    `json:"file_path"`
	FileType string    `json:"file_type"`
	Provider string    `json:"provider,omitempty"`

	AttemptCount int `json:"attempt_count"`
	MaxAttempts  int `json:"max_attempts"`

	ErrorMessage string         `json:"error_message,omitempty"`
	ErrorDetails map[string]any `json:"error_details,omitempty"`

	CurrentStep        *ProcessingStep `json:"current_step,omitempty"`
	ProgressPercentage int             `json:"progress_percentage"`

	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	FailedAt    *time.Time `json:"failed_at,omitempty"`
	NextRetryAt *time.Time `json:"next_retry_at,omitempty"`
}

// CanRetry reports whether another attempt is allowed after the current one
func (j *ProcessingJob) CanRetry() bool {
	return j.AttemptCount < j.MaxAttempts
}

// RetryDelay is 2^attempt minutes
func (j *ProcessingJob) RetryDelay() time.Duration {
	return time.Duration(1<<uint(j.AttemptCount)) * time.Minute
}

// JobStatusResponse - Response for job status queries
type JobStatusResponse struct {
	JobID       kernel.ProcessingJobID `json:"job_id"`
	ResumeID    kernel.ResumeID        `json:"resume_id"`
	Status      JobStatus              `json:"status"`
	Message     string                 `json:"message"`
	Progress    int                    `json:"progress"`
	CurrentStep *ProcessingStep        `json:"current_step,omitempty"`
	Error       *JobError              `json:"error,omitempty"`

	AttemptCount int        `json:"attempt_count,omitempty"`
	NextRetryAt  *time.Time `json:"next_retry_at,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	FailedAt    *time.Time `json:"failed_at,omitempty"`
}

// JobError - Error details for failed jobs
type JobError struct {
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

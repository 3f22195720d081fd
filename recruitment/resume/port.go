package resume

import (
	"context"
	"time"

	"github.com/Abraxas-365/peoplehub/pkg/kernel"
)

type Repository interface {
	// Create creates a new resume
	Create(ctx context.Context, resume *Resume) error

	// Update updates an existing resume
	Update(ctx context.Context, resume *Resume) error

	// GetByID retrieves a resume by ID
	GetByID(ctx context.Context, id kernel.ResumeID) (*Resume, error)

	// Delete deletes a resume
	Delete(ctx context.Context, id kernel.ResumeID) error

	// List retrieves resumes, optionally only those of one owner
	List(ctx context.Context, ownerID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[Resume], error)
}

type JobRepository interface {
	Create(ctx context.Context, job *ProcessingJob) error
	Update(ctx context.Context, job *ProcessingJob) error
	GetByID(ctx context.Context, jobID kernel.ProcessingJobID) (*ProcessingJob, error)

	// Status helpers
	MarkAsProcessing(ctx context.Context, jobID kernel.ProcessingJobID) error
	MarkAsCompleted(ctx context.Context, jobID kernel.ProcessingJobID) error
	MarkAsFailed(ctx context.Context, jobID kernel.ProcessingJobID, errorMsg string, errorDetails map[string]any) error
	UpdateProgress(ctx context.Context, jobID kernel.ProcessingJobID, step ProcessingStep, percentage int) error
}

// JobQueue carries processing jobs from the API to the workers
type JobQueue interface {
	// Enqueue adds a job to the queue
	Enqueue(ctx context.Context, job *ProcessingJob) error

	// Dequeue blocks up to timeout for a job. It returns nil, nil on timeout.
	Dequeue(ctx context.Context, timeout time.Duration) (*ProcessingJob, error)

	// EnqueueDelayed schedules a job for later processing (for retries)
	EnqueueDelayed(ctx context.Context, job *ProcessingJob, delay time.Duration) error

	// MoveDelayedToReady moves delayed jobs that are due to the main queue
	MoveDelayedToReady(ctx context.Context) (int, error)

	// Size returns the number of ready and delayed jobs
	Size(ctx context.Context) (ready int64, delayed int64, err error)

	// Ping checks the connection to the queue backend
	Ping(ctx context.Context) error
}

package job

import (
	"context"

	"github.com/Abraxas-365/peoplehub/pkg/kernel"
)

type Repository interface {
	// Create creates a new job
	Create(ctx context.Context, job *Job) error

	// Update updates an existing job
	Update(ctx context.Context, id kernel.JobID, job *Job) error

	// GetByID retrieves a job by ID
	GetByID(ctx context.Context, id kernel.JobID) (*Job, error)

	// Delete deletes a job by ID
	Delete(ctx context.Context, id kernel.JobID) error

	// Search lists jobs matching the filters, newest first
	Search(ctx context.Context, req SearchJobsRequest) (*kernel.Paginated[Job], error)

	// ListActive returns every active job, used to rebuild the matching index
	ListActive(ctx context.Context) ([]Job, error)
}

// Indexer keeps the job_post vector collection in sync with the relational record
type Indexer interface {
	// IndexJob inserts or replaces the job's embedding
	IndexJob(ctx context.Context, j *Job) error

	// RemoveJob drops the job's embedding; a missing record is not an error
	RemoveJob(ctx context.Context, id kernel.JobID) error
}

package resumeinfra

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Abraxas-365/peoplehub/pkg/kernel"
	"github.com/Abraxas-365/peoplehub/recruitment/resume"
)

// PostgresJobRepository stores resume processing jobs
type PostgresJobRepository struct {
	db *sqlx.DB
}

var _ resume.JobRepository = (*PostgresJobRepository)(nil)

func NewPostgresJobRepository(db *sqlx.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobColumns = `
	id, resume_id, owner_id, status, file_path, file_type, provider,
	attempt_count, max_attempts, error_message, error_details,
	current_step, progress_percentage,
	created_at, started_at, completed_at, failed_at, next_retry_at`

// Create creates a new job record
func (r *PostgresJobRepository) Create(ctx context.Context, job *resume.ProcessingJob) error {
	row, err := jobFromDomain(job)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO resume_processing_jobs (` + jobColumns + `)
		VALUES (
			:id, :resume_id, :owner_id, :status, :file_path, :file_type, :provider,
			:attempt_count, :max_attempts, :error_message, :error_details,
			:current_step, :progress_percentage,
			:created_at, :started_at, :completed_at, :failed_at, :next_retry_at
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("failed to create processing job: %w", err)
	}
	return nil
}

// Update overwrites the job's mutable state
func (r *PostgresJobRepository) Update(ctx context.Context, job *resume.ProcessingJob) error {
	row, err := jobFromDomain(job)
	if err != nil {
		return err
	}

	query := `
		UPDATE resume_processing_jobs SET
			status = :status,
			attempt_count = :attempt_count,
			error_message = :error_message,
			error_details = :error_details,
			current_step = :current_step,
			progress_percentage = :progress_percentage,
			started_at = :started_at,
			completed_at = :completed_at,
			failed_at = :failed_at,
			next_retry_at = :next_retry_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, row)
	if err != nil {
		return fmt.Errorf("failed to update processing job: %w", err)
	}
	return expectOne(result, job.ID)
}

// GetByID retrieves a job
func (r *PostgresJobRepository) GetByID(ctx context.Context, jobID kernel.ProcessingJobID) (*resume.ProcessingJob, error) {
	var row jobRow
	err := r.db.GetContext(ctx, &row, `SELECT `+jobColumns+` FROM resume_processing_jobs WHERE id = $1`, jobID.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, resume.ErrJobNotFound().WithDetail("job_id", jobID)
		}
		return nil, fmt.Errorf("failed to get processing job: %w", err)
	}
	return row.toDomain()
}

// MarkAsProcessing sets the job to processing and stamps started_at
func (r *PostgresJobRepository) MarkAsProcessing(ctx context.Context, jobID kernel.ProcessingJobID) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE resume_processing_jobs
		SET status = $1, started_at = $2, next_retry_at = NULL
		WHERE id = $3
	`, string(resume.JobStatusProcessing), time.Now(), jobID.String())
	if err != nil {
		return fmt.Errorf("failed to mark job as processing: %w", err)
	}
	return expectOne(result, jobID)
}

// MarkAsCompleted sets the job to completed with full progress
func (r *PostgresJobRepository) MarkAsCompleted(ctx context.Context, jobID kernel.ProcessingJobID) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE resume_processing_jobs
		SET status = $1, completed_at = $2, progress_percentage = 100,
			error_message = '', error_details = NULL
		WHERE id = $3
	`, string(resume.JobStatusCompleted), time.Now(), jobID.String())
	if err != nil {
		return fmt.Errorf("failed to mark job as completed: %w", err)
	}
	return expectOne(result, jobID)
}

// MarkAsFailed sets the job to failed with the given error
func (r *PostgresJobRepository) MarkAsFailed(ctx context.Context, jobID kernel.ProcessingJobID, errorMsg string, errorDetails map[string]any) error {
	details, err := nullJSON(errorDetails)
	if err != nil {
		return fmt.Errorf("failed to marshal error details: %w", err)
	}

	result, err := r.db.ExecContext(ctx, `
		UPDATE resume_processing_jobs
		SET status = $1, failed_at = $2, error_message = $3, error_details = $4, next_retry_at = NULL
		WHERE id = $5
	`, string(resume.JobStatusFailed), time.Now(), errorMsg, details, jobID.String())
	if err != nil {
		return fmt.Errorf("failed to mark job as failed: %w", err)
	}
	return expectOne(result, jobID)
}

// UpdateProgress records the current step and percentage
func (r *PostgresJobRepository) UpdateProgress(ctx context.Context, jobID kernel.ProcessingJobID, step resume.ProcessingStep, percentage int) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE resume_processing_jobs
		SET current_step = $1, progress_percentage = $2
		WHERE id = $3
	`, string(step), percentage, jobID.String())
	if err != nil {
		return fmt.Errorf("failed to update job progress: %w", err)
	}
	return expectOne(result, jobID)
}

func expectOne(result sql.Result, jobID kernel.ProcessingJobID) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return resume.ErrJobNotFound().WithDetail("job_id", jobID)
	}
	return nil
}

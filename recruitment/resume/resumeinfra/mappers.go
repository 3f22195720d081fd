package resumeinfra

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Abraxas-365/peoplehub/internal/ai/resumeparser"
	"github.com/Abraxas-365/peoplehub/pkg/kernel"
	"github.com/Abraxas-365/peoplehub/recruitment/resume"
)

// resumeRow represents a row from the resumes table
type resumeRow struct {
	ID           string         `db:"id"`
	OwnerID      sql.NullString `db:"owner_id"`
	FileURL      string         `db:"file_url"`
	FileName     string         `db:"file_name"`
	FileType     string         `db:"file_type"`
	Provider     string         `db:"provider"`
	ParsedData   sql.NullString `db:"parsed_data"`
	Status       string         `db:"status"`
	ErrorMessage string         `db:"error_message"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

// toDomain converts a resumeRow to a resume.Resume domain model
func (r *resumeRow) toDomain() (*resume.Resume, error) {
	out := &resume.Resume{
		ID:           kernel.ResumeID(r.ID),
		OwnerID:      kernel.UserID(r.OwnerID.String),
		FileURL:      r.FileURL,
		FileName:     r.FileName,
		FileType:     r.FileType,
		Provider:     r.Provider,
		Status:       resume.ResumeStatus(r.Status),
		ErrorMessage: r.ErrorMessage,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}

	if r.ParsedData.Valid && r.ParsedData.String != "null" {
		var parsed resumeparser.StructuredResume
		if err := json.Unmarshal([]byte(r.ParsedData.String), &parsed); err != nil {
			return nil, fmt.Errorf("failed to unmarshal parsed_data: %w", err)
		}
		out.ParsedData = &parsed
	}

	return out, nil
}

// fromDomain converts a resume.Resume to a resumeRow
func fromDomain(r *resume.Resume) (*resumeRow, error) {
	parsed, err := nullJSON(r.ParsedData)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal parsed_data: %w", err)
	}

	return &resumeRow{
		ID:           r.ID.String(),
		OwnerID:      sql.NullString{String: r.OwnerID.String(), Valid: !r.OwnerID.IsEmpty()},
		FileURL:      r.FileURL,
		FileName:     r.FileName,
		FileType:     r.FileType,
		Provider:     r.Provider,
		ParsedData:   parsed,
		Status:       string(r.Status),
		ErrorMessage: r.ErrorMessage,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}, nil
}

// jobRow is the database model of a processing job
type jobRow struct {
	ID       string         `db:"id"`
	ResumeID string         `db:"resume_id"`
	OwnerID  sql.NullString `db:"owner_id"`

	Status   string `db:"status"`
	FilePath string `db:"file_path"`
	FileType string `db:"file_type"`
	Provider string `db:"provider"`

	AttemptCount int `db:"attempt_count"`
	MaxAttempts  int `db:"max_attempts"`

	ErrorMessage string `db:"error_message"`
	ErrorDetails sql.NullString `db:"error_details"`

	CurrentStep        sql.NullString `db:"current_step"`
	ProgressPercentage int            `db:"progress_percentage"`

	CreatedAt   time.Time  `db:"created_at"`
	StartedAt   *time.Time `db:"started_at"`
	CompletedAt *time.Time `db:"completed_at"`
	FailedAt    *time.Time `db:"failed_at"`
	NextRetryAt *time.Time `db:"next_retry_at"`
}

func (r *jobRow) toDomain() (*resume.ProcessingJob, error) {
	job := &resume.ProcessingJob{
		ID:                 kernel.ProcessingJobID(r.ID),
		ResumeID:           kernel.ResumeID(r.ResumeID),
		OwnerID:            kernel.UserID(r.OwnerID.String),
		Status:             resume.JobStatus(r.Status),
		FilePath:           r.FilePath,
		FileType:           r.FileType,
		Provider:           r.Provider,
		AttemptCount:       r.AttemptCount,
		MaxAttempts:        r.MaxAttempts,
		ErrorMessage:       r.ErrorMessage,
		ProgressPercentage: r.ProgressPercentage,
		CreatedAt:          r.CreatedAt,
		StartedAt:          r.StartedAt,
		CompletedAt:        r.CompletedAt,
		FailedAt:           r.FailedAt,
		NextRetryAt:        r.NextRetryAt,
	}

	if r.CurrentStep.Valid {
		step := resume.ProcessingStep(r.CurrentStep.String)
		job.CurrentStep = &step
	}

	if r.ErrorDetails.Valid && r.ErrorDetails.String != "null" {
		if err := json.Unmarshal([]byte(r.ErrorDetails.String), &job.ErrorDetails); err != nil {
			return nil, fmt.Errorf("failed to unmarshal error_details: %w", err)
		}
	}

	return job, nil
}

func jobFromDomain(job *resume.ProcessingJob) (*jobRow, error) {
	row := &jobRow{
		ID:                 job.ID.String(),
		ResumeID:           job.ResumeID.String(),
		OwnerID:            sql.NullString{String: job.OwnerID.String(), Valid: !job.OwnerID.IsEmpty()},
		Status:             string(job.Status),
		FilePath:           job.FilePath,
		FileType:           job.FileType,
		Provider:           job.Provider,
		AttemptCount:       job.AttemptCount,
		MaxAttempts:        job.MaxAttempts,
		ErrorMessage:       job.ErrorMessage,
		ProgressPercentage: job.ProgressPercentage,
		CreatedAt:          job.CreatedAt,
		StartedAt:          job.StartedAt,
		CompletedAt:        job.CompletedAt,
		FailedAt:           job.FailedAt,
		NextRetryAt:        job.NextRetryAt,
	}

	if job.CurrentStep != nil {
		row.CurrentStep = sql.NullString{String: string(*job.CurrentStep), Valid: true}
	}

	details, err := nullJSON(job.ErrorDetails)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal error_details: %w", err)
	}
	row.ErrorDetails = details

	return row, nil
}

// nullJSON encodes v for a JSONB column. Nil values map to SQL NULL.
func nullJSON[T any](v T) (sql.NullString, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, err
	}
	if string(b) == "null" {
		return sql.NullString{}, nil
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

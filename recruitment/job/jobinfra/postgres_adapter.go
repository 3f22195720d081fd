package jobinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Abraxas-365/peoplehub/pkg/kernel"
	"github.com/Abraxas-365/peoplehub/recruitment/job"
)

// PostgresJobRepository implements job.Repository using PostgreSQL
type PostgresJobRepository struct {
	db *sqlx.DB
}

// NewPostgresJobRepository creates a new PostgreSQL job repository
func NewPostgresJobRepository(db *sqlx.DB) *PostgresJobRepository {
	return &PostgresJobRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type jobModel struct {
	ID           string          `db:"id"`
	Title        string          `db:"title"`
	Description  string          `db:"description"`
	Requirements json.RawMessage `db:"requirements"`
	PostedBy     string          `db:"posted_by"`
	Status       string          `db:"status"`
	ClosedAt     *time.Time      `db:"closed_at"`
	ArchivedAt   *time.Time      `db:"archived_at"`
	CreatedAt    time.Time       `db:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at"`
}

// toEntity converts database model to domain entity
func (m *jobModel) toEntity() (*job.Job, error) {
	requirements := []kernel.JobRequirement{}
	if len(m.Requirements) > 0 {
		if err := json.Unmarshal(m.Requirements, &requirements); err != nil {
			return nil, fmt.Errorf("failed to unmarshal requirements: %w", err)
		}
	}

	return &job.Job{
		ID:           kernel.JobID(m.ID),
		Title:        kernel.JobTitle(m.Title),
		Description:  kernel.JobDescription(m.Description),
		Requirements: requirements,
		PostedBy:     kernel.UserID(m.PostedBy),
		Status:       job.JobStatus(m.Status),
		ClosedAt:     m.ClosedAt,
		ArchivedAt:   m.ArchivedAt,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}, nil
}

// fromEntity converts domain entity to database model
func fromEntity(j *job.Job) (*jobModel, error) {
	reqs := j.Requirements
	if reqs == nil {
		reqs = []kernel.JobRequirement{}
	}
	requirements, err := json.Marshal(reqs)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal requirements: %w", err)
	}

	return &jobModel{
		ID:           string(j.ID),
		Title:        string(j.Title),
		Description:  string(j.Description),
		Requirements: requirements,
		PostedBy:     string(j.PostedBy),
		Status:       string(j.Status),
		ClosedAt:     j.ClosedAt,
		ArchivedAt:   j.ArchivedAt,
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    j.UpdatedAt,
	}, nil
}

const selectColumns = `
	id, title, description, requirements, posted_by, status,
	closed_at, archived_at, created_at, updated_at`

// ============================================================================
// Repository Implementation
// ============================================================================

// Create creates a new job
func (r *PostgresJobRepository) Create(ctx context.Context, jobEntity *job.Job) error {
	model, err := fromEntity(jobEntity)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO jobs (
			id, title, description, requirements, posted_by, status,
			closed_at, archived_at, created_at, updated_at
		) VALUES (
			:id, :title, :description, :requirements, :posted_by, :status,
			:closed_at, :archived_at, :created_at, :updated_at
		)
	`

	_, err = r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return job.ErrJobAlreadyExists()
			}
			if pqErr.Code == "23503" { // foreign_key_violation
				return fmt.Errorf("invalid posted_by user_id: %w", err)
			}
		}
		return fmt.Errorf("failed to create job: %w", err)
	}

	return nil
}

// Update updates an existing job
func (r *PostgresJobRepository) Update(ctx context.Context, id kernel.JobID, jobEntity *job.Job) error {
	model, err := fromEntity(jobEntity)
	if err != nil {
		return err
	}
	model.ID = id.String()

	query := `
		UPDATE jobs SET
			title = :title,
			description = :description,
			requirements = :requirements,
			status = :status,
			closed_at = :closed_at,
			archived_at = :archived_at,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return job.ErrJobNotFound()
	}

	return nil
}

// GetByID retrieves a job by ID
func (r *PostgresJobRepository) GetByID(ctx context.Context, id kernel.JobID) (*job.Job, error) {
	query := `SELECT ` + selectColumns + ` FROM jobs WHERE id = $1`

	var model jobModel
	err := r.db.GetContext(ctx, &model, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, job.ErrJobNotFound().WithDetail("job_id", id.String())
		}
		return nil, fmt.Errorf("failed to get job by id: %w", err)
	}

	return model.toEntity()
}

// Delete deletes a job by ID
func (r *PostgresJobRepository) Delete(ctx context.Context, id kernel.JobID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, string(id))
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return job.ErrJobNotFound()
	}

	return nil
}

// Search lists jobs by the given filters
func (r *PostgresJobRepository) Search(ctx context.Context, req job.SearchJobsRequest) (*kernel.Paginated[job.Job], error) {
	pagination := req.Pagination.Normalize()

	whereConditions := []string{}
	args := []any{}
	argCount := 1

	if req.Query != "" {
		whereConditions = append(whereConditions, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", argCount, argCount))
		args = append(args, "%"+req.Query+"%")
		argCount++
	}

	if req.Status != "" {
		whereConditions = append(whereConditions, fmt.Sprintf("status = $%d", argCount))
		args = append(args, string(req.Status))
		argCount++
	}

	if req.PostedBy != "" {
		whereConditions = append(whereConditions, fmt.Sprintf("posted_by = $%d", argCount))
		args = append(args, string(req.PostedBy))
		argCount++
	}

	whereClause := ""
	if len(whereConditions) > 0 {
		whereClause = "WHERE " + strings.Join(whereConditions, " AND ")
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM jobs %s", whereClause)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, fmt.Errorf("failed to count search results: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM jobs
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, selectColumns, whereClause, argCount, argCount+1)

	args = append(args, pagination.PageSize, pagination.Offset())

	var models []jobModel
	if err := r.db.SelectContext(ctx, &models, query, args...); err != nil {
		return nil, fmt.Errorf("failed to search jobs: %w", err)
	}

	entities, err := toEntities(models)
	if err != nil {
		return nil, err
	}
	return kernel.NewPaginated(entities, pagination, total), nil
}

// ListActive returns every active job
func (r *PostgresJobRepository) ListActive(ctx context.Context) ([]job.Job, error) {
	query := `SELECT ` + selectColumns + ` FROM jobs WHERE status = $1 ORDER BY created_at ASC`

	var models []jobModel
	if err := r.db.SelectContext(ctx, &models, query, string(job.JobStatusActive)); err != nil {
		return nil, fmt.Errorf("failed to list active jobs: %w", err)
	}
	return toEntities(models)
}

func toEntities(models []jobModel) ([]job.Job, error) {
	entities := make([]job.Job, 0, len(models))
	for _, model := range models {
		entity, err := model.toEntity()
		if err != nil {
			return nil, err
		}
		entities = append(entities, *entity)
	}
	return entities, nil
}

package applicationinfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Abraxas-365/peoplehub/pkg/kernel"
	"github.com/Abraxas-365/peoplehub/recruitment/application"
)

// PostgresApplicationRepository implements application.Repository using PostgreSQL
type PostgresApplicationRepository struct {
	db *sqlx.DB
}

// NewPostgresApplicationRepository creates a new PostgreSQL application repository
func NewPostgresApplicationRepository(db *sqlx.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{
		db: db,
	}
}

// ============================================================================
// Database Models
// ============================================================================

type applicationModel struct {
	ID              string          `db:"id"`
	CandidateID     string          `db:"candidate_id"`
	JobID           string          `db:"job_id"`
	ResumeID        string          `db:"resume_id"`
	Status          string          `db:"status"`
	Score           sql.NullFloat64 `db:"score"`
	StatusChangedAt *time.Time      `db:"status_changed_at"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

const selectColumns = `id, candidate_id, job_id, resume_id, status, score, status_changed_at, created_at, updated_at`

// toEntity converts database model to domain entity
func (m *applicationModel) toEntity() *application.Application {
	var score *float64
	if m.Score.Valid {
		s := m.Score.Float64
		score = &s
	}

	return &application.Application{
		ID:              kernel.ApplicationID(m.ID),
		CandidateID:     kernel.UserID(m.CandidateID),
		JobID:           kernel.JobID(m.JobID),
		ResumeID:        kernel.ResumeID(m.ResumeID),
		Status:          application.ApplicationStatus(m.Status),
		Score:           score,
		StatusChangedAt: m.StatusChangedAt,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// fromEntity converts domain entity to database model
func fromEntity(app *application.Application) *applicationModel {
	var score sql.NullFloat64
	if app.Score != nil {
		score = sql.NullFloat64{Float64: *app.Score, Valid: true}
	}

	return &applicationModel{
		ID:              string(app.ID),
		CandidateID:     string(app.CandidateID),
		JobID:           string(app.JobID),
		ResumeID:        string(app.ResumeID),
		Status:          string(app.Status),
		Score:           score,
		StatusChangedAt: app.StatusChangedAt,
		CreatedAt:       app.CreatedAt,
		UpdatedAt:       app.UpdatedAt,
	}
}

// ============================================================================
// Repository Implementation
// ============================================================================

// Create creates a new application
func (r *PostgresApplicationRepository) Create(ctx context.Context, app *application.Application) error {
	query := `
		INSERT INTO applications (
			id, candidate_id, job_id, resume_id, status, score,
			status_changed_at, created_at, updated_at
		) VALUES (
			:id, :candidate_id, :job_id, :resume_id, :status, :score,
			:status_changed_at, :created_at, :updated_at
		)
	`

	_, err := r.db.NamedExecContext(ctx, query, fromEntity(app))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code == "23505" { // unique_violation
				return application.ErrApplicationAlreadyExists().
					WithDetail("job_id", app.JobID).
					WithDetail("candidate_id", app.CandidateID)
			}
			if pqErr.Code == "23503" { // foreign_key_violation
				return application.ErrInvalidRequest().WithDetail("constraint", pqErr.Constraint)
			}
		}
		return fmt.Errorf("failed to create application: %w", err)
	}

	return nil
}

// Update updates the mutable fields of an application
func (r *PostgresApplicationRepository) Update(ctx context.Context, id kernel.ApplicationID, app *application.Application) error {
	model := fromEntity(app)
	model.ID = string(id)

	query := `
		UPDATE applications SET
			status = :status,
			score = :score,
			status_changed_at = :status_changed_at,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return fmt.Errorf("failed to update application: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return application.ErrApplicationNotFound().WithDetail("application_id", id)
	}

	return nil
}

// GetByID retrieves an application by ID
func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id kernel.ApplicationID) (*application.Application, error) {
	query := `SELECT ` + selectColumns + ` FROM applications WHERE id = $1`

	var model applicationModel
	err := r.db.GetContext(ctx, &model, query, string(id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, application.ErrApplicationNotFound().WithDetail("application_id", id)
		}
		return nil, fmt.Errorf("failed to get application by id: %w", err)
	}

	return model.toEntity(), nil
}

// ExistsByJobAndCandidate checks if an application exists for a job and candidate
func (r *PostgresApplicationRepository) ExistsByJobAndCandidate(ctx context.Context, jobID kernel.JobID, candidateID kernel.UserID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND candidate_id = $2)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, string(jobID), string(candidateID)); err != nil {
		return false, fmt.Errorf("failed to check application existence: %w", err)
	}
	return exists, nil
}

// List retrieves applications matching the filters with pagination
func (r *PostgresApplicationRepository) List(ctx context.Context, req application.ListApplicationsRequest) (*kernel.Paginated[application.Application], error) {
	pagination := req.Pagination.Normalize()

	whereConditions := []string{}
	args := []any{}
	argCount := 1

	if !req.CandidateID.IsEmpty() {
		whereConditions = append(whereConditions, fmt.Sprintf("candidate_id = $%d", argCount))
		args = append(args, string(req.CandidateID))
		argCount++
	}

	if !req.JobID.IsEmpty() {
		whereConditions = append(whereConditions, fmt.Sprintf("job_id = $%d", argCount))
		args = append(args, string(req.JobID))
		argCount++
	}

	if req.Status != "" {
		whereConditions = append(whereConditions, fmt.Sprintf("status = $%d", argCount))
		args = append(args, string(req.Status))
		argCount++
	}

	whereClause := ""
	if len(whereConditions) > 0 {
		whereClause = "WHERE " + strings.Join(whereConditions, " AND ")
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM applications %s", whereClause)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, fmt.Errorf("failed to count applications: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM applications
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, selectColumns, whereClause, argCount, argCount+1)

	args = append(args, pagination.PageSize, pagination.Offset())

	var models []applicationModel
	if err := r.db.SelectContext(ctx, &models, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	entities := make([]application.Application, 0, len(models))
	for _, model := range models {
		entities = append(entities, *model.toEntity())
	}

	return kernel.NewPaginated(entities, pagination, total), nil
}

package resumeinfra

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Abraxas-365/peoplehub/pkg/kernel"
	"github.com/Abraxas-365/peoplehub/recruitment/resume"
)

// PostgresResumeRepository implements resume.Repository using PostgreSQL
type PostgresResumeRepository struct {
	db *sqlx.DB
}

var _ resume.Repository = (*PostgresResumeRepository)(nil)

func NewPostgresResumeRepository(db *sqlx.DB) *PostgresResumeRepository {
	return &PostgresResumeRepository{db: db}
}

const resumeColumns = `
	id, owner_id, file_url, file_name, file_type, provider,
	parsed_data, status, error_message, created_at, updated_at`

// Create creates a new resume
func (r *PostgresResumeRepository) Create(ctx context.Context, entity *resume.Resume) error {
	row, err := fromDomain(entity)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO resumes (` + resumeColumns + `)
		VALUES (
			:id, :owner_id, :file_url, :file_name, :file_type, :provider,
			:parsed_data, :status, :error_message, :created_at, :updated_at
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return resume.ErrResumeAlreadyExists().WithDetail("resume_id", entity.ID)
			}
			if pqErr.Code == "23503" { // foreign_key_violation
				return fmt.Errorf("invalid owner_id: %w", err)
			}
		}
		return fmt.Errorf("failed to create resume: %w", err)
	}

	return nil
}

// Update updates the mutable fields of a resume
func (r *PostgresResumeRepository) Update(ctx context.Context, entity *resume.Resume) error {
	row, err := fromDomain(entity)
	if err != nil {
		return err
	}

	query := `
		UPDATE resumes SET
			provider = :provider,
			parsed_data = :parsed_data,
			status = :status,
			error_message = :error_message,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, row)
	if err != nil {
		return fmt.Errorf("failed to update resume: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return resume.ErrResumeNotFound().WithDetail("resume_id", entity.ID)
	}

	return nil
}

// GetByID retrieves a resume by ID
func (r *PostgresResumeRepository) GetByID(ctx context.Context, id kernel.ResumeID) (*resume.Resume, error) {
	var row resumeRow
	err := r.db.GetContext(ctx, &row, `SELECT `+resumeColumns+` FROM resumes WHERE id = $1`, id.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, resume.ErrResumeNotFound().WithDetail("resume_id", id)
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return row.toDomain()
}

// Delete deletes a resume
func (r *PostgresResumeRepository) Delete(ctx context.Context, id kernel.ResumeID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM resumes WHERE id = $1`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return resume.ErrResumeNotFound().WithDetail("resume_id", id)
	}

	return nil
}

// List retrieves resumes newest first, optionally only those of one owner
func (r *PostgresResumeRepository) List(ctx context.Context, ownerID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[resume.Resume], error) {
	pagination = pagination.Normalize()

	where := ""
	args := []any{}
	if !ownerID.IsEmpty() {
		where = "WHERE owner_id = $1"
		args = append(args, ownerID.String())
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM resumes "+where, args...); err != nil {
		return nil, fmt.Errorf("failed to count resumes: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM resumes
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, resumeColumns, where, len(args)+1, len(args)+2)
	args = append(args, pagination.PageSize, pagination.Offset())

	var rows []resumeRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}

	items := make([]resume.Resume, 0, len(rows))
	for i := range rows {
		entity, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		items = append(items, *entity)
	}

	return kernel.NewPaginated(items, pagination, total), nil
}

package traininginfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Abraxas-365/peoplehub/pkg/kernel"
	"github.com/Abraxas-365/peoplehub/workforce/training"
)

type PostgresEnrollmentRepository struct {
	db *sqlx.DB
}

func NewPostgresEnrollmentRepository(db *sqlx.DB) *PostgresEnrollmentRepository {
	return &PostgresEnrollmentRepository{db: db}
}

type enrollmentModel struct {
	ID          string     `db:"id"`
	UserID      string     `db:"user_id"`
	CourseID    string     `db:"course_id"`
	Progress    float64    `db:"progress"`
	Status      string     `db:"status"`
	EnrolledAt  time.Time  `db:"enrolled_at"`
	CompletedAt *time.Time `db:"completed_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

const enrollmentColumns = `id, user_id, course_id, progress, status, enrolled_at, completed_at, updated_at`

func (m *enrollmentModel) toEntity() training.Enrollment {
	return training.Enrollment{
		ID:          kernel.EnrollmentID(m.ID),
		UserID:      kernel.UserID(m.UserID),
		CourseID:    kernel.CourseID(m.CourseID),
		Progress:    m.Progress,
		Status:      training.EnrollmentStatus(m.Status),
		EnrolledAt:  m.EnrolledAt,
		CompletedAt: m.CompletedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func enrollmentFromEntity(e *training.Enrollment) *enrollmentModel {
	return &enrollmentModel{
		ID:          e.ID.String(),
		UserID:      e.UserID.String(),
		CourseID:    e.CourseID.String(),
		Progress:    e.Progress,
		Status:      string(e.Status),
		EnrolledAt:  e.EnrolledAt,
		CompletedAt: e.CompletedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func (r *PostgresEnrollmentRepository) Create(ctx context.Context, e *training.Enrollment) error {
	query := `
		INSERT INTO enrollments (id, user_id, course_id, progress, status, enrolled_at, completed_at, updated_at)
		VALUES (:id, :user_id, :course_id, :progress, :status, :enrolled_at, :completed_at, :updated_at)
	`
	if _, err := r.db.NamedExecContext(ctx, query, enrollmentFromEntity(e)); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case "23505": // unique_violation
				return training.ErrAlreadyEnrolled().WithDetail("course_id", e.CourseID.String())
			case "23503": // foreign_key_violation
				return training.ErrCourseNotFound().WithDetail("course_id", e.CourseID.String())
			}
		}
		return fmt.Errorf("failed to create enrollment: %w", err)
	}
	return nil
}

func (r *PostgresEnrollmentRepository) Update(ctx context.Context, e *training.Enrollment) error {
	query := `
		UPDATE enrollments SET
			progress = :progress,
			status = :status,
			completed_at = :completed_at,
			updated_at = :updated_at
		WHERE id = :id
	`
	result, err := r.db.NamedExecContext(ctx, query, enrollmentFromEntity(e))
	if err != nil {
		return fmt.Errorf("failed to update enrollment: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return training.ErrEnrollmentNotFound().WithDetail("enrollment_id", e.ID.String())
	}
	return nil
}

func (r *PostgresEnrollmentRepository) GetByID(ctx context.Context, id kernel.EnrollmentID) (*training.Enrollment, error) {
	var model enrollmentModel
	err := r.db.GetContext(ctx, &model, `SELECT `+enrollmentColumns+` FROM enrollments WHERE id = $1`, id.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, training.ErrEnrollmentNotFound().WithDetail("enrollment_id", id.String())
		}
		return nil, fmt.Errorf("failed to get enrollment: %w", err)
	}
	e := model.toEntity()
	return &e, nil
}

func (r *PostgresEnrollmentRepository) ExistsByUserAndCourse(ctx context.Context, userID kernel.UserID, courseID kernel.CourseID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM enrollments WHERE user_id = $1 AND course_id = $2)`
	if err := r.db.GetContext(ctx, &exists, query, userID.String(), courseID.String()); err != nil {
		return false, fmt.Errorf("failed to check enrollment: %w", err)
	}
	return exists, nil
}

func (r *PostgresEnrollmentRepository) ListByUser(ctx context.Context, userID kernel.UserID) ([]training.Enrollment, error) {
	var models []enrollmentModel
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE user_id = $1 ORDER BY enrolled_at DESC`
	if err := r.db.SelectContext(ctx, &models, query, userID.String()); err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	out := make([]training.Enrollment, 0, len(models))
	for i := range models {
		out = append(out, models[i].toEntity())
	}
	return out, nil
}

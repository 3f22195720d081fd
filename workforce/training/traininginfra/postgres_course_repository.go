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

type PostgresCourseRepository struct {
	db *sqlx.DB
}

func NewPostgresCourseRepository(db *sqlx.DB) *PostgresCourseRepository {
	return &PostgresCourseRepository{db: db}
}

type courseModel struct {
	ID           string    `db:"id"`
	TrainingID   string    `db:"training_id"`
	Title        string    `db:"title"`
	ContentURL   string    `db:"content_url"`
	DurationMins int       `db:"duration_mins"`
	CreatedAt    time.Time `db:"created_at"`
}

const courseColumns = `id, training_id, title, content_url, duration_mins, created_at`

func (m *courseModel) toEntity() training.Course {
	return training.Course{
		ID:           kernel.CourseID(m.ID),
		TrainingID:   kernel.TrainingID(m.TrainingID),
		Title:        m.Title,
		ContentURL:   m.ContentURL,
		DurationMins: m.DurationMins,
		CreatedAt:    m.CreatedAt,
	}
}

func (r *PostgresCourseRepository) Create(ctx context.Context, c *training.Course) error {
	query := `
		INSERT INTO courses (id, training_id, title, content_url, duration_mins, created_at)
		VALUES (:id, :training_id, :title, :content_url, :duration_mins, :created_at)
	`
	model := courseModel{
		ID:           c.ID.String(),
		TrainingID:   c.TrainingID.String(),
		Title:        c.Title,
		ContentURL:   c.ContentURL,
		DurationMins: c.DurationMins,
		CreatedAt:    c.CreatedAt,
	}
	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" { // foreign_key_violation
			return training.ErrTrainingNotFound().WithDetail("training_id", c.TrainingID.String())
		}
		return fmt.Errorf("failed to create course: %w", err)
	}
	return nil
}

func (r *PostgresCourseRepository) GetByID(ctx context.Context, id kernel.CourseID) (*training.Course, error) {
	var model courseModel
	err := r.db.GetContext(ctx, &model, `SELECT `+courseColumns+` FROM courses WHERE id = $1`, id.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, training.ErrCourseNotFound().WithDetail("course_id", id.String())
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	c := model.toEntity()
	return &c, nil
}

func (r *PostgresCourseRepository) ListByTraining(ctx context.Context, trainingID kernel.TrainingID) ([]training.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE training_id = $1 ORDER BY created_at ASC`
	return r.list(ctx, query, trainingID.String())
}

func (r *PostgresCourseRepository) ListAll(ctx context.Context) ([]training.Course, error) {
	return r.list(ctx, `SELECT `+courseColumns+` FROM courses ORDER BY title ASC`)
}

func (r *PostgresCourseRepository) list(ctx context.Context, query string, args ...any) ([]training.Course, error) {
	var models []courseModel
	if err := r.db.SelectContext(ctx, &models, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	out := make([]training.Course, 0, len(models))
	for i := range models {
		out = append(out, models[i].toEntity())
	}
	return out, nil
}

package traininginfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Abraxas-365/peoplehub/pkg/kernel"
	"github.com/Abraxas-365/peoplehub/workforce/training"
)

type PostgresTrainingRepository struct {
	db *sqlx.DB
}

func NewPostgresTrainingRepository(db *sqlx.DB) *PostgresTrainingRepository {
	return &PostgresTrainingRepository{db: db}
}

type trainingModel struct {
	ID          string     `db:"id"`
	Title       string     `db:"title"`
	Description string     `db:"description"`
	StartDate   *time.Time `db:"start_date"`
	EndDate     *time.Time `db:"end_date"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

const trainingColumns = `id, title, description, start_date, end_date, created_at, updated_at`

func (m *trainingModel) toEntity() training.Training {
	return training.Training{
		ID:          kernel.TrainingID(m.ID),
		Title:       m.Title,
		Description: m.Description,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func trainingFromEntity(t *training.Training) *trainingModel {
	return &trainingModel{
		ID:          t.ID.String(),
		Title:       t.Title,
		Description: t.Description,
		StartDate:   t.StartDate,
		EndDate:     t.EndDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (r *PostgresTrainingRepository) Create(ctx context.Context, t *training.Training) error {
	query := `
		INSERT INTO trainings (id, title, description, start_date, end_date, created_at, updated_at)
		VALUES (:id, :title, :description, :start_date, :end_date, :created_at, :updated_at)
	`
	if _, err := r.db.NamedExecContext(ctx, query, trainingFromEntity(t)); err != nil {
		return fmt.Errorf("failed to create training: %w", err)
	}
	return nil
}

func (r *PostgresTrainingRepository) Update(ctx context.Context, t *training.Training) error {
	query := `
		UPDATE trainings SET
			title = :title,
			description = :description,
			start_date = :start_date,
			end_date = :end_date,
			updated_at = :updated_at
		WHERE id = :id
	`
	result, err := r.db.NamedExecContext(ctx, query, trainingFromEntity(t))
	if err != nil {
		return fmt.Errorf("failed to update training: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return training.ErrTrainingNotFound().WithDetail("training_id", t.ID.String())
	}
	return nil
}

func (r *PostgresTrainingRepository) GetByID(ctx context.Context, id kernel.TrainingID) (*training.Training, error) {
	var model trainingModel
	err := r.db.GetContext(ctx, &model, `SELECT `+trainingColumns+` FROM trainings WHERE id = $1`, id.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, training.ErrTrainingNotFound().WithDetail("training_id", id.String())
		}
		return nil, fmt.Errorf("failed to get training: %w", err)
	}
	t := model.toEntity()
	return &t, nil
}

// Delete relies on ON DELETE CASCADE for courses and enrollments
func (r *PostgresTrainingRepository) Delete(ctx context.Context, id kernel.TrainingID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM trainings WHERE id = $1`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete training: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return training.ErrTrainingNotFound().WithDetail("training_id", id.String())
	}
	return nil
}

func (r *PostgresTrainingRepository) List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[training.Training], error) {
	pagination = pagination.Normalize()

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM trainings`); err != nil {
		return nil, fmt.Errorf("failed to count trainings: %w", err)
	}

	query := `SELECT ` + trainingColumns + ` FROM trainings ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	var models []trainingModel
	if err := r.db.SelectContext(ctx, &models, query, pagination.PageSize, pagination.Offset()); err != nil {
		return nil, fmt.Errorf("failed to list trainings: %w", err)
	}

	entities := make([]training.Training, 0, len(models))
	for i := range models {
		entities = append(entities, models[i].toEntity())
	}
	return kernel.NewPaginated(entities, pagination, total), nil
}

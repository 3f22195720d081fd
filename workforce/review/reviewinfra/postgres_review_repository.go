package reviewinfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Abraxas-365/peoplehub/pkg/kernel"
	"github.com/Abraxas-365/peoplehub/workforce/review"
)

type PostgresReviewRepository struct {
	db *sqlx.DB
}

var _ review.Repository = (*PostgresReviewRepository)(nil)

func NewPostgresReviewRepository(db *sqlx.DB) *PostgresReviewRepository {
	return &PostgresReviewRepository{db: db}
}

type reviewModel struct {
	ID         string    `db:"id"`
	EmployeeID string    `db:"employee_id"`
	ReviewerID string    `db:"reviewer_id"`
	Type       string    `db:"type"`
	Text       string    `db:"text"`
	Rating     int       `db:"rating"`
	CreatedAt  time.Time `db:"created_at"`
}

const selectColumns = `id, employee_id, reviewer_id, type, text, rating, created_at`

func (m *reviewModel) toEntity() review.Review {
	return review.Review{
		ID:         kernel.ReviewID(m.ID),
		EmployeeID: kernel.UserID(m.EmployeeID),
		ReviewerID: kernel.UserID(m.ReviewerID),
		Type:       review.Type(m.Type),
		Text:       m.Text,
		Rating:     m.Rating,
		CreatedAt:  m.CreatedAt,
	}
}

func (r *PostgresReviewRepository) Create(ctx context.Context, rv *review.Review) error {
	query := `
		INSERT INTO performance_reviews (id, employee_id, reviewer_id, type, text, rating, created_at)
		VALUES (:id, :employee_id, :reviewer_id, :type, :text, :rating, :created_at)
	`
	model := reviewModel{
		ID:         rv.ID.String(),
		EmployeeID: rv.EmployeeID.String(),
		ReviewerID: rv.ReviewerID.String(),
		Type:       string(rv.Type),
		Text:       rv.Text,
		Rating:     rv.Rating,
		CreatedAt:  rv.CreatedAt,
	}
	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case "23503": // foreign_key_violation
				return review.ErrInvalidReview().WithDetail("constraint", pqErr.Constraint)
			case "23514": // check_violation
				return review.ErrInvalidRating().WithDetail("constraint", pqErr.Constraint)
			}
		}
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (r *PostgresReviewRepository) ListByEmployee(ctx context.Context, employeeID kernel.UserID, reviewType review.Type) ([]review.Review, error) {
	query := `
		SELECT ` + selectColumns + `
		FROM performance_reviews
		WHERE employee_id = $1 AND ($2 = '' OR type = $2)
		ORDER BY created_at DESC
	`
	var models []reviewModel
	if err := r.db.SelectContext(ctx, &models, query, employeeID.String(), string(reviewType)); err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	out := make([]review.Review, 0, len(models))
	for i := range models {
		out = append(out, models[i].toEntity())
	}
	return out, nil
}

func (r *PostgresReviewRepository) LatestByType(ctx context.Context, employeeID kernel.UserID, reviewType review.Type) (*review.Review, error) {
	query := `
		SELECT ` + selectColumns + `
		FROM performance_reviews
		WHERE employee_id = $1 AND type = $2
		ORDER BY created_at DESC
		LIMIT 1
	`
	var model reviewModel
	if err := r.db.GetContext(ctx, &model, query, employeeID.String(), string(reviewType)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest review: %w", err)
	}
	rv := model.toEntity()
	return &rv, nil
}

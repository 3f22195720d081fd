package interviewinfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Abraxas-365/peoplehub/pkg/kernel"
	"github.com/Abraxas-365/peoplehub/recruitment/interview"
)

type PostgresInterviewRepository struct {
	db *sqlx.DB
}

func NewPostgresInterviewRepository(db *sqlx.DB) *PostgresInterviewRepository {
	return &PostgresInterviewRepository{db: db}
}

type interviewModel struct {
	ID            string        `db:"id"`
	ApplicationID string        `db:"application_id"`
	InterviewerID string        `db:"interviewer_id"`
	ScheduledAt   time.Time     `db:"scheduled_at"`
	Status        string        `db:"status"`
	Feedback      string        `db:"feedback"`
	Rating        sql.NullInt64 `db:"rating"`
	CancelReason  string        `db:"cancel_reason"`
	CompletedAt   *time.Time    `db:"completed_at"`
	CreatedAt     time.Time     `db:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at"`
}

const selectColumns = `id, application_id, interviewer_id, scheduled_at, status, feedback, rating, cancel_reason, completed_at, created_at, updated_at`

func (m *interviewModel) toEntity() interview.Interview {
	var rating *int
	if m.Rating.Valid {
		r := int(m.Rating.Int64)
		rating = &r
	}
	return interview.Interview{
		ID:            kernel.InterviewID(m.ID),
		ApplicationID: kernel.ApplicationID(m.ApplicationID),
		InterviewerID: kernel.UserID(m.InterviewerID),
		ScheduledAt:   m.ScheduledAt,
		Status:        interview.InterviewStatus(m.Status),
		Feedback:      m.Feedback,
		Rating:        rating,
		CancelReason:  m.CancelReason,
		CompletedAt:   m.CompletedAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func fromEntity(i *interview.Interview) *interviewModel {
	var rating sql.NullInt64
	if i.Rating != nil {
		rating = sql.NullInt64{Int64: int64(*i.Rating), Valid: true}
	}
	return &interviewModel{
		ID:            i.ID.String(),
		ApplicationID: i.ApplicationID.String(),
		InterviewerID: i.InterviewerID.String(),
		ScheduledAt:   i.ScheduledAt,
		Status:        string(i.Status),
		Feedback:      i.Feedback,
		Rating:        rating,
		CancelReason:  i.CancelReason,
		CompletedAt:   i.CompletedAt,
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}
}

func (r *PostgresInterviewRepository) Create(ctx context.Context, i *interview.Interview) error {
	query := `
		INSERT INTO interviews (
			id, application_id, interviewer_id, scheduled_at, status, feedback,
			rating, cancel_reason, completed_at, created_at, updated_at
		) VALUES (
			:id, :application_id, :interviewer_id, :scheduled_at, :status, :feedback,
			:rating, :cancel_reason, :completed_at, :created_at, :updated_at
		)
	`
	if _, err := r.db.NamedExecContext(ctx, query, fromEntity(i)); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" { // foreign_key_violation
			return interview.ErrInvalidRequest().WithDetail("constraint", pqErr.Constraint)
		}
		return fmt.Errorf("failed to create interview: %w", err)
	}
	return nil
}

func (r *PostgresInterviewRepository) Update(ctx context.Context, i *interview.Interview) error {
	query := `
		UPDATE interviews SET
			status = :status,
			feedback = :feedback,
			rating = :rating,
			cancel_reason = :cancel_reason,
			completed_at = :completed_at,
			updated_at = :updated_at
		WHERE id = :id
	`
	result, err := r.db.NamedExecContext(ctx, query, fromEntity(i))
	if err != nil {
		return fmt.Errorf("failed to update interview: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return interview.ErrInterviewNotFound().WithDetail("interview_id", i.ID.String())
	}
	return nil
}

func (r *PostgresInterviewRepository) GetByID(ctx context.Context, id kernel.InterviewID) (*interview.Interview, error) {
	var model interviewModel
	err := r.db.GetContext(ctx, &model, `SELECT `+selectColumns+` FROM interviews WHERE id = $1`, id.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, interview.ErrInterviewNotFound().WithDetail("interview_id", id.String())
		}
		return nil, fmt.Errorf("failed to get interview: %w", err)
	}
	i := model.toEntity()
	return &i, nil
}

func (r *PostgresInterviewRepository) ListByApplication(ctx context.Context, applicationID kernel.ApplicationID) ([]interview.Interview, error) {
	var models []interviewModel
	query := `SELECT ` + selectColumns + ` FROM interviews WHERE application_id = $1 ORDER BY scheduled_at ASC`
	if err := r.db.SelectContext(ctx, &models, query, applicationID.String()); err != nil {
		return nil, fmt.Errorf("failed to list interviews: %w", err)
	}
	out := make([]interview.Interview, 0, len(models))
	for i := range models {
		out = append(out, models[i].toEntity())
	}
	return out, nil
}

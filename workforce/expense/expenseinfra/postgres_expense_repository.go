package expenseinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Abraxas-365/peoplehub/pkg/kernel"
	"github.com/Abraxas-365/peoplehub/workforce/expense"
)

type PostgresExpenseRepository struct {
	db *sqlx.DB
}

var _ expense.Repository = (*PostgresExpenseRepository)(nil)

func NewPostgresExpenseRepository(db *sqlx.DB) *PostgresExpenseRepository {
	return &PostgresExpenseRepository{db: db}
}

type expenseModel struct {
	ID           string         `db:"id"`
	UserID       string         `db:"user_id"`
	TripID       string         `db:"trip_id"`
	Items        string         `db:"items"`
	Total        float64        `db:"total"`
	Status       string         `db:"status"`
	ReceiptURL   string         `db:"receipt_url"`
	ApproverID   sql.NullString `db:"approver_id"`
	Comments     string         `db:"comments"`
	RejectReason string         `db:"reject_reason"`
	DecidedAt    *time.Time     `db:"decided_at"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

const selectColumns = `id, user_id, trip_id, items, total, status, receipt_url, approver_id, comments, reject_reason, decided_at, created_at, updated_at`

func (m *expenseModel) toEntity() (*expense.Expense, error) {
	var items []expense.Item
	if err := json.Unmarshal([]byte(m.Items), &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal expense items: %w", err)
	}

	var approver *kernel.UserID
	if m.ApproverID.Valid {
		id := kernel.UserID(m.ApproverID.String)
		approver = &id
	}

	return &expense.Expense{
		ID:           kernel.ExpenseID(m.ID),
		UserID:       kernel.UserID(m.UserID),
		TripID:       m.TripID,
		Items:        items,
		Total:        m.Total,
		Status:       expense.Status(m.Status),
		ReceiptURL:   m.ReceiptURL,
		ApproverID:   approver,
		Comments:     m.Comments,
		RejectReason: m.RejectReason,
		DecidedAt:    m.DecidedAt,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}, nil
}

func fromEntity(e *expense.Expense) (*expenseModel, error) {
	items, err := json.Marshal(e.Items)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal expense items: %w", err)
	}

	var approver sql.NullString
	if e.ApproverID != nil {
		approver = sql.NullString{String: e.ApproverID.String(), Valid: true}
	}

	return &expenseModel{
		ID:           e.ID.String(),
		UserID:       e.UserID.String(),
		TripID:       e.TripID,
		Items:        string(items),
		Total:        e.Total,
		Status:       string(e.Status),
		ReceiptURL:   e.ReceiptURL,
		ApproverID:   approver,
		Comments:     e.Comments,
		RejectReason: e.RejectReason,
		DecidedAt:    e.DecidedAt,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}, nil
}

func (r *PostgresExpenseRepository) Create(ctx context.Context, e *expense.Expense) error {
	model, err := fromEntity(e)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO expenses (
			id, user_id, trip_id, items, total, status, receipt_url,
			approver_id, comments, reject_reason, decided_at, created_at, updated_at
		) VALUES (
			:id, :user_id, :trip_id, CAST(:items AS JSONB), :total, :status, :receipt_url,
			:approver_id, :comments, :reject_reason, :decided_at, :created_at, :updated_at
		)
	`
	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" { // foreign_key_violation
			return expense.ErrInvalidExpense().WithDetail("constraint", pqErr.Constraint)
		}
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

func (r *PostgresExpenseRepository) Update(ctx context.Context, e *expense.Expense) error {
	model, err := fromEntity(e)
	if err != nil {
		return err
	}

	query := `
		UPDATE expenses SET
			items = CAST(:items AS JSONB),
			total = :total,
			status = :status,
			approver_id = :approver_id,
			comments = :comments,
			reject_reason = :reject_reason,
			decided_at = :decided_at,
			updated_at = :updated_at
		WHERE id = :id
	`
	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return expense.ErrExpenseNotFound().WithDetail("expense_id", e.ID.String())
	}
	return nil
}

func (r *PostgresExpenseRepository) GetByID(ctx context.Context, id kernel.ExpenseID) (*expense.Expense, error) {
	var model expenseModel
	err := r.db.GetContext(ctx, &model, `SELECT `+selectColumns+` FROM expenses WHERE id = $1`, id.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, expense.ErrExpenseNotFound().WithDetail("expense_id", id.String())
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return model.toEntity()
}

func (r *PostgresExpenseRepository) Delete(ctx context.Context, id kernel.ExpenseID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return expense.ErrExpenseNotFound().WithDetail("expense_id", id.String())
	}
	return nil
}

func (r *PostgresExpenseRepository) List(ctx context.Context, req expense.ListExpensesRequest) (*kernel.Paginated[expense.Expense], error) {
	pagination := req.Pagination.Normalize()

	whereConditions := []string{}
	args := []any{}
	argCount := 1

	if !req.UserID.IsEmpty() {
		whereConditions = append(whereConditions, fmt.Sprintf("user_id = $%d", argCount))
		args = append(args, req.UserID.String())
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
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM expenses %s", whereClause)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, fmt.Errorf("failed to count expenses: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM expenses
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, selectColumns, whereClause, argCount, argCount+1)

	args = append(args, pagination.PageSize, pagination.Offset())

	var models []expenseModel
	if err := r.db.SelectContext(ctx, &models, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	entities := make([]expense.Expense, 0, len(models))
	for i := range models {
		e, err := models[i].toEntity()
		if err != nil {
			return nil, err
		}
		entities = append(entities, *e)
	}

	return kernel.NewPaginated(entities, pagination, total), nil
}

func (r *PostgresExpenseRepository) TotalsByStatus(ctx context.Context, userID kernel.UserID) ([]expense.StatusTotal, error) {
	query := `
		SELECT status, COUNT(*) AS count, COALESCE(SUM(total), 0) AS amount
		FROM expenses
		WHERE ($1 = '' OR user_id = $1)
		GROUP BY status
	`
	var totals []expense.StatusTotal
	if err := r.db.SelectContext(ctx, &totals, query, userID.String()); err != nil {
		return nil, fmt.Errorf("failed to aggregate expenses by status: %w", err)
	}
	return totals, nil
}

func (r *PostgresExpenseRepository) TotalsByCategory(ctx context.Context, userID kernel.UserID) (map[string]float64, error) {
	query := `
		SELECT LOWER(TRIM(item->>'category')) AS category,
		       COALESCE(SUM((item->>'amount')::numeric), 0)::float8 AS amount
		FROM expenses, jsonb_array_elements(items) AS item
		WHERE ($1 = '' OR user_id = $1)
		GROUP BY 1
	`
	var rows []struct {
		Category string  `db:"category"`
		Amount   float64 `db:"amount"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, userID.String()); err != nil {
		return nil, fmt.Errorf("failed to aggregate expenses by category: %w", err)
	}

	out := make(map[string]float64, len(rows))
	for _, row := range rows {
		out[row.Category] = row.Amount
	}
	return out, nil
}

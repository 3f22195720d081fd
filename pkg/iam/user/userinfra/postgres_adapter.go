package userinfra

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Abraxas-365/peoplehub/pkg/iam/user"
	"github.com/Abraxas-365/peoplehub/pkg/kernel"
)

// PostgresUserRepository implements user.Repository using PostgreSQL
type PostgresUserRepository struct {
	db *sqlx.DB
}

// NewPostgresUserRepository creates a new PostgreSQL user repository
func NewPostgresUserRepository(db *sqlx.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// ============================================================================
// Database Model
// ============================================================================

type userModel struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	RoleID       string    `db:"role_id"`
	Status       string    `db:"status"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (m *userModel) toEntity() *user.User {
	return &user.User{
		ID:           kernel.UserID(m.ID),
		Name:         m.Name,
		Email:        kernel.Email(m.Email),
		RoleID:       kernel.RoleID(m.RoleID),
		Status:       user.UserStatus(m.Status),
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func fromEntity(u *user.User) *userModel {
	return &userModel{
		ID:           u.ID.String(),
		Name:         u.Name,
		Email:        string(u.Email),
		RoleID:       u.RoleID.String(),
		Status:       string(u.Status),
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

const selectColumns = `id, name, email, role_id, status, password_hash, created_at, updated_at`

// ============================================================================
// Repository Implementation
// ============================================================================

// Create creates a new user
func (r *PostgresUserRepository) Create(ctx context.Context, entity *user.User) error {
	query := `
		INSERT INTO users (id, name, email, role_id, status, password_hash, created_at, updated_at)
		VALUES (:id, :name, :email, :role_id, :status, :password_hash, :created_at, :updated_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, fromEntity(entity)); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return user.ErrEmailAlreadyExists().WithDetail("email", string(entity.Email))
			}
			if pqErr.Code == "23503" { // foreign_key_violation
				return fmt.Errorf("invalid role_id: %w", err)
			}
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Update updates an existing user
func (r *PostgresUserRepository) Update(ctx context.Context, id kernel.UserID, entity *user.User) error {
	query := `
		UPDATE users SET
			name = :name,
			email = :email,
			role_id = :role_id,
			status = :status,
			password_hash = :password_hash,
			updated_at = :updated_at
		WHERE id = :id
	`

	model := fromEntity(entity)
	model.ID = id.String()

	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return user.ErrEmailAlreadyExists().WithDetail("email", string(entity.Email))
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return user.ErrUserNotFound()
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *PostgresUserRepository) GetByID(ctx context.Context, id kernel.UserID) (*user.User, error) {
	var model userModel
	err := r.db.GetContext(ctx, &model, `SELECT `+selectColumns+` FROM users WHERE id = $1`, id.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, user.ErrUserNotFound().WithDetail("user_id", id.String())
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return model.toEntity(), nil
}

// GetByEmail retrieves a user by email
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email kernel.Email) (*user.User, error) {
	var model userModel
	err := r.db.GetContext(ctx, &model, `SELECT `+selectColumns+` FROM users WHERE email = $1`, string(email))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, user.ErrUserNotFound().WithDetail("email", string(email))
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return model.toEntity(), nil
}

// Delete deletes a user by ID
func (r *PostgresUserRepository) Delete(ctx context.Context, id kernel.UserID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return user.ErrUserNotFound()
	}
	return nil
}

// List retrieves users with pagination
func (r *PostgresUserRepository) List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[user.User], error) {
	pagination = pagination.Normalize()

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM users`); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	query := `SELECT ` + selectColumns + ` FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	var models []userModel
	if err := r.db.SelectContext(ctx, &models, query, pagination.PageSize, pagination.Offset()); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	entities := make([]user.User, 0, len(models))
	for _, model := range models {
		entities = append(entities, *model.toEntity())
	}
	return kernel.NewPaginated(entities, pagination, total), nil
}

package roleinfra

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Abraxas-365/peoplehub/pkg/iam/role"
	"github.com/Abraxas-365/peoplehub/pkg/kernel"
)

// PostgresRoleRepository implements role.Repository using PostgreSQL
type PostgresRoleRepository struct {
	db *sqlx.DB
}

// NewPostgresRoleRepository creates a new PostgreSQL role repository
func NewPostgresRoleRepository(db *sqlx.DB) *PostgresRoleRepository {
	return &PostgresRoleRepository{db: db}
}

// ============================================================================
// Database Model
// ============================================================================

type roleModel struct {
	ID          string         `db:"id"`
	Name        string         `db:"name"`
	Description string         `db:"description"`
	Scopes      pq.StringArray `db:"scopes"`
	IsSystem    bool           `db:"is_system"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func (m *roleModel) toEntity() *role.Role {
	scopes := []string(m.Scopes)
	if scopes == nil {
		scopes = []string{}
	}
	return &role.Role{
		ID:          kernel.RoleID(m.ID),
		Name:        m.Name,
		Description: m.Description,
		Scopes:      scopes,
		IsSystem:    m.IsSystem,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func fromEntity(r *role.Role) *roleModel {
	return &roleModel{
		ID:          r.ID.String(),
		Name:        r.Name,
		Description: r.Description,
		Scopes:      pq.StringArray(r.Scopes),
		IsSystem:    r.IsSystem,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

const selectColumns = `id, name, description, scopes, is_system, created_at, updated_at`

// ============================================================================
// Repository Implementation
// ============================================================================

// Create creates a new role
func (r *PostgresRoleRepository) Create(ctx context.Context, entity *role.Role) error {
	query := `
		INSERT INTO roles (id, name, description, scopes, is_system, created_at, updated_at)
		VALUES (:id, :name, :description, :scopes, :is_system, :created_at, :updated_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, fromEntity(entity)); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return role.ErrRoleAlreadyExists().WithDetail("name", entity.Name)
		}
		return fmt.Errorf("failed to create role: %w", err)
	}
	return nil
}

// Update updates an existing role
func (r *PostgresRoleRepository) Update(ctx context.Context, id kernel.RoleID, entity *role.Role) error {
	query := `
		UPDATE roles SET
			name = :name,
			description = :description,
			scopes = :scopes,
			updated_at = :updated_at
		WHERE id = :id
	`

	model := fromEntity(entity)
	model.ID = id.String()

	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return role.ErrRoleAlreadyExists().WithDetail("name", entity.Name)
		}
		return fmt.Errorf("failed to update role: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return role.ErrRoleNotFound()
	}
	return nil
}

// GetByID retrieves a role by ID
func (r *PostgresRoleRepository) GetByID(ctx context.Context, id kernel.RoleID) (*role.Role, error) {
	var model roleModel
	err := r.db.GetContext(ctx, &model, `SELECT `+selectColumns+` FROM roles WHERE id = $1`, id.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, role.ErrRoleNotFound().WithDetail("role_id", id.String())
		}
		return nil, fmt.Errorf("failed to get role by id: %w", err)
	}
	return model.toEntity(), nil
}

// GetByName retrieves a role by name
func (r *PostgresRoleRepository) GetByName(ctx context.Context, name string) (*role.Role, error) {
	var model roleModel
	err := r.db.GetContext(ctx, &model, `SELECT `+selectColumns+` FROM roles WHERE name = $1`, name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, role.ErrRoleNotFound().WithDetail("name", name)
		}
		return nil, fmt.Errorf("failed to get role by name: %w", err)
	}
	return model.toEntity(), nil
}

// Delete deletes a role by ID
func (r *PostgresRoleRepository) Delete(ctx context.Context, id kernel.RoleID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM roles WHERE id = $1`, id.String())
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" { // foreign_key_violation
			return role.ErrRoleInUse().WithDetail("role_id", id.String())
		}
		return fmt.Errorf("failed to delete role: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return role.ErrRoleNotFound()
	}
	return nil
}

// List retrieves roles with pagination
func (r *PostgresRoleRepository) List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[role.Role], error) {
	pagination = pagination.Normalize()

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM roles`); err != nil {
		return nil, fmt.Errorf("failed to count roles: %w", err)
	}

	query := `SELECT ` + selectColumns + ` FROM roles ORDER BY name ASC LIMIT $1 OFFSET $2`

	var models []roleModel
	if err := r.db.SelectContext(ctx, &models, query, pagination.PageSize, pagination.Offset()); err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}

	entities := make([]role.Role, 0, len(models))
	for _, model := range models {
		entities = append(entities, *model.toEntity())
	}
	return kernel.NewPaginated(entities, pagination, total), nil
}

package rolesrv

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/Abraxas-365/peoplehub/pkg/errx"
	"github.com/Abraxas-365/peoplehub/pkg/iam/auth"
	"github.com/Abraxas-365/peoplehub/pkg/iam/role"
	"github.com/Abraxas-365/peoplehub/pkg/kernel"
	"github.com/Abraxas-365/peoplehub/pkg/logx"
)

type RoleService struct {
	roleRepo role.Repository
}

func NewRoleService(roleRepo role.Repository) *RoleService {
	return &RoleService{roleRepo: roleRepo}
}

// CreateRole creates a custom role
func (s *RoleService) CreateRole(ctx context.Context, req role.CreateRoleRequest) (*role.Role, error) {
	name := role.NormalizeName(req.Name)
	if name == "" {
		return nil, role.ErrInvalidName()
	}
	if err := validateScopes(req.Scopes); err != nil {
		return nil, err
	}

	now := time.Now()
	newRole := &role.Role{
		ID:          kernel.NewRoleID(uuid.NewString()),
		Name:        name,
		Description: req.Description,
		CreatedAt:   now,
	}
	newRole.SetScopes(req.Scopes)

	if err := s.roleRepo.Create(ctx, newRole); err != nil {
		return nil, err
	}
	return newRole, nil
}

func (s *RoleService) GetRole(ctx context.Context, id kernel.RoleID) (*role.Role, error) {
	return s.roleRepo.GetByID(ctx, id)
}

func (s *RoleService) GetRoleByName(ctx context.Context, name string) (*role.Role, error) {
	return s.roleRepo.GetByName(ctx, role.NormalizeName(name))
}

func (s *RoleService) ListRoles(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[role.Role], error) {
	return s.roleRepo.List(ctx, pagination)
}

// UpdateRole changes a role. System roles keep their name but scopes may change.
func (s *RoleService) UpdateRole(ctx context.Context, id kernel.RoleID, req role.UpdateRoleRequest) (*role.Role, error) {
	existing, err := s.roleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := role.NormalizeName(*req.Name)
		if name == "" {
			return nil, role.ErrInvalidName()
		}
		if name != existing.Name && !existing.CanModify() {
			return nil, role.ErrSystemRole().WithDetail("role", existing.Name)
		}
		existing.Name = name
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}
	if req.Scopes != nil {
		if err := validateScopes(req.Scopes); err != nil {
			return nil, err
		}
		existing.SetScopes(req.Scopes)
	}
	existing.UpdatedAt = time.Now()

	if err := s.roleRepo.Update(ctx, id, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *RoleService) DeleteRole(ctx context.Context, id kernel.RoleID) error {
	existing, err := s.roleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !existing.CanModify() {
		return role.ErrSystemRole().WithDetail("role", existing.Name)
	}
	return s.roleRepo.Delete(ctx, id)
}

// SeedDefaults creates the system roles that do not exist yet
func (s *RoleService) SeedDefaults(ctx context.Context) error {
	names := make([]string, 0, len(auth.DomainScopeGroups))
	for name := range auth.DomainScopeGroups {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		_, err := s.roleRepo.GetByName(ctx, name)
		if err == nil {
			continue
		}
		if !errx.IsCode(err, role.CodeRoleNotFound) {
			return err
		}

		now := time.Now()
		r := &role.Role{
			ID:          kernel.NewRoleID(uuid.NewString()),
			Name:        name,
			Description: "Default " + name + " role",
			IsSystem:    true,
			CreatedAt:   now,
		}
		r.SetScopes(auth.DomainScopeGroups[name])

		if err := s.roleRepo.Create(ctx, r); err != nil {
			return errx.Wrap(err, "failed to seed role", errx.TypeInternal).WithDetail("role", name)
		}
		logx.Infof("seeded role %s", name)
	}
	return nil
}

func validateScopes(scopes []string) error {
	for _, s := range scopes {
		if !auth.IsValidScope(s) {
			return role.ErrInvalidScope().WithDetail("scope", s)
		}
	}
	return nil
}

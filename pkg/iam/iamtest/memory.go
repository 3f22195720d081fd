// Package iamtest provides in-memory IAM repositories for tests
package iamtest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Abraxas-365/peoplehub/pkg/iam/auth"
	"github.com/Abraxas-365/peoplehub/pkg/iam/role"
	"github.com/Abraxas-365/peoplehub/pkg/iam/user"
	"github.com/Abraxas-365/peoplehub/pkg/kernel"
)

// RoleRepo is an in-memory role.Repository
type RoleRepo struct {
	mu    sync.Mutex
	roles map[kernel.RoleID]role.Role
}

func NewRoleRepo() *RoleRepo {
	return &RoleRepo{roles: map[kernel.RoleID]role.Role{}}
}

// Len returns the number of stored roles
func (m *RoleRepo) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.roles)
}

func (m *RoleRepo) Create(ctx context.Context, r *role.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.roles {
		if existing.Name == r.Name {
			return role.ErrRoleAlreadyExists()
		}
	}
	m.roles[r.ID] = *r
	return nil
}

func (m *RoleRepo) Update(ctx context.Context, id kernel.RoleID, r *role.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.roles[id]; !ok {
		return role.ErrRoleNotFound()
	}
	m.roles[id] = *r
	return nil
}

func (m *RoleRepo) GetByID(ctx context.Context, id kernel.RoleID) (*role.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.roles[id]
	if !ok {
		return nil, role.ErrRoleNotFound().WithDetail("role_id", id.String())
	}
	return &r, nil
}

func (m *RoleRepo) GetByName(ctx context.Context, name string) (*role.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.roles {
		if r.Name == name {
			return &r, nil
		}
	}
	return nil, role.ErrRoleNotFound().WithDetail("name", name)
}

func (m *RoleRepo) Delete(ctx context.Context, id kernel.RoleID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.roles[id]; !ok {
		return role.ErrRoleNotFound()
	}
	delete(m.roles, id)
	return nil
}

func (m *RoleRepo) List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[role.Role], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := make([]role.Role, 0, len(m.roles))
	for _, r := range m.roles {
		items = append(items, r)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return page(items, pagination), nil
}

// SeedRoles stores the default roles with their names as IDs
func (m *RoleRepo) SeedRoles() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for name, scopes := range auth.DomainScopeGroups {
		m.roles[kernel.RoleID(name)] = role.Role{
			ID:        kernel.RoleID(name),
			Name:      name,
			Scopes:    append([]string(nil), scopes...),
			IsSystem:  true,
			CreatedAt: time.Now(),
		}
	}
}

// UserRepo is an in-memory user.Repository
type UserRepo struct {
	mu    sync.Mutex
	users map[kernel.UserID]user.User
}

func NewUserRepo() *UserRepo {
	return &UserRepo{users: map[kernel.UserID]user.User{}}
}

// Put stores u as is
func (m *UserRepo) Put(u user.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
}

func (m *UserRepo) Create(ctx context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return user.ErrEmailAlreadyExists()
		}
	}
	m.users[u.ID] = *u
	return nil
}

func (m *UserRepo) Update(ctx context.Context, id kernel.UserID, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return user.ErrUserNotFound()
	}
	m.users[id] = *u
	return nil
}

func (m *UserRepo) GetByID(ctx context.Context, id kernel.UserID) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, user.ErrUserNotFound().WithDetail("user_id", id.String())
	}
	return &u, nil
}

func (m *UserRepo) GetByEmail(ctx context.Context, email kernel.Email) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, user.ErrUserNotFound().WithDetail("email", string(email))
}

func (m *UserRepo) Delete(ctx context.Context, id kernel.UserID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return user.ErrUserNotFound()
	}
	delete(m.users, id)
	return nil
}

func (m *UserRepo) List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[user.User], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := make([]user.User, 0, len(m.users))
	for _, u := range m.users {
		items = append(items, u)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return page(items, pagination), nil
}

func page[T any](items []T, pagination kernel.PaginationOptions) *kernel.Paginated[T] {
	n := pagination.Normalize()
	total := len(items)
	start := n.Offset()
	if start > total {
		start = total
	}
	end := start + n.PageSize
	if end > total {
		end = total
	}
	return kernel.NewPaginated(items[start:end], n, total)
}

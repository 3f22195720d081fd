package usersrv

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Abraxas-365/peoplehub/pkg/errx"
	"github.com/Abraxas-365/peoplehub/pkg/iam/auth"
	"github.com/Abraxas-365/peoplehub/pkg/iam/role"
	"github.com/Abraxas-365/peoplehub/pkg/iam/user"
	"github.com/Abraxas-365/peoplehub/pkg/kernel"
)

type UserService struct {
	userRepo user.Repository
	roleRepo role.Repository
	hasher   *auth.PasswordHasher
}

func NewUserService(userRepo user.Repository, roleRepo role.Repository, hasher *auth.PasswordHasher) *UserService {
	return &UserService{
		userRepo: userRepo,
		roleRepo: roleRepo,
		hasher:   hasher,
	}
}

// CreateUser creates an active user. An empty role falls back to the employee role.
func (s *UserService) CreateUser(ctx context.Context, req user.CreateUserRequest) (*user.User, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, user.ErrInvalidName()
	}

	email := user.NormalizeEmail(req.Email)
	if !user.IsValidEmail(email) {
		return nil, user.ErrInvalidEmail().WithDetail("email", req.Email)
	}

	roleID, err := s.resolveRole(ctx, req.RoleID)
	if err != nil {
		return nil, err
	}

	if existing, err := s.userRepo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, user.ErrEmailAlreadyExists().WithDetail("email", string(email))
	} else if err != nil && !errx.IsCode(err, user.CodeUserNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	newUser := &user.User{
		ID:           kernel.NewUserID(uuid.NewString()),
		Name:         name,
		Email:        email,
		RoleID:       roleID,
		Status:       user.UserStatusActive,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, newUser); err != nil {
		return nil, errx.Wrap(err, "failed to create user", errx.TypeInternal)
	}
	return newUser, nil
}

func (s *UserService) GetUser(ctx context.Context, id kernel.UserID) (*user.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	return s.userRepo.GetByEmail(ctx, user.NormalizeEmail(email))
}

// Exists returns ErrUserNotFound when id does not exist
func (s *UserService) Exists(ctx context.Context, id kernel.UserID) error {
	_, err := s.userRepo.GetByID(ctx, id)
	return err
}

func (s *UserService) ListUsers(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[user.User], error) {
	return s.userRepo.List(ctx, pagination)
}

func (s *UserService) UpdateUser(ctx context.Context, id kernel.UserID, req user.UpdateUserRequest) (*user.User, error) {
	existing, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, user.ErrInvalidName()
		}
		existing.Name = name
	}
	if req.Email != nil {
		email := user.NormalizeEmail(*req.Email)
		if !user.IsValidEmail(email) {
			return nil, user.ErrInvalidEmail().WithDetail("email", *req.Email)
		}
		existing.Email = email
	}
	if req.RoleID != nil {
		if _, err := s.roleRepo.GetByID(ctx, *req.RoleID); err != nil {
			return nil, err
		}
		existing.RoleID = *req.RoleID
	}
	if req.Status != nil {
		if !req.Status.IsValid() {
			return nil, user.ErrInvalidStatus().WithDetail("status", string(*req.Status))
		}
		existing.Status = *req.Status
	}
	existing.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, id, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id kernel.UserID) error {
	return s.userRepo.Delete(ctx, id)
}

// Authenticate checks credentials and returns the user with its role
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*user.User, *role.Role, error) {
	u, err := s.userRepo.GetByEmail(ctx, user.NormalizeEmail(email))
	if err != nil {
		if errx.IsCode(err, user.CodeUserNotFound) {
			return nil, nil, auth.ErrInvalidCredentials()
		}
		return nil, nil, err
	}
	if !s.hasher.Verify(password, u.PasswordHash) {
		return nil, nil, auth.ErrInvalidCredentials()
	}
	if !u.IsActive() {
		return nil, nil, auth.ErrUserInactive()
	}

	r, err := s.roleRepo.GetByID(ctx, u.RoleID)
	if err != nil {
		return nil, nil, err
	}
	return u, r, nil
}

// GetUserWithRole loads an active user and its role
func (s *UserService) GetUserWithRole(ctx context.Context, id kernel.UserID) (*user.User, *role.Role, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if !u.IsActive() {
		return nil, nil, auth.ErrUserInactive()
	}
	r, err := s.roleRepo.GetByID(ctx, u.RoleID)
	if err != nil {
		return nil, nil, err
	}
	return u, r, nil
}

func (s *UserService) resolveRole(ctx context.Context, roleID kernel.RoleID) (kernel.RoleID, error) {
	if roleID.IsEmpty() {
		r, err := s.roleRepo.GetByName(ctx, role.RoleEmployee)
		if err != nil {
			return "", errx.Wrap(err, "default role is missing", errx.TypeInternal)
		}
		return r.ID, nil
	}
	if _, err := s.roleRepo.GetByID(ctx, roleID); err != nil {
		return "", err
	}
	return roleID, nil
}

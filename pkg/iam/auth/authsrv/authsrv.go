package authsrv

import (
	"context"

	"github.com/Abraxas-365/peoplehub/pkg/errx"
	"github.com/Abraxas-365/peoplehub/pkg/iam/auth"
	"github.com/Abraxas-365/peoplehub/pkg/iam/role"
	"github.com/Abraxas-365/peoplehub/pkg/iam/role/rolesrv"
	"github.com/Abraxas-365/peoplehub/pkg/iam/user"
	"github.com/Abraxas-365/peoplehub/pkg/iam/user/usersrv"
	"github.com/Abraxas-365/peoplehub/pkg/kernel"
)

type RegisterRequest struct {
	Name     string        `json:"name"`
	Email    string        `json:"email"`
	Password string        `json:"password"`
	RoleID   kernel.RoleID `json:"role_id"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type TokenResponse struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	ExpiresIn    int64      `json:"expires_in"`
	User         *user.User `json:"user"`
}

type MeResponse struct {
	User *user.User `json:"user"`
	Role *role.Role `json:"role"`
}

type AuthService struct {
	users  *usersrv.UserService
	roles  *rolesrv.RoleService
	tokens auth.TokenService
}

func NewAuthService(users *usersrv.UserService, roles *rolesrv.RoleService, tokens auth.TokenService) *AuthService {
	return &AuthService{
		users:  users,
		roles:  roles,
		tokens: tokens,
	}
}

// Register creates an account and logs it in. The admin role cannot be self-assigned.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*TokenResponse, error) {
	if !req.RoleID.IsEmpty() {
		r, err := s.roles.GetRole(ctx, req.RoleID)
		if err != nil {
			return nil, err
		}
		if r.Name == role.RoleAdmin {
			return nil, auth.ErrInsufficientPermissions().WithDetail("role", r.Name)
		}
	}

	u, err := s.users.CreateUser(ctx, user.CreateUserRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		RoleID:   req.RoleID,
	})
	if err != nil {
		return nil, err
	}

	r, err := s.roles.GetRole(ctx, u.RoleID)
	if err != nil {
		return nil, err
	}
	return s.issue(u, r)
}

// Login verifies credentials and issues a token pair
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	u, r, err := s.users.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	return s.issue(u, r)
}

// Refresh exchanges a refresh token for a new pair, re-reading the role scopes
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*TokenResponse, error) {
	claims, err := s.tokens.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, err
	}

	u, r, err := s.users.GetUserWithRole(ctx, claims.UserID)
	if err != nil {
		if errx.IsCode(err, user.CodeUserNotFound) {
			return nil, auth.ErrInvalidToken()
		}
		return nil, err
	}
	return s.issue(u, r)
}

func (s *AuthService) Me(ctx context.Context, userID kernel.UserID) (*MeResponse, error) {
	u, r, err := s.users.GetUserWithRole(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &MeResponse{User: u, Role: r}, nil
}

func (s *AuthService) issue(u *user.User, r *role.Role) (*TokenResponse, error) {
	access, err := s.tokens.GenerateAccessToken(auth.TokenClaims{
		UserID: u.ID,
		Email:  u.Email,
		RoleID: r.ID,
		Scopes: r.Scopes,
	})
	if err != nil {
		return nil, err
	}

	refresh, err := s.tokens.GenerateRefreshToken(u.ID)
	if err != nil {
		return nil, err
	}

	return &TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.tokens.AccessTokenTTL().Seconds()),
		User:         u,
	}, nil
}

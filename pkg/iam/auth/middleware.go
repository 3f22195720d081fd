package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Abraxas-365/peoplehub/pkg/kernel"
)

const authContextKey = "auth_context"

// AuthContext is the authenticated caller attached to a request
type AuthContext struct {
	UserID *kernel.UserID
	Email  kernel.Email
	RoleID kernel.RoleID
	Scopes []string
}

// HasScope reports whether the caller holds scope
func (a *AuthContext) HasScope(scope string) bool {
	return HasScope(a.Scopes, scope)
}

// IsSelf reports whether the caller is userID
func (a *AuthContext) IsSelf(userID kernel.UserID) bool {
	return a.UserID != nil && *a.UserID == userID
}

// UnifiedAuthMiddleware validates bearer tokens and enforces scopes
type UnifiedAuthMiddleware struct {
	tokens TokenService
}

func NewUnifiedAuthMiddleware(tokens TokenService) *UnifiedAuthMiddleware {
	return &UnifiedAuthMiddleware{tokens: tokens}
}

// Authenticate requires a valid access token and stores the AuthContext
func (m *UnifiedAuthMiddleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return ErrMissingToken()
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			return ErrInvalidToken().WithDetail("reason", "invalid authorization format")
		}

		claims, err := m.tokens.ValidateAccessToken(parts[1])
		if err != nil {
			return err
		}

		userID := claims.UserID
		c.Locals(authContextKey, &AuthContext{
			UserID: &userID,
			Email:  claims.Email,
			RoleID: claims.RoleID,
			Scopes: claims.Scopes,
		})
		return c.Next()
	}
}

// RequireScope requires a single scope. Must run after Authenticate.
func (m *UnifiedAuthMiddleware) RequireScope(scope string) fiber.Handler {
	return m.RequireScopes(scope)
}

// RequireScopes requires every listed scope
func (m *UnifiedAuthMiddleware) RequireScopes(scopes ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authContext, ok := GetAuthContext(c)
		if !ok {
			return ErrMissingToken()
		}
		if !HasAllScopes(authContext.Scopes, scopes...) {
			return ErrInsufficientPermissions().WithDetail("required", scopes)
		}
		return c.Next()
	}
}

// RequireAnyScope passes when the caller holds at least one of scopes
func (m *UnifiedAuthMiddleware) RequireAnyScope(scopes ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authContext, ok := GetAuthContext(c)
		if !ok {
			return ErrMissingToken()
		}
		for _, s := range scopes {
			if authContext.HasScope(s) {
				return c.Next()
			}
		}
		return ErrInsufficientPermissions().WithDetail("required_any", scopes)
	}
}

// GetAuthContext returns the caller set by Authenticate
func GetAuthContext(c *fiber.Ctx) (*AuthContext, bool) {
	authContext, ok := c.Locals(authContextKey).(*AuthContext)
	return authContext, ok && authContext != nil
}

package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Abraxas-365/peoplehub/pkg/errx"
	"github.com/Abraxas-365/peoplehub/pkg/kernel"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// TokenClaims is what a validated token tells us about the caller
type TokenClaims struct {
	UserID    kernel.UserID
	Email     kernel.Email
	RoleID    kernel.RoleID
	Scopes    []string
	TokenType string
	ExpiresAt time.Time
}

// TokenService issues and validates bearer tokens
type TokenService interface {
	// GenerateAccessToken signs a short-lived token carrying the caller's scopes
	GenerateAccessToken(claims TokenClaims) (string, error)
	// GenerateRefreshToken signs a long-lived token that can only mint access tokens
	GenerateRefreshToken(userID kernel.UserID) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	ValidateRefreshToken(token string) (*TokenClaims, error)
	AccessTokenTTL() time.Duration
}

type jwtClaims struct {
	UserID    string   `json:"user_id"`
	Email     string   `json:"email,omitempty"`
	RoleID    string   `json:"role_id,omitempty"`
	Scopes    []string `json:"scopes,omitempty"`
	TokenType string   `json:"token_type"`
	jwt.RegisteredClaims
}

// JWTService is a TokenService signing HS256 tokens
type JWTService struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewJWTService creates a new JWT token service
func NewJWTService(secret, issuer string, accessTTL, refreshTTL time.Duration) *JWTService {
	return &JWTService{
		secret:     []byte(secret),
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (s *JWTService) AccessTokenTTL() time.Duration {
	return s.accessTTL
}

func (s *JWTService) GenerateAccessToken(claims TokenClaims) (string, error) {
	return s.sign(jwtClaims{
		UserID:    claims.UserID.String(),
		Email:     string(claims.Email),
		RoleID:    claims.RoleID.String(),
		Scopes:    claims.Scopes,
		TokenType: TokenTypeAccess,
	}, s.accessTTL)
}

func (s *JWTService) GenerateRefreshToken(userID kernel.UserID) (string, error) {
	return s.sign(jwtClaims{
		UserID:    userID.String(),
		TokenType: TokenTypeRefresh,
	}, s.refreshTTL)
}

func (s *JWTService) ValidateAccessToken(token string) (*TokenClaims, error) {
	return s.validate(token, TokenTypeAccess)
}

func (s *JWTService) ValidateRefreshToken(token string) (*TokenClaims, error) {
	return s.validate(token, TokenTypeRefresh)
}

func (s *JWTService) sign(c jwtClaims, ttl time.Duration) (string, error) {
	now := s.now()
	c.RegisteredClaims = jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    s.issuer,
		Subject:   c.UserID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
	if err != nil {
		return "", errx.Wrap(err, "failed to sign token", errx.TypeInternal)
	}
	return signed, nil
}

func (s *JWTService) validate(tokenString, tokenType string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwtClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, ErrInvalidToken().WithCause(err)
	}

	c, ok := token.Claims.(*jwtClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken()
	}
	if c.TokenType != tokenType {
		return nil, ErrInvalidToken().WithDetail("token_type", c.TokenType)
	}

	return &TokenClaims{
		UserID:    kernel.UserID(c.UserID),
		Email:     kernel.Email(c.Email),
		RoleID:    kernel.RoleID(c.RoleID),
		Scopes:    c.Scopes,
		TokenType: c.TokenType,
		ExpiresAt: c.ExpiresAt.Time,
	}, nil
}

package authapi

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abraxas-365/peoplehub/pkg/errx/errxfiber"
	"github.com/Abraxas-365/peoplehub/pkg/iam/auth"
	"github.com/Abraxas-365/peoplehub/pkg/iam/auth/authsrv"
	"github.com/Abraxas-365/peoplehub/pkg/iam/iamtest"
	"github.com/Abraxas-365/peoplehub/pkg/iam/role/rolesrv"
	"github.com/Abraxas-365/peoplehub/pkg/iam/user/usersrv"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	roles := iamtest.NewRoleRepo()
	roles.SeedRoles()
	users := iamtest.NewUserRepo()

	tokens := auth.NewJWTService("secret", "peoplehub", 15*time.Minute, time.Hour)
	userService := usersrv.NewUserService(users, roles, auth.NewPasswordHasher(4))
	authService := authsrv.NewAuthService(userService, rolesrv.NewRoleService(roles), tokens)

	app := errxfiber.NewApp("test")
	RegisterRoutes(app, NewHandlers(authService), auth.NewUnifiedAuthMiddleware(tokens))
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, token string) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	out := map[string]any{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestRegisterLoginMeRefresh(t *testing.T) {
	app := newTestApp(t)

	status, body := doJSON(t, app, fiber.MethodPost, "/api/auth/register", map[string]any{
		"name": "Ana", "email": "Ana@Example.com", "password": "s3cretpass",
	}, "")
	require.Equal(t, fiber.StatusCreated, status)
	assert.NotEmpty(t, body["access_token"])

	status, body = doJSON(t, app, fiber.MethodPost, "/api/auth/login", map[string]any{
		"email": "ana@example.com", "password": "s3cretpass",
	}, "")
	require.Equal(t, fiber.StatusOK, status)
	access := body["access_token"].(string)
	refresh := body["refresh_token"].(string)
	assert.EqualValues(t, 900, body["expires_in"])

	status, body = doJSON(t, app, fiber.MethodGet, "/api/auth/me", nil, access)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "employee", body["role"].(map[string]any)["name"])
	_, leaked := body["user"].(map[string]any)["password_hash"]
	assert.False(t, leaked)

	status, body = doJSON(t, app, fiber.MethodPost, "/api/auth/refresh", map[string]any{"refresh_token": refresh}, "")
	require.Equal(t, fiber.StatusOK, status)
	assert.NotEmpty(t, body["access_token"])

	status, _ = doJSON(t, app, fiber.MethodPost, "/api/auth/refresh", map[string]any{"refresh_token": access}, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestLoginFailures(t *testing.T) {
	app := newTestApp(t)

	status, _ := doJSON(t, app, fiber.MethodPost, "/api/auth/register", map[string]any{
		"name": "Ana", "email": "ana@example.com", "password": "s3cretpass",
	}, "")
	require.Equal(t, fiber.StatusCreated, status)

	status, body := doJSON(t, app, fiber.MethodPost, "/api/auth/login", map[string]any{
		"email": "ana@example.com", "password": "wrong-password",
	}, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, auth.CodeInvalidCredentials, body["code"])

	status, _ = doJSON(t, app, fiber.MethodPost, "/api/auth/login", map[string]any{
		"email": "nobody@example.com", "password": "s3cretpass",
	}, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = doJSON(t, app, fiber.MethodPost, "/api/auth/register", map[string]any{
		"name": "Ana", "email": "ana@example.com", "password": "s3cretpass",
	}, "")
	assert.Equal(t, fiber.StatusConflict, status)
}

func TestRegisterCannotPickAdmin(t *testing.T) {
	app := newTestApp(t)

	status, _ := doJSON(t, app, fiber.MethodPost, "/api/auth/register", map[string]any{
		"name": "Eve", "email": "eve@example.com", "password": "s3cretpass", "role_id": "admin",
	}, "")
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestMeRequiresToken(t *testing.T) {
	app := newTestApp(t)

	status, _ := doJSON(t, app, fiber.MethodGet, "/api/auth/me", nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

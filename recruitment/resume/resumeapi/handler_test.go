package resumeapi

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abraxas-365/peoplehub/pkg/errx/errxfiber"
	"github.com/Abraxas-365/peoplehub/pkg/fsx/fsxlocal"
	"github.com/Abraxas-365/peoplehub/pkg/iam/auth"
	"github.com/Abraxas-365/peoplehub/pkg/kernel"
	"github.com/Abraxas-365/peoplehub/recruitment/resume/resumesrv"
	"github.com/Abraxas-365/peoplehub/recruitment/resume/resumetest"
)

type testEnv struct {
	app    *fiber.App
	tokens *auth.JWTService
	queue  *resumetest.Queue
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	tokens := auth.NewJWTService("secret", "peoplehub", 15*time.Minute, time.Hour)
	queue := &resumetest.Queue{}
	service := resumesrv.NewService(
		resumetest.NewResumeRepo(),
		resumetest.NewJobRepo(),
		queue,
		fsxlocal.NewLocalFileSystem(t.TempDir()),
		&resumetest.Pipeline{},
	)

	app := errxfiber.NewApp("test")
	NewResumeHandlers(service).RegisterRoutes(app, auth.NewUnifiedAuthMiddleware(tokens))
	return &testEnv{app: app, tokens: tokens, queue: queue}
}

func (e *testEnv) token(t *testing.T, userID string, scopes ...string) string {
	t.Helper()
	tok, err := e.tokens.GenerateAccessToken(auth.TokenClaims{UserID: kernel.UserID(userID), Scopes: scopes})
	require.NoError(t, err)
	return tok
}

func (e *testEnv) do(t *testing.T, method, path string, body *bytes.Buffer, contentType, token string) (int, map[string]any) {
	t.Helper()
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set(fiber.HeaderContentType, contentType)
	}
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)

	resp, err := e.app.Test(req)
	require.NoError(t, err)

	out := map[string]any{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func multipartUpload(t *testing.T, fileName string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	part, err := w.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 resume"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestUploadSyncAndGet(t *testing.T) {
	env := newTestEnv(t)
	owner := env.token(t, "u1", auth.ScopeResumesRead, auth.ScopeResumesWrite)

	body, ct := multipartUpload(t, "cv.pdf", nil)
	status, out := env.do(t, fiber.MethodPost, "/api/resumes", body, ct, owner)
	require.Equal(t, fiber.StatusCreated, status)

	r := out["resume"].(map[string]any)
	assert.Equal(t, "parsed", r["status"])
	assert.Len(t, out["matches"], 1)

	id := r["id"].(string)
	status, _ = env.do(t, fiber.MethodGet, "/api/resumes/"+id, nil, "", owner)
	assert.Equal(t, fiber.StatusOK, status)

	stranger := env.token(t, "u2", auth.ScopeResumesRead)
	status, _ = env.do(t, fiber.MethodGet, "/api/resumes/"+id, nil, "", stranger)
	assert.Equal(t, fiber.StatusForbidden, status)

	hr := env.token(t, "hr", auth.ScopeResumesAll)
	status, _ = env.do(t, fiber.MethodGet, "/api/resumes/"+id, nil, "", hr)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestUploadAsyncReturnsJob(t *testing.T) {
	env := newTestEnv(t)
	owner := env.token(t, "u1", auth.ScopeResumesRead, auth.ScopeResumesWrite)

	body, ct := multipartUpload(t, "cv.pdf", map[string]string{"async": "true"})
	status, out := env.do(t, fiber.MethodPost, "/api/resumes", body, ct, owner)
	require.Equal(t, fiber.StatusAccepted, status)
	jobID, _ := out["job_id"].(string)
	require.NotEmpty(t, jobID)
	assert.Len(t, env.queue.Ready, 1)

	status, out = env.do(t, fiber.MethodGet, "/api/resumes/jobs/"+jobID, nil, "", owner)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "pending", out["status"])
}

func TestUploadRejectsBadInput(t *testing.T) {
	env := newTestEnv(t)
	owner := env.token(t, "u1", auth.ScopeResumesWrite)

	body, ct := multipartUpload(t, "cv.txt", nil)
	status, _ := env.do(t, fiber.MethodPost, "/api/resumes", body, ct, owner)
	assert.Equal(t, fiber.StatusBadRequest, status)

	body, ct = multipartUpload(t, "cv.pdf", map[string]string{"provider": "claude"})
	status, _ = env.do(t, fiber.MethodPost, "/api/resumes", body, ct, owner)
	assert.Equal(t, fiber.StatusBadRequest, status)

	readOnly := env.token(t, "u1", auth.ScopeResumesRead)
	body, ct = multipartUpload(t, "cv.pdf", nil)
	status, _ = env.do(t, fiber.MethodPost, "/api/resumes", body, ct, readOnly)
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestListIsScopedToCaller(t *testing.T) {
	env := newTestEnv(t)
	u1 := env.token(t, "u1", auth.ScopeResumesRead, auth.ScopeResumesWrite)
	u2 := env.token(t, "u2", auth.ScopeResumesRead, auth.ScopeResumesWrite)

	for _, tok := range []string{u1, u2} {
		body, ct := multipartUpload(t, "cv.pdf", nil)
		status, _ := env.do(t, fiber.MethodPost, "/api/resumes", body, ct, tok)
		require.Equal(t, fiber.StatusCreated, status)
	}

	status, out := env.do(t, fiber.MethodGet, "/api/resumes", nil, "", u1)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, out["items"], 1)

	status, _ = env.do(t, fiber.MethodGet, "/api/resumes?owner_id=u2", nil, "", u1)
	assert.Equal(t, fiber.StatusForbidden, status)

	hr := env.token(t, "hr", auth.ScopeResumesAll)
	status, out = env.do(t, fiber.MethodGet, "/api/resumes", nil, "", hr)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, out["items"], 2)
}

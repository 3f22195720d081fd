package expenseapi

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abraxas-365/peoplehub/pkg/errx/errxfiber"
	"github.com/Abraxas-365/peoplehub/pkg/fsx/fsxlocal"
	"github.com/Abraxas-365/peoplehub/pkg/iam/auth"
	"github.com/Abraxas-365/peoplehub/pkg/iam/iamtest"
	"github.com/Abraxas-365/peoplehub/pkg/iam/user"
	"github.com/Abraxas-365/peoplehub/pkg/kernel"
	"github.com/Abraxas-365/peoplehub/workforce/expense"
	"github.com/Abraxas-365/peoplehub/workforce/expense/expensesrv"
	"github.com/Abraxas-365/peoplehub/workforce/expense/expensetest"
	"github.com/Abraxas-365/peoplehub/workforce/notification"
)

type notice struct {
	to   kernel.UserID
	kind notification.Kind
}

type fakeNotifier struct {
	sent []notice
}

func (f *fakeNotifier) NotifyQuietly(ctx context.Context, recipient kernel.UserID, kind notification.Kind, message string) {
	f.sent = append(f.sent, notice{to: recipient, kind: kind})
}

type testEnv struct {
	app      *fiber.App
	tokens   *auth.JWTService
	repo     *expensetest.Repo
	notifier *fakeNotifier
	seq      int
}

const (
	employee = "emp"
	manager  = "mgr"
)

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	users := iamtest.NewUserRepo()
	users.Put(user.User{ID: employee, Name: "John Doe", Email: "john@test.com", Status: user.UserStatusActive})
	users.Put(user.User{ID: manager, Name: "Jane Manager", Email: "jane@test.com", Status: user.UserStatusActive})

	repo := expensetest.NewRepo()
	notifier := &fakeNotifier{}
	service := expensesrv.NewExpenseService(repo, users, fsxlocal.NewLocalFileSystem(t.TempDir()), notifier, expense.Policy{
		Limits:               map[string]float64{"food": 50, "travel": 1000, "lodging": 300, "supplies": 200, "other": 100},
		ReceiptRequiredAbove: 75,
	})

	tokens := auth.NewJWTService("secret", "peoplehub", 15*time.Minute, time.Hour)
	app := errxfiber.NewApp("test")
	RegisterRoutes(app, NewHandlers(service), auth.NewUnifiedAuthMiddleware(tokens))

	return &testEnv{app: app, tokens: tokens, repo: repo, notifier: notifier}
}

func (e *testEnv) employeeToken(t *testing.T) string {
	return e.token(t, employee, auth.ScopeExpensesSubmit, auth.ScopeExpensesRead)
}

func (e *testEnv) managerToken(t *testing.T) string {
	return e.token(t, manager, auth.ScopeExpensesRead, auth.ScopeExpensesApprove, auth.ScopeExpensesReports)
}

func (e *testEnv) token(t *testing.T, userID string, scopes ...string) string {
	t.Helper()
	tok, err := e.tokens.GenerateAccessToken(auth.TokenClaims{UserID: kernel.UserID(userID), Scopes: scopes})
	require.NoError(t, err)
	return tok
}

func (e *testEnv) do(t *testing.T, method, path, contentType string, body *bytes.Buffer, token string) (int, map[string]any) {
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

func (e *testEnv) doJSON(t *testing.T, method, path string, payload any, token string) (int, map[string]any) {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return e.do(t, method, path, fiber.MIMEApplicationJSON, bytes.NewBuffer(data), token)
}

func (e *testEnv) submitForm(t *testing.T, fields url.Values, token string) (int, map[string]any) {
	t.Helper()
	return e.do(t, fiber.MethodPost, "/api/expenses/submit", fiber.MIMEApplicationForm,
		bytes.NewBufferString(fields.Encode()), token)
}

// seed stores an expense of the employee directly and returns its ID
func (e *testEnv) seed(amount float64, status expense.Status, category string) string {
	e.seq++
	id := kernel.ExpenseID(strings.Repeat("e", e.seq))
	e.repo.Put(expense.Expense{
		ID:     id,
		UserID: employee,
		Items:  []expense.Item{{Category: category, Amount: amount, Description: "Test expense", ExpenseDate: "2024-07-28"}},
		Total:  amount,
		Status: status,
	})
	return id.String()
}

func TestSubmitExpense(t *testing.T) {
	env := newTestEnv(t)
	tok := env.employeeToken(t)

	status, body := env.submitForm(t, url.Values{
		"user_id":     {employee},
		"category":    {"Food"},
		"amount":      {"50.00"},
		"description": {"Team lunch meeting"},
		"trip_id":     {"Q4-2024"},
	}, tok)
	require.Equal(t, fiber.StatusCreated, status, "%v", body)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]any)
	assert.NotEmpty(t, data["expense_id"])
	assert.Equal(t, "pending", data["status"])

	status, body = env.doJSON(t, fiber.MethodPost, "/api/expenses/submit", map[string]any{
		"category": "Travel", "amount": 120.5, "description": "Taxi",
	}, tok)
	require.Equal(t, fiber.StatusCreated, status, "%v", body)
}

func TestSubmitExpenseWithReceipt(t *testing.T) {
	env := newTestEnv(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("category", "Lodging"))
	require.NoError(t, w.WriteField("amount", "180"))
	require.NoError(t, w.WriteField("description", "Hotel"))
	part, err := w.CreateFormFile("receipt", "hotel.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 receipt"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	status, body := env.do(t, fiber.MethodPost, "/api/expenses/submit", w.FormDataContentType(), &buf, env.employeeToken(t))
	require.Equal(t, fiber.StatusCreated, status, "%v", body)

	id := body["data"].(map[string]any)["expense_id"].(string)
	stored, err := env.repo.GetByID(context.Background(), kernel.ExpenseID(id))
	require.NoError(t, err)
	assert.Equal(t, "receipts/emp/"+id+".pdf", stored.ReceiptURL)

	status, body = env.do(t, fiber.MethodGet, "/api/expenses/policy-check/"+id, "", nil, env.employeeToken(t))
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["is_compliant"], "%v", body)
}

func TestSubmitExpenseInvalid(t *testing.T) {
	env := newTestEnv(t)
	tok := env.employeeToken(t)

	tests := []struct {
		name   string
		fields url.Values
		want   int
	}{
		{"missing fields", url.Values{"user_id": {employee}, "category": {"Food"}}, fiber.StatusBadRequest},
		{"negative amount", url.Values{"user_id": {employee}, "category": {"Food"}, "amount": {"-50.00"}, "description": {"Test"}}, fiber.StatusBadRequest},
		{"unknown user", url.Values{"user_id": {"non-existent-uuid"}, "category": {"Food"}, "amount": {"50.00"}, "description": {"Test"}}, fiber.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := env.submitForm(t, tt.fields, tok)
			assert.Equal(t, tt.want, status)
			assert.Contains(t, body, "error")
		})
	}

	admin := env.token(t, "admin", auth.ScopeExpensesAll)
	status, _ := env.submitForm(t, url.Values{
		"user_id": {"non-existent-uuid"}, "category": {"Food"}, "amount": {"50.00"}, "description": {"Test"},
	}, admin)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestListExpenses(t *testing.T) {
	env := newTestEnv(t)
	env.seed(50, expense.StatusPending, "Food")
	env.seed(100, expense.StatusApproved, "Food")
	env.seed(75, expense.StatusRejected, "Food")

	status, body := env.do(t, fiber.MethodGet, "/api/expenses", "", nil, env.managerToken(t))
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["data"], 3)
	assert.Contains(t, body, "pagination")

	status, body = env.do(t, fiber.MethodGet, "/api/expenses?status=pending", "", nil, env.managerToken(t))
	require.Equal(t, fiber.StatusOK, status)
	for _, item := range body["data"].([]any) {
		assert.Equal(t, "pending", item.(map[string]any)["status"])
	}

	stranger := env.token(t, "someone", auth.ScopeExpensesRead)
	status, body = env.do(t, fiber.MethodGet, "/api/expenses", "", nil, stranger)
	require.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, body["data"])
}

func TestListExpensesPagination(t *testing.T) {
	env := newTestEnv(t)
	for i := 0; i < 15; i++ {
		env.seed(10+float64(i), expense.StatusPending, "Food")
	}

	status, body := env.do(t, fiber.MethodGet, "/api/expenses?page=1&limit=5", "", nil, env.managerToken(t))
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["data"], 5)
	pagination := body["pagination"].(map[string]any)
	assert.EqualValues(t, 1, pagination["current_page"])
	assert.EqualValues(t, 3, pagination["total_pages"])
	assert.EqualValues(t, 15, pagination["total"])
}

func TestGetExpense(t *testing.T) {
	env := newTestEnv(t)
	id := env.seed(50, expense.StatusPending, "Food")

	status, body := env.do(t, fiber.MethodGet, "/api/expenses/"+id, "", nil, env.employeeToken(t))
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, id, body["id"])

	status, _ = env.do(t, fiber.MethodGet, "/api/expenses/non-existent-id", "", nil, env.employeeToken(t))
	assert.Equal(t, fiber.StatusNotFound, status)

	other := env.token(t, "someone", auth.ScopeExpensesRead)
	status, _ = env.do(t, fiber.MethodGet, "/api/expenses/"+id, "", nil, other)
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestApproveExpense(t *testing.T) {
	env := newTestEnv(t)
	id := env.seed(50, expense.StatusPending, "Food")
	tok := env.managerToken(t)

	status, _ := env.doJSON(t, fiber.MethodPut, "/api/expenses/"+id+"/approve", map[string]any{"comments": "Approved"}, tok)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, body := env.doJSON(t, fiber.MethodPut, "/api/expenses/"+id+"/approve", map[string]any{
		"approver_id": manager, "comments": "Approved - Valid expense",
	}, tok)
	require.Equal(t, fiber.StatusOK, status, "%v", body)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "approved", body["data"].(map[string]any)["status"])
	assert.Equal(t, []notice{{to: employee, kind: notification.KindExpenseApproved}}, env.notifier.sent)

	status, _ = env.doJSON(t, fiber.MethodPut, "/api/expenses/"+id+"/approve", map[string]any{"approver_id": manager}, tok)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestApproveExpenseForbidden(t *testing.T) {
	env := newTestEnv(t)
	id := env.seed(50, expense.StatusPending, "Food")

	status, _ := env.doJSON(t, fiber.MethodPut, "/api/expenses/"+id+"/approve", map[string]any{"approver_id": manager}, env.employeeToken(t))
	assert.Equal(t, fiber.StatusForbidden, status)

	self := env.token(t, employee, auth.ScopeExpensesApprove)
	status, _ = env.doJSON(t, fiber.MethodPut, "/api/expenses/"+id+"/approve", map[string]any{"approver_id": employee}, self)
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestRejectExpense(t *testing.T) {
	env := newTestEnv(t)
	id := env.seed(50, expense.StatusPending, "Food")
	tok := env.managerToken(t)

	status, _ := env.doJSON(t, fiber.MethodPut, "/api/expenses/"+id+"/reject", map[string]any{"approver_id": manager}, tok)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, body := env.doJSON(t, fiber.MethodPut, "/api/expenses/"+id+"/reject", map[string]any{
		"approver_id": manager, "reason": "Invalid receipt",
	}, tok)
	require.Equal(t, fiber.StatusOK, status, "%v", body)
	assert.Equal(t, "rejected", body["data"].(map[string]any)["status"])
	assert.Equal(t, []notice{{to: employee, kind: notification.KindExpenseRejected}}, env.notifier.sent)
}

func TestPendingExpenses(t *testing.T) {
	env := newTestEnv(t)
	env.seed(50, expense.StatusPending, "Food")
	env.seed(60, expense.StatusPending, "Food")
	env.seed(70, expense.StatusApproved, "Food")

	status, body := env.do(t, fiber.MethodGet, "/api/expenses/pending", "", nil, env.managerToken(t))
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["data"], 2)

	status, _ = env.do(t, fiber.MethodGet, "/api/expenses/pending", "", nil, env.employeeToken(t))
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestExpenseReports(t *testing.T) {
	env := newTestEnv(t)
	env.seed(100, expense.StatusPending, "Food")
	env.seed(200, expense.StatusApproved, "Travel")
	env.seed(50, expense.StatusPending, "Food")

	status, body := env.do(t, fiber.MethodGet, "/api/expenses/reports", "", nil, env.managerToken(t))
	require.Equal(t, fiber.StatusOK, status)

	summary := body["summary"].(map[string]any)
	assert.EqualValues(t, 350, summary["total_expenses"])
	assert.EqualValues(t, 200, summary["total_amount"])
	assert.EqualValues(t, 2, summary["pending"])
	assert.EqualValues(t, 1, summary["approved"])

	breakdown := body["category_breakdown"].(map[string]any)
	assert.EqualValues(t, 150, breakdown["food"])
	assert.EqualValues(t, 200, breakdown["travel"])
}

func TestPolicyCheck(t *testing.T) {
	env := newTestEnv(t)
	ok := env.seed(30, expense.StatusPending, "Food")
	over := env.seed(80, expense.StatusPending, "Food")

	status, body := env.do(t, fiber.MethodGet, "/api/expenses/policy-check/"+ok, "", nil, env.employeeToken(t))
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["is_compliant"])
	assert.Empty(t, body["violations"])

	status, body = env.do(t, fiber.MethodGet, "/api/expenses/policy-check/"+over, "", nil, env.employeeToken(t))
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, false, body["is_compliant"])
	assert.NotEmpty(t, body["violations"])
}

func TestUpdateExpense(t *testing.T) {
	env := newTestEnv(t)
	id := env.seed(50, expense.StatusPending, "Food")
	approved := env.seed(50, expense.StatusApproved, "Food")

	payload := map[string]any{
		"items": []map[string]any{{
			"category": "Food", "amount": 60.0, "description": "Updated description", "expense_date": "2024-07-28",
		}},
		"total": 60.0,
	}

	status, body := env.doJSON(t, fiber.MethodPut, "/api/expenses/"+id, payload, env.employeeToken(t))
	require.Equal(t, fiber.StatusOK, status, "%v", body)
	assert.EqualValues(t, 60, body["data"].(map[string]any)["total"])

	status, _ = env.doJSON(t, fiber.MethodPut, "/api/expenses/"+approved, payload, env.employeeToken(t))
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestDeleteExpense(t *testing.T) {
	env := newTestEnv(t)
	id := env.seed(50, expense.StatusPending, "Food")
	approved := env.seed(50, expense.StatusApproved, "Food")
	tok := env.employeeToken(t)

	status, _ := env.do(t, fiber.MethodDelete, "/api/expenses/"+id, "", nil, tok)
	require.Equal(t, fiber.StatusOK, status)

	status, _ = env.do(t, fiber.MethodGet, "/api/expenses/"+id, "", nil, tok)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = env.do(t, fiber.MethodDelete, "/api/expenses/"+approved, "", nil, tok)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/koenig-hr/fnf-backend-go/internal/domain/employee"
	"github.com/koenig-hr/fnf-backend-go/internal/domain/settlement"
	"github.com/koenig-hr/fnf-backend-go/internal/domain/user"
	"github.com/koenig-hr/fnf-backend-go/internal/pkg/jwt"
	authservice "github.com/koenig-hr/fnf-backend-go/internal/service/auth"
	employeeservice "github.com/koenig-hr/fnf-backend-go/internal/service/employee"
	"github.com/koenig-hr/fnf-backend-go/internal/service/epf"
	settlementservice "github.com/koenig-hr/fnf-backend-go/internal/service/settlement"
	"github.com/koenig-hr/fnf-backend-go/internal/service/statement"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// ========== IN-MEMORY FIXTURES ==========

type memUserRepo struct{ users map[string]user.User }

func (m *memUserRepo) GetByUsername(_ context.Context, username string) (user.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (m *memUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (m *memUserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	m.users[u.ID] = u
	return u, nil
}

func (m *memUserRepo) UpdatePassword(_ context.Context, userID, hash string, mustChange bool) error {
	u, ok := m.users[userID]
	if !ok {
		return user.ErrUserNotFound
	}
	u.PasswordHash = &hash
	u.MustChangePassword = mustChange
	m.users[userID] = u
	return nil
}

type memEmployeeRepo struct{ employees map[string]employee.Employee }

func (m *memEmployeeRepo) Upsert(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	m.employees[emp.EmployeeID] = emp
	return emp, nil
}

func (m *memEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	emp, ok := m.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (m *memEmployeeRepo) List(_ context.Context) ([]employee.Employee, error) {
	out := make([]employee.Employee, 0, len(m.employees))
	for _, emp := range m.employees {
		out = append(out, emp)
	}
	return out, nil
}

func (m *memEmployeeRepo) ListFieldNames(_ context.Context) ([]string, error) { return nil, nil }

type memSettlementRepo struct{ records map[string]settlement.Record }

func (m *memSettlementRepo) Save(_ context.Context, rec settlement.Record) (settlement.Record, error) {
	existing, ok := m.records[rec.EmployeeID]
	if ok && rec.Version != existing.Version {
		return settlement.Record{}, settlement.ErrVersionConflict
	}
	rec.Version++
	m.records[rec.EmployeeID] = rec
	return rec, nil
}

func (m *memSettlementRepo) GetByEmployeeID(_ context.Context, id string) (settlement.Record, error) {
	rec, ok := m.records[id]
	if !ok {
		return settlement.Record{}, settlement.ErrSettlementNotFound
	}
	return rec, nil
}

func (m *memSettlementRepo) List(_ context.Context) ([]settlement.Record, error) {
	out := make([]settlement.Record, 0, len(m.records))
	for _, rec := range m.records {
		out = append(out, rec)
	}
	return out, nil
}

func (m *memSettlementRepo) ListByStatus(_ context.Context, status settlement.Status) ([]settlement.Record, error) {
	var out []settlement.Record
	for _, rec := range m.records {
		if rec.Status == status {
			out = append(out, rec)
		}
	}
	return out, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	hashStr := string(hash)

	userRepo := &memUserRepo{users: map[string]user.User{
		"u-payroll": {ID: "u-payroll", Username: "priya", PasswordHash: &hashStr, Role: user.RolePayroll},
		"u-tax":     {ID: "u-tax", Username: "tina", PasswordHash: &hashStr, Role: user.RoleTax},
	}}

	doj, _ := time.Parse(time.DateOnly, "2018-01-10")
	employeeRepo := &memEmployeeRepo{employees: map[string]employee.Employee{
		"1042": {
			EmployeeID:   "1042",
			Name:         "Asha Verma",
			BaseLocation: "Delhi",
			DOJ:          doj,
			MonthlyGross: decimal.RequireFromString("60000"),
		},
	}}
	settlementRepo := &memSettlementRepo{records: make(map[string]settlement.Record)}

	jwtService := jwt.NewJWTService("router-test-secret", "1h")
	computer := settlementservice.NewComputer(epf.NewResolver(nil), nil)

	return NewRouter(
		jwtService,
		NewAuthHandler(authservice.NewAuthService(userRepo, jwtService)),
		NewEmployeeHandler(employeeservice.NewEmployeeService(employeeRepo, nil)),
		NewSettlementHandler(settlementservice.NewSettlementService(nil, settlementRepo, employeeRepo, computer, statement.NewGenerator())),
	)
}

func login(t *testing.T, router http.Handler, username string) string {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"username": username, "password": "password123"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.AccessToken)
	return resp.Data.AccessToken
}

func doJSON(router http.Handler, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		b, _ := json.Marshal(payload)
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func submitPayload() map[string]interface{} {
	return map[string]interface{}{
		"employee_id": "1042",
		"lwd":         "2025-09-30",
		"regime":      "Old",
		"months": []map[string]interface{}{
			{"year": 2025, "month": 9, "present_days": 22},
		},
	}
}

// ========== TESTS ==========

func TestRouter_LoginAndSubmitFlow(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	payrollToken := login(t, router, "priya")
	taxToken := login(t, router, "tina")

	rec := doJSON(router, http.MethodPost, "/api/v1/settlements", payrollToken, submitPayload())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// the tax team picks it up and approves at the stored version
	rec = doJSON(router, http.MethodPost, "/api/v1/settlements/1042/start-review", taxToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var started struct {
		Data struct {
			Version int64 `json:"version"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &started))

	rec = doJSON(router, http.MethodPost, "/api/v1/settlements/1042/review", taxToken, map[string]interface{}{
		"approve": true,
		"version": started.Data.Version,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(router, http.MethodPost, "/api/v1/settlements/1042/process-payment", payrollToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(router, http.MethodGet, "/api/v1/settlements/1042", payrollToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Payment Processed")
}

func TestRouter_RoleEnforcement(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	payrollToken := login(t, router, "priya")
	taxToken := login(t, router, "tina")

	// tax team cannot submit
	rec := doJSON(router, http.MethodPost, "/api/v1/settlements", taxToken, submitPayload())
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// payroll team cannot review
	doJSON(router, http.MethodPost, "/api/v1/settlements", payrollToken, submitPayload())
	rec = doJSON(router, http.MethodPost, "/api/v1/settlements/1042/review", payrollToken, map[string]interface{}{
		"approve": true, "version": int64(1),
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// tax team cannot import the employee master
	rec = doJSON(router, http.MethodPut, "/api/v1/employees", taxToken, map[string]interface{}{})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// both teams hold the settlement view permission
	rec = doJSON(router, http.MethodGet, "/api/v1/settlements", taxToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_RequiresToken(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	rec := doJSON(router, http.MethodGet, "/api/v1/settlements", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(router, http.MethodGet, "/api/v1/employees", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_LogoutRevokesToken(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	token := login(t, router, "priya")

	rec := doJSON(router, http.MethodGet, "/api/v1/employees", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(router, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(router, http.MethodGet, "/api/v1/employees", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_StatementStreamsPDF(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	payrollToken := login(t, router, "priya")
	doJSON(router, http.MethodPost, "/api/v1/settlements", payrollToken, submitPayload())

	rec := doJSON(router, http.MethodGet, "/api/v1/settlements/1042/statement", payrollToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
}

func TestRouter_ValidationErrorShape(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	payrollToken := login(t, router, "priya")

	payload := submitPayload()
	payload["regime"] = "Flat"
	rec := doJSON(router, http.MethodPost, "/api/v1/settlements", payrollToken, payload)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "regime")
}

func TestRouter_Health(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

package routes_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valeriaulyamaeva/resilience-tracker/internal/auth"
	"github.com/valeriaulyamaeva/resilience-tracker/internal/database/memdb"
	"github.com/valeriaulyamaeva/resilience-tracker/internal/routes"
	"github.com/valeriaulyamaeva/resilience-tracker/internal/scoring"
	"github.com/valeriaulyamaeva/resilience-tracker/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type api struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

func newAPI(t *testing.T) *api {
	t.Helper()
	svc := services.New(memdb.New(), scoring.DefaultConfig(), auth.NewIssuer("test-secret", time.Hour), nil)
	r := routes.SetupRouter(svc, routes.Options{AuthRateLimitRPS: 100, AuthRateLimitBurst: 100})
	return &api{t: t, router: r}
}

func (a *api) do(method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func (a *api) login(username string) {
	a.t.Helper()
	w, _ := a.do(http.MethodPost, "/api/auth/register", map[string]any{
		"username": username, "password": "pw", "email": username + "@example.com", "role": "FAMILY",
	})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())

	w, body := a.do(http.MethodPost, "/api/auth/login", map[string]any{"username": username, "password": "pw"})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	a.token = body["token"].(string)
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	a := newAPI(t)
	for _, path := range []string{"/api/profile", "/api/economic-score", "/api/resilience-tracker/history"} {
		w, body := a.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.Equal(t, false, body["success"])
	}
}

func TestRegisterDuplicates(t *testing.T) {
	a := newAPI(t)
	a.login("asha")

	a.token = ""
	w, body := a.do(http.MethodPost, "/api/auth/register", map[string]any{
		"username": "asha", "password": "pw", "email": "new@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Username already exists", body["message"])

	w, body = a.do(http.MethodPost, "/api/auth/register", map[string]any{
		"username": "ravi", "password": "pw", "email": "asha@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email already exists", body["message"])

	w, body = a.do(http.MethodPost, "/api/auth/login", map[string]any{"username": "asha", "password": "nope"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid username or password", body["message"])
}

func TestScoresBeforeProfile(t *testing.T) {
	a := newAPI(t)
	a.login("meera")

	w, body := a.do(http.MethodGet, "/api/economic-score", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["message"], "Please complete your profile first")

	w, body = a.do(http.MethodGet, "/api/profile", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["profileComplete"])
	assert.Empty(t, body["financialProfile"])
}

func TestHouseholdFlow(t *testing.T) {
	a := newAPI(t)
	a.login("sharma")

	w, _ := a.do(http.MethodPost, "/api/profile/financial", map[string]any{
		"familyName": "Sharma", "totalSavings": 10000, "totalDebt": 0, "monthlyExpenses": 5000,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, body := a.do(http.MethodPost, "/api/profile/members", []map[string]any{
		{"fullName": "Asha", "age": 35, "isEarner": true, "monthlyIncome": 20000, "incomeStability": "STABLE"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, body["success"])

	w, body = a.do(http.MethodGet, "/api/economic-score", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 1.05, body["economicFlexibilityScore"])
	assert.Equal(t, "STRONG", body["riskLevel"])

	w, body = a.do(http.MethodPost, "/api/shock-simulate", map[string]any{"shockType": "JOB_LOSS"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 2.0, body["survivalMonths"])
	assert.Len(t, body["strategies"], 4)

	w, body = a.do(http.MethodPost, "/api/opportunity-simulate", map[string]any{
		"investmentCost": 10000, "expectedIncomeIncrease": 2000, "successProbability": 0,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Not advisable", body["breakEvenMonths"])

	w, body = a.do(http.MethodPost, "/api/opportunity-simulate", map[string]any{"investmentCost": 10000})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, body["success"])

	w, body = a.do(http.MethodGet, "/api/profile", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["profileComplete"])
}

func TestTrackerUpsertOverHTTP(t *testing.T) {
	a := newAPI(t)
	a.login("kumar")

	entry := map[string]any{"month": "2025-05-20", "totalExpenses": 10000, "totalSavings": 10000}
	for n := 0; n < 2; n++ {
		w, body := a.do(http.MethodPost, "/api/resilience-tracker", entry)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, true, body["success"])
		assert.Equal(t, 33.3, body["resilienceScore"])
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/resilience-tracker/history", nil)
	req.Header.Set("Authorization", "Bearer "+a.token)
	a.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var history []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	require.Len(t, history, 1)
	assert.Equal(t, "2025-05-01T00:00:00Z", history[0]["month"])

	w2, body := a.do(http.MethodPost, "/api/resilience-tracker", map[string]any{"totalSavings": 1})
	assert.Equal(t, http.StatusBadRequest, w2.Code)
	assert.Equal(t, false, body["success"])
}

func TestHealthAndMetrics(t *testing.T) {
	a := newAPI(t)
	w, body := a.do(http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])

	w, _ = a.do(http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "resilience_http_requests_total")
}

func TestAuthRateLimit(t *testing.T) {
	svc := services.New(memdb.New(), scoring.DefaultConfig(), auth.NewIssuer("s", time.Hour), nil)
	r := routes.SetupRouter(svc, routes.Options{AuthRateLimitRPS: 0.001, AuthRateLimitBurst: 1})

	codes := []int{}
	for n := 0; n < 2; n++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(`{"username":"x","password":"y"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusBadRequest, http.StatusTooManyRequests}, codes)
}

package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yourfavcrm/crm/internal/crm/domain"
	crmhttp "github.com/yourfavcrm/crm/internal/crm/http"
	"github.com/yourfavcrm/crm/internal/crm/service"
	"github.com/yourfavcrm/crm/internal/crm/store/drivers/jsonfile"
)

func newTestRouter(t *testing.T) *crmhttp.Router {
	t.Helper()

	st, err := jsonfile.NewStore(filepath.Join(t.TempDir(), "crm.json"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := crmhttp.NewRouter(crmhttp.Config{
		AllowedOrigins: []string{"https://crm.example.test"},
	}, st, logger)
	r.AuthService = &service.AuthService{Store: st}
	r.UserService = &service.UserService{Store: st}
	r.CustomerService = &service.CustomerService{Store: st}
	r.DealService = &service.DealService{Store: st}
	r.ApplyRoutes()

	return r
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, c := range rec.Result().Cookies() {
		if c.Name == "session" {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func register(t *testing.T, h http.Handler, email, password string) *http.Cookie {
	t.Helper()

	rec := doJSON(t, h, http.MethodPost, "/api/register",
		map[string]string{"email": email, "password": password}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	return sessionCookie(t, rec)
}

func TestHealth(t *testing.T) {
	rec := doJSON(t, newTestRouter(t), http.MethodGet, "/health", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status    string `json:"status"`
		Timestamp string `json:"timestamp"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "OK", body.Status)
	require.NotEmpty(t, body.Timestamp)
}

func TestRegisterValidation(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/register", map[string]string{"email": "a@b.c"}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/api/register", map[string]string{"password": "pw123456"}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterSetsCookieAndConflicts(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/register",
		map[string]string{"email": "alice@example.com", "password": "pw123456"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	cookie := sessionCookie(t, rec)
	require.NotEmpty(t, cookie.Value)
	require.True(t, cookie.HttpOnly)
	require.Equal(t, "/", cookie.Path)

	var body struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.ID)
	require.Equal(t, "alice@example.com", body.Email)

	rec = doJSON(t, r, http.MethodPost, "/api/register",
		map[string]string{"email": "alice@example.com", "password": "other"}, nil)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, rec.Body.String(), "User already exists")
}

func TestLogin(t *testing.T) {
	r := newTestRouter(t)
	register(t, r, "alice@example.com", "pw123456")

	rec := doJSON(t, r, http.MethodPost, "/api/login",
		map[string]string{"email": "alice@example.com", "password": "wrong"}, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "Invalid credentials")

	rec = doJSON(t, r, http.MethodPost, "/api/login",
		map[string]string{"email": "nobody@example.com", "password": "pw123456"}, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/api/login",
		map[string]string{"email": "alice@example.com", "password": "pw123456"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, sessionCookie(t, rec).Value)
}

func TestMe(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/api/me", nil, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/api/me", nil, &http.Cookie{Name: "session", Value: "bogus"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	cookie := register(t, r, "alice@example.com", "pw123456")
	rec = doJSON(t, r, http.MethodGet, "/api/me", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var profile domain.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	require.Equal(t, "alice@example.com", profile.Email)
	require.Equal(t, "alice", profile.Name)
	require.Equal(t, "User", profile.Role)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	r := newTestRouter(t)
	cookie := register(t, r, "alice@example.com", "pw123456")

	rec := doJSON(t, r, http.MethodPost, "/api/logout", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	cleared := sessionCookie(t, rec)
	require.Empty(t, cleared.Value)
	require.Negative(t, cleared.MaxAge)

	rec = doJSON(t, r, http.MethodGet, "/api/me", nil, cookie)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Logging out again with the dead cookie still succeeds.
	rec = doJSON(t, r, http.MethodPost, "/api/logout", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestCustomersEndpoints(t *testing.T) {
	r := newTestRouter(t)
	cookie := register(t, r, "alice@example.com", "pw123456")

	rec := doJSON(t, r, http.MethodGet, "/api/customers", nil, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/api/customers", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, "[]", rec.Body.String())

	rec = doJSON(t, r, http.MethodPost, "/api/customers",
		map[string]any{"name": "Bob Wilson", "email": "bob@corp.test"}, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var created domain.Customer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	require.Equal(t, domain.CustomerStatusPending, created.Status)
	require.Zero(t, created.Value)

	rec = doJSON(t, r, http.MethodPut, "/api/customers/"+created.ID,
		map[string]any{"status": "active", "value": 4200}, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated domain.Customer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	require.Equal(t, "Bob Wilson", updated.Name)
	require.Equal(t, "active", updated.Status)
	require.Equal(t, 4200.0, updated.Value)

	rec = doJSON(t, r, http.MethodPut, "/api/customers/unknown",
		map[string]any{"status": "active"}, cookie)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "Not found")

	rec = doJSON(t, r, http.MethodDelete, "/api/customers/"+created.ID, nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var removed domain.Customer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &removed))
	require.Equal(t, created.ID, removed.ID)

	rec = doJSON(t, r, http.MethodDelete, "/api/customers/"+created.ID, nil, cookie)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCustomersAreScopedToOwner(t *testing.T) {
	r := newTestRouter(t)
	alice := register(t, r, "alice@example.com", "pw123456")
	eve := register(t, r, "eve@example.com", "pw123456")

	rec := doJSON(t, r, http.MethodPost, "/api/customers",
		map[string]any{"name": "Bob Wilson"}, alice)
	require.Equal(t, http.StatusOK, rec.Code)

	var created domain.Customer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(t, r, http.MethodGet, "/api/customers", nil, eve)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, "[]", rec.Body.String())

	rec = doJSON(t, r, http.MethodPut, "/api/customers/"+created.ID,
		map[string]any{"name": "stolen"}, eve)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, r, http.MethodDelete, "/api/customers/"+created.ID, nil, eve)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDealsEndpoints(t *testing.T) {
	r := newTestRouter(t)
	cookie := register(t, r, "alice@example.com", "pw123456")

	rec := doJSON(t, r, http.MethodGet, "/api/deals", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, "[]", rec.Body.String())

	rec = doJSON(t, r, http.MethodPost, "/api/deals",
		map[string]any{"title": "Enterprise rollout", "value": 50000}, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var created domain.Deal
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Equal(t, domain.DealStatusProspecting, created.Status)
	require.Equal(t, domain.DealPriorityMedium, created.Priority)
	require.Equal(t, "website", created.Source)
	require.NotNil(t, created.Tags)
	require.NotEmpty(t, created.AssignedTo)

	rec = doJSON(t, r, http.MethodPut, "/api/deals/"+created.ID,
		map[string]any{"status": "closed-won"}, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated domain.Deal
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	require.Equal(t, domain.DealStatusClosedWon, updated.Status)
	require.Equal(t, "Enterprise rollout", updated.Title)
	require.False(t, updated.UpdatedAt.Before(created.UpdatedAt))

	rec = doJSON(t, r, http.MethodDelete, "/api/deals/"+created.ID, nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/api/deals", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, "[]", rec.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/customers", nil)
	req.Header.Set("Origin", "https://crm.example.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "https://crm.example.test", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

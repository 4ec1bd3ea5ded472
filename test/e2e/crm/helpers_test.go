package crm_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	crmhttp "github.com/yourfavcrm/crm/internal/crm/http"
	"github.com/yourfavcrm/crm/internal/crm/service"
	"github.com/yourfavcrm/crm/internal/crm/store/drivers/jsonfile"
)

/*
 * Common helpers for CRM end-to-end tests. Each test gets a full service
 * stack (jsonfile store + services + router) behind an httptest server and
 * talks to it over real HTTP with a cookie jar per simulated browser.
 */

const (
	aliceEmail    = "alice@example.com"
	alicePassword = "pw123456"
)

// setupServer starts the full CRM stack and returns its base URL.
func setupServer(t *testing.T) string {
	t.Helper()

	st, err := jsonfile.NewStore(filepath.Join(t.TempDir(), "crm.json"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := crmhttp.NewRouter(crmhttp.Config{
		AllowedOrigins: []string{"http://localhost:3000"},
	}, st, logger)
	router.AuthService = &service.AuthService{Store: st}
	router.UserService = &service.UserService{Store: st}
	router.CustomerService = &service.CustomerService{Store: st}
	router.DealService = &service.DealService{Store: st}
	router.ApplyRoutes()

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return server.URL
}

// newBrowser returns an HTTP client with its own cookie jar, standing in for
// one browser session.
func newBrowser(t *testing.T) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

// do sends a JSON request and decodes the JSON response into out (when out is
// non-nil), returning the status code.
func do(t *testing.T, client *http.Client, method, url string, body, out any) int {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		data, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		if len(data) > 0 {
			require.NoError(t, json.Unmarshal(data, out), "body: %s", data)
		}
	}

	return resp.StatusCode
}

// registerUser creates an account through the API; the session cookie lands
// in the client's jar.
func registerUser(t *testing.T, client *http.Client, baseURL, email, password string) {
	t.Helper()

	code := do(t, client, http.MethodPost, baseURL+"/api/register",
		map[string]string{"email": email, "password": password}, nil)
	require.Equal(t, http.StatusOK, code)
}

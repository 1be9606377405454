// ABOUTME: HTTP-level tests across all route groups using a real SQLite store
// ABOUTME: Exercises status mapping, bearer auth, and capability guards

package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfwise/shelfwise-identity/internal/claims"
	"github.com/shelfwise/shelfwise-identity/internal/guard"
	"github.com/shelfwise/shelfwise-identity/internal/otp"
	"github.com/shelfwise/shelfwise-identity/internal/resolve"
	"github.com/shelfwise/shelfwise-identity/internal/store"
	"github.com/shelfwise/shelfwise-identity/internal/token"
)

const testAdminCode = "http-test-admin-code"

func newTestServer(t *testing.T) *Server {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := store.NewSQLiteStore(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	codec := token.NewCodec([]byte("httpapi-test-secret"))
	otpSvc := otp.NewService(otp.NewMemoryStore(), otp.NewLogSender(), 5*time.Minute)
	users := resolve.NewUserResolver(s, otpSvc)
	publishers := resolve.NewPublisherResolver(s)

	return NewServer(Dependencies{
		Users:      users,
		Publishers: publishers,
		Admins:     resolve.NewAdminResolver(s, testAdminCode),
		Dispatcher: resolve.NewDispatcher(users, publishers, codec, s),
		Codec:      codec,
		Guard:      guard.NewGuard(codec),
		Store:      s,
		TokenTTL:   time.Hour,
	})
}

func doJSON(t *testing.T, srv *Server, method, path, bearer string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echoContentType, "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	out := map[string]any{}
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &out)
	}
	return rec, out
}

const echoContentType = "Content-Type"

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	rec, body := doJSON(t, srv, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestUserRegisterLoginMe(t *testing.T) {
	srv := newTestServer(t)

	rec, body := doJSON(t, srv, http.MethodPost, "/auth/register", "", map[string]string{
		"username": "reader1",
		"email":    "reader1@example.com",
		"password": "pw123456",
		"role":     "reader",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "bearer", body["token_type"])
	assert.Equal(t, "reader", body["role"])
	require.NotEmpty(t, body["access_token"])

	rec, body = doJSON(t, srv, http.MethodPost, "/auth/login", "", map[string]string{
		"username": "reader1",
		"password": "pw123456",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	tok := body["access_token"].(string)

	rec, body = doJSON(t, srv, http.MethodGet, "/auth/me", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "reader1", body["username"])
	assert.Equal(t, "reader", body["role"])

	// Without a token the profile is unreachable.
	rec, _ = doJSON(t, srv, http.MethodGet, "/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserRoleLoginMismatch(t *testing.T) {
	srv := newTestServer(t)

	rec, _ := doJSON(t, srv, http.MethodPost, "/auth/register", "", map[string]string{
		"username": "reader1",
		"password": "pw123456",
		"role":     "reader",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doJSON(t, srv, http.MethodPost, "/auth/login/writer", "", map[string]string{
		"username": "reader1",
		"password": "pw123456",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = doJSON(t, srv, http.MethodPost, "/auth/login/banana", "", map[string]string{
		"username": "reader1",
		"password": "pw123456",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserDuplicateRegistration(t *testing.T) {
	srv := newTestServer(t)

	payload := map[string]string{"username": "reader1", "password": "pw123456", "role": "reader"}
	rec, _ := doJSON(t, srv, http.MethodPost, "/auth/register", "", payload)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doJSON(t, srv, http.MethodPost, "/auth/register", "", payload)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpgradeToWriter(t *testing.T) {
	srv := newTestServer(t)

	rec, body := doJSON(t, srv, http.MethodPost, "/auth/register", "", map[string]string{
		"username": "reader1",
		"password": "pw123456",
		"role":     "reader",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	tok := body["access_token"].(string)

	rec, body = doJSON(t, srv, http.MethodPost, "/auth/upgrade-to-writer", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "writer", body["role"])

	// The fresh token reflects the writer kind.
	newTok := body["access_token"].(string)
	rec, body = doJSON(t, srv, http.MethodGet, "/auth/me", newTok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "writer", body["role"])
}

func TestPublisherFlow(t *testing.T) {
	srv := newTestServer(t)

	rec, body := doJSON(t, srv, http.MethodPost, "/publishers/register", "", map[string]string{
		"name":     "Acme Press",
		"email":    "a@b.com",
		"password": "pubpass99",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Acme Press", body["name"])
	tok := body["access_token"].(string)

	rec, body = doJSON(t, srv, http.MethodGet, "/publishers/me", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a@b.com", body["email"])

	// Duplicate email conflicts.
	rec, _ = doJSON(t, srv, http.MethodPost, "/publishers/register", "", map[string]string{
		"name":     "Other House",
		"email":    "a@b.com",
		"password": "otherpass",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// A publisher token does not open the user surface.
	rec, _ = doJSON(t, srv, http.MethodGet, "/auth/me", tok, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminRegistrationGate(t *testing.T) {
	srv := newTestServer(t)

	rec, _ := doJSON(t, srv, http.MethodPost, "/admin/register", "", map[string]any{
		"username": "root",
		"email":    "root@example.com",
		"password": "adminpass",
		"code":     "wrong-code",
		"role":     "super_admin",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, body := doJSON(t, srv, http.MethodPost, "/admin/register", "", map[string]any{
		"username": "root",
		"email":    "root@example.com",
		"password": "adminpass",
		"code":     testAdminCode,
		"role":     "super_admin",
		// Ignored; the matrix alone decides capability flags.
		"permissions": map[string]bool{"can_manage_system": false},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["is_super_admin"])
	perms := body["permissions"].(map[string]any)
	assert.Equal(t, true, perms["can_manage_system"])
}

func TestAdminCapabilityGuards(t *testing.T) {
	srv := newTestServer(t)

	register := func(username, role string) string {
		rec, body := doJSON(t, srv, http.MethodPost, "/admin/register", "", map[string]string{
			"username": username,
			"email":    username + "@example.com",
			"password": "adminpass",
			"code":     testAdminCode,
			"role":     role,
		})
		require.Equal(t, http.StatusOK, rec.Code)
		return body["access_token"].(string)
	}

	contentTok := register("moderator", "content_admin")
	userTok := register("useradmin", "user_admin")

	// content_admin cannot list users.
	rec, _ := doJSON(t, srv, http.MethodGet, "/admin/users", contentTok, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// user_admin can.
	rec, _ = doJSON(t, srv, http.MethodGet, "/admin/users", userTok, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// But not publishers.
	rec, _ = doJSON(t, srv, http.MethodGet, "/admin/publishers", userTok, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// /admin/me works for any admin.
	rec, body := doJSON(t, srv, http.MethodGet, "/admin/me", contentTok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "content_admin", body["role"])
}

func TestUnifiedSurface(t *testing.T) {
	srv := newTestServer(t)

	rec, _ := doJSON(t, srv, http.MethodPost, "/auth/register", "", map[string]string{
		"username": "reader1",
		"password": "pw123456",
		"role":     "reader",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	rec, _ = doJSON(t, srv, http.MethodPost, "/publishers/register", "", map[string]string{
		"name":     "Acme Press",
		"email":    "a@b.com",
		"password": "pubpass99",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body := doJSON(t, srv, http.MethodPost, "/login", "", map[string]string{
		"identifier": "reader1",
		"password":   "pw123456",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user", body["entity_type"])
	userTok := body["access_token"].(string)

	rec, body = doJSON(t, srv, http.MethodPost, "/login", "", map[string]string{
		"identifier": "a@b.com",
		"password":   "pubpass99",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "publisher", body["entity_type"])

	rec, body = doJSON(t, srv, http.MethodGet, "/me", userTok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "reader", body["kind"])

	// Kind-directed unified login.
	rec, _ = doJSON(t, srv, http.MethodPost, "/login/publisher", "", map[string]string{
		"identifier": "a@b.com",
		"password":   "pubpass99",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doJSON(t, srv, http.MethodPost, "/login/admin", "", map[string]string{
		"identifier": "root",
		"password":   "adminpass",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = doJSON(t, srv, http.MethodPost, "/login", "", map[string]string{
		"identifier": "reader1",
		"password":   "wrongpass",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUnifiedMeRefusesAdminToken(t *testing.T) {
	srv := newTestServer(t)

	rec, body := doJSON(t, srv, http.MethodPost, "/admin/register", "", map[string]string{
		"username": "root",
		"email":    "root@example.com",
		"password": "adminpass",
		"code":     testAdminCode,
		"role":     "super_admin",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	adminTok := body["access_token"].(string)

	// The same token opens the admin surface...
	rec, _ = doJSON(t, srv, http.MethodGet, "/admin/me", adminTok, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// ...but never the unified one.
	rec, _ = doJSON(t, srv, http.MethodGet, "/me", adminTok, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestOTPEndpoints(t *testing.T) {
	srv := newTestServer(t)

	rec, _ := doJSON(t, srv, http.MethodPost, "/auth/send-otp", "", map[string]string{
		"email": "reader1@example.com",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	// Wrong code is rejected; six random digits will not be 000000
	// except one time in a million, which this test accepts.
	rec, _ = doJSON(t, srv, http.MethodPost, "/auth/verify-otp", "", map[string]string{
		"email": "reader1@example.com",
		"code":  "000000",
	})
	if rec.Code == http.StatusOK {
		t.Skip("randomly generated code collided with the probe value")
	}
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = doJSON(t, srv, http.MethodPost, "/auth/send-otp", "", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExpiredTokenIsUnauthorized(t *testing.T) {
	srv := newTestServer(t)

	cs, err := claims.NewUserClaims("ghost", claims.RoleReader)
	require.NoError(t, err)
	tok, err := srv.codec.Issue(cs, -time.Minute)
	require.NoError(t, err)

	rec, _ := doJSON(t, srv, http.MethodGet, "/auth/me", tok, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

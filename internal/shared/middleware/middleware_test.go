package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eduresource-api/internal/shared/response"
	"eduresource-api/pkg/jwt"
)

const testSecret = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(tokens *jwt.Manager) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), Recovery(), ErrorHandler())

	r.GET("/user", Authenticate(tokens), RequireRole("User"), func(c *gin.Context) {
		claims, _ := ClaimsFrom(c)
		c.String(http.StatusOK, claims.UserName)
	})
	r.GET("/admin", Authenticate(tokens), RequireRole("Admin"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	r.GET("/panic", func(*gin.Context) { panic("boom") })
	r.GET("/fail", func(c *gin.Context) { _ = c.Error(errors.New("db down")) })
	return r
}

func do(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func issue(t *testing.T, m *jwt.Manager, roles ...string) string {
	t.Helper()
	token, err := m.Issue(jwt.Identity{UserID: "u-1", Email: "u@example.com", UserName: "u1", Roles: roles})
	require.NoError(t, err)
	return token
}

func TestAuthenticate(t *testing.T) {
	tokens := jwt.NewManager(testSecret, jwt.DefaultExpiry)
	r := newTestRouter(tokens)

	w := do(r, "/user", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))

	w = do(r, "/user", "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, "/user", issue(t, tokens, "User"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", w.Body.String())
}

func TestAuthenticateRejectsExpiredToken(t *testing.T) {
	tokens := jwt.NewManager(testSecret, jwt.DefaultExpiry)
	stale := tokens.WithClock(func() time.Time { return time.Now().Add(-9 * time.Hour) })

	w := do(newTestRouter(tokens), "/user", issue(t, stale, "User"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	tokens := jwt.NewManager(testSecret, jwt.DefaultExpiry)
	r := newTestRouter(tokens)

	w := do(r, "/admin", issue(t, tokens, "User"))
	assert.Equal(t, http.StatusForbidden, w.Code)

	var p response.Problem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, 403, p.Status)
	assert.NotEmpty(t, p.TraceID)

	w = do(r, "/admin", issue(t, tokens, "Admin", "User"))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRequestIDIsEchoed(t *testing.T) {
	r := newTestRouter(jwt.NewManager(testSecret, 0))

	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	var p response.Problem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, "abc-123", p.TraceID)
}

func TestRecoveryAndErrorHandler(t *testing.T) {
	r := newTestRouter(jwt.NewManager(testSecret, 0))

	w := do(r, "/panic", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = do(r, "/fail", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "db down")
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"https://app.example"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://app.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://app.example", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"darb_pms/internal/apperror"
	"darb_pms/internal/model"
	"darb_pms/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// accountMap is an AccountLookup over a fixed set of users.
type accountMap map[int]*model.User

func (m accountMap) GetProfile(_ context.Context, userID int) (*model.User, error) {
	if userID < 0 {
		return nil, errors.New("connection reset")
	}
	u, ok := m[userID]
	if !ok {
		return nil, apperror.NotFound("user not found")
	}
	found := *u
	return &found, nil
}

func testAccounts() accountMap {
	return accountMap{
		1: {ID: 1, Username: "root", Role: model.RoleAdmin},
		2: {ID: 2, Username: "bob", Role: model.RoleUser},
		7: {ID: 7, Username: "alice", Role: model.RoleCEO},
	}
}

func newProtectedRouter(jwtUtil *utils.JWTUtil, accounts AccountLookup, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append([]gin.HandlerFunc{JWTAuthMiddleware(jwtUtil, accounts)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"id":       c.GetInt(AuthUserKey),
			"username": c.GetString(AuthUsernameKey),
			"role":     c.GetString(AuthRoleKey),
		})
	})
	r.GET("/protected", handlers...)
	return r
}

func doGet(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware(t *testing.T) {
	jwtUtil := utils.NewJWTUtil("secret", 1)
	r := newProtectedRouter(jwtUtil, testAccounts())

	token, err := jwtUtil.GenerateToken(7, "alice")
	require.NoError(t, err)
	expired, err := utils.NewJWTUtil("secret", -1).GenerateToken(7, "alice")
	require.NoError(t, err)
	foreign, err := utils.NewJWTUtil("other", 1).GenerateToken(7, "alice")
	require.NoError(t, err)
	deleted, err := jwtUtil.GenerateToken(99, "ghost")
	require.NoError(t, err)
	broken, err := jwtUtil.GenerateToken(-1, "broken")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"no token", "Bearer", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusForbidden},
		{"expired token", "Bearer " + expired, http.StatusForbidden},
		{"wrong secret", "Bearer " + foreign, http.StatusForbidden},
		{"valid token", "Bearer " + token, http.StatusOK},
		{"lowercase scheme", "bearer " + token, http.StatusOK},
		{"deleted account", "Bearer " + deleted, http.StatusNotFound},
		{"account lookup failure", "Bearer " + broken, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doGet(r, tt.header)
			assert.Equal(t, tt.status, w.Code)
			if tt.status != http.StatusOK {
				assert.Contains(t, w.Body.String(), `"success":false`)
			}
		})
	}

	w := doGet(r, "Bearer "+token)
	assert.JSONEq(t, `{"id":7,"username":"alice","role":"ceo"}`, w.Body.String())
}

func TestRoleMiddleware(t *testing.T) {
	jwtUtil := utils.NewJWTUtil("secret", 1)
	r := newProtectedRouter(jwtUtil, testAccounts(), AdminMiddleware())

	adminToken, _ := jwtUtil.GenerateToken(1, "root")
	userToken, _ := jwtUtil.GenerateToken(2, "bob")

	assert.Equal(t, http.StatusOK, doGet(r, "Bearer "+adminToken).Code)
	assert.Equal(t, http.StatusForbidden, doGet(r, "Bearer "+userToken).Code)
}

func TestRoleMiddleware_FollowsStoredRole(t *testing.T) {
	jwtUtil := utils.NewJWTUtil("secret", 1)
	accounts := testAccounts()
	r := newProtectedRouter(jwtUtil, accounts, AdminMiddleware())

	adminToken, _ := jwtUtil.GenerateToken(1, "root")
	bobToken, _ := jwtUtil.GenerateToken(2, "bob")
	require.Equal(t, http.StatusOK, doGet(r, "Bearer "+adminToken).Code)

	// Tokens issued before a role change see the new role on the next request.
	accounts[1].Role = model.RoleUser
	accounts[2].Role = model.RoleAdmin
	assert.Equal(t, http.StatusForbidden, doGet(r, "Bearer "+adminToken).Code)
	assert.Equal(t, http.StatusOK, doGet(r, "Bearer "+bobToken).Code)
}

func TestRoleMiddleware_WithoutAuth(t *testing.T) {
	r := gin.New()
	r.GET("/protected", RoleMiddleware(model.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusForbidden, doGet(r, "").Code)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/protected", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	w := doGet(r, "")
	generated := w.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:5173"}))
	r.GET("/protected", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/protected", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(2)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	r := gin.New()
	r.GET("/protected", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, doGet(r, "").Code)
	assert.Equal(t, http.StatusOK, doGet(r, "").Code)

	w := doGet(r, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "30", w.Header().Get("Retry-After"))

	now = now.Add(30 * time.Second)
	assert.Equal(t, http.StatusOK, doGet(r, "").Code)
}

func TestMetrics(t *testing.T) {
	m := NewMetrics("pms_test")
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/protected", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	doGet(r, "")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, `pms_test_http_requests_total{method="GET",path="/protected",status="200"} 1`), body)
	assert.Contains(t, body, "pms_test_http_request_duration_seconds")
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/clinic/backend/internal/infrastructure/auth"
	"github.com/clinic/backend/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-for-middleware",
		AccessTokenExpiration: time.Hour,
		Issuer:                "clinic-test",
	})
}

func issueTestToken(t *testing.T, svc *auth.JWTService, role auth.StaffRole) string {
	t.Helper()
	token, err := svc.IssueToken(uuid.New(), "Test Staff", role)
	require.NoError(t, err)
	return token.AccessToken
}

func newAuthRouter(svc *auth.JWTService) *gin.Engine {
	router := gin.New()
	router.Use(JWTAuthMiddleware(svc))
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"staff_id": GetJWTStaffID(c),
			"name":     GetJWTStaffName(c),
		})
	})
	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return router
}

func TestJWTAuthMiddleware(t *testing.T) {
	svc := newTestJWTService()

	t.Run("rejects missing authorization header", func(t *testing.T) {
		router := newAuthRouter(svc)

		req := httptest.NewRequest("GET", "/protected", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_TOKEN_INVALID")
	})

	t.Run("rejects malformed authorization header", func(t *testing.T) {
		router := newAuthRouter(svc)

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects garbage token", func(t *testing.T) {
		router := newAuthRouter(svc)

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_TOKEN_INVALID")
	})

	t.Run("accepts valid token and exposes claims", func(t *testing.T) {
		router := newAuthRouter(svc)
		token := issueTestToken(t, svc, auth.RoleStaff)

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Test Staff")
	})

	t.Run("skip paths bypass authentication", func(t *testing.T) {
		router := newAuthRouter(svc)

		req := httptest.NewRequest("GET", "/health", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects token signed with different secret", func(t *testing.T) {
		router := newAuthRouter(svc)
		other := auth.NewJWTService(config.JWTConfig{
			Secret:                "another-secret",
			AccessTokenExpiration: time.Hour,
			Issuer:                "clinic-test",
		})
		token := issueTestToken(t, other, auth.RoleAdmin)

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireApprovalAuthority(t *testing.T) {
	svc := newTestJWTService()

	newRouter := func() *gin.Engine {
		router := gin.New()
		router.Use(JWTAuthMiddleware(svc))
		router.POST("/decide", RequireApprovalAuthority(), func(c *gin.Context) {
			c.String(http.StatusOK, "decided")
		})
		return router
	}

	t.Run("manager may decide", func(t *testing.T) {
		router := newRouter()
		token := issueTestToken(t, svc, auth.RoleManager)

		req := httptest.NewRequest("POST", "/decide", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("admin may decide", func(t *testing.T) {
		router := newRouter()
		token := issueTestToken(t, svc, auth.RoleAdmin)

		req := httptest.NewRequest("POST", "/decide", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("staff role is forbidden", func(t *testing.T) {
		router := newRouter()
		token := issueTestToken(t, svc, auth.RoleStaff)

		req := httptest.NewRequest("POST", "/decide", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_FORBIDDEN")
	})

	t.Run("missing claims is unauthorized", func(t *testing.T) {
		router := gin.New()
		router.POST("/decide", RequireApprovalAuthority(), func(c *gin.Context) {
			c.String(http.StatusOK, "decided")
		})

		req := httptest.NewRequest("POST", "/decide", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

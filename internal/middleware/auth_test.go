package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rosalia.com/connect/pkg/response"
	"rosalia.com/connect/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(tokens *token.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", NewAuthMiddleware(tokens).RequireAuth(), func(c *gin.Context) {
		claims, err := response.GetClaims(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": claims.UserID, "role": claims.Role})
	})
	return router
}

func doGet(router *gin.Engine, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuth(t *testing.T) {
	tokens := token.New("testsecret", time.Hour)
	router := newAuthRouter(tokens)

	t.Run("missing header", func(t *testing.T) {
		rec := doGet(router, "/protected", "")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		rec := doGet(router, "/protected", "NotBearer")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		rec := doGet(router, "/protected", "Bearer garbage")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := token.New("other-secret", time.Hour)
		signed, err := other.Issue(1, "a@b.com", "student")
		require.NoError(t, err)

		rec := doGet(router, "/protected", "Bearer "+signed)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token reaches handler with claims", func(t *testing.T) {
		signed, err := tokens.Issue(9, "a@b.com", "instructor")
		require.NoError(t, err)

		rec := doGet(router, "/protected", "Bearer "+signed)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"id":9`)
		require.Contains(t, rec.Body.String(), `"role":"instructor"`)
	})
}

func TestRequireRoles(t *testing.T) {
	tokens := token.New("testsecret", time.Hour)
	gin.SetMode(gin.TestMode)

	router := gin.New()
	auth := NewAuthMiddleware(tokens)
	router.GET("/staff", auth.RequireAuth(), RequireRoles("instructor", "admin"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	// Explicit allow-list: admin is not implicitly included here.
	router.GET("/students-only", auth.RequireAuth(), RequireRoles("student"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	issue := func(role string) string {
		signed, err := tokens.Issue(1, "a@b.com", role)
		require.NoError(t, err)
		return "Bearer " + signed
	}

	t.Run("role in set passes", func(t *testing.T) {
		require.Equal(t, http.StatusOK, doGet(router, "/staff", issue("instructor")).Code)
		require.Equal(t, http.StatusOK, doGet(router, "/staff", issue("admin")).Code)
	})

	t.Run("role outside set is forbidden", func(t *testing.T) {
		require.Equal(t, http.StatusForbidden, doGet(router, "/staff", issue("student")).Code)
	})

	t.Run("admin does not bypass an allow-list it is not on", func(t *testing.T) {
		require.Equal(t, http.StatusForbidden, doGet(router, "/students-only", issue("admin")).Code)
	})

	t.Run("missing auth is unauthorized, not forbidden", func(t *testing.T) {
		require.Equal(t, http.StatusUnauthorized, doGet(router, "/staff", "").Code)
	})
}

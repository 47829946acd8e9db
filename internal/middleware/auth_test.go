package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contacthub/internal/config"
	"contacthub/internal/middleware"
	"contacthub/internal/models"
	"contacthub/internal/repository"
	"contacthub/internal/security"
)

type fakeUserSource struct {
	users map[string]models.User
}

func (f *fakeUserSource) GetByID(_ context.Context, id string) (models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func newAuthRouter(users middleware.UserSource) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.AppConfig{
		Security: config.SecurityConfig{JWTSecret: "test-secret"},
	}

	router := gin.New()
	router.GET("/private", middleware.Auth(cfg, users), func(c *gin.Context) {
		user, _ := middleware.CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"id": user.ID})
	})
	return router
}

func requestWithToken(t *testing.T, router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuth(t *testing.T) {
	users := &fakeUserSource{users: map[string]models.User{
		"u1": {ID: "u1", Status: models.UserStatusActive},
		"u2": {ID: "u2", Status: models.UserStatusInactive},
	}}
	router := newAuthRouter(users)

	token := func(userID string) string {
		tok, err := security.GenerateAccessToken("test-secret", userID, "user", time.Hour)
		require.NoError(t, err)
		return tok
	}

	t.Run("active user passes", func(t *testing.T) {
		rec := requestWithToken(t, router, "/private", token("u1"))
		assert.Equal(t, http.StatusOK, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "u1", body["id"])
	})

	t.Run("missing header", func(t *testing.T) {
		rec := requestWithToken(t, router, "/private", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := requestWithToken(t, router, "/private", "not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		tok, err := security.GenerateAccessToken("other-secret", "u1", "user", time.Hour)
		require.NoError(t, err)
		rec := requestWithToken(t, router, "/private", tok)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token for a deleted user", func(t *testing.T) {
		rec := requestWithToken(t, router, "/private", token("gone"))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("deactivation beats a still-valid token", func(t *testing.T) {
		rec := requestWithToken(t, router, "/private", token("u2"))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "account is not active")
	})
}

func TestRequireRoles(t *testing.T) {
	users := &fakeUserSource{users: map[string]models.User{
		"u1": {ID: "u1", Role: models.UserRoleUser, Status: models.UserStatusActive},
		"a1": {ID: "a1", Role: models.UserRoleAdmin, Status: models.UserStatusActive},
	}}

	gin.SetMode(gin.TestMode)
	cfg := &config.AppConfig{Security: config.SecurityConfig{JWTSecret: "test-secret"}}
	router := gin.New()
	router.GET("/admin",
		middleware.Auth(cfg, users),
		middleware.RequireRoles(models.UserRoleAdmin, models.UserRoleSuperAdmin),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	adminToken, err := security.GenerateAccessToken("test-secret", "a1", "admin", time.Hour)
	require.NoError(t, err)
	userToken, err := security.GenerateAccessToken("test-secret", "u1", "user", time.Hour)
	require.NoError(t, err)

	rec := requestWithToken(t, router, "/admin", adminToken)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = requestWithToken(t, router, "/admin", userToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

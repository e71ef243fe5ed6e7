package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pescalia/models"
	"pescalia/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(optional bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", JWTAuthMiddleware(optional), func(c *gin.Context) {
		c.JSON(http.StatusOK, GetAuthContext(c))
	})
	r.GET("/admin", JWTAuthAdminMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"adminData": "pending-counts"})
	})
	return r
}

func doGet(t *testing.T, r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware(t *testing.T) {
	r := newAuthRouter(false)

	token, err := utils.GenerateToken("u1", models.RoleUser, time.Hour)
	require.NoError(t, err)

	w := doGet(t, r, "/whoami", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"u1"`)

	assert.Equal(t, http.StatusUnauthorized, doGet(t, r, "/whoami", "").Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(t, r, "/whoami", "garbage").Code)
}

func TestJWTAuthMiddlewareOptional(t *testing.T) {
	r := newAuthRouter(true)

	// No token passes through as the anonymous user.
	w := doGet(t, r, "/whoami", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":""`)
}

func TestJWTAuthAdminMiddleware(t *testing.T) {
	r := newAuthRouter(false)

	userToken, err := utils.GenerateToken("u1", models.RoleUser, time.Hour)
	require.NoError(t, err)
	adminToken, err := utils.GenerateToken("mod", models.RoleAdmin, time.Hour)
	require.NoError(t, err)

	// A non-admin must be rejected before the handler runs: nothing of the
	// handler's output may leak into the response.
	w := doGet(t, r, "/admin", userToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.NotContains(t, w.Body.String(), "adminData")

	w = doGet(t, r, "/admin", adminToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "adminData")

	assert.Equal(t, http.StatusUnauthorized, doGet(t, r, "/admin", "").Code)
}

func TestExpiredTokenRejected(t *testing.T) {
	r := newAuthRouter(false)

	token, err := utils.GenerateToken("u1", models.RoleUser, -time.Minute)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, doGet(t, r, "/whoami", token).Code)
}

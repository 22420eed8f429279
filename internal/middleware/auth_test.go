package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LunaStudioApps/salon-scheduler/internal/config"
)

const testSecret = "test-secret"

func testRouter(extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{JWTSecret: testSecret}

	r := gin.New()
	group := r.Group("/", append([]gin.HandlerFunc{AuthMiddleware(cfg)}, extra...)...)
	group.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":  c.GetUint(ContextUserID),
			"salon_id": c.GetUint(ContextSalonID),
			"role":     c.GetString(ContextUserRole),
		})
	})
	return r
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	if _, ok := claims["exp"]; !ok {
		claims["exp"] = time.Now().Add(time.Hour).Unix()
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func doRequest(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"sub": 7, "salonId": 3, "role": RoleOwner,
	})

	w := doRequest(testRouter(), "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"owner"`)
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	w := doRequest(testRouter(), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsMalformedHeader(t *testing.T) {
	w := doRequest(testRouter(), "Token abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsWrongSignature(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": 1, "salonId": 1, "role": RoleOwner,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	w := doRequest(testRouter(), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsExpiredToken(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"sub": 1, "salonId": 1, "role": RoleOwner,
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	w := doRequest(testRouter(), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRequiresSalonForNonAdmin(t *testing.T) {
	token := signToken(t, jwt.MapClaims{"sub": 1, "role": RoleOwner})

	w := doRequest(testRouter(), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareAdminNeedsNoSalon(t *testing.T) {
	token := signToken(t, jwt.MapClaims{"sub": 1, "role": RoleAdmin})

	w := doRequest(testRouter(), "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRoleBlocksOtherRoles(t *testing.T) {
	r := testRouter(RequireRole(RoleAdmin))

	ownerToken := signToken(t, jwt.MapClaims{
		"sub": 1, "salonId": 1, "role": RoleOwner,
	})
	w := doRequest(r, "Bearer "+ownerToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	adminToken := signToken(t, jwt.MapClaims{"sub": 1, "role": RoleAdmin})
	w = doRequest(r, "Bearer "+adminToken)
	assert.Equal(t, http.StatusOK, w.Code)
}

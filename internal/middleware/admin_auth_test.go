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
)

const testSecret = "admin-guard-test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func adminToken(t *testing.T, role string) string {
	return signToken(t, jwt.MapClaims{
		"sub":  "64f000000000000000000001",
		"role": role,
		"type": AdminAccessTokenType,
		"exp":  time.Now().Add(10 * time.Minute).Unix(),
	})
}

func callGuard(t *testing.T, authHeader string, roles ...string) int {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/guarded", AdminAuth(testSecret, roles...), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestAdminAuthAllowsAdminToken(t *testing.T) {
	status := callGuard(t, "Bearer "+adminToken(t, "ADMIN"), "ADMIN")
	assert.Equal(t, http.StatusOK, status)
}

func TestAdminAuthSuperAdminSatisfiesAnyRole(t *testing.T) {
	status := callGuard(t, "Bearer "+adminToken(t, "SUPER_ADMIN"), "ADMIN")
	assert.Equal(t, http.StatusOK, status)
}

func TestAdminAuthRejectsInsufficientRole(t *testing.T) {
	status := callGuard(t, "Bearer "+adminToken(t, "ADMIN"), "SUPER_ADMIN")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAdminAuthRejectsMissingToken(t *testing.T) {
	status := callGuard(t, "", "ADMIN")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAdminAuthRejectsMalformedHeader(t *testing.T) {
	status := callGuard(t, "Token abc", "ADMIN")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAdminAuthRejectsUserTypedToken(t *testing.T) {
	// a regular user's access token has no type claim; the role claim alone
	// must never open an admin route
	userToken := signToken(t, jwt.MapClaims{
		"sub":   "64f000000000000000000002",
		"email": "user@example.com",
		"role":  "SUPER_ADMIN",
		"exp":   time.Now().Add(10 * time.Minute).Unix(),
	})
	status := callGuard(t, "Bearer "+userToken, "ADMIN")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAdminAuthRejectsExpiredToken(t *testing.T) {
	expired := signToken(t, jwt.MapClaims{
		"sub":  "64f000000000000000000003",
		"role": "ADMIN",
		"type": AdminAccessTokenType,
		"exp":  time.Now().Add(-time.Minute).Unix(),
	})
	status := callGuard(t, "Bearer "+expired, "ADMIN")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAdminAuthWithoutRoleRequirementOnlyChecksType(t *testing.T) {
	status := callGuard(t, "Bearer "+adminToken(t, "ADMIN"))
	assert.Equal(t, http.StatusOK, status)
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/outlaw-hq/admin-api/internal/config"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func adminClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"sub":   "admin",
		"email": "admin@outlaw.com",
		"role":  "admin",
		"jti":   "token-1",
		"exp":   time.Now().Add(time.Hour).Unix(),
		"iat":   time.Now().Unix(),
	}
}

func runAuth(t *testing.T, authHeader string) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	if authHeader != "" {
		c.Request.Header.Set("Authorization", authHeader)
	}

	cfg := &config.Config{JWTSecret: testSecret}
	AdminAuthMiddleware(cfg, nil)(c)
	return w, c
}

func TestAdminAuthAcceptsValidToken(t *testing.T) {
	token := signToken(t, testSecret, adminClaims())
	w, c := runAuth(t, "Bearer "+token)

	require.Equal(t, http.StatusOK, w.Code)
	require.False(t, c.IsAborted())
	require.Equal(t, "admin@outlaw.com", c.GetString(ContextAdminEmail))
	require.Equal(t, "token-1", c.GetString(ContextTokenID))
}

func TestAdminAuthMissingHeader(t *testing.T) {
	w, c := runAuth(t, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.True(t, c.IsAborted())
}

func TestAdminAuthMalformedHeader(t *testing.T) {
	w, _ := runAuth(t, "Token abc")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminAuthWrongSecret(t *testing.T) {
	token := signToken(t, "other-secret", adminClaims())
	w, _ := runAuth(t, "Bearer "+token)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminAuthExpiredToken(t *testing.T) {
	claims := adminClaims()
	claims["exp"] = time.Now().Add(-time.Hour).Unix()
	token := signToken(t, testSecret, claims)

	w, _ := runAuth(t, "Bearer "+token)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminAuthNonAdminRoleForbidden(t *testing.T) {
	claims := adminClaims()
	claims["role"] = "founder"
	token := signToken(t, testSecret, claims)

	w, _ := runAuth(t, "Bearer "+token)
	require.Equal(t, http.StatusForbidden, w.Code)
}

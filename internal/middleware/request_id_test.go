package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestRequestIDKeepsGatewayHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)
	c.Request.Header.Set("X-Request-Id", "gw-123")

	RequestIDMiddleware()(c)

	require.Equal(t, "gw-123", RequestID(c))
	require.Equal(t, "gw-123", w.Header().Get("X-Request-Id"))
}

func TestRequestIDGeneratesWhenAbsent(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	RequestIDMiddleware()(c)

	id := RequestID(c)
	require.NotEmpty(t, id)
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	require.Equal(t, id, w.Header().Get("X-Request-Id"))
}

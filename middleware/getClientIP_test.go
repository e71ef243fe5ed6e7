package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func testContext(remoteAddr string, headers map[string]string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.RemoteAddr = remoteAddr
	for k, v := range headers {
		c.Request.Header.Set(k, v)
	}
	return c
}

func TestGetClientIP(t *testing.T) {
	// The leftmost X-Forwarded-For entry is the original client.
	c := testContext("10.0.0.1:443", map[string]string{
		"X-Forwarded-For": "203.0.113.7, 10.0.0.2, 10.0.0.1",
	})
	assert.Equal(t, "203.0.113.7", getClientIP(c))

	c = testContext("10.0.0.1:443", map[string]string{"X-Real-IP": " 203.0.113.9 "})
	assert.Equal(t, "203.0.113.9", getClientIP(c))

	// Fallback strips the port from the socket address.
	c = testContext("192.0.2.4:51234", nil)
	assert.Equal(t, "192.0.2.4", getClientIP(c))

	c = testContext("192.0.2.4", nil)
	assert.Equal(t, "192.0.2.4", getClientIP(c))
}

package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newRouter(keys []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", APIKeyMiddleware(keys), func(c *gin.Context) {
		c.String(http.StatusOK, Operator(c))
	})
	return r
}

func TestAPIKeyMiddleware(t *testing.T) {
	r := newRouter([]string{"alpha", "beta"})

	tests := []struct {
		name   string
		key    string
		status int
		body   string
	}{
		{"missing key", "", http.StatusUnauthorized, `{"error":"unauthorized"}`},
		{"unknown key", "gamma", http.StatusUnauthorized, `{"error":"unauthorized"}`},
		{"first key", "alpha", http.StatusOK, "key-1"},
		{"second key padded", "  beta ", http.StatusOK, "key-2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.key != "" {
				req.Header.Set("X-API-Key", tt.key)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.body, w.Body.String())
		})
	}
}

func TestAPIKeyMiddleware_NoKeysConfigured(t *testing.T) {
	r := newRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("X-API-Key", "")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

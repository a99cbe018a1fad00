package auth

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// operatorCtxKey is the Gin context key holding which admin key authenticated the request.
const operatorCtxKey = "operator"

// APIKeyMiddleware admits requests whose X-API-Key matches one of keys.
// Every key grants the same read access.
func APIKeyMiddleware(keys []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := strings.TrimSpace(c.GetHeader("X-API-Key"))
		if apiKey != "" {
			for i, k := range keys {
				if subtle.ConstantTimeCompare([]byte(apiKey), []byte(k)) == 1 {
					c.Set(operatorCtxKey, fmt.Sprintf("key-%d", i+1))
					c.Next()
					return
				}
			}
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
}

// Operator returns the label of the admin key used for the request, or "".
func Operator(c *gin.Context) string {
	return c.GetString(operatorCtxKey)
}

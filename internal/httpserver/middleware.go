package httpserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/PratikDhanave/interest-registration-service/internal/handlers"
	"github.com/PratikDhanave/interest-registration-service/internal/i18n"
	"github.com/PratikDhanave/interest-registration-service/internal/models"
)

const requestIDHeader = "X-Request-ID"

// requestLogger assigns a request ID and logs one line per request.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqID := c.GetHeader(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Header(requestIDHeader, reqID)

		c.Next()

		fields := []zap.Field{
			zap.String("request_id", reqID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", handlers.ClientIP(c.Request)),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			logger.Warn("request", fields...)
			return
		}
		logger.Info("request", fields...)
	}
}

// recovery answers a panic with the same body shape as POST /api/register.
func recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		err := fmt.Errorf("%v", recovered)
		logger.Error("panic recovered", zap.String("path", c.Request.URL.Path), zap.Error(err), zap.Stack("stack"))

		loc := handlers.Localizer(c)
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.RegisterResponse{
			Message: loc.WithDetail(i18n.GenericError, err),
		})
	})
}

package handlers

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/PratikDhanave/interest-registration-service/internal/i18n"
	"github.com/PratikDhanave/interest-registration-service/internal/metrics"
	"github.com/PratikDhanave/interest-registration-service/internal/models"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Inserter persists a registration.
type Inserter interface {
	InsertRegistration(ctx context.Context, reg models.Registration) error
}

// Mirror receives every persisted registration for best-effort copying
// elsewhere. Implementations must return without waiting on the copy.
type Mirror interface {
	Mirror(ctx context.Context, reg models.Registration)
}

// ClientIP returns the X-Forwarded-For header as sent, else the peer
// address, else "N/A".
func ClientIP(r *http.Request) string {
	if xff := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); xff != "" {
		return xff
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "N/A"
}

// Localizer picks the response language from Accept-Language.
func Localizer(c *gin.Context) i18n.Localizer {
	return i18n.ForAcceptLanguage(c.GetHeader("Accept-Language"))
}

// RegisterRegistrationRoutes registers the form submission endpoint.
//
// POST /register
// - JSON or URL-encoded body
// - Durable: returns success only after the DB write completes
// - The spreadsheet mirror is started after the write and never affects the response
func RegisterRegistrationRoutes(r gin.IRoutes, st Inserter, mirror Mirror, m *metrics.Metrics, logger *zap.Logger) {
	r.POST("/register", func(c *gin.Context) {
		loc := Localizer(c)

		var req models.RegisterRequest
		if err := c.ShouldBind(&req); err != nil {
			logger.Debug("registration body rejected", zap.Error(err))
			m.Registrations.WithLabelValues(metrics.OutcomeInvalid).Inc()
			c.JSON(http.StatusBadRequest, models.RegisterResponse{Message: loc.Text(i18n.MissingFields)})
			return
		}

		req.Normalize()
		if err := validate.Struct(req); err != nil {
			m.Registrations.WithLabelValues(metrics.OutcomeInvalid).Inc()
			c.JSON(http.StatusBadRequest, models.RegisterResponse{Message: loc.Text(i18n.MissingFields)})
			return
		}

		reg := models.NewRegistration(req, ClientIP(c.Request), time.Now())

		ctx := c.Request.Context()
		if err := st.InsertRegistration(ctx, reg); err != nil {
			logger.Error("registration insert failed",
				zap.Stringer("registration_id", reg.ID),
				zap.Error(err),
			)
			m.Registrations.WithLabelValues(metrics.OutcomeFailed).Inc()
			c.JSON(http.StatusInternalServerError, models.RegisterResponse{Message: loc.WithDetail(i18n.SaveFailed, err)})
			return
		}

		mirror.Mirror(ctx, reg)

		m.Registrations.WithLabelValues(metrics.OutcomeOK).Inc()
		logger.Info("registration stored",
			zap.Stringer("registration_id", reg.ID),
			zap.String("interest_type", reg.InterestType),
		)
		c.JSON(http.StatusOK, models.RegisterResponse{Success: true, Message: loc.Text(i18n.Registered)})
	})
}

package httpserver

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/PratikDhanave/interest-registration-service/internal/auth"
	"github.com/PratikDhanave/interest-registration-service/internal/config"
	"github.com/PratikDhanave/interest-registration-service/internal/handlers"
	"github.com/PratikDhanave/interest-registration-service/internal/metrics"
	"github.com/PratikDhanave/interest-registration-service/internal/store"
	"github.com/PratikDhanave/interest-registration-service/internal/web"
)

// Deps are the collaborators the router hands to the handlers.
type Deps struct {
	Store   store.RegistrationStore
	Mirror  handlers.Mirror
	Metrics *metrics.Metrics
	Logger  *zap.Logger
}

// NewRouter wires public endpoints, operational endpoints and the admin read path.
// Public: /, /static/*, /api/register, /api/health
// Operational: /api/ready, /metrics
// Admin (X-API-Key): /api/admin/registrations/count
func NewRouter(cfg config.Config, d Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(recovery(d.Logger))
	r.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	r.Use(requestLogger(d.Logger))
	r.Use(cors.Default())

	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", web.Index())
	})
	r.StaticFS("/static", web.Static())
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	api := r.Group("/api")
	handlers.RegisterHealthRoutes(api, d.Store)
	handlers.RegisterRegistrationRoutes(api, d.Store, d.Mirror, d.Metrics, d.Logger)

	// Admin group is mounted only when at least one key is configured.
	if len(cfg.AdminAPIKeys) > 0 {
		admin := api.Group("/admin")
		admin.Use(auth.APIKeyMiddleware(cfg.AdminAPIKeys))
		handlers.RegisterSummaryRoutes(admin, d.Store)
	}

	return r
}

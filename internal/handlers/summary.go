package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PratikDhanave/interest-registration-service/internal/models"
)

// Counter counts stored registrations.
type Counter interface {
	CountRegistrations(ctx context.Context, interestType string, from, to time.Time) (int64, error)
}

// RegisterSummaryRoutes registers the operator read path.
//
// GET /registrations/count?interest_type=...&from=...&to=...
// - Mounted behind the admin API key middleware
// - interest_type is optional; from/to are RFC3339 and form the window [from,to)
func RegisterSummaryRoutes(r gin.IRoutes, st Counter) {
	r.GET("/registrations/count", func(c *gin.Context) {
		interestType := c.Query("interest_type")
		fromStr := c.Query("from")
		toStr := c.Query("to")

		if fromStr == "" || toStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from, to are required"})
			return
		}

		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be RFC3339"})
			return
		}
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to must be RFC3339"})
			return
		}

		from = from.UTC()
		to = to.UTC()

		if !from.Before(to) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be < to"})
			return
		}

		count, err := st.CountRegistrations(c.Request.Context(), interestType, from, to)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db query failed"})
			return
		}

		c.JSON(http.StatusOK, models.CountResponse{
			InterestType: interestType,
			Count:        count,
		})
	})
}

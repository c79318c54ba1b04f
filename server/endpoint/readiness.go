package endpoint

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/asrdrop/observability"
)

// Readiness answers 503 unless every checker is up, so a load balancer
// stops routing transcriptions while the ASR endpoint is unreachable.
func Readiness(serviceName string, checkers ...observability.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		sh := observability.Check(c.Request.Context(), serviceName, "", checkers...)

		status := "ready"
		httpStatus := http.StatusOK
		if sh.Status != observability.HealthStatusUp {
			status = "not_ready"
			httpStatus = http.StatusServiceUnavailable
		}
		c.JSON(httpStatus, gin.H{
			"status":    status,
			"service":   serviceName,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

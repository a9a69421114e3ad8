package api

import (
	"net/http"

	"newslens/orchestrator"

	"github.com/gin-gonic/gin"
)

// RegisterHealthRoutes registers the health check endpoint.
func RegisterHealthRoutes(r *gin.Engine, orch *orchestrator.Orchestrator) {
	r.GET("/api/health", func(c *gin.Context) { handleHealth(c, orch) })
}

// handleHealth reports liveness plus per-category readiness counts.
func handleHealth(c *gin.Context, orch *orchestrator.Orchestrator) {
	overview := orch.Overview()

	loading, analyzed := 0, 0
	for _, ov := range overview {
		if ov.IsLoading {
			loading++
		}
		if ov.Analyzed {
			analyzed++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"categories": len(overview),
		"loading":    loading,
		"analyzed":   analyzed,
	})
}

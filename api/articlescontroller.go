package api

import (
	"errors"
	"net/http"

	"newslens/orchestrator"

	"github.com/gin-gonic/gin"
)

// RegisterArticleRoutes registers the news analysis endpoints.
func RegisterArticleRoutes(r *gin.Engine, orch *orchestrator.Orchestrator) {
	g := r.Group("/api")
	g.GET("/articles", func(c *gin.Context) { handleListCategories(c, orch) })
	g.GET("/articles/:category", func(c *gin.Context) { handleGetArticles(c, orch) })
	g.GET("/llm-news-summary/:category", func(c *gin.Context) { handleRecentSummary(c, orch) })
}

// handleGetArticles serves the cached or freshly computed analysis for one
// category.
func handleGetArticles(c *gin.Context, orch *orchestrator.Orchestrator) {
	category := c.Param("category")
	result := orch.GetAnalysis(c.Request.Context(), category)

	switch result.Status {
	case orchestrator.StatusUnknown:
		c.JSON(http.StatusNotFound, gin.H{
			"error":            result.Err,
			"valid_categories": result.Categories,
		})
	case orchestrator.StatusLoading:
		c.JSON(http.StatusAccepted, gin.H{
			"status":   "loading",
			"category": category,
			"message":  "initial feed load in progress, retry shortly",
		})
	case orchestrator.StatusAnalyzing:
		c.JSON(http.StatusAccepted, gin.H{
			"status":   "analyzing",
			"category": category,
			"message":  "analysis in progress, retry shortly",
		})
	case orchestrator.StatusEmpty:
		c.JSON(http.StatusNotFound, gin.H{
			"error":    "no articles available for category",
			"category": category,
		})
	case orchestrator.StatusError:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":    result.Err,
			"category": category,
		})
	default:
		c.JSON(http.StatusOK, gin.H{
			"category": category,
			"summary": gin.H{
				"total_articles":    result.Data.TotalArticles,
				"analyzed_articles": result.Data.AnalyzedArticles,
				"positive_count":    len(result.Data.Positive),
				"negative_count":    len(result.Data.Negative),
				"neutral_count":     len(result.Data.Neutral),
			},
			"articles": gin.H{
				"positive": result.Data.Positive,
				"negative": result.Data.Negative,
				"neutral":  result.Data.Neutral,
			},
			"last_updated": result.LastUpdated,
			"cache_status": result.Cache,
		})
	}
}

// handleListCategories serves per-category counts and freshness flags.
// No analysis is triggered.
func handleListCategories(c *gin.Context, orch *orchestrator.Orchestrator) {
	c.JSON(http.StatusOK, gin.H{"categories": orch.Overview()})
}

// handleRecentSummary serves a quick LLM summary of the most recent raw
// articles, bypassing the analysis cache.
func handleRecentSummary(c *gin.Context, orch *orchestrator.Orchestrator) {
	category := c.Param("category")
	summary, err := orch.RecentSummary(c.Request.Context(), category)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, orchestrator.ErrUnknownCategory) || errors.Is(err, orchestrator.ErrNoArticles) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error(), "category": category})
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

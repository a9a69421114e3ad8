package api

import (
	"net/http"

	"newslens/chat"

	"github.com/gin-gonic/gin"
)

// ChatRequest is the body accepted by the chat endpoints.
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// RegisterChatRoutes registers the chat endpoints.
func RegisterChatRoutes(r *gin.Engine, svc *chat.Service) {
	g := r.Group("/api/chat")
	g.POST("", func(c *gin.Context) { handleChat(c, svc) })
	g.POST("/test", handleChatTest)
}

// handleChat answers the user's message using web-search snippets as LLM
// context.
func handleChat(c *gin.Context, svc *chat.Service) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	answer, err := svc.Answer(c.Request.Context(), req.Message)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to answer message",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"answer": answer})
}

// handleChatTest echoes a deterministic mock answer without touching the
// search or LLM collaborators.
func handleChatTest(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"answer":  chat.MockAnswer(req.Message),
		"context": chat.MockContext,
	})
}

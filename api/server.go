package api

import (
	"newslens/chat"
	"newslens/orchestrator"
	"newslens/transcribe"

	"github.com/gin-gonic/gin"
)

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(orch *orchestrator.Orchestrator, chatSvc *chat.Service, transcriber transcribe.Transcriber) *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())

	// Register resource routers
	RegisterArticleRoutes(r, orch)
	RegisterChatRoutes(r, chatSvc)
	RegisterVoiceRoutes(r, transcriber)
	RegisterHealthRoutes(r, orch)
	return r
}

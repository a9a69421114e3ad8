package api

import (
	"errors"
	"io"
	"net/http"

	"newslens/transcribe"

	"github.com/gin-gonic/gin"
)

// RegisterVoiceRoutes registers the voice transcription endpoint.
func RegisterVoiceRoutes(r *gin.Engine, transcriber transcribe.Transcriber) {
	r.POST("/api/voice-to-text", func(c *gin.Context) { handleVoiceToText(c, transcriber) })
}

// handleVoiceToText forwards an uploaded audio file to the transcription
// collaborator. Size limits are enforced client-side before upload.
func handleVoiceToText(c *gin.Context, transcriber transcribe.Transcriber) {
	fileHeader, err := c.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "audio file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read audio file: " + err.Error()})
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read audio file: " + err.Error()})
		return
	}

	text, err := transcriber.Transcribe(c.Request.Context(), fileHeader.Filename, audio)
	if err != nil {
		var whisperErr *transcribe.WhisperError
		if errors.As(err, &whisperErr) {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":       "transcription returned no text",
				"whisperResp": whisperErr.Body,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"text": text})
}

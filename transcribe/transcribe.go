package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"newslens/config"
)

// Transcriber converts uploaded audio to text.
type Transcriber interface {
	Transcribe(ctx context.Context, filename string, audio []byte) (string, error)
}

// WhisperError carries the raw collaborator response for diagnostics when
// transcription returns no text.
type WhisperError struct {
	Status int
	Body   string
}

func (e *WhisperError) Error() string {
	return fmt.Sprintf("transcription failed: status %d: %s", e.Status, e.Body)
}

// WhisperClient implements Transcriber using the OpenAI transcription API
// Endpoint: POST https://api.openai.com/v1/audio/transcriptions
// Request: multipart form with file, model, language
// Response: {"text": "..."}
type WhisperClient struct {
	apiKey   string
	endpoint string
	http     *http.Client
}

// NewWhisperClient builds a transcription client with the fixed model and
// language hint from config.
func NewWhisperClient(apiKey string) *WhisperClient {
	return &WhisperClient{
		apiKey:   apiKey,
		endpoint: "https://api.openai.com/v1/audio/transcriptions",
		http:     &http.Client{Timeout: 120 * time.Second},
	}
}

// NewWhisperClientWithEndpoint is used by tests to point at a local server.
func NewWhisperClientWithEndpoint(apiKey, endpoint string) *WhisperClient {
	c := NewWhisperClient(apiKey)
	c.endpoint = endpoint
	return c
}

func (w *WhisperClient) Transcribe(ctx context.Context, filename string, audio []byte) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(audio); err != nil {
		return "", err
	}
	if err := writer.WriteField("model", config.WhisperModel); err != nil {
		return "", err
	}
	if err := writer.WriteField("language", config.WhisperLanguage); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.endpoint, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+w.apiKey)

	resp, err := w.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcription request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &WhisperError{Status: resp.StatusCode, Body: string(raw)}
	}

	var parsed struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil || parsed.Text == "" {
		return "", &WhisperError{Status: resp.StatusCode, Body: string(raw)}
	}
	return parsed.Text, nil
}

package transcribe

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"newslens/config"
)

func TestTranscribeReturnsText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("not a multipart request: %v", err)
		}
		if got := r.FormValue("model"); got != config.WhisperModel {
			t.Errorf("model = %q, want %q", got, config.WhisperModel)
		}
		if got := r.FormValue("language"); got != config.WhisperLanguage {
			t.Errorf("language = %q, want %q", got, config.WhisperLanguage)
		}
		if _, _, err := r.FormFile("file"); err != nil {
			t.Errorf("file part missing: %v", err)
		}
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			t.Error("missing bearer token")
		}
		w.Write([]byte(`{"text":"hello world"}`))
	}))
	defer server.Close()

	client := NewWhisperClientWithEndpoint("key", server.URL)
	text, err := client.Transcribe(context.Background(), "clip.webm", []byte("audio-bytes"))
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if text != "hello world" {
		t.Errorf("text = %q", text)
	}
}

func TestTranscribeCarriesRawResponseOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"invalid file format"}}`, http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewWhisperClientWithEndpoint("key", server.URL)
	_, err := client.Transcribe(context.Background(), "clip.webm", []byte("junk"))

	var whisperErr *WhisperError
	if !errors.As(err, &whisperErr) {
		t.Fatalf("expected WhisperError, got %v", err)
	}
	if !strings.Contains(whisperErr.Body, "invalid file format") {
		t.Errorf("raw response not carried: %q", whisperErr.Body)
	}
}

func TestTranscribeEmptyTextIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"text":""}`))
	}))
	defer server.Close()

	client := NewWhisperClientWithEndpoint("key", server.URL)
	if _, err := client.Transcribe(context.Background(), "clip.webm", []byte("audio")); err == nil {
		t.Fatal("empty transcription text must be an error")
	}
}

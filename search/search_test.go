package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchParsesResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req searchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if req.APIKey != "test-key" || req.Query != "go news" {
			t.Errorf("unexpected request: %+v", req)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(searchResponse{Results: []Snippet{
			{Title: "T1", Content: "C1", URL: "https://example.com/1"},
			{Title: "T2", Content: "C2", URL: "https://example.com/2"},
		}})
	}))
	defer server.Close()

	client := NewClientWithEndpoint("test-key", server.URL)
	snippets, err := client.Search(context.Background(), "go news")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(snippets) != 2 || snippets[0].Title != "T1" {
		t.Errorf("unexpected snippets: %+v", snippets)
	}
}

func TestSearchNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid api key"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClientWithEndpoint("bad-key", server.URL)
	if _, err := client.Search(context.Background(), "q"); err == nil {
		t.Fatal("non-2xx status must return an error")
	}
}

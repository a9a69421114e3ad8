package chat

import (
	"context"
	"fmt"
	"strings"

	"newslens/search"
	"newslens/sentiment"
)

const answerPrompt = `You are a helpful news assistant. Use the search results below as context and answer the user's question in a short, conversational way (at most four sentences). If the results do not cover the question, say so briefly.

Search results:
%s

Question: %s`

// Service answers user questions with web-search snippets as LLM context.
type Service struct {
	searcher search.Searcher
	llm      sentiment.Generator
}

// NewService wires a chat service to its two collaborators.
func NewService(searcher search.Searcher, llm sentiment.Generator) *Service {
	return &Service{searcher: searcher, llm: llm}
}

// Answer fetches search snippets for the message and asks the LLM for a
// conversational reply grounded on them.
func (s *Service) Answer(ctx context.Context, message string) (string, error) {
	snippets, err := s.searcher.Search(ctx, message)
	if err != nil {
		return "", fmt.Errorf("web search failed: %w", err)
	}

	answer, err := s.llm.Generate(ctx, fmt.Sprintf(answerPrompt, formatSnippets(snippets), message))
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	return strings.TrimSpace(answer), nil
}

func formatSnippets(snippets []search.Snippet) string {
	if len(snippets) == 0 {
		return "(no results)"
	}
	var b strings.Builder
	for i, sn := range snippets {
		fmt.Fprintf(&b, "%d. %s: %s (%s)\n", i+1, sn.Title, sn.Content, sn.URL)
	}
	return b.String()
}

// MockContext is the fixed context echoed by MockAnswer.
var MockContext = []string{
	"Mock snippet: markets steady as tech earnings land.",
	"Mock snippet: new climate report highlights regional shifts.",
}

// MockAnswer is the deterministic reply for the test endpoint. It touches no
// collaborators, so health checks spend no API quota.
func MockAnswer(message string) string {
	return fmt.Sprintf("This is a test answer for: %q. The real endpoint consults web search and the LLM.", message)
}

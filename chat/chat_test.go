package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"newslens/search"
)

type fakeSearcher struct {
	snippets []search.Snippet
	err      error
	lastQ    string
}

func (f *fakeSearcher) Search(ctx context.Context, query string) ([]search.Snippet, error) {
	f.lastQ = query
	return f.snippets, f.err
}

type fakeGenerator struct {
	answer     string
	err        error
	lastPrompt string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.lastPrompt = prompt
	return f.answer, f.err
}

func TestAnswerUsesSnippetsAsContext(t *testing.T) {
	searcher := &fakeSearcher{snippets: []search.Snippet{
		{Title: "Rate decision", Content: "Central bank held rates steady.", URL: "https://example.com/rates"},
	}}
	gen := &fakeGenerator{answer: "Rates were held steady."}

	svc := NewService(searcher, gen)
	answer, err := svc.Answer(context.Background(), "what happened with rates?")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if answer != "Rates were held steady." {
		t.Errorf("answer = %q", answer)
	}
	if searcher.lastQ != "what happened with rates?" {
		t.Errorf("search query = %q", searcher.lastQ)
	}
	if !strings.Contains(gen.lastPrompt, "Central bank held rates steady.") {
		t.Error("prompt does not contain the search snippet")
	}
	if !strings.Contains(gen.lastPrompt, "what happened with rates?") {
		t.Error("prompt does not contain the user question")
	}
}

func TestAnswerSearchFailure(t *testing.T) {
	svc := NewService(&fakeSearcher{err: errors.New("quota exceeded")}, &fakeGenerator{})

	if _, err := svc.Answer(context.Background(), "hello"); err == nil {
		t.Fatal("search failure must propagate")
	} else if !strings.Contains(err.Error(), "web search failed") {
		t.Errorf("error lacks context: %v", err)
	}
}

func TestAnswerLLMFailure(t *testing.T) {
	svc := NewService(&fakeSearcher{}, &fakeGenerator{err: errors.New("timeout")})

	if _, err := svc.Answer(context.Background(), "hello"); err == nil {
		t.Fatal("LLM failure must propagate")
	} else if !strings.Contains(err.Error(), "chat completion failed") {
		t.Errorf("error lacks context: %v", err)
	}
}

func TestMockAnswerDeterministic(t *testing.T) {
	a := MockAnswer("same question")
	b := MockAnswer("same question")
	if a != b {
		t.Error("mock answer must be deterministic for the same message")
	}
	if !strings.Contains(a, "same question") {
		t.Error("mock answer must echo the message")
	}
}

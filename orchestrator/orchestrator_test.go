package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"newslens/dedup"
	"newslens/events"
	"newslens/rssfeeds"
	"newslens/sentiment"
	"newslens/store"
	"newslens/types"
)

type scriptedGenerator struct {
	responses []string
	err       error
	calls     int
}

func (g *scriptedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	if len(g.responses) == 0 {
		return annotationJSON(0), nil
	}
	resp := g.responses[0]
	if len(g.responses) > 1 {
		g.responses = g.responses[1:]
	}
	return resp, nil
}

func annotationJSON(score float64) string {
	sentimentLabel := "neutral"
	if score > 0.3 {
		sentimentLabel = "positive"
	} else if score < -0.3 {
		sentimentLabel = "negative"
	}
	return fmt.Sprintf(`{"summary":"S.","overall_sentiment":%q,"bias":"none","mood_emoji":"😐","sentiment_score":%f,"bias_level":1,"manipulative_score":1}`, sentimentLabel, score)
}

func newTestOrchestrator(gen sentiment.Generator) (*Orchestrator, *store.Store) {
	st := store.New(rssfeeds.Categories)
	orch := New(st, sentiment.NewAnnotator(gen), gen, dedup.NewSeenFilter("", ""), events.NewPublisher(nil, ""))
	return orch, st
}

func seedArticles(st *store.Store, category string, n int) {
	articles := make([]*types.Article, 0, n)
	for i := 0; i < n; i++ {
		url := fmt.Sprintf("https://example.com/%s/%d", category, i)
		articles = append(articles, &types.Article{
			ID:        types.GenerateID(url),
			Category:  category,
			Title:     fmt.Sprintf("article %d", i),
			Content:   "content",
			URL:       url,
			Timestamp: time.Now().Add(-time.Duration(i) * time.Minute),
		})
	}
	st.SetArticles(category, articles)
}

func TestGetAnalysisUnknownCategory(t *testing.T) {
	orch, _ := newTestOrchestrator(&scriptedGenerator{})

	result := orch.GetAnalysis(context.Background(), "sports")
	if result.Status != StatusUnknown {
		t.Fatalf("status = %q, want %q", result.Status, StatusUnknown)
	}
	if len(result.Categories) == 0 {
		t.Error("unknown category response must list valid categories")
	}
}

func TestGetAnalysisLoadingDuringInitialWindow(t *testing.T) {
	orch, _ := newTestOrchestrator(&scriptedGenerator{})

	result := orch.GetAnalysis(context.Background(), "technology")
	if result.Status != StatusLoading {
		t.Fatalf("status = %q, want %q", result.Status, StatusLoading)
	}
}

func TestGetAnalysisFetchError(t *testing.T) {
	orch, st := newTestOrchestrator(&scriptedGenerator{})
	st.SetFetchError("technology", errors.New("all 2 sources failed"))

	result := orch.GetAnalysis(context.Background(), "technology")
	if result.Status != StatusError {
		t.Fatalf("status = %q, want %q", result.Status, StatusError)
	}
	if result.Err == "" {
		t.Error("error result must carry the stored message")
	}
}

func TestGetAnalysisEmptyCategory(t *testing.T) {
	orch, st := newTestOrchestrator(&scriptedGenerator{})
	st.SetArticles("technology", nil)

	result := orch.GetAnalysis(context.Background(), "technology")
	if result.Status != StatusEmpty {
		t.Fatalf("status = %q, want %q", result.Status, StatusEmpty)
	}
}

func TestGetAnalysisComputesAndCaches(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{annotationJSON(0.8), annotationJSON(-0.8)}}
	orch, st := newTestOrchestrator(gen)
	seedArticles(st, "technology", 2)

	first := orch.GetAnalysis(context.Background(), "technology")
	if first.Status != StatusOK {
		t.Fatalf("status = %q, want %q", first.Status, StatusOK)
	}
	if first.Cache.FromCache {
		t.Error("first analysis must not report from_cache")
	}
	if len(first.Data.Positive) != 1 || len(first.Data.Negative) != 1 {
		t.Errorf("partition wrong: %d positive, %d negative", len(first.Data.Positive), len(first.Data.Negative))
	}

	callsAfterFirst := gen.calls
	second := orch.GetAnalysis(context.Background(), "technology")
	if second.Status != StatusOK {
		t.Fatalf("cached status = %q, want %q", second.Status, StatusOK)
	}
	if !second.Cache.FromCache {
		t.Error("request within TTL must report from_cache")
	}
	if gen.calls != callsAfterFirst {
		t.Errorf("cached request triggered %d extra LLM calls", gen.calls-callsAfterFirst)
	}
}

func TestGetAnalysisCompletesAfterClientDisconnect(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{annotationJSON(0.8)}}
	orch, st := newTestOrchestrator(gen)
	seedArticles(st, "technology", 3)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	first := orch.GetAnalysis(ctx, "technology")
	if first.Status != StatusOK {
		t.Fatalf("status = %q, want %q", first.Status, StatusOK)
	}
	if first.Data.AnalyzedArticles != 3 {
		t.Fatalf("analyzed %d of 3 articles despite cancelled caller", first.Data.AnalyzedArticles)
	}
	if gen.calls != 3 {
		t.Errorf("generator called %d times, want 3", gen.calls)
	}

	second := orch.GetAnalysis(context.Background(), "technology")
	if !second.Cache.FromCache {
		t.Error("completed run must be served from cache")
	}
	if second.Data.TotalArticles != 3 {
		t.Errorf("cached entry covers %d of 3 retained articles", second.Data.TotalArticles)
	}
}

func TestGetAnalysisReportsAnalyzingWhileSlotHeld(t *testing.T) {
	orch, st := newTestOrchestrator(&scriptedGenerator{})
	seedArticles(st, "technology", 1)

	if !st.TryBeginAnalysis("technology") {
		t.Fatal("could not claim analysis slot")
	}
	defer st.EndAnalysis("technology")

	result := orch.GetAnalysis(context.Background(), "technology")
	if result.Status != StatusAnalyzing {
		t.Fatalf("status = %q, want %q", result.Status, StatusAnalyzing)
	}
}

func TestGetAnalysisDegradesButSucceeds(t *testing.T) {
	gen := &scriptedGenerator{err: errors.New("provider down")}
	orch, st := newTestOrchestrator(gen)
	seedArticles(st, "technology", 2)

	result := orch.GetAnalysis(context.Background(), "technology")
	if result.Status != StatusOK {
		t.Fatalf("status = %q, want %q despite annotator failures", result.Status, StatusOK)
	}
	if result.Data.DegradedArticles != 2 {
		t.Errorf("degraded count = %d, want 2", result.Data.DegradedArticles)
	}
	if len(result.Data.Neutral) != 2 {
		t.Errorf("degraded articles must land in neutral, got %d", len(result.Data.Neutral))
	}
}

func TestAnalysisSlotReleasedAfterRun(t *testing.T) {
	orch, st := newTestOrchestrator(&scriptedGenerator{})
	seedArticles(st, "technology", 1)

	_ = orch.GetAnalysis(context.Background(), "technology")

	if st.IsAnalyzing("technology") {
		t.Fatal("analysis slot left held after run")
	}
}

func TestRecentSummary(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{"Tech had a busy day."}}
	orch, st := newTestOrchestrator(gen)
	seedArticles(st, "technology", 7)

	summary, err := orch.RecentSummary(context.Background(), "technology")
	if err != nil {
		t.Fatalf("RecentSummary: %v", err)
	}
	if summary != "Tech had a busy day." {
		t.Errorf("summary = %q", summary)
	}

	if _, err := orch.RecentSummary(context.Background(), "sports"); !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("expected ErrUnknownCategory, got %v", err)
	}
	if _, err := orch.RecentSummary(context.Background(), "health"); !errors.Is(err, ErrNoArticles) {
		t.Errorf("expected ErrNoArticles, got %v", err)
	}
}

package types

import "time"

// Sentiment is the overall tone the model assigned to an article.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// AnalyzedArticle is an Article plus the scores returned by the LLM.
// It is immutable once created; re-analysis produces a new value.
type AnalyzedArticle struct {
	Article
	Summary           string    `json:"summary"`
	OverallSentiment  Sentiment `json:"overall_sentiment"`
	SentimentScore    float64   `json:"sentiment_score"`    // [-1, 1]
	BiasLevel         float64   `json:"bias_level"`         // [0, 10]
	ManipulativeScore float64   `json:"manipulative_score"` // [0, 10]
	MoodEmoji         string    `json:"mood_emoji"`
	Bias              string    `json:"bias"`
	Degraded          bool      `json:"degraded,omitempty"`
}

// AnalysisData is the partitioned result of one analysis cycle for a category.
type AnalysisData struct {
	Positive []*AnalyzedArticle `json:"positive"`
	Negative []*AnalyzedArticle `json:"negative"`
	Neutral  []*AnalyzedArticle `json:"neutral"`

	TotalArticles    int `json:"total_articles"`
	AnalyzedArticles int `json:"analyzed_articles"`
	DegradedArticles int `json:"degraded_articles"`
}

// AnalysisEntry is one analysis cache record with its freshness timestamp.
type AnalysisEntry struct {
	Data      *AnalysisData `json:"data,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// CacheStatus describes how a served analysis relates to the TTL window.
type CacheStatus struct {
	FromCache  bool  `json:"from_cache"`
	AgeSeconds int64 `json:"age_seconds"`
	TTLSeconds int64 `json:"ttl_seconds"`
}

// CategoryOverview is the lightweight per-category listing served by
// GET /api/articles. No analysis is triggered to build it.
type CategoryOverview struct {
	Category     string    `json:"category"`
	ArticleCount int       `json:"article_count"`
	IsLoading    bool      `json:"is_loading"`
	LastError    string    `json:"last_error,omitempty"`
	LastFetched  time.Time `json:"last_fetched"`
	Analyzed     bool      `json:"analyzed"`
	AnalysisAge  int64     `json:"analysis_age_seconds,omitempty"`
}

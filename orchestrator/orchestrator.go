package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"newslens/common"
	"newslens/config"
	"newslens/dedup"
	"newslens/events"
	"newslens/rssfeeds"
	"newslens/sentiment"
	"newslens/store"
	"newslens/types"
)

// Status classifies the outcome of an analysis request.
type Status string

const (
	StatusOK        Status = "ok"
	StatusLoading   Status = "loading"
	StatusAnalyzing Status = "analyzing"
	StatusUnknown   Status = "unknown_category"
	StatusEmpty     Status = "empty"
	StatusError     Status = "error"
)

// Result is what an articles request resolves to. Data is set only for
// StatusOK.
type Result struct {
	Status      Status
	Category    string
	Data        *types.AnalysisData
	Cache       types.CacheStatus
	LastUpdated time.Time
	Err         string
	Categories  []string
}

// Orchestrator owns the fetch/cache/analyze pipeline. It is the only writer
// of the injected store; request handlers go through it.
type Orchestrator struct {
	store     *store.Store
	annotator *sentiment.Annotator
	llm       sentiment.Generator
	seen      *dedup.SeenFilter
	publisher *events.Publisher

	s3       *common.S3
	s3Bucket string
	s3Prefix string
}

// New wires an orchestrator. seen, publisher, and s3 may be disabled
// instances; the pipeline treats them as best-effort extras.
func New(st *store.Store, annotator *sentiment.Annotator, llm sentiment.Generator, seen *dedup.SeenFilter, publisher *events.Publisher) *Orchestrator {
	return &Orchestrator{
		store:     st,
		annotator: annotator,
		llm:       llm,
		seen:      seen,
		publisher: publisher,
	}
}

// WithS3 enables analysis snapshot uploads to the given bucket.
func (o *Orchestrator) WithS3(client *common.S3, bucket, prefix string) *Orchestrator {
	o.s3 = client
	o.s3Bucket = bucket
	o.s3Prefix = prefix
	return o
}

// Start runs one fetch cycle immediately, then repeats on the polling
// interval until ctx is cancelled.
func (o *Orchestrator) Start(ctx context.Context) {
	o.RefreshAll(ctx)

	ticker := time.NewTicker(config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			o.RefreshAll(ctx)
		}
	}
}

// RefreshAll runs one fetch cycle over every category.
func (o *Orchestrator) RefreshAll(ctx context.Context) {
	log.Printf("Starting fetch cycle for %d categories", len(rssfeeds.Categories))
	for _, category := range rssfeeds.Categories {
		if ctx.Err() != nil {
			return
		}
		o.refreshCategory(ctx, category)
	}
	log.Printf("Fetch cycle complete")
}

// refreshCategory fetches all sources for one category and merges the result
// into the retained set. When every source fails, the stored error is set
// and the retained articles stay untouched.
func (o *Orchestrator) refreshCategory(ctx context.Context, category string) {
	fetched, err := rssfeeds.FetchCategory(ctx, category)
	if err != nil {
		log.Printf("[%s] fetch cycle failed: %v", category, err)
		o.store.SetFetchError(category, err)
		return
	}

	rssfeeds.EnrichContent(fetched)
	o.seen.MarkAndFlag(ctx, fetched)

	state, _ := o.store.CategorySnapshot(category)
	merged := rssfeeds.MergeArticles(state.Articles, fetched)
	o.store.SetArticles(category, merged)
	log.Printf("[%s] fetched %d, retaining %d articles", category, len(fetched), len(merged))
}

// GetAnalysis resolves an articles request for a category: cached analysis
// when fresh, a loading/analyzing status when work is in flight, otherwise a
// new sequential annotation run over the retained articles.
func (o *Orchestrator) GetAnalysis(ctx context.Context, category string) Result {
	if !rssfeeds.ValidCategory(category) {
		return Result{
			Status:     StatusUnknown,
			Category:   category,
			Err:        fmt.Sprintf("unknown category %q", category),
			Categories: rssfeeds.Categories,
		}
	}

	state, _ := o.store.CategorySnapshot(category)

	if state.IsLoading && o.store.InInitialLoadWindow() {
		return Result{Status: StatusLoading, Category: category}
	}

	if len(state.Articles) == 0 {
		if state.LastError != "" {
			return Result{Status: StatusError, Category: category, Err: state.LastError}
		}
		return Result{Status: StatusEmpty, Category: category}
	}

	if entry, age, ok := o.store.Analysis(category); ok && age < config.CacheTTL {
		return Result{
			Status:      StatusOK,
			Category:    category,
			Data:        entry.Data,
			LastUpdated: entry.Timestamp,
			Cache: types.CacheStatus{
				FromCache:  true,
				AgeSeconds: int64(age.Seconds()),
				TTLSeconds: int64((config.CacheTTL - age).Seconds()),
			},
		}
	}

	if !o.store.TryBeginAnalysis(category) {
		return Result{Status: StatusAnalyzing, Category: category}
	}
	defer o.store.EndAnalysis(category)

	// The run is detached from the request context: a client disconnect must
	// not leave a partially annotated result cached as fresh.
	data := o.analyze(context.WithoutCancel(ctx), category, state.Articles)
	o.store.SetAnalysis(category, data)
	o.publisher.PublishAnalysis(category, data)
	o.uploadSnapshot(category, data)

	entry, age, _ := o.store.Analysis(category)
	return Result{
		Status:      StatusOK,
		Category:    category,
		Data:        data,
		LastUpdated: entry.Timestamp,
		Cache: types.CacheStatus{
			FromCache:  false,
			AgeSeconds: int64(age.Seconds()),
			TTLSeconds: int64(config.CacheTTL.Seconds()),
		},
	}
}

// analyze runs the annotator over every retained article sequentially with a
// fixed pause between calls, then partitions the results. Once started, the
// run covers the full article set.
func (o *Orchestrator) analyze(ctx context.Context, category string, articles []*types.Article) *types.AnalysisData {
	log.Printf("[%s] analyzing %d articles", category, len(articles))
	analyzed := make([]*types.AnalyzedArticle, 0, len(articles))

	for i, article := range articles {
		analyzed = append(analyzed, o.annotator.Annotate(ctx, article))

		if i < len(articles)-1 {
			time.Sleep(config.AnnotateDelay)
		}
	}

	data := sentiment.Partition(analyzed)
	log.Printf("[%s] analysis complete: %d positive, %d negative, %d neutral, %d degraded",
		category, len(data.Positive), len(data.Negative), len(data.Neutral), data.DegradedArticles)
	return data
}

const recentSummaryPrompt = `Summarize the following news headlines in one short paragraph for a reader catching up on the %s category. Plain text, no list.

%s`

// Sentinel errors for RecentSummary so the API layer can pick status codes.
var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrNoArticles      = errors.New("no articles retained for category")
)

// RecentSummary builds a quick LLM summary from the most recent raw articles,
// bypassing the analysis cache entirely.
func (o *Orchestrator) RecentSummary(ctx context.Context, category string) (string, error) {
	if !rssfeeds.ValidCategory(category) {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}

	state, _ := o.store.CategorySnapshot(category)
	if len(state.Articles) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoArticles, category)
	}

	n := len(state.Articles)
	if n > config.RecentSummaryCount {
		n = config.RecentSummaryCount
	}

	var b strings.Builder
	for _, a := range state.Articles[:n] {
		fmt.Fprintf(&b, "- %s (%s)\n", a.Title, a.Source)
	}

	summary, err := o.llm.Generate(ctx, fmt.Sprintf(recentSummaryPrompt, category, b.String()))
	if err != nil {
		return "", fmt.Errorf("summary generation failed: %w", err)
	}
	return strings.TrimSpace(summary), nil
}

// Overview returns the lightweight per-category listing.
func (o *Orchestrator) Overview() []types.CategoryOverview {
	return o.store.Overview(rssfeeds.Categories)
}

// uploadSnapshot writes the completed analysis as JSON to S3 if configured.
func (o *Orchestrator) uploadSnapshot(category string, data *types.AnalysisData) {
	if o.s3 == nil || o.s3Bucket == "" {
		return
	}

	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		log.Printf("[%s] failed to encode snapshot: %v", category, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	key := fmt.Sprintf("%sanalysis/%s/%s.json", o.s3Prefix, category, time.Now().UTC().Format("20060102T150405Z"))
	if err := o.s3.Put(ctx, o.s3Bucket, key, bytes.NewReader(b), "application/json"); err != nil {
		log.Printf("[%s] snapshot upload failed: %v", category, err)
		return
	}
	log.Printf("[%s] snapshot uploaded to s3://%s/%s", category, o.s3Bucket, key)
}

package rssfeeds

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sort"
	"strings"
	"time"

	"newslens/config"
	"newslens/types"

	"github.com/mmcdole/gofeed"
)

// Retry and politeness pacing, overridable in tests.
var (
	fetchBaseDelay = config.FetchBaseDelay
	fetchJitter    = config.FetchJitter
	sourceDelay    = config.SourceDelay
)

// FetchFeed retrieves and parses one RSS/Atom feed, returning article metadata
func FetchFeed(ctx context.Context, source FeedConfig, category string) ([]*types.Article, error) {
	fctx, cancel := context.WithTimeout(ctx, config.FeedTimeout)
	defer cancel()

	parser := gofeed.NewParser()
	feed, err := parser.ParseURLWithContext(source.URL, fctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed %s: %w", source.URL, err)
	}

	articles := make([]*types.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item.Link == "" {
			continue
		}

		var published time.Time
		if item.PublishedParsed != nil {
			published = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			published = *item.UpdatedParsed
		} else {
			published = time.Now()
		}

		content := item.Description
		if content == "" {
			content = item.Content
		}

		articles = append(articles, &types.Article{
			ID:        types.GenerateID(item.Link),
			Category:  category,
			Title:     strings.TrimSpace(item.Title),
			Content:   stripHTML(content),
			URL:       item.Link,
			Source:    source.Name,
			Timestamp: published,
			FetchedAt: time.Now(),
		})
	}

	return articles, nil
}

// FetchFeedWithRetry calls FetchFeed up to config.MaxFetchAttempts times with
// exponentially growing delay plus random jitter between attempts.
func FetchFeedWithRetry(ctx context.Context, source FeedConfig, category string) ([]*types.Article, error) {
	var lastErr error
	delay := fetchBaseDelay

	for attempt := 1; attempt <= config.MaxFetchAttempts; attempt++ {
		articles, err := FetchFeed(ctx, source, category)
		if err == nil {
			return articles, nil
		}
		lastErr = err
		log.Printf("[%s] fetch attempt %d/%d failed for %s: %v",
			category, attempt, config.MaxFetchAttempts, source.URL, err)

		if attempt == config.MaxFetchAttempts {
			break
		}

		jitter := time.Duration(rand.Int63n(int64(fetchJitter)))
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay + jitter):
		}
		delay *= 2
	}

	return nil, fmt.Errorf("source %s exhausted %d attempts: %w", source.Name, config.MaxFetchAttempts, lastErr)
}

// FetchCategory fetches every configured source for a category. Sources that
// exhaust their retries contribute no articles; the category only fails when
// all of them do.
func FetchCategory(ctx context.Context, category string) ([]*types.Article, error) {
	sources, ok := CategoryFeeds[category]
	if !ok {
		return nil, fmt.Errorf("unknown category %q", category)
	}

	var fetched []*types.Article
	succeeded := 0
	var lastErr error

	for i, source := range sources {
		articles, err := FetchFeedWithRetry(ctx, source, category)
		if err != nil {
			lastErr = err
			log.Printf("[%s] giving up on source %s: %v", category, source.Name, err)
		} else {
			succeeded++
			fetched = append(fetched, articles...)
		}

		// Politeness pause between sources, not after the last one.
		if i < len(sources)-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(sourceDelay):
			}
		}
	}

	if succeeded == 0 {
		return nil, fmt.Errorf("all %d sources failed for category %s: %w", len(sources), category, lastErr)
	}
	return fetched, nil
}

// MergeArticles combines freshly fetched articles with the retained set,
// deduplicates by URL keeping the most recently seen entry, sorts by
// timestamp descending, and truncates to the retention cap.
func MergeArticles(retained, fetched []*types.Article) []*types.Article {
	byURL := make(map[string]*types.Article, len(retained)+len(fetched))
	for _, a := range retained {
		byURL[a.URL] = a
	}
	// Fetched entries win over retained ones with the same URL.
	for _, a := range fetched {
		byURL[a.URL] = a
	}

	merged := make([]*types.Article, 0, len(byURL))
	for _, a := range byURL {
		merged = append(merged, a)
	}

	sort.Slice(merged, func(i, j int) bool {
		if !merged[i].Timestamp.Equal(merged[j].Timestamp) {
			return merged[i].Timestamp.After(merged[j].Timestamp)
		}
		return merged[i].URL < merged[j].URL
	})

	if len(merged) > config.MaxArticlesPerCategory {
		merged = merged[:config.MaxArticlesPerCategory]
	}
	return merged
}

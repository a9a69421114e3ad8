package rssfeeds

import (
	"fmt"
	"log"
	"regexp"
	"strings"
	"sync"

	"newslens/config"
	"newslens/types"

	readability "github.com/go-shiori/go-readability"
)

// EnrichContent fetches and extracts full article text for articles whose RSS
// snippet is too short to annotate meaningfully, using a bounded worker pool.
// Extraction failures are logged and leave the snippet in place.
func EnrichContent(articles []*types.Article) {
	var thin []*types.Article
	for _, a := range articles {
		if len(a.Content) < config.MinContentLength && a.URL != "" {
			thin = append(thin, a)
		}
	}
	if len(thin) == 0 {
		return
	}

	var wg sync.WaitGroup
	articleChan := make(chan *types.Article)

	for i := 0; i < config.ExtractWorkers; i++ {
		go func() {
			for article := range articleChan {
				if err := extractContent(article); err != nil {
					log.Printf("[%s] extraction failed for %s: %v", article.Category, article.URL, err)
				}
				wg.Done()
			}
		}()
	}

	for _, article := range thin {
		wg.Add(1)
		articleChan <- article
	}
	wg.Wait()
	close(articleChan)
}

// extractContent replaces the article content with readability-extracted text.
func extractContent(article *types.Article) error {
	extracted, err := readability.FromURL(article.URL, config.ExtractTimeout)
	if err != nil {
		return fmt.Errorf("readability extraction failed: %w", err)
	}

	text := strings.TrimSpace(extracted.TextContent)
	if len(text) <= len(article.Content) {
		return nil
	}
	article.Content = types.TruncateUTF8(text, config.MaxPromptChars)
	return nil
}

var tagRe = regexp.MustCompile(`<[^>]*>`)

// stripHTML reduces an RSS description to a plain text snippet.
func stripHTML(s string) string {
	s = tagRe.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

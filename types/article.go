package types

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
	"unicode/utf8"
)

// Article represents a single news item fetched from an RSS source.
// The URL acts as the unique key within a category.
type Article struct {
	ID        string    `json:"id"`
	Category  string    `json:"category"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	URL       string    `json:"url"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
	FetchedAt time.Time `json:"fetched_at"`
	Repeat    bool      `json:"repeat,omitempty"`
}

// CategoryState holds the raw fetch state for one category.
type CategoryState struct {
	Articles    []*Article `json:"articles"`
	IsLoading   bool       `json:"is_loading"`
	LastError   string     `json:"last_error,omitempty"`
	LastFetched time.Time  `json:"last_fetched"`
}

// GenerateID creates a short, stable ID by hashing the provided string input
func GenerateID(input string) string {
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:])[:16]
}

// TruncateUTF8 shortens s to at most max bytes without splitting a rune.
func TruncateUTF8(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}

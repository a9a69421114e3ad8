package config

import "time"

// Feed Polling Constants
const (
	// PollInterval is the wait time between background fetch cycles
	PollInterval = 5 * time.Minute

	// InitialLoadWindow is how long a category may report "loading" after
	// process start before an empty result becomes an error
	InitialLoadWindow = 10 * time.Second

	// MaxFetchAttempts is the per-source retry budget for a single cycle
	MaxFetchAttempts = 3

	// FetchBaseDelay is the first retry delay; it doubles each attempt
	FetchBaseDelay = 2 * time.Second

	// FetchJitter caps the random jitter added to each retry delay
	FetchJitter = 1 * time.Second

	// SourceDelay is the pause between sequential source fetches within a
	// category, as politeness toward upstream feeds
	SourceDelay = 500 * time.Millisecond

	// FeedTimeout bounds a single RSS fetch
	FeedTimeout = 15 * time.Second
)

// Retention Constants
const (
	// MaxArticlesPerCategory caps how many raw articles a category retains
	MaxArticlesPerCategory = 20

	// SeenURLTTL is how long fetched article URLs stay in the Redis
	// seen-filter before expiring
	SeenURLTTL = 48 * time.Hour
)

// Analysis Constants
const (
	// CacheTTL is how long a completed analysis stays fresh
	CacheTTL = 5 * time.Minute

	// PositiveThreshold is the minimum sentiment score for the positive bucket
	PositiveThreshold = 0.3

	// NegativeThreshold is the maximum sentiment score for the negative bucket
	NegativeThreshold = -0.3

	// MaxPerBucket caps each of the positive/negative/neutral buckets
	MaxPerBucket = 5

	// AnnotateDelay is the pause between sequential article annotations,
	// as self-imposed rate limiting toward the LLM provider
	AnnotateDelay = 300 * time.Millisecond

	// RecentSummaryCount is how many raw articles feed the quick summary
	// endpoint
	RecentSummaryCount = 5
)

// Content Extraction Constants
const (
	// ExtractWorkers is the worker pool size for full-text extraction
	ExtractWorkers = 4

	// ExtractTimeout bounds a single readability extraction
	ExtractTimeout = 20 * time.Second

	// MinContentLength is the RSS snippet length below which full-text
	// extraction is attempted
	MinContentLength = 200
)

// LLM Constants
const (
	// ChatModel is the Cohere model used for sentiment scoring and chat
	ChatModel = "command-r-08-2024"

	// WhisperModel is the fixed transcription model identifier
	WhisperModel = "whisper-1"

	// WhisperLanguage is the language hint sent with transcriptions
	WhisperLanguage = "en"

	// LLMTimeout bounds a single LLM call
	LLMTimeout = 60 * time.Second

	// MaxPromptChars caps article content sent in a prompt
	MaxPromptChars = 4000
)

// Search Constants
const (
	// SearchMaxResults is how many snippets the web-search collaborator
	// is asked for per chat question
	SearchMaxResults = 4

	// SearchTimeout bounds a single search call
	SearchTimeout = 20 * time.Second
)

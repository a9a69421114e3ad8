package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"newslens/config"
	"newslens/types"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
)

// Generator abstracts the LLM completion call so tests can fake it.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// CohereGenerator implements Generator using the Cohere chat API.
type CohereGenerator struct {
	client *cohereclient.Client
	model  string
}

// NewCohereGenerator builds a generator from an API key.
func NewCohereGenerator(apiKey string) *CohereGenerator {
	return &CohereGenerator{
		client: cohereclient.NewClient(cohereclient.WithToken(apiKey)),
		model:  config.ChatModel,
	}
}

func (g *CohereGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	cctx, cancel := context.WithTimeout(ctx, config.LLMTimeout)
	defer cancel()

	model := g.model
	resp, err := g.client.Chat(cctx, &cohere.ChatRequest{
		Message: prompt,
		Model:   &model,
	})
	if err != nil {
		return "", fmt.Errorf("cohere chat error: %w", err)
	}
	if resp == nil {
		return "", fmt.Errorf("cohere chat returned empty response")
	}
	return resp.Text, nil
}

const annotatePrompt = `You are a news sentiment analyst. Analyze the article below and respond with ONLY a JSON object, no other text, in exactly this shape:
{
  "summary": "two-sentence neutral summary",
  "overall_sentiment": "positive" | "negative" | "neutral",
  "bias": "one sentence describing any bias in the coverage",
  "mood_emoji": "single emoji matching the article mood",
  "sentiment_score": number between -1 and 1,
  "bias_level": number between 0 and 10,
  "manipulative_score": number between 0 and 10
}

Title: %s
Content: %s`

// llmAnnotation is the JSON object shape the model is instructed to return.
type llmAnnotation struct {
	Summary           string  `json:"summary"`
	OverallSentiment  string  `json:"overall_sentiment"`
	Bias              string  `json:"bias"`
	MoodEmoji         string  `json:"mood_emoji"`
	SentimentScore    float64 `json:"sentiment_score"`
	BiasLevel         float64 `json:"bias_level"`
	ManipulativeScore float64 `json:"manipulative_score"`
}

// Annotator scores articles through an LLM, degrading to a neutral
// placeholder on any failure.
type Annotator struct {
	llm Generator
}

// NewAnnotator wires an Annotator to the given generator.
func NewAnnotator(llm Generator) *Annotator {
	return &Annotator{llm: llm}
}

// Annotate produces an AnalyzedArticle for one article. It never fails: any
// transport or parse error yields the neutral fallback with Degraded set, so
// the pipeline always produces one result per article.
func (a *Annotator) Annotate(ctx context.Context, article *types.Article) *types.AnalyzedArticle {
	content := types.TruncateUTF8(article.Content, config.MaxPromptChars)
	prompt := fmt.Sprintf(annotatePrompt, article.Title, content)

	raw, err := a.llm.Generate(ctx, prompt)
	if err != nil {
		log.Printf("[%s] annotation failed for %q: %v", article.Category, article.Title, err)
		return fallbackResult(article)
	}

	parsed, err := parseAnnotation(raw)
	if err != nil {
		log.Printf("[%s] bad annotation payload for %q: %v", article.Category, article.Title, err)
		return fallbackResult(article)
	}

	return &types.AnalyzedArticle{
		Article:           *article,
		Summary:           parsed.Summary,
		OverallSentiment:  types.Sentiment(parsed.OverallSentiment),
		SentimentScore:    clamp(parsed.SentimentScore, -1, 1),
		BiasLevel:         clamp(parsed.BiasLevel, 0, 10),
		ManipulativeScore: clamp(parsed.ManipulativeScore, 0, 10),
		MoodEmoji:         parsed.MoodEmoji,
		Bias:              parsed.Bias,
	}
}

// parseAnnotation decodes the model output, tolerating markdown code fences,
// and enforces the schema.
func parseAnnotation(raw string) (*llmAnnotation, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var parsed llmAnnotation
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, fmt.Errorf("response is not the expected JSON object: %w", err)
	}

	switch types.Sentiment(parsed.OverallSentiment) {
	case types.SentimentPositive, types.SentimentNegative, types.SentimentNeutral:
	default:
		return nil, fmt.Errorf("unexpected overall_sentiment %q", parsed.OverallSentiment)
	}
	if parsed.Summary == "" {
		return nil, fmt.Errorf("missing summary")
	}
	return &parsed, nil
}

// fallbackResult is the neutral placeholder returned when annotation fails.
func fallbackResult(article *types.Article) *types.AnalyzedArticle {
	return &types.AnalyzedArticle{
		Article:           *article,
		Summary:           "Analysis unavailable for this article.",
		OverallSentiment:  types.SentimentNeutral,
		SentimentScore:    0,
		BiasLevel:         0,
		ManipulativeScore: 0,
		MoodEmoji:         "😐",
		Bias:              "Bias could not be assessed.",
		Degraded:          true,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

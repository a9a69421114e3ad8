package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"newslens/api"
	"newslens/chat"
	"newslens/common"
	"newslens/config"
	"newslens/dedup"
	"newslens/events"
	"newslens/orchestrator"
	"newslens/rssfeeds"
	"newslens/search"
	"newslens/sentiment"
	"newslens/store"
	"newslens/transcribe"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()
	log.SetOutput(os.Stderr)

	cfg := config.Load()
	if cfg.CohereAPIKey == "" {
		log.Fatal("COHERE_API_KEY is required")
	}

	llm := sentiment.NewCohereGenerator(cfg.CohereAPIKey)
	annotator := sentiment.NewAnnotator(llm)
	st := store.New(rssfeeds.Categories)

	seen := dedup.NewSeenFilter(cfg.RedisAddr, cfg.RedisPassword)
	defer seen.Close()
	if seen.Enabled() {
		log.Printf("Redis seen-filter enabled at %s", cfg.RedisAddr)
	}

	publisher := events.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	defer publisher.Close()
	if publisher.Enabled() {
		log.Printf("Kafka analysis events enabled on topic %s", cfg.KafkaTopic)
	}

	orch := orchestrator.New(st, annotator, llm, seen, publisher)

	if cfg.S3Bucket != "" {
		s3Client, err := common.NewS3(context.Background(), common.S3Config{Region: cfg.S3Region})
		if err != nil {
			log.Printf("Warning: failed to init S3 client: %v (snapshot uploads disabled)", err)
		} else {
			orch.WithS3(s3Client, cfg.S3Bucket, cfg.S3Prefix)
			log.Printf("S3 snapshot uploads enabled to bucket %q", cfg.S3Bucket)
		}
	} else {
		log.Printf("S3 not configured; skipping snapshot uploads")
	}

	// Background polling: one immediate cycle, then every PollInterval.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go orch.Start(ctx)

	chatSvc := chat.NewService(search.NewClient(cfg.SearchAPIKey), llm)
	transcriber := transcribe.NewWhisperClient(cfg.OpenAIAPIKey)

	r := api.NewRouter(orch, chatSvc, transcriber)

	addr := ":" + cfg.Port
	log.Printf("Starting API server on %s", addr)
	log.Println("API endpoints available:")
	log.Println("  GET  /api/health")
	log.Println("  GET  /api/articles")
	log.Println("  GET  /api/articles/:category")
	log.Println("  GET  /api/llm-news-summary/:category")
	log.Println("  POST /api/chat")
	log.Println("  POST /api/chat/test")
	log.Println("  POST /api/voice-to-text")

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

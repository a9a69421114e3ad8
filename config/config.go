package config

import (
	"os"
	"strings"
)

// Config carries the environment-provided settings. Everything else is a
// constant in this package.
type Config struct {
	Port string

	CohereAPIKey string
	SearchAPIKey string
	OpenAIAPIKey string

	// Optional collaborators; empty disables the feature.
	RedisAddr     string
	RedisPassword string
	KafkaBrokers  []string
	KafkaTopic    string
	S3Bucket      string
	S3Region      string
	S3Prefix      string
}

// Load reads configuration from the environment. Callers are expected to
// have loaded .env (godotenv) beforehand.
func Load() *Config {
	cfg := &Config{
		Port:          GetEnvOrDefault("PORT", "8080"),
		CohereAPIKey:  os.Getenv("COHERE_API_KEY"),
		SearchAPIKey:  os.Getenv("SEARCH_API_KEY"),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		KafkaTopic:    GetEnvOrDefault("KAFKA_TOPIC", "newslens.analysis"),
		S3Bucket:      strings.TrimSpace(os.Getenv("S3_BUCKET")),
		S3Region:      strings.TrimSpace(os.Getenv("S3_REGION")),
		S3Prefix:      strings.Trim(strings.TrimSpace(os.Getenv("S3_PREFIX")), "/"),
	}

	if brokers := strings.TrimSpace(os.Getenv("KAFKA_BROKERS")); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	if cfg.S3Prefix != "" {
		cfg.S3Prefix += "/"
	}

	return cfg
}

// GetEnvOrDefault returns the value of an environment variable or a default value
func GetEnvOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

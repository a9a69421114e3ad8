package events

import (
	"encoding/json"
	"log"
	"time"

	"newslens/types"

	"github.com/IBM/sarama"
)

// AnalysisEvent is the message published when a category analysis completes.
type AnalysisEvent struct {
	Category      string    `json:"category"`
	PositiveCount int       `json:"positive_count"`
	NegativeCount int       `json:"negative_count"`
	NeutralCount  int       `json:"neutral_count"`
	Degraded      int       `json:"degraded"`
	AnalyzedAt    time.Time `json:"analyzed_at"`
}

// Publisher emits analysis events to Kafka. It is optional: with no brokers
// configured, or when the producer cannot be created, publishing is a no-op.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
}

// NewPublisher connects a sync producer to the given brokers. An empty
// broker list disables publishing. Connection failures log a warning and
// disable publishing instead of failing startup.
func NewPublisher(brokers []string, topic string) *Publisher {
	if len(brokers) == 0 {
		return &Publisher{}
	}

	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForLocal

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		log.Printf("Warning: failed to connect Kafka producer: %v. Analysis events disabled.", err)
		return &Publisher{}
	}

	return &Publisher{producer: producer, topic: topic}
}

// Enabled reports whether a producer was established.
func (p *Publisher) Enabled() bool { return p.producer != nil }

// PublishAnalysis sends one event for a completed category analysis.
// Publish failures are logged, never propagated; events are best-effort.
func (p *Publisher) PublishAnalysis(category string, data *types.AnalysisData) {
	if p.producer == nil {
		return
	}

	event := AnalysisEvent{
		Category:      category,
		PositiveCount: len(data.Positive),
		NegativeCount: len(data.Negative),
		NeutralCount:  len(data.Neutral),
		Degraded:      data.DegradedArticles,
		AnalyzedAt:    time.Now(),
	}

	b, err := json.Marshal(event)
	if err != nil {
		log.Printf("[%s] failed to encode analysis event: %v", category, err)
		return
	}

	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(category),
		Value: sarama.ByteEncoder(b),
	})
	if err != nil {
		log.Printf("[%s] failed to publish analysis event: %v", category, err)
	}
}

// Close shuts the producer down if one was established.
func (p *Publisher) Close() {
	if p.producer != nil {
		_ = p.producer.Close()
	}
}

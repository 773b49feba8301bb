// Package kafka publishes storm alerts for non-low detection results.
// The publisher is optional and only constructed when alerting is
// enabled in configuration.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/troposcan/detection-service/internal/config"
	"github.com/troposcan/detection-service/internal/domain"
	"github.com/troposcan/detection-service/internal/observability"
)

// Publisher produces alert messages to a Kafka topic.
// It implements the HTTP adapter's Alerter.
type Publisher struct {
	writer  *kafkago.Writer
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewPublisher creates a Kafka producer for the configured alert topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaAlertTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger, metrics: metrics}
}

// PublishAlert serializes a detection result and writes it to the alert
// topic. The rendered images are omitted; downstream consumers re-fetch
// imagery through the API when they need it.
func (p *Publisher) PublishAlert(ctx context.Context, requestID string, result domain.Result) error {
	msg, err := alertMessage(requestID, result)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish alert: %w", err)
	}
	p.metrics.AlertsPublished.Inc()
	p.logger.Info("alert published",
		"request_id", requestID,
		"risk_level", result.Tier,
		"event_class", result.Event,
	)
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

type alertPayload struct {
	RequestID   string            `json:"request_id"`
	Tier        domain.RiskTier   `json:"risk_level"`
	Event       domain.EventClass `json:"event_class"`
	Metrics     domain.Metrics    `json:"metrics"`
	Narrative   string            `json:"prediction"`
	ModelType   domain.ModelType  `json:"model_type"`
	ProcessedAt time.Time         `json:"processed_at"`
}

// alertMessage marshals a detection result into a Kafka message keyed by
// request ID so retries for the same request land on the same partition.
func alertMessage(requestID string, result domain.Result) (kafkago.Message, error) {
	payload := alertPayload{
		RequestID:   requestID,
		Tier:        result.Tier,
		Event:       result.Event,
		Metrics:     result.Metrics,
		Narrative:   result.Narrative,
		ModelType:   result.ModelType,
		ProcessedAt: result.ProcessedAt,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize alert: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(requestID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "risk_level", Value: []byte(result.Tier)},
			{Key: "model_type", Value: []byte(result.ModelType)},
			{Key: "processed_at", Value: []byte(result.ProcessedAt.Format(time.RFC3339))},
		},
	}, nil
}

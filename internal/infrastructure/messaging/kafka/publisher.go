// Package kafka publishes ethical-review audit events. Every analysis
// emits one event so downstream consumers can track diversity scores
// and bias warnings across the whole query stream, independent of the
// API response lifecycle.
package kafka

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/turtacn/NyayVandan/internal/config"
	"github.com/turtacn/NyayVandan/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/NyayVandan/pkg/errors"
	caselawtypes "github.com/turtacn/NyayVandan/pkg/types/caselaw"
)

// ReviewAuditEvent is the wire form of one published review outcome.
type ReviewAuditEvent struct {
	QueryID            string                       `json:"query_id"`
	EmittedAt          time.Time                    `json:"emitted_at"`
	ResultCaseIDs      []string                     `json:"result_case_ids"`
	OverallDiversity   float64                      `json:"overall_diversity"`
	HasEthicalConcerns bool                         `json:"has_ethical_concerns"`
	Warnings           []caselawtypes.BiasWarningDTO `json:"warnings"`
}

// writerInterface abstracts kafka.Writer for testing.
type writerInterface interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// AuditPublisher writes review events to the audit topic.
type AuditPublisher struct {
	writer writerInterface
	logger logging.Logger
	closed atomic.Bool
}

// NewAuditPublisher builds a publisher over the configured brokers.
func NewAuditPublisher(cfg config.KafkaConfig, logger logging.Logger) (*AuditPublisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.Validation("kafka brokers are required")
	}
	if cfg.AuditTopic == "" {
		return nil, errors.Validation("kafka audit topic is required")
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	batchTimeout := cfg.BatchTimeout
	if batchTimeout == 0 {
		batchTimeout = time.Second
	}
	writeTimeout := cfg.WriteTimeout
	if writeTimeout == 0 {
		writeTimeout = 10 * time.Second
	}
	maxRetries := cfg.MaxRetries
	if maxRetries == 0 {
		maxRetries = 3
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.AuditTopic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: batchTimeout,
		WriteTimeout: writeTimeout,
		MaxAttempts:  maxRetries,
		RequiredAcks: kafka.RequireOne,
	}
	return &AuditPublisher{writer: writer, logger: logger.Named("audit_publisher")}, nil
}

// Publish sends one event, keyed by query ID so events for the same
// query land in one partition.
func (p *AuditPublisher) Publish(ctx context.Context, event ReviewAuditEvent) error {
	if p.closed.Load() {
		return errors.New(errors.ErrCodeAuditPublishFailed, "publisher closed")
	}
	if event.EmittedAt.IsZero() {
		event.EmittedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode audit event")
	}
	msg := kafka.Message{
		Key:   []byte(event.QueryID),
		Value: payload,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("audit event publish failed",
			logging.String("query_id", event.QueryID),
			logging.Err(err))
		return errors.Wrap(err, errors.ErrCodeAuditPublishFailed, "failed to publish audit event")
	}
	return nil
}

// Close flushes buffered messages and stops the writer.
func (p *AuditPublisher) Close() error {
	if p.closed.Swap(true) {
		return nil
	}
	return p.writer.Close()
}

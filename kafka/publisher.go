package kafka

import (
	// Go Internal Packages
	"context"
	"encoding/json"
	"strconv"
	"time"

	// Local Packages
	errors "pay-stream/errors"
	models "pay-stream/models"

	// External Packages
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/plugin/kprom"
	"go.uber.org/zap"
)

const (
	HeaderEventType = "event_type"
	HeaderService   = "service"
)

// Producer is the part of *kgo.Client the publisher needs.
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Flush(ctx context.Context) error
	Close()
}

type Publisher struct {
	producer Producer
	logger   *zap.Logger
	timeout  time.Duration
}

// NewProducerClient creates the long-lived client shared by every publish
// call of the process. Records are acknowledged by all in-sync replicas and
// the idempotent producer is left enabled.
func NewProducerClient(brokers []string, metrics *kprom.Metrics) (*kgo.Client, error) {
	opts := []kgo.Opt{
		kgo.SeedBrokers(brokers...),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	}
	if metrics != nil {
		opts = append(opts, kgo.WithHooks(metrics))
	}
	return kgo.NewClient(opts...)
}

func NewPublisher(producer Producer, logger *zap.Logger, timeout time.Duration) *Publisher {
	return &Publisher{producer: producer, logger: logger, timeout: timeout}
}

// Publish encodes the event and produces it to topic, keyed by transaction id
// so that every event of one transaction lands on the same partition.
func (p *Publisher) Publish(ctx context.Context, topic string, event models.LifecycleEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return errors.PublishErr(topic, err)
	}

	record := &kgo.Record{
		Topic: topic,
		Key:   []byte(strconv.FormatInt(event.Data.ID, 10)),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: HeaderEventType, Value: []byte(event.Event)},
			{Key: HeaderService, Value: []byte(event.Service)},
		},
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	if err := p.producer.ProduceSync(ctx, record).FirstErr(); err != nil {
		p.logger.Error("failed to publish event",
			zap.String("topic", topic),
			zap.String("event", string(event.Event)),
			zap.Int64("transaction_id", event.Data.ID),
			zap.Error(err))
		return errors.PublishErr(topic, err)
	}

	p.logger.Debug("event published",
		zap.String("topic", topic),
		zap.String("event", string(event.Event)),
		zap.Int64("transaction_id", event.Data.ID))
	return nil
}

// Close flushes buffered records and closes the client.
func (p *Publisher) Close(ctx context.Context) {
	if err := p.producer.Flush(ctx); err != nil {
		p.logger.Warn("flush before close failed", zap.Error(err))
	}
	p.producer.Close()
}

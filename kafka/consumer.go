package kafka

import (
	// Go Internal Packages
	"context"
	goerrors "errors"
	"fmt"
	"time"

	// Local Packages
	errors "pay-stream/errors"
	models "pay-stream/models"
	utils "pay-stream/utils"

	// External Packages
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/plugin/kprom"
	"go.uber.org/zap"
)

// ConsumerClient is the part of *kgo.Client the consumer needs.
type ConsumerClient interface {
	PollRecords(ctx context.Context, maxPollRecords int) kgo.Fetches
	CommitRecords(ctx context.Context, rs ...*kgo.Record) error
	AllowRebalance()
	Close()
}

type RecordProcessor interface {
	ProcessRecord(ctx context.Context, record models.Record) error
}

type DeadLetterQueue interface {
	Send(ctx context.Context, letter models.DeadLetter) error
}

type Consumer struct {
	Client    ConsumerClient
	Config    *models.ConsumerConfig
	Processor RecordProcessor
	DLQ       DeadLetterQueue
	Logger    *zap.Logger

	sleep func(ctx context.Context, d time.Duration) error
}

// NewEventConsumer creates a consumer for a single topic. Poll must be called
// to start consuming. Records are handled one at a time and committed only
// once they are processed or rejected.
func NewEventConsumer(conf *models.ConsumerConfig, logger *zap.Logger, processor RecordProcessor, dlq DeadLetterQueue, metrics *kprom.Metrics) (*Consumer, error) {
	logger = logger.With(zap.String("topic", conf.Topic), zap.String("group", conf.Name))

	opts := []kgo.Opt{
		kgo.SeedBrokers(conf.Brokers...),                  // Connects to Kafka brokers
		kgo.ClientID(conf.Name),                           // Labels the client in metrics
		kgo.ConsumerGroup(conf.Name),                      // One group per subscription
		kgo.ConsumeTopics(conf.Topic),                     // Specifies a single topic to consume
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()), // New groups start from the oldest record
		kgo.DisableAutoCommit(),                           // Commits follow processing
		kgo.BlockRebalanceOnPoll(),                        // Blocks rebalancing until the record is handled
		kgo.OnPartitionsAssigned(logAssigned(logger)),     // Logs the assignment
	}
	if metrics != nil {
		opts = append(opts, kgo.WithHooks(metrics)) // Attaches monitoring hooks
	}

	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, err
	}
	return NewConsumer(client, conf, logger, processor, dlq), nil
}

// NewConsumer wires a consumer around an existing client.
func NewConsumer(client ConsumerClient, conf *models.ConsumerConfig, logger *zap.Logger, processor RecordProcessor, dlq DeadLetterQueue) *Consumer {
	return &Consumer{
		Client:    client,
		Config:    conf,
		Processor: processor,
		DLQ:       dlq,
		Logger:    logger,
		sleep:     sleepContext,
	}
}

// Poll consumes records until ctx is cancelled or the client is closed.
// At most one record is in flight at any time.
func (c *Consumer) Poll(ctx context.Context) error {
	defer c.Client.Close()

	for {
		// Check if the context is canceled before polling
		if ctx.Err() != nil {
			c.Logger.Warn("polling stopped: context canceled")
			return ctx.Err()
		}

		fetches := c.Client.PollRecords(ctx, 1)

		// Handle client shutdown
		if fetches.IsClientClosed() {
			return goerrors.New("kafka client closed")
		}

		// Handle context cancellation explicitly
		if goerrors.Is(fetches.Err0(), context.Canceled) {
			return ctx.Err()
		}

		fetches.EachError(func(topic string, partition int32, err error) {
			c.Logger.Error("fetch error", zap.String("fetch_topic", topic), zap.Int32("partition", partition), zap.Error(err))
		})

		for _, record := range fetches.Records() {
			if err := c.handle(ctx, record); err != nil {
				c.Client.AllowRebalance()
				return err
			}
			if err := c.Client.CommitRecords(ctx, record); err != nil {
				c.Logger.Error("failed to commit record", zap.Int64("offset", record.Offset), zap.Error(err))
			}
		}
		c.Client.AllowRebalance()
	}
}

// handle processes one record and applies the reject policy when processing
// fails. It only returns an error when ctx is done before the record is
// settled; such a record is not committed and will be delivered again.
func (c *Consumer) handle(ctx context.Context, kr *kgo.Record) error {
	record := toRecord(kr)

	attempts := 1
	err := c.Processor.ProcessRecord(ctx, record)
	for err != nil && c.retryable(err) && attempts <= c.Config.MaxRetries {
		c.Logger.Warn("processing failed, retrying",
			zap.Int64("offset", record.Offset),
			zap.Int("attempt", attempts),
			zap.Error(err))

		if sleepErr := c.sleep(ctx, c.Config.RetryBackoff*time.Duration(attempts)); sleepErr != nil {
			return sleepErr
		}
		attempts++
		err = c.Processor.ProcessRecord(ctx, record)
	}

	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	c.reject(ctx, record, err, attempts)
	return nil
}

func (c *Consumer) retryable(err error) bool {
	return c.Config.RejectPolicy == models.RejectRetry && !errors.Is(errors.Decode, err)
}

// reject drops the record from its topic. Depending on the policy it is
// parked in the dead-letter queue first.
func (c *Consumer) reject(ctx context.Context, record models.Record, cause error, attempts int) {
	fields := []zap.Field{
		zap.Int32("partition", record.Partition),
		zap.Int64("offset", record.Offset),
		zap.Int("attempts", attempts),
		zap.Bool("poison", errors.Is(errors.Decode, cause)),
		zap.Error(cause),
	}

	if c.Config.RejectPolicy == models.RejectDiscard || c.DLQ == nil {
		c.Logger.Warn("record rejected without requeue", fields...)
		return
	}

	letter := models.DeadLetter{
		Topic:     record.Topic,
		Key:       string(record.Key),
		Value:     string(record.Value),
		Partition: record.Partition,
		Offset:    record.Offset,
		Reason:    cause.Error(),
		Attempts:  attempts,
		FailedAt:  time.Now().UTC(),
	}
	if err := c.DLQ.Send(ctx, letter); err != nil {
		c.Logger.Error("dead letter failed, record dropped", append(fields, zap.NamedError("dlq_error", err))...)
		return
	}
	c.Logger.Warn("record moved to dead letter queue", fields...)
}

func toRecord(kr *kgo.Record) models.Record {
	headers := make(map[string]string, len(kr.Headers))
	for _, h := range kr.Headers {
		headers[h.Key] = string(h.Value)
	}
	return models.Record{
		Key:       kr.Key,
		Value:     kr.Value,
		Topic:     kr.Topic,
		Partition: kr.Partition,
		Offset:    kr.Offset,
		Headers:   headers,
	}
}

func logAssigned(logger *zap.Logger) func(context.Context, *kgo.Client, map[string][]int32) {
	return func(_ context.Context, _ *kgo.Client, assigned map[string][]int32) {
		logger.Info(fmt.Sprintf("partitions assigned: %s", utils.FormatAssignments(assigned)))
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

package kafka

import (
	// Go Internal Packages
	"context"

	// Local Packages
	models "pay-stream/models"

	// External Packages
	"github.com/twmb/franz-go/plugin/kprom"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Subscribe creates one consumer per binding of the topology. base supplies
// the brokers and the reject policy; topic and group come from the binding.
// Each consumer gets its own hooks from metrics when it is not nil.
func Subscribe(t Topology, base models.ConsumerConfig, logger *zap.Logger, processor RecordProcessor, dlq DeadLetterQueue, metrics *MetricsRegistry) ([]*Consumer, error) {
	consumers := make([]*Consumer, 0, len(t))
	for _, b := range t {
		conf := base
		conf.Topic = b.Topic
		conf.Name = b.Group

		var hooks *kprom.Metrics
		if metrics != nil {
			hooks = metrics.ForClient()
		}

		c, err := NewEventConsumer(&conf, logger, processor, dlq, hooks)
		if err != nil {
			for _, started := range consumers {
				started.Client.Close()
			}
			return nil, err
		}
		consumers = append(consumers, c)
	}
	return consumers, nil
}

// Run polls every consumer until ctx is done or one of them fails, in which
// case the others are stopped too.
func Run(ctx context.Context, consumers ...*Consumer) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, c := range consumers {
		c := c
		g.Go(func() error {
			return c.Poll(ctx)
		})
	}
	return g.Wait()
}

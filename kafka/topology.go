package kafka

import (
	// Go Internal Packages
	"context"
	goerrors "errors"
	"fmt"

	// Local Packages
	models "pay-stream/models"

	// External Packages
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
	"go.uber.org/zap"
)

// Binding ties a lifecycle event kind to its topic and to the consumer group
// that reads it. The group's committed offsets act as the durable queue.
type Binding struct {
	Kind  models.EventKind
	Topic string
	Group string
}

type Topology []Binding

// TopicAdmin is the part of *kadm.Client used to apply a topology.
type TopicAdmin interface {
	CreateTopics(ctx context.Context, partitions int32, replicationFactor int16, configs map[string]*string, topics ...string) (kadm.CreateTopicResponses, error)
}

// NewAdminClient returns an admin client on its own connection. Closing it
// closes the connection.
func NewAdminClient(brokers []string) (*kadm.Client, error) {
	client, err := kgo.NewClient(kgo.SeedBrokers(brokers...))
	if err != nil {
		return nil, err
	}
	return kadm.NewClient(client), nil
}

// NewTopology declares one binding per event kind.
func NewTopology(topicFor func(models.EventKind) string, group string) Topology {
	t := make(Topology, 0, len(models.EventKinds))
	for _, kind := range models.EventKinds {
		t = append(t, Binding{
			Kind:  kind,
			Topic: topicFor(kind),
			Group: fmt.Sprintf("%s.%s", group, kind.Short()),
		})
	}
	return t
}

func (t Topology) Binding(kind models.EventKind) (Binding, bool) {
	for _, b := range t {
		if b.Kind == kind {
			return b, true
		}
	}
	return Binding{}, false
}

func (t Topology) Topic(kind models.EventKind) string {
	b, _ := t.Binding(kind)
	return b.Topic
}

func (t Topology) Topics() []string {
	topics := make([]string, len(t))
	for i, b := range t {
		topics[i] = b.Topic
	}
	return topics
}

// Apply creates every topic of the topology. Topics that already exist are
// left untouched, so Apply can run on every start.
func (t Topology) Apply(ctx context.Context, admin TopicAdmin, partitions int32, replicationFactor int16, logger *zap.Logger) error {
	responses, err := admin.CreateTopics(ctx, partitions, replicationFactor, nil, t.Topics()...)
	if err != nil {
		return fmt.Errorf("create topics: %w", err)
	}

	for _, topic := range t.Topics() {
		resp, ok := responses[topic]
		if !ok {
			return fmt.Errorf("no create response for topic %s", topic)
		}
		switch {
		case resp.Err == nil:
			logger.Info("topic created", zap.String("topic", topic))
		case goerrors.Is(resp.Err, kerr.TopicAlreadyExists):
			logger.Debug("topic already exists", zap.String("topic", topic))
		default:
			return fmt.Errorf("create topic %s: %w", topic, resp.Err)
		}
	}
	return nil
}

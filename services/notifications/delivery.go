package notifications

import (
	// Go Internal Packages
	"context"
	"math/rand"
	"time"

	// Local Packages
	models "pay-stream/models"

	// External Packages
	"go.uber.org/zap"
)

// SimulatedDeliverer pretends to hand a notification to each of its channels
// after a random delay in [minDelay, maxDelay].
type SimulatedDeliverer struct {
	logger   *zap.Logger
	minDelay time.Duration
	maxDelay time.Duration
	float    func() float64
}

func NewSimulatedDeliverer(logger *zap.Logger, minDelay, maxDelay time.Duration) *SimulatedDeliverer {
	return &SimulatedDeliverer{logger: logger, minDelay: minDelay, maxDelay: maxDelay, float: rand.Float64}
}

func (d *SimulatedDeliverer) Deliver(ctx context.Context, n models.Notification) error {
	delay := d.minDelay
	if spread := d.maxDelay - d.minDelay; spread > 0 {
		delay += time.Duration(d.float() * float64(spread))
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}

	for _, channel := range n.Channels {
		d.logger.Debug("notification dispatched",
			zap.String("channel", channel),
			zap.String("id", n.ID),
			zap.String("title", n.Title))
	}
	return nil
}

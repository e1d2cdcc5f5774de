package payments

import (
	// Go Internal Packages
	"context"
	"math/rand"
	"time"

	// Local Packages
	models "pay-stream/models"
)

// SettlementProvider resolves the outcome of a pending transaction. It
// returns SETTLED or FAILED, or an error when no outcome could be obtained.
type SettlementProvider interface {
	Settle(ctx context.Context, tx models.Transaction) (models.TransactionStatus, error)
}

// Simulator stands in for a real acquirer: it waits a random delay in
// [minDelay, maxDelay] and then succeeds with probability successRate.
type Simulator struct {
	minDelay    time.Duration
	maxDelay    time.Duration
	successRate float64
	float       func() float64
}

func NewSimulator(minDelay, maxDelay time.Duration, successRate float64) *Simulator {
	return &Simulator{
		minDelay:    minDelay,
		maxDelay:    maxDelay,
		successRate: successRate,
		float:       rand.Float64,
	}
}

func (s *Simulator) Settle(ctx context.Context, _ models.Transaction) (models.TransactionStatus, error) {
	delay := s.minDelay
	if spread := s.maxDelay - s.minDelay; spread > 0 {
		delay += time.Duration(s.float() * float64(spread))
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-timer.C:
	}

	if s.float() < s.successRate {
		return models.StatusSettled, nil
	}
	return models.StatusFailed, nil
}

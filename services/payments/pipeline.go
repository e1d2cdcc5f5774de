package payments

import (
	// Go Internal Packages
	"context"
	"time"

	// Local Packages
	errors "pay-stream/errors"
	models "pay-stream/models"

	// External Packages
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const ServiceName = "payment-service"

type TxStore interface {
	Create(ctx context.Context, userID int64, amount decimal.Decimal, method models.PaymentMethod, description string) (models.Transaction, error)
	UpdateStatus(ctx context.Context, id int64, status models.TransactionStatus) (models.Transaction, error)
	Get(ctx context.Context, id int64) (models.Transaction, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Transaction, error)
	ListPage(ctx context.Context, limit, offset int) ([]models.Transaction, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event models.LifecycleEvent) error
}

type Scheduler interface {
	Schedule(task Task)
}

type Settings struct {
	Ceiling           decimal.Decimal
	SettlementTimeout time.Duration
	TopicFor          func(models.EventKind) string
}

// Pipeline drives a payment from PENDING to a terminal status and announces
// every transition on the broker.
type Pipeline struct {
	store     TxStore
	publisher EventPublisher
	provider  SettlementProvider
	scheduler Scheduler
	settings  Settings
	logger    *zap.Logger
	now       func() time.Time
}

func NewPipeline(store TxStore, publisher EventPublisher, provider SettlementProvider, scheduler Scheduler, settings Settings, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		store:     store,
		publisher: publisher,
		provider:  provider,
		scheduler: scheduler,
		settings:  settings,
		logger:    logger,
		now:       time.Now,
	}
}

// Submit validates the request, records it as PENDING, publishes the
// received event and schedules settlement. It returns without waiting for
// the settlement outcome.
func (p *Pipeline) Submit(ctx context.Context, req models.PaymentRequest) (models.Transaction, error) {
	if err := ValidateRequest(req, p.settings.Ceiling); err != nil {
		return models.Transaction{}, err
	}

	tx, err := p.store.Create(ctx, req.UserID, req.Amount, req.PaymentMethod, req.Description)
	if err != nil {
		p.logger.Error("failed to create transaction", zap.Int64("user_id", req.UserID), zap.Error(err))
		return models.Transaction{}, err
	}
	p.logger.Info("transaction created", zap.Int64("transaction_id", tx.ID), zap.Int64("user_id", tx.UserID))

	if err := p.publish(ctx, models.EventReceived, tx); err != nil {
		// Without the received event no settlement is scheduled, so the
		// row must not stay PENDING.
		p.compensate(context.WithoutCancel(ctx), tx.ID, err)
		return models.Transaction{}, err
	}

	p.scheduler.Schedule(func(ctx context.Context) {
		p.settle(ctx, tx)
	})
	return tx, nil
}

// settle runs the settlement step for one transaction. The transition is
// published only after the store accepted it.
func (p *Pipeline) settle(ctx context.Context, tx models.Transaction) {
	if p.settings.SettlementTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.settings.SettlementTimeout)
		defer cancel()
	}

	status, err := p.provider.Settle(ctx, tx)
	if err != nil {
		p.logger.Warn("settlement provider failed", zap.Int64("transaction_id", tx.ID), zap.Error(err))
		p.compensate(context.WithoutCancel(ctx), tx.ID, err)
		return
	}

	updated, err := p.store.UpdateStatus(ctx, tx.ID, status)
	if err != nil {
		if errors.Is(errors.InvalidTransition, err) {
			p.logger.Warn("transaction already settled", zap.Int64("transaction_id", tx.ID), zap.Error(err))
			return
		}
		p.logger.Error("failed to record settlement", zap.Int64("transaction_id", tx.ID), zap.Error(err))
		p.compensate(context.WithoutCancel(ctx), tx.ID, err)
		return
	}
	p.logger.Info("transaction settled",
		zap.Int64("transaction_id", updated.ID),
		zap.String("status", string(updated.Status)))

	if err := p.publish(ctx, models.EventForStatus(updated.Status), updated); err != nil {
		p.logger.Error("status committed but event not published",
			zap.Int64("transaction_id", updated.ID),
			zap.String("status", string(updated.Status)),
			zap.Error(err))
	}
}

// compensate makes a single attempt to mark the transaction FAILED and
// announce it. On failure the row is left as the store holds it.
func (p *Pipeline) compensate(ctx context.Context, id int64, cause error) {
	if p.settings.SettlementTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.settings.SettlementTimeout)
		defer cancel()
	}

	failed, err := p.store.UpdateStatus(ctx, id, models.StatusFailed)
	if err != nil {
		p.logger.Error("compensating FAILED write failed",
			zap.Int64("transaction_id", id),
			zap.NamedError("cause", cause),
			zap.Error(err))
		return
	}
	p.logger.Warn("transaction marked FAILED", zap.Int64("transaction_id", id), zap.NamedError("cause", cause))

	if err := p.publish(ctx, models.EventFailed, failed); err != nil {
		p.logger.Error("failed event not published", zap.Int64("transaction_id", id), zap.Error(err))
	}
}

func (p *Pipeline) publish(ctx context.Context, kind models.EventKind, tx models.Transaction) error {
	event := models.LifecycleEvent{
		Event:     kind,
		Data:      tx,
		Timestamp: p.now().UTC(),
		Service:   ServiceName,
	}
	return p.publisher.Publish(ctx, p.settings.TopicFor(kind), event)
}

func (p *Pipeline) GetByID(ctx context.Context, id int64) (models.Transaction, error) {
	return p.store.Get(ctx, id)
}

func (p *Pipeline) GetByUser(ctx context.Context, userID int64) ([]models.Transaction, error) {
	return p.store.ListByUser(ctx, userID)
}

// GetPage returns one page of transactions, newest first. page starts at 1.
func (p *Pipeline) GetPage(ctx context.Context, page, limit int) ([]models.Transaction, error) {
	if err := validatePage(page, limit); err != nil {
		return nil, err
	}
	return p.store.ListPage(ctx, limit, (page-1)*limit)
}

// History returns the most recent transactions in condensed form.
func (p *Pipeline) History(ctx context.Context, limit int) ([]models.TransactionSummary, error) {
	ve := errors.ValidationErrs()
	validateLimit(ve, limit)
	if err := ve.Err(); err != nil {
		return nil, errors.InvalidParamsErr(err)
	}

	txs, err := p.store.ListPage(ctx, limit, 0)
	if err != nil {
		return nil, err
	}
	out := make([]models.TransactionSummary, len(txs))
	for i, tx := range txs {
		out[i] = tx.Summary()
	}
	return out, nil
}

package notifications

import (
	// Go Internal Packages
	"context"
	"encoding/json"
	"fmt"
	"time"

	// Local Packages
	errors "pay-stream/errors"
	models "pay-stream/models"

	// External Packages
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	ServiceName = "notification-service"

	DefaultSubject      = "Payment notification"
	DefaultHistoryLimit = 10
	MaxHistoryLimit     = 100
)

type HistoryRepository interface {
	Append(ctx context.Context, n models.Notification) error
	List(ctx context.Context, filter models.NotificationFilter) ([]models.Notification, error)
	Stats(ctx context.Context, since time.Time) (models.NotificationStats, error)
}

type Deliverer interface {
	Deliver(ctx context.Context, n models.Notification) error
}

type Notifier struct {
	Logger    *zap.Logger
	History   HistoryRepository
	Deliverer Deliverer

	now   func() time.Time
	newID func() string
}

func NewNotifier(logger *zap.Logger, history HistoryRepository, deliverer Deliverer) *Notifier {
	return &Notifier{
		Logger:    logger,
		History:   history,
		Deliverer: deliverer,
		now:       time.Now,
		newID:     func() string { return "notif_" + uuid.NewString() },
	}
}

// ProcessRecord decodes a lifecycle event and notifies the user about it.
// Undecodable records fail with a Decode error and are never retried.
func (n *Notifier) ProcessRecord(ctx context.Context, record models.Record) error {
	var event models.LifecycleEvent
	if err := json.Unmarshal(record.Value, &event); err != nil {
		n.Logger.Error("failed to unmarshal event", zap.String("topic", record.Topic), zap.Error(err))
		return errors.DecodeErr(record.Topic, err)
	}
	if !event.Event.Valid() {
		return errors.DecodeErr(record.Topic, fmt.Errorf("unknown event %q", event.Event))
	}

	_, err := n.HandleEvent(ctx, event)
	return err
}

// HandleEvent builds the notification for event, delivers it and appends it
// to the history. Handling the same event twice yields two entries.
func (n *Notifier) HandleEvent(ctx context.Context, event models.LifecycleEvent) (models.Notification, error) {
	notification := n.build(event)

	if err := n.Deliverer.Deliver(ctx, notification); err != nil {
		return models.Notification{}, errors.E(errors.Internal, "deliver notification", err)
	}
	if err := n.History.Append(ctx, notification); err != nil {
		return models.Notification{}, err
	}

	n.Logger.Info("notification sent",
		zap.String("id", notification.ID),
		zap.String("type", notification.Type),
		zap.Int64("transaction_id", notification.TransactionID))
	return notification, nil
}

func (n *Notifier) build(event models.LifecycleEvent) models.Notification {
	tx := event.Data
	amount := tx.Amount.StringFixed(2)

	notification := models.Notification{
		ID:            n.newID(),
		Type:          string(event.Event),
		UserID:        tx.UserID,
		TransactionID: tx.ID,
		Priority:      models.PriorityHigh,
		Channels:      ChannelsFor(string(event.Event)),
		Details: &models.NotificationDetails{
			Amount:        tx.Amount,
			PaymentMethod: tx.PaymentMethod.DisplayName(),
			Description:   tx.Description,
		},
		Status:    models.NotificationSent,
		Timestamp: n.now().UTC(),
	}

	switch event.Event {
	case models.EventReceived:
		notification.Title = "Payment received"
		notification.Message = fmt.Sprintf("Your payment of R$ %s was received and is being processed.", amount)
		notification.Priority = models.PriorityNormal
	case models.EventConfirmed:
		updatedAt := tx.UpdatedAt
		notification.Title = "Payment confirmed"
		notification.Message = fmt.Sprintf("Your payment of R$ %s was processed successfully!", amount)
		notification.Details.ConfirmedAt = &updatedAt
	case models.EventFailed:
		updatedAt := tx.UpdatedAt
		notification.Title = "Payment failed"
		notification.Message = fmt.Sprintf("There was a problem with your payment of R$ %s. Please contact us.", amount)
		notification.Details.FailedAt = &updatedAt
	}
	return notification
}

// ChannelsFor returns the delivery channels of a notification type. Direct
// sends whose type names a channel go out on that channel alone.
func ChannelsFor(kind string) []string {
	switch kind {
	case string(models.EventReceived):
		return []string{models.ChannelEmail, models.ChannelPush}
	case string(models.EventConfirmed), string(models.EventFailed):
		return []string{models.ChannelEmail, models.ChannelSMS, models.ChannelPush}
	case models.ChannelEmail, models.ChannelSMS, models.ChannelPush, models.ChannelInApp:
		return []string{kind}
	}
	return []string{models.ChannelPush}
}

// Send delivers a notification that did not originate from a lifecycle event.
func (n *Notifier) Send(ctx context.Context, req models.DirectNotification) (models.Notification, error) {
	ve := errors.ValidationErrs()
	if req.Type == "" {
		ve.Add("type", "is required")
	}
	if req.Recipient == "" {
		ve.Add("recipient", "is required")
	}
	if req.Message == "" {
		ve.Add("message", "is required")
	}
	if err := ve.Err(); err != nil {
		return models.Notification{}, errors.ValidationFailedErr(err)
	}

	notification := models.Notification{
		ID:        n.newID(),
		Type:      req.Type,
		Recipient: req.Recipient,
		Subject:   req.Subject,
		Message:   req.Message,
		Priority:  req.Priority,
		Channels:  ChannelsFor(req.Type),
		Status:    models.NotificationSent,
		Timestamp: n.now().UTC(),
	}
	if notification.Subject == "" {
		notification.Subject = DefaultSubject
	}
	if notification.Priority == "" {
		notification.Priority = models.PriorityNormal
	}

	if err := n.Deliverer.Deliver(ctx, notification); err != nil {
		return models.Notification{}, errors.E(errors.Internal, "deliver notification", err)
	}
	if err := n.History.Append(ctx, notification); err != nil {
		return models.Notification{}, err
	}

	n.Logger.Info("direct notification sent",
		zap.String("id", notification.ID),
		zap.String("type", notification.Type),
		zap.String("recipient", notification.Recipient))
	return notification, nil
}

func (n *Notifier) All(ctx context.Context) ([]models.Notification, error) {
	return n.History.List(ctx, models.NotificationFilter{})
}

func (n *Notifier) ByUser(ctx context.Context, userID int64) ([]models.Notification, error) {
	return n.History.List(ctx, models.NotificationFilter{UserID: userID})
}

func (n *Notifier) ByTransaction(ctx context.Context, transactionID int64) ([]models.Notification, error) {
	return n.History.List(ctx, models.NotificationFilter{TransactionID: transactionID})
}

// Recent returns the limit most recent notifications.
func (n *Notifier) Recent(ctx context.Context, limit int) ([]models.Notification, error) {
	if limit < 1 || limit > MaxHistoryLimit {
		ve := errors.ValidationErrs()
		ve.Add("limit", "must be between 1 and 100")
		return nil, errors.InvalidParamsErr(ve.Err())
	}
	return n.History.List(ctx, models.NotificationFilter{Limit: limit})
}

// Stats aggregates the whole history; last_24h counts entries of the
// trailing 24 hours.
func (n *Notifier) Stats(ctx context.Context) (models.NotificationStats, error) {
	return n.History.Stats(ctx, n.now().Add(-24*time.Hour))
}

package notifications

import (
	// Go Internal Packages
	"context"
	"encoding/json"
	goerrors "errors"
	"testing"
	"time"

	// Local Packages
	errors "pay-stream/errors"
	models "pay-stream/models"
	memory "pay-stream/repositories/memory"

	// External Packages
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingDeliverer struct {
	delivered []models.Notification
	err       error
}

func (d *recordingDeliverer) Deliver(_ context.Context, n models.Notification) error {
	if d.err != nil {
		return d.err
	}
	d.delivered = append(d.delivered, n)
	return nil
}

func newNotifier() (*Notifier, *memory.NotificationRepository, *recordingDeliverer) {
	repo := memory.NewNotificationRepository()
	deliverer := &recordingDeliverer{}
	return NewNotifier(zap.NewNop(), repo, deliverer), repo, deliverer
}

func lifecycleEvent(kind models.EventKind) models.LifecycleEvent {
	updated := time.Date(2026, 4, 10, 9, 30, 0, 0, time.UTC)
	status := models.StatusPending
	switch kind {
	case models.EventConfirmed:
		status = models.StatusSettled
	case models.EventFailed:
		status = models.StatusFailed
	}
	return models.LifecycleEvent{
		Event: kind,
		Data: models.Transaction{
			ID:            42,
			UserID:        7,
			Amount:        decimal.RequireFromString("150"),
			PaymentMethod: models.MethodCreditCard,
			Description:   "order #1",
			Status:        status,
			CreatedAt:     updated.Add(-3 * time.Second),
			UpdatedAt:     updated,
		},
		Timestamp: updated,
		Service:   "payment-service",
	}
}

func encode(t *testing.T, event models.LifecycleEvent) models.Record {
	t.Helper()
	raw, err := json.Marshal(event)
	require.NoError(t, err)
	return models.Record{Topic: "payment.transaction." + event.Event.Short(), Key: []byte("42"), Value: raw}
}

func TestProcessRecordBuildsNotificationPerKind(t *testing.T) {
	tests := []struct {
		kind     models.EventKind
		title    string
		message  string
		priority string
		channels []string
	}{
		{
			kind:     models.EventReceived,
			title:    "Payment received",
			message:  "Your payment of R$ 150.00 was received and is being processed.",
			priority: models.PriorityNormal,
			channels: []string{"email", "push"},
		},
		{
			kind:     models.EventConfirmed,
			title:    "Payment confirmed",
			message:  "Your payment of R$ 150.00 was processed successfully!",
			priority: models.PriorityHigh,
			channels: []string{"email", "sms", "push"},
		},
		{
			kind:     models.EventFailed,
			title:    "Payment failed",
			message:  "There was a problem with your payment of R$ 150.00. Please contact us.",
			priority: models.PriorityHigh,
			channels: []string{"email", "sms", "push"},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			notifier, repo, deliverer := newNotifier()

			require.NoError(t, notifier.ProcessRecord(context.Background(), encode(t, lifecycleEvent(tt.kind))))
			require.Len(t, deliverer.delivered, 1)

			stored, err := repo.List(context.Background(), models.NotificationFilter{})
			require.NoError(t, err)
			require.Len(t, stored, 1)

			n := stored[0]
			assert.Regexp(t, `^notif_[0-9a-f-]{36}$`, n.ID)
			assert.Equal(t, string(tt.kind), n.Type)
			assert.Equal(t, int64(7), n.UserID)
			assert.Equal(t, int64(42), n.TransactionID)
			assert.Equal(t, tt.title, n.Title)
			assert.Equal(t, tt.message, n.Message)
			assert.Equal(t, tt.priority, n.Priority)
			assert.Equal(t, tt.channels, n.Channels)
			assert.Equal(t, models.NotificationSent, n.Status)
			require.NotNil(t, n.Details)
			assert.Equal(t, "Credit Card", n.Details.PaymentMethod)
			assert.Equal(t, "order #1", n.Details.Description)
		})
	}
}

func TestTerminalEventsCarryTheirTimestamp(t *testing.T) {
	notifier, _, _ := newNotifier()

	confirmed, err := notifier.HandleEvent(context.Background(), lifecycleEvent(models.EventConfirmed))
	require.NoError(t, err)
	require.NotNil(t, confirmed.Details.ConfirmedAt)
	assert.Nil(t, confirmed.Details.FailedAt)
	assert.Equal(t, time.Date(2026, 4, 10, 9, 30, 0, 0, time.UTC), *confirmed.Details.ConfirmedAt)

	failed, err := notifier.HandleEvent(context.Background(), lifecycleEvent(models.EventFailed))
	require.NoError(t, err)
	require.NotNil(t, failed.Details.FailedAt)
	assert.Nil(t, failed.Details.ConfirmedAt)
}

func TestSameEventTwiceIsRecordedTwice(t *testing.T) {
	notifier, repo, _ := newNotifier()
	record := encode(t, lifecycleEvent(models.EventConfirmed))

	require.NoError(t, notifier.ProcessRecord(context.Background(), record))
	require.NoError(t, notifier.ProcessRecord(context.Background(), record))

	stored, err := repo.List(context.Background(), models.NotificationFilter{TransactionID: 42})
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.NotEqual(t, stored[0].ID, stored[1].ID)
}

func TestProcessRecordRejectsPoison(t *testing.T) {
	notifier, repo, deliverer := newNotifier()

	for _, value := range []string{`{"event":`, `{"event":"transaction_refunded","data":{}}`} {
		err := notifier.ProcessRecord(context.Background(), models.Record{Topic: "payment.transaction.failed", Value: []byte(value)})
		assert.True(t, errors.Is(errors.Decode, err), value)
	}

	assert.Empty(t, deliverer.delivered)
	all, _ := repo.List(context.Background(), models.NotificationFilter{})
	assert.Empty(t, all)
}

func TestDeliveryFailureIsNotRecorded(t *testing.T) {
	notifier, repo, deliverer := newNotifier()
	deliverer.err = goerrors.New("smtp down")

	err := notifier.ProcessRecord(context.Background(), encode(t, lifecycleEvent(models.EventReceived)))
	assert.True(t, errors.Is(errors.Internal, err))

	all, _ := repo.List(context.Background(), models.NotificationFilter{})
	assert.Empty(t, all)
}

func TestSendAppliesDefaults(t *testing.T) {
	notifier, _, _ := newNotifier()

	n, err := notifier.Send(context.Background(), models.DirectNotification{
		Type: "email", Recipient: "user@example.com", Message: "hello",
	})
	require.NoError(t, err)
	assert.Equal(t, DefaultSubject, n.Subject)
	assert.Equal(t, models.PriorityNormal, n.Priority)
	assert.Equal(t, []string{"email"}, n.Channels)
	assert.Equal(t, models.NotificationSent, n.Status)

	n, err = notifier.Send(context.Background(), models.DirectNotification{
		Type: "promo", Recipient: "device-1", Message: "sale", Subject: "Sale!", Priority: models.PriorityHigh,
	})
	require.NoError(t, err)
	assert.Equal(t, "Sale!", n.Subject)
	assert.Equal(t, models.PriorityHigh, n.Priority)
	assert.Equal(t, []string{"push"}, n.Channels)
}

func TestSendRequiresTypeRecipientAndMessage(t *testing.T) {
	notifier, repo, _ := newNotifier()

	_, err := notifier.Send(context.Background(), models.DirectNotification{})
	ve, ok := errors.Validation(err)
	require.True(t, ok)
	assert.Equal(t, []string{
		"type is required",
		"recipient is required",
		"message is required",
	}, ve.Messages())

	all, _ := repo.List(context.Background(), models.NotificationFilter{})
	assert.Empty(t, all)
}

func TestAccessorsAndStats(t *testing.T) {
	notifier, _, _ := newNotifier()
	ctx := context.Background()

	first := lifecycleEvent(models.EventReceived)
	second := lifecycleEvent(models.EventReceived)
	second.Data.ID = 43
	second.Data.UserID = 8
	third := lifecycleEvent(models.EventFailed)

	for _, e := range []models.LifecycleEvent{first, second, third} {
		_, err := notifier.HandleEvent(ctx, e)
		require.NoError(t, err)
	}

	all, err := notifier.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, string(models.EventFailed), all[0].Type)

	byUser, err := notifier.ByUser(ctx, 8)
	require.NoError(t, err)
	require.Len(t, byUser, 1)
	assert.Equal(t, int64(43), byUser[0].TransactionID)

	byTx, err := notifier.ByTransaction(ctx, 42)
	require.NoError(t, err)
	assert.Len(t, byTx, 2)

	recent, err := notifier.Recent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, recent, 2)

	_, err = notifier.Recent(ctx, 0)
	assert.True(t, errors.Is(errors.Invalid, err))

	stats, err := notifier.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, map[string]int64{"transaction_received": 2, "transaction_failed": 1}, stats.ByType)
	assert.Equal(t, int64(3), stats.Last24h)
}

func TestSimulatedDelivererHonoursContext(t *testing.T) {
	d := NewSimulatedDeliverer(zap.NewNop(), time.Hour, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := d.Deliver(ctx, models.Notification{Channels: []string{"email"}})
	assert.ErrorIs(t, err, context.Canceled)

	fast := NewSimulatedDeliverer(zap.NewNop(), 0, 0)
	assert.NoError(t, fast.Deliver(context.Background(), models.Notification{Channels: []string{"email"}}))
}

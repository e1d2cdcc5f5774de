package models

import (
	// Go Internal Packages
	"encoding/json"
	"testing"
	"time"

	// External Packages
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.True(t, StatusSettled.Terminal())
	assert.True(t, StatusFailed.Terminal())
	assert.False(t, TransactionStatus("SUCESSO").Valid())
}

func TestEventForStatus(t *testing.T) {
	assert.Equal(t, EventConfirmed, EventForStatus(StatusSettled))
	assert.Equal(t, EventFailed, EventForStatus(StatusFailed))
	assert.Equal(t, "confirmed", EventConfirmed.Short())
}

func TestLifecycleEventWireFormat(t *testing.T) {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	event := LifecycleEvent{
		Event: EventReceived,
		Data: Transaction{
			ID:            9,
			UserID:        7,
			Amount:        decimal.RequireFromString("150.00"),
			PaymentMethod: MethodPix,
			Description:   "order #1",
			Status:        StatusPending,
			CreatedAt:     ts,
			UpdatedAt:     ts,
		},
		Timestamp: ts,
		Service:   "payment-service",
	}

	raw, err := json.Marshal(event)
	require.NoError(t, err)

	var generic map[string]any
	require.NoError(t, json.Unmarshal(raw, &generic))
	assert.Equal(t, "transaction_received", generic["event"])
	assert.Equal(t, "payment-service", generic["service"])

	data := generic["data"].(map[string]any)
	assert.Equal(t, float64(150), data["amount"])
	assert.Equal(t, "pix", data["payment_method"])
	assert.Equal(t, "PENDING", data["status"])

	var decoded LifecycleEvent
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.True(t, decoded.Data.Amount.Equal(event.Data.Amount))
}

func TestParseRejectPolicy(t *testing.T) {
	p, err := ParseRejectPolicy("dead_letter")
	require.NoError(t, err)
	assert.Equal(t, RejectDeadLetter, p)

	_, err = ParseRejectPolicy("requeue")
	assert.Error(t, err)
}

func TestPaymentMethodDisplayName(t *testing.T) {
	assert.Equal(t, "PIX", MethodPix.DisplayName())
	assert.Equal(t, "Bank Slip", MethodBankSlip.DisplayName())
	assert.Equal(t, "cash", PaymentMethod("cash").DisplayName())
	assert.Equal(t, "credit_card, debit_card, pix, bank_slip", JoinPaymentMethods())
}

func TestPaymentRequestRecordsMistypedFields(t *testing.T) {
	var req PaymentRequest
	require.NoError(t, json.Unmarshal([]byte(`{"user_id":"7","amount":0,"payment_method":"invalid"}`), &req))
	assert.Equal(t, []string{"user_id"}, req.Mistyped)
	assert.True(t, req.IsMistyped("user_id"))
	assert.Zero(t, req.UserID)
	assert.Equal(t, PaymentMethod("invalid"), req.PaymentMethod)

	req = PaymentRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"user_id":7,"amount":"150.00","payment_method":5,"description":null}`), &req))
	assert.Equal(t, []string{"amount", "payment_method"}, req.Mistyped)
	assert.Equal(t, int64(7), req.UserID)
	assert.True(t, req.Amount.IsZero())

	req = PaymentRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"user_id":7,"amount":150.50,"payment_method":"pix","description":"x"}`), &req))
	assert.Empty(t, req.Mistyped)
	assert.True(t, decimal.RequireFromString("150.50").Equal(req.Amount))

	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &req))
}

package models

import (
	// Go Internal Packages
	"time"

	// External Packages
	"github.com/shopspring/decimal"
)

const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
	ChannelPush  = "push"
	ChannelInApp = "in-app"

	NotificationSent = "sent"

	PriorityNormal = "normal"
	PriorityHigh   = "high"
)

type NotificationDetails struct {
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	Description   string          `json:"description"`
	ConfirmedAt   *time.Time      `json:"confirmed_at,omitempty"`
	FailedAt      *time.Time      `json:"failed_at,omitempty"`
}

type Notification struct {
	ID            string               `json:"id"`
	Type          string               `json:"type"`
	UserID        int64                `json:"user_id,omitempty"`
	TransactionID int64                `json:"transaction_id,omitempty"`
	Recipient     string               `json:"recipient,omitempty"`
	Subject       string               `json:"subject,omitempty"`
	Title         string               `json:"title,omitempty"`
	Message       string               `json:"message"`
	Priority      string               `json:"priority"`
	Channels      []string             `json:"channels"`
	Details       *NotificationDetails `json:"details,omitempty"`
	Status        string               `json:"status"`
	Timestamp     time.Time            `json:"timestamp"`
}

// DirectNotification is the body of a direct send.
type DirectNotification struct {
	Type      string `json:"type"`
	Recipient string `json:"recipient"`
	Message   string `json:"message"`
	Subject   string `json:"subject,omitempty"`
	Priority  string `json:"priority,omitempty"`
}

type NotificationFilter struct {
	UserID        int64
	TransactionID int64
	Limit         int
}

type NotificationStats struct {
	Total   int64            `json:"total"`
	ByType  map[string]int64 `json:"by_type"`
	Last24h int64            `json:"last_24h"`
}

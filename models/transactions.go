package models

import (
	// Go Internal Packages
	"bytes"
	"encoding/json"
	"slices"
	"strings"
	"time"

	// External Packages
	"github.com/shopspring/decimal"
)

func init() {
	// Amounts travel as JSON numbers on the wire and over HTTP.
	decimal.MarshalJSONWithoutQuotes = true
}

type TransactionStatus string

const (
	StatusPending TransactionStatus = "PENDING"
	StatusSettled TransactionStatus = "SETTLED"
	StatusFailed  TransactionStatus = "FAILED"
)

func (s TransactionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusSettled, StatusFailed:
		return true
	}
	return false
}

// Terminal reports whether no transition may leave s.
func (s TransactionStatus) Terminal() bool {
	return s == StatusSettled || s == StatusFailed
}

type PaymentMethod string

const (
	MethodCreditCard PaymentMethod = "credit_card"
	MethodDebitCard  PaymentMethod = "debit_card"
	MethodPix        PaymentMethod = "pix"
	MethodBankSlip   PaymentMethod = "bank_slip"
)

var PaymentMethods = []PaymentMethod{MethodCreditCard, MethodDebitCard, MethodPix, MethodBankSlip}

func (m PaymentMethod) Valid() bool {
	for _, known := range PaymentMethods {
		if m == known {
			return true
		}
	}
	return false
}

// DisplayName is the label shown to users in notifications.
func (m PaymentMethod) DisplayName() string {
	switch m {
	case MethodCreditCard:
		return "Credit Card"
	case MethodDebitCard:
		return "Debit Card"
	case MethodPix:
		return "PIX"
	case MethodBankSlip:
		return "Bank Slip"
	}
	return string(m)
}

// JoinPaymentMethods lists the accepted methods, comma separated.
func JoinPaymentMethods() string {
	names := make([]string, len(PaymentMethods))
	for i, m := range PaymentMethods {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

type Transaction struct {
	ID            int64             `json:"id"`
	UserID        int64             `json:"user_id"`
	Amount        decimal.Decimal   `json:"amount"`
	PaymentMethod PaymentMethod     `json:"payment_method"`
	Description   string            `json:"description"`
	Status        TransactionStatus `json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// PaymentRequest is the body accepted by the payment endpoints.
type PaymentRequest struct {
	UserID        int64           `json:"user_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	Description   string          `json:"description"`

	// Mistyped lists the fields whose JSON type did not match, in field
	// order. Their typed values are left zero.
	Mistyped []string `json:"-"`
}

// UnmarshalJSON decodes field by field so a value of the wrong JSON type is
// recorded in Mistyped instead of failing the whole body. Amounts must be
// JSON numbers.
func (r *PaymentRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		UserID        json.RawMessage `json:"user_id"`
		Amount        json.RawMessage `json:"amount"`
		PaymentMethod json.RawMessage `json:"payment_method"`
		Description   json.RawMessage `json:"description"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = PaymentRequest{}
	r.decodeField("user_id", raw.UserID, &r.UserID)
	if len(raw.Amount) > 0 && raw.Amount[0] == '"' {
		r.Mistyped = append(r.Mistyped, "amount")
	} else {
		r.decodeField("amount", raw.Amount, &r.Amount)
	}
	r.decodeField("payment_method", raw.PaymentMethod, &r.PaymentMethod)
	r.decodeField("description", raw.Description, &r.Description)
	return nil
}

func (r *PaymentRequest) decodeField(name string, value json.RawMessage, dst any) {
	if len(value) == 0 || bytes.Equal(value, []byte("null")) {
		return
	}
	if err := json.Unmarshal(value, dst); err != nil {
		r.Mistyped = append(r.Mistyped, name)
	}
}

// IsMistyped reports whether field carried a value of the wrong JSON type.
func (r PaymentRequest) IsMistyped(field string) bool {
	return slices.Contains(r.Mistyped, field)
}

// TransactionSummary is the condensed view served by the history endpoint.
type TransactionSummary struct {
	ID            int64             `json:"id"`
	Amount        decimal.Decimal   `json:"amount"`
	PaymentMethod PaymentMethod     `json:"payment_method"`
	Status        TransactionStatus `json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

func (t Transaction) Summary() TransactionSummary {
	return TransactionSummary{
		ID:            t.ID,
		Amount:        t.Amount,
		PaymentMethod: t.PaymentMethod,
		Status:        t.Status,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

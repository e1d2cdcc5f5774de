package models

import (
	// Go Internal Packages
	"strings"
	"time"
)

type EventKind string

const (
	EventReceived  EventKind = "transaction_received"
	EventConfirmed EventKind = "transaction_confirmed"
	EventFailed    EventKind = "transaction_failed"
)

var EventKinds = []EventKind{EventReceived, EventConfirmed, EventFailed}

func (k EventKind) Valid() bool {
	switch k {
	case EventReceived, EventConfirmed, EventFailed:
		return true
	}
	return false
}

// Short drops the "transaction_" prefix: received, confirmed or failed.
func (k EventKind) Short() string {
	return strings.TrimPrefix(string(k), "transaction_")
}

// EventForStatus maps a terminal status to the event announcing it.
func EventForStatus(s TransactionStatus) EventKind {
	if s == StatusSettled {
		return EventConfirmed
	}
	return EventFailed
}

// LifecycleEvent is the message published for every status transition.
type LifecycleEvent struct {
	Event     EventKind   `json:"event"`
	Data      Transaction `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
	Service   string      `json:"service"`
}

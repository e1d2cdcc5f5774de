package models

import (
	// Go Internal Packages
	"fmt"
	"time"
)

type Record struct {
	Key       []byte
	Value     []byte
	Topic     string
	Partition int32
	Offset    int64
	Headers   map[string]string
}

type ConsumerConfig struct {
	Brokers      []string
	Name         string
	Topic        string
	RejectPolicy RejectPolicy
	MaxRetries   int
	RetryBackoff time.Duration
}

// RejectPolicy decides what happens to a record whose processing failed.
// The record is never put back on its own topic.
type RejectPolicy string

const (
	RejectDiscard    RejectPolicy = "discard"
	RejectDeadLetter RejectPolicy = "dead_letter"
	RejectRetry      RejectPolicy = "retry"
)

func ParseRejectPolicy(s string) (RejectPolicy, error) {
	switch p := RejectPolicy(s); p {
	case RejectDiscard, RejectDeadLetter, RejectRetry:
		return p, nil
	}
	return "", fmt.Errorf("unknown reject policy %q", s)
}

// DeadLetter is a rejected record parked for inspection.
type DeadLetter struct {
	Topic     string    `json:"topic"`
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	Partition int32     `json:"partition"`
	Offset    int64     `json:"offset"`
	Reason    string    `json:"reason"`
	Attempts  int       `json:"attempts"`
	FailedAt  time.Time `json:"failed_at"`
}

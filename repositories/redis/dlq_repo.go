package redis

import (
	// Go Internal Packages
	"context"
	"encoding/json"
	"fmt"

	// Local Packages
	models "pay-stream/models"

	// External Packages
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type DeadLetterQueue struct {
	client   *redis.Client
	logger   *zap.Logger
	listName string
}

func NewDeadLetterQueue(client *redis.Client, logger *zap.Logger, listName string) *DeadLetterQueue {
	return &DeadLetterQueue{client: client, logger: logger, listName: listName}
}

// Send pushes a rejected record onto the head of the dead-letter list.
func (r *DeadLetterQueue) Send(ctx context.Context, letter models.DeadLetter) error {
	jsonData, err := json.Marshal(letter)
	if err != nil {
		return fmt.Errorf("failed to marshal dead letter: %w", err)
	}

	if err := r.client.LPush(ctx, r.listName, jsonData).Err(); err != nil {
		return fmt.Errorf("failed to store dead letter: %w", err)
	}

	r.logger.Info("dead letter stored",
		zap.String("list", r.listName),
		zap.String("topic", letter.Topic),
		zap.Int64("offset", letter.Offset))
	return nil
}

// Len returns how many letters are parked.
func (r *DeadLetterQueue) Len(ctx context.Context) (int64, error) {
	return r.client.LLen(ctx, r.listName).Result()
}

// List returns up to limit letters, newest first. Entries that no longer
// decode are skipped.
func (r *DeadLetterQueue) List(ctx context.Context, limit int64) ([]models.DeadLetter, error) {
	if limit <= 0 {
		return []models.DeadLetter{}, nil
	}
	raw, err := r.client.LRange(ctx, r.listName, 0, limit-1).Result()
	if err != nil {
		return nil, err
	}

	letters := make([]models.DeadLetter, 0, len(raw))
	for _, item := range raw {
		var letter models.DeadLetter
		if err := json.Unmarshal([]byte(item), &letter); err != nil {
			r.logger.Warn("skipping undecodable dead letter", zap.Error(err))
			continue
		}
		letters = append(letters, letter)
	}
	return letters, nil
}

package memory

import (
	// Go Internal Packages
	"context"
	"sync"
	"time"

	// Local Packages
	models "pay-stream/models"
)

// NotificationRepository keeps the notification history in process memory.
// It is lost on restart.
type NotificationRepository struct {
	mu      sync.RWMutex
	entries []models.Notification
}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

func (r *NotificationRepository) Append(_ context.Context, n models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, n)
	return nil
}

// List walks the history backwards so the newest entry comes first.
func (r *NotificationRepository) List(_ context.Context, filter models.NotificationFilter) ([]models.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Notification{}
	for i := len(r.entries) - 1; i >= 0; i-- {
		n := r.entries[i]
		if filter.UserID > 0 && n.UserID != filter.UserID {
			continue
		}
		if filter.TransactionID > 0 && n.TransactionID != filter.TransactionID {
			continue
		}
		out = append(out, n)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (r *NotificationRepository) Stats(_ context.Context, since time.Time) (models.NotificationStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := models.NotificationStats{ByType: map[string]int64{}}
	for _, n := range r.entries {
		stats.Total++
		stats.ByType[n.Type]++
		if !n.Timestamp.Before(since) {
			stats.Last24h++
		}
	}
	return stats, nil
}

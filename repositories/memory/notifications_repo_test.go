package memory

import (
	// Go Internal Packages
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	// Local Packages
	models "pay-stream/models"

	// External Packages
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func note(id, kind string, user, tx int64, at time.Time) models.Notification {
	return models.Notification{ID: id, Type: kind, UserID: user, TransactionID: tx, Timestamp: at}
}

func TestListNewestFirstWithFilters(t *testing.T) {
	repo := NewNotificationRepository()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.Append(ctx, note("1", "transaction_received", 7, 42, now)))
	require.NoError(t, repo.Append(ctx, note("2", "transaction_confirmed", 7, 42, now)))
	require.NoError(t, repo.Append(ctx, note("3", "transaction_received", 8, 43, now)))

	all, err := repo.List(ctx, models.NotificationFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "2", "1"}, ids(all))

	byTx, err := repo.List(ctx, models.NotificationFilter{TransactionID: 42})
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "1"}, ids(byTx))

	limited, err := repo.List(ctx, models.NotificationFilter{UserID: 7, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, ids(limited))

	none, err := repo.List(ctx, models.NotificationFilter{UserID: 99})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestStatsCountsByTypeAndWindow(t *testing.T) {
	repo := NewNotificationRepository()
	ctx := context.Background()
	now := time.Now()

	_ = repo.Append(ctx, note("1", "A", 1, 1, now.Add(-25*time.Hour)))
	_ = repo.Append(ctx, note("2", "A", 1, 1, now))
	_ = repo.Append(ctx, note("3", "B", 1, 1, now))

	stats, err := repo.Stats(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, map[string]int64{"A": 2, "B": 1}, stats.ByType)
	assert.Equal(t, int64(2), stats.Last24h)
}

func TestAppendIsSafeForConcurrentUse(t *testing.T) {
	repo := NewNotificationRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = repo.Append(ctx, note(fmt.Sprint(i), "A", 1, 1, time.Now()))
			_, _ = repo.List(ctx, models.NotificationFilter{})
		}(i)
	}
	wg.Wait()

	stats, _ := repo.Stats(ctx, time.Time{})
	assert.Equal(t, int64(50), stats.Total)
}

func ids(ns []models.Notification) []string {
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = n.ID
	}
	return out
}

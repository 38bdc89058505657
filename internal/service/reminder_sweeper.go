package service

import (
	"context"
	"time"

	"github.com/OptimisticTrousers/word-reminder-sub001/internal/store"

	"go.uber.org/zap"
)

// ReminderSweeper periodically deactivates word reminders whose finish date
// has passed. It stops when ctx is cancelled.
func ReminderSweeper(ctx context.Context, t time.Duration, s *store.Store) {
	if t <= 0 {
		zap.L().Debug("Reminder sweeper disabled")
		return
	}

	ticker := time.NewTicker(t)
	defer ticker.Stop()

	zap.L().Debug("Reminder sweeper attached", zap.Duration("tick_every", t))

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := s.DeactivateExpired(ctx, now)
			if err != nil {
				zap.L().Error("Failed to deactivate expired word reminders", zap.Error(err))
				continue
			}

			if n > 0 {
				zap.L().Debug("Deactivated expired word reminders", zap.Int64("count", n))
			}
		}
	}
}

package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// reminderTTL keeps sent-markers for long enough to cover the gap between
// a subscription entering the warning window and its renewal being recorded.
const reminderTTL = 45 * 24 * time.Hour

// ReminderStore tracks which renewal reminders have already been sent.
// Key format: reminder:<hosting_id>:<end_date_unix>, so a renewed
// subscription (new end date) is eligible again.
type ReminderStore struct {
	client *redis.Client
}

// NewReminderStore creates a ReminderStore wrapping the given Redis client.
func NewReminderStore(client *redis.Client) *ReminderStore {
	return &ReminderStore{client: client}
}

// AlreadySent reports whether a reminder for this expiry was sent before.
func (s *ReminderStore) AlreadySent(ctx context.Context, hostingID string, endDate time.Time) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(hostingID, endDate)).Result()
	if err != nil {
		return false, fmt.Errorf("reminder check: %w", err)
	}
	return n > 0, nil
}

// MarkSent records that a reminder for this expiry went out.
func (s *ReminderStore) MarkSent(ctx context.Context, hostingID string, endDate time.Time) error {
	return s.client.Set(ctx, s.key(hostingID, endDate), "1", reminderTTL).Err()
}

func (s *ReminderStore) key(hostingID string, endDate time.Time) string {
	return fmt.Sprintf("reminder:%s:%d", hostingID, endDate.Unix())
}

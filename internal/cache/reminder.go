package cache

import (
	"context"
	"fmt"
	"time"

	"kaamtrack/storage/redis"
)

// 提醒投放与消费的幂等标记
const (
	reminderScheduledPrefix = "reminder:scheduled"
	messageProcessedPrefix  = "message:processed"

	scheduledTTL = 24 * time.Hour
	processedTTL = 48 * time.Hour
)

// IsReminderScheduled 检查某天的提醒是否已投放
func IsReminderScheduled(ctx context.Context, date string) (bool, error) {
	key := redis.Key(reminderScheduledPrefix, date)
	result, err := redis.Client().Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check reminder scheduled status: %w", err)
	}
	return result > 0, nil
}

// MarkReminderScheduled 标记某天的提醒已投放
func MarkReminderScheduled(ctx context.Context, date string) error {
	key := redis.Key(reminderScheduledPrefix, date)
	return redis.Client().Set(ctx, key, "1", scheduledTTL).Err()
}

// TryMarkMessageProcessing 消费侧幂等：第一次处理返回 true，重复消息返回 false
func TryMarkMessageProcessing(ctx context.Context, messageID string) (bool, error) {
	key := redis.Key(messageProcessedPrefix, messageID)
	return redis.Client().SetNX(ctx, key, "processing", processedTTL).Result()
}

// MarkMessageProcessed 处理完成后落终态标记
func MarkMessageProcessed(ctx context.Context, messageID string) error {
	key := redis.Key(messageProcessedPrefix, messageID)
	return redis.Client().Set(ctx, key, "done", processedTTL).Err()
}

// UnmarkMessageProcessing 处理失败时清掉标记让消息可重试
func UnmarkMessageProcessing(ctx context.Context, messageID string) error {
	key := redis.Key(messageProcessedPrefix, messageID)
	return redis.Client().Del(ctx, key).Err()
}

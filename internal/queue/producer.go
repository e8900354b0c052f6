package queue

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"kaamtrack/internal/model"
	"kaamtrack/pkg/logger"
	"kaamtrack/pkg/snowflake"
	"kaamtrack/storage/mq"
)

// PublishAttendanceReminder 发布考勤提醒消息（延迟消息）。
// 到点后由 worker 消费，给还没点名的老板发短信
func PublishAttendanceReminder(msg model.AttendanceReminderMessage) error {
	if msg.MessageID == "" {
		id, err := snowflake.NextID()
		if err != nil {
			logger.Logger.Error("Failed to generate message ID",
				zap.String("date", msg.Date),
				zap.Error(err),
			)
			return fmt.Errorf("failed to generate message ID: %w", err)
		}
		msg.MessageID = fmt.Sprintf("att_reminder_%d", id)
	}

	delay := time.Duration(msg.DelaySeconds) * time.Second

	// RabbitMQ 延迟插件对超长延迟不可靠，提醒最多隔天
	if delay > 24*time.Hour {
		return fmt.Errorf("delay %v exceeds 24 hours limit", delay)
	}

	err := mq.PublishDelayedMessage(
		mq.ReminderExchange,
		mq.ReminderRoutingKey,
		delay,
		msg,
	)

	if err != nil {
		logger.Logger.Error("Failed to publish attendance reminder message",
			zap.String("message_id", msg.MessageID),
			zap.String("date", msg.Date),
			zap.Int("owner_count", len(msg.OwnerIDs)),
			zap.Error(err),
		)
		return err
	}

	logger.Logger.Info("Published attendance reminder message",
		zap.String("message_id", msg.MessageID),
		zap.String("date", msg.Date),
		zap.Int("owner_count", len(msg.OwnerIDs)),
		zap.Duration("delay", delay),
	)

	return nil
}

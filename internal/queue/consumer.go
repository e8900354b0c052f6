package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"kaamtrack/internal/cache"
	"kaamtrack/internal/model"
	"kaamtrack/internal/repository"
	"kaamtrack/pkg/errors"
	"kaamtrack/pkg/logger"
	"kaamtrack/pkg/sms"
	"kaamtrack/storage/database"
	"kaamtrack/storage/mq"
	"kaamtrack/utils"
)

// StartAttendanceReminderConsumer 启动考勤提醒消费者。
// 只提醒当天还一条考勤都没记的老板，点过名的直接跳过
func StartAttendanceReminderConsumer(ctx context.Context) error {
	handler := func(body []byte) error {
		var msg model.AttendanceReminderMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			return fmt.Errorf("failed to unmarshal attendance reminder message: %w", err)
		}

		// 幂等性检查：SETNX 原子性地检查并标记消息正在处理
		processed, err := cache.TryMarkMessageProcessing(ctx, msg.MessageID)
		if err != nil {
			logger.Logger.Warn("Failed to check message processed status",
				zap.String("message_id", msg.MessageID),
				zap.Error(err),
			)
			// 检查失败时继续处理，不阻塞业务，代价是可能重复提醒
		} else if !processed {
			logger.Logger.Info("Message already processed or being processed, skipping",
				zap.String("message_id", msg.MessageID),
				zap.String("date", msg.Date),
			)
			return &errors.SkipMessageError{Reason: fmt.Sprintf("Message %s already processed", msg.MessageID)}
		}

		logger.Logger.Info("Processing attendance reminder batch",
			zap.String("message_id", msg.MessageID),
			zap.String("date", msg.Date),
			zap.Int("owner_count", len(msg.OwnerIDs)),
		)

		if err := processReminderBatch(ctx, &msg); err != nil {
			// 处理失败，取消标记，允许重试
			cache.UnmarkMessageProcessing(ctx, msg.MessageID)
			return fmt.Errorf("failed to process reminder batch: %w", err)
		}

		if err := cache.MarkMessageProcessed(ctx, msg.MessageID); err != nil {
			logger.Logger.Warn("Failed to mark message as processed",
				zap.String("message_id", msg.MessageID),
				zap.Error(err),
			)
		}

		return nil
	}

	return mq.Consume(mq.ConsumeOptions{
		Queue:         mq.ReminderQueue,
		ConsumerTag:   "attendance_reminder_consumer",
		PrefetchCount: 10,
		Handler:       handler,
	})
}

// processReminderBatch 逐个检查老板当天的点名情况并发送提醒短信
func processReminderBatch(ctx context.Context, msg *model.AttendanceReminderMessage) error {
	date, err := utils.ParseDate(msg.Date)
	if err != nil {
		// 日期损坏的消息重试也没用，直接丢弃
		return &errors.SkipMessageError{Reason: fmt.Sprintf("invalid date %q in message %s", msg.Date, msg.MessageID)}
	}

	db := database.DB().WithContext(ctx)
	users := repository.NewUserStore(db)
	attendance := repository.NewAttendanceStore(db)

	markedCounts, err := attendance.CountOwnersMarkedOn(ctx, msg.OwnerIDs, date)
	if err != nil {
		return fmt.Errorf("failed to count marked owners: %w", err)
	}

	var sent, skipped, failed int
	for _, ownerID := range msg.OwnerIDs {
		if markedCounts[ownerID] > 0 {
			skipped++
			continue
		}

		owner, err := users.GetByPublicID(ctx, ownerID)
		if err != nil || owner == nil {
			logger.Logger.Warn("Owner not found for reminder",
				zap.Int64("owner_id", ownerID),
				zap.Error(err),
			)
			failed++
			continue
		}

		if _, err := sms.SendAttendanceReminder(ctx, owner.Phone, msg.Date); err != nil {
			logger.Logger.Warn("Failed to send attendance reminder SMS",
				zap.Int64("owner_id", ownerID),
				zap.Error(err),
			)
			failed++
			continue
		}
		sent++
	}

	logger.Logger.Info("Attendance reminder batch done",
		zap.String("message_id", msg.MessageID),
		zap.String("date", msg.Date),
		zap.Int("sent", sent),
		zap.Int("skipped", skipped),
		zap.Int("failed", failed),
	)

	// 个别老板发送失败不整批重试，避免重复骚扰已经收到短信的人
	return nil
}

package schedule

// 考勤提醒调度器：每天凌晨扫描有在职工人的老板，
// 发一条延迟到提醒时刻的消息，由 worker 消费后检查点名情况再发短信

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"kaamtrack/config"
	"kaamtrack/internal/cache"
	"kaamtrack/internal/model"
	"kaamtrack/internal/queue"
	"kaamtrack/internal/repository"
	"kaamtrack/pkg/logger"
	"kaamtrack/pkg/snowflake"
	"kaamtrack/storage/database"
	"kaamtrack/utils"
)

var (
	schedulerOnce sync.Once
	schedulerInst *ReminderScheduler
)

type ReminderScheduler struct {
	logger          *zap.Logger
	jobRunning      bool
	jobMu           sync.Mutex
	lastJobTime     time.Time
	now             func() time.Time
	listOwners      func(ctx context.Context) ([]model.User, error)
	publishReminder func(msg model.AttendanceReminderMessage) error
	isScheduled     func(ctx context.Context, date string) (bool, error)
	markScheduled   func(ctx context.Context, date string) error
}

func GetScheduler() *ReminderScheduler {
	schedulerOnce.Do(func() {
		schedulerInst = &ReminderScheduler{
			logger: logger.Logger,
			now:    time.Now,
			listOwners: func(ctx context.Context) ([]model.User, error) {
				users := repository.NewUserStore(database.DB().WithContext(ctx))
				return users.ListOwnersWithActiveWorkers(ctx)
			},
			publishReminder: queue.PublishAttendanceReminder,
			isScheduled:     cache.IsReminderScheduled,
			markScheduled:   cache.MarkReminderScheduled,
		}
	})
	return schedulerInst
}

// ScheduleDailyReminder 调度当天的考勤提醒。
// 可以安全地重复调用，同一天只会发布一次
func (s *ReminderScheduler) ScheduleDailyReminder(ctx context.Context) error {
	s.jobMu.Lock()
	if s.jobRunning {
		s.jobMu.Unlock()
		s.logger.Info("Reminder job already running, skipping")
		return nil
	}
	s.jobRunning = true
	s.jobMu.Unlock()

	defer func() {
		s.jobMu.Lock()
		s.jobRunning = false
		s.jobMu.Unlock()
	}()

	startTime := s.now()
	s.lastJobTime = startTime
	today := utils.DateString(startTime)

	scheduled, err := s.isScheduled(ctx, today)
	if err != nil {
		s.logger.Warn("Failed to check reminder scheduled status",
			zap.String("date", today),
			zap.Error(err),
		)
		// 检查失败仍然继续，消费端有消息级幂等兜底
	} else if scheduled {
		s.logger.Info("Reminder already scheduled for today, skipping",
			zap.String("date", today),
		)
		return nil
	}

	owners, err := s.listOwners(ctx)
	if err != nil {
		s.logger.Error("Failed to list owners with active workers", zap.Error(err))
		return fmt.Errorf("failed to list owners: %w", err)
	}

	if len(owners) == 0 {
		s.logger.Info("No owners with active workers, nothing to schedule")
		return nil
	}

	ownerIDs := make([]int64, 0, len(owners))
	for _, owner := range owners {
		ownerIDs = append(ownerIDs, owner.PublicID)
	}

	messageID, err := snowflake.NextID()
	if err != nil {
		return fmt.Errorf("failed to generate message ID: %w", err)
	}

	delay := s.delayUntilReminder(startTime)

	msg := model.AttendanceReminderMessage{
		MessageID:    fmt.Sprintf("att_reminder_%d", messageID),
		OwnerIDs:     ownerIDs,
		Date:         today,
		ScheduledAt:  startTime.Format(time.RFC3339),
		DelaySeconds: int(delay.Seconds()),
	}

	if err := s.publishReminder(msg); err != nil {
		return fmt.Errorf("failed to publish reminder: %w", err)
	}

	if err := s.markScheduled(ctx, today); err != nil {
		s.logger.Warn("Failed to mark reminder as scheduled",
			zap.String("date", today),
			zap.Error(err),
		)
	}

	s.logger.Info("Daily attendance reminder scheduled",
		zap.String("date", today),
		zap.Int("owner_count", len(ownerIDs)),
		zap.Duration("delay", delay),
	)

	return nil
}

// delayUntilReminder 计算距离当天提醒时刻的延迟。
// 调度晚于提醒时刻时立即投递
func (s *ReminderScheduler) delayUntilReminder(now time.Time) time.Duration {
	remindAt := time.Date(now.Year(), now.Month(), now.Day(),
		config.Cfg.ReminderHour, 0, 0, 0, now.Location())

	delay := remindAt.Sub(now)
	if delay < 0 {
		delay = 0
	}
	return delay
}

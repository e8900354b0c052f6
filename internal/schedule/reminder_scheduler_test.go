package schedule

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"kaamtrack/config"
	"kaamtrack/internal/model"
	"kaamtrack/pkg/snowflake"
)

func newTestScheduler(t *testing.T, owners []model.User) (*ReminderScheduler, *[]model.AttendanceReminderMessage, map[string]bool) {
	t.Helper()

	if err := snowflake.Init(1, 1); err != nil {
		t.Fatalf("初始化 snowflake 失败: %v", err)
	}

	published := &[]model.AttendanceReminderMessage{}
	scheduled := map[string]bool{}

	s := &ReminderScheduler{
		logger: zap.NewNop(),
		now: func() time.Time {
			return time.Date(2025, 6, 10, 0, 5, 0, 0, time.Local)
		},
		listOwners: func(ctx context.Context) ([]model.User, error) {
			return owners, nil
		},
		publishReminder: func(msg model.AttendanceReminderMessage) error {
			*published = append(*published, msg)
			return nil
		},
		isScheduled: func(ctx context.Context, date string) (bool, error) {
			return scheduled[date], nil
		},
		markScheduled: func(ctx context.Context, date string) error {
			scheduled[date] = true
			return nil
		},
	}

	return s, published, scheduled
}

func TestScheduleDailyReminder(t *testing.T) {
	owners := []model.User{
		{PublicID: 100, Role: model.RoleOwner},
		{PublicID: 200, Role: model.RoleOwner},
	}
	s, published, scheduled := newTestScheduler(t, owners)

	if err := s.ScheduleDailyReminder(context.Background()); err != nil {
		t.Fatalf("调度失败: %v", err)
	}

	if len(*published) != 1 {
		t.Fatalf("期望发布 1 条消息, 实际 %d", len(*published))
	}

	msg := (*published)[0]
	if msg.Date != "2025-06-10" {
		t.Errorf("消息日期错误: %s", msg.Date)
	}
	if len(msg.OwnerIDs) != 2 || msg.OwnerIDs[0] != 100 || msg.OwnerIDs[1] != 200 {
		t.Errorf("owner 列表错误: %v", msg.OwnerIDs)
	}
	if msg.MessageID == "" {
		t.Error("MessageID 不应为空")
	}
	if msg.ScheduledAt != time.Date(2025, 6, 10, 0, 5, 0, 0, time.Local).Format(time.RFC3339) {
		t.Errorf("调度时间戳错误: %s", msg.ScheduledAt)
	}

	// 00:05 调度，提醒时刻是 ReminderHour 整点
	wantDelay := config.Cfg.ReminderHour*3600 - 5*60
	if msg.DelaySeconds != wantDelay {
		t.Errorf("延迟秒数错误: got %d, want %d", msg.DelaySeconds, wantDelay)
	}

	if !scheduled["2025-06-10"] {
		t.Error("调度后应标记当天已投放")
	}
}

func TestScheduleDailyReminderIdempotent(t *testing.T) {
	owners := []model.User{{PublicID: 100, Role: model.RoleOwner}}
	s, published, _ := newTestScheduler(t, owners)

	if err := s.ScheduleDailyReminder(context.Background()); err != nil {
		t.Fatalf("第一次调度失败: %v", err)
	}
	if err := s.ScheduleDailyReminder(context.Background()); err != nil {
		t.Fatalf("第二次调度失败: %v", err)
	}

	if len(*published) != 1 {
		t.Fatalf("同一天重复调度不应重复发布, 实际 %d 条", len(*published))
	}
}

func TestScheduleDailyReminderNoOwners(t *testing.T) {
	s, published, scheduled := newTestScheduler(t, nil)

	if err := s.ScheduleDailyReminder(context.Background()); err != nil {
		t.Fatalf("调度失败: %v", err)
	}

	if len(*published) != 0 {
		t.Errorf("没有老板时不应发布消息, 实际 %d 条", len(*published))
	}
	if scheduled["2025-06-10"] {
		t.Error("没有发布消息时不应标记已投放")
	}
}

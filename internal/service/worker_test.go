package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"kaamtrack/internal/model"
	"kaamtrack/internal/model/dto"
	"kaamtrack/internal/repository"
	pkgerrors "kaamtrack/pkg/errors"
)

type mockPaymentStore struct {
	records []model.PaymentRecord
}

func (m *mockPaymentStore) Create(ctx context.Context, r *model.PaymentRecord) error {
	m.records = append(m.records, *r)
	return nil
}

func (m *mockPaymentStore) ListByWorker(ctx context.Context, workerID int64, from, to time.Time) ([]model.PaymentRecord, error) {
	var out []model.PaymentRecord
	for _, r := range m.records {
		if r.WorkerID == workerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockPaymentStore) ListByOwner(ctx context.Context, ownerID int64, filter repository.PaymentFilter) ([]model.PaymentRecord, error) {
	return m.records, nil
}

func TestWorkerStats(t *testing.T) {
	attendanceSvc, workers, attendance, _, _ := newTestEnv()
	_ = attendanceSvc

	payments := &mockPaymentStore{}
	svc := NewWorkerService(workers, attendance, payments)

	ctx := context.Background()
	worker := workers.workers[testWorkerPublicID]

	// 两个全勤一个半天，预支 200
	mark := func(date string, status model.AttendanceStatus) {
		d, _ := time.ParseInLocation("2006-01-02", date, time.Local)
		attendance.Upsert(ctx, &model.AttendanceRecord{
			WorkerID: worker.ID,
			Date:     d,
			Status:   status,
		})
	}
	mark("2025-06-09", model.StatusPresent)
	mark("2025-06-10", model.StatusPresent)
	mark("2025-06-11", model.StatusHalfDay)

	payments.records = append(payments.records, model.PaymentRecord{
		WorkerID: worker.ID,
		Type:     model.PaymentAdvance,
		Amount:   decimal.RequireFromString("500"),
	})

	from, _ := time.ParseInLocation("2006-01-02", "2025-06-01", time.Local)
	to, _ := time.ParseInLocation("2006-01-02", "2025-06-30", time.Local)

	stats, err := svc.Stats(ctx, testOwnerID, "5001", from, to)
	if err != nil {
		t.Fatalf("查台账失败：%v", err)
	}
	if stats.PresentDays != 2 || stats.HalfDays != 1 {
		t.Errorf("出勤天数不对：present=%d half=%d", stats.PresentDays, stats.HalfDays)
	}
	if stats.TotalEarnings != "1250.00" {
		t.Errorf("应发期望 1250.00，实际 %s", stats.TotalEarnings)
	}
	if stats.TotalAdvances != "500.00" {
		t.Errorf("预支期望 500.00，实际 %s", stats.TotalAdvances)
	}
	if stats.Balance != "750.00" {
		t.Errorf("待结算期望 750.00，实际 %s", stats.Balance)
	}
}

func TestWorkerStatsUnknownWorker(t *testing.T) {
	_, workers, attendance, _, _ := newTestEnv()
	svc := NewWorkerService(workers, attendance, &mockPaymentStore{})

	_, err := svc.Stats(context.Background(), testOwnerID, "424242", time.Time{}, time.Time{})
	if err != pkgerrors.WorkerNotFound {
		t.Errorf("未知工人应返回 WorkerNotFound，实际 %v", err)
	}
}

func TestCreateWorkerDefaults(t *testing.T) {
	_, workers, attendance, _, _ := newTestEnv()
	svc := NewWorkerService(workers, attendance, &mockPaymentStore{})

	data, err := svc.Create(context.Background(), testOwnerID, &dto.CreateWorkerRequest{
		Name: "苏雷什",
	})
	if err != nil {
		t.Fatalf("建档失败：%v", err)
	}
	if data.DailyRate != "500.00" {
		t.Errorf("缺省日薪期望 500.00，实际 %s", data.DailyRate)
	}
	if data.Category != "other" {
		t.Errorf("缺省工种期望 other，实际 %s", data.Category)
	}
	if data.QrToken == "" {
		t.Error("建档应自动生成工牌令牌")
	}
	if !data.IsActive {
		t.Error("新工人应默认在职")
	}
}

func TestCreateWorkerInvalidRate(t *testing.T) {
	_, workers, attendance, _, _ := newTestEnv()
	svc := NewWorkerService(workers, attendance, &mockPaymentStore{})

	_, err := svc.Create(context.Background(), testOwnerID, &dto.CreateWorkerRequest{
		Name:      "测试",
		DailyRate: "-100",
	})
	if err != pkgerrors.InvalidDailyRate {
		t.Errorf("负日薪应返回 InvalidDailyRate，实际 %v", err)
	}
}

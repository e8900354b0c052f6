package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"kaamtrack/internal/model"
)

func newWorker(id int64, rate string) *model.Worker {
	w := &model.Worker{
		PublicID:  id * 1000,
		Name:      "测试工人",
		DailyRate: decimal.RequireFromString(rate),
		IsActive:  true,
	}
	w.ID = id
	return w
}

func day(offset int) time.Time {
	return time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local).AddDate(0, 0, offset)
}

func attendance(workerID int64, offset int, status model.AttendanceStatus) model.AttendanceRecord {
	return model.AttendanceRecord{
		WorkerID: workerID,
		Date:     day(offset),
		Status:   status,
	}
}

func payment(workerID int64, t model.PaymentType, amount string) model.PaymentRecord {
	return model.PaymentRecord{
		WorkerID: workerID,
		Type:     t,
		Amount:   decimal.RequireFromString(amount),
		Date:     day(0),
	}
}

func wantDecimal(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("%s 期望 %s，实际 %s", name, want, got.String())
	}
}

func TestComputeWorkerStats(t *testing.T) {
	worker := newWorker(1, "500")
	records := []model.AttendanceRecord{
		attendance(1, 0, model.StatusPresent),
		attendance(1, 1, model.StatusPresent),
		attendance(1, 2, model.StatusHalfDay),
	}
	payments := []model.PaymentRecord{
		payment(1, model.PaymentAdvance, "200"),
	}

	stats := ComputeWorkerStats(worker, records, payments)
	if stats == nil {
		t.Fatal("已知工人不应返回 nil")
	}
	if stats.PresentDays != 2 {
		t.Errorf("PresentDays 期望 2，实际 %d", stats.PresentDays)
	}
	if stats.HalfDays != 1 {
		t.Errorf("HalfDays 期望 1，实际 %d", stats.HalfDays)
	}
	wantDecimal(t, "TotalEarnings", stats.TotalEarnings, "1250")
	wantDecimal(t, "TotalAdvances", stats.TotalAdvances, "200")
	wantDecimal(t, "TotalPaid", stats.TotalPaid, "0")
	wantDecimal(t, "Balance", stats.Balance, "1050")
}

func TestComputeWorkerStatsNilWorker(t *testing.T) {
	stats := ComputeWorkerStats(nil, []model.AttendanceRecord{attendance(1, 0, model.StatusPresent)}, nil)
	if stats != nil {
		t.Errorf("未知工人应返回 nil，实际 %+v", stats)
	}
}

func TestComputeWorkerStatsEmptyInputs(t *testing.T) {
	stats := ComputeWorkerStats(newWorker(1, "500"), nil, nil)
	if stats == nil {
		t.Fatal("空记录集不应返回 nil")
	}
	if stats.PresentDays != 0 || stats.HalfDays != 0 || stats.AbsentDays != 0 {
		t.Errorf("空记录集天数应全为 0，实际 %+v", stats)
	}
	wantDecimal(t, "TotalEarnings", stats.TotalEarnings, "0")
	wantDecimal(t, "Balance", stats.Balance, "0")
}

func TestComputeWorkerStatsZeroRate(t *testing.T) {
	stats := ComputeWorkerStats(newWorker(1, "0"), []model.AttendanceRecord{
		attendance(1, 0, model.StatusPresent),
		attendance(1, 1, model.StatusHalfDay),
	}, []model.PaymentRecord{
		payment(1, model.PaymentAdvance, "100"),
	})
	wantDecimal(t, "TotalEarnings", stats.TotalEarnings, "0")
	wantDecimal(t, "Balance", stats.Balance, "-100")
}

func TestComputeWorkerStatsFiltersOtherWorkers(t *testing.T) {
	stats := ComputeWorkerStats(newWorker(1, "400"), []model.AttendanceRecord{
		attendance(1, 0, model.StatusPresent),
		attendance(2, 0, model.StatusPresent),
		attendance(2, 1, model.StatusHalfDay),
	}, []model.PaymentRecord{
		payment(1, model.PaymentPayment, "150"),
		payment(2, model.PaymentAdvance, "999"),
	})
	if stats.PresentDays != 1 {
		t.Errorf("不应统计其他工人的考勤，PresentDays 期望 1，实际 %d", stats.PresentDays)
	}
	wantDecimal(t, "TotalAdvances", stats.TotalAdvances, "0")
	wantDecimal(t, "TotalPaid", stats.TotalPaid, "150")
	wantDecimal(t, "Balance", stats.Balance, "250")
}

func TestComputeWorkerStatsBonusOutsideBalance(t *testing.T) {
	stats := ComputeWorkerStats(newWorker(1, "500"), []model.AttendanceRecord{
		attendance(1, 0, model.StatusPresent),
	}, []model.PaymentRecord{
		payment(1, model.PaymentBonus, "300"),
		payment(1, model.PaymentDeduction, "50"),
	})
	wantDecimal(t, "TotalBonus", stats.TotalBonus, "300")
	wantDecimal(t, "TotalDeducted", stats.TotalDeducted, "50")
	// 奖金扣款单列记账，待结算余额只看工资、预支、发放
	wantDecimal(t, "Balance", stats.Balance, "500")
}

func TestComputeWorkerStatsDecimalRate(t *testing.T) {
	stats := ComputeWorkerStats(newWorker(1, "333.33"), []model.AttendanceRecord{
		attendance(1, 0, model.StatusPresent),
		attendance(1, 1, model.StatusHalfDay),
	}, nil)
	// 333.33 + 166.665，十进制运算不丢精度
	wantDecimal(t, "TotalEarnings", stats.TotalEarnings, "499.995")
}

func TestComputeTodayRollup(t *testing.T) {
	workers := []model.Worker{*newWorker(1, "500"), *newWorker(2, "400"), *newWorker(3, "600"), *newWorker(4, "500")}
	records := []model.AttendanceRecord{
		attendance(1, 0, model.StatusPresent),
		attendance(2, 0, model.StatusHalfDay),
		attendance(3, 0, model.StatusAbsent),
	}

	rollup := ComputeTodayRollup(workers, records)
	if rollup.ActiveTotal != 4 {
		t.Errorf("ActiveTotal 期望 4，实际 %d", rollup.ActiveTotal)
	}
	if rollup.Present != 1 || rollup.HalfDay != 1 {
		t.Errorf("出勤统计不对：present=%d half=%d", rollup.Present, rollup.HalfDay)
	}
	if rollup.Marked != 3 {
		t.Errorf("Marked 期望 3，实际 %d", rollup.Marked)
	}
	// 显式缺勤和没点到都算缺勤：4 - 1 - 1 = 2
	if rollup.Absent != 2 {
		t.Errorf("Absent 期望 2，实际 %d", rollup.Absent)
	}
	wantDecimal(t, "TodayWages", rollup.TodayWages, "700")
}

func TestComputeTodayRollupEmpty(t *testing.T) {
	rollup := ComputeTodayRollup(nil, nil)
	if rollup.ActiveTotal != 0 || rollup.Absent != 0 || rollup.Marked != 0 {
		t.Errorf("空输入应全为 0，实际 %+v", rollup)
	}
	wantDecimal(t, "TodayWages", rollup.TodayWages, "0")
}

func TestComputeTodayRollupIgnoresUnknownWorker(t *testing.T) {
	workers := []model.Worker{*newWorker(1, "500")}
	records := []model.AttendanceRecord{
		attendance(1, 0, model.StatusPresent),
		attendance(99, 0, model.StatusPresent), // 已离职工人的残留记录
	}
	rollup := ComputeTodayRollup(workers, records)
	if rollup.Present != 1 {
		t.Errorf("不在册工人的记录不应计入，Present 期望 1，实际 %d", rollup.Present)
	}
	wantDecimal(t, "TodayWages", rollup.TodayWages, "500")
}

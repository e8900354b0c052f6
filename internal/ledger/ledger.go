// Package ledger 工资台账的纯计算内核。
// 不碰数据库不碰时钟，入参给什么算什么，方便单测和报表复用。
package ledger

import (
	"github.com/shopspring/decimal"

	"kaamtrack/internal/model"
)

// 半天按日薪的一半计
var halfDayFactor = decimal.NewFromFloat(0.5)

// WorkerStats 单个工人在给定记录集上的台账汇总
type WorkerStats struct {
	WorkerID      int64
	PresentDays   int
	HalfDays      int
	AbsentDays    int
	TotalEarnings decimal.Decimal // presentDays*rate + halfDays*rate*0.5
	TotalAdvances decimal.Decimal // type=advance 合计
	TotalPaid     decimal.Decimal // type=payment 合计
	TotalBonus    decimal.Decimal // 奖金单列，不进 Balance
	TotalDeducted decimal.Decimal // 扣款单列，不进 Balance
	Balance       decimal.Decimal // TotalEarnings - TotalAdvances - TotalPaid
}

// ComputeWorkerStats 汇总一个工人的考勤与收支。
// worker 为 nil 时返回 nil，表示查不到这个人。
// records 和 payments 里混入其他工人的行会被跳过，调用方不必预过滤。
func ComputeWorkerStats(worker *model.Worker, records []model.AttendanceRecord, payments []model.PaymentRecord) *WorkerStats {
	if worker == nil {
		return nil
	}

	stats := &WorkerStats{
		WorkerID:      worker.PublicID,
		TotalEarnings: decimal.Zero,
		TotalAdvances: decimal.Zero,
		TotalPaid:     decimal.Zero,
		TotalBonus:    decimal.Zero,
		TotalDeducted: decimal.Zero,
		Balance:       decimal.Zero,
	}

	for _, r := range records {
		if r.WorkerID != worker.ID {
			continue
		}
		switch r.Status {
		case model.StatusPresent:
			stats.PresentDays++
		case model.StatusHalfDay:
			stats.HalfDays++
		case model.StatusAbsent:
			stats.AbsentDays++
		}
	}

	fullDays := decimal.NewFromInt(int64(stats.PresentDays))
	halfDays := decimal.NewFromInt(int64(stats.HalfDays))
	stats.TotalEarnings = worker.DailyRate.Mul(fullDays).
		Add(worker.DailyRate.Mul(halfDays).Mul(halfDayFactor))

	for _, p := range payments {
		if p.WorkerID != worker.ID {
			continue
		}
		switch p.Type {
		case model.PaymentAdvance:
			stats.TotalAdvances = stats.TotalAdvances.Add(p.Amount)
		case model.PaymentPayment:
			stats.TotalPaid = stats.TotalPaid.Add(p.Amount)
		case model.PaymentBonus:
			stats.TotalBonus = stats.TotalBonus.Add(p.Amount)
		case model.PaymentDeduction:
			stats.TotalDeducted = stats.TotalDeducted.Add(p.Amount)
		}
	}

	stats.Balance = stats.TotalEarnings.Sub(stats.TotalAdvances).Sub(stats.TotalPaid)
	return stats
}

// TodayRollup 当日考勤汇总
type TodayRollup struct {
	ActiveTotal int
	Present     int
	HalfDay     int
	Marked      int             // 已点到的在职工人数（present + half-day + 显式 absent）
	Absent      int             // ActiveTotal - Present - HalfDay，未点到视同缺勤
	TodayWages  decimal.Decimal // 当日应发工资
}

// ComputeTodayRollup 汇总当日出勤。
// workers 应为在职工人集合，records 为当日记录；显式标缺勤和没点到
// 都算进 Absent，所以 Absent 恒等于 ActiveTotal-Present-HalfDay。
func ComputeTodayRollup(workers []model.Worker, records []model.AttendanceRecord) TodayRollup {
	rollup := TodayRollup{
		ActiveTotal: len(workers),
		TodayWages:  decimal.Zero,
	}

	rateByWorker := make(map[int64]decimal.Decimal, len(workers))
	for _, w := range workers {
		rateByWorker[w.ID] = w.DailyRate
	}

	for _, r := range records {
		rate, ok := rateByWorker[r.WorkerID]
		if !ok {
			// 离职或归属其他雇主的记录不计入
			continue
		}
		rollup.Marked++
		switch r.Status {
		case model.StatusPresent:
			rollup.Present++
			rollup.TodayWages = rollup.TodayWages.Add(rate)
		case model.StatusHalfDay:
			rollup.HalfDay++
			rollup.TodayWages = rollup.TodayWages.Add(rate.Mul(halfDayFactor))
		}
	}

	rollup.Absent = rollup.ActiveTotal - rollup.Present - rollup.HalfDay
	return rollup
}

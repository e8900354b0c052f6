package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"kaamtrack/internal/ledger"
	"kaamtrack/internal/model/dto"
	"kaamtrack/internal/repository"
	pkgerrors "kaamtrack/pkg/errors"
	"kaamtrack/storage/database"
	"kaamtrack/utils"
)

var (
	reportService *ReportService
	reportOnce    sync.Once
)

func Report() *ReportService {
	reportOnce.Do(func() {
		db := database.DB()
		reportService = NewReportService(
			repository.NewWorkerStore(db),
			repository.NewAttendanceStore(db),
			repository.NewPaymentStore(db),
			time.Now,
		)
	})
	return reportService
}

type ReportService struct {
	workers    repository.WorkerStore
	attendance repository.AttendanceStore
	payments   repository.PaymentStore
	now        func() time.Time
}

func NewReportService(
	workers repository.WorkerStore,
	attendance repository.AttendanceStore,
	payments repository.PaymentStore,
	now func() time.Time,
) *ReportService {
	return &ReportService{workers: workers, attendance: attendance, payments: payments, now: now}
}

// Dashboard 首页看板：当日出勤汇总 + 本月工资概况 + 全部待结算
func (s *ReportService) Dashboard(ctx context.Context, ownerID int64) (*dto.DashboardData, error) {
	now := s.now()
	today := utils.StartOfDay(now)

	workers, err := s.workers.ListActive(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}

	todayRecords, err := s.attendance.ListByDate(ctx, ownerID, today)
	if err != nil {
		return nil, fmt.Errorf("failed to list today attendance: %w", err)
	}

	rollup := ledger.ComputeTodayRollup(workers, todayRecords)

	monthStart := utils.StartOfMonth(now)
	monthWages := decimal.Zero
	monthAdvances := decimal.Zero
	pendingDue := decimal.Zero

	// 工人数是个位数到两位数的量级，逐人算可以接受
	for i := range workers {
		worker := &workers[i]

		monthRecords, err := s.attendance.ListByWorker(ctx, worker.ID, monthStart, today)
		if err != nil {
			return nil, fmt.Errorf("failed to list month attendance: %w", err)
		}
		monthPayments, err := s.payments.ListByWorker(ctx, worker.ID, monthStart, today)
		if err != nil {
			return nil, fmt.Errorf("failed to list month payments: %w", err)
		}
		monthStats := ledger.ComputeWorkerStats(worker, monthRecords, monthPayments)
		monthWages = monthWages.Add(monthStats.TotalEarnings)
		monthAdvances = monthAdvances.Add(monthStats.TotalAdvances)

		allRecords, err := s.attendance.ListByWorker(ctx, worker.ID, time.Time{}, today)
		if err != nil {
			return nil, fmt.Errorf("failed to list attendance: %w", err)
		}
		allPayments, err := s.payments.ListByWorker(ctx, worker.ID, time.Time{}, today)
		if err != nil {
			return nil, fmt.Errorf("failed to list payments: %w", err)
		}
		allStats := ledger.ComputeWorkerStats(worker, allRecords, allPayments)
		pendingDue = pendingDue.Add(allStats.Balance)
	}

	return &dto.DashboardData{
		Date:          utils.DateString(now),
		TotalWorkers:  rollup.ActiveTotal,
		PresentToday:  rollup.Present,
		HalfDayToday:  rollup.HalfDay,
		AbsentToday:   rollup.Absent,
		TodayWages:    rollup.TodayWages.StringFixed(2),
		MonthWages:    monthWages.StringFixed(2),
		MonthAdvances: monthAdvances.StringFixed(2),
		PendingDue:    pendingDue.StringFixed(2),
	}, nil
}

// Summary 区间汇总：逐工人的台账加一行合计
func (s *ReportService) Summary(ctx context.Context, ownerID int64, query *dto.SummaryQuery) (*dto.SummaryData, error) {
	now := s.now()
	from := utils.StartOfMonth(now)
	to := utils.StartOfDay(now)

	if query.From != "" {
		parsed, err := utils.ParseDate(query.From)
		if err != nil {
			return nil, pkgerrors.InvalidDate
		}
		from = parsed
	}
	if query.To != "" {
		parsed, err := utils.ParseDate(query.To)
		if err != nil {
			return nil, pkgerrors.InvalidDate
		}
		to = parsed
	}
	if to.Before(from) {
		return nil, pkgerrors.InvalidDate
	}

	workers, err := s.workers.List(ctx, ownerID, repository.WorkerFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}

	summary := &dto.SummaryData{
		From:    utils.DateString(from),
		To:      utils.DateString(to),
		Workers: make([]dto.WorkerStatsData, 0, len(workers)),
	}

	totalEarnings := decimal.Zero
	totalAdvances := decimal.Zero
	totalPaid := decimal.Zero
	totalBalance := decimal.Zero

	for i := range workers {
		worker := &workers[i]

		records, err := s.attendance.ListByWorker(ctx, worker.ID, from, to)
		if err != nil {
			return nil, fmt.Errorf("failed to list attendance: %w", err)
		}
		payments, err := s.payments.ListByWorker(ctx, worker.ID, from, to)
		if err != nil {
			return nil, fmt.Errorf("failed to list payments: %w", err)
		}

		stats := ledger.ComputeWorkerStats(worker, records, payments)
		summary.Workers = append(summary.Workers, dto.WorkerStatsData{
			WorkerID:      fmt.Sprintf("%d", worker.PublicID),
			From:          summary.From,
			To:            summary.To,
			PresentDays:   stats.PresentDays,
			HalfDays:      stats.HalfDays,
			AbsentDays:    stats.AbsentDays,
			TotalEarnings: stats.TotalEarnings.StringFixed(2),
			TotalAdvances: stats.TotalAdvances.StringFixed(2),
			TotalPaid:     stats.TotalPaid.StringFixed(2),
			Balance:       stats.Balance.StringFixed(2),
		})

		totalEarnings = totalEarnings.Add(stats.TotalEarnings)
		totalAdvances = totalAdvances.Add(stats.TotalAdvances)
		totalPaid = totalPaid.Add(stats.TotalPaid)
		totalBalance = totalBalance.Add(stats.Balance)
	}

	summary.Totals = dto.SummaryTotals{
		TotalEarnings: totalEarnings.StringFixed(2),
		TotalAdvances: totalAdvances.StringFixed(2),
		TotalPaid:     totalPaid.StringFixed(2),
		Balance:       totalBalance.StringFixed(2),
	}

	return summary, nil
}

package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"kaamtrack/internal/ledger"
	"kaamtrack/internal/model"
	"kaamtrack/internal/model/dto"
	"kaamtrack/internal/repository"
	pkgerrors "kaamtrack/pkg/errors"
	"kaamtrack/pkg/logger"
	"kaamtrack/pkg/snowflake"
	"kaamtrack/storage/database"
	"kaamtrack/utils"
)

var (
	workerService *WorkerService
	workerOnce    sync.Once
)

func Worker() *WorkerService {
	workerOnce.Do(func() {
		db := database.DB()
		workerService = NewWorkerService(
			repository.NewWorkerStore(db),
			repository.NewAttendanceStore(db),
			repository.NewPaymentStore(db),
		)
	})
	return workerService
}

type WorkerService struct {
	workers    repository.WorkerStore
	attendance repository.AttendanceStore
	payments   repository.PaymentStore
}

func NewWorkerService(workers repository.WorkerStore, attendance repository.AttendanceStore, payments repository.PaymentStore) *WorkerService {
	return &WorkerService{workers: workers, attendance: attendance, payments: payments}
}

// 新工人不填日薪时的缺省值
var defaultDailyRate = decimal.NewFromInt(500)

// Create 建工人档案，工牌令牌自动生成
func (s *WorkerService) Create(ctx context.Context, ownerID int64, req *dto.CreateWorkerRequest) (*dto.WorkerData, error) {
	category := model.WorkerCategory(req.Category)
	if category == "" {
		category = model.CategoryOther
	}
	if !model.ValidCategory(category) {
		return nil, pkgerrors.InvalidCategory
	}

	rate := defaultDailyRate
	if req.DailyRate != "" {
		parsed, err := decimal.NewFromString(req.DailyRate)
		if err != nil || parsed.IsNegative() {
			return nil, pkgerrors.InvalidDailyRate
		}
		rate = parsed
	}

	if req.Phone != "" && !utils.ValidatePhone(req.Phone) {
		return nil, pkgerrors.InvalidCredentials
	}

	publicID, err := snowflake.NextID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate worker ID: %w", err)
	}

	worker := &model.Worker{
		PublicID:  publicID,
		OwnerID:   ownerID,
		Name:      req.Name,
		Category:  category,
		DailyRate: rate,
		Phone:     req.Phone,
		PhotoURL:  req.PhotoURL,
		QrToken:   uuid.NewString(),
		IsActive:  true,
	}

	if err := s.workers.Create(ctx, worker); err != nil {
		return nil, fmt.Errorf("failed to create worker: %w", err)
	}

	logger.Logger.Info("Worker created",
		zap.Int64("owner_id", ownerID),
		zap.Int64("worker_id", publicID),
	)

	return workerDataOf(worker), nil
}

// Update 更新档案，只动提交的字段
func (s *WorkerService) Update(ctx context.Context, ownerID int64, workerID string, req *dto.UpdateWorkerRequest) (*dto.WorkerData, error) {
	worker, err := s.getOwned(ctx, ownerID, workerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		worker.Name = *req.Name
	}
	if req.Category != nil {
		category := model.WorkerCategory(*req.Category)
		if !model.ValidCategory(category) {
			return nil, pkgerrors.InvalidCategory
		}
		worker.Category = category
	}
	if req.DailyRate != nil {
		rate, err := decimal.NewFromString(*req.DailyRate)
		if err != nil || rate.IsNegative() {
			return nil, pkgerrors.InvalidDailyRate
		}
		// 日薪改动只影响之后的结算，历史记录不回算
		worker.DailyRate = rate
	}
	if req.Phone != nil {
		if *req.Phone != "" && !utils.ValidatePhone(*req.Phone) {
			return nil, pkgerrors.InvalidCredentials
		}
		worker.Phone = *req.Phone
	}
	if req.PhotoURL != nil {
		worker.PhotoURL = *req.PhotoURL
	}
	if req.IsActive != nil {
		worker.IsActive = *req.IsActive
	}

	if err := s.workers.Update(ctx, worker); err != nil {
		return nil, fmt.Errorf("failed to update worker: %w", err)
	}

	return workerDataOf(worker), nil
}

// Get 查单个档案
func (s *WorkerService) Get(ctx context.Context, ownerID int64, workerID string) (*dto.WorkerData, error) {
	worker, err := s.getOwned(ctx, ownerID, workerID)
	if err != nil {
		return nil, err
	}
	return workerDataOf(worker), nil
}

// GetByQrToken 扫工牌反查档案
func (s *WorkerService) GetByQrToken(ctx context.Context, ownerID int64, qrToken string) (*dto.WorkerData, error) {
	worker, err := s.workers.GetByQrToken(ctx, ownerID, qrToken)
	if err != nil {
		return nil, fmt.Errorf("failed to query worker: %w", err)
	}
	if worker == nil {
		return nil, pkgerrors.WorkerNotFound
	}
	return workerDataOf(worker), nil
}

// List 工人列表
func (s *WorkerService) List(ctx context.Context, ownerID int64, query *dto.ListWorkersQuery) ([]dto.WorkerData, error) {
	filter := repository.WorkerFilter{
		Category: query.Category,
		Keyword:  query.Keyword,
	}
	switch query.Active {
	case "true":
		active := true
		filter.Active = &active
	case "false":
		active := false
		filter.Active = &active
	}

	workers, err := s.workers.List(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}

	result := make([]dto.WorkerData, 0, len(workers))
	for i := range workers {
		result = append(result, *workerDataOf(&workers[i]))
	}
	return result, nil
}

// Stats 工人工资台账：区间内出勤天数、应发、预支、已发、待结算
func (s *WorkerService) Stats(ctx context.Context, ownerID int64, workerID string, from, to time.Time) (*dto.WorkerStatsData, error) {
	worker, err := s.getOwned(ctx, ownerID, workerID)
	if err != nil {
		return nil, err
	}

	return s.statsOf(ctx, worker, from, to)
}

// SelfStats 工人自助端查自己的台账，不做雇主范围限制
func (s *WorkerService) SelfStats(ctx context.Context, workerPublicID int64, from, to time.Time) (*dto.WorkerStatsData, error) {
	worker, err := s.workers.GetAnyByPublicID(ctx, workerPublicID)
	if err != nil {
		return nil, fmt.Errorf("failed to query worker: %w", err)
	}
	if worker == nil {
		return nil, pkgerrors.WorkerNotFound
	}

	return s.statsOf(ctx, worker, from, to)
}

func (s *WorkerService) statsOf(ctx context.Context, worker *model.Worker, from, to time.Time) (*dto.WorkerStatsData, error) {
	records, err := s.attendance.ListByWorker(ctx, worker.ID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	payments, err := s.payments.ListByWorker(ctx, worker.ID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	stats := ledger.ComputeWorkerStats(worker, records, payments)
	if stats == nil {
		return nil, pkgerrors.WorkerNotFound
	}

	return &dto.WorkerStatsData{
		WorkerID:      fmt.Sprintf("%d", worker.PublicID),
		From:          utils.DateString(from),
		To:            utils.DateString(to),
		PresentDays:   stats.PresentDays,
		HalfDays:      stats.HalfDays,
		AbsentDays:    stats.AbsentDays,
		TotalEarnings: stats.TotalEarnings.StringFixed(2),
		TotalAdvances: stats.TotalAdvances.StringFixed(2),
		TotalPaid:     stats.TotalPaid.StringFixed(2),
		Balance:       stats.Balance.StringFixed(2),
	}, nil
}

func (s *WorkerService) getOwned(ctx context.Context, ownerID int64, workerID string) (*model.Worker, error) {
	id, defErr := parsePublicID(workerID)
	if defErr != nil {
		return nil, pkgerrors.WorkerNotFound
	}

	worker, err := s.workers.GetByPublicID(ctx, ownerID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query worker: %w", err)
	}
	if worker == nil {
		return nil, pkgerrors.WorkerNotFound
	}
	return worker, nil
}

func workerDataOf(worker *model.Worker) *dto.WorkerData {
	return &dto.WorkerData{
		ID:        fmt.Sprintf("%d", worker.PublicID),
		Name:      worker.Name,
		Category:  string(worker.Category),
		DailyRate: worker.DailyRate.StringFixed(2),
		Phone:     worker.Phone,
		PhotoURL:  worker.PhotoURL,
		QrToken:   worker.QrToken,
		IsActive:  worker.IsActive,
		CreatedAt: worker.CreatedAt,
	}
}

package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"kaamtrack/internal/model"
	"kaamtrack/internal/model/dto"
	"kaamtrack/internal/repository"
	pkgerrors "kaamtrack/pkg/errors"
	"kaamtrack/pkg/logger"
	"kaamtrack/storage/database"
	"kaamtrack/utils"
)

var (
	paymentService *PaymentService
	paymentOnce    sync.Once
)

func Payment() *PaymentService {
	paymentOnce.Do(func() {
		db := database.DB()
		paymentService = NewPaymentService(
			repository.NewWorkerStore(db),
			repository.NewPaymentStore(db),
			time.Now,
		)
	})
	return paymentService
}

type PaymentService struct {
	workers  repository.WorkerStore
	payments repository.PaymentStore
	now      func() time.Time
}

func NewPaymentService(workers repository.WorkerStore, payments repository.PaymentStore, now func() time.Time) *PaymentService {
	return &PaymentService{workers: workers, payments: payments, now: now}
}

// Create 记一笔收支。流水只追加，录错了再记一笔冲回来。
func (s *PaymentService) Create(ctx context.Context, ownerID int64, req *dto.CreatePaymentRequest) (*dto.PaymentData, error) {
	paymentType := model.PaymentType(req.Type)
	if !model.ValidPaymentType(paymentType) {
		return nil, pkgerrors.InvalidPaymentType
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		return nil, pkgerrors.InvalidAmount
	}

	date := utils.StartOfDay(s.now())
	if req.Date != "" {
		parsed, err := utils.ParseDate(req.Date)
		if err != nil {
			return nil, pkgerrors.InvalidDate
		}
		date = parsed
	}

	workerID, defErr := parsePublicID(req.WorkerID)
	if defErr != nil {
		return nil, pkgerrors.WorkerNotFound
	}
	worker, err := s.workers.GetByPublicID(ctx, ownerID, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query worker: %w", err)
	}
	if worker == nil {
		return nil, pkgerrors.WorkerNotFound
	}

	record := &model.PaymentRecord{
		WorkerID: worker.ID,
		Type:     paymentType,
		Amount:   amount,
		Date:     date,
		Note:     req.Note,
	}

	if err := s.payments.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	logger.Logger.Info("Payment recorded",
		zap.Int64("owner_id", ownerID),
		zap.Int64("worker_id", worker.PublicID),
		zap.String("type", string(paymentType)),
		zap.String("amount", amount.StringFixed(2)),
	)

	return paymentDataOf(record, worker), nil
}

// List 流水查询
func (s *PaymentService) List(ctx context.Context, ownerID int64, query *dto.ListPaymentsQuery) ([]dto.PaymentData, error) {
	filter := repository.PaymentFilter{}

	if query.Type != "" {
		if !model.ValidPaymentType(model.PaymentType(query.Type)) {
			return nil, pkgerrors.InvalidPaymentType
		}
		filter.Type = query.Type
	}
	if query.WorkerID != "" {
		workerID, defErr := parsePublicID(query.WorkerID)
		if defErr != nil {
			return nil, pkgerrors.WorkerNotFound
		}
		worker, err := s.workers.GetByPublicID(ctx, ownerID, workerID)
		if err != nil {
			return nil, fmt.Errorf("failed to query worker: %w", err)
		}
		if worker == nil {
			return nil, pkgerrors.WorkerNotFound
		}
		filter.WorkerID = worker.ID
	}
	if query.From != "" {
		from, err := utils.ParseDate(query.From)
		if err != nil {
			return nil, pkgerrors.InvalidDate
		}
		filter.From = from
	}
	if query.To != "" {
		to, err := utils.ParseDate(query.To)
		if err != nil {
			return nil, pkgerrors.InvalidDate
		}
		filter.To = to
	}

	records, err := s.payments.ListByOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	workers, err := s.workers.List(ctx, ownerID, repository.WorkerFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}
	byID := make(map[int64]*model.Worker, len(workers))
	for i := range workers {
		byID[workers[i].ID] = &workers[i]
	}

	result := make([]dto.PaymentData, 0, len(records))
	for i := range records {
		result = append(result, *paymentDataOf(&records[i], byID[records[i].WorkerID]))
	}
	return result, nil
}

// ListSelf 工人自助端查自己的流水，区间缺省不限
func (s *PaymentService) ListSelf(ctx context.Context, workerPublicID int64, fromStr, toStr string) ([]dto.PaymentData, error) {
	worker, err := s.workers.GetAnyByPublicID(ctx, workerPublicID)
	if err != nil {
		return nil, fmt.Errorf("failed to query worker: %w", err)
	}
	if worker == nil {
		return nil, pkgerrors.WorkerNotFound
	}

	var from, to time.Time
	if fromStr != "" {
		if from, err = utils.ParseDate(fromStr); err != nil {
			return nil, pkgerrors.InvalidDate
		}
	}
	if toStr != "" {
		if to, err = utils.ParseDate(toStr); err != nil {
			return nil, pkgerrors.InvalidDate
		}
	}

	records, err := s.payments.ListByWorker(ctx, worker.ID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	result := make([]dto.PaymentData, 0, len(records))
	for i := range records {
		result = append(result, *paymentDataOf(&records[i], worker))
	}
	return result, nil
}

func paymentDataOf(record *model.PaymentRecord, worker *model.Worker) *dto.PaymentData {
	data := &dto.PaymentData{
		ID:        fmt.Sprintf("%d", record.ID),
		Type:      string(record.Type),
		Amount:    record.Amount.StringFixed(2),
		Date:      utils.DateString(record.Date),
		Note:      record.Note,
		CreatedAt: record.CreatedAt,
	}
	if worker != nil {
		data.WorkerID = fmt.Sprintf("%d", worker.PublicID)
		data.WorkerName = worker.Name
	}
	return data
}

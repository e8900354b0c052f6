package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"kaamtrack/internal/model"
	"kaamtrack/internal/model/dto"
	"kaamtrack/internal/qrcode"
	"kaamtrack/internal/repository"
	pkgerrors "kaamtrack/pkg/errors"
	"kaamtrack/pkg/logger"
	"kaamtrack/storage/database"
	"kaamtrack/utils"
)

var (
	attendanceService *AttendanceService
	attendanceOnce    sync.Once
)

const (
	checkInLockTTL        = 10 * time.Second
	checkInLockRetries    = 3
	checkInLockRetryDelay = 100 * time.Millisecond
)

func Attendance() *AttendanceService {
	attendanceOnce.Do(func() {
		db := database.DB()
		attendanceService = NewAttendanceService(
			repository.NewWorkerStore(db),
			repository.NewAttendanceStore(db),
			redisCodeCache{},
			redisLocker{},
			time.Now,
		)
	})
	return attendanceService
}

type AttendanceService struct {
	workers    repository.WorkerStore
	attendance repository.AttendanceStore
	codes      CodeCache
	locker     Locker
	now        func() time.Time
}

func NewAttendanceService(
	workers repository.WorkerStore,
	attendance repository.AttendanceStore,
	codes CodeCache,
	locker Locker,
	now func() time.Time,
) *AttendanceService {
	return &AttendanceService{
		workers:    workers,
		attendance: attendance,
		codes:      codes,
		locker:     locker,
		now:        now,
	}
}

// Mark 雇主手工点名。同一工人同一天重复点名覆盖旧状态，不产生新行。
func (s *AttendanceService) Mark(ctx context.Context, ownerID int64, req *dto.MarkAttendanceRequest) (*dto.AttendanceData, error) {
	status := model.AttendanceStatus(req.Status)
	if !model.ValidStatus(status) {
		return nil, pkgerrors.InvalidStatus
	}

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		return nil, pkgerrors.InvalidDate
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

	// 扫码留下的打卡时间在手工覆盖时保留
	existing, err := s.attendance.GetByWorkerAndDate(ctx, worker.ID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance: %w", err)
	}

	record := &model.AttendanceRecord{
		WorkerID: worker.ID,
		Date:     date,
		Status:   status,
		Via:      model.MarkedViaManual,
		Note:     req.Note,
	}
	if existing != nil {
		record.CheckInAt = existing.CheckInAt
		record.CheckOutAt = existing.CheckOutAt
	}

	if err := s.attendance.Upsert(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to upsert attendance: %w", err)
	}

	logger.Logger.Info("Attendance marked",
		zap.Int64("owner_id", ownerID),
		zap.Int64("worker_id", worker.PublicID),
		zap.String("date", req.Date),
		zap.String("status", string(status)),
	)

	return attendanceDataOf(record, worker), nil
}

// CheckIn 工人扫雇主当日码打卡。
// 幂等：当天已有记录时覆盖成 present 并保留首次打卡时间，Repeated 置 true。
func (s *AttendanceService) CheckIn(ctx context.Context, workerPublicID int64, scannedCode string) (*dto.CheckInResultData, error) {
	worker, err := s.workers.GetAnyByPublicID(ctx, workerPublicID)
	if err != nil {
		return nil, fmt.Errorf("failed to query worker: %w", err)
	}
	if worker == nil {
		return nil, pkgerrors.WorkerNotFound
	}
	if !worker.IsActive {
		return nil, pkgerrors.WorkerInactive
	}

	// 取一次当前时刻，校验和落库用同一个 now
	now := s.now()

	current, err := s.codes.GetCurrentCode(ctx, worker.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily code: %w", err)
	}
	if defErr := qrcode.Validate(current, scannedCode, now); defErr != nil {
		return nil, defErr
	}

	date := utils.StartOfDay(now)
	lockKey := fmt.Sprintf("checkin:%d:%s", worker.ID, utils.DateString(now))
	// 同一工人并发扫码时后到的等前一次落库，再走重复打卡路径
	acquired, err := s.locker.TryLock(ctx, lockKey, checkInLockTTL)
	for retry := 0; err == nil && !acquired && retry < checkInLockRetries; retry++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(checkInLockRetryDelay):
		}
		acquired, err = s.locker.TryLock(ctx, lockKey, checkInLockTTL)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to acquire check-in lock: %w", err)
	}
	if !acquired {
		// 锁超过重试窗口还占着，多半是卡死的持有者，放弃而不是覆盖打卡时间
		return nil, pkgerrors.DuplicateKeyRace
	}
	defer func() {
		if err := s.locker.Unlock(ctx, lockKey); err != nil {
			logger.Logger.Warn("Failed to release check-in lock",
				zap.String("key", lockKey),
				zap.Error(err),
			)
		}
	}()

	existing, err := s.attendance.GetByWorkerAndDate(ctx, worker.ID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance: %w", err)
	}

	checkInAt := now
	repeated := false
	if existing != nil {
		repeated = true
		if existing.CheckInAt != nil {
			checkInAt = *existing.CheckInAt
		}
	}

	record := &model.AttendanceRecord{
		WorkerID:  worker.ID,
		Date:      date,
		Status:    model.StatusPresent,
		Via:       model.MarkedViaQR,
		CheckInAt: &checkInAt,
	}
	if existing != nil {
		record.CheckOutAt = existing.CheckOutAt
		record.Note = existing.Note
	}

	if err := s.attendance.Upsert(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to upsert attendance: %w", err)
	}

	logger.Logger.Info("Worker checked in",
		zap.Int64("worker_id", worker.PublicID),
		zap.String("date", utils.DateString(now)),
		zap.Bool("repeated", repeated),
	)

	return &dto.CheckInResultData{
		WorkerID:  fmt.Sprintf("%d", worker.PublicID),
		Date:      utils.DateString(now),
		Status:    string(model.StatusPresent),
		CheckInAt: checkInAt,
		Repeated:  repeated,
	}, nil
}

// List 考勤列表查询
func (s *AttendanceService) List(ctx context.Context, ownerID int64, query *dto.ListAttendanceQuery) ([]dto.AttendanceData, error) {
	filter := repository.AttendanceFilter{Status: query.Status}

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

	if query.Date != "" {
		date, err := utils.ParseDate(query.Date)
		if err != nil {
			return nil, pkgerrors.InvalidDate
		}
		filter.From, filter.To = date, date
	} else {
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
	}

	records, err := s.attendance.ListByOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	// worker.ID -> 档案，补工人名字和 public_id
	workers, err := s.workers.List(ctx, ownerID, repository.WorkerFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}
	byID := make(map[int64]*model.Worker, len(workers))
	for i := range workers {
		byID[workers[i].ID] = &workers[i]
	}

	result := make([]dto.AttendanceData, 0, len(records))
	for i := range records {
		result = append(result, *attendanceDataOf(&records[i], byID[records[i].WorkerID]))
	}
	return result, nil
}

// ListSelf 工人自助端查自己的考勤记录，区间缺省不限
func (s *AttendanceService) ListSelf(ctx context.Context, workerPublicID int64, fromStr, toStr string) ([]dto.AttendanceData, error) {
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

	records, err := s.attendance.ListByWorker(ctx, worker.ID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	result := make([]dto.AttendanceData, 0, len(records))
	for i := range records {
		result = append(result, *attendanceDataOf(&records[i], worker))
	}
	return result, nil
}

func attendanceDataOf(record *model.AttendanceRecord, worker *model.Worker) *dto.AttendanceData {
	data := &dto.AttendanceData{
		Date:       utils.DateString(record.Date),
		Status:     string(record.Status),
		Via:        string(record.Via),
		CheckInAt:  record.CheckInAt,
		CheckOutAt: record.CheckOutAt,
		Note:       record.Note,
	}
	if worker != nil {
		data.WorkerID = fmt.Sprintf("%d", worker.PublicID)
		data.WorkerName = worker.Name
	}
	return data
}

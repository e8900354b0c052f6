package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kaamtrack/internal/model"
)

type attendanceRepo struct {
	db *gorm.DB
}

// NewAttendanceStore 基于 gorm 的考勤存取
func NewAttendanceStore(db *gorm.DB) AttendanceStore {
	return &attendanceRepo{db: db}
}

// Upsert 以 (worker_id, date) 为冲突键写入。
// 并发撞上唯一索引时由 ON CONFLICT 兜底，后写的覆盖先写的。
func (r *attendanceRepo) Upsert(ctx context.Context, record *model.AttendanceRecord) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "worker_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"status", "via", "check_in_at", "check_out_at", "note", "updated_at",
		}),
	}).Create(record).Error
}

func (r *attendanceRepo) GetByWorkerAndDate(ctx context.Context, workerID int64, date time.Time) (*model.AttendanceRecord, error) {
	var record model.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("worker_id = ? AND date = ?", workerID, date.Format("2006-01-02")).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *attendanceRepo) ListByDate(ctx context.Context, ownerID int64, date time.Time) ([]model.AttendanceRecord, error) {
	var records []model.AttendanceRecord
	err := r.db.WithContext(ctx).
		Joins("JOIN workers ON workers.id = attendance_records.worker_id").
		Where("workers.owner_id = ? AND attendance_records.date = ?", ownerID, date.Format("2006-01-02")).
		Find(&records).Error
	return records, err
}

func (r *attendanceRepo) ListByWorker(ctx context.Context, workerID int64, from, to time.Time) ([]model.AttendanceRecord, error) {
	q := r.db.WithContext(ctx).Where("worker_id = ?", workerID)
	if !from.IsZero() {
		q = q.Where("date >= ?", from.Format("2006-01-02"))
	}
	if !to.IsZero() {
		q = q.Where("date <= ?", to.Format("2006-01-02"))
	}

	var records []model.AttendanceRecord
	err := q.Order("date DESC").Find(&records).Error
	return records, err
}

func (r *attendanceRepo) ListByOwner(ctx context.Context, ownerID int64, filter AttendanceFilter) ([]model.AttendanceRecord, error) {
	q := r.db.WithContext(ctx).
		Joins("JOIN workers ON workers.id = attendance_records.worker_id").
		Where("workers.owner_id = ?", ownerID)

	if filter.WorkerID > 0 {
		q = q.Where("attendance_records.worker_id = ?", filter.WorkerID)
	}
	if !filter.From.IsZero() {
		q = q.Where("attendance_records.date >= ?", filter.From.Format("2006-01-02"))
	}
	if !filter.To.IsZero() {
		q = q.Where("attendance_records.date <= ?", filter.To.Format("2006-01-02"))
	}
	if filter.Status != "" {
		q = q.Where("attendance_records.status = ?", filter.Status)
	}

	var records []model.AttendanceRecord
	err := q.Order("attendance_records.date DESC").Find(&records).Error
	return records, err
}

// CountOwnersMarkedOn 统计每个雇主当天已记的考勤条数，提醒任务靠这个跳过已记考勤的雇主
func (r *attendanceRepo) CountOwnersMarkedOn(ctx context.Context, ownerIDs []int64, date time.Time) (map[int64]int64, error) {
	type row struct {
		OwnerID int64
		Count   int64
	}

	var rows []row
	err := r.db.WithContext(ctx).
		Model(&model.AttendanceRecord{}).
		Select("workers.owner_id AS owner_id, COUNT(*) AS count").
		Joins("JOIN workers ON workers.id = attendance_records.worker_id").
		Where("workers.owner_id IN ? AND attendance_records.date = ?", ownerIDs, date.Format("2006-01-02")).
		Group("workers.owner_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[int64]int64, len(rows))
	for _, r := range rows {
		counts[r.OwnerID] = r.Count
	}
	return counts, nil
}

package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"kaamtrack/internal/model"
)

type paymentRepo struct {
	db *gorm.DB
}

// NewPaymentStore 基于 gorm 的收支流水存取
func NewPaymentStore(db *gorm.DB) PaymentStore {
	return &paymentRepo{db: db}
}

func (r *paymentRepo) Create(ctx context.Context, record *model.PaymentRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *paymentRepo) ListByWorker(ctx context.Context, workerID int64, from, to time.Time) ([]model.PaymentRecord, error) {
	q := r.db.WithContext(ctx).Where("worker_id = ?", workerID)
	if !from.IsZero() {
		q = q.Where("date >= ?", from.Format("2006-01-02"))
	}
	if !to.IsZero() {
		q = q.Where("date <= ?", to.Format("2006-01-02"))
	}

	var records []model.PaymentRecord
	err := q.Order("date DESC, id DESC").Find(&records).Error
	return records, err
}

func (r *paymentRepo) ListByOwner(ctx context.Context, ownerID int64, filter PaymentFilter) ([]model.PaymentRecord, error) {
	q := r.db.WithContext(ctx).
		Joins("JOIN workers ON workers.id = payment_records.worker_id").
		Where("workers.owner_id = ?", ownerID)

	if filter.WorkerID > 0 {
		q = q.Where("payment_records.worker_id = ?", filter.WorkerID)
	}
	if filter.Type != "" {
		q = q.Where("payment_records.type = ?", filter.Type)
	}
	if !filter.From.IsZero() {
		q = q.Where("payment_records.date >= ?", filter.From.Format("2006-01-02"))
	}
	if !filter.To.IsZero() {
		q = q.Where("payment_records.date <= ?", filter.To.Format("2006-01-02"))
	}

	var records []model.PaymentRecord
	err := q.Order("payment_records.date DESC, payment_records.id DESC").Find(&records).Error
	return records, err
}

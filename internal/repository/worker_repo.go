package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"kaamtrack/internal/model"
)

type workerRepo struct {
	db *gorm.DB
}

// NewWorkerStore 基于 gorm 的工人档案存取
func NewWorkerStore(db *gorm.DB) WorkerStore {
	return &workerRepo{db: db}
}

func (r *workerRepo) Create(ctx context.Context, worker *model.Worker) error {
	return r.db.WithContext(ctx).Create(worker).Error
}

func (r *workerRepo) Update(ctx context.Context, worker *model.Worker) error {
	return r.db.WithContext(ctx).Save(worker).Error
}

func (r *workerRepo) GetByPublicID(ctx context.Context, ownerID, publicID int64) (*model.Worker, error) {
	var worker model.Worker
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND public_id = ?", ownerID, publicID).
		First(&worker).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &worker, nil
}

func (r *workerRepo) GetAnyByPublicID(ctx context.Context, publicID int64) (*model.Worker, error) {
	var worker model.Worker
	err := r.db.WithContext(ctx).Where("public_id = ?", publicID).First(&worker).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &worker, nil
}

// GetByQrToken 工牌令牌查档案。令牌全局唯一，ownerID 传 0 表示不限定雇主。
func (r *workerRepo) GetByQrToken(ctx context.Context, ownerID int64, qrToken string) (*model.Worker, error) {
	q := r.db.WithContext(ctx).Where("qr_token = ?", qrToken)
	if ownerID > 0 {
		q = q.Where("owner_id = ?", ownerID)
	}

	var worker model.Worker
	err := q.First(&worker).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &worker, nil
}

func (r *workerRepo) List(ctx context.Context, ownerID int64, filter WorkerFilter) ([]model.Worker, error) {
	q := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)

	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Active != nil {
		q = q.Where("is_active = ?", *filter.Active)
	}
	if filter.Keyword != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Keyword+"%")
	}

	var workers []model.Worker
	err := q.Order("created_at DESC").Find(&workers).Error
	return workers, err
}

func (r *workerRepo) ListActive(ctx context.Context, ownerID int64) ([]model.Worker, error) {
	var workers []model.Worker
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND is_active = true", ownerID).
		Order("name ASC").
		Find(&workers).Error
	return workers, err
}

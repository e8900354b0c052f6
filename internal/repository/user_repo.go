package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"kaamtrack/internal/model"
)

type userRepo struct {
	db *gorm.DB
}

// NewUserStore 基于 gorm 的账号存取
func NewUserStore(db *gorm.DB) UserStore {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepo) GetByPhone(ctx context.Context, phone string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByPublicID(ctx context.Context, publicID int64) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("public_id = ?", publicID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListOwnersWithActiveWorkers 有在职工人的雇主，提醒任务用
func (r *userRepo) ListOwnersWithActiveWorkers(ctx context.Context) ([]model.User, error) {
	var owners []model.User
	err := r.db.WithContext(ctx).
		Where("role = ?", model.RoleOwner).
		Where("public_id IN (?)", r.db.Model(&model.Worker{}).
			Select("DISTINCT owner_id").
			Where("is_active = true")).
		Find(&owners).Error
	return owners, err
}

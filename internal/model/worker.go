package model

import (
	"github.com/shopspring/decimal"
)

// WorkerCategory 工种枚举
type WorkerCategory string

const (
	CategoryMason     WorkerCategory = "mason"
	CategoryHelper    WorkerCategory = "helper"
	CategoryElectric  WorkerCategory = "electrician"
	CategoryPlumber   WorkerCategory = "plumber"
	CategoryCarpenter WorkerCategory = "carpenter"
	CategoryDriver    WorkerCategory = "driver"
	CategoryOther     WorkerCategory = "other"
)

// ValidCategory 校验工种是否合法
func ValidCategory(c WorkerCategory) bool {
	switch c {
	case CategoryMason, CategoryHelper, CategoryElectric, CategoryPlumber,
		CategoryCarpenter, CategoryDriver, CategoryOther:
		return true
	}
	return false
}

// Worker 工人档案。daily_rate 用 decimal 存，金额运算不走 float。
type Worker struct {
	BaseModel
	PublicID  int64           `gorm:"uniqueIndex;not null" json:"public_id"`
	OwnerID   int64           `gorm:"not null;index:idx_workers_owner" json:"owner_id"`
	Name      string          `gorm:"type:varchar(64);not null" json:"name"`
	Category  WorkerCategory  `gorm:"type:varchar(20);not null;default:'other'" json:"category"`
	DailyRate decimal.Decimal `gorm:"type:decimal(12,2);not null;default:500" json:"daily_rate"`
	Phone     string          `gorm:"type:varchar(20)" json:"phone"`
	PhotoURL  string          `gorm:"type:varchar(255)" json:"photo_url"`

	// QrToken 是工人工牌上的固定二维码，雇主端扫码反查档案用
	QrToken  string `gorm:"uniqueIndex;type:varchar(36);not null" json:"qr_token"`
	IsActive bool   `gorm:"not null;default:true;index:idx_workers_active" json:"is_active"`
}

// TableName 指定表名
func (Worker) TableName() string {
	return "workers"
}

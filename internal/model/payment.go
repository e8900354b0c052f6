package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentType 收支类型枚举
type PaymentType string

const (
	PaymentAdvance   PaymentType = "advance"   // 预支，计入待结算扣减
	PaymentPayment   PaymentType = "payment"   // 工资发放
	PaymentBonus     PaymentType = "bonus"     // 奖金，单独记账不进结算公式
	PaymentDeduction PaymentType = "deduction" // 扣款，单独记账不进结算公式
)

// ValidPaymentType 校验收支类型是否合法
func ValidPaymentType(t PaymentType) bool {
	switch t {
	case PaymentAdvance, PaymentPayment, PaymentBonus, PaymentDeduction:
		return true
	}
	return false
}

// PaymentRecord 收支流水，只追加不修改。
type PaymentRecord struct {
	BaseModel
	WorkerID int64           `gorm:"not null;index:idx_payments_worker" json:"worker_id"`
	Type     PaymentType     `gorm:"type:varchar(10);not null" json:"type"`
	Amount   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Date     time.Time       `gorm:"type:date;not null;index:idx_payments_date" json:"date"`
	Note     string          `gorm:"type:varchar(255)" json:"note,omitempty"`
}

// TableName 指定表名
func (PaymentRecord) TableName() string {
	return "payment_records"
}

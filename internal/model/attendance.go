package model

import (
	"time"
)

// AttendanceStatus 考勤状态枚举
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "present"
	StatusAbsent  AttendanceStatus = "absent"
	StatusHalfDay AttendanceStatus = "half-day"
)

// ValidStatus 校验考勤状态是否合法
func ValidStatus(s AttendanceStatus) bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusHalfDay:
		return true
	}
	return false
}

// MarkedVia 标记来源
type MarkedVia string

const (
	MarkedViaQR     MarkedVia = "qr"
	MarkedViaManual MarkedVia = "manual"
)

// AttendanceRecord 单日考勤记录。
// (worker_id, date) 唯一，重复标记走 upsert 覆盖，不追加新行。
type AttendanceRecord struct {
	BaseModel
	WorkerID int64            `gorm:"not null;uniqueIndex:uk_attendance_worker_date,priority:1" json:"worker_id"`
	Date     time.Time        `gorm:"type:date;not null;uniqueIndex:uk_attendance_worker_date,priority:2;index:idx_attendance_date" json:"date"`
	Status   AttendanceStatus `gorm:"type:varchar(10);not null" json:"status"`
	Via      MarkedVia        `gorm:"type:varchar(10);not null;default:'manual'" json:"via"`

	CheckInAt  *time.Time `json:"check_in_at,omitempty"`
	CheckOutAt *time.Time `json:"check_out_at,omitempty"`
	Note       string     `gorm:"type:varchar(255)" json:"note,omitempty"`
}

// TableName 指定表名
func (AttendanceRecord) TableName() string {
	return "attendance_records"
}

package dto

import "time"

// ========== Attendance 相关 DTO ==========

// MarkAttendanceRequest 手工点名请求
type MarkAttendanceRequest struct {
	WorkerID string `json:"worker_id" binding:"required"`
	Date     string `json:"date" binding:"required"` // YYYY-MM-DD
	Status   string `json:"status" binding:"required"`
	Note     string `json:"note,omitempty"`
}

// CheckInRequest 扫码打卡请求，code 为当日动态码
type CheckInRequest struct {
	Code string `json:"code" binding:"required"`
}

// AttendanceData 单条考勤记录
type AttendanceData struct {
	WorkerID   string     `json:"worker_id"`
	WorkerName string     `json:"worker_name,omitempty"`
	Date       string     `json:"date"`
	Status     string     `json:"status"`
	Via        string     `json:"via"`
	CheckInAt  *time.Time `json:"check_in_at,omitempty"`
	CheckOutAt *time.Time `json:"check_out_at,omitempty"`
	Note       string     `json:"note,omitempty"`
}

// ListAttendanceQuery 考勤列表查询参数
type ListAttendanceQuery struct {
	WorkerID string `form:"worker_id"`
	Date     string `form:"date"`
	From     string `form:"from"`
	To       string `form:"to"`
	Status   string `form:"status"`
}

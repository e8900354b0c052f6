package dto

import "time"

// ========== QRCode 相关 DTO ==========

// DailyCodeData 当日动态码数据
type DailyCodeData struct {
	Code       string    `json:"code"`
	Date       string    `json:"date"`
	ValidFrom  time.Time `json:"valid_from"`
	ValidUntil time.Time `json:"valid_until"`
	Status     string    `json:"status"` // active / expired
}

// CheckInResultData 扫码打卡结果
type CheckInResultData struct {
	WorkerID  string    `json:"worker_id"`
	Date      string    `json:"date"`
	Status    string    `json:"status"`
	CheckInAt time.Time `json:"check_in_at"`
	Repeated  bool      `json:"repeated"` // 当日重复打卡时为 true
}

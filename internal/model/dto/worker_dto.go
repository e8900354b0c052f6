package dto

import "time"

// ========== Worker 相关 DTO ==========

// CreateWorkerRequest 创建工人档案请求
type CreateWorkerRequest struct {
	Name      string `json:"name" binding:"required"`
	Category  string `json:"category"`
	DailyRate string `json:"daily_rate"` // 十进制字符串，缺省 500
	Phone     string `json:"phone,omitempty"`
	PhotoURL  string `json:"photo_url,omitempty"`
}

// UpdateWorkerRequest 更新工人档案请求，指针字段区分"未提交"和"清空"
type UpdateWorkerRequest struct {
	Name      *string `json:"name,omitempty"`
	Category  *string `json:"category,omitempty"`
	DailyRate *string `json:"daily_rate,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	PhotoURL  *string `json:"photo_url,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
}

// WorkerData 工人档案数据
type WorkerData struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	DailyRate string    `json:"daily_rate"`
	Phone     string    `json:"phone,omitempty"`
	PhotoURL  string    `json:"photo_url,omitempty"`
	QrToken   string    `json:"qr_token"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// ListWorkersQuery 工人列表查询参数
type ListWorkersQuery struct {
	Category string `form:"category"`
	Active   string `form:"active"` // true / false / 空为全部
	Keyword  string `form:"keyword"`
}

// WorkerStatsData 工人工资台账汇总
type WorkerStatsData struct {
	WorkerID      string `json:"worker_id"`
	From          string `json:"from"`
	To            string `json:"to"`
	PresentDays   int    `json:"present_days"`
	HalfDays      int    `json:"half_days"`
	AbsentDays    int    `json:"absent_days"`
	TotalEarnings string `json:"total_earnings"`
	TotalAdvances string `json:"total_advances"`
	TotalPaid     string `json:"total_paid"`
	Balance       string `json:"balance"`
}

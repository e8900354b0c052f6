package dto

import "time"

// ========== Payment 相关 DTO ==========

// CreatePaymentRequest 记一笔收支请求
type CreatePaymentRequest struct {
	WorkerID string `json:"worker_id" binding:"required"`
	Type     string `json:"type" binding:"required"` // advance / payment / bonus / deduction
	Amount   string `json:"amount" binding:"required"`
	Date     string `json:"date"` // 缺省当天
	Note     string `json:"note,omitempty"`
}

// PaymentData 单条收支流水
type PaymentData struct {
	ID         string    `json:"id"`
	WorkerID   string    `json:"worker_id"`
	WorkerName string    `json:"worker_name,omitempty"`
	Type       string    `json:"type"`
	Amount     string    `json:"amount"`
	Date       string    `json:"date"`
	Note       string    `json:"note,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ListPaymentsQuery 收支流水查询参数
type ListPaymentsQuery struct {
	WorkerID string `form:"worker_id"`
	Type     string `form:"type"`
	From     string `form:"from"`
	To       string `form:"to"`
}

package model

// AttendanceReminderMessage 考勤提醒消息，scheduler 投递，worker 消费后给雇主发短信
type AttendanceReminderMessage struct {
	MessageID    string  `json:"message_id"`
	OwnerIDs     []int64 `json:"owner_ids"`
	Date         string  `json:"date"` // YYYY-MM-DD
	ScheduledAt  string  `json:"scheduled_at"`
	DelaySeconds int     `json:"delay_seconds"`
}

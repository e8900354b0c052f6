package sms

import (
	"context"
	"encoding/json"

	"kaamtrack/config"
	"kaamtrack/pkg/errors"
)

// SendAttendanceReminder 给雇主发考勤提醒短信
// 模板变量：date（当天日期）
func SendAttendanceReminder(ctx context.Context, phone, date string) (*SendResponse, error) {
	cfg := config.Cfg
	if cfg.SMSReminderTemplateCode == "" {
		return nil, errors.ErrTemplateCodeRequired
	}

	param, err := json.Marshal(map[string]string{"date": date})
	if err != nil {
		return nil, err
	}

	return SendSingle(ctx, phone, cfg.SMSSignName, cfg.SMSReminderTemplateCode, string(param))
}

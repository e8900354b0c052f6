package qrcode

import (
	"strings"
	"testing"
	"time"

	pkgerrors "kaamtrack/pkg/errors"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, 6, 10, hour, minute, 0, 0, time.Local)
}

func TestGenerate(t *testing.T) {
	now := at(7, 0)
	code := Generate(42, now, 4*time.Hour)

	if !strings.HasPrefix(code.Code, "KT-2025-06-10-") {
		t.Errorf("码格式不对：%s", code.Code)
	}
	if code.Date != "2025-06-10" {
		t.Errorf("Date 期望 2025-06-10，实际 %s", code.Date)
	}
	if !code.ValidUntil.Equal(at(11, 0)) {
		t.Errorf("ValidUntil 期望 11:00，实际 %v", code.ValidUntil)
	}
	if code.State(now) != StateActive {
		t.Errorf("刚生成的码应为 active，实际 %s", code.State(now))
	}

	other := Generate(42, now, 4*time.Hour)
	if other.Code == code.Code {
		t.Error("两次生成的码不应相同")
	}
}

func TestValidateWithinWindow(t *testing.T) {
	code := Generate(42, at(7, 0), 4*time.Hour)

	if err := Validate(code, code.Code, at(8, 0)); err != nil {
		t.Errorf("窗口内扫码应通过，实际返回 %v", err)
	}
	if err := Validate(code, code.Code, at(11, 0)); err != nil {
		t.Errorf("窗口边界扫码应通过，实际返回 %v", err)
	}
}

func TestValidateExpiredWindow(t *testing.T) {
	// 07:00 生成 4 小时有效，12:00 扫已关窗
	code := Generate(42, at(7, 0), 4*time.Hour)

	err := Validate(code, code.Code, at(12, 0))
	if err != pkgerrors.CodeExpired {
		t.Errorf("过期扫码应返回 CodeExpired，实际 %v", err)
	}
}

func TestValidateNoCode(t *testing.T) {
	err := Validate(nil, "KT-2025-06-10-whatever", at(8, 0))
	if err != pkgerrors.CodeNotFound {
		t.Errorf("无码槽位应返回 CodeNotFound，实际 %v", err)
	}
}

func TestValidateWrongCode(t *testing.T) {
	code := Generate(42, at(7, 0), 4*time.Hour)

	err := Validate(code, "KT-2025-06-10-stale-old-token", at(8, 0))
	if err != pkgerrors.CodeInvalid {
		t.Errorf("扫旧码应返回 CodeInvalid，实际 %v", err)
	}
}

func TestStateCrossDay(t *testing.T) {
	// 头一天深夜生成，第二天凌晨还在窗口长度内也算过期
	late := time.Date(2025, 6, 10, 23, 0, 0, 0, time.Local)
	code := Generate(42, late, 4*time.Hour)

	nextDay := time.Date(2025, 6, 11, 1, 0, 0, 0, time.Local)
	if code.State(nextDay) != StateExpired {
		t.Errorf("跨天的码应为 expired，实际 %s", code.State(nextDay))
	}
	if err := Validate(code, code.Code, nextDay); err != pkgerrors.CodeExpired {
		t.Errorf("跨天扫码应返回 CodeExpired，实际 %v", err)
	}
}

func TestStateNil(t *testing.T) {
	var code *DailyCode
	if code.State(at(8, 0)) != StateNoCode {
		t.Error("nil 码的状态应为 no_code")
	}
}

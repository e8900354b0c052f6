// Package qrcode 当日动态打卡码的生成与校验。
// 码本身只是值对象，存取由 cache 层负责，这里不做任何 IO。
package qrcode

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	pkgerrors "kaamtrack/pkg/errors"
	"kaamtrack/utils"
)

// CodeState 动态码状态
type CodeState string

const (
	StateNoCode  CodeState = "no_code" // 今天还没生成
	StateActive  CodeState = "active"
	StateExpired CodeState = "expired"
)

// DailyCode 某雇主某天的动态打卡码
type DailyCode struct {
	Code       string    `json:"code"`
	OwnerID    int64     `json:"owner_id"`
	Date       string    `json:"date"` // YYYY-MM-DD
	ValidFrom  time.Time `json:"valid_from"`
	ValidUntil time.Time `json:"valid_until"`
	CreatedAt  time.Time `json:"created_at"`
}

// Generate 生成一枚新码，有效期从 now 起算 validity。
// 重新生成会顶掉旧码，旧码随即失效（存储层覆盖同一个槽位）。
func Generate(ownerID int64, now time.Time, validity time.Duration) *DailyCode {
	date := utils.DateString(now)
	return &DailyCode{
		Code:       fmt.Sprintf("KT-%s-%s", date, uuid.NewString()),
		OwnerID:    ownerID,
		Date:       date,
		ValidFrom:  now,
		ValidUntil: now.Add(validity),
		CreatedAt:  now,
	}
}

// State 返回某个时刻下码的状态
func (c *DailyCode) State(now time.Time) CodeState {
	if c == nil {
		return StateNoCode
	}
	if utils.DateString(now) != c.Date {
		// 跨天的码一律过期，哪怕窗口没走完
		return StateExpired
	}
	if now.Before(c.ValidFrom) || now.After(c.ValidUntil) {
		return StateExpired
	}
	return StateActive
}

// Validate 校验扫到的码。current 是当前槽位里的码，nil 表示今天没生成过。
// 返回 nil 表示通过，否则是对应的错误定义：
//   - CodeNotFound：槽位为空
//   - CodeInvalid：扫的不是当前这枚码（比如重新生成之前的旧码）
//   - CodeExpired：是当前码但窗口已关或已跨天
func Validate(current *DailyCode, scanned string, now time.Time) error {
	if current == nil {
		return pkgerrors.CodeNotFound
	}
	if scanned != current.Code {
		return pkgerrors.CodeInvalid
	}
	if current.State(now) != StateActive {
		return pkgerrors.CodeExpired
	}
	return nil
}

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"kaamtrack/internal/qrcode"
	"kaamtrack/storage/redis"
	"kaamtrack/utils"
)

// 每个雇主一个当日码槽位：kt:qr:current:{ownerID}
// 重新生成直接覆盖槽位，旧码自然作废；TTL 到当天最后一纳秒，跨天自动清空
const dailyCodePrefix = "qr:current"

func dailyCodeKey(ownerID int64) string {
	return redis.Key(dailyCodePrefix, fmt.Sprintf("%d", ownerID))
}

// SetCurrentCode 写入当日码槽位
func SetCurrentCode(ctx context.Context, code *qrcode.DailyCode) error {
	payload, err := json.Marshal(code)
	if err != nil {
		return fmt.Errorf("failed to marshal daily code: %w", err)
	}

	ttl := time.Until(utils.EndOfDay(code.CreatedAt))
	if ttl <= 0 {
		ttl = time.Minute
	}

	return redis.Client().Set(ctx, dailyCodeKey(code.OwnerID), payload, ttl).Err()
}

// GetCurrentCode 读取当日码，槽位为空返回 (nil, nil)
func GetCurrentCode(ctx context.Context, ownerID int64) (*qrcode.DailyCode, error) {
	payload, err := redis.Client().Get(ctx, dailyCodeKey(ownerID)).Bytes()
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get daily code: %w", err)
	}

	var code qrcode.DailyCode
	if err := json.Unmarshal(payload, &code); err != nil {
		return nil, fmt.Errorf("failed to unmarshal daily code: %w", err)
	}
	return &code, nil
}

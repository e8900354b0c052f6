package service

import (
	"context"
	"fmt"
	"time"

	"kaamtrack/internal/cache"
	"kaamtrack/internal/qrcode"
	pkgerrors "kaamtrack/pkg/errors"
)

// api 中出现的 worker_id / user_id 都是 public_id

// CodeCache 当日码槽位，测试时换成内存实现
type CodeCache interface {
	SetCurrentCode(ctx context.Context, code *qrcode.DailyCode) error
	GetCurrentCode(ctx context.Context, ownerID int64) (*qrcode.DailyCode, error)
}

// Locker 分布式锁
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, key string) error
}

// redis 后端的默认实现
type redisCodeCache struct{}

func (redisCodeCache) SetCurrentCode(ctx context.Context, code *qrcode.DailyCode) error {
	return cache.SetCurrentCode(ctx, code)
}

func (redisCodeCache) GetCurrentCode(ctx context.Context, ownerID int64) (*qrcode.DailyCode, error) {
	return cache.GetCurrentCode(ctx, ownerID)
}

type redisLocker struct{}

func (redisLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return cache.TryLock(ctx, key, ttl)
}

func (redisLocker) Unlock(ctx context.Context, key string) error {
	return cache.Unlock(ctx, key)
}

func parsePublicID(id string) (int64, error) {
	var n int64
	if _, err := fmt.Sscanf(id, "%d", &n); err != nil || n <= 0 {
		return 0, pkgerrors.InvalidUserID
	}
	return n, nil
}

package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"kaamtrack/config"
	"kaamtrack/internal/model/dto"
	"kaamtrack/internal/qrcode"
	pkgerrors "kaamtrack/pkg/errors"
	"kaamtrack/pkg/logger"
)

var (
	qrcodeService *QRCodeService
	qrcodeOnce    sync.Once
)

func QRCode() *QRCodeService {
	qrcodeOnce.Do(func() {
		qrcodeService = NewQRCodeService(
			redisCodeCache{},
			time.Now,
			time.Duration(config.Cfg.QRCodeValidMinutes)*time.Minute,
		)
	})
	return qrcodeService
}

type QRCodeService struct {
	codes    CodeCache
	now      func() time.Time
	validity time.Duration
}

func NewQRCodeService(codes CodeCache, now func() time.Time, validity time.Duration) *QRCodeService {
	return &QRCodeService{codes: codes, now: now, validity: validity}
}

// Generate 生成当日动态码。再次调用顶掉旧码，旧码立刻作废。
func (s *QRCodeService) Generate(ctx context.Context, ownerID int64) (*dto.DailyCodeData, error) {
	now := s.now()
	code := qrcode.Generate(ownerID, now, s.validity)

	if err := s.codes.SetCurrentCode(ctx, code); err != nil {
		return nil, fmt.Errorf("failed to store daily code: %w", err)
	}

	logger.Logger.Info("Daily code generated",
		zap.Int64("owner_id", ownerID),
		zap.String("date", code.Date),
	)

	return dailyCodeDataOf(code, now), nil
}

// Current 查当前码。今天没生成过返回 CodeNotFound。
func (s *QRCodeService) Current(ctx context.Context, ownerID int64) (*dto.DailyCodeData, error) {
	code, err := s.codes.GetCurrentCode(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily code: %w", err)
	}
	if code == nil {
		return nil, pkgerrors.CodeNotFound
	}

	return dailyCodeDataOf(code, s.now()), nil
}

func dailyCodeDataOf(code *qrcode.DailyCode, now time.Time) *dto.DailyCodeData {
	status := "expired"
	if code.State(now) == qrcode.StateActive {
		status = "active"
	}
	return &dto.DailyCodeData{
		Code:       code.Code,
		Date:       code.Date,
		ValidFrom:  code.ValidFrom,
		ValidUntil: code.ValidUntil,
		Status:     status,
	}
}

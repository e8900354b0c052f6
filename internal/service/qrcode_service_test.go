package service

import (
	"context"
	"testing"
	"time"

	pkgerrors "kaamtrack/pkg/errors"
)

func newQRCodeTestService(codes *memoryCodeCache) *QRCodeService {
	return NewQRCodeService(codes, fixedNow, 4*time.Hour)
}

func TestGenerateDailyCode(t *testing.T) {
	codes := &memoryCodeCache{}
	svc := newQRCodeTestService(codes)

	data, err := svc.Generate(context.Background(), testOwnerID)
	if err != nil {
		t.Fatalf("生成当日码失败：%v", err)
	}
	if data.Status != "active" {
		t.Errorf("新码状态应为 active，实际 %s", data.Status)
	}
	if data.Date != "2025-06-10" {
		t.Errorf("Date 期望 2025-06-10，实际 %s", data.Date)
	}
	if !data.ValidUntil.Equal(fixedNow().Add(4 * time.Hour)) {
		t.Errorf("ValidUntil 不对：%v", data.ValidUntil)
	}
}

func TestRegenerateReplacesOldCode(t *testing.T) {
	codes := &memoryCodeCache{}
	svc := newQRCodeTestService(codes)
	ctx := context.Background()

	first, err := svc.Generate(ctx, testOwnerID)
	if err != nil {
		t.Fatalf("生成失败：%v", err)
	}
	second, err := svc.Generate(ctx, testOwnerID)
	if err != nil {
		t.Fatalf("重新生成失败：%v", err)
	}
	if first.Code == second.Code {
		t.Error("重新生成应换新码")
	}

	current, err := svc.Current(ctx, testOwnerID)
	if err != nil {
		t.Fatalf("查当前码失败：%v", err)
	}
	if current.Code != second.Code {
		t.Errorf("槽位里应是新码，实际 %s", current.Code)
	}

	// 旧码拿去打卡应当失败
	env, _, _, codesShared, _ := newTestEnv()
	codesShared.codes = codes.codes

	if _, err := env.CheckIn(ctx, testWorkerPublicID, first.Code); err != pkgerrors.CodeInvalid {
		t.Errorf("旧码打卡应返回 CodeInvalid，实际 %v", err)
	}
}

func TestCurrentWithoutCode(t *testing.T) {
	svc := newQRCodeTestService(&memoryCodeCache{})

	_, err := svc.Current(context.Background(), testOwnerID)
	if err != pkgerrors.CodeNotFound {
		t.Errorf("无码时应返回 CodeNotFound，实际 %v", err)
	}
}

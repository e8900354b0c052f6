package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"kaamtrack/internal/model"
	"kaamtrack/internal/model/dto"
	"kaamtrack/internal/qrcode"
	"kaamtrack/internal/repository"
	pkgerrors "kaamtrack/pkg/errors"
)

// ========== 测试用 mock ==========

type mockWorkerStore struct {
	workers map[int64]*model.Worker // key: public_id
}

func (m *mockWorkerStore) Create(ctx context.Context, w *model.Worker) error { return nil }
func (m *mockWorkerStore) Update(ctx context.Context, w *model.Worker) error { return nil }

func (m *mockWorkerStore) GetByPublicID(ctx context.Context, ownerID, publicID int64) (*model.Worker, error) {
	w, ok := m.workers[publicID]
	if !ok || w.OwnerID != ownerID {
		return nil, nil
	}
	return w, nil
}

func (m *mockWorkerStore) GetAnyByPublicID(ctx context.Context, publicID int64) (*model.Worker, error) {
	return m.workers[publicID], nil
}

func (m *mockWorkerStore) GetByQrToken(ctx context.Context, ownerID int64, qrToken string) (*model.Worker, error) {
	for _, w := range m.workers {
		if w.QrToken == qrToken && (ownerID <= 0 || w.OwnerID == ownerID) {
			return w, nil
		}
	}
	return nil, nil
}

func (m *mockWorkerStore) List(ctx context.Context, ownerID int64, filter repository.WorkerFilter) ([]model.Worker, error) {
	var out []model.Worker
	for _, w := range m.workers {
		if w.OwnerID == ownerID {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (m *mockWorkerStore) ListActive(ctx context.Context, ownerID int64) ([]model.Worker, error) {
	var out []model.Worker
	for _, w := range m.workers {
		if w.OwnerID == ownerID && w.IsActive {
			out = append(out, *w)
		}
	}
	return out, nil
}

type mockAttendanceStore struct {
	records map[string]*model.AttendanceRecord // key: workerID:date
	upserts int
}

func attKey(workerID int64, date time.Time) string {
	return fmt.Sprintf("%d:%s", workerID, date.Format("2006-01-02"))
}

func (m *mockAttendanceStore) Upsert(ctx context.Context, r *model.AttendanceRecord) error {
	if m.records == nil {
		m.records = make(map[string]*model.AttendanceRecord)
	}
	m.upserts++
	cp := *r
	m.records[attKey(r.WorkerID, r.Date)] = &cp
	return nil
}

func (m *mockAttendanceStore) GetByWorkerAndDate(ctx context.Context, workerID int64, date time.Time) (*model.AttendanceRecord, error) {
	return m.records[attKey(workerID, date)], nil
}

func (m *mockAttendanceStore) ListByDate(ctx context.Context, ownerID int64, date time.Time) ([]model.AttendanceRecord, error) {
	return nil, nil
}

func (m *mockAttendanceStore) ListByWorker(ctx context.Context, workerID int64, from, to time.Time) ([]model.AttendanceRecord, error) {
	var out []model.AttendanceRecord
	for _, r := range m.records {
		if r.WorkerID == workerID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockAttendanceStore) ListByOwner(ctx context.Context, ownerID int64, filter repository.AttendanceFilter) ([]model.AttendanceRecord, error) {
	var out []model.AttendanceRecord
	for _, r := range m.records {
		out = append(out, *r)
	}
	return out, nil
}

func (m *mockAttendanceStore) CountOwnersMarkedOn(ctx context.Context, ownerIDs []int64, date time.Time) (map[int64]int64, error) {
	return map[int64]int64{}, nil
}

type memoryCodeCache struct {
	codes map[int64]*qrcode.DailyCode
}

func (m *memoryCodeCache) SetCurrentCode(ctx context.Context, code *qrcode.DailyCode) error {
	if m.codes == nil {
		m.codes = make(map[int64]*qrcode.DailyCode)
	}
	m.codes[code.OwnerID] = code
	return nil
}

func (m *memoryCodeCache) GetCurrentCode(ctx context.Context, ownerID int64) (*qrcode.DailyCode, error) {
	return m.codes[ownerID], nil
}

type memoryLocker struct {
	held map[string]bool
	// DenyN 前 N 次抢锁模拟被别人占着，之后放行
	DenyN int
	tries int
}

func (m *memoryLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	m.tries++
	if m.tries <= m.DenyN {
		return false, nil
	}
	if m.held == nil {
		m.held = make(map[string]bool)
	}
	if m.held[key] {
		return false, nil
	}
	m.held[key] = true
	return true, nil
}

func (m *memoryLocker) Unlock(ctx context.Context, key string) error {
	delete(m.held, key)
	return nil
}

// ========== 测试环境 ==========

const (
	testOwnerID        = int64(100)
	testWorkerPublicID = int64(5001)
)

func fixedNow() time.Time {
	return time.Date(2025, 6, 10, 8, 0, 0, 0, time.Local)
}

func newTestEnv() (*AttendanceService, *mockWorkerStore, *mockAttendanceStore, *memoryCodeCache, *memoryLocker) {
	worker := &model.Worker{
		PublicID:  testWorkerPublicID,
		OwnerID:   testOwnerID,
		Name:      "拉姆",
		Category:  model.CategoryMason,
		DailyRate: decimal.RequireFromString("500"),
		QrToken:   "badge-token-1",
		IsActive:  true,
	}
	worker.ID = 1

	workers := &mockWorkerStore{workers: map[int64]*model.Worker{testWorkerPublicID: worker}}
	attendance := &mockAttendanceStore{}
	codes := &memoryCodeCache{}
	locker := &memoryLocker{}

	svc := NewAttendanceService(workers, attendance, codes, locker, fixedNow)
	return svc, workers, attendance, codes, locker
}

func activeCode(codes *memoryCodeCache) *qrcode.DailyCode {
	// 07:00 生成，4 小时有效，fixedNow 的 08:00 在窗口内
	code := qrcode.Generate(testOwnerID, fixedNow().Add(-time.Hour), 4*time.Hour)
	codes.SetCurrentCode(context.Background(), code)
	return code
}

// ========== CheckIn ==========

func TestCheckInSuccess(t *testing.T) {
	svc, _, attendance, codes, _ := newTestEnv()
	code := activeCode(codes)

	result, err := svc.CheckIn(context.Background(), testWorkerPublicID, code.Code)
	if err != nil {
		t.Fatalf("窗口内打卡应成功，实际返回 %v", err)
	}
	if result.Status != "present" {
		t.Errorf("打卡后状态应为 present，实际 %s", result.Status)
	}
	if result.Repeated {
		t.Error("首次打卡 Repeated 应为 false")
	}
	if !result.CheckInAt.Equal(fixedNow()) {
		t.Errorf("CheckInAt 应为打卡时刻，实际 %v", result.CheckInAt)
	}
	if attendance.upserts != 1 {
		t.Errorf("应写入一条记录，实际 upsert %d 次", attendance.upserts)
	}
}

func TestCheckInIdempotent(t *testing.T) {
	svc, _, attendance, codes, _ := newTestEnv()
	code := activeCode(codes)

	first, err := svc.CheckIn(context.Background(), testWorkerPublicID, code.Code)
	if err != nil {
		t.Fatalf("首次打卡失败：%v", err)
	}

	second, err := svc.CheckIn(context.Background(), testWorkerPublicID, code.Code)
	if err != nil {
		t.Fatalf("重复打卡应幂等成功，实际返回 %v", err)
	}
	if !second.Repeated {
		t.Error("重复打卡 Repeated 应为 true")
	}
	if !second.CheckInAt.Equal(first.CheckInAt) {
		t.Errorf("重复打卡应保留首次打卡时间，期望 %v 实际 %v", first.CheckInAt, second.CheckInAt)
	}
	if len(attendance.records) != 1 {
		t.Errorf("重复打卡不应产生新行，实际 %d 行", len(attendance.records))
	}
}

func TestCheckInExpiredCode(t *testing.T) {
	svc, _, _, codes, _ := newTestEnv()
	// 前一天深夜的码，到 fixedNow 已跨天
	stale := qrcode.Generate(testOwnerID, fixedNow().AddDate(0, 0, -1), 4*time.Hour)
	codes.SetCurrentCode(context.Background(), stale)

	_, err := svc.CheckIn(context.Background(), testWorkerPublicID, stale.Code)
	if err != pkgerrors.CodeExpired {
		t.Errorf("过期码打卡应返回 CodeExpired，实际 %v", err)
	}
}

func TestCheckInNoCode(t *testing.T) {
	svc, _, _, _, _ := newTestEnv()

	_, err := svc.CheckIn(context.Background(), testWorkerPublicID, "KT-2025-06-10-nothing")
	if err != pkgerrors.CodeNotFound {
		t.Errorf("没生成码时打卡应返回 CodeNotFound，实际 %v", err)
	}
}

func TestCheckInStaleCode(t *testing.T) {
	svc, _, _, codes, _ := newTestEnv()
	activeCode(codes)

	// 扫的是重新生成之前的旧码
	_, err := svc.CheckIn(context.Background(), testWorkerPublicID, "KT-2025-06-10-old-code")
	if err != pkgerrors.CodeInvalid {
		t.Errorf("旧码打卡应返回 CodeInvalid，实际 %v", err)
	}
}

func TestCheckInUnknownWorker(t *testing.T) {
	svc, _, _, codes, _ := newTestEnv()
	code := activeCode(codes)

	_, err := svc.CheckIn(context.Background(), 9999, code.Code)
	if err != pkgerrors.WorkerNotFound {
		t.Errorf("未知工人打卡应返回 WorkerNotFound，实际 %v", err)
	}
}

func TestCheckInInactiveWorker(t *testing.T) {
	svc, workers, _, codes, _ := newTestEnv()
	code := activeCode(codes)
	workers.workers[testWorkerPublicID].IsActive = false

	_, err := svc.CheckIn(context.Background(), testWorkerPublicID, code.Code)
	if err != pkgerrors.WorkerInactive {
		t.Errorf("停用工人打卡应返回 WorkerInactive，实际 %v", err)
	}
}

func TestCheckInLockContention(t *testing.T) {
	svc, _, attendance, codes, locker := newTestEnv()
	code := activeCode(codes)

	// 先到的扫码已落库，后到的前两次抢锁被占
	firstAt := fixedNow().Add(-2 * time.Second)
	attendance.Upsert(context.Background(), &model.AttendanceRecord{
		WorkerID:  1,
		Date:      time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local),
		Status:    model.StatusPresent,
		Via:       model.MarkedViaQR,
		CheckInAt: &firstAt,
	})
	locker.DenyN = 2

	result, err := svc.CheckIn(context.Background(), testWorkerPublicID, code.Code)
	if err != nil {
		t.Fatalf("并发打卡后到的应等锁后幂等成功，实际返回 %v", err)
	}
	if !result.Repeated {
		t.Error("后到的打卡 Repeated 应为 true")
	}
	if !result.CheckInAt.Equal(firstAt) {
		t.Errorf("应保留先到的打卡时间，期望 %v 实际 %v", firstAt, result.CheckInAt)
	}
	if len(attendance.records) != 1 {
		t.Errorf("并发打卡不应产生新行，实际 %d 行", len(attendance.records))
	}
}

func TestCheckInLockStuck(t *testing.T) {
	svc, _, _, codes, locker := newTestEnv()
	code := activeCode(codes)
	// 重试窗口内锁一直占着
	locker.DenyN = 100

	_, err := svc.CheckIn(context.Background(), testWorkerPublicID, code.Code)
	if err != pkgerrors.DuplicateKeyRace {
		t.Errorf("锁长时间不释放应返回 DuplicateKeyRace，实际 %v", err)
	}
}

// ========== Mark ==========

func TestMarkAttendance(t *testing.T) {
	svc, _, attendance, _, _ := newTestEnv()

	data, err := svc.Mark(context.Background(), testOwnerID, &dto.MarkAttendanceRequest{
		WorkerID: "5001",
		Date:     "2025-06-10",
		Status:   "half-day",
		Note:     "下午请假",
	})
	if err != nil {
		t.Fatalf("手工点名失败：%v", err)
	}
	if data.Status != "half-day" {
		t.Errorf("状态期望 half-day，实际 %s", data.Status)
	}
	if data.Via != "manual" {
		t.Errorf("来源期望 manual，实际 %s", data.Via)
	}
	if attendance.upserts != 1 {
		t.Errorf("应写入一条记录，实际 %d 次", attendance.upserts)
	}
}

func TestMarkOverridesCheckIn(t *testing.T) {
	svc, _, attendance, codes, _ := newTestEnv()
	code := activeCode(codes)

	// 先扫码打卡，再手工改成缺勤
	if _, err := svc.CheckIn(context.Background(), testWorkerPublicID, code.Code); err != nil {
		t.Fatalf("打卡失败：%v", err)
	}

	data, err := svc.Mark(context.Background(), testOwnerID, &dto.MarkAttendanceRequest{
		WorkerID: "5001",
		Date:     "2025-06-10",
		Status:   "absent",
	})
	if err != nil {
		t.Fatalf("手工覆盖失败：%v", err)
	}
	if data.Status != "absent" {
		t.Errorf("覆盖后状态期望 absent，实际 %s", data.Status)
	}
	if data.CheckInAt == nil {
		t.Error("手工覆盖应保留扫码留下的打卡时间")
	}
	if len(attendance.records) != 1 {
		t.Errorf("覆盖不应产生新行，实际 %d 行", len(attendance.records))
	}
}

func TestMarkInvalidStatus(t *testing.T) {
	svc, _, _, _, _ := newTestEnv()

	_, err := svc.Mark(context.Background(), testOwnerID, &dto.MarkAttendanceRequest{
		WorkerID: "5001",
		Date:     "2025-06-10",
		Status:   "late",
	})
	if err != pkgerrors.InvalidStatus {
		t.Errorf("非法状态应返回 InvalidStatus，实际 %v", err)
	}
}

func TestMarkInvalidDate(t *testing.T) {
	svc, _, _, _, _ := newTestEnv()

	_, err := svc.Mark(context.Background(), testOwnerID, &dto.MarkAttendanceRequest{
		WorkerID: "5001",
		Date:     "10/06/2025",
		Status:   "present",
	})
	if err != pkgerrors.InvalidDate {
		t.Errorf("非法日期应返回 InvalidDate，实际 %v", err)
	}
}

func TestMarkWorkerOfOtherOwner(t *testing.T) {
	svc, _, _, _, _ := newTestEnv()

	_, err := svc.Mark(context.Background(), int64(200), &dto.MarkAttendanceRequest{
		WorkerID: "5001",
		Date:     "2025-06-10",
		Status:   "present",
	})
	if err != pkgerrors.WorkerNotFound {
		t.Errorf("跨雇主点名应返回 WorkerNotFound，实际 %v", err)
	}
}

// Package repository 数据访问层。
// service 依赖这里的接口，单测用 mock 实现替换。
package repository

import (
	"context"
	"time"

	"kaamtrack/internal/model"
)

// UserStore 账号存取
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByPhone(ctx context.Context, phone string) (*model.User, error)
	GetByPublicID(ctx context.Context, publicID int64) (*model.User, error)
	ListOwnersWithActiveWorkers(ctx context.Context) ([]model.User, error)
}

// WorkerStore 工人档案存取
type WorkerStore interface {
	Create(ctx context.Context, worker *model.Worker) error
	Update(ctx context.Context, worker *model.Worker) error
	GetByPublicID(ctx context.Context, ownerID, publicID int64) (*model.Worker, error)
	// GetAnyByPublicID 不带雇主范围的查询，工人自助端用
	GetAnyByPublicID(ctx context.Context, publicID int64) (*model.Worker, error)
	GetByQrToken(ctx context.Context, ownerID int64, qrToken string) (*model.Worker, error)
	List(ctx context.Context, ownerID int64, filter WorkerFilter) ([]model.Worker, error)
	ListActive(ctx context.Context, ownerID int64) ([]model.Worker, error)
}

// WorkerFilter 工人列表筛选条件
type WorkerFilter struct {
	Category string
	Active   *bool
	Keyword  string
}

// AttendanceStore 考勤记录存取
// Upsert 以 (worker_id, date) 为冲突键，重复标记覆盖旧状态
type AttendanceStore interface {
	Upsert(ctx context.Context, record *model.AttendanceRecord) error
	GetByWorkerAndDate(ctx context.Context, workerID int64, date time.Time) (*model.AttendanceRecord, error)
	ListByDate(ctx context.Context, ownerID int64, date time.Time) ([]model.AttendanceRecord, error)
	ListByWorker(ctx context.Context, workerID int64, from, to time.Time) ([]model.AttendanceRecord, error)
	ListByOwner(ctx context.Context, ownerID int64, filter AttendanceFilter) ([]model.AttendanceRecord, error)
	CountOwnersMarkedOn(ctx context.Context, ownerIDs []int64, date time.Time) (map[int64]int64, error)
}

// AttendanceFilter 考勤列表筛选条件
type AttendanceFilter struct {
	WorkerID int64
	From     time.Time
	To       time.Time
	Status   string
}

// PaymentStore 收支流水存取，只追加
type PaymentStore interface {
	Create(ctx context.Context, record *model.PaymentRecord) error
	ListByWorker(ctx context.Context, workerID int64, from, to time.Time) ([]model.PaymentRecord, error)
	ListByOwner(ctx context.Context, ownerID int64, filter PaymentFilter) ([]model.PaymentRecord, error)
}

// PaymentFilter 流水筛选条件
type PaymentFilter struct {
	WorkerID int64
	Type     string
	From     time.Time
	To       time.Time
}

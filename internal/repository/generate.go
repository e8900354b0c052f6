package repository

import (
	"fmt"
	"os"

	"gorm.io/gen"

	"kaamtrack/internal/model"
	"kaamtrack/storage/database"
)

// ========== Worker 相关查询接口 ==========

// WorkerQuerier 工人档案查询接口
type WorkerQuerier interface {
	// GetByQrToken 根据工牌令牌查询工人
	//
	// SELECT * FROM @@table WHERE owner_id = @ownerID AND qr_token = @qrToken LIMIT 1
	GetByQrToken(ownerID int64, qrToken string) (*gen.T, error)

	// ListActiveByOwner 查询雇主的在职工人
	//
	// SELECT * FROM @@table
	// WHERE owner_id = @ownerID AND is_active = true
	// ORDER BY name ASC
	ListActiveByOwner(ownerID int64) ([]*gen.T, error)

	// CountActiveByOwner 统计雇主在职工人数
	//
	// SELECT COUNT(*) FROM @@table
	// WHERE owner_id = @ownerID AND is_active = true
	CountActiveByOwner(ownerID int64) (int64, error)
}

// ========== Attendance 相关查询接口 ==========

// AttendanceQuerier 考勤记录查询接口
type AttendanceQuerier interface {
	// GetByWorkerAndDate 查询某工人某天的记录
	//
	// SELECT * FROM @@table
	// WHERE worker_id = @workerID AND date = @date::date
	// LIMIT 1
	GetByWorkerAndDate(workerID int64, date string) (*gen.T, error)

	// ListByOwnerAndDate 查询雇主当天全部考勤
	//
	// SELECT a.* FROM @@table a
	// INNER JOIN workers w ON w.id = a.worker_id
	// WHERE w.owner_id = @ownerID AND a.date = @date::date
	ListByOwnerAndDate(ownerID int64, date string) ([]*gen.T, error)

	// CountByStatusInRange 按状态统计某工人区间内的天数
	//
	// SELECT status, COUNT(*) as count
	// FROM @@table
	// WHERE worker_id = @workerID
	//   AND date >= @fromDate::date
	//   AND date <= @toDate::date
	// GROUP BY status
	CountByStatusInRange(workerID int64, fromDate, toDate string) ([]gen.M, error)
}

// ========== Payment 相关查询接口 ==========

// PaymentQuerier 收支流水查询接口
type PaymentQuerier interface {
	// SumByTypeInRange 按类型合计某工人区间内的金额
	//
	// SELECT type, COALESCE(SUM(amount), 0) as total
	// FROM @@table
	// WHERE worker_id = @workerID
	//   AND date >= @fromDate::date
	//   AND date <= @toDate::date
	// GROUP BY type
	SumByTypeInRange(workerID int64, fromDate, toDate string) ([]gen.M, error)

	// ListByWorker 按工人查询流水
	//
	// SELECT * FROM @@table
	// WHERE worker_id = @workerID
	// ORDER BY date DESC, id DESC
	// LIMIT @limit OFFSET @offset
	ListByWorker(workerID int64, limit, offset int) ([]*gen.T, error)
}

func Generate() error {
	if err := database.Init(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	db := database.DB()
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:           "./internal/repository/query", // 生成代码的输出路径
		ModelPkgPath:      "kaamtrack/internal/model",
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface | gen.WithoutContext,
		FieldNullable:     true,
		FieldCoverable:    false,
		FieldSignable:     false,
		FieldWithIndexTag: false,
		FieldWithTypeTag:  true,
	})

	g.UseDB(db)

	// 注册现有 model，gen 直接用它们不再生成新的
	g.ApplyBasic(
		&model.User{},
		&model.Worker{},
		&model.AttendanceRecord{},
		&model.PaymentRecord{},
	)

	g.ApplyInterface(func(WorkerQuerier) {}, &model.Worker{})
	g.ApplyInterface(func(AttendanceQuerier) {}, &model.AttendanceRecord{})
	g.ApplyInterface(func(PaymentQuerier) {}, &model.PaymentRecord{})

	g.Execute()

	return nil
}

func RunGenerate() {
	if err := Generate(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to generate code: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Code generation completed successfully!")
}

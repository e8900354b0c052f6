package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"kaamtrack/internal/middleware"
	"kaamtrack/internal/service"
	"kaamtrack/pkg/errors"
	"kaamtrack/pkg/response"
)

// 工人自助端：工人账号查看自己的台账、考勤和流水

// GetSelfStats 工人查自己的工资台账
// GET /v1/me/stats
func GetSelfStats(ctx context.Context, c *app.RequestContext) {
	workerPublicID, ok := middleware.GetWorkerID(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.Unauthorized)
		return
	}

	from, to, err := statsRange(c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	result, err := service.Worker().SelfStats(ctx, workerPublicID, from, to)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// GetSelfAttendance 工人查自己的考勤记录
// GET /v1/me/attendance
func GetSelfAttendance(ctx context.Context, c *app.RequestContext) {
	workerPublicID, ok := middleware.GetWorkerID(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.Unauthorized)
		return
	}

	result, err := service.Attendance().ListSelf(ctx, workerPublicID, c.Query("from"), c.Query("to"))
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// GetSelfPayments 工人查自己的收支流水
// GET /v1/me/payments
func GetSelfPayments(ctx context.Context, c *app.RequestContext) {
	workerPublicID, ok := middleware.GetWorkerID(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.Unauthorized)
		return
	}

	result, err := service.Payment().ListSelf(ctx, workerPublicID, c.Query("from"), c.Query("to"))
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"kaamtrack/internal/middleware"
	"kaamtrack/internal/model/dto"
	"kaamtrack/internal/service"
	"kaamtrack/pkg/errors"
	"kaamtrack/pkg/response"
)

// MarkAttendance 老板手工点名（同日重复提交覆盖旧状态）
// POST /v1/attendance
func MarkAttendance(ctx context.Context, c *app.RequestContext) {
	owner, ok := ownerID(ctx, c)
	if !ok {
		return
	}

	var req dto.MarkAttendanceRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Attendance().Mark(ctx, owner, &req)
	if err != nil {
		middleware.RecordManualMark(ctx, "error")
		response.Error(ctx, c, err)
		return
	}

	middleware.RecordManualMark(ctx, result.Status)
	response.Success(ctx, c, result)
}

// CheckIn 工人扫当日动态码打卡
// POST /v1/attendance/check-in
func CheckIn(ctx context.Context, c *app.RequestContext) {
	workerPublicID, ok := middleware.GetWorkerID(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.Unauthorized)
		return
	}

	var req dto.CheckInRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Attendance().CheckIn(ctx, workerPublicID, req.Code)
	if err != nil {
		middleware.RecordCheckIn(ctx, "rejected")
		response.Error(ctx, c, err)
		return
	}

	if result.Repeated {
		middleware.RecordCheckIn(ctx, "repeated")
	} else {
		middleware.RecordCheckIn(ctx, "accepted")
	}
	response.Success(ctx, c, result)
}

// ListAttendance 考勤记录查询
// GET /v1/attendance
func ListAttendance(ctx context.Context, c *app.RequestContext) {
	owner, ok := ownerID(ctx, c)
	if !ok {
		return
	}

	var query dto.ListAttendanceQuery
	if err := c.BindQuery(&query); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Attendance().List(ctx, owner, &query)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

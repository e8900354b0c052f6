package handler

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/app"

	"kaamtrack/internal/model/dto"
	"kaamtrack/internal/service"
	"kaamtrack/pkg/errors"
	"kaamtrack/pkg/response"
	"kaamtrack/utils"
)

// CreateWorker 创建工人档案
// POST /v1/workers
func CreateWorker(ctx context.Context, c *app.RequestContext) {
	owner, ok := ownerID(ctx, c)
	if !ok {
		return
	}

	var req dto.CreateWorkerRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Worker().Create(ctx, owner, &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Created(ctx, c, result)
}

// UpdateWorker 更新工人档案（含停用/启用）
// PATCH /v1/workers/:worker_id
func UpdateWorker(ctx context.Context, c *app.RequestContext) {
	owner, ok := ownerID(ctx, c)
	if !ok {
		return
	}

	var req dto.UpdateWorkerRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Worker().Update(ctx, owner, c.Param("worker_id"), &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// DeactivateWorker 停用工人（软删除，历史考勤和流水保留）
// DELETE /v1/workers/:worker_id
func DeactivateWorker(ctx context.Context, c *app.RequestContext) {
	owner, ok := ownerID(ctx, c)
	if !ok {
		return
	}

	inactive := false
	result, err := service.Worker().Update(ctx, owner, c.Param("worker_id"), &dto.UpdateWorkerRequest{IsActive: &inactive})
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// GetWorker 查询单个工人档案
// GET /v1/workers/:worker_id
func GetWorker(ctx context.Context, c *app.RequestContext) {
	owner, ok := ownerID(ctx, c)
	if !ok {
		return
	}

	result, err := service.Worker().Get(ctx, owner, c.Param("worker_id"))
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// GetWorkerByQrToken 按工牌令牌查询工人，扫工牌时用
// GET /v1/workers/by-qr/:token
func GetWorkerByQrToken(ctx context.Context, c *app.RequestContext) {
	owner, ok := ownerID(ctx, c)
	if !ok {
		return
	}

	result, err := service.Worker().GetByQrToken(ctx, owner, c.Param("token"))
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// ListWorkers 工人列表
// GET /v1/workers
func ListWorkers(ctx context.Context, c *app.RequestContext) {
	owner, ok := ownerID(ctx, c)
	if !ok {
		return
	}

	var query dto.ListWorkersQuery
	if err := c.BindQuery(&query); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Worker().List(ctx, owner, &query)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// GetWorkerStats 查询单个工人的工资台账汇总
// GET /v1/workers/:worker_id/stats
func GetWorkerStats(ctx context.Context, c *app.RequestContext) {
	owner, ok := ownerID(ctx, c)
	if !ok {
		return
	}

	from, to, err := statsRange(c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	result, err := service.Worker().Stats(ctx, owner, c.Param("worker_id"), from, to)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// statsRange 解析报表区间，缺省本月月初到今天
func statsRange(c *app.RequestContext) (time.Time, time.Time, error) {
	now := time.Now()
	from := utils.StartOfMonth(now)
	to := utils.StartOfDay(now)

	if s := c.Query("from"); s != "" {
		parsed, err := utils.ParseDate(s)
		if err != nil {
			return time.Time{}, time.Time{}, errors.InvalidDate
		}
		from = parsed
	}
	if s := c.Query("to"); s != "" {
		parsed, err := utils.ParseDate(s)
		if err != nil {
			return time.Time{}, time.Time{}, errors.InvalidDate
		}
		to = parsed
	}

	if to.Before(from) {
		return time.Time{}, time.Time{}, errors.InvalidDate
	}

	return from, to, nil
}

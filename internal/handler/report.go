package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"kaamtrack/internal/model/dto"
	"kaamtrack/internal/service"
	"kaamtrack/pkg/response"
)

// GetDashboard 首页看板：今日出勤汇总 + 本月工资与待结算
// GET /v1/reports/dashboard
func GetDashboard(ctx context.Context, c *app.RequestContext) {
	owner, ok := ownerID(ctx, c)
	if !ok {
		return
	}

	result, err := service.Report().Dashboard(ctx, owner)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// GetSummary 区间汇总报表，按工人逐行列出并给合计
// GET /v1/reports/summary
func GetSummary(ctx context.Context, c *app.RequestContext) {
	owner, ok := ownerID(ctx, c)
	if !ok {
		return
	}

	var query dto.SummaryQuery
	if err := c.BindQuery(&query); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Report().Summary(ctx, owner, &query)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"kaamtrack/internal/service"
	"kaamtrack/pkg/response"
)

// GenerateDailyCode 生成当日动态码，重复生成会替换旧码
// POST /v1/qr-codes/generate
func GenerateDailyCode(ctx context.Context, c *app.RequestContext) {
	owner, ok := ownerID(ctx, c)
	if !ok {
		return
	}

	result, err := service.QRCode().Generate(ctx, owner)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Created(ctx, c, result)
}

// GetCurrentDailyCode 查询当前动态码及其状态
// GET /v1/qr-codes/current
func GetCurrentDailyCode(ctx context.Context, c *app.RequestContext) {
	owner, ok := ownerID(ctx, c)
	if !ok {
		return
	}

	result, err := service.QRCode().Current(ctx, owner)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"kaamtrack/internal/model/dto"
	"kaamtrack/internal/service"
	"kaamtrack/pkg/response"
)

// CreatePayment 记一笔预支/结算/奖金/扣款
// POST /v1/payments
func CreatePayment(ctx context.Context, c *app.RequestContext) {
	owner, ok := ownerID(ctx, c)
	if !ok {
		return
	}

	var req dto.CreatePaymentRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Payment().Create(ctx, owner, &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Created(ctx, c, result)
}

// ListPayments 收支流水查询
// GET /v1/payments
func ListPayments(ctx context.Context, c *app.RequestContext) {
	owner, ok := ownerID(ctx, c)
	if !ok {
		return
	}

	var query dto.ListPaymentsQuery
	if err := c.BindQuery(&query); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Payment().List(ctx, owner, &query)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

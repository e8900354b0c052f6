package handler

import (
	"context"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"

	"kaamtrack/internal/middleware"
	"kaamtrack/pkg/errors"
	"kaamtrack/pkg/response"
)

// ownerID 从已认证的请求上下文取出老板的 public_id。
// 取不到说明 token 异常，直接回 401 并中止
func ownerID(ctx context.Context, c *app.RequestContext) (int64, bool) {
	userID, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.Unauthorized)
		return 0, false
	}

	id, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		response.Error(ctx, c, errors.InvalidUserID)
		return 0, false
	}

	return id, true
}
